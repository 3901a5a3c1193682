package host

import "math"

// Paint is a colour with fractional opacity, the equivalent of a CSS
// rgba() fill or stroke style.
type Paint struct {
	R, G, B uint8
	A       float64
}

// White is fully opaque white.
var White = Paint{R: 255, G: 255, B: 255, A: 1}

// WithAlpha returns p with its opacity replaced by a, clamped to [0, 1].
func (p Paint) WithAlpha(a float64) Paint {
	switch {
	case math.IsNaN(a), a < 0:
		a = 0
	case a > 1:
		a = 1
	}
	p.A = a
	return p
}

// Context2D is the drawing capability of a canvas surface. Paths are built
// with BeginPath/Arc/MoveTo/LineTo and painted by Fill or Stroke using the
// current styles.
type Context2D interface {
	ClearRect(x, y, w, h float64)
	SetFillStyle(p Paint)
	SetStrokeStyle(p Paint)
	SetLineWidth(w float64)
	BeginPath()
	Arc(x, y, radius, startAngle, endAngle float64)
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Fill()
	Stroke()
}
