package draw

import (
	"math"

	"github.com/tomz197/nightsky/internal/host"
)

// Point is a position in canvas pixels.
type Point struct {
	X, Y float64
}

// Path records the shapes of a 2D path until it is filled or stroked.
type Path struct {
	Arcs     []Arc
	Polyline [][]Point // one entry per MoveTo
}

// Arc is a recorded Arc call. Fill treats every arc as a full disc.
type Arc struct {
	X, Y, Radius float64
}

// Reset empties the path.
func (p *Path) Reset() {
	p.Arcs = p.Arcs[:0]
	p.Polyline = p.Polyline[:0]
}

// AddArc records an arc.
func (p *Path) AddArc(x, y, radius float64) {
	p.Arcs = append(p.Arcs, Arc{X: x, Y: y, Radius: radius})
}

// MoveTo starts a new sub-path at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.Polyline = append(p.Polyline, []Point{{X: x, Y: y}})
}

// LineTo extends the current sub-path, starting one at (x, y) if there is none.
func (p *Path) LineTo(x, y float64) {
	if len(p.Polyline) == 0 {
		p.MoveTo(x, y)
		return
	}
	last := len(p.Polyline) - 1
	p.Polyline[last] = append(p.Polyline[last], Point{X: x, Y: y})
}

// Segments calls fn for every line segment of the path.
func (p *Path) Segments(fn func(a, b Point)) {
	for _, sub := range p.Polyline {
		for i := 1; i < len(sub); i++ {
			fn(sub[i-1], sub[i])
		}
	}
}

// Context is a host.Context2D that paints onto a Canvas. The context's
// pixel space is the canvas's pixel space.
type Context struct {
	canvas      *Canvas
	fillStyle   host.Paint
	strokeStyle host.Paint
	lineWidth   float64
	path        Path
}

// Compile-time check that Context implements host.Context2D.
var _ host.Context2D = (*Context)(nil)

// NewContext wraps canvas.
func NewContext(canvas *Canvas) *Context {
	return &Context{canvas: canvas, lineWidth: 1}
}

// Canvas returns the underlying canvas.
func (c *Context) Canvas() *Canvas {
	return c.canvas
}

// Resize sets the pixel size of the canvas. Heights round up to whole rows.
func (c *Context) Resize(w, h int) {
	c.canvas.Resize(w, (h+1)/2)
}

// ClearRect resets the pixels inside the rectangle.
func (c *Context) ClearRect(x, y, w, h float64) {
	c.canvas.ClearPixels(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h)),
	)
}

// SetFillStyle sets the paint used by Fill.
func (c *Context) SetFillStyle(p host.Paint) { c.fillStyle = p }

// SetStrokeStyle sets the paint used by Stroke.
func (c *Context) SetStrokeStyle(p host.Paint) { c.strokeStyle = p }

// SetLineWidth sets the stroke width. The terminal draws one-pixel lines
// regardless; widths of 2 or more double the line vertically.
func (c *Context) SetLineWidth(w float64) { c.lineWidth = w }

// BeginPath discards the current path.
func (c *Context) BeginPath() { c.path.Reset() }

// Arc adds a circle to the path. Angles are ignored.
func (c *Context) Arc(x, y, radius, _, _ float64) { c.path.AddArc(x, y, radius) }

// MoveTo starts a sub-path.
func (c *Context) MoveTo(x, y float64) { c.path.MoveTo(x, y) }

// LineTo extends the sub-path.
func (c *Context) LineTo(x, y float64) { c.path.LineTo(x, y) }

// Fill paints every arc of the path.
func (c *Context) Fill() {
	for _, a := range c.path.Arcs {
		c.canvas.FillCircle(a.X, a.Y, a.Radius, c.fillStyle)
	}
}

// Stroke paints every segment of the path.
func (c *Context) Stroke() {
	thick := c.lineWidth >= 2
	c.path.Segments(func(a, b Point) {
		c.canvas.DrawLine(a, b, c.strokeStyle)
		if thick {
			c.canvas.DrawLine(Point{X: a.X, Y: a.Y + 1}, Point{X: b.X, Y: b.Y + 1}, c.strokeStyle)
		}
	})
}
