package host

import "math"

// Rect is an axis-aligned box. X/Y is the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Top returns the top edge.
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Area returns W*H, or 0 for degenerate boxes.
func (r Rect) Area() float64 {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

// Empty reports whether the box has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersect returns the overlap of r and o. Non-overlapping boxes yield an
// empty Rect.
func (r Rect) Intersect(o Rect) Rect {
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.X+r.W, o.X+o.W)
	y1 := math.Min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Margin holds per-side growth of a root box, as fractions of that box's
// size (0.7 is 70%). Top/Bottom scale with height, Left/Right with width.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Expand grows r by the margin.
func (m Margin) Expand(r Rect) Rect {
	top := m.Top * r.H
	bottom := m.Bottom * r.H
	left := m.Left * r.W
	right := m.Right * r.W
	return Rect{
		X: r.X - left,
		Y: r.Y - top,
		W: r.W + left + right,
		H: r.H + top + bottom,
	}
}
