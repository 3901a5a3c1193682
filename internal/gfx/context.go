// Package gfx hosts the page in a desktop window with ebiten.
package gfx

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/nightsky/internal/draw"
	"github.com/tomz197/nightsky/internal/host"
)

// Context is a host.Context2D that paints onto an offscreen ebiten image.
type Context struct {
	img         *ebiten.Image
	fillStyle   host.Paint
	strokeStyle host.Paint
	lineWidth   float64
	path        draw.Path
}

// Compile-time check that Context implements host.Context2D.
var _ host.Context2D = (*Context)(nil)

// NewContext creates a context with a w x h pixel backing image.
func NewContext(w, h int) *Context {
	c := &Context{lineWidth: 1}
	c.Resize(w, h)
	return c
}

// Image returns the backing image.
func (c *Context) Image() *ebiten.Image {
	return c.img
}

// Resize replaces the backing image. Content is dropped.
func (c *Context) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if c.img != nil {
		if b := c.img.Bounds(); b.Dx() == w && b.Dy() == h {
			return
		}
		c.img.Deallocate()
	}
	c.img = ebiten.NewImage(w, h)
}

// ClearRect makes the rectangle transparent.
func (c *Context) ClearRect(x, y, w, h float64) {
	r := image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h)),
	).Intersect(c.img.Bounds())
	if r.Empty() {
		return
	}
	if r == c.img.Bounds() {
		c.img.Clear()
		return
	}
	c.img.SubImage(r).(*ebiten.Image).Clear()
}

// SetFillStyle sets the paint used by Fill.
func (c *Context) SetFillStyle(p host.Paint) { c.fillStyle = p }

// SetStrokeStyle sets the paint used by Stroke.
func (c *Context) SetStrokeStyle(p host.Paint) { c.strokeStyle = p }

// SetLineWidth sets the stroke width in pixels.
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
	col := toColor(c.fillStyle)
	for _, a := range c.path.Arcs {
		vector.DrawFilledCircle(c.img, float32(a.X), float32(a.Y), float32(a.Radius), col, true)
	}
}

// Stroke paints every segment of the path.
func (c *Context) Stroke() {
	col := toColor(c.strokeStyle)
	width := float32(c.lineWidth)
	c.path.Segments(func(a, b draw.Point) {
		vector.StrokeLine(c.img, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, col, true)
	})
}

// toColor converts a paint to a non-premultiplied colour.
func toColor(p host.Paint) color.NRGBA {
	a := math.Max(0, math.Min(p.A, 1))
	if math.IsNaN(a) {
		a = 0
	}
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: uint8(math.Round(a * 255))}
}
