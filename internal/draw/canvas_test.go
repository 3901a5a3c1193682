package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/nightsky/internal/host"
)

func TestBlendPixel(t *testing.T) {
	c := NewCanvas(4, 2)

	c.BlendPixel(1, 1, host.White)
	assert.Equal(t, RGB{255, 255, 255}, c.Pixel(1, 1))

	c.BlendPixel(2, 2, host.White.WithAlpha(0.5))
	assert.Equal(t, RGB{128, 128, 128}, c.Pixel(2, 2))

	c.BlendPixel(2, 2, host.Paint{R: 0, G: 0, B: 0, A: 0.5})
	assert.Equal(t, RGB{64, 64, 64}, c.Pixel(2, 2))

	assert.NotPanics(t, func() {
		c.BlendPixel(-1, 0, host.White)
		c.BlendPixel(4, 0, host.White)
		c.BlendPixel(0, 4, host.White)
	})
	assert.Equal(t, Black, c.Pixel(10, 10))
}

func TestFillCircle(t *testing.T) {
	c := NewCanvas(10, 5)

	c.FillCircle(5, 5, 0.3, host.White)
	assert.Equal(t, RGB{255, 255, 255}, c.Pixel(5, 5), "tiny circles still paint their centre pixel")
	assert.Equal(t, Black, c.Pixel(4, 5))

	c.Clear()
	c.FillCircle(5, 5, 1.5, host.White)
	lit := 0
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			if c.Pixel(x, y) != Black {
				lit++
			}
		}
	}
	assert.Equal(t, 4, lit, "pixel centres within 1.5 of (5,5)")

	assert.NotPanics(t, func() { c.FillCircle(-50, 200, 3, host.White) })
}

func TestDrawLine(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(Point{0, 0}, Point{9, 0}, host.White)
	for x := 0; x < 10; x++ {
		assert.NotEqual(t, Black, c.Pixel(x, 0))
	}
	c.DrawLine(Point{0, 0}, Point{0, 9}, host.White)
	for y := 0; y < 10; y++ {
		assert.NotEqual(t, Black, c.Pixel(0, y))
	}
	assert.NotPanics(t, func() { c.DrawLine(Point{-20, -20}, Point{30, 30}, host.White) })
}

func TestClearPixels(t *testing.T) {
	c := NewCanvas(4, 2)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c.BlendPixel(x, y, host.White)
		}
	}
	c.ClearPixels(1, 1, 3, 3)
	assert.Equal(t, Black, c.Pixel(1, 1))
	assert.Equal(t, Black, c.Pixel(2, 2))
	assert.NotEqual(t, Black, c.Pixel(0, 0))
	assert.NotEqual(t, Black, c.Pixel(3, 3))

	assert.NotPanics(t, func() { c.ClearPixels(10, 10, 20, 20) })
}

func TestRenderDiffs(t *testing.T) {
	c := NewCanvas(3, 1)
	c.BlendPixel(0, 0, host.White)

	var first bytes.Buffer
	c.Render(&first)
	out := first.String()
	assert.Contains(t, out, "\033[1;1H")
	assert.Contains(t, out, "38;2;255;255;255;48;2;0;0;0m▀")
	assert.True(t, strings.HasSuffix(out, ansiReset))

	var second bytes.Buffer
	c.Render(&second)
	assert.Empty(t, second.String(), "nothing changed")

	c.BlendPixel(2, 1, host.White)
	var third bytes.Buffer
	c.Render(&third)
	assert.Contains(t, third.String(), "\033[1;3H")
	assert.NotContains(t, third.String(), "\033[1;1H")

	c.ForceRedraw()
	var fourth bytes.Buffer
	c.Render(&fourth)
	assert.Contains(t, fourth.String(), "\033[1;1H")
}

func TestRenderOffsetAndText(t *testing.T) {
	c := NewCanvas(6, 2)
	c.SetOffset(2, 3)
	c.SetText(1, 1, "hi there", RGB{10, 20, 30})

	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()
	assert.Contains(t, out, "\033[4;3H", "first cell shifted by the offset")
	assert.Contains(t, out, "\033[5;3H")
	assert.Contains(t, out, "38;2;10;20;30;48;2;0;0;0mhi")
	assert.NotContains(t, out, "ere", "clipped at the canvas edge")
}

func TestResizeForcesRedraw(t *testing.T) {
	c := NewCanvas(2, 1)
	var buf bytes.Buffer
	c.Render(&buf)

	c.Resize(2, 1)
	buf.Reset()
	c.Render(&buf)
	assert.Empty(t, buf.String(), "same size is a no-op")

	c.Resize(3, 2)
	require.Equal(t, 4, c.Height())
	buf.Reset()
	c.Render(&buf)
	assert.Contains(t, buf.String(), "\033[2;1H")
}

func TestRenderBorder(t *testing.T) {
	c := NewCanvas(3, 1)
	var buf bytes.Buffer
	c.RenderBorder(&buf)
	assert.Empty(t, buf.String())

	c.SetOffset(1, 1)
	c.RenderBorder(&buf)
	assert.Contains(t, buf.String(), "┌───┐")
	assert.Contains(t, buf.String(), "└───┘")
}

func TestContextPaintsCanvas(t *testing.T) {
	c := NewCanvas(20, 10)
	ctx := NewContext(c)

	ctx.SetFillStyle(host.White)
	ctx.BeginPath()
	ctx.Arc(2, 2, 0.5, 0, 6.3)
	ctx.Fill()
	assert.NotEqual(t, Black, c.Pixel(2, 2))

	ctx.SetStrokeStyle(host.White.WithAlpha(0.5))
	ctx.SetLineWidth(2)
	ctx.BeginPath()
	ctx.MoveTo(5, 5)
	ctx.LineTo(10, 5)
	ctx.Stroke()
	assert.Equal(t, RGB{128, 128, 128}, c.Pixel(7, 5))
	assert.Equal(t, RGB{128, 128, 128}, c.Pixel(7, 6), "wide strokes cover a second row")

	ctx.ClearRect(0, 0, 20, 20)
	assert.Equal(t, Black, c.Pixel(2, 2))
	assert.Equal(t, Black, c.Pixel(7, 5))

	ctx.Resize(30, 15)
	assert.Equal(t, 30, c.Width())
	assert.Equal(t, 16, c.Height())
}

func TestPathSegments(t *testing.T) {
	var p Path
	p.LineTo(0, 0)
	p.LineTo(1, 0)
	p.MoveTo(5, 5)
	p.LineTo(6, 6)
	p.LineTo(7, 7)

	var n int
	p.Segments(func(a, b Point) { n++ })
	assert.Equal(t, 3, n)

	p.Reset()
	n = 0
	p.Segments(func(a, b Point) { n++ })
	assert.Zero(t, n)
}
