package draw

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tomz197/nightsky/internal/host"
)

// RGB is an opaque terminal colour.
type RGB struct {
	R, G, B uint8
}

// Black is the terminal background the canvas composites onto.
var Black = RGB{}

// Glyphs a rendered cell can hold besides overlay text.
const (
	BlockEmpty     = ' '
	BlockUpperHalf = '▀' // top pixel is the foreground, bottom the background
)

const (
	ansiReset = "\033[0m"
	ansiDim   = "\033[2m"
)

// cell is one rendered terminal position.
type cell struct {
	ch     rune
	fg, bg RGB
}

// overlay is a text character drawn above the pixels.
type overlay struct {
	ch rune
	fg RGB
}

// Canvas is a colour drawing buffer with 2x vertical resolution using
// half-block characters, plus a text layer drawn on top.
// Pixel coordinates run 0..Width() by 0..Height() (twice the row count).
type Canvas struct {
	termWidth      int   // Terminal columns covered by the canvas
	termHeight     int   // Terminal rows covered by the canvas
	subPixelHeight int   // termHeight * 2
	pixels         []RGB // Flat slice: [y * termWidth + x]
	text           []overlay
	prev           []cell // Cells as last rendered, for diffing
	forceRedraw    bool

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
	numBuf    [20]byte
}

// NewCanvas creates a canvas covering width x height terminal cells.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize updates the canvas for new terminal dimensions. Content is dropped
// and the next Render repaints every cell.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth, termHeight = max(termWidth, 0), max(termHeight, 0)
	if termWidth == c.termWidth && termHeight == c.termHeight && c.pixels != nil {
		return
	}
	c.termWidth = termWidth
	c.termHeight = termHeight
	c.subPixelHeight = termHeight * 2
	c.pixels = make([]RGB, c.subPixelHeight*termWidth)
	c.text = make([]overlay, termHeight*termWidth)
	c.prev = make([]cell, termHeight*termWidth)
	c.forceRedraw = true
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.forceRedraw = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// ForceRedraw makes the next Render repaint every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	c.forceRedraw = true
}

// Clear resets all pixels and text.
func (c *Canvas) Clear() {
	clear(c.pixels)
	clear(c.text)
}

// ClearPixels resets the pixels inside the given pixel rectangle.
func (c *Canvas) ClearPixels(x0, y0, x1, y1 int) {
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, c.termWidth), min(y1, c.subPixelHeight)
	if x0 >= x1 || y0 >= y1 {
		return
	}
	for y := y0; y < y1; y++ {
		row := c.pixels[y*c.termWidth : (y+1)*c.termWidth]
		clear(row[x0:x1])
	}
}

// ClearText removes the text layer.
func (c *Canvas) ClearText() {
	clear(c.text)
}

// Width returns the pixel width (terminal columns).
func (c *Canvas) Width() int {
	return c.termWidth
}

// Height returns the pixel height (twice the terminal rows).
func (c *Canvas) Height() int {
	return c.subPixelHeight
}

// TerminalWidth returns the terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// Pixel returns the colour at (x, y), or black outside the canvas.
func (c *Canvas) Pixel(x, y int) RGB {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return Black
	}
	return c.pixels[y*c.termWidth+x]
}

// BlendPixel composites p over the pixel at (x, y) (source-over).
func (c *Canvas) BlendPixel(x, y int, p host.Paint) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight || p.A <= 0 {
		return
	}
	a := math.Min(p.A, 1)
	dst := &c.pixels[y*c.termWidth+x]
	dst.R = blend(dst.R, p.R, a)
	dst.G = blend(dst.G, p.G, a)
	dst.B = blend(dst.B, p.B, a)
}

func blend(dst, src uint8, a float64) uint8 {
	return uint8(math.Round(float64(dst)*(1-a) + float64(src)*a))
}

// FillCircle fills the pixels whose centres lie within r of (cx, cy). The
// pixel containing the centre is always painted so sub-pixel circles stay
// visible.
func (c *Canvas) FillCircle(cx, cy, r float64, p host.Paint) {
	if math.IsNaN(cx) || math.IsNaN(cy) || math.IsNaN(r) {
		return
	}
	x0 := int(math.Floor(cx - r))
	x1 := int(math.Ceil(cx + r))
	y0 := int(math.Floor(cy - r))
	y1 := int(math.Ceil(cy + r))
	centreX, centreY := int(math.Floor(cx)), int(math.Floor(cy))
	r2 := r * r

	for y := max(y0, 0); y <= min(y1, c.subPixelHeight-1); y++ {
		for x := max(x0, 0); x <= min(x1, c.termWidth-1); x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy <= r2 || (x == centreX && y == centreY) {
				c.BlendPixel(x, y, p)
			}
		}
	}
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in pixels.
func (c *Canvas) DrawLine(p1, p2 Point, p host.Paint) {
	if math.IsNaN(p1.X+p1.Y+p2.X+p2.Y) || math.IsInf(p1.X+p1.Y+p2.X+p2.Y, 0) {
		return
	}
	x1 := int(math.Floor(p1.X))
	y1 := int(math.Floor(p1.Y))
	x2 := int(math.Floor(p2.X))
	y2 := int(math.Floor(p2.Y))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.BlendPixel(x1, y1, p)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// SetText writes s into the text layer starting at the 0-based cell
// (col, row). Characters outside the canvas are dropped; spaces are
// transparent.
func (c *Canvas) SetText(col, row int, s string, fg RGB) {
	if row < 0 || row >= c.termHeight {
		return
	}
	x := col
	for _, ch := range s {
		if x >= c.termWidth {
			return
		}
		if x >= 0 && ch != ' ' {
			c.text[row*c.termWidth+x] = overlay{ch: ch, fg: fg}
		}
		x++
	}
}

// compose builds the terminal cell at (col, row) from pixels and text.
func (c *Canvas) compose(col, row int) cell {
	if t := c.text[row*c.termWidth+col]; t.ch != 0 {
		return cell{ch: t.ch, fg: t.fg, bg: Black}
	}
	top := c.pixels[(row*2)*c.termWidth+col]
	bottom := c.pixels[(row*2+1)*c.termWidth+col]
	if top == Black && bottom == Black {
		return cell{ch: BlockEmpty}
	}
	return cell{ch: BlockUpperHalf, fg: top, bg: bottom}
}

// Render writes the cells that changed since the previous Render as
// truecolor half-block characters.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	var pen cell
	penSet := false
	lastRow, lastCol := -1, -1

	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			i := row*c.termWidth + col
			cur := c.compose(col, row)
			if !c.forceRedraw && c.prev[i] == cur {
				continue
			}
			c.prev[i] = cur

			if row != lastRow || col != lastCol+1 {
				c.writeCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			}
			if !penSet || pen.fg != cur.fg || pen.bg != cur.bg {
				c.writeColors(cur.fg, cur.bg)
				pen, penSet = cur, true
			}
			c.renderBuf.WriteRune(cur.ch)
			lastRow, lastCol = row, col
		}
	}
	c.forceRedraw = false

	if c.renderBuf.Len() == 0 {
		return
	}
	c.renderBuf.WriteString(ansiReset)

	_ = writeChunked(w, c.renderBuf.String())
}

func (c *Canvas) writeCursor(col, row int) {
	c.renderBuf.Write(appendCursor(c.numBuf[:0], col, row))
}

func (c *Canvas) writeColors(fg, bg RGB) {
	c.renderBuf.WriteString("\033[38;2;")
	c.writeRGB(fg)
	c.renderBuf.WriteString(";48;2;")
	c.writeRGB(bg)
	c.renderBuf.WriteByte('m')
}

func (c *Canvas) writeRGB(v RGB) {
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(v.R), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(v.G), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(v.B), 10))
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars
	if !hasH && !hasV {
		return
	}

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	rule := strings.Repeat("─", c.termWidth)

	buf := []byte(ansiDim)
	line := func(col, row int, s string) {
		buf = appendCursor(buf, col, row)
		buf = append(buf, s...)
	}
	if hasV {
		if hasH {
			line(left, top, "┌"+rule+"┐")
			line(left, bottom, "└"+rule+"┘")
		} else {
			line(c.offsetCol+1, top, rule)
			line(c.offsetCol+1, bottom, rule)
		}
	}
	if hasH {
		startRow, endRow := top+1, bottom
		if !hasV {
			startRow, endRow = c.offsetRow+1, c.offsetRow+c.termHeight+1
		}
		for row := startRow; row < endRow; row++ {
			line(left, row, "│")
			line(right, row, "│")
		}
	}
	buf = append(buf, ansiReset...)

	w.Write(buf)
}

// PixelToCell converts pixel coordinates to a 0-based terminal cell.
func PixelToCell(x, y float64) (col, row int) {
	return int(math.Floor(x)), int(math.Floor(y / 2))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
