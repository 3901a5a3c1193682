package gfx

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/nightsky/internal/input"
	"github.com/tomz197/nightsky/internal/loop/config"
	"github.com/tomz197/nightsky/internal/page"
	"github.com/tomz197/nightsky/internal/site"
)

var background = color.RGBA{R: 5, G: 5, B: 15, A: 255}

// Key repeat timing, in ticks.
const (
	repeatDelay    = 15
	repeatInterval = 3
)

// Game implements ebiten.Game for the page.
type Game struct {
	doc      *page.Document
	site     *site.Site
	scroller *page.Scroller
	sky      *Context
	logger   *log.Logger

	cellW, cellH  int
	width, height int     // window size in pixels
	wheel         float64 // wheel travel not yet turned into lines
}

// Compile-time check that Game implements ebiten.Game.
var _ ebiten.Game = (*Game)(nil)

// NewGame builds the page for a width x height pixel window.
func NewGame(cfg site.Config, width, height int, logger *log.Logger) (*Game, error) {
	if logger == nil {
		logger = log.Default()
	}
	g := &Game{
		logger: logger,
		cellW:  config.DesktopCellWidth,
		cellH:  config.DesktopCellHeight,
		width:  width,
		height: height,
	}

	cols, rows := g.cells(width, height)
	g.doc = page.New(page.Options{
		Width:       cols,
		Height:      rows,
		PixelScaleX: float64(g.cellW),
		PixelScaleY: float64(g.cellH),
		Rasters: func(pw, ph int) page.Raster {
			g.sky = NewContext(pw, ph)
			return g.sky
		},
	})

	s, err := site.Build(g.doc, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build page: %w", err)
	}
	g.site = s
	g.scroller = g.doc.NewScroller(config.ScrollSmoothing, config.ScrollSnap)
	return g, nil
}

func (g *Game) cells(width, height int) (cols, rows float64) {
	return math.Floor(float64(width) / float64(g.cellW)), math.Floor(float64(height) / float64(g.cellH))
}

// Update applies input, eases the scroll position and runs one document frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	cols, rows := g.cells(g.width, g.height)
	g.doc.SetViewport(cols, rows)

	in := g.readInput()
	g.scroller.Apply(in.ScrollLines, in.Pages, in.Top, in.Bottom, config.PageOverlap)
	g.scroller.Step()

	g.doc.RunFrame(time.Now())
	return nil
}

func (g *Game) readInput() input.Input {
	var in input.Input

	_, dy := ebiten.Wheel()
	in.ScrollLines += wheelLines(&g.wheel, dy)

	held := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if keyRepeat(inpututil.KeyPressDuration(k)) {
				return true
			}
		}
		return false
	}
	if held(ebiten.KeyArrowDown, ebiten.KeyJ) {
		in.ScrollLines++
	}
	if held(ebiten.KeyArrowUp, ebiten.KeyK) {
		in.ScrollLines--
	}
	if held(ebiten.KeyPageDown, ebiten.KeySpace) {
		in.Pages++
	}
	if held(ebiten.KeyPageUp) {
		in.Pages--
	}
	in.Top = inpututil.IsKeyJustPressed(ebiten.KeyHome)
	in.Bottom = inpututil.IsKeyJustPressed(ebiten.KeyEnd)
	return in
}

// wheelLines turns wheel travel into whole lines, carrying the remainder in
// acc. Positive dy is wheel up.
func wheelLines(acc *float64, dy float64) int {
	*acc -= dy * input.WheelLines
	n := int(*acc)
	*acc -= float64(n)
	return n
}

// keyRepeat reports whether a key held for d ticks fires this tick.
func keyRepeat(d int) bool {
	return d == 1 || (d > repeatDelay && (d-repeatDelay)%repeatInterval == 0)
}

// Draw paints the sky, then the page text.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	if g.sky != nil {
		screen.DrawImage(g.sky.Image(), nil)
	}

	for _, run := range g.site.TextRuns() {
		x := float32(run.Col * g.cellW)
		y := float32(run.Row * g.cellH)
		text, blocks := splitRun(run.Text)
		col := toColor(run.Paint)
		for _, b := range blocks {
			bx := x + float32(b.col*g.cellW)
			by := y + float32(b.top*float64(g.cellH))
			vector.DrawFilledRect(screen, bx, by, float32(g.cellW), float32(b.height*float64(g.cellH)), col, false)
		}
		if strings.TrimSpace(text) != "" {
			ebitenutil.DebugPrintAt(screen, text, int(x), int(y))
		}
	}
}

// Layout tracks the window size; the viewport follows on the next Update.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Close disposes the page.
func (g *Game) Close() {
	g.site.Close()
	if g.sky != nil {
		g.sky.Image().Deallocate()
	}
}

// block is a cell-filling glyph drawn as a rectangle. top and height are
// fractions of the cell.
type block struct {
	col         int
	top, height float64
}

// splitRun separates block glyphs, which the debug font lacks, from text.
// Blocks are blanked in the returned text and other non-ASCII runes get an
// ASCII stand-in so columns stay aligned.
func splitRun(s string) (string, []block) {
	var b strings.Builder
	var blocks []block
	col := 0
	for _, r := range s {
		switch r {
		case '█', '▓', '▒', '░':
			blocks = append(blocks, block{col: col, top: 0, height: 1})
			r = ' '
		case '▄':
			blocks = append(blocks, block{col: col, top: 0.5, height: 0.5})
			r = ' '
		case '▀':
			blocks = append(blocks, block{col: col, top: 0, height: 0.5})
			r = ' '
		default:
			r = asciiFallback(r)
		}
		b.WriteRune(r)
		col++
	}
	return b.String(), blocks
}

func asciiFallback(r rune) rune {
	switch r {
	case '▸':
		return '>'
	case '·':
		return '.'
	case '↓':
		return 'v'
	case '✦':
		return '*'
	}
	if r > 0x7e {
		return '?'
	}
	return r
}
