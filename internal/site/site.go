// Package site assembles the portfolio page: a fixed starfield canvas behind
// a hero, a parallax mountain section, a projects list and a footer.
package site

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tomz197/nightsky/internal/host"
	"github.com/tomz197/nightsky/internal/page"
	"github.com/tomz197/nightsky/internal/parallax"
	"github.com/tomz197/nightsky/internal/starfield"
)

// Selectors the parallax effect binds to.
const (
	ContainerSelector = ".parallax"
	LayerSelector     = ".layer"
)

// Layout, in cells.
const (
	sectionGap    = 3
	mountainRows  = 14
	ridgeRows     = 9
	layerStep     = 2
	maxTextWidth  = 64
	minHeroHeight = 10
)

var (
	headingPaint = host.Paint{R: 230, G: 230, B: 255, A: 1}
	textPaint    = host.Paint{R: 170, G: 175, B: 205, A: 1}
	dimPaint     = host.Paint{R: 110, G: 115, B: 145, A: 1}
	ridgePaints  = []host.Paint{
		{R: 70, G: 80, B: 120, A: 1},
		{R: 100, G: 110, B: 160, A: 1},
		{R: 140, G: 150, B: 200, A: 1},
	}
)

// TextRun is one line of text to paint, in viewport cells.
type TextRun struct {
	Col, Row int
	Text     string
	Paint    host.Paint
	Z        int
}

// Site is an assembled page with its effects running.
type Site struct {
	doc *page.Document
	cfg Config

	sky       *page.Element
	hero      *page.Element
	title     *page.Element
	tagline   *page.Element
	hint      *page.Element
	mountains *page.Element
	layers    []*page.Element
	projects  *page.Element
	heading   *page.Element
	entries   []*page.Element
	footer    *page.Element

	effect *parallax.Effect
	field  *starfield.Field

	resizeSub host.Subscription
	closed    bool
}

// Build populates doc, binds the parallax effect to the mountain layers and
// starts the starfield on the document's animation frames. On error doc is
// left as it was.
func Build(doc *page.Document, cfg Config, logger *log.Logger) (*Site, error) {
	if logger == nil {
		logger = log.Default()
	}
	s := &Site{doc: doc, cfg: cfg}

	s.sky = doc.Create("canvas", "starfield")
	s.sky.Fixed, s.sky.Stretch = true, true
	s.sky.Z = -1

	s.title = doc.Create("h1", "title")
	s.tagline = doc.Create("p", "", "tagline")
	s.hint = doc.Create("p", "", "hint")
	s.hero = doc.Create("section", "hero").Append(s.title, s.tagline, s.hint)

	s.mountains = doc.Create("section", "mountains", "parallax")
	for i := range ridges {
		l := doc.Create("div", "", "layer")
		l.Paint = ridgePaints[i]
		l.Z = len(ridges) - i
		s.layers = append(s.layers, l)
		s.mountains.Append(l)
	}

	s.heading = doc.Create("h2", "")
	s.projects = doc.Create("section", "projects").Append(s.heading)
	for range cfg.Projects {
		e := doc.Create("div", "", "project")
		s.entries = append(s.entries, e)
		s.projects.Append(e)
	}

	s.footer = doc.Create("footer", "")

	doc.Body().Append(s.sky, s.hero, s.mountains, s.projects, s.footer)
	s.layout()
	s.resizeSub = doc.OnResize(s.layout)

	effect, err := parallax.New(parallaxDocument{doc}, parallax.Options{
		ContainerSelector:   ContainerSelector,
		ChildSelector:       LayerSelector,
		MaxDisplacement:     cfg.MaxDisplacement,
		VisibilityThreshold: cfg.VisibilityThreshold,
	})
	if err != nil {
		s.resizeSub.Cancel()
		s.detach()
		return nil, fmt.Errorf("site: %w", err)
	}
	s.effect = effect

	s.field = starfield.New(s.sky, doc, starfield.Options{
		StarCount:        cfg.StarCount,
		StarRadius:       cfg.StarRadius,
		CometProbability: cfg.CometProbability,
		CometFade:        cfg.CometFade,
		CometSpeed:       cfg.CometSpeed,
		TrailCap:         cfg.TrailCap,
		Logger:           logger,
	})
	s.field.Start(doc)

	logger.Debug("Site assembled", "layers", len(s.layers), "stars", cfg.StarCount, "inert", s.field.Inert())
	return s, nil
}

// layout sizes every section to the current viewport.
func (s *Site) layout() {
	w, h := s.doc.Viewport()
	cols := int(w)
	textW := max(min(cols-4, maxTextWidth), 1)
	left := float64(max(0, (cols-textW)/2))

	s.sky.Box = host.Rect{W: w, H: h}

	heroH := math.Max(h, minHeroHeight)
	mid := math.Floor(heroH/2) - 2
	s.hero.Box = host.Rect{W: w, H: heroH}
	setText(s.title, host.Rect{Y: mid, W: w, H: 1}, headingPaint, center(cols, spaced(s.cfg.Title)))
	setText(s.tagline, host.Rect{Y: mid + 2, W: w, H: 1}, textPaint, center(cols, s.cfg.Tagline))
	setText(s.hint, host.Rect{Y: heroH - 2, W: w, H: 1}, dimPaint, center(cols, "scroll ↓"))

	y := heroH + sectionGap
	s.mountains.Box = host.Rect{Y: y, W: w, H: mountainRows}
	for i, l := range s.layers {
		l.Box = host.Rect{Y: float64(mountainRows - ridgeRows - i*layerStep), W: w, H: ridgeRows}
		l.Lines = ridges[i].lines(cols, ridgeRows)
	}
	y += mountainRows + sectionGap

	rows := 0.0
	setText(s.heading, host.Rect{X: left, W: float64(textW), H: 1}, headingPaint, "Projects")
	rows += 2
	wrap := lipgloss.NewStyle().Width(max(textW-2, 1))
	for i, e := range s.entries {
		p := s.cfg.Projects[i]
		lines := []string{"▸ " + p.Name}
		for _, l := range strings.Split(wrap.Render(p.Summary), "\n") {
			lines = append(lines, "  "+strings.TrimRight(l, " "))
		}
		setText(e, host.Rect{X: left, Y: rows, W: float64(textW), H: float64(len(lines))}, textPaint, lines...)
		rows += float64(len(lines)) + 1
	}
	s.projects.Box = host.Rect{Y: y, W: w, H: rows}
	y += rows + sectionGap

	setText(s.footer, host.Rect{Y: y, W: w, H: 3}, dimPaint,
		center(cols, "· · ·"),
		center(cols, s.cfg.Title+" · made under the night sky"),
		center(cols, "j/k or wheel to scroll · q to leave"),
	)

	s.doc.ScrollBy(0)
}

func setText(el *page.Element, box host.Rect, p host.Paint, lines ...string) {
	el.Box = box
	el.Paint = p
	el.Lines = lines
}

func center(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

// spaced letter-spaces a heading.
func spaced(s string) string {
	return strings.Join(strings.Split(strings.ToUpper(s), ""), " ")
}

// TextRuns returns the visible text of the page in paint order.
func (s *Site) TextRuns() []TextRun {
	_, vh := s.doc.Viewport()
	var runs []TextRun
	s.doc.Walk(func(el *page.Element) bool {
		if len(el.Lines) == 0 {
			return true
		}
		r := el.BoundingClientRect()
		col := int(math.Round(r.X))
		top := int(math.Round(r.Y))
		for i, line := range el.Lines {
			row := top + i
			if row < 0 || float64(row) >= vh {
				continue
			}
			runs = append(runs, TextRun{Col: col, Row: row, Text: line, Paint: el.Paint, Z: el.Z})
		}
		return true
	})
	slices.SortStableFunc(runs, func(a, b TextRun) int { return cmp.Compare(a.Z, b.Z) })
	return runs
}

// detach takes the page's sections back out of the document.
func (s *Site) detach() {
	for _, el := range []*page.Element{s.sky, s.hero, s.mountains, s.projects, s.footer} {
		el.Remove()
	}
	s.doc.ScrollTo(s.doc.ScrollY())
}

// Sky returns the starfield canvas element.
func (s *Site) Sky() *page.Element {
	return s.sky
}

// Effect returns the parallax effect bound to the mountain layers.
func (s *Site) Effect() *parallax.Effect {
	return s.effect
}

// Field returns the running starfield.
func (s *Site) Field() *starfield.Field {
	return s.field
}

// Close stops both effects and detaches the layout listener.
func (s *Site) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.effect.Close()
	s.field.Close()
	s.resizeSub.Cancel()
}
