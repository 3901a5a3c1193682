package page

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/nightsky/internal/host"
)

// newTestDocument lays out a 40x10 viewport over 60 rows of content:
// a hero (rows 0-10), a parallax section with three layers (rows 20-30)
// and a footer (rows 50-60).
func newTestDocument() *Document {
	d := New(Options{Width: 40, Height: 10, PixelScaleY: 2})

	hero := d.Create("section", "hero")
	hero.Box = host.Rect{W: 40, H: 10}

	par := d.Create("section", "mountains", "parallax")
	par.Box = host.Rect{Y: 20, W: 40, H: 10}
	for i := range 3 {
		layer := d.Create("div", "", "layer")
		layer.Box = host.Rect{Y: float64(i), W: 40, H: 4}
		par.Append(layer)
	}

	footer := d.Create("footer", "")
	footer.Box = host.Rect{Y: 50, W: 40, H: 10}

	d.Body().Append(hero, par, footer)
	return d
}

func TestSelectors(t *testing.T) {
	d := newTestDocument()

	tests := []struct {
		selector string
		want     int
	}{
		{"section", 2},
		{"#hero", 1},
		{".layer", 3},
		{"div.layer", 3},
		{"section.parallax#mountains", 1},
		{".parallax .layer", 3},
		{"#hero .layer", 0},
		{"footer, #hero", 2},
		{"*", 6},
		{"span", 0},
		{"a..b", 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			assert.Len(t, d.QuerySelectorAll(tt.selector), tt.want)
		})
	}

	par, ok := d.QuerySelector(".parallax")
	require.True(t, ok)
	assert.Len(t, par.QuerySelectorAll(".layer"), 3)
	assert.Empty(t, par.QuerySelectorAll("#hero"), "scoped to descendants")

	_, ok = d.QuerySelector("#missing")
	assert.False(t, ok)
}

func TestParseSelectorErrors(t *testing.T) {
	for _, s := range []string{"", " , ", ".", "div#", "a>b", "p:hover"} {
		_, err := ParseSelector(s)
		assert.ErrorIs(t, err, ErrBadSelector, s)
	}
}

func TestScrollClampsAndNotifies(t *testing.T) {
	d := newTestDocument()
	calls := 0
	sub := d.OnScroll(func() { calls++ })

	assert.Equal(t, 50.0, d.MaxScroll())

	d.ScrollBy(5)
	assert.Equal(t, 5.0, d.ScrollY())
	d.ScrollBy(1000)
	assert.Equal(t, 50.0, d.ScrollY())
	d.ScrollBy(1)
	assert.Equal(t, 2, calls, "no event when clamped in place")
	d.ScrollTo(-3)
	assert.Equal(t, 0.0, d.ScrollY())
	assert.Equal(t, 3, calls)

	sub.Cancel()
	sub.Cancel()
	d.ScrollBy(4)
	assert.Equal(t, 3, calls)
}

func TestListenerCancelDuringDispatch(t *testing.T) {
	d := newTestDocument()
	var order []string
	var second host.Subscription
	d.OnScroll(func() {
		order = append(order, "a")
		second.Cancel()
	})
	second = d.OnScroll(func() { order = append(order, "b") })

	d.ScrollBy(1)
	d.ScrollBy(1)
	assert.Equal(t, []string{"a", "a"}, order)
}

func TestBoundingClientRect(t *testing.T) {
	d := newTestDocument()
	par, _ := d.QuerySelector(".parallax")
	layers := par.QuerySelectorAll(".layer")

	d.ScrollTo(15)
	assert.Equal(t, 5.0, par.BoundingClientRect().Top())
	assert.Equal(t, 7.0, layers[2].BoundingClientRect().Top())

	layers[2].SetTranslateY(-1.5)
	assert.Equal(t, 5.5, layers[2].BoundingClientRect().Top())

	bg := d.Create("canvas", "sky")
	bg.Fixed = true
	bg.Box = host.Rect{W: 40, H: 10}
	d.Body().Append(bg)
	assert.Equal(t, 0.0, bg.BoundingClientRect().Top(), "fixed ignores scroll")
	assert.Equal(t, 60.0, d.ContentHeight(), "fixed is out of flow")
}

func TestSetViewport(t *testing.T) {
	d := newTestDocument()
	bg := d.Create("canvas", "sky")
	bg.Fixed, bg.Stretch = true, true
	d.Body().Append(bg)

	resized, scrolled := 0, 0
	d.OnResize(func() { resized++ })
	d.OnScroll(func() { scrolled++ })

	d.ScrollTo(50)
	d.SetViewport(80, 30)
	assert.Equal(t, 1, resized)
	assert.Equal(t, 30.0, d.ScrollY(), "re-clamped to the new max")
	assert.Equal(t, 2, scrolled)
	assert.Equal(t, host.Rect{W: 80, H: 30}, bg.Box)

	w, h := bg.ClientSize()
	assert.Equal(t, 80.0, w)
	assert.Equal(t, 60.0, h)

	d.SetViewport(80, 30)
	assert.Equal(t, 1, resized)
}

func TestIntersectionObserver(t *testing.T) {
	d := newTestDocument()
	par, _ := d.QuerySelector(".parallax")

	var entries []host.IntersectionEntry
	sub := d.ObserveIntersection(par, host.ObserverOptions{Threshold: 0.1, RootMargin: host.Margin{Left: 0.7}},
		func(e host.IntersectionEntry) { entries = append(entries, e) })

	require.Len(t, entries, 1, "initial report")
	assert.False(t, entries[0].IsIntersecting)

	d.ScrollTo(10) // section at rows 10-20, viewport 0-10: touching only
	d.RunFrame(time.Now())
	assert.Len(t, entries, 1)

	d.ScrollTo(11.5) // 1.5 of 10 rows visible
	d.RunFrame(time.Now())
	require.Len(t, entries, 2)
	assert.True(t, entries[1].IsIntersecting)
	assert.InDelta(t, 0.15, entries[1].Ratio, 1e-9)

	d.ScrollTo(15)
	d.RunFrame(time.Now())
	assert.Len(t, entries, 2, "no report without a threshold crossing")

	d.ScrollTo(40)
	d.RunFrame(time.Now())
	require.Len(t, entries, 3)
	assert.False(t, entries[2].IsIntersecting)

	sub.Cancel()
	d.ScrollTo(15)
	d.RunFrame(time.Now())
	assert.Len(t, entries, 3)
}

func TestIntersectionRatioBelowThreshold(t *testing.T) {
	d := newTestDocument()
	par, _ := d.QuerySelector(".parallax")

	d.ScrollTo(10.5) // 0.5 of 10 rows visible
	e := d.Intersection(par, host.ObserverOptions{Threshold: 0.1})
	assert.InDelta(t, 0.05, e.Ratio, 1e-9)
	assert.False(t, e.IsIntersecting)
}

func TestAnimationFrames(t *testing.T) {
	d := newTestDocument()
	var ran []string

	a := d.RequestAnimationFrame(func(time.Time) {
		ran = append(ran, "a")
		d.RequestAnimationFrame(func(time.Time) { ran = append(ran, "a2") })
	})
	b := d.RequestAnimationFrame(func(time.Time) { ran = append(ran, "b") })
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, d.PendingFrames())

	d.CancelAnimationFrame(b)
	d.CancelAnimationFrame(999)
	d.RunFrame(time.Now())
	assert.Equal(t, []string{"a"}, ran, "requests made during a frame wait for the next")

	d.RunFrame(time.Now())
	assert.Equal(t, []string{"a", "a2"}, ran)
	assert.Zero(t, d.PendingFrames())
}

func TestCancelLaterFrameDuringRun(t *testing.T) {
	d := newTestDocument()
	var ran []string
	var second host.FrameID
	d.RequestAnimationFrame(func(time.Time) {
		ran = append(ran, "first")
		d.CancelAnimationFrame(second)
	})
	second = d.RequestAnimationFrame(func(time.Time) { ran = append(ran, "second") })

	d.RunFrame(time.Now())
	assert.Equal(t, []string{"first"}, ran)
}

type stubRaster struct {
	host.Context2D
	w, h int
}

func (r *stubRaster) Resize(w, h int) { r.w, r.h = w, h }

func TestCanvasContext(t *testing.T) {
	var made *stubRaster
	d := New(Options{Width: 20, Height: 5, PixelScaleY: 2, Rasters: func(w, h int) Raster {
		made = &stubRaster{w: w, h: h}
		return made
	}})
	c := d.Create("canvas", "sky")
	c.Box = host.Rect{W: 20, H: 5}
	d.Body().Append(c)

	ctx, ok := c.GetContext2D()
	require.True(t, ok)
	assert.Same(t, made, ctx)
	assert.Equal(t, 20, made.w)
	assert.Equal(t, 10, made.h)

	c.SetSize(30, 12)
	assert.Equal(t, 30, made.w)
	assert.Equal(t, 12, made.h)

	div := d.Create("div", "")
	d.Body().Append(div)
	_, ok = div.GetContext2D()
	assert.False(t, ok)

	bare := New(Options{Width: 1, Height: 1})
	cv := bare.Create("canvas", "")
	bare.Body().Append(cv)
	_, ok = cv.GetContext2D()
	assert.False(t, ok, "no raster factory")
}

func TestScroller(t *testing.T) {
	d := newTestDocument()
	s := d.NewScroller(0.5, 0.1)
	events := 0
	d.OnScroll(func() { events++ })

	s.Apply(3, 1, false, false, 2) // 3 lines plus a page of 10-2 rows
	assert.Equal(t, 11.0, s.Target())
	assert.Zero(t, d.ScrollY(), "only the target moves")

	s.Step()
	assert.Equal(t, 5.5, d.ScrollY())
	for range 20 {
		s.Step()
	}
	assert.Equal(t, 11.0, d.ScrollY())
	assert.Greater(t, events, 3)

	s.Apply(0, 0, true, true, 2)
	assert.Equal(t, d.MaxScroll(), s.Target(), "bottom wins")
	s.Apply(-1000, 0, false, false, 2)
	assert.Zero(t, s.Target())

	s.SetTarget(40)
	d.SetViewport(40, 30) // max scroll drops to 30
	s.Step()
	assert.Equal(t, 30.0, s.Target())
}

func TestRemove(t *testing.T) {
	d := New(Options{Width: 10, Height: 5})
	a := d.Create("section", "a")
	b := d.Create("p", "", "note")
	a.Append(b)
	a.Box.H = 20
	d.Body().Append(a)
	require.Equal(t, 15.0, d.MaxScroll())

	a.Remove()
	assert.Nil(t, a.Parent())
	assert.Empty(t, d.Body().Children())
	assert.Empty(t, d.QuerySelectorAll(".note"))
	assert.Same(t, a, b.Parent(), "subtree stays intact")
	assert.Zero(t, d.MaxScroll())

	a.Remove()
	assert.Nil(t, a.Parent())
}
