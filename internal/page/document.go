// Package page is a small document model the visual effects run against: a
// tree of boxed elements with selectors, a scrollable viewport, resize and
// scroll listeners, intersection observers and an animation-frame queue.
//
// Units are layout cells. A host maps cells to its own pixels through the
// document's pixel scale (a terminal cell is one column wide and two
// half-block pixels tall).
package page

import (
	"math"
	"time"

	"github.com/tomz197/nightsky/internal/host"
)

// Options configures a Document.
type Options struct {
	Width, Height float64 // viewport, in cells
	PixelScaleX   float64 // pixels per cell horizontally; 0 means 1
	PixelScaleY   float64 // pixels per cell vertically; 0 means 1
	Rasters       RasterFactory
}

// Document owns the element tree and all event dispatch. It is not safe for
// concurrent use; hosts drive it from a single loop.
type Document struct {
	body *Element

	viewW, viewH float64
	scaleX       float64
	scaleY       float64
	scrollY      float64

	scroll    listeners
	resize    listeners
	observers []*observer
	frames    frameQueue
	rasters   RasterFactory
}

// Compile-time checks against the host contracts.
var (
	_ host.Window         = (*Document)(nil)
	_ host.FrameScheduler = (*Document)(nil)
)

// New creates an empty document with a body element.
func New(opts Options) *Document {
	d := &Document{
		viewW:   opts.Width,
		viewH:   opts.Height,
		scaleX:  opts.PixelScaleX,
		scaleY:  opts.PixelScaleY,
		rasters: opts.Rasters,
		frames:  newFrameQueue(),
	}
	if d.scaleX <= 0 {
		d.scaleX = 1
	}
	if d.scaleY <= 0 {
		d.scaleY = 1
	}
	d.body = &Element{Tag: "body", doc: d}
	return d
}

// Body returns the root element.
func (d *Document) Body() *Element {
	return d.body
}

// Create returns a detached element. It joins the tree through Append.
func (d *Document) Create(tag, id string, classes ...string) *Element {
	return &Element{Tag: tag, ID: id, Classes: classes, doc: d}
}

// Viewport returns the viewport size in cells.
func (d *Document) Viewport() (w, h float64) {
	return d.viewW, d.viewH
}

// PixelScale returns pixels per cell on each axis.
func (d *Document) PixelScale() (x, y float64) {
	return d.scaleX, d.scaleY
}

// ContentHeight is the bottom edge of the lowest in-flow element.
func (d *Document) ContentHeight() float64 {
	var bottom float64
	for _, c := range d.body.children {
		if c.Fixed {
			continue
		}
		bottom = math.Max(bottom, c.Box.Y+c.Box.H)
	}
	return bottom
}

// MaxScroll is the largest valid scroll offset.
func (d *Document) MaxScroll() float64 {
	return math.Max(0, d.ContentHeight()-d.viewH)
}

// ScrollY returns the current vertical scroll offset.
func (d *Document) ScrollY() float64 {
	return d.scrollY
}

// ScrollTo moves the viewport to y, clamped to the scrollable range, and
// notifies scroll listeners if the offset changed.
func (d *Document) ScrollTo(y float64) {
	if math.IsNaN(y) {
		return
	}
	y = math.Max(0, math.Min(y, d.MaxScroll()))
	if y == d.scrollY {
		return
	}
	d.scrollY = y
	d.scroll.dispatch()
}

// ScrollBy moves the viewport by dy cells.
func (d *Document) ScrollBy(dy float64) {
	d.ScrollTo(d.scrollY + dy)
}

// SetViewport resizes the viewport. Stretched elements follow it, the
// scroll offset is re-clamped, and resize listeners are notified.
func (d *Document) SetViewport(w, h float64) {
	if w == d.viewW && h == d.viewH {
		return
	}
	d.viewW, d.viewH = w, h
	d.body.walk(func(el *Element) bool {
		if el.Stretch {
			el.Box.W, el.Box.H = w, h
		}
		return true
	})
	d.ScrollTo(d.scrollY)
	d.resize.dispatch()
}

// OnScroll registers a passive scroll listener.
func (d *Document) OnScroll(fn func()) host.Subscription {
	return d.scroll.add(fn)
}

// OnResize registers a viewport resize listener.
func (d *Document) OnResize(fn func()) host.Subscription {
	return d.resize.add(fn)
}

// RequestAnimationFrame queues fn for the next RunFrame.
func (d *Document) RequestAnimationFrame(fn func(now time.Time)) host.FrameID {
	return d.frames.request(fn)
}

// CancelAnimationFrame drops a queued callback. Unknown ids are ignored.
func (d *Document) CancelAnimationFrame(id host.FrameID) {
	d.frames.cancel(id)
}

// PendingFrames counts callbacks waiting for the next frame.
func (d *Document) PendingFrames() int {
	return d.frames.len()
}

// RunFrame performs one display refresh: intersection observers are
// evaluated, then the animation callbacks queued before this call run.
// Callbacks requested while the frame runs wait for the next one.
func (d *Document) RunFrame(now time.Time) {
	d.CheckIntersections()
	d.frames.run(now)
}

// Walk visits every element in document order, skipping the subtree of any
// element for which fn returns false.
func (d *Document) Walk(fn func(el *Element) bool) {
	for _, c := range d.body.children {
		c.walk(fn)
	}
}

// listeners is an ordered set of callbacks that tolerates cancellation
// during dispatch.
type listeners struct {
	items []*listener
}

type listener struct {
	fn        func()
	cancelled bool
}

func (l *listeners) add(fn func()) host.Subscription {
	item := &listener{fn: fn}
	l.items = append(l.items, item)
	return host.SubscriptionFunc(func() {
		if item.cancelled {
			return
		}
		item.cancelled = true
		kept := l.items[:0]
		for _, it := range l.items {
			if it != item {
				kept = append(kept, it)
			}
		}
		clear(l.items[len(kept):])
		l.items = kept
	})
}

func (l *listeners) dispatch() {
	snapshot := append([]*listener(nil), l.items...)
	for _, it := range snapshot {
		if !it.cancelled {
			it.fn()
		}
	}
}

func (l *listeners) len() int {
	return len(l.items)
}
