// Package parallax moves a container's layers vertically as the page scrolls.
// Foreground layers (earlier in document order) get a slightly larger
// displacement bound than background layers, and every layer eases toward
// its target instead of jumping to it.
package parallax

import (
	"errors"
	"fmt"
	"math"

	"github.com/tomz197/nightsky/internal/host"
)

const (
	// DefaultVisibilityThreshold is used when Options.VisibilityThreshold is zero.
	DefaultVisibilityThreshold = 0.1

	// depthBoost is the extra bound the front layer gets over the back one.
	depthBoost = 0.05

	// SmoothingFactor is the fraction of the remaining distance covered per scroll event.
	SmoothingFactor = 0.1
)

// rootMargin pre-arms the watcher before the container is fully in frame.
var rootMargin = host.Margin{Left: 0.7}

var (
	// ErrContainerNotFound is returned when the container selector matches nothing.
	ErrContainerNotFound = errors.New("parallax: container not found")
	// ErrNoLayers is returned when the child selector matches nothing inside the container.
	ErrNoLayers = errors.New("parallax: no layers in container")
)

// Element is a node the effect reads layout from or moves.
type Element interface {
	QuerySelectorAll(selector string) []Element
	BoundingClientRect() host.Rect
	SetTranslateY(y float64)
}

// Document resolves the container and delivers scroll and visibility events.
type Document interface {
	QuerySelector(selector string) (Element, bool)
	ObserveIntersection(target Element, opts host.ObserverOptions, fn func(host.IntersectionEntry)) host.Subscription
	OnScroll(fn func()) host.Subscription
}

// Options configures an Effect.
type Options struct {
	ContainerSelector   string
	ChildSelector       string
	MaxDisplacement     float64 // document units
	VisibilityThreshold float64 // fraction of the container; 0 or non-finite means DefaultVisibilityThreshold
}

type layer struct {
	el     Element
	offset float64 // last applied translation
}

// Effect is a running parallax binding. All methods must be called from the
// host's event thread.
type Effect struct {
	container       Element
	layers          []layer
	maxDisplacement float64
	visible         bool

	scrollSub  host.Subscription
	observeSub host.Subscription
	closed     bool
}

// New resolves the container and its layers in doc and starts listening for
// scroll and visibility changes.
func New(doc Document, opts Options) (*Effect, error) {
	container, ok := doc.QuerySelector(opts.ContainerSelector)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrContainerNotFound, opts.ContainerSelector)
	}

	children := container.QuerySelectorAll(opts.ChildSelector)
	if len(children) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoLayers, opts.ChildSelector)
	}

	threshold := opts.VisibilityThreshold
	if threshold == 0 || math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		threshold = DefaultVisibilityThreshold
	}

	e := &Effect{
		container:       container,
		layers:          make([]layer, len(children)),
		maxDisplacement: opts.MaxDisplacement,
	}
	for i, c := range children {
		e.layers[i] = layer{el: c}
	}

	e.observeSub = doc.ObserveIntersection(container, host.ObserverOptions{
		Threshold:  threshold,
		RootMargin: rootMargin,
	}, func(entry host.IntersectionEntry) {
		e.visible = entry.IsIntersecting
	})
	e.scrollSub = doc.OnScroll(e.HandleScroll)

	return e, nil
}

// HandleScroll moves every layer one smoothing step toward its target. It
// does nothing while the container is out of view.
func (e *Effect) HandleScroll() {
	if e.closed || !e.visible {
		return
	}

	top := e.container.BoundingClientRect().Top()
	total := len(e.layers)

	for i := range e.layers {
		l := &e.layers[i]
		bound := LayerBound(e.maxDisplacement, i, total)
		target := TargetOffset(top, i, total, bound)
		l.offset = Smooth(l.offset, target)
		l.el.SetTranslateY(l.offset)
	}
}

// Visible reports the container's last observed visibility.
func (e *Effect) Visible() bool {
	return e.visible
}

// Offsets returns the applied translation of each layer, front first.
func (e *Effect) Offsets() []float64 {
	out := make([]float64, len(e.layers))
	for i, l := range e.layers {
		out[i] = l.offset
	}
	return out
}

// Close detaches the scroll listener and the visibility watcher.
func (e *Effect) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.scrollSub.Cancel()
	e.observeSub.Cancel()
}

// DepthMultiplier scales the displacement bound of layer i out of total:
// 1.05 for the front layer, falling linearly to 1 for the back one. A single
// layer gets 1.
func DepthMultiplier(i, total int) float64 {
	if total <= 1 {
		return 1
	}
	return 1 + (1-float64(i)/float64(total-1))*depthBoost
}

// LayerBound is the largest translation layer i may receive. A negative
// maxDisplacement bounds by its magnitude; a non-finite one pins the layer.
func LayerBound(maxDisplacement float64, i, total int) float64 {
	if math.IsNaN(maxDisplacement) || math.IsInf(maxDisplacement, 0) {
		return 0
	}
	return math.Abs(maxDisplacement) * DepthMultiplier(i, total)
}

// TargetOffset is the container's top edge scaled by the layer's depth
// fraction, clamped to [-bound, bound].
func TargetOffset(containerTop float64, i, total int, bound float64) float64 {
	if total <= 0 || math.IsNaN(containerTop) {
		return 0
	}
	raw := containerTop * float64(i+1) / float64(total)
	return math.Max(math.Min(raw, bound), -bound)
}

// Smooth moves previous one SmoothingFactor step toward target.
func Smooth(previous, target float64) float64 {
	return previous + (target-previous)*SmoothingFactor
}
