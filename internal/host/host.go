// Package host defines the environment contracts the visual effects consume.
// A host (the terminal document, the desktop window) provides element lookup,
// listener registration, animation frames and a 2D drawing context.
package host

import "time"

// Subscription detaches a registered listener. Cancel is idempotent.
type Subscription interface {
	Cancel()
}

// SubscriptionFunc adapts a plain function to Subscription.
type SubscriptionFunc func()

// Cancel calls f.
func (f SubscriptionFunc) Cancel() {
	if f != nil {
		f()
	}
}

// FrameID identifies a pending animation frame request.
type FrameID uint64

// FrameScheduler runs callbacks on the host's next display refresh.
type FrameScheduler interface {
	RequestAnimationFrame(fn func(now time.Time)) FrameID
	CancelAnimationFrame(id FrameID)
}

// Window delivers viewport-level events. Scroll listeners are passive: they
// observe scrolling and cannot alter it.
type Window interface {
	OnResize(fn func()) Subscription
	OnScroll(fn func()) Subscription
}

// ObserverOptions configures an intersection watcher.
type ObserverOptions struct {
	// Threshold is the fraction of the target's area that must intersect
	// the root before the target counts as intersecting.
	Threshold float64
	// RootMargin grows (or shrinks, when negative) the viewport before the
	// intersection is computed.
	RootMargin Margin
}

// IntersectionEntry reports a change in a target's visibility.
type IntersectionEntry struct {
	IsIntersecting bool
	Ratio          float64
	Bounds         Rect
}
