package page

import (
	"github.com/tomz197/nightsky/internal/host"
)

type observer struct {
	target    *Element
	opts      host.ObserverOptions
	fn        func(host.IntersectionEntry)
	reported  bool
	last      bool
	cancelled bool
}

// ObserveIntersection watches target's overlap with the margin-expanded
// viewport. fn runs once immediately and again whenever the target crosses
// the threshold.
func (d *Document) ObserveIntersection(target *Element, opts host.ObserverOptions, fn func(host.IntersectionEntry)) host.Subscription {
	o := &observer{target: target, opts: opts, fn: fn}
	d.observers = append(d.observers, o)
	d.check(o)
	return host.SubscriptionFunc(func() {
		if o.cancelled {
			return
		}
		o.cancelled = true
		kept := d.observers[:0]
		for _, x := range d.observers {
			if x != o {
				kept = append(kept, x)
			}
		}
		clear(d.observers[len(kept):])
		d.observers = kept
	})
}

// CheckIntersections re-evaluates every observer against the current layout.
func (d *Document) CheckIntersections() {
	for _, o := range append([]*observer(nil), d.observers...) {
		if !o.cancelled {
			d.check(o)
		}
	}
}

// Intersection computes the entry for target under opts.
func (d *Document) Intersection(target *Element, opts host.ObserverOptions) host.IntersectionEntry {
	bounds := target.BoundingClientRect()
	root := opts.RootMargin.Expand(host.Rect{W: d.viewW, H: d.viewH})
	ratio := intersectionRatio(bounds, root)
	return host.IntersectionEntry{
		IsIntersecting: ratio > 0 && ratio >= opts.Threshold,
		Ratio:          ratio,
		Bounds:         bounds,
	}
}

func (d *Document) check(o *observer) {
	entry := d.Intersection(o.target, o.opts)
	if o.reported && entry.IsIntersecting == o.last {
		return
	}
	o.reported = true
	o.last = entry.IsIntersecting
	o.fn(entry)
}

// intersectionRatio is the share of target's area inside root. A target
// with no area counts as fully visible when its origin lies inside root.
func intersectionRatio(target, root host.Rect) float64 {
	if target.Empty() {
		if target.X >= root.X && target.X <= root.X+root.W &&
			target.Y >= root.Y && target.Y <= root.Y+root.H {
			return 1
		}
		return 0
	}
	return target.Intersect(root).Area() / target.Area()
}
