package page

import "math"

// Scroller eases a document toward a target offset. Each Step is one
// scroll event, so listeners see a smooth run of small moves rather than a
// single jump.
type Scroller struct {
	doc       *Document
	target    float64
	smoothing float64 // fraction of the remaining distance per step
	snap      float64 // distance below which a step lands on the target
}

// NewScroller returns a scroller for d starting at its current offset.
func (d *Document) NewScroller(smoothing, snap float64) *Scroller {
	return &Scroller{doc: d, target: d.scrollY, smoothing: smoothing, snap: snap}
}

// Target returns the offset being approached.
func (s *Scroller) Target() float64 {
	return s.target
}

// SetTarget clamps y to the scrollable range and makes it the target.
func (s *Scroller) SetTarget(y float64) {
	if math.IsNaN(y) {
		return
	}
	s.target = math.Max(0, math.Min(y, s.doc.MaxScroll()))
}

// Apply moves the target by lines plus pages of viewport height less
// overlap rows. top and bottom jump to either end; bottom wins.
func (s *Scroller) Apply(lines, pages int, top, bottom bool, overlap float64) {
	_, viewH := s.doc.Viewport()
	pageRows := math.Max(viewH-overlap, 1)

	target := s.target + float64(lines) + float64(pages)*pageRows
	if top {
		target = 0
	}
	if bottom {
		target = s.doc.MaxScroll()
	}
	s.SetTarget(target)
}

// Step moves the document one easing step toward the target. The target is
// re-clamped first since the content may have changed size.
func (s *Scroller) Step() {
	s.SetTarget(s.target)

	remaining := s.target - s.doc.scrollY
	if math.Abs(remaining) < s.snap {
		s.doc.ScrollTo(s.target)
		return
	}
	s.doc.ScrollBy(remaining * s.smoothing)
}
