package page

import (
	"slices"

	"github.com/tomz197/nightsky/internal/host"
)

// Element is a boxed node of the document.
type Element struct {
	Tag     string
	ID      string
	Classes []string

	// Box is relative to the parent's box, in cells.
	Box host.Rect
	// Fixed elements are anchored to the viewport and ignore scrolling.
	Fixed bool
	// Stretch elements track the viewport size.
	Stretch bool

	// Lines is the element's text content, one entry per row.
	Lines []string
	Paint host.Paint
	// Z orders painting among overlapping elements; higher paints later.
	Z int

	translateY float64

	doc      *Document
	parent   *Element
	children []*Element

	// canvas backing store
	raster         Raster
	pixelW, pixelH int
	sized          bool
}

// Append attaches children in order and returns e.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		if c.parent != nil {
			c.parent.remove(c)
		}
		c.parent = e
		c.adopt(e.doc)
		e.children = append(e.children, c)
	}
	return e
}

func (e *Element) adopt(d *Document) {
	e.doc = d
	for _, c := range e.children {
		c.adopt(d)
	}
}

func (e *Element) remove(c *Element) {
	e.children = slices.DeleteFunc(e.children, func(x *Element) bool { return x == c })
	c.parent = nil
}

// Remove detaches e from its parent. Detached elements keep their subtree.
func (e *Element) Remove() {
	if e.parent != nil {
		e.parent.remove(e)
	}
}

// Parent returns the containing element, or nil for the body and detached elements.
func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns the direct children in order.
func (e *Element) Children() []*Element {
	return slices.Clone(e.children)
}

// HasClass reports whether the element carries class.
func (e *Element) HasClass(class string) bool {
	return slices.Contains(e.Classes, class)
}

// SetTranslateY sets the element's vertical translation in cells.
func (e *Element) SetTranslateY(y float64) {
	e.translateY = y
}

// TranslateY returns the element's vertical translation.
func (e *Element) TranslateY() float64 {
	return e.translateY
}

// IsFixed reports whether the element or one of its ancestors is fixed.
func (e *Element) IsFixed() bool {
	for el := e; el != nil; el = el.parent {
		if el.Fixed {
			return true
		}
	}
	return false
}

// PageRect is the element's box in document coordinates, including the
// translation of the element and its ancestors.
func (e *Element) PageRect() host.Rect {
	r := host.Rect{W: e.Box.W, H: e.Box.H}
	for el := e; el != nil; el = el.parent {
		r.X += el.Box.X
		r.Y += el.Box.Y + el.translateY
	}
	return r
}

// BoundingClientRect is the element's box relative to the viewport.
func (e *Element) BoundingClientRect() host.Rect {
	r := e.PageRect()
	if e.doc != nil && !e.IsFixed() {
		r.Y -= e.doc.scrollY
	}
	return r
}

// QuerySelector returns the first descendant matching selector.
func (e *Element) QuerySelector(selector string) (*Element, bool) {
	all := e.queryAll(selector, true)
	if len(all) == 0 {
		return nil, false
	}
	return all[0], true
}

// QuerySelectorAll returns the descendants matching selector in document order.
func (e *Element) QuerySelectorAll(selector string) []*Element {
	return e.queryAll(selector, false)
}

func (e *Element) queryAll(selector string, first bool) []*Element {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil
	}
	var out []*Element
	for _, c := range e.children {
		c.walk(func(el *Element) bool {
			if first && len(out) > 0 {
				return false
			}
			if sel.Matches(el) {
				out = append(out, el)
			}
			return true
		})
	}
	return out
}

// QuerySelector returns the first element in the document matching selector.
func (d *Document) QuerySelector(selector string) (*Element, bool) {
	return d.body.QuerySelector(selector)
}

// QuerySelectorAll returns every element in the document matching selector.
func (d *Document) QuerySelectorAll(selector string) []*Element {
	return d.body.QuerySelectorAll(selector)
}

func (e *Element) walk(fn func(el *Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.children {
		c.walk(fn)
	}
}
