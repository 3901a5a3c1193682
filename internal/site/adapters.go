package site

import (
	"github.com/tomz197/nightsky/internal/host"
	"github.com/tomz197/nightsky/internal/page"
	"github.com/tomz197/nightsky/internal/parallax"
)

// parallaxDocument exposes a page.Document to the parallax effect.
type parallaxDocument struct {
	doc *page.Document
}

func (d parallaxDocument) QuerySelector(selector string) (parallax.Element, bool) {
	el, ok := d.doc.QuerySelector(selector)
	if !ok {
		return nil, false
	}
	return parallaxElement{el}, true
}

func (d parallaxDocument) ObserveIntersection(target parallax.Element, opts host.ObserverOptions, fn func(host.IntersectionEntry)) host.Subscription {
	el, ok := target.(parallaxElement)
	if !ok {
		return host.SubscriptionFunc(nil)
	}
	return d.doc.ObserveIntersection(el.Element, opts, fn)
}

func (d parallaxDocument) OnScroll(fn func()) host.Subscription {
	return d.doc.OnScroll(fn)
}

type parallaxElement struct {
	*page.Element
}

func (e parallaxElement) QuerySelectorAll(selector string) []parallax.Element {
	found := e.Element.QuerySelectorAll(selector)
	out := make([]parallax.Element, len(found))
	for i, el := range found {
		out[i] = parallaxElement{el}
	}
	return out
}
