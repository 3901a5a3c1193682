package page

import (
	"math"

	"github.com/tomz197/nightsky/internal/host"
)

// Raster is a canvas backing store.
type Raster interface {
	host.Context2D
	Resize(w, h int)
}

// RasterFactory creates the backing store of a canvas element on its first
// GetContext2D call.
type RasterFactory func(w, h int) Raster

// ClientSize is the element's layout size in pixels.
func (e *Element) ClientSize() (w, h float64) {
	sx, sy := 1.0, 1.0
	if e.doc != nil {
		sx, sy = e.doc.PixelScale()
	}
	return e.Box.W * sx, e.Box.H * sy
}

// SetSize resizes the canvas backing store.
func (e *Element) SetSize(w, h int) {
	e.pixelW, e.pixelH = max(w, 0), max(h, 0)
	e.sized = true
	if e.raster != nil {
		e.raster.Resize(e.pixelW, e.pixelH)
	}
}

// BackingSize returns the canvas backing store size in pixels.
func (e *Element) BackingSize() (w, h int) {
	if !e.sized {
		cw, ch := e.ClientSize()
		return int(math.Round(cw)), int(math.Round(ch))
	}
	return e.pixelW, e.pixelH
}

// GetContext2D returns the 2D context of a canvas element. It fails for
// other tags and for documents without a raster factory.
func (e *Element) GetContext2D() (host.Context2D, bool) {
	if e.Tag != "canvas" || e.doc == nil || e.doc.rasters == nil {
		return nil, false
	}
	if e.raster == nil {
		w, h := e.BackingSize()
		e.raster = e.doc.rasters(w, h)
		if e.raster == nil {
			return nil, false
		}
	}
	return e.raster, true
}
