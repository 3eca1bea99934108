// Package renderer draws the particle field and its glow onto a 2D surface.
package renderer

import "image/color"

// Filter is applied to the frame copy before it is composited back.
// A zero Brightness means unchanged brightness.
type Filter struct {
	Blur       float64 // Gaussian standard deviation in pixels
	Brightness float64 // RGB multiplier
}

// Gain returns the effective brightness multiplier.
func (f Filter) Gain() float64 {
	if f.Brightness == 0 {
		return 1
	}
	return f.Brightness
}

// Surface is an immediate-mode 2D raster the engine paints onto.
type Surface interface {
	Size() (w, h int)
	Resize(w, h int)
	Clear(c color.RGBA)
	// StrokeLine draws a round-capped line. c carries straight (non-premultiplied) alpha.
	StrokeLine(x1, y1, x2, y2, width float64, c color.RGBA)
	// CompositeAdditive redraws the current frame onto itself through f using
	// additive ("lighter") blending.
	CompositeAdditive(f Filter)
	FillText(text string, x, y, size float64, c color.RGBA)
}

// Layer is content drawn above the effect each frame.
type Layer interface {
	Draw(s Surface)
}
