package renderer

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Particle strokes are fully saturated at 60% lightness.
const (
	strokeSaturation = 1.0
	strokeLightness  = 0.6
)

// HSLA converts hsla(hue, s, l, alpha) to a straight-alpha RGBA colour.
// Hue wraps at 360; alpha is clamped to [0, 1].
func HSLA(hue, s, l, alpha float64) color.RGBA {
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}
	r, g, b := colorful.Hsl(hue, s, l).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(alpha) * 255))}
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
