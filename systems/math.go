package systems

import "math"

// TAU is one full turn in radians.
const TAU = 2 * math.Pi

// lerp moves from a toward b by t.
func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// FadeInOut is a tent function over a lifespan m: 0 at t=0, 1 at t=m/2, back to 0 at t=m.
// Returns 0 for a non-positive span.
func FadeInOut(t, m float64) float64 {
	if m <= 0 {
		return 0
	}
	hm := 0.5 * m
	return math.Abs(math.Mod(t+hm, m)-hm) / hm
}
