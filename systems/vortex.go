package systems

import "math"

// velocityBlend is how far the stored velocity moves toward the field direction each frame.
const velocityBlend = 0.5

// SegmentSink receives one stroke per particle per step.
type SegmentSink interface {
	DrawSegment(x1, y1, x2, y2, alpha, radius, hue float64)
}

// StepStats summarizes a single simulation step.
type StepStats struct {
	Particles   int
	Respawned   int
	OutOfBounds int
	Expired     int
	AlphaSum    float64
}

// MeanAlpha returns the average fade value drawn this step.
func (s StepStats) MeanAlpha() float64 {
	if s.Particles == 0 {
		return 0
	}
	return s.AlphaSum / float64(s.Particles)
}

// Bounds is the canvas rectangle particles live in.
type Bounds struct {
	Width, Height float64
	CenterY       float64
}

// Contains reports whether (x, y) lies in [0, Width) x [0, Height).
func (b Bounds) Contains(x, y float64) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// Simulator advances every particle along the noise flow field.
type Simulator struct {
	XOff       float64
	YOff       float64
	ZOff       float64
	NoiseSteps float64
	Spawner    *Spawner
}

// Step updates every slot once. Each particle samples the field at its position,
// eases its velocity halfway toward the field direction, moves by velocity*speed,
// hands the travelled segment to sink and ages by one frame. Particles that leave
// bounds or outlive their ttl are respawned in place.
func (s *Simulator) Step(pool *ParticlePool, noise NoiseField, tick float64, b Bounds, sink SegmentSink) StepStats {
	stats := StepStats{Particles: pool.Len()}

	for i := 0; i < pool.Len(); i++ {
		p := pool.Slot(i)
		x, y := p[FieldX], p[FieldY]

		n := noise.Sample(x*s.XOff, y*s.YOff, tick*s.ZOff) * s.NoiseSteps * TAU
		vx := lerp(velocityBlend, p[FieldVX], math.Cos(n))
		vy := lerp(velocityBlend, p[FieldVY], math.Sin(n))

		speed := p[FieldSpeed]
		x2 := x + vx*speed
		y2 := y + vy*speed

		life := p[FieldLife]
		alpha := FadeInOut(life, p[FieldTTL])
		stats.AlphaSum += alpha

		if sink != nil {
			sink.DrawSegment(x, y, x2, y2, alpha, p[FieldRadius], p[FieldHue])
		}

		p[FieldX] = x2
		p[FieldY] = y2
		p[FieldVX] = vx
		p[FieldVY] = vy
		p[FieldLife] = life + 1

		outside := !b.Contains(x2, y2)
		expired := life+1 > p[FieldTTL]
		if outside || expired {
			if outside {
				stats.OutOfBounds++
			} else {
				stats.Expired++
			}
			stats.Respawned++
			s.Spawner.Spawn(pool, i, b.Width, b.Height, b.CenterY)
		}
	}

	return stats
}
