package systems

// Field offsets within a particle's slot in the pool buffer.
const (
	FieldX = iota
	FieldY
	FieldVX
	FieldVY
	FieldLife
	FieldTTL
	FieldSpeed
	FieldRadius
	FieldHue

	// ParticleStride is the number of scalars stored per particle.
	ParticleStride
)

// ParticlePool is a fixed-capacity flat buffer of particle attributes.
// Slot i occupies buf[i*ParticleStride : (i+1)*ParticleStride]. The buffer is
// allocated once; particles are respawned in place and never removed.
type ParticlePool struct {
	buf   []float64
	count int
}

// NewParticlePool allocates a pool with count slots. Negative counts yield an empty pool.
func NewParticlePool(count int) *ParticlePool {
	if count < 0 {
		count = 0
	}
	return &ParticlePool{
		buf:   make([]float64, count*ParticleStride),
		count: count,
	}
}

// Len returns the number of slots.
func (p *ParticlePool) Len() int {
	return p.count
}

// Base returns the buffer index of slot i's first field.
func (p *ParticlePool) Base(i int) int {
	return i * ParticleStride
}

// Slot returns the raw attribute slice of slot i.
func (p *ParticlePool) Slot(i int) []float64 {
	b := i * ParticleStride
	return p.buf[b : b+ParticleStride : b+ParticleStride]
}

// Pos returns the current position of slot i.
func (p *ParticlePool) Pos(i int) (x, y float64) {
	b := i * ParticleStride
	return p.buf[b+FieldX], p.buf[b+FieldY]
}

// SetPos sets the position of slot i.
func (p *ParticlePool) SetPos(i int, x, y float64) {
	b := i * ParticleStride
	p.buf[b+FieldX] = x
	p.buf[b+FieldY] = y
}

// Vel returns the stored velocity direction of slot i.
func (p *ParticlePool) Vel(i int) (vx, vy float64) {
	b := i * ParticleStride
	return p.buf[b+FieldVX], p.buf[b+FieldVY]
}

// SetVel sets the stored velocity direction of slot i.
func (p *ParticlePool) SetVel(i int, vx, vy float64) {
	b := i * ParticleStride
	p.buf[b+FieldVX] = vx
	p.buf[b+FieldVY] = vy
}

// Life returns frames elapsed since slot i was (re)spawned.
func (p *ParticlePool) Life(i int) float64 { return p.buf[i*ParticleStride+FieldLife] }

// TTL returns slot i's lifespan in frames.
func (p *ParticlePool) TTL(i int) float64 { return p.buf[i*ParticleStride+FieldTTL] }

// Speed returns slot i's velocity multiplier.
func (p *ParticlePool) Speed(i int) float64 { return p.buf[i*ParticleStride+FieldSpeed] }

// Radius returns slot i's stroke width.
func (p *ParticlePool) Radius(i int) float64 { return p.buf[i*ParticleStride+FieldRadius] }

// Hue returns slot i's hue in degrees.
func (p *ParticlePool) Hue(i int) float64 { return p.buf[i*ParticleStride+FieldHue] }

// SetLife sets slot i's age.
func (p *ParticlePool) SetLife(i int, life float64) { p.buf[i*ParticleStride+FieldLife] = life }

// SetSpeed sets slot i's velocity multiplier.
func (p *ParticlePool) SetSpeed(i int, speed float64) { p.buf[i*ParticleStride+FieldSpeed] = speed }
