package systems

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	perlin "github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Noise backend names accepted by NewNoiseField.
const (
	NoiseSimplex = "simplex"
	NoisePerlin  = "perlin"
	NoiseFBM     = "fbm"
)

// ErrUnknownNoise is returned for an unsupported noise kind.
var ErrUnknownNoise = errors.New("unknown noise kind")

// NoiseField returns a continuous scalar for a point in space-time.
// Implementations are seeded once and never reseeded, so the same
// input always yields the same output.
type NoiseField interface {
	Sample(x, y, z float64) float64
}

// NoiseOptions tunes the multi-octave backend.
type NoiseOptions struct {
	Octaves int
	Alpha   float64
	Beta    float64
}

// NewNoiseField creates the named noise backend.
func NewNoiseField(kind string, seed int64, opts NoiseOptions) (NoiseField, error) {
	switch kind {
	case "", NoiseSimplex:
		return NewSimplexNoise(seed), nil
	case NoisePerlin:
		return NewPerlinNoise(seed), nil
	case NoiseFBM:
		return NewFBMNoise(seed, opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNoise, kind)
	}
}

// SimplexNoise wraps OpenSimplex 3D noise. Output is in [-1, 1].
type SimplexNoise struct {
	noise opensimplex.Noise
}

// NewSimplexNoise creates a seeded simplex field.
func NewSimplexNoise(seed int64) *SimplexNoise {
	return &SimplexNoise{noise: opensimplex.New(seed)}
}

// Sample implements NoiseField.
func (s *SimplexNoise) Sample(x, y, z float64) float64 {
	return s.noise.Eval3(x, y, z)
}

// FBMNoise sums several Perlin octaves for a rougher field.
type FBMNoise struct {
	p *perlin.Perlin
}

// NewFBMNoise creates a seeded multi-octave field.
func NewFBMNoise(seed int64, opts NoiseOptions) *FBMNoise {
	if opts.Octaves < 1 {
		opts.Octaves = 2
	}
	if opts.Alpha == 0 {
		opts.Alpha = 2
	}
	if opts.Beta == 0 {
		opts.Beta = 2
	}
	return &FBMNoise{p: perlin.NewPerlin(opts.Alpha, opts.Beta, int32(opts.Octaves), seed)}
}

// Sample implements NoiseField.
func (f *FBMNoise) Sample(x, y, z float64) float64 {
	return f.p.Noise3D(x, y, z)
}

// PerlinNoise generates coherent noise values from a shuffled permutation table.
type PerlinNoise struct {
	perm [512]int
}

// NewPerlinNoise creates a new Perlin noise generator.
func NewPerlinNoise(seed int64) *PerlinNoise {
	p := &PerlinNoise{}
	rng := rand.New(rand.NewSource(seed))

	var perm [256]int
	for i := range perm {
		perm[i] = i
	}
	rng.Shuffle(len(perm), func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})

	// Duplicate so corner hashes never need wrapping
	for i := 0; i < 256; i++ {
		p.perm[i] = perm[i]
		p.perm[i+256] = perm[i]
	}
	return p
}

// Sample implements NoiseField.
func (p *PerlinNoise) Sample(x, y, z float64) float64 {
	return p.Noise3D(x, y, z)
}

// Noise3D returns a noise value for 3D coordinates.
func (p *PerlinNoise) Noise3D(x, y, z float64) float64 {
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)
	X := int(fx) & 255
	Y := int(fy) & 255
	Z := int(fz) & 255

	x -= fx
	y -= fy
	z -= fz

	u := fade(x)
	v := fade(y)
	w := fade(z)

	A := p.perm[X] + Y
	AA := p.perm[A] + Z
	AB := p.perm[A+1] + Z
	B := p.perm[X+1] + Y
	BA := p.perm[B] + Z
	BB := p.perm[B+1] + Z

	return lerp(w,
		lerp(v,
			lerp(u, grad3D(p.perm[AA], x, y, z), grad3D(p.perm[BA], x-1, y, z)),
			lerp(u, grad3D(p.perm[AB], x, y-1, z), grad3D(p.perm[BB], x-1, y-1, z))),
		lerp(v,
			lerp(u, grad3D(p.perm[AA+1], x, y, z-1), grad3D(p.perm[BA+1], x-1, y, z-1)),
			lerp(u, grad3D(p.perm[AB+1], x, y-1, z-1), grad3D(p.perm[BB+1], x-1, y-1, z-1))))
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func grad3D(hash int, x, y, z float64) float64 {
	h := hash & 15
	u := x
	if h >= 8 {
		u = y
	}
	v := y
	if h >= 4 {
		if h == 12 || h == 14 {
			v = x
		} else {
			v = z
		}
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}
