package noise

import (
	"github.com/aquilax/go-perlin"
)

// Perlin tuning shared by every PerlinField: alpha (amplitude divisor),
// beta (frequency multiplier) and octave count.
const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = 3
)

// PerlinField is a Sampler backed by go-perlin. It is an alternative
// backend for terrain shaping; values are remapped from [-1,1] to [0,1].
type PerlinField struct {
	seed  int64
	p     *perlin.Perlin
	cache Cache
}

// NewPerlinField creates a perlin field for the given seed.
func NewPerlinField(seed int64, opts ...Option) *PerlinField {
	o := buildOptions(opts)
	return &PerlinField{
		seed:  seed,
		p:     perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed),
		cache: o.cache,
	}
}

// Seed returns the seed the field was built with.
func (f *PerlinField) Seed() int64 {
	return f.seed
}

// Get samples the field at (x, y). The result is in [0,1].
func (f *PerlinField) Get(x, y float64) float64 {
	k := Key{X: x, Y: y}
	if v, ok := f.cache.Get(k); ok {
		return v
	}
	v := clamp01((f.p.Noise2D(x, y) + 1) * 0.5)
	f.cache.Put(k, v)
	return v
}

// CacheStats reports the memoization cache counters.
func (f *PerlinField) CacheStats() CacheStats {
	return f.cache.Stats()
}

// Backend names a Sampler implementation.
type Backend string

const (
	BackendGradient Backend = "gradient"
	BackendPerlin   Backend = "perlin"
)

// Valid reports whether b names a known backend.
func (b Backend) Valid() bool {
	return b == BackendGradient || b == BackendPerlin
}

// New builds a Sampler for the backend. Unknown backends fall back to gradient noise.
func New(b Backend, seed int64, opts ...Option) Sampler {
	if b == BackendPerlin {
		return NewPerlinField(seed, opts...)
	}
	return NewField(seed, opts...)
}
