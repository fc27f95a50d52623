package noise

import (
	"math"
)

// Deterministic seeded 2D gradient noise remapped to [0,1].
// Lattice gradients come from an integer hash of (x, y, seed), so the same
// seed and coordinates always produce the same value on every platform.

// Sampler is a continuous scalar field over the plane with values in [0,1].
type Sampler interface {
	Get(x, y float64) float64
}

// Option configures a field at construction time.
type Option func(*options)

type options struct {
	cache Cache
}

// WithCache replaces the default unbounded memoization cache.
func WithCache(c Cache) Option {
	return func(o *options) {
		if c != nil {
			o.cache = c
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cache == nil {
		o.cache = NewUnboundedCache()
	}
	return o
}

// Field is a seeded gradient noise field with memoized samples.
type Field struct {
	seed  int64
	cache Cache
}

// NewField creates a gradient noise field for the given seed.
func NewField(seed int64, opts ...Option) *Field {
	o := buildOptions(opts)
	return &Field{seed: seed, cache: o.cache}
}

// Seed returns the seed the field was built with.
func (f *Field) Seed() int64 {
	return f.seed
}

// Get samples the field at (x, y). The result is in [0,1].
func (f *Field) Get(x, y float64) float64 {
	k := Key{X: x, Y: y}
	if v, ok := f.cache.Get(k); ok {
		return v
	}
	v := gradientNoise2D(x, y, f.seed)
	f.cache.Put(k, v)
	return v
}

// CacheStats reports the memoization cache counters.
func (f *Field) CacheStats() CacheStats {
	return f.cache.Stats()
}

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func hash2(x, y int64, seed int64) uint64 {
	// SplitMix64 finalizer over per-axis odd multipliers so (x,y) and (y,x) differ
	v := uint64(x)*0x9E3779B97F4A7C15 + uint64(y)*0x517CC1B727220A95 + uint64(seed)*0x6C62272E07BB0142
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	v = v ^ (v >> 31)
	return v
}

// gradient returns the unit gradient anchored at lattice point (ix, iy).
func gradient(ix, iy int64, seed int64) (float64, float64) {
	h := hash2(ix, iy, seed)
	angle := float64(h>>11) / float64(uint64(1)<<53) * 2 * math.Pi
	return math.Cos(angle), math.Sin(angle)
}

func dotGridGradient(ix, iy int64, x, y float64, seed int64) float64 {
	gx, gy := gradient(ix, iy, seed)
	return gx*(x-float64(ix)) + gy*(y-float64(iy))
}

func gradientNoise2D(x, y float64, seed int64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	ix := int64(x0)
	iy := int64(y0)

	u := fade(x - x0)
	v := fade(y - y0)

	n00 := dotGridGradient(ix, iy, x, y, seed)
	n10 := dotGridGradient(ix+1, iy, x, y, seed)
	n01 := dotGridGradient(ix, iy+1, x, y, seed)
	n11 := dotGridGradient(ix+1, iy+1, x, y, seed)

	n := lerp(lerp(n00, n10, u), lerp(n01, n11, u), v) // [-1,1]
	return clamp01((n + 1) * 0.5)
}
