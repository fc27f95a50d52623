package terrain

import (
	"errors"
	"fmt"
	"math"

	"hexterrain/internal/noise"
)

// ErrInvalidParameter is returned when generation parameters would produce
// degenerate or infinite geometry.
var ErrInvalidParameter = errors.New("invalid parameter")

// Octave weights for the elevation fbm.
var (
	primaryOctaves   = []float64{1, 0.5, 0.25, 0.125}
	secondaryOctaves = []float64{1, 0.4, 0.2}
)

// Params shapes the terrain signals. Frequencies are in cycles per world unit,
// magnitudes in world units.
type Params struct {
	ElevationFrequency  float64 `yaml:"elevation_frequency"`
	SecondaryFrequency  float64 `yaml:"secondary_frequency"`
	JitterFrequency     float64 `yaml:"jitter_frequency"`
	DetailFrequency     float64 `yaml:"detail_frequency"`
	PrimaryWeight       float64 `yaml:"primary_weight"`
	SecondaryWeight     float64 `yaml:"secondary_weight"`
	RidgeWeight         float64 `yaml:"ridge_weight"`
	ValleyWeight        float64 `yaml:"valley_weight"`
	ElevationScale      float64 `yaml:"elevation_scale"`
	BaseHeight          float64 `yaml:"base_height"`
	VerticalMagnitude   float64 `yaml:"vertical_magnitude"`
	HorizontalMagnitude float64 `yaml:"horizontal_magnitude"`
}

// DefaultParams returns settings that keep elevation roughly in [0,1].
func DefaultParams() Params {
	return Params{
		ElevationFrequency:  0.08,
		SecondaryFrequency:  0.05,
		JitterFrequency:     0.6,
		DetailFrequency:     2.5,
		PrimaryWeight:       0.6,
		SecondaryWeight:     0.4,
		RidgeWeight:         0.25,
		ValleyWeight:        0.15,
		ElevationScale:      0.8,
		BaseHeight:          0.1,
		VerticalMagnitude:   0.06,
		HorizontalMagnitude: 0.08,
	}
}

// Validate rejects params that make the signals undefined.
func (p Params) Validate() error {
	freqs := []struct {
		name string
		v    float64
	}{
		{"elevation_frequency", p.ElevationFrequency},
		{"secondary_frequency", p.SecondaryFrequency},
		{"jitter_frequency", p.JitterFrequency},
		{"detail_frequency", p.DetailFrequency},
	}
	for _, f := range freqs {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be > 0, got %v", ErrInvalidParameter, f.name, f.v)
		}
	}
	if p.PrimaryWeight+p.SecondaryWeight+p.RidgeWeight <= 0 {
		return fmt.Errorf("%w: primary, secondary and ridge weights must sum to > 0", ErrInvalidParameter)
	}
	if p.VerticalMagnitude < 0 || p.HorizontalMagnitude < 0 {
		return fmt.Errorf("%w: perturbation magnitudes must be >= 0", ErrInvalidParameter)
	}
	return nil
}

// Perturbation derives elevation and positional jitter from two independent fields.
type Perturbation struct {
	primary   noise.Sampler
	secondary noise.Sampler
	params    Params
}

// NewPerturbation wraps two independently seeded fields.
func NewPerturbation(primary, secondary noise.Sampler, params Params) *Perturbation {
	return &Perturbation{primary: primary, secondary: secondary, params: params}
}

// NewSeeded builds both fields from one explicit seed. The secondary field
// uses seed+1 so the two never line up.
func NewSeeded(seed int64, backend noise.Backend, cacheCapacity int, params Params) *Perturbation {
	primary := noise.New(backend, seed, noise.WithCache(noise.NewCache(cacheCapacity)))
	secondary := noise.New(backend, seed+1, noise.WithCache(noise.NewCache(cacheCapacity)))
	return NewPerturbation(primary, secondary, params)
}

// Params returns the shaping settings.
func (t *Perturbation) Params() Params {
	return t.params
}

// Primary returns the primary field.
func (t *Perturbation) Primary() noise.Sampler {
	return t.primary
}

// Secondary returns the secondary field.
func (t *Perturbation) Secondary() noise.Sampler {
	return t.secondary
}

// Elevation returns the terrain height at world (x, z), rounded to 2 decimals.
func (t *Perturbation) Elevation(x, z float64) float64 {
	p := t.params
	primary := fbm(t.primary, x*p.ElevationFrequency, z*p.ElevationFrequency, primaryOctaves, 0)
	secondary := fbm(t.secondary, x*p.SecondaryFrequency, z*p.SecondaryFrequency, secondaryOctaves, 97.31)

	ridge := math.Pow(math.Abs(2*primary-1), 1.5)
	valley := math.Pow(1-math.Abs(2*secondary-1), 2)

	combined := p.PrimaryWeight*primary + p.SecondaryWeight*secondary + p.RidgeWeight*ridge - p.ValleyWeight*valley
	combined /= p.PrimaryWeight + p.SecondaryWeight + p.RidgeWeight

	return round2(p.BaseHeight + p.ElevationScale*combined)
}

// PerturbY adds bounded vertical jitter to yBase at world (x, z), rounded to 2 decimals.
func (t *Perturbation) PerturbY(x, yBase, z float64) float64 {
	p := t.params
	f := p.JitterFrequency
	df := p.DetailFrequency

	pr := t.primary.Get(x*f, z*f)
	se := t.secondary.Get(x*f+73.1, z*f-19.7)
	ridge := math.Pow(math.Abs(2*pr-1), 1.5)
	valley := math.Pow(1-math.Abs(2*se-1), 2)
	detail := t.primary.Get(x*df+311.7, z*df-127.3)

	j := 0.5*(pr+se-1) + p.RidgeWeight*ridge - p.ValleyWeight*valley + 0.2*(detail-0.5)
	return round2(yBase + j*p.VerticalMagnitude)
}

// MaxVerticalJitter bounds |PerturbY(x, y, z) - y| before rounding.
func (t *Perturbation) MaxVerticalJitter() float64 {
	p := t.params
	return (0.6 + math.Abs(p.RidgeWeight) + math.Abs(p.ValleyWeight)) * p.VerticalMagnitude
}

// PerturbXZ displaces a world position horizontally. Each axis is biased by
// the other axis' noise so displacement flows instead of scattering.
// The offset length per axis never exceeds HorizontalMagnitude.
func (t *Perturbation) PerturbXZ(x, z float64) (float64, float64) {
	p := t.params
	f := p.JitterFrequency
	df := p.DetailFrequency

	px := t.primary.Get(x*f, z*f)
	pz := t.primary.Get(x*f+41.3, z*f+17.9)
	sx := t.secondary.Get(x*f*0.5-5.1, z*f*0.5+9.7)
	sz := t.secondary.Get(x*f*0.5+23.3, z*f*0.5-31.1)
	dx := t.primary.Get(x*df+7.7, z*df-3.3)
	dz := t.primary.Get(x*df-13.9, z*df+2.2)

	vx := 0.45*px + 0.2*sx + 0.15*dx + 0.2*pz
	vz := 0.45*pz + 0.2*sz + 0.15*dz + 0.2*px

	mag := p.HorizontalMagnitude * (0.5 + 0.5*t.secondary.Get(x*f*0.25+101.1, z*f*0.25-57.7))
	return x + (2*vx-1)*mag, z + (2*vz-1)*mag
}

// fbm sums octaves of s at doubling frequency, normalized back to [0,1].
func fbm(s noise.Sampler, x, z float64, weights []float64, offset float64) float64 {
	sum := 0.0
	norm := 0.0
	freq := 1.0
	for i, w := range weights {
		shift := offset + float64(i)*17.3
		sum += s.Get(x*freq+shift, z*freq-shift) * w
		norm += w
		freq *= 2
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
