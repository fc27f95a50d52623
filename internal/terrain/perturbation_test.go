package terrain

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"hexterrain/internal/noise"
)

// constSampler returns the same value everywhere.
type constSampler float64

func (c constSampler) Get(x, y float64) float64 { return float64(c) }

func isRounded2(v float64) bool {
	return math.Abs(v*100-math.Round(v*100)) < 1e-6
}

func TestElevationDeterministic(t *testing.T) {
	a := NewSeeded(42, noise.BackendGradient, 0, DefaultParams())
	b := NewSeeded(42, noise.BackendGradient, -1, DefaultParams())
	for i := 0; i < 200; i++ {
		x := float64(i) * 0.731
		z := float64(i) * -1.37
		if ea, eb := a.Elevation(x, z), b.Elevation(x, z); ea != eb {
			t.Fatalf("Elevation(%f,%f) not deterministic: %f != %f", x, z, ea, eb)
		}
	}
}

func TestElevationRoundedAndInBand(t *testing.T) {
	p := DefaultParams()
	tp := NewSeeded(7, noise.BackendGradient, 0, p)
	rng := rand.New(rand.NewSource(1))
	lo := p.BaseHeight - p.ElevationScale*p.ValleyWeight/(p.PrimaryWeight+p.SecondaryWeight+p.RidgeWeight) - 0.01
	hi := p.BaseHeight + p.ElevationScale + 0.01
	for i := 0; i < 2000; i++ {
		x := rng.Float64()*400 - 200
		z := rng.Float64()*400 - 200
		e := tp.Elevation(x, z)
		if !isRounded2(e) {
			t.Fatalf("Elevation(%f,%f) = %v, expected 2-decimal rounding", x, z, e)
		}
		if e < lo || e > hi {
			t.Fatalf("Elevation(%f,%f) = %f, expected in [%f,%f]", x, z, e, lo, hi)
		}
	}
}

func TestElevationMidNoiseIsFlatBand(t *testing.T) {
	// p = s = 0.5 gives ridge 0 and valley 1
	p := DefaultParams()
	tp := NewPerturbation(constSampler(0.5), constSampler(0.5), p)
	want := round2(p.BaseHeight + p.ElevationScale*(0.5*p.PrimaryWeight+0.5*p.SecondaryWeight-p.ValleyWeight)/(p.PrimaryWeight+p.SecondaryWeight+p.RidgeWeight))
	if got := tp.Elevation(3, 4); got != want {
		t.Errorf("Expected elevation %f for flat noise, got %f", want, got)
	}
}

func TestPerturbYBounded(t *testing.T) {
	tp := NewSeeded(99, noise.BackendGradient, 0, DefaultParams())
	bound := tp.MaxVerticalJitter() + 0.005
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 2000; i++ {
		x := rng.Float64()*100 - 50
		z := rng.Float64()*100 - 50
		base := rng.Float64()
		y := tp.PerturbY(x, base, z)
		if math.Abs(y-base) > bound {
			t.Fatalf("PerturbY(%f,%f,%f) = %f, jitter %f exceeds %f", x, base, z, y, y-base, bound)
		}
		if !isRounded2(y) {
			t.Fatalf("PerturbY = %v, expected 2-decimal rounding", y)
		}
	}
}

func TestPerturbYZeroMagnitude(t *testing.T) {
	p := DefaultParams()
	p.VerticalMagnitude = 0
	tp := NewSeeded(1, noise.BackendGradient, 0, p)
	if y := tp.PerturbY(1.2, 0.37, 3.4); y != 0.37 {
		t.Errorf("Expected unchanged base 0.37 with zero magnitude, got %f", y)
	}
}

func TestPerturbXZBounded(t *testing.T) {
	p := DefaultParams()
	tp := NewSeeded(5, noise.BackendGradient, 0, p)
	rng := rand.New(rand.NewSource(3))
	moved := 0
	for i := 0; i < 2000; i++ {
		x := rng.Float64()*100 - 50
		z := rng.Float64()*100 - 50
		px, pz := tp.PerturbXZ(x, z)
		if math.Abs(px-x) > p.HorizontalMagnitude+1e-12 || math.Abs(pz-z) > p.HorizontalMagnitude+1e-12 {
			t.Fatalf("PerturbXZ(%f,%f) = (%f,%f), offset exceeds %f", x, z, px, pz, p.HorizontalMagnitude)
		}
		if px != x || pz != z {
			moved++
		}
	}
	if moved == 0 {
		t.Errorf("Expected PerturbXZ to move at least some points")
	}
}

func TestPerturbXZFlowUsesCrossAxis(t *testing.T) {
	// With constant fields both axes get the same offset
	p := DefaultParams()
	tp := NewPerturbation(constSampler(1), constSampler(1), p)
	x, z := tp.PerturbXZ(10, 20)
	if math.Abs((x-10)-p.HorizontalMagnitude) > 1e-12 || math.Abs((z-20)-p.HorizontalMagnitude) > 1e-12 {
		t.Errorf("Expected full positive offset %f on both axes, got (%f,%f)", p.HorizontalMagnitude, x-10, z-20)
	}
}

func TestPerlinBackendProducesTerrain(t *testing.T) {
	tp := NewSeeded(11, noise.BackendPerlin, 0, DefaultParams())
	distinct := map[float64]bool{}
	for i := 0; i < 100; i++ {
		distinct[tp.Elevation(float64(i)*1.7, float64(i)*0.9)] = true
	}
	if len(distinct) < 5 {
		t.Errorf("Expected varied elevations from perlin backend, got %d distinct", len(distinct))
	}
}

func TestParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("Expected default params to validate, got %v", err)
	}
	p := DefaultParams()
	p.JitterFrequency = 0
	if err := p.Validate(); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter for zero frequency, got %v", err)
	}
	p = DefaultParams()
	p.HorizontalMagnitude = -1
	if err := p.Validate(); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter for negative magnitude, got %v", err)
	}
	p = DefaultParams()
	p.PrimaryWeight, p.SecondaryWeight, p.RidgeWeight = 0, 0, 0
	if err := p.Validate(); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter for zero weights, got %v", err)
	}
}

func BenchmarkElevation(b *testing.B) {
	tp := NewSeeded(12345, noise.BackendGradient, -1, DefaultParams())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tp.Elevation(float64(i%1024), float64((i*31)%1024))
	}
}
