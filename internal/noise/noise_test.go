package noise

import (
	"math"
	"math/rand"
	"sync"
	"testing"
)

// TestHash2Deterministic verifies hash2 produces identical results for same inputs
func TestHash2Deterministic(t *testing.T) {
	first := hash2(10, 20, 42)
	for i := 0; i < 100; i++ {
		if h := hash2(10, 20, 42); h != first {
			t.Fatalf("hash2 not deterministic: first=%d, run %d=%d", first, i, h)
		}
	}
}

// TestHash2DifferentInputs verifies axes and seed all feed the hash
func TestHash2DifferentInputs(t *testing.T) {
	if hash2(1, 0, 42) == hash2(2, 0, 42) {
		t.Errorf("hash2 should differ for different X")
	}
	if hash2(0, 1, 42) == hash2(0, 2, 42) {
		t.Errorf("hash2 should differ for different Y")
	}
	if hash2(1, 1, 100) == hash2(1, 1, 200) {
		t.Errorf("hash2 should differ for different seed")
	}
	if hash2(1, 2, 42) == hash2(2, 1, 42) {
		t.Errorf("hash2 should differ for axis swap")
	}
	if hash2(2, 0, 42) == hash2(0, 1, 42) {
		t.Errorf("hash2 should not collide for (2,0) and (0,1)")
	}
}

func TestGradientIsUnit(t *testing.T) {
	for x := int64(-5); x <= 5; x++ {
		for y := int64(-5); y <= 5; y++ {
			gx, gy := gradient(x, y, 7)
			if l := math.Hypot(gx, gy); math.Abs(l-1) > 1e-12 {
				t.Errorf("gradient(%d,%d) length %f, expected 1", x, y, l)
			}
		}
	}
}

func TestFadeEndpoints(t *testing.T) {
	if fade(0) != 0 {
		t.Errorf("Expected fade(0)=0, got %f", fade(0))
	}
	if fade(1) != 1 {
		t.Errorf("Expected fade(1)=1, got %f", fade(1))
	}
	if v := fade(0.5); math.Abs(v-0.5) > 1e-12 {
		t.Errorf("Expected fade(0.5)=0.5, got %f", v)
	}
}

// TestFieldRange samples 10,000 random points and checks [0,1]
func TestFieldRange(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	f := NewField(42)
	for i := 0; i < 10000; i++ {
		x := rng.Float64()*2000 - 1000
		y := rng.Float64()*2000 - 1000
		v := f.Get(x, y)
		if v < 0 || v > 1 {
			t.Fatalf("Get(%f, %f) = %f, expected in [0,1]", x, y, v)
		}
	}
}

func TestFieldDeterministic(t *testing.T) {
	a := NewField(42)
	b := NewField(42, WithCache(NoCache()))
	first := a.Get(1.5, 2.7)
	for i := 0; i < 100; i++ {
		if v := a.Get(1.5, 2.7); v != first {
			t.Fatalf("cached Get not deterministic: %f != %f", v, first)
		}
		if v := b.Get(1.5, 2.7); v != first {
			t.Fatalf("uncached Get differs from cached: %f != %f", v, first)
		}
	}
}

func TestFieldSeedsDiffer(t *testing.T) {
	a := NewField(1)
	b := NewField(2)
	same := 0
	for i := 0; i < 100; i++ {
		x := float64(i)*0.37 + 0.11
		if a.Get(x, x*0.5) == b.Get(x, x*0.5) {
			same++
		}
	}
	if same > 5 {
		t.Errorf("Expected seeds 1 and 2 to produce different fields, %d/100 samples equal", same)
	}
}

// TestFieldContinuity verifies smooth interpolation (no random jumps)
func TestFieldContinuity(t *testing.T) {
	f := NewField(42)
	v1 := f.Get(1.0, 1.0)
	v2 := f.Get(1.01, 1.0)
	if diff := math.Abs(v1 - v2); diff >= 0.05 {
		t.Errorf("Field not continuous: Get(1.0,1.0)=%f, Get(1.01,1.0)=%f, diff=%f", v1, v2, diff)
	}
}

func TestFieldLatticePointsAreMidValue(t *testing.T) {
	f := NewField(99)
	for x := -3; x <= 3; x++ {
		if v := f.Get(float64(x), 4); v != 0.5 {
			t.Errorf("Expected gradient noise to be 0.5 on lattice point (%d,4), got %f", x, v)
		}
	}
}

func TestFieldMemoizes(t *testing.T) {
	f := NewField(3)
	f.Get(0.25, 0.75)
	f.Get(0.25, 0.75)
	f.Get(0.25, 0.75)
	st := f.CacheStats()
	if st.Misses != 1 || st.Hits != 2 || st.Size != 1 {
		t.Errorf("Expected 1 miss, 2 hits, size 1; got %+v", st)
	}
}

func TestFieldConcurrentAccess(t *testing.T) {
	f := NewField(5, WithCache(NewBoundedCache(256)))
	ref := NewField(5, WithCache(NoCache()))

	var wg sync.WaitGroup
	errs := make(chan string, 8)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				x := float64(i%97) * 0.13
				y := float64(w) * 0.71
				if f.Get(x, y) != ref.Get(x, y) {
					errs <- "concurrent sample differs from reference"
					return
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}

func TestPerlinFieldRangeAndDeterminism(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	a := NewPerlinField(42)
	b := NewPerlinField(42, WithCache(NoCache()))
	for i := 0; i < 10000; i++ {
		x := rng.Float64()*200 - 100
		y := rng.Float64()*200 - 100
		va := a.Get(x, y)
		if va < 0 || va > 1 {
			t.Fatalf("PerlinField.Get(%f, %f) = %f, expected in [0,1]", x, y, va)
		}
		if vb := b.Get(x, y); va != vb {
			t.Fatalf("PerlinField not deterministic at (%f,%f): %f != %f", x, y, va, vb)
		}
	}
}

func TestNewBackend(t *testing.T) {
	if _, ok := New(BackendPerlin, 1).(*PerlinField); !ok {
		t.Errorf("Expected perlin backend to build a *PerlinField")
	}
	if _, ok := New(BackendGradient, 1).(*Field); !ok {
		t.Errorf("Expected gradient backend to build a *Field")
	}
	if _, ok := New("bogus", 1).(*Field); !ok {
		t.Errorf("Expected unknown backend to fall back to *Field")
	}
	if Backend("bogus").Valid() {
		t.Errorf("Expected bogus backend to be invalid")
	}
}

func BenchmarkFieldGetUncached(b *testing.B) {
	f := NewField(12345, WithCache(NoCache()))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.Get(float64(i%1024)*0.1, float64(i%777)*0.1)
	}
}

func BenchmarkFieldGetCached(b *testing.B) {
	f := NewField(12345)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.Get(float64(i%64)*0.1, 0.5)
	}
}
