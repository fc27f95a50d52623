// Package hexterrain generates stitched hex terrain meshes. Generate is a
// pure function of its Params: the same inputs always produce the same
// positions and indices.
package hexterrain

import (
	"fmt"

	"hexterrain/internal/hexgrid"
	"hexterrain/internal/logger"
	"hexterrain/internal/meshing"
	"hexterrain/internal/noise"
	"hexterrain/internal/profiling"
	"hexterrain/internal/terrain"
)

type (
	Mesh          = meshing.Mesh
	Stats         = meshing.Stats
	Span          = meshing.Span
	Seam          = meshing.Seam
	Corner        = meshing.Corner
	Cell          = hexgrid.Cell
	Coord         = hexgrid.Coord
	Direction     = hexgrid.Direction
	Backend       = noise.Backend
	TerrainParams = terrain.Params
	Biome         = terrain.Biome
	Palette       = terrain.Palette
)

const (
	BackendGradient = noise.BackendGradient
	BackendPerlin   = noise.BackendPerlin
)

// ErrInvalidParameter is wrapped by every validation failure.
var ErrInvalidParameter = terrain.ErrInvalidParameter

// DefaultPalette names and colors biome indices.
var DefaultPalette = terrain.DefaultPalette

// Params describes one generation request.
type Params struct {
	GridSize int
	HexSize  float64
	HexGap   float64
	Seed     int64

	// BiomeCount buckets elevation into biome indices.
	BiomeCount int
	// Workers > 1 shards grid rows across goroutines; negative uses every CPU.
	Workers int
	Backend Backend
	// CacheCapacity bounds each noise field's memo: 0 is unbounded, negative disables it.
	CacheCapacity int
	Terrain       TerrainParams
}

// DefaultParams returns a small grid with unit hexes for seed.
func DefaultParams(seed int64) Params {
	return Params{
		GridSize:   8,
		HexSize:    1.0,
		HexGap:     0,
		Seed:       seed,
		BiomeCount: len(terrain.DefaultPalette),
		Backend:    BackendGradient,
		Terrain:    terrain.DefaultParams(),
	}
}

// Validate checks p without generating anything.
func (p Params) Validate() error {
	if p.GridSize <= 0 {
		return fmt.Errorf("%w: gridSize must be > 0, got %d", ErrInvalidParameter, p.GridSize)
	}
	if !p.Backend.Valid() {
		return fmt.Errorf("%w: unknown noise backend %q", ErrInvalidParameter, p.Backend)
	}
	return p.Terrain.Validate()
}

// Generate builds the grid and stitches it into a mesh. Both noise fields
// are created fresh from p.Seed, so calls never share terrain state.
func Generate(p Params) (*Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	tp := terrain.NewSeeded(p.Seed, p.Backend, p.CacheCapacity, p.Terrain)
	sys, err := hexgrid.NewSystem(p.GridSize, p.HexSize, p.HexGap, p.BiomeCount, tp)
	if err != nil {
		return nil, err
	}

	b := hexgrid.NewBuilder(sys)
	var g *hexgrid.Grid
	switch {
	case p.Workers > 1:
		g = b.BuildParallel(p.Workers)
	case p.Workers < 0:
		g = b.BuildParallel(0)
	default:
		g = b.Build()
	}
	m := meshing.NewStitcher(sys).Stitch(g)

	st := m.Stats()
	logger.L().Debug("hexterrain_generate",
		"grid", p.GridSize,
		"seed", p.Seed,
		"backend", string(p.Backend),
		"cells", st.Cells,
		"vertices", st.Vertices,
		"triangles", st.Triangles,
		"skirts", st.SkirtTriangles,
		"corners", st.CornerTriangles,
		"primary_cache", cacheStats(tp.Primary()),
		"timings", profiling.TopN(3),
	)
	return m, nil
}

func cacheStats(s noise.Sampler) string {
	cs, ok := s.(interface{ CacheStats() noise.CacheStats })
	if !ok {
		return "n/a"
	}
	st := cs.CacheStats()
	return fmt.Sprintf("hits=%d misses=%d size=%d", st.Hits, st.Misses, st.Size)
}
