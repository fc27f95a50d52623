package hexgrid

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"hexterrain/internal/terrain"
)

// ErrInvalidParameter is returned for grid settings that produce degenerate geometry.
var ErrInvalidParameter = terrain.ErrInvalidParameter

// DefaultBiomeCount matches terrain.DefaultPalette.
var DefaultBiomeCount = len(terrain.DefaultPalette)

var sqrt3 = math.Sqrt(3)

// rimDirs holds (cos, sin) of 60°·i so every cell uses identical factors.
var rimDirs = [6][2]float64{
	{1, 0},
	{0.5, math.Sqrt(3) / 2},
	{-0.5, math.Sqrt(3) / 2},
	{-1, 0},
	{-0.5, -math.Sqrt(3) / 2},
	{0.5, -math.Sqrt(3) / 2},
}

// RimDirection returns (cos, sin) of the angle of rim vertex i.
func RimDirection(i int) (float64, float64) {
	d := rimDirs[i%6]
	return d[0], d[1]
}

// Cell is one hex of the grid. Vertices are in clockwise angular order
// starting at 0°; each rim point is jittered independently.
type Cell struct {
	Coord     Coord
	Center    mgl64.Vec3
	Vertices  [6]mgl64.Vec3
	Elevation float64
	Biome     int
	Feature   int
}

// System holds the metrics of a grid and computes cells in closed form from
// their coordinates. It holds no per-cell state.
type System struct {
	gridSize      int
	hexSize       float64
	hexGap        float64
	effectiveSize float64
	colSpacing    float64
	rowSpacing    float64
	biomeCount    int
	terrain       *terrain.Perturbation
}

// NewSystem validates the grid settings. A gridSize of 0 is accepted and
// yields an empty grid; negative sizes, non-positive radii, negative gaps and
// gaps that consume the whole radius are rejected.
func NewSystem(gridSize int, hexSize, hexGap float64, biomeCount int, t *terrain.Perturbation) (*System, error) {
	if gridSize < 0 {
		return nil, fmt.Errorf("%w: gridSize must be >= 0, got %d", ErrInvalidParameter, gridSize)
	}
	if !(hexSize > 0) || math.IsInf(hexSize, 0) {
		return nil, fmt.Errorf("%w: hexSize must be > 0, got %v", ErrInvalidParameter, hexSize)
	}
	if !(hexGap >= 0) || math.IsInf(hexGap, 0) {
		return nil, fmt.Errorf("%w: hexGap must be >= 0, got %v", ErrInvalidParameter, hexGap)
	}
	if hexGap >= hexSize {
		return nil, fmt.Errorf("%w: hexGap %v leaves no hex inside hexSize %v", ErrInvalidParameter, hexGap, hexSize)
	}
	if biomeCount <= 0 {
		return nil, fmt.Errorf("%w: biomeCount must be > 0, got %d", ErrInvalidParameter, biomeCount)
	}
	if t == nil {
		return nil, fmt.Errorf("%w: terrain perturbation is required", ErrInvalidParameter)
	}

	eff := hexSize - hexGap
	return &System{
		gridSize:      gridSize,
		hexSize:       hexSize,
		hexGap:        hexGap,
		effectiveSize: eff,
		colSpacing:    1.5*eff + hexGap,
		rowSpacing:    sqrt3*eff + hexGap,
		biomeCount:    biomeCount,
		terrain:       t,
	}, nil
}

func (s *System) GridSize() int { return s.gridSize }
func (s *System) HexSize() float64 { return s.hexSize }
func (s *System) HexGap() float64 { return s.hexGap }
func (s *System) EffectiveSize() float64 { return s.effectiveSize }
func (s *System) ColSpacing() float64 { return s.colSpacing }
func (s *System) RowSpacing() float64 { return s.rowSpacing }
func (s *System) BiomeCount() int { return s.biomeCount }
func (s *System) Terrain() *terrain.Perturbation { return s.terrain }

// InBounds reports whether c lies inside [0, gridSize) on both axes.
func (s *System) InBounds(c Coord) bool {
	return c.Col >= 0 && c.Col < s.gridSize && c.Row >= 0 && c.Row < s.gridSize
}

// NeighborCoords steps toward d and reports false when the result leaves the grid.
func (s *System) NeighborCoords(c Coord, d Direction) (Coord, bool) {
	n := c.Neighbor(d)
	if !s.InBounds(n) {
		return Coord{}, false
	}
	return n, true
}

// CenterXZ returns the unperturbed world center of c. Works for any c,
// including off-grid coordinates.
func (s *System) CenterXZ(c Coord) (float64, float64) {
	x := float64(c.Col) * s.colSpacing
	z := float64(c.Row)*s.rowSpacing + float64(c.Col&1)*s.rowSpacing/2
	return x, z
}

// HexVertex computes rim vertex i around (centerX, centerZ): the
// unperturbed point at 60°·i is jittered horizontally, then its height is
// jittered around the cell's elevation.
func (s *System) HexVertex(centerX, centerZ, elevation float64, i int) mgl64.Vec3 {
	cos, sin := RimDirection(i)
	rx := centerX + s.effectiveSize*cos
	rz := centerZ + s.effectiveSize*sin
	px, pz := s.terrain.PerturbXZ(rx, rz)
	y := s.terrain.PerturbY(px, elevation, pz)
	return mgl64.Vec3{px, y, pz}
}

// Cell computes the full cell at c from coordinates alone.
func (s *System) Cell(c Coord) Cell {
	x, z := s.CenterXZ(c)
	elevation := s.terrain.PerturbY(x, s.terrain.Elevation(x, z), z)

	cell := Cell{
		Coord:     c,
		Center:    mgl64.Vec3{x, elevation, z},
		Elevation: elevation,
		Biome:     terrain.BiomeIndex(elevation, s.biomeCount),
	}
	for i := range cell.Vertices {
		cell.Vertices[i] = s.HexVertex(x, z, elevation, i)
	}
	return cell
}

// NeighborHex recomputes the cell one step toward d. It needs no grid and
// works past the grid edge, so chunks can stitch against unbuilt neighbors.
func (s *System) NeighborHex(hex Cell, d Direction) Cell {
	return s.Cell(hex.Coord.Neighbor(d))
}
