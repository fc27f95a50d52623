package hexgrid

import (
	"runtime"
	"slices"
	"sync"

	"hexterrain/internal/profiling"
)

// Grid is an immutable gridSize x gridSize set of cells stored row-major.
// Rebuilding replaces the whole grid.
type Grid struct {
	size  int
	cells []Cell
}

// Size returns the edge length of the grid.
func (g *Grid) Size() int {
	return g.size
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// At returns the cell at c, or false when c is off-grid.
func (g *Grid) At(c Coord) (Cell, bool) {
	if c.Col < 0 || c.Col >= g.size || c.Row < 0 || c.Row >= g.size {
		return Cell{}, false
	}
	return g.cells[c.Row*g.size+c.Col], true
}

// Cells returns a copy of all cells in row-major order.
func (g *Grid) Cells() []Cell {
	return slices.Clone(g.cells)
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(Cell)) {
	for i := range g.cells {
		fn(g.cells[i])
	}
}

// Builder materializes grids from a System.
type Builder struct {
	sys *System
}

// NewBuilder creates a builder for sys.
func NewBuilder(sys *System) *Builder {
	return &Builder{sys: sys}
}

// System returns the coordinate system the builder uses.
func (b *Builder) System() *System {
	return b.sys
}

// Build computes every cell on the calling goroutine.
func (b *Builder) Build() *Grid {
	defer profiling.Track("hexgrid.Build")()
	n := b.sys.gridSize
	if n <= 0 {
		return &Grid{}
	}
	g := &Grid{size: n, cells: make([]Cell, n*n)}
	for row := range n {
		b.buildRow(g, row)
	}
	return g
}

// BuildParallel shards rows across workers. Cells depend only on their own
// coordinates, so the result equals Build. workers <= 0 uses one per CPU.
func (b *Builder) BuildParallel(workers int) *Grid {
	defer profiling.Track("hexgrid.BuildParallel")()
	n := b.sys.gridSize
	if n <= 0 {
		return &Grid{}
	}
	if workers <= 0 {
		workers = max(runtime.NumCPU(), 1)
	}
	workers = min(workers, n)

	g := &Grid{size: n, cells: make([]Cell, n*n)}
	rows := make(chan int, n)
	for row := range n {
		rows <- row
	}
	close(rows)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for row := range rows {
				b.buildRow(g, row)
			}
		}()
	}
	wg.Wait()
	return g
}

// buildRow writes one row; rows never overlap so workers need no locking.
func (b *Builder) buildRow(g *Grid, row int) {
	base := row * g.size
	for col := range g.size {
		g.cells[base+col] = b.sys.Cell(Coord{Col: col, Row: row})
	}
}
