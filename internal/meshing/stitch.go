package meshing

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/zyedidia/generic/mapset"

	"hexterrain/internal/hexgrid"
	"hexterrain/internal/profiling"
)

var (
	upNormal = mgl32.Vec3{0, 1, 0}
	// skirtFallback is used when a skirt or corner has no area.
	skirtFallback = mgl32.Vec3{0, 0, -1}
)

// degenerateArea is the squared cross-product length below which a
// triangle is treated as flat.
const degenerateArea = 1e-18

// cornerKey identifies the point shared by three cells: their sorted coordinates.
type cornerKey [3]hexgrid.Coord

func canonicalCorner(a, b, c hexgrid.Coord) cornerKey {
	k := cornerKey{a, b, c}
	slices.SortFunc(k[:], func(x, y hexgrid.Coord) int {
		switch {
		case x.Less(y):
			return -1
		case y.Less(x):
			return 1
		}
		return 0
	})
	return k
}

// Stitcher turns a grid into one mesh: a cap fan per cell, a skirt across
// every interior edge and one fill triangle per interior three-cell corner.
type Stitcher struct {
	sys *hexgrid.System
}

// NewStitcher creates a stitcher for grids built from sys.
func NewStitcher(sys *hexgrid.System) *Stitcher {
	return &Stitcher{sys: sys}
}

// Stitch builds the mesh for g. Each cell only stitches toward SE, S and SW;
// the other three edges belong to the neighbor on the far side. Neighbors
// are recomputed in closed form, and edges leaving the grid get no skirt.
func (st *Stitcher) Stitch(g *hexgrid.Grid) *Mesh {
	defer profiling.Track("meshing.Stitch")()

	n := g.Len()
	m := &Mesh{
		Positions: make([]mgl32.Vec3, 0, n*7),
		Normals:   make([]mgl32.Vec3, 0, n*7),
		UVs:       make([]mgl32.Vec2, 0, n*7),
		Indices:   make([]uint32, 0, n*18*3),
		Cells:     g.Cells(),
		Spans:     make([]Span, 0, n),
	}
	corners := mapset.New[cornerKey]()

	for _, cell := range m.Cells {
		span := Span{
			Coord:         cell.Coord,
			FirstTriangle: m.TriangleCount(),
		}
		span.CapBase = m.addCap(cell)
		span.CapTriangles = 6

		for _, d := range hexgrid.StitchDirections {
			nc, ok := st.sys.NeighborCoords(cell.Coord, d)
			if !ok {
				continue
			}
			nb := st.sys.NeighborHex(cell, d)
			edge := d.Edge()
			nedge := d.Opposite().Edge()
			v1, v2 := cell.Vertices[edge[0]], cell.Vertices[edge[1]]
			nv1, nv2 := nb.Vertices[nedge[0]], nb.Vertices[nedge[1]]

			m.Seams = append(m.Seams, Seam{
				From:     cell.Coord,
				To:       nc,
				Dir:      d,
				Vertices: m.addSkirt(v1, v2, nv1, nv2),
			})
			span.SkirtTriangles += 2

			cw := d.Clockwise()
			cwc, ok := st.sys.NeighborCoords(cell.Coord, cw)
			if !ok {
				continue
			}
			key := canonicalCorner(cell.Coord, nc, cwc)
			if corners.Has(key) {
				continue
			}
			corners.Put(key)

			cwn := st.sys.NeighborHex(cell, cw)
			cwv2 := cwn.Vertices[cw.Opposite().Edge()[1]]
			m.Corners = append(m.Corners, Corner{
				Cells:    key,
				Vertices: m.addCorner(v2, nv1, cwv2),
			})
			span.CornerTriangles++
		}
		m.Spans = append(m.Spans, span)
	}
	return m
}

// addCap emits the 7-vertex fan for a cell and returns the center index.
// The center reuses rim vertex 0's height.
func (m *Mesh) addCap(cell hexgrid.Cell) uint32 {
	center := mgl32.Vec3{
		float32(cell.Center[0]),
		float32(cell.Vertices[0][1]),
		float32(cell.Center[2]),
	}
	base := m.addVertex(center, upNormal, mgl32.Vec2{0.5, 0.5})
	for i, v := range cell.Vertices {
		cos, sin := hexgrid.RimDirection(i)
		uv := mgl32.Vec2{float32(0.5 + 0.5*cos), float32(0.5 + 0.5*sin)}
		m.addVertex(toVec32(v), upNormal, uv)
	}
	// rim runs clockwise seen from above, so (center, i+1, i) faces +Y
	for i := uint32(0); i < 6; i++ {
		m.addTriangle(base, base+1+(i+1)%6, base+1+i)
	}
	return base
}

// addSkirt emits triangles (v1, v2, nv1) and (v1, nv1, nv2).
func (m *Mesh) addSkirt(v1, v2, nv1, nv2 mgl64.Vec3) [4]uint32 {
	n, ok := faceNormal(v1, v2, nv1)
	if !ok {
		n, ok = faceNormal(v1, nv1, nv2)
	}
	if !ok {
		n = skirtFallback
	}
	i1 := m.addVertex(toVec32(v1), n, mgl32.Vec2{0, 1})
	i2 := m.addVertex(toVec32(v2), n, mgl32.Vec2{1, 1})
	i3 := m.addVertex(toVec32(nv1), n, mgl32.Vec2{1, 0})
	i4 := m.addVertex(toVec32(nv2), n, mgl32.Vec2{0, 0})
	m.addTriangle(i1, i2, i3)
	m.addTriangle(i1, i3, i4)
	return [4]uint32{i1, i2, i3, i4}
}

// addCorner emits the single triangle (a, b, c).
func (m *Mesh) addCorner(a, b, c mgl64.Vec3) [3]uint32 {
	n, ok := faceNormal(a, b, c)
	if !ok {
		n = skirtFallback
	}
	ia := m.addVertex(toVec32(a), n, mgl32.Vec2{0, 0})
	ib := m.addVertex(toVec32(b), n, mgl32.Vec2{1, 0})
	ic := m.addVertex(toVec32(c), n, mgl32.Vec2{0.5, 1})
	m.addTriangle(ia, ib, ic)
	return [3]uint32{ia, ib, ic}
}

// faceNormal is the unit normal of triangle (a, b, c) by its winding.
func faceNormal(a, b, c mgl64.Vec3) (mgl32.Vec3, bool) {
	cr := b.Sub(a).Cross(c.Sub(a))
	if cr.Dot(cr) < degenerateArea {
		return mgl32.Vec3{}, false
	}
	return toVec32(cr.Normalize()), true
}

func toVec32(v mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}
