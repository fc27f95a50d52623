package meshing

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"hexterrain/internal/hexgrid"
)

// VertexStride is number of float32 per interleaved vertex (pos.xyz + normal.xyz + uv)
const VertexStride = 8

// Mesh is an indexed triangle mesh. Positions, Normals and UVs are parallel
// arrays; Indices holds triangles as triples into them.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32

	// Cells are the grid cells the mesh was built from, row-major.
	Cells []hexgrid.Cell
	// Spans records which triangles each cell contributed, in Cells order.
	Spans []Span
	// Seams records every emitted skirt.
	Seams []Seam
	// Corners records every emitted corner fill.
	Corners []Corner
}

// Span is the slice of the mesh contributed by one cell.
type Span struct {
	Coord hexgrid.Coord
	// CapBase is the index of the cap center; rim vertex i is CapBase+1+i.
	CapBase         uint32
	FirstTriangle   int
	CapTriangles    int
	SkirtTriangles  int
	CornerTriangles int
}

// Triangles returns the total triangle count of the span.
func (s Span) Triangles() int {
	return s.CapTriangles + s.SkirtTriangles + s.CornerTriangles
}

// Seam is a skirt between a cell and its neighbor toward Dir.
// Vertices are v1, v2 (this cell's edge) then nv1, nv2 (the neighbor's
// opposite edge).
type Seam struct {
	From     hexgrid.Coord
	To       hexgrid.Coord
	Dir      hexgrid.Direction
	Vertices [4]uint32
}

// Corner is a fill triangle at the point shared by three cells.
// Cells is sorted and identifies the corner.
type Corner struct {
	Cells    [3]hexgrid.Coord
	Vertices [3]uint32
}

// Stats summarizes a mesh.
type Stats struct {
	Cells           int
	Vertices        int
	Triangles       int
	CapTriangles    int
	SkirtTriangles  int
	CornerTriangles int
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Positions) == 0
}

// Stats counts cells, vertices and triangles by kind.
func (m *Mesh) Stats() Stats {
	st := Stats{
		Cells:     len(m.Cells),
		Vertices:  m.VertexCount(),
		Triangles: m.TriangleCount(),
	}
	for _, s := range m.Spans {
		st.CapTriangles += s.CapTriangles
		st.SkirtTriangles += s.SkirtTriangles
		st.CornerTriangles += s.CornerTriangles
	}
	return st
}

// Interleaved flattens the vertex arrays into pos.xyz, normal.xyz, uv
// records of VertexStride floats, ready for a vertex buffer.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Positions)*VertexStride)
	for i, p := range m.Positions {
		n := m.Normals[i]
		uv := m.UVs[i]
		out = append(out, p[0], p[1], p[2], n[0], n[1], n[2], uv[0], uv[1])
	}
	return out
}

// Bounds returns the axis-aligned box around all positions.
// An empty mesh returns zero vectors.
func (m *Mesh) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	if len(m.Positions) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	lo := mgl32.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	hi := mgl32.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	for _, p := range m.Positions {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], p[k])
			hi[k] = max(hi[k], p[k])
		}
	}
	return lo, hi
}

func (m *Mesh) addVertex(p, n mgl32.Vec3, uv mgl32.Vec2) uint32 {
	idx := uint32(len(m.Positions))
	m.Positions = append(m.Positions, p)
	m.Normals = append(m.Normals, n)
	m.UVs = append(m.UVs, uv)
	return idx
}

func (m *Mesh) addTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}
