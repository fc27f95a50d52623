// Package export writes generated meshes to disk: Wavefront OBJ, optionally
// zstd-compressed, and a top-down biome preview.
package export

import (
	"bufio"
	"io"
	"strconv"

	"hexterrain/internal/meshing"
)

// WriteOBJ writes m as a single named OBJ object with positions, normals,
// texture coordinates and v/vt/vn faces. Floats are written with the
// shortest representation that round-trips to the same float32.
func WriteOBJ(w io.Writer, m *meshing.Mesh, name string) error {
	bw := bufio.NewWriterSize(w, 128*1024)
	buf := make([]byte, 0, 96)

	buf = append(buf, "# hexterrain cells="...)
	buf = strconv.AppendInt(buf, int64(len(m.Cells)), 10)
	buf = append(buf, " triangles="...)
	buf = strconv.AppendInt(buf, int64(m.TriangleCount()), 10)
	buf = append(buf, "\no "...)
	buf = append(buf, name...)
	buf = append(buf, '\n')
	if _, err := bw.Write(buf); err != nil {
		return err
	}

	for _, p := range m.Positions {
		buf = appendFloats(append(buf[:0], 'v'), p[0], p[1], p[2])
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	for _, uv := range m.UVs {
		buf = appendFloats(append(buf[:0], 'v', 't'), uv[0], uv[1])
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	for _, n := range m.Normals {
		buf = appendFloats(append(buf[:0], 'v', 'n'), n[0], n[1], n[2])
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	// OBJ indices are 1-based; position, uv and normal share one index.
	for i := 0; i+2 < len(m.Indices); i += 3 {
		buf = append(buf[:0], 'f')
		for _, idx := range m.Indices[i : i+3] {
			k := strconv.AppendUint(nil, uint64(idx)+1, 10)
			buf = append(buf, ' ')
			buf = append(buf, k...)
			buf = append(buf, '/')
			buf = append(buf, k...)
			buf = append(buf, '/')
			buf = append(buf, k...)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func appendFloats(buf []byte, vs ...float32) []byte {
	for _, v := range vs {
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, float64(v), 'g', -1, 32)
	}
	return append(buf, '\n')
}
