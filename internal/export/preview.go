package export

import (
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"

	"hexterrain/internal/hexgrid"
	"hexterrain/internal/terrain"
)

// Preview paints a top-down biome map of cells on a gridSize x gridSize
// grid and scales it to width pixels. Each cell covers two half-row pixels
// so odd columns can sit half a row lower, as they do in the mesh.
func Preview(cells []hexgrid.Cell, gridSize, width int, palette terrain.Palette) (*image.NRGBA, error) {
	if gridSize <= 0 || width <= 0 {
		return nil, fmt.Errorf("preview: grid %d and width %d must be > 0", gridSize, width)
	}
	src := image.NewNRGBA(image.Rect(0, 0, gridSize, 2*gridSize+1))
	for _, c := range cells {
		col, row := c.Coord.Col, c.Coord.Row
		if col < 0 || col >= gridSize || row < 0 || row >= gridSize {
			continue
		}
		clr := palette.At(c.Biome).Color
		y := 2*row + col&1
		src.SetNRGBA(col, y, clr)
		src.SetNRGBA(col, y+1, clr)
	}

	// keep the half-row aspect of the source
	height := width * (2*gridSize + 1) / (2 * gridSize)
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	w, err := Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(w, img); err != nil {
		_ = w.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return w.Close()
}
