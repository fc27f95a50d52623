package terrain

import (
	"image/color"
	"math"
)

// Biome is a display class for a band of elevation.
type Biome struct {
	ID    int
	Name  string
	Color color.NRGBA
}

// Palette maps biome indices to biomes, lowest elevation first.
type Palette []Biome

// DefaultPalette covers elevation in [0,1] with seven bands.
var DefaultPalette = Palette{
	{ID: 0, Name: "Ocean", Color: color.NRGBA{R: 32, G: 82, B: 156, A: 255}},
	{ID: 1, Name: "Beach", Color: color.NRGBA{R: 222, G: 206, B: 148, A: 255}},
	{ID: 2, Name: "Plains", Color: color.NRGBA{R: 118, G: 178, B: 72, A: 255}},
	{ID: 3, Name: "Forest", Color: color.NRGBA{R: 46, G: 120, B: 52, A: 255}},
	{ID: 4, Name: "Hills", Color: color.NRGBA{R: 122, G: 110, B: 76, A: 255}},
	{ID: 5, Name: "Mountains", Color: color.NRGBA{R: 128, G: 128, B: 132, A: 255}},
	{ID: 6, Name: "Snow", Color: color.NRGBA{R: 240, G: 244, B: 248, A: 255}},
}

// BiomeIndex classifies an elevation into one of count bands.
// The result is not clamped: elevations outside [0,1) land outside [0,count).
// Use ClampBiome before indexing a table.
func BiomeIndex(elevation float64, count int) int {
	return int(math.Floor(elevation * float64(count)))
}

// ClampBiome pulls an index back into [0,count). A non-positive count yields 0.
func ClampBiome(index, count int) int {
	if count <= 0 || index < 0 {
		return 0
	}
	if index >= count {
		return count - 1
	}
	return index
}

// At returns the biome for an unclamped index.
func (p Palette) At(index int) Biome {
	if len(p) == 0 {
		return Biome{Name: "Unknown", Color: color.NRGBA{A: 255}}
	}
	return p[ClampBiome(index, len(p))]
}
