package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"hexterrain/internal/noise"
	"hexterrain/internal/terrain"
	"hexterrain/pkg/hexterrain"
)

// ErrInvalidParameter is wrapped by Validate and ApplyEnv failures.
var ErrInvalidParameter = terrain.ErrInvalidParameter

// Settings is the on-disk generation config.
type Settings struct {
	GridSize int     `yaml:"grid_size"`
	HexSize  float64 `yaml:"hex_size"`
	HexGap   float64 `yaml:"hex_gap"`
	// Seed is optional here; nil means the caller picks one.
	Seed          *int64         `yaml:"seed"`
	BiomeCount    int            `yaml:"biome_count"`
	Workers       int            `yaml:"workers"`
	NoiseBackend  string         `yaml:"noise_backend"`
	CacheCapacity int            `yaml:"cache_capacity"`
	Terrain       terrain.Params `yaml:"terrain"`
}

// Default returns the settings used when no file is given.
func Default() Settings {
	return Settings{
		GridSize:     16,
		HexSize:      1.0,
		HexGap:       0,
		BiomeCount:   len(terrain.DefaultPalette),
		NoiseBackend: string(noise.BackendGradient),
		Terrain:      terrain.DefaultParams(),
	}
}

// Load reads a YAML file over Default, so omitted keys keep their defaults.
func Load(path string) (Settings, error) {
	s := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadEnv loads .env files into the process environment. Missing files are
// skipped; existing variables are not overwritten.
func LoadEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides s from HEX_* variables.
func (s *Settings) ApplyEnv() error {
	if v, ok := os.LookupEnv("HEX_GRID_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: HEX_GRID_SIZE=%q", ErrInvalidParameter, v)
		}
		s.GridSize = n
	}
	if v, ok := os.LookupEnv("HEX_SIZE"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: HEX_SIZE=%q", ErrInvalidParameter, v)
		}
		s.HexSize = f
	}
	if v, ok := os.LookupEnv("HEX_GAP"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: HEX_GAP=%q", ErrInvalidParameter, v)
		}
		s.HexGap = f
	}
	if v, ok := os.LookupEnv("HEX_SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: HEX_SEED=%q", ErrInvalidParameter, v)
		}
		s.Seed = &n
	}
	if v, ok := os.LookupEnv("HEX_WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: HEX_WORKERS=%q", ErrInvalidParameter, v)
		}
		s.Workers = n
	}
	if v, ok := os.LookupEnv("HEX_NOISE"); ok {
		s.NoiseBackend = v
	}
	return nil
}

// Validate rejects settings that Generate would refuse. Nothing is clamped.
func (s Settings) Validate() error {
	switch {
	case s.GridSize <= 0:
		return fmt.Errorf("%w: grid_size must be > 0, got %d", ErrInvalidParameter, s.GridSize)
	case !(s.HexSize > 0) || math.IsInf(s.HexSize, 0):
		return fmt.Errorf("%w: hex_size must be > 0, got %v", ErrInvalidParameter, s.HexSize)
	case !(s.HexGap >= 0):
		return fmt.Errorf("%w: hex_gap must be >= 0, got %v", ErrInvalidParameter, s.HexGap)
	case s.HexGap >= s.HexSize:
		return fmt.Errorf("%w: hex_gap %v must be smaller than hex_size %v", ErrInvalidParameter, s.HexGap, s.HexSize)
	case s.BiomeCount <= 0:
		return fmt.Errorf("%w: biome_count must be > 0, got %d", ErrInvalidParameter, s.BiomeCount)
	case !noise.Backend(s.NoiseBackend).Valid():
		return fmt.Errorf("%w: noise_backend %q", ErrInvalidParameter, s.NoiseBackend)
	}
	return s.Terrain.Validate()
}

// Params converts s into a generation request with the given seed.
func (s Settings) Params(seed int64) hexterrain.Params {
	return hexterrain.Params{
		GridSize:      s.GridSize,
		HexSize:       s.HexSize,
		HexGap:        s.HexGap,
		Seed:          seed,
		BiomeCount:    s.BiomeCount,
		Workers:       s.Workers,
		Backend:       noise.Backend(s.NoiseBackend),
		CacheCapacity: s.CacheCapacity,
		Terrain:       s.Terrain,
	}
}
