package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"hexterrain/internal/config"
	"hexterrain/internal/export"
	"hexterrain/internal/logger"
	"hexterrain/internal/profiling"
	"hexterrain/pkg/hexterrain"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to hexgen.yaml (optional)")
		outPath     = flag.String("out", "terrain.obj", "OBJ output path; a .zst suffix compresses it")
		previewPath = flag.String("preview", "", "biome preview PNG path (empty to skip)")
		previewSize = flag.Int("preview-size", 512, "preview width in pixels")
		gridSize    = flag.Int("grid", 0, "grid size override")
		hexSize     = flag.Float64("size", 0, "hex radius override")
		hexGap      = flag.Float64("gap", 0, "gap between hexes override")
		seed        = flag.Int64("seed", 0, "seed override")
		workers     = flag.Int("workers", 0, "worker goroutines override (negative uses every CPU)")
	)
	flag.Parse()

	if err := config.LoadEnv(".env", filepath.Join("configs", ".env")); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	l := logger.Setup()

	s := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			l.Error("config_load_error", "path", *configPath, "err", err)
			os.Exit(1)
		}
		s = loaded
	}
	if err := s.ApplyEnv(); err != nil {
		l.Error("config_env_error", "err", err)
		os.Exit(1)
	}

	// only flags given on the command line override the file and env
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "grid":
			s.GridSize = *gridSize
		case "size":
			s.HexSize = *hexSize
		case "gap":
			s.HexGap = *hexGap
		case "seed":
			s.Seed = seed
		case "workers":
			s.Workers = *workers
		}
	})
	if err := s.Validate(); err != nil {
		l.Error("config_invalid", "err", err)
		os.Exit(2)
	}

	var sd int64
	if s.Seed != nil {
		sd = *s.Seed
	} else {
		sd = time.Now().UnixNano()
		l.Info("seed_drawn", "seed", sd)
	}
	l.Info("config_loaded", "grid", s.GridSize, "size", s.HexSize, "gap", s.HexGap, "seed", sd, "noise", s.NoiseBackend, "workers", s.Workers)

	start := time.Now()
	m, err := hexterrain.Generate(s.Params(sd))
	if err != nil {
		l.Error("generate_error", "err", err)
		os.Exit(1)
	}
	st := m.Stats()
	l.Info("generate_done",
		"cells", st.Cells,
		"vertices", st.Vertices,
		"triangles", st.Triangles,
		"elapsed", time.Since(start).Round(time.Microsecond),
		"top", profiling.TopN(3),
	)

	if err := export.WriteOBJFile(*outPath, m, fmt.Sprintf("hexterrain_%d", sd)); err != nil {
		l.Error("export_error", "err", err)
		os.Exit(1)
	}
	l.Info("export_done", "path", *outPath, "compressed", export.Compressed(*outPath))

	if *previewPath != "" {
		img, err := export.Preview(m.Cells, s.GridSize, *previewSize, hexterrain.DefaultPalette)
		if err != nil {
			l.Error("preview_error", "err", err)
			os.Exit(1)
		}
		if err := export.WritePNG(*previewPath, img); err != nil {
			l.Error("preview_error", "err", err)
			os.Exit(1)
		}
		l.Info("export_done", "path", *previewPath)
	}
}
