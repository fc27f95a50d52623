package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"hexterrain/internal/meshing"
)

// Compressed reports whether path is written through zstd.
func Compressed(path string) bool {
	return strings.HasSuffix(path, ".zst")
}

type zstdFile struct {
	f   *os.File
	enc *zstd.Encoder
}

func (z *zstdFile) Write(p []byte) (int, error) { return z.enc.Write(p) }

func (z *zstdFile) Close() error {
	return errors.Join(z.enc.Close(), z.f.Close())
}

// Create opens path for writing, creating parent directories. Paths ending
// in .zst are compressed transparently.
func Create(path string) (io.WriteCloser, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if !Compressed(path) {
		return f, nil
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &zstdFile{f: f, enc: enc}, nil
}

type zstdReader struct {
	f   *os.File
	dec *zstd.Decoder
}

func (z *zstdReader) Read(p []byte) (int, error) { return z.dec.Read(p) }

func (z *zstdReader) Close() error {
	z.dec.Close()
	return z.f.Close()
}

// Open is the reading counterpart of Create.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !Compressed(path) {
		return f, nil
	}
	dec, err := zstd.NewReader(bufio.NewReader(f))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &zstdReader{f: f, dec: dec}, nil
}

// WriteOBJFile writes m to path as OBJ, compressing when path ends in .zst.
func WriteOBJFile(path string, m *meshing.Mesh, name string) error {
	w, err := Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteOBJ(w, m, name); err != nil {
		_ = w.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
