package tarkovdev

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
)

// FileCache stores raw catalog datasets as zstd compressed JSON files. The
// file modification time is the fetch time.
type FileCache struct {
	dir string
}

func NewFileCache(dir string) *FileCache {
	return &FileCache{dir: dir}
}

func (c *FileCache) path(name string) string {
	return filepath.Join(c.dir, name+".json.zst")
}

// Read returns the cached dataset and when it was written.
func (c *FileCache) Read(name string) ([]byte, time.Time, error) {
	path := c.path(name)
	info, err := os.Stat(path)
	if err != nil {
		return nil, time.Time{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer dec.Close()

	data, err := io.ReadAll(bufio.NewReader(dec))
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("decompress %s: %w", name, err)
	}
	return data, info.ModTime(), nil
}

// Write replaces the cached dataset atomically.
func (c *FileCache) Write(name string, data []byte) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(c.dir, name+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc, err := zstd.NewWriter(tmp, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		tmp.Close()
		return err
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		tmp.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), c.path(name))
}

// Touch sets the fetch time recorded for a cached dataset.
func (c *FileCache) Touch(name string, at time.Time) error {
	return os.Chtimes(c.path(name), at, at)
}
