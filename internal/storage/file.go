package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rok4/pyramid-core/internal/rerr"
)

// FileContext is the local-disk StorageContext. Reads use os.File.ReadAt
// rather than the teacher's internal/cog mmap technique: mmap earns its
// keep there because a COG reader revisits the same file's IFD and tile
// grid repeatedly across a session, while a pyramid slab read here is one
// bounded offset/size request per tile lookup, which ReadAt serves
// directly without mapping the whole slab into the address space.
type FileContext struct {
	BaseDir string
}

// NewFileContext returns a FileContext rooted at baseDir.
func NewFileContext(baseDir string) *FileContext {
	return &FileContext{BaseDir: baseDir}
}

func (c *FileContext) resolve(name string) string {
	return filepath.Join(c.BaseDir, name)
}

func (c *FileContext) PathFor(name string) string {
	resolved, err := filepath.EvalSymlinks(c.resolve(name))
	if err != nil {
		return c.resolve(name)
	}
	return resolved
}

func (c *FileContext) Exists(_ context.Context, name string) (bool, error) {
	_, err := os.Stat(c.resolve(name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, rerr.Wrap(rerr.Storage, "stat %s: %v", name, err)
}

func (c *FileContext) Read(_ context.Context, dst []byte, offset int64, size int64, name string) (int, error) {
	f, err := os.Open(c.resolve(name))
	if err != nil {
		return 0, rerr.Wrap(rerr.Storage, "open %s: %v", name, err)
	}
	defer f.Close()

	if int64(len(dst)) < size {
		dst = make([]byte, size)
	}
	n, err := f.ReadAt(dst[:size], offset)
	if err != nil && err != io.EOF {
		return n, rerr.Wrap(rerr.Storage, "read %s at %d: %v", name, offset, err)
	}
	return n, nil
}

func (c *FileContext) ReadFull(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(c.resolve(name))
	if err != nil {
		return nil, rerr.Wrap(rerr.Storage, "read_full %s: %v", name, err)
	}
	return data, nil
}

func (c *FileContext) OpenToWrite(_ context.Context, name string) (*WriteHandle, error) {
	return newWriteHandle(name), nil
}

func (c *FileContext) Write(_ context.Context, h *WriteHandle, offset int64, src []byte) error {
	h.writeAt(offset, src)
	return nil
}

func (c *FileContext) CloseToWrite(_ context.Context, h *WriteHandle) error {
	full := c.resolve(h.name)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return rerr.Wrap(rerr.Storage, "mkdir for %s: %v", h.name, err)
	}
	if err := os.WriteFile(full, h.buf, 0o644); err != nil {
		return rerr.Wrap(rerr.Storage, "write %s: %v", h.name, err)
	}
	return nil
}
