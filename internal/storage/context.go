package storage

import "context"

// WriteHandle is an open, buffered write session returned by
// OpenToWrite. Writes accumulate in memory at arbitrary offsets and are
// flushed as one atomic object on CloseToWrite (spec.md §4.1).
type WriteHandle struct {
	name string
	buf  []byte
}

func newWriteHandle(name string) *WriteHandle {
	return &WriteHandle{name: name}
}

func (h *WriteHandle) writeAt(offset int64, src []byte) {
	end := offset + int64(len(src))
	if end > int64(len(h.buf)) {
		grown := make([]byte, end)
		copy(grown, h.buf)
		h.buf = grown
	}
	copy(h.buf[offset:end], src)
}

// Context is the unified storage backend contract of spec.md §3/§4.1.
type Context interface {
	// Exists reports whether name is present in this context.
	Exists(ctx context.Context, name string) (bool, error)
	// Read reads size bytes at offset from name into dst.
	Read(ctx context.Context, dst []byte, offset int64, size int64, name string) (int, error)
	// ReadFull reads the entirety of name.
	ReadFull(ctx context.Context, name string) ([]byte, error)
	// OpenToWrite begins a buffered write session for name.
	OpenToWrite(ctx context.Context, name string) (*WriteHandle, error)
	// Write appends src at offset within an open write session.
	Write(ctx context.Context, h *WriteHandle, offset int64, src []byte) error
	// CloseToWrite atomically flushes the session's buffer as one object.
	CloseToWrite(ctx context.Context, h *WriteHandle) error
	// PathFor resolves name to a backend-specific physical path, e.g.
	// following a file backend's symlinks before slab-header caching.
	PathFor(name string) string
}

// Pool is the process-wide storage context pool (spec.md §3 Lifecycles:
// "storage pool: process-wide, initialized on first use"). Each thread
// that needs a remote context borrows a persistent transport handle from
// here rather than dialing a new connection per request.
type Pool struct {
	contexts map[string]Context
}

// NewPool creates an empty context pool; backends register themselves
// via Put as descriptors resolve their storage references.
func NewPool() *Pool {
	return &Pool{contexts: make(map[string]Context)}
}

// Put registers ctx under key (typically container name).
func (p *Pool) Put(key string, ctx Context) { p.contexts[key] = ctx }

// Get retrieves a previously registered context.
func (p *Pool) Get(key string) (Context, bool) {
	c, ok := p.contexts[key]
	return c, ok
}
