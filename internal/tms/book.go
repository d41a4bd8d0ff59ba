package tms

import "sync"

// Book is the process-wide TileMatrixSet registry (spec.md §3
// "Lifecycles": "CRS registry, TMS book, style book, storage pool:
// process-wide, initialized on first use"). Descriptor loading itself is
// out of scope (spec.md §1); Book only holds what a loader registers.
type Book struct {
	mu  sync.RWMutex
	set map[string]*TileMatrixSet
}

var (
	bookOnce sync.Once
	book     *Book
)

// GetBook returns the singleton TMS book.
func GetBook() *Book {
	bookOnce.Do(func() {
		book = &Book{set: make(map[string]*TileMatrixSet)}
	})
	return book
}

// Register adds or replaces a TileMatrixSet under its ID.
func (b *Book) Register(s *TileMatrixSet) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.set[s.ID] = s
}

// Get looks up a registered TileMatrixSet by ID.
func (b *Book) Get(id string) (*TileMatrixSet, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s, ok := b.set[id]
	return s, ok
}

// Remove drops a TileMatrixSet, e.g. when its descriptor failed to
// reload (spec.md §7: "Style/TMS loaders may publish a non-fatal error
// and be omitted from the cache").
func (b *Book) Remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.set, id)
}
