package pyramid

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rok4/pyramid-core/internal/cache"
	"github.com/rok4/pyramid-core/internal/storage"
	"github.com/rok4/pyramid-core/internal/tms"
)

func TestParseSlabHeaderRoundTrip(t *testing.T) {
	offsets := []uint32{0, 10, 20, 30}
	sizes := []uint32{10, 10, 10, 10}
	raw := BuildSlabHeader(2, 2, 1, offsets, sizes)
	raw = append(raw, make([]byte, 40)...)

	parsed, err := ParseSlabHeader(raw)
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Width != 2 || parsed.Height != 2 || parsed.Channels != 1 {
		t.Fatalf("unexpected header: %+v", parsed)
	}
	if len(parsed.Offsets) != 4 || parsed.Offsets[1] != 10 {
		t.Fatalf("unexpected offsets: %v", parsed.Offsets)
	}
}

func TestParseSlabHeaderBadMagic(t *testing.T) {
	bad := make([]byte, 20)
	if _, err := ParseSlabHeader(bad); err == nil {
		t.Fatal("expected format error for bad magic")
	}
}

func TestLevelGetTile(t *testing.T) {
	dir := t.TempDir()
	fc := storage.NewFileContext(dir)

	tileA := []byte{1, 2, 3}
	tileB := []byte{4, 5, 6, 7}
	payload := append(append([]byte{}, tileA...), tileB...)
	header := BuildSlabHeader(2, 2, 1, []uint32{0, uint32(len(tileA)), 0, 0}, []uint32{uint32(len(tileA)), uint32(len(tileB)), 0, 0})
	slab := append(header, payload...)

	slabPath := filepath.Join(dir, "0_0_0")
	if err := os.WriteFile(slabPath, slab, 0o644); err != nil {
		t.Fatal(err)
	}

	matrix := tms.TileMatrix{ID: "0", Resolution: 1, TileWidth: 1, TileHeight: 1, MatrixWidth: 2, MatrixHeight: 2}
	set := tms.New("test", "", "EPSG:4326", []tms.TileMatrix{matrix})

	level := &Level{
		Matrix:         matrix,
		TilesPerWidth:  2,
		TilesPerHeight: 2,
		Context:        fc,
	}
	p := New(set, PixelFormat{SampleFormat: "uint8", Channels: 1}, fc)
	if err := p.AddLevel(level); err != nil {
		t.Fatal(err)
	}

	idx := cache.New(10, 0)
	ds, err := level.GetTile(context.Background(), idx, p.Format, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if string(ds.Bytes) != string(tileB) {
		t.Fatalf("unexpected tile bytes: %v", ds.Bytes)
	}

	// Second fetch should hit the cache rather than re-reading the slab.
	ds2, err := level.GetTile(context.Background(), idx, p.Format, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if string(ds2.Bytes) != string(tileA) {
		t.Fatalf("unexpected tile bytes: %v", ds2.Bytes)
	}
	if idx.Len() != 1 {
		t.Fatalf("expected one cached slab entry, got %d", idx.Len())
	}
}
