package pyramid

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rok4/pyramid-core/internal/cache"
	"github.com/rok4/pyramid-core/internal/geom"
	"github.com/rok4/pyramid-core/internal/storage"
	"github.com/rok4/pyramid-core/internal/tms"
)

func twoByTwoLevel(t *testing.T, dir string) (*Pyramid, *Level) {
	t.Helper()
	fc := storage.NewFileContext(dir)

	tileA := []byte{10, 10, 10, 10}
	tileB := []byte{20, 20, 20, 20}
	payload := append(append([]byte{}, tileA...), tileB...)
	header := BuildSlabHeader(2, 2, 1,
		[]uint32{0, uint32(len(tileA)), 0, 0},
		[]uint32{uint32(len(tileA)), uint32(len(tileB)), 0, 0})
	slab := append(header, payload...)

	if err := os.WriteFile(filepath.Join(dir, "0_0_0"), slab, 0o644); err != nil {
		t.Fatal(err)
	}

	matrix := tms.TileMatrix{ID: "0", Resolution: 1, X0: 0, Y0: 4, TileWidth: 2, TileHeight: 2, MatrixWidth: 2, MatrixHeight: 2}
	set := tms.New("test", "", "EPSG:3857", []tms.TileMatrix{matrix})

	level := &Level{Matrix: matrix, TilesPerWidth: 2, TilesPerHeight: 2, Context: fc}
	p := New(set, PixelFormat{SampleFormat: "uint8", Channels: 1, Compression: "raw"}, fc)
	if err := p.AddLevel(level); err != nil {
		t.Fatal(err)
	}
	return p, level
}

func TestGetBboxWindowAssemblesTiles(t *testing.T) {
	dir := t.TempDir()
	p, level := twoByTwoLevel(t, dir)
	idx := cache.New(10, 0)

	bbox := geom.New(0.0, 0.0, 4.0, 4.0, "EPSG:3857")
	win, err := level.GetBboxWindow(context.Background(), idx, p.Format, bbox)
	if err != nil {
		t.Fatal(err)
	}
	if win.Width() != 4 || win.Height() != 4 {
		t.Fatalf("expected a 4x4 mosaic, got %dx%d", win.Width(), win.Height())
	}

	row := make([]uint8, win.Width())
	if err := win.GetLineU8(row, 0); err != nil {
		t.Fatal(err)
	}
	if row[0] != 10 || row[2] != 20 {
		t.Fatalf("unexpected mosaic row: %v", row)
	}
}

func TestGetBboxWindowStampsNodataForMissingTile(t *testing.T) {
	dir := t.TempDir()

	tileA := []byte{5, 5, 5, 5}
	header := BuildSlabHeader(2, 2, 1,
		[]uint32{0, 0, 0, 0},
		[]uint32{uint32(len(tileA)), 0, 0, 0})
	slab := append(header, tileA...)

	if err := os.WriteFile(filepath.Join(dir, "0_0_0"), slab, 0o644); err != nil {
		t.Fatal(err)
	}
	fc := storage.NewFileContext(dir)

	matrix := tms.TileMatrix{ID: "0", Resolution: 1, X0: 0, Y0: 4, TileWidth: 2, TileHeight: 2, MatrixWidth: 2, MatrixHeight: 2}
	set := tms.New("test", "", "EPSG:3857", []tms.TileMatrix{matrix})
	level := &Level{Matrix: matrix, TilesPerWidth: 2, TilesPerHeight: 2, Context: fc}
	p := New(set, PixelFormat{SampleFormat: "uint8", Channels: 1, Compression: "raw", NoData: []float64{99}}, fc)
	if err := p.AddLevel(level); err != nil {
		t.Fatal(err)
	}

	idx := cache.New(10, 0)
	bbox := geom.New(0.0, 0.0, 4.0, 4.0, "EPSG:3857")
	win, err := level.GetBboxWindow(context.Background(), idx, p.Format, bbox)
	if err != nil {
		t.Fatal(err)
	}

	row := make([]uint8, win.Width())
	if err := win.GetLineU8(row, 0); err != nil {
		t.Fatal(err)
	}
	if row[0] != 5 {
		t.Fatalf("expected stored tile's sample 5 at column 0, got %d", row[0])
	}
	if row[2] != 99 {
		t.Fatalf("expected missing tile stamped with nodata 99, got %d", row[2])
	}
}
