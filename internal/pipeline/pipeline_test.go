package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rok4/pyramid-core/internal/cache"
	"github.com/rok4/pyramid-core/internal/geom"
	"github.com/rok4/pyramid-core/internal/pyramid"
	"github.com/rok4/pyramid-core/internal/raster"
	"github.com/rok4/pyramid-core/internal/storage"
	"github.com/rok4/pyramid-core/internal/style"
	"github.com/rok4/pyramid-core/internal/tms"
)

// grayPyramid builds a one-level, one-slab, 4x4 uint8 gray pyramid
// (2x2 tiles of 2x2 pixels each) backed by a temp-dir file context.
func grayPyramid(t *testing.T) (*pyramid.Pyramid, *pyramid.Level) {
	t.Helper()
	dir := t.TempDir()

	tileA := []byte{30, 30, 30, 30}
	tileB := []byte{60, 60, 60, 60}
	payload := append(append([]byte{}, tileA...), tileB...)
	header := pyramid.BuildSlabHeader(2, 2, 1,
		[]uint32{0, uint32(len(tileA)), 0, 0},
		[]uint32{uint32(len(tileA)), uint32(len(tileB)), 0, 0})
	slab := append(header, payload...)
	if err := os.WriteFile(filepath.Join(dir, "0_0_0"), slab, 0o644); err != nil {
		t.Fatal(err)
	}

	fc := storage.NewFileContext(dir)
	matrix := tms.TileMatrix{ID: "0", Resolution: 1, X0: 0, Y0: 4, TileWidth: 2, TileHeight: 2, MatrixWidth: 2, MatrixHeight: 2}
	set := tms.New("test", "", "EPSG:3857", []tms.TileMatrix{matrix})
	level := &pyramid.Level{Matrix: matrix, TilesPerWidth: 2, TilesPerHeight: 2, Context: fc}

	p := pyramid.New(set, pyramid.PixelFormat{SampleFormat: "uint8", Channels: 1, Compression: "raw"}, fc)
	if err := p.AddLevel(level); err != nil {
		t.Fatal(err)
	}
	return p, level
}

func TestBuildSameCRSNoStyle(t *testing.T) {
	p, _ := grayPyramid(t)
	idx := cache.New(10, 0)

	req := Request{
		BBox:    geom.New(0.0, 0.0, 4.0, 4.0, "EPSG:3857"),
		CRSCode: "EPSG:3857",
		Width:   4,
		Height:  4,
		Kernel:  raster.KernelNearest,
	}
	img, err := Build(context.Background(), p, idx, req)
	if err != nil {
		t.Fatal(err)
	}
	if img.Width() != 4 || img.Height() != 4 {
		t.Fatalf("expected a 4x4 output, got %dx%d", img.Width(), img.Height())
	}
}

func TestBuildWithPaletteStyle(t *testing.T) {
	p, _ := grayPyramid(t)
	idx := cache.New(10, 0)

	pal := style.NewPalette(false, false)
	pal.AddStop(0, 0, 0, 0, 255)
	pal.AddStop(255, 255, 255, 255, 255)
	if err := pal.Finalize(); err != nil {
		t.Fatal(err)
	}
	s := &style.Style{ID: "gray-ramp", Palette: pal}

	req := Request{
		BBox:    geom.New(0.0, 0.0, 4.0, 4.0, "EPSG:3857"),
		CRSCode: "EPSG:3857",
		Width:   4,
		Height:  4,
		Kernel:  raster.KernelNearest,
		Style:   s,
	}
	img, err := Build(context.Background(), p, idx, req)
	if err != nil {
		t.Fatal(err)
	}
	if img.Channels() != 3 {
		t.Fatalf("expected RGB output from a no-alpha palette, got %d channels", img.Channels())
	}
}

func TestBuildRejectsNonPositiveDimensions(t *testing.T) {
	p, _ := grayPyramid(t)
	idx := cache.New(10, 0)
	req := Request{
		BBox:    geom.New(0.0, 0.0, 4.0, 4.0, "EPSG:3857"),
		CRSCode: "EPSG:3857",
		Width:   0,
		Height:  4,
	}
	if _, err := Build(context.Background(), p, idx, req); err == nil {
		t.Fatal("expected rejection of zero width")
	}
}
