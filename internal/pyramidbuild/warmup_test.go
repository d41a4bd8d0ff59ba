package pyramidbuild

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/rok4/pyramid-core/internal/cache"
	"github.com/rok4/pyramid-core/internal/pyramid"
	"github.com/rok4/pyramid-core/internal/storage"
	"github.com/rok4/pyramid-core/internal/tms"
)

func TestWarmupPopulatesCacheForEverySlab(t *testing.T) {
	dir := t.TempDir()
	fc := storage.NewFileContext(dir)

	// A 2x2 matrix of 1x1-tile slabs: four independent slab files.
	for sy := 0; sy < 2; sy++ {
		for sx := 0; sx < 2; sx++ {
			tile := []byte{1, 2, 3, 4}
			header := pyramid.BuildSlabHeader(1, 1, 1, []uint32{0}, []uint32{uint32(len(tile))})
			slab := append(header, tile...)
			name := filepath.Join(dir, "0_"+strconv.Itoa(sx)+"_"+strconv.Itoa(sy))
			if err := os.WriteFile(name, slab, 0o644); err != nil {
				t.Fatal(err)
			}
		}
	}

	matrix := tms.TileMatrix{ID: "0", Resolution: 1, TileWidth: 1, TileHeight: 1, MatrixWidth: 2, MatrixHeight: 2}
	set := tms.New("test", "", "EPSG:3857", []tms.TileMatrix{matrix})
	level := &pyramid.Level{
		Matrix:         matrix,
		Limits:         tms.TileLimits{MinCol: 0, MaxCol: 1, MinRow: 0, MaxRow: 1},
		TilesPerWidth:  1,
		TilesPerHeight: 1,
		Context:        fc,
	}
	p := pyramid.New(set, pyramid.PixelFormat{SampleFormat: "uint8", Channels: 1, Compression: "raw"}, fc)
	if err := p.AddLevel(level); err != nil {
		t.Fatal(err)
	}

	idx := cache.New(10, 0)
	stats, err := Warmup(context.Background(), level, idx, p.Format, Config{Concurrency: 2})
	if err != nil {
		t.Fatal(err)
	}
	if stats.SlabCount != 4 {
		t.Fatalf("expected 4 slabs warmed, got %d (failed=%d)", stats.SlabCount, stats.ErrorCount)
	}
	if idx.Len() != 4 {
		t.Fatalf("expected 4 cached slab entries, got %d", idx.Len())
	}
}
