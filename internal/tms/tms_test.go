package tms

import (
	"testing"

	"github.com/rok4/pyramid-core/internal/geom"
)

// TestQuadTreeRecognition reproduces spec.md §8 scenario 2.
func TestQuadTreeRecognition(t *testing.T) {
	mk := func(res float64) TileMatrix {
		return TileMatrix{ID: "x", Resolution: res, X0: 0, Y0: 20037508.34,
			TileWidth: 256, TileHeight: 256, MatrixWidth: 1000, MatrixHeight: 1000}
	}

	set := New("test", "", "EPSG:3857", []TileMatrix{
		mk(156543.034), mk(78271.517), mk(39135.758),
	})
	if !set.IsQuadTree() {
		t.Fatal("expected quad-tree classification")
	}

	perturbed := New("test", "", "EPSG:3857", []TileMatrix{
		mk(156543.034), mk(78271.517 * 1.01), mk(39135.758),
	})
	if perturbed.IsQuadTree() {
		t.Fatal("perturbing the middle resolution by 1%% should break quad-tree classification")
	}
}

func TestTileLimitsMath(t *testing.T) {
	m := TileMatrix{
		ID: "0", Resolution: 1000, X0: 0, Y0: 0,
		TileWidth: 256, TileHeight: 256,
		MatrixWidth: 10, MatrixHeight: 10,
	}

	limits := m.BBoxToTileLimits(geom.New(0.0, 0.0, 512000.0, 256000.0, "EPSG:3857"))
	if limits.MinCol != 0 || limits.MaxCol != 1 {
		t.Fatalf("unexpected column limits: %+v", limits)
	}
	if limits.MinRow != 9 || limits.MaxRow != 9 {
		t.Fatalf("unexpected row limits: %+v", limits)
	}
}
