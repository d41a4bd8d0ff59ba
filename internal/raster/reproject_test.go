package raster

import (
	"testing"

	"github.com/rok4/pyramid-core/internal/geom"
)

// identityProjector is a stand-in for an internal/crs.Transformer
// between identical CRSes.
type identityProjector struct{}

func (identityProjector) Transform(x, y float64) (float64, float64, bool) { return x, y, true }

// TestReprojectionIdentity reproduces spec.md §8 scenario 7: source
// CRS == target CRS, same bbox and dimensions, output must equal input
// for every interior (and, per this kernel's exact-alignment property,
// every edge) pixel.
func TestReprojectionIdentity(t *testing.T) {
	const w, h = 6, 6
	pix := make([]uint8, w*h)
	for i := range pix {
		pix[i] = uint8(i*7 + 3)
	}
	bbox := geom.New(0.0, 0.0, float64(w), float64(h), "EPSG:3857")
	src := NewBufferImageU8(w, h, 1, bbox, "EPSG:3857", pix)

	grid := NewGrid(w, h, bbox, 4)
	if err := grid.Reproject(identityProjector{}, "EPSG:3857"); err != nil {
		t.Fatal(err)
	}

	out := NewReprojectedImage(src, bbox, w, h, grid, KernelLanczos3, []uint8{0})

	line := make([]uint8, w)
	for y := 0; y < h; y++ {
		if err := out.GetLineU8(line, y); err != nil {
			t.Fatal(err)
		}
		for x := 0; x < w; x++ {
			want := pix[y*w+x]
			if line[x] != want {
				t.Fatalf("pixel (%d,%d): got %d want %d", x, y, line[x], want)
			}
		}
	}
}

func TestReprojectedImageOutsideFootprintIsNodata(t *testing.T) {
	const w, h = 4, 4
	pix := make([]uint8, w*h)
	for i := range pix {
		pix[i] = 200
	}
	srcBBox := geom.New(0.0, 0.0, float64(w), float64(h), "EPSG:3857")
	src := NewBufferImageU8(w, h, 1, srcBBox, "EPSG:3857", pix)

	// Target bbox entirely disjoint from the source footprint.
	targetBBox := geom.New(100.0, 100.0, 104.0, 104.0, "EPSG:3857")
	grid := NewGrid(w, h, targetBBox, 4)
	if err := grid.Reproject(identityProjector{}, "EPSG:3857"); err != nil {
		t.Fatal(err)
	}

	out := NewReprojectedImage(src, targetBBox, w, h, grid, KernelNearest, []uint8{9})
	line := make([]uint8, w)
	if err := out.GetLineU8(line, 0); err != nil {
		t.Fatal(err)
	}
	for _, v := range line {
		if v != 9 {
			t.Fatalf("expected nodata 9 outside footprint, got %d", v)
		}
	}
}
