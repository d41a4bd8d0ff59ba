package raster

import (
	"testing"

	"github.com/rok4/pyramid-core/internal/geom"
)

func uniformImage(v uint8, w, h, ch int) *BufferImage {
	pix := make([]uint8, w*h*ch)
	for i := range pix {
		pix[i] = v
	}
	bbox := geom.New(0.0, 0.0, float64(w), float64(h), "EPSG:3857")
	return NewBufferImageU8(w, h, ch, bbox, "EPSG:3857", pix)
}

// TestMergeMultiplyInvariant reproduces spec.md §8 scenario 6.
func TestMergeMultiplyInvariant(t *testing.T) {
	bg := uniformImage(128, 2, 2, 3)
	top := uniformImage(128, 2, 2, 3)

	m, err := NewMergeImage([]MergeSource{{Image: bg}, {Image: top}}, MergeMultiply)
	if err != nil {
		t.Fatal(err)
	}

	line := make([]uint8, 2*3)
	if err := m.GetLineU8(line, 0); err != nil {
		t.Fatal(err)
	}
	for _, v := range line {
		if v != 64 {
			t.Fatalf("expected 64 for multiply(128,128), got %d (line=%v)", v, line)
		}
	}
}

func TestMergeNormalTakesTop(t *testing.T) {
	bg := uniformImage(10, 2, 2, 3)
	top := uniformImage(200, 2, 2, 3)

	m, err := NewMergeImage([]MergeSource{{Image: bg}, {Image: top}}, MergeNormal)
	if err != nil {
		t.Fatal(err)
	}
	line := make([]uint8, 2*3)
	if err := m.GetLineU8(line, 0); err != nil {
		t.Fatal(err)
	}
	for _, v := range line {
		if v != 200 {
			t.Fatalf("expected top value 200, got %d", v)
		}
	}
}

// TestMergeMaskIsUnionOfSources reproduces spec.md §4.5.2's "MergeMask
// is the union of source masks": a pixel opaque in any source must be
// opaque in the merged mask even if it is nodata in every other source.
func TestMergeMaskIsUnionOfSources(t *testing.T) {
	bg := uniformImage(10, 2, 1, 1)
	bgMask := NewBufferImageU8(2, 1, 1, bg.BBox(), "EPSG:3857", []uint8{0, 255})
	bg.WithMask(bgMask)

	top := uniformImage(20, 2, 1, 1)
	topMask := NewBufferImageU8(2, 1, 1, top.BBox(), "EPSG:3857", []uint8{255, 0})
	top.WithMask(topMask)

	m, err := NewMergeImage([]MergeSource{{Image: bg}, {Image: top}}, MergeNormal)
	if err != nil {
		t.Fatal(err)
	}
	mask := m.Mask()
	if mask == nil {
		t.Fatal("expected MergeImage to expose a non-nil union mask")
	}
	line := make([]uint8, 2)
	if err := mask.GetLineU8(line, 0); err != nil {
		t.Fatal(err)
	}
	if line[0] != 255 || line[1] != 255 {
		t.Fatalf("expected union mask [255 255], got %v", line)
	}
}

func TestMergeIncompatibleSourcesRejected(t *testing.T) {
	a := uniformImage(1, 2, 2, 3)
	b := uniformImage(1, 3, 3, 3)
	if _, err := NewMergeImage([]MergeSource{{Image: a}, {Image: b}}, MergeNormal); err == nil {
		t.Fatal("expected incompatible-dimensions error")
	}
}
