package raster

import (
	"testing"

	"github.com/rok4/pyramid-core/internal/geom"
)

func TestDecimatedImageRatioEqualsWidthGivesWidthOne(t *testing.T) {
	const srcW, srcH = 8, 4
	src := uniformImage(5, srcW, srcH, 1)

	targetBBox := src.BBox()
	d, err := NewDecimatedImage(src, targetBBox, 1, srcH, nil)
	if err != nil {
		t.Fatal(err)
	}
	if d.Width() != 1 {
		t.Fatalf("expected output width 1, got %d", d.Width())
	}
}

func TestDecimatedImageRejectsNonIntegerRatio(t *testing.T) {
	src := uniformImage(5, 10, 10, 1)
	bad := geom.New(0.0, 0.0, 10.0, 10.0, "EPSG:3857")
	if _, err := NewDecimatedImage(src, bad, 3, 10, nil); err == nil {
		t.Fatal("expected non-integer ratio rejection")
	}
}

func TestDecimatedImagePicksSelectedColumns(t *testing.T) {
	const srcW, srcH = 4, 1
	pix := []uint8{10, 20, 30, 40}
	bbox := geom.New(0.0, 0.0, float64(srcW), float64(srcH), "EPSG:3857")
	src := NewBufferImageU8(srcW, srcH, 1, bbox, "EPSG:3857", pix)

	d, err := NewDecimatedImage(src, bbox, 2, srcH, nil)
	if err != nil {
		t.Fatal(err)
	}
	line := make([]uint8, 2)
	if err := d.GetLineU8(line, 0); err != nil {
		t.Fatal(err)
	}
	if line[0] != 10 || line[1] != 30 {
		t.Fatalf("unexpected decimated line: %v", line)
	}
}

func TestDecimatedImageOutOfRangeLineFillsNodata(t *testing.T) {
	const srcW, srcH = 4, 4
	src := uniformImage(5, srcW, srcH, 1)
	// A target bbox shifted entirely above the source's footprint
	// produces only out-of-range source lines.
	bbox := geom.New(0.0, float64(srcH), float64(srcW), float64(2*srcH), "EPSG:3857")

	d, err := NewDecimatedImage(src, bbox, srcW, srcH, []float64{42})
	if err != nil {
		t.Fatal(err)
	}
	line := make([]uint8, srcW)
	if err := d.GetLineU8(line, 0); err != nil {
		t.Fatal(err)
	}
	for x, v := range line {
		if v != 42 {
			t.Fatalf("pixel %d: got %d, want nodata 42", x, v)
		}
	}
}
