package raster

import (
	"math"
	"testing"

	"github.com/rok4/pyramid-core/internal/geom"
)

func flatElevation(w, h int, value float32) *BufferImage {
	pix := make([]float32, w*h)
	for i := range pix {
		pix[i] = value
	}
	bbox := geom.New(0.0, 0.0, float64(w), float64(h), "EPSG:3857")
	return NewBufferImageF32(w, h, 1, bbox, "EPSG:3857", pix)
}

func TestSlopeOfFlatPlaneIsZero(t *testing.T) {
	src := flatElevation(5, 5, 100)
	s := NewSlopeImage(src, AlgorithmHorn, SlopeDegree, 0, false, -9999, true, false)
	if s.Width() != 3 || s.Height() != 3 {
		t.Fatalf("expected 3x3 output from 5x5 input, got %dx%d", s.Width(), s.Height())
	}
	line := make([]float32, 3)
	if err := s.GetLineF32(line, 1); err != nil {
		t.Fatal(err)
	}
	for _, v := range line {
		if math.Abs(float64(v)) > 1e-6 {
			t.Fatalf("expected zero slope on flat plane, got %v", v)
		}
	}
}

func TestAspectBelowMinSlopeIsNodataSentinel(t *testing.T) {
	src := flatElevation(5, 5, 100)
	a := NewAspectImage(src, 1.0, -9999, true, false)
	line := make([]float32, 3)
	if err := a.GetLineF32(line, 1); err != nil {
		t.Fatal(err)
	}
	for _, v := range line {
		if v != AspectNodata {
			t.Fatalf("expected aspect nodata sentinel, got %v", v)
		}
	}
}

func TestReliefFlatPlaneFullIllumination(t *testing.T) {
	src := flatElevation(5, 5, 100)
	r := NewReliefImage(src, 45, 315, 1, -9999, true, false, false)
	line := make([]uint8, 3)
	if err := r.GetLineU8(line, 1); err != nil {
		t.Fatal(err)
	}
	want := uint8(math.Cos(45*math.Pi/180)*255 + 0.5)
	for _, v := range line {
		if v != want {
			t.Fatalf("expected uniform illumination %d on flat plane, got %d", want, v)
		}
	}
}

func TestReliefShadowsChannelMarksFacetsFacingAwayFromSun(t *testing.T) {
	// A tilted plane: elevation increases with x, so the slope faces
	// west: a sun azimuth from the east (90 deg) leaves it in
	// self-shadow, and a sun azimuth from the west (270 deg) lights it.
	w, h := 5, 5
	pix := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pix[y*w+x] = float32(x) * 10
		}
	}
	bbox := geom.New(0.0, 0.0, float64(w), float64(h), "EPSG:3857")
	src := NewBufferImageF32(w, h, 1, bbox, "EPSG:3857", pix)

	r := NewReliefImage(src, 45, 90, 1, -9999, true, false, true)
	if r.Channels() != 2 {
		t.Fatalf("expected 2 channels with shadows enabled, got %d", r.Channels())
	}
	line := make([]uint8, 3*2)
	if err := r.GetLineU8(line, 1); err != nil {
		t.Fatal(err)
	}
	for x := 0; x < 3; x++ {
		if line[x*2+1] != 255 {
			t.Fatalf("pixel %d: expected self-shadow flag set, got %d", x, line[x*2+1])
		}
	}

	r2 := NewReliefImage(src, 45, 270, 1, -9999, true, false, true)
	line2 := make([]uint8, 3*2)
	if err := r2.GetLineU8(line2, 1); err != nil {
		t.Fatal(err)
	}
	for x := 0; x < 3; x++ {
		if line2[x*2+1] != 0 {
			t.Fatalf("pixel %d: expected no shadow flag when lit from the slope's own side, got %d", x, line2[x*2+1])
		}
	}
}
