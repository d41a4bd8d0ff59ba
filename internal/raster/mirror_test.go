package raster

import (
	"testing"

	"github.com/rok4/pyramid-core/internal/geom"
)

func TestMirrorImageTopReflectsRows(t *testing.T) {
	const w, h = 3, 4
	pix := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pix[y*w+x] = uint8(y*10 + x)
		}
	}
	bbox := geom.New(0.0, 0.0, float64(w), float64(h), "EPSG:3857")
	src := NewBufferImageU8(w, h, 1, bbox, "EPSG:3857", pix)

	m, err := NewMirrorImage(src, MirrorTop, 2)
	if err != nil {
		t.Fatal(err)
	}
	if m.Height() != 2 || m.Width() != w {
		t.Fatalf("unexpected mirror dims: %dx%d", m.Width(), m.Height())
	}
	line0 := make([]uint8, w)
	line1 := make([]uint8, w)
	if err := m.GetLineU8(line0, 0); err != nil {
		t.Fatal(err)
	}
	if err := m.GetLineU8(line1, 1); err != nil {
		t.Fatal(err)
	}
	// Reflection of rows 0,1 should appear reversed: mirror line 1 == source row 0.
	for x := 0; x < w; x++ {
		if line1[x] != pix[x] {
			t.Fatalf("expected mirror line1[%d]=%d to equal source row0=%d", x, line1[x], pix[x])
		}
	}
}

func TestMirrorImageRejectsOversizedK(t *testing.T) {
	src := uniformImage(1, 3, 3, 1)
	if _, err := NewMirrorImage(src, MirrorLeft, 4); err == nil {
		t.Fatal("expected rejection for k > width")
	}
}
