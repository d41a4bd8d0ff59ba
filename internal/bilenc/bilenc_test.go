package bilenc

import (
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/rok4/pyramid-core/internal/geom"
	"github.com/rok4/pyramid-core/internal/raster"
)

func TestEncoderRoundTripsFloatSamples(t *testing.T) {
	bbox := geom.New(0.0, 0.0, 2.0, 1.0, "EPSG:3857")
	img := raster.NewBufferImageF32(2, 1, 1, bbox, "EPSG:3857", []float32{1.5, -2.25})

	enc, err := NewEncoder(img)
	if err != nil {
		t.Fatal(err)
	}
	if enc.ContentType() != "image/x-bil;bits=32" {
		t.Fatalf("content type: got %q", enc.ContentType())
	}
	if enc.Len() != 8 {
		t.Fatalf("length: got %d, want 8", enc.Len())
	}

	buf := make([]byte, enc.Len())
	if _, err := io.ReadFull(enc, buf); err != nil {
		t.Fatal(err)
	}
	got0 := math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4]))
	got1 := math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8]))
	if got0 != 1.5 || got1 != -2.25 {
		t.Fatalf("samples: got (%v,%v), want (1.5,-2.25)", got0, got1)
	}
	if _, err := enc.Read(make([]byte, 1)); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestNewEncoderRejectsMultiChannel(t *testing.T) {
	bbox := geom.New(0.0, 0.0, 1.0, 1.0, "EPSG:3857")
	img := raster.NewBufferImageF32(1, 1, 3, bbox, "EPSG:3857", []float32{0, 0, 0})
	if _, err := NewEncoder(img); err == nil {
		t.Fatal("expected rejection of a 3-channel image")
	}
}
