package tiffenc

import (
	"encoding/binary"
	"io"
	"testing"
)

func TestBuildHeaderPatchesSingleStripTiff(t *testing.T) {
	payload := []byte{7}
	header, err := BuildHeader(1, 1, len(payload), CodecRaw, PixelFormat{Channels: 1})
	if err != nil {
		t.Fatal(err)
	}
	if got := binary.LittleEndian.Uint32(header[offsetWidth:]); got != 1 {
		t.Fatalf("width: got %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint32(header[offsetHeight:]); got != 1 {
		t.Fatalf("height: got %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint32(header[offsetRowsPerStrip:]); got != 1 {
		t.Fatalf("rows-per-strip: got %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint32(header[offsetStripByteCount:]); got != 1 {
		t.Fatalf("strip byte count: got %d, want 1", got)
	}
	if len(header) != 134 {
		t.Fatalf("gray header length: got %d, want 134", len(header))
	}

	enc := &Encoder{header: header, payload: payload, contentType: "image/tiff"}
	if enc.Len() != 135 {
		t.Fatalf("total length: got %d, want 135", enc.Len())
	}

	buf := make([]byte, enc.Len())
	n, err := io.ReadFull(enc, buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != 135 {
		t.Fatalf("read %d bytes, want 135", n)
	}
	if buf[134] != 7 {
		t.Fatalf("payload byte: got %d, want 7", buf[134])
	}
	if _, err := enc.Read(make([]byte, 1)); err != io.EOF {
		t.Fatalf("expected io.EOF after full read, got %v", err)
	}
}

func TestBuildHeaderRejectsFloat32MultiChannel(t *testing.T) {
	if _, err := BuildHeader(1, 1, 4, CodecRaw, PixelFormat{Channels: 3, Float32: true}); err == nil {
		t.Fatal("expected rejection of float32 with 3 channels")
	}
}

func TestNewEncoderPlainTiffRoundTrip(t *testing.T) {
	meta := ImageMeta{Width: 2, Height: 2, Channels: 1}
	payload := []byte{1, 2, 3, 4}
	enc, err := NewEncoder(meta, CodecRaw, payload, false, -9999)
	if err != nil {
		t.Fatal(err)
	}
	if enc.ContentType() != "image/tiff" {
		t.Fatalf("content type: got %q", enc.ContentType())
	}
	if enc.Len() != 134+4 {
		t.Fatalf("length: got %d, want %d", enc.Len(), 134+4)
	}
}

func TestNewEncoderGeoTiffSplicesTags(t *testing.T) {
	meta := ImageMeta{
		Width: 4, Height: 4, Channels: 1,
		ResolutionX: 10, ResolutionY: 10,
		BBoxXMin: 500000, BBoxYMax: 6000000,
		CRSCode: "EPSG:3857",
	}
	payload := make([]byte, 16)
	enc, err := NewEncoder(meta, CodecRaw, payload, true, -9999)
	if err != nil {
		t.Fatal(err)
	}
	if enc.ContentType() != "image/geotiff" {
		t.Fatalf("content type: got %q", enc.ContentType())
	}
	if len(enc.header) <= 134 {
		t.Fatalf("expected spliced header longer than plain 134-byte gray header, got %d", len(enc.header))
	}
	nbTag := binary.LittleEndian.Uint16(enc.header[8:10])
	if nbTag != 16 {
		t.Fatalf("expected 10+6=16 IFD entries after splice, got %d", nbTag)
	}
	stripOffset := binary.LittleEndian.Uint32(enc.header[offsetStripOffsetValue:])
	if int(stripOffset) != len(enc.header) {
		t.Fatalf("strip offset %d should equal spliced header length %d", stripOffset, len(enc.header))
	}
	if enc.Len() != len(enc.header)+len(payload) {
		t.Fatalf("Len(): got %d, want %d", enc.Len(), len(enc.header)+len(payload))
	}
}

func TestNewEncoderGeoTiffRejectsUnsupportedProjection(t *testing.T) {
	meta := ImageMeta{
		Width: 1, Height: 1, Channels: 1,
		ResolutionX: 1, ResolutionY: 1,
		CRSCode: "EPSG:2056",
	}
	if _, err := NewEncoder(meta, CodecRaw, []byte{0}, true, -9999); err == nil {
		t.Fatal("expected rejection of an unmapped projection (somerc)")
	}
}
