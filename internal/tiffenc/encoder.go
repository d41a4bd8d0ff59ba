// Package tiffenc builds single-strip TIFF/GeoTIFF streams from a fixed
// set of IFD byte-array templates, one per (codec, sample format, channel
// count) combination, patched by offset rather than assembled field by
// field (spec.md §4.4/§4.6). The templates are transcribed from the
// original encoder's constant tables; this package only selects one,
// patches four geometry offsets, and optionally splices GeoTIFF tags.
package tiffenc

import (
	"encoding/binary"
	"io"

	"github.com/rok4/pyramid-core/internal/crs"
	"github.com/rok4/pyramid-core/internal/rerr"
)

// Codec identifies the strip compression a template was built for.
type Codec int

const (
	CodecRaw Codec = iota
	CodecLZW
	CodecDeflate
	CodecPackBits
)

// PixelFormat names a template's sample encoding: 8-bit unsigned samples
// in 1/3/4 channels, or a single 32-bit float channel.
type PixelFormat struct {
	Channels int
	Float32  bool
}

// Fixed byte offsets every template shares, patched at encode time
// (spec.md §4.4). offsetStripOffsetValue is the STRIPOFFSETS tag's value
// field: stable at 78 across gray/RGB/RGBA templates because STRIPOFFSETS
// is always the sixth IFD entry, regardless of channel count.
const (
	offsetWidth            = 18
	offsetHeight           = 30
	offsetRowsPerStrip     = 102
	offsetStripByteCount   = 114
	offsetStripOffsetValue = 78
)

func selectTemplate(codec Codec, pf PixelFormat) ([]byte, error) {
	if pf.Float32 {
		if pf.Channels != 1 {
			return nil, rerr.Wrap(rerr.Config, "tiffenc: float32 samples support only 1 channel, got %d", pf.Channels)
		}
		switch codec {
		case CodecRaw:
			return templateRawF32Gray, nil
		case CodecLZW:
			return templateLZWF32Gray, nil
		case CodecDeflate:
			return templateDeflateF32Gray, nil
		case CodecPackBits:
			return templatePackBitsF32Gray, nil
		}
		return nil, rerr.Wrap(rerr.Config, "tiffenc: unknown codec %d", codec)
	}
	switch codec {
	case CodecRaw:
		switch pf.Channels {
		case 1:
			return templateRawU8Gray, nil
		case 3:
			return templateRawU8RGB, nil
		case 4:
			return templateRawU8RGBA, nil
		}
	case CodecLZW:
		switch pf.Channels {
		case 1:
			return templateLZWU8Gray, nil
		case 3:
			return templateLZWU8RGB, nil
		case 4:
			return templateLZWU8RGBA, nil
		}
	case CodecDeflate:
		switch pf.Channels {
		case 1:
			return templateDeflateU8Gray, nil
		case 3:
			return templateDeflateU8RGB, nil
		case 4:
			return templateDeflateU8RGBA, nil
		}
	case CodecPackBits:
		switch pf.Channels {
		case 1:
			return templatePackBitsU8Gray, nil
		case 3:
			return templatePackBitsU8RGB, nil
		case 4:
			return templatePackBitsU8RGBA, nil
		}
	}
	return nil, rerr.Wrap(rerr.Config, "tiffenc: no template for codec=%d channels=%d", codec, pf.Channels)
}

// BuildHeader selects the template for (codec, pf) and patches it for an
// image of the given dimensions whose compressed (or raw) strip payload is
// tileSize bytes. Rows-per-strip is patched to height, not a separately
// configurable value: every template encodes a single-strip TIFF.
func BuildHeader(width, height, tileSize int, codec Codec, pf PixelFormat) ([]byte, error) {
	tmpl, err := selectTemplate(codec, pf)
	if err != nil {
		return nil, err
	}
	header := make([]byte, len(tmpl))
	copy(header, tmpl)
	binary.LittleEndian.PutUint32(header[offsetWidth:], uint32(width))
	binary.LittleEndian.PutUint32(header[offsetHeight:], uint32(height))
	binary.LittleEndian.PutUint32(header[offsetRowsPerStrip:], uint32(height))
	binary.LittleEndian.PutUint32(header[offsetStripByteCount:], uint32(tileSize))
	return header, nil
}

// ImageMeta is the georeferencing and shape information InsertGeoTags
// needs beyond the plain TIFF header.
type ImageMeta struct {
	Width, Height, Channels int
	Float32                 bool
	ResolutionX, ResolutionY float64
	BBoxXMin, BBoxYMax      float64
	CRSCode                 string
}

// Encoder lazily streams a TIFF or GeoTIFF: a patched header followed by
// an already-compressed strip payload. It implements io.Reader (and Len,
// mirroring bytes.Reader) rather than the read/eof/get_length trio the
// original DataStream interface exposes — the idiomatic Go rendering of
// the same lazy pull contract (spec.md §4.6).
type Encoder struct {
	header      []byte
	payload     []byte
	pos         int
	contentType string
}

// NewEncoder builds the header for meta/codec/payload, splicing GeoTIFF
// tags when geotiff is true, and returns a ready-to-read Encoder.
func NewEncoder(meta ImageMeta, codec Codec, payload []byte, geotiff bool, nodata int) (*Encoder, error) {
	pf := PixelFormat{Channels: meta.Channels, Float32: meta.Float32}
	header, err := BuildHeader(meta.Width, meta.Height, len(payload), codec, pf)
	if err != nil {
		return nil, err
	}

	contentType := "image/tiff"
	if geotiff {
		c := crs.Registry().Resolve(meta.CRSCode)
		if err := crs.RequireResolved(c); err != nil {
			return nil, err
		}
		header, err = InsertGeoTags(header, meta.ResolutionX, meta.ResolutionY, meta.BBoxXMin, meta.BBoxYMax, c, nodata)
		if err != nil {
			return nil, err
		}
		contentType = "image/geotiff"
	}

	return &Encoder{header: header, payload: payload, contentType: contentType}, nil
}

// ContentType reports "image/tiff" or "image/geotiff".
func (e *Encoder) ContentType() string { return e.contentType }

// Len returns the total encoded length: header size plus payload size.
func (e *Encoder) Len() int { return len(e.header) + len(e.payload) }

// Read implements io.Reader, serving the header first and then the strip
// payload without ever materializing both in one buffer beyond what the
// caller's buffer demands.
func (e *Encoder) Read(p []byte) (int, error) {
	if e.pos >= e.Len() {
		return 0, io.EOF
	}
	n := 0
	if e.pos < len(e.header) {
		n = copy(p, e.header[e.pos:])
		e.pos += n
		if n == len(p) {
			return n, nil
		}
	}
	if e.pos >= len(e.header) {
		m := copy(p[n:], e.payload[e.pos-len(e.header):])
		n += m
		e.pos += m
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}
