package raster

import "github.com/rok4/pyramid-core/internal/geom"

// BufferImage is a leaf Image backed by an in-memory line-major pixel
// buffer in one declared sample type, the shape pyramid tiles and
// decoded encoder payloads arrive in. Grounded on the teacher's
// TileData (internal/tile/tiledata.go): a thin struct around a pixel
// buffer plus dimensions, with no operator logic of its own.
type BufferImage struct {
	base
	sample SampleType
	u8     []uint8
	u16    []uint16
	f32    []float32
}

// NewBufferImageU8 wraps an existing u8 line-major buffer (len ==
// width*height*channels) as a leaf Image.
func NewBufferImageU8(width, height, channels int, bbox geom.Box[float64], crs string, pix []uint8) *BufferImage {
	return &BufferImage{base: newBase(width, height, channels, bbox, crs), sample: SampleU8, u8: pix}
}

// NewBufferImageF32 wraps an existing f32 line-major buffer as a leaf
// Image, used for elevation sources feeding relief/slope/aspect.
func NewBufferImageF32(width, height, channels int, bbox geom.Box[float64], crs string, pix []float32) *BufferImage {
	return &BufferImage{base: newBase(width, height, channels, bbox, crs), sample: SampleF32, f32: pix}
}

// NewBufferImageU16 wraps an existing u16 line-major buffer as a leaf
// Image, used for 16-bit DTM/elevation pyramid tiles before conversion.
func NewBufferImageU16(width, height, channels int, bbox geom.Box[float64], crs string, pix []uint16) *BufferImage {
	return &BufferImage{base: newBase(width, height, channels, bbox, crs), sample: SampleU16, u16: pix}
}

func (im *BufferImage) GetLineU8(buf []uint8, y int) error {
	if y < 0 || y >= im.height {
		return errLineOutOfRange("BufferImage", y, im.height)
	}
	if im.sample != SampleU8 {
		return errUnsupportedSample("BufferImage", "u8")
	}
	stride := im.width * im.channels
	copy(buf, im.u8[y*stride:(y+1)*stride])
	return nil
}

func (im *BufferImage) GetLineU16(buf []uint16, y int) error {
	if im.sample != SampleU16 {
		return errUnsupportedSample("BufferImage", "u16")
	}
	if y < 0 || y >= im.height {
		return errLineOutOfRange("BufferImage", y, im.height)
	}
	stride := im.width * im.channels
	copy(buf, im.u16[y*stride:(y+1)*stride])
	return nil
}

func (im *BufferImage) GetLineF32(buf []float32, y int) error {
	if im.sample != SampleF32 {
		return errUnsupportedSample("BufferImage", "f32")
	}
	if y < 0 || y >= im.height {
		return errLineOutOfRange("BufferImage", y, im.height)
	}
	stride := im.width * im.channels
	copy(buf, im.f32[y*stride:(y+1)*stride])
	return nil
}

// WithMask attaches a mask Image (one channel, 0/255) and returns the
// receiver for chaining.
func (im *BufferImage) WithMask(mask Image) *BufferImage {
	im.mask = mask
	return im
}

// NodataImage is a constant-fill Image: every pixel is the configured
// nodata value, mask all-zero.
type NodataImage struct {
	base
	nodata []uint8
	maskOn bool
}

// NewNodataImage builds a NodataImage of the given shape filled with
// nodata (len(nodata) == channels).
func NewNodataImage(width, height, channels int, bbox geom.Box[float64], crs string, nodata []uint8) *NodataImage {
	n := &NodataImage{base: newBase(width, height, channels, bbox, crs), nodata: nodata}
	n.mask = zeroMask{width: width, height: height}
	return n
}

func (n *NodataImage) GetLineU8(buf []uint8, y int) error {
	if y < 0 || y >= n.height {
		return errLineOutOfRange("NodataImage", y, n.height)
	}
	for x := 0; x < n.width; x++ {
		copy(buf[x*n.channels:(x+1)*n.channels], n.nodata)
	}
	return nil
}

func (n *NodataImage) GetLineU16(buf []uint16, y int) error {
	if y < 0 || y >= n.height {
		return errLineOutOfRange("NodataImage", y, n.height)
	}
	for i := range buf {
		buf[i] = 0
		if c := i % n.channels; c < len(n.nodata) {
			buf[i] = uint16(n.nodata[c])
		}
	}
	return nil
}

func (n *NodataImage) GetLineF32(buf []float32, y int) error {
	if y < 0 || y >= n.height {
		return errLineOutOfRange("NodataImage", y, n.height)
	}
	for i := range buf {
		buf[i] = 0
		if c := i % n.channels; c < len(n.nodata) {
			buf[i] = float32(n.nodata[c])
		}
	}
	return nil
}

// zeroMask is a one-channel Image that is 0 on every pixel, the mask a
// NodataImage carries.
type zeroMask struct {
	width, height int
}

func (z zeroMask) Width() int    { return z.width }
func (z zeroMask) Height() int   { return z.height }
func (z zeroMask) Channels() int { return 1 }
func (z zeroMask) BBox() geom.Box[float64] { return geom.Box[float64]{} }
func (z zeroMask) CRS() string             { return "" }
func (z zeroMask) ResolutionX() float64    { return 0 }
func (z zeroMask) ResolutionY() float64    { return 0 }
func (z zeroMask) IsMask() bool            { return true }
func (z zeroMask) Mask() Image             { return nil }

func (z zeroMask) GetLineU8(buf []uint8, y int) error {
	for i := range buf {
		buf[i] = 0
	}
	return nil
}
func (z zeroMask) GetLineU16(buf []uint16, y int) error {
	for i := range buf {
		buf[i] = 0
	}
	return nil
}
func (z zeroMask) GetLineF32(buf []float32, y int) error {
	for i := range buf {
		buf[i] = 0
	}
	return nil
}
