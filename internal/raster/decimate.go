package raster

import (
	"math"

	"github.com/rok4/pyramid-core/internal/geom"
)

// DecimatedImage resamples a source onto a coarser grid by plain pixel
// selection (spec.md §4.5.1): the target resolution must be an integer
// multiple of the source's, and the pixel-center phase offset between
// the two grids must itself be an integer number of source pixels.
type DecimatedImage struct {
	base
	source           Image
	ratioX, ratioY   int
	offsetX, offsetY int // source pixel of target pixel (0,0), in source pixels
	nodata           []float64 // per-channel; nil fills zero instead (no declared nodata)
}

// NewDecimatedImage builds a DecimatedImage over bbox/width/height,
// validating the integer-ratio and integer-phase requirements within
// spec.md §9's documented 1e-4 tolerance. nodata is the per-channel
// sentinel (spec.md §4.5.1: an out-of-range source line, or a pixel
// whose source mask is zero, "keeps nodata" rather than an arbitrary
// zero fill); pass nil when the source carries no declared nodata.
func NewDecimatedImage(source Image, bbox geom.Box[float64], width, height int, nodata []float64) (*DecimatedImage, error) {
	if width <= 0 || height <= 0 {
		return nil, errIncompatible("DecimatedImage")
	}
	resX := bbox.Width() / float64(width)
	resY := bbox.Height() / float64(height)

	ratioXf := resX / source.ResolutionX()
	ratioYf := resY / source.ResolutionY()
	ratioX := int(ratioXf + 0.5)
	ratioY := int(ratioYf + 0.5)
	if !closeToInt(ratioXf, 1e-4) || !closeToInt(ratioYf, 1e-4) || ratioX < 1 || ratioY < 1 {
		return nil, errIncompatible("DecimatedImage: non-integer resolution ratio")
	}

	srcBox := source.BBox()
	offXf := (bbox.XMin - srcBox.XMin) / source.ResolutionX()
	offYf := (srcBox.YMax - bbox.YMax) / source.ResolutionY()
	offX := int(math.Round(offXf))
	offY := int(math.Round(offYf))
	if !closeToInt(offXf, 1e-4) || !closeToInt(offYf, 1e-4) {
		return nil, errIncompatible("DecimatedImage: non-integer phase offset")
	}

	return &DecimatedImage{
		base:    newBase(width, height, source.Channels(), bbox, source.CRS()),
		source:  source,
		ratioX:  ratioX,
		ratioY:  ratioY,
		offsetX: offX,
		offsetY: offY,
		nodata:  nodata,
	}, nil
}

// nodataU8 renders d.nodata as a per-channel uint8 pixel, zero-filled
// for channels beyond len(d.nodata).
func (d *DecimatedImage) nodataU8() []uint8 {
	out := make([]uint8, d.channels)
	for i := range out {
		if i < len(d.nodata) {
			out[i] = uint8(d.nodata[i])
		}
	}
	return out
}

// nodataF32 is nodataU8's float32 counterpart for the f32 sample path.
func (d *DecimatedImage) nodataF32() []float32 {
	out := make([]float32, d.channels)
	for i := range out {
		if i < len(d.nodata) {
			out[i] = float32(d.nodata[i])
		}
	}
	return out
}

func closeToInt(v, tol float64) bool {
	d := v - math.Round(v)
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func (d *DecimatedImage) sourceLine(y int) (int, bool) {
	sy := d.offsetY + y*d.ratioY
	if sy < 0 || sy >= d.source.Height() {
		return 0, false
	}
	return sy, true
}

func (d *DecimatedImage) GetLineU8(buf []uint8, y int) error {
	if y < 0 || y >= d.height {
		return errLineOutOfRange("DecimatedImage", y, d.height)
	}
	nodata := d.nodataU8()
	sy, ok := d.sourceLine(y)
	if !ok {
		for x := 0; x < d.width; x++ {
			copy(buf[x*d.channels:(x+1)*d.channels], nodata)
		}
		return nil
	}
	srcLine := make([]uint8, d.source.Width()*d.channels)
	if err := d.source.GetLineU8(srcLine, sy); err != nil {
		return err
	}
	var maskLine []uint8
	if mask := d.source.Mask(); mask != nil {
		maskLine = make([]uint8, d.source.Width())
		_ = mask.GetLineU8(maskLine, sy)
	}
	for x := 0; x < d.width; x++ {
		sx := d.offsetX + x*d.ratioX
		if sx < 0 || sx >= d.source.Width() {
			copy(buf[x*d.channels:(x+1)*d.channels], nodata)
			continue
		}
		if maskLine != nil && maskLine[sx] == 0 {
			copy(buf[x*d.channels:(x+1)*d.channels], nodata)
			continue
		}
		copy(buf[x*d.channels:(x+1)*d.channels], srcLine[sx*d.channels:(sx+1)*d.channels])
	}
	return nil
}

func (d *DecimatedImage) GetLineU16(buf []uint16, y int) error {
	return errUnsupportedSample("DecimatedImage", "u16")
}

func (d *DecimatedImage) GetLineF32(buf []float32, y int) error {
	if y < 0 || y >= d.height {
		return errLineOutOfRange("DecimatedImage", y, d.height)
	}
	nodata := d.nodataF32()
	sy, ok := d.sourceLine(y)
	if !ok {
		for x := 0; x < d.width; x++ {
			copy(buf[x*d.channels:(x+1)*d.channels], nodata)
		}
		return nil
	}
	srcLine := make([]float32, d.source.Width()*d.channels)
	if err := d.source.GetLineF32(srcLine, sy); err != nil {
		return err
	}
	var maskLine []uint8
	if mask := d.source.Mask(); mask != nil {
		maskLine = make([]uint8, d.source.Width())
		_ = mask.GetLineU8(maskLine, sy)
	}
	for x := 0; x < d.width; x++ {
		sx := d.offsetX + x*d.ratioX
		if sx < 0 || sx >= d.source.Width() {
			copy(buf[x*d.channels:(x+1)*d.channels], nodata)
			continue
		}
		if maskLine != nil && maskLine[sx] == 0 {
			copy(buf[x*d.channels:(x+1)*d.channels], nodata)
			continue
		}
		copy(buf[x*d.channels:(x+1)*d.channels], srcLine[sx*d.channels:(sx+1)*d.channels])
	}
	return nil
}

func fillU8(buf []uint8, v uint8) {
	for i := range buf {
		buf[i] = v
	}
}
