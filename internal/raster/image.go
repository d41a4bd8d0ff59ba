// Package raster implements the pull-based image graph spec.md §3/§4.5
// describes: a composable set of operators (decimation, merge, mirror,
// palette, relief/slope/aspect, reprojection) each producing one output
// line at a time on demand.
//
// The original models this as a class hierarchy (Image -> many
// subclasses, each overriding get_line in three sample flavors). Go has
// no inheritance, so this package follows spec.md §9's "Polymorphic
// image graph without inheritance chains" redesign flag directly: Image
// is a three-method interface (one per sample type) plus metadata
// accessors, and every operator is a concrete struct implementing it by
// pulling lines from its sources. Grounded on the teacher's own
// image-pipeline style in internal/tile (downsampleTile, renderTile):
// operators there are plain funcs/structs over image.RGBA rather than a
// type hierarchy, which is the same shape this package generalizes to
// u8/u16/f32 samples and arbitrary channel counts.
package raster

import (
	"github.com/rok4/pyramid-core/internal/geom"
)

// SampleType identifies the pixel encoding an Image line is read in.
type SampleType int

const (
	SampleU8 SampleType = iota
	SampleU16
	SampleF32
)

// Image is the pull-based pipeline node contract spec.md §3/§9 names:
// width/height, channel count, bounding box + CRS, resolution, an
// optional mask image, and get_line in the three sample flavors. A
// concrete operator only needs to implement the sample flavors its
// arithmetic actually requires; the others return an error, matching
// spec.md §9's "specializations that require float arithmetic ...
// should not declare themselves as u8-capable without conversion."
type Image interface {
	Width() int
	Height() int
	Channels() int
	BBox() geom.Box[float64]
	CRS() string
	ResolutionX() float64
	ResolutionY() float64
	IsMask() bool
	Mask() Image // nil if the image carries no associated mask

	// GetLineU8/U16/F32 fill buf (len == Width()*Channels()) with line y.
	// A flavor an operator cannot natively serve returns the error built by errUnsupportedSample.
	GetLineU8(buf []uint8, y int) error
	GetLineU16(buf []uint16, y int) error
	GetLineF32(buf []float32, y int) error
}

// base carries the metadata every operator shares, so concrete operators
// embed it instead of re-declaring six accessor methods each.
type base struct {
	width, height int
	channels      int
	bbox          geom.Box[float64]
	crs           string
	resX, resY    float64
	isMask        bool
	mask          Image
}

func newBase(width, height, channels int, bbox geom.Box[float64], crs string) base {
	resX, resY := 0.0, 0.0
	if width > 0 {
		resX = bbox.Width() / float64(width)
	}
	if height > 0 {
		resY = bbox.Height() / float64(height)
	}
	return base{width: width, height: height, channels: channels, bbox: bbox, crs: crs, resX: resX, resY: resY}
}

func (b base) Width() int                  { return b.width }
func (b base) Height() int                 { return b.height }
func (b base) Channels() int               { return b.channels }
func (b base) BBox() geom.Box[float64]     { return b.bbox }
func (b base) CRS() string                 { return b.crs }
func (b base) ResolutionX() float64        { return b.resX }
func (b base) ResolutionY() float64        { return b.resY }
func (b base) IsMask() bool                { return b.isMask }
func (b base) Mask() Image                 { return b.mask }

// PixelToTerrain converts a pixel-center coordinate to terrain units,
// against the (xmin, ymax) origin spec.md §3 fixes for every Image.
func PixelToTerrain(bbox geom.Box[float64], resX, resY float64, px, py float64) (x, y float64) {
	x = bbox.XMin + (px+0.5)*resX
	y = bbox.YMax - (py+0.5)*resY
	return
}

// TerrainToPixel is the inverse of PixelToTerrain.
func TerrainToPixel(bbox geom.Box[float64], resX, resY float64, x, y float64) (px, py float64) {
	px = (x-bbox.XMin)/resX - 0.5
	py = (bbox.YMax-y)/resY - 0.5
	return
}

// Compatible reports whether a and b may participate in the same
// pipeline stage together, per spec.md §3's Image compatibility check:
// same CRS, resolution within 0.1% of the smaller, phase within 0.001
// (or >= 0.999), and equal channel count.
func Compatible(a, b Image) bool {
	if a.CRS() != b.CRS() || a.Channels() != b.Channels() {
		return false
	}
	if !resolutionClose(a.ResolutionX(), b.ResolutionX()) || !resolutionClose(a.ResolutionY(), b.ResolutionY()) {
		return false
	}
	abox, bbox := a.BBox(), b.BBox()
	if !phaseClose(abox.PhaseX(a.ResolutionX()), bbox.PhaseX(b.ResolutionX())) {
		return false
	}
	if !phaseClose(abox.PhaseY(a.ResolutionY()), bbox.PhaseY(b.ResolutionY())) {
		return false
	}
	return true
}

func resolutionClose(r1, r2 float64) bool {
	small, large := r1, r2
	if small > large {
		small, large = large, small
	}
	if small <= 0 {
		return r1 == r2
	}
	return (large-small)/small <= 0.001
}

func phaseClose(p1, p2 float64) bool {
	d := p1 - p2
	if d < 0 {
		d = -d
	}
	return d <= 0.001 || d >= 0.999
}
