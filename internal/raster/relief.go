package raster

import (
	"math"

	"github.com/rok4/pyramid-core/internal/geom"
)

// metersPerDegree converts geographic-CRS resolutions to meters, the
// approximation spec.md §4.5.5 names for relief/slope/aspect.
const metersPerDegree = 111319.492

// ReliefAlgorithm selects the relief/slope gradient estimator.
type ReliefAlgorithm int

const (
	AlgorithmHorn ReliefAlgorithm = iota
	AlgorithmZevenbergenThorne
)

// SlopeUnit selects the unit a SlopeImage reports in.
type SlopeUnit int

const (
	SlopeDegree SlopeUnit = iota
	SlopePercent
)

// AspectNodata is the aspect sentinel spec.md §4.5.5 fixes for
// below-min-slope pixels.
const AspectNodata = -1.0

// window3 is the rolling buffer of three memorized source lines keyed
// by line index modulo three that Relief/Slope/Aspect share (spec.md
// §4.5.5 "State"). Lines are re-fetched only on a cache miss.
type window3 struct {
	source  Image
	width   int
	lineIdx [3]int
	valid   [3]bool
	lines   [3][]float32
}

func newWindow3(source Image, width int) *window3 {
	w := &window3{source: source, width: width}
	for i := range w.lines {
		w.lines[i] = make([]float32, width)
		w.lineIdx[i] = -1
	}
	return w
}

func (w *window3) get(y int) ([]float32, error) {
	slot := ((y % 3) + 3) % 3
	if w.valid[slot] && w.lineIdx[slot] == y {
		return w.lines[slot], nil
	}
	if y < 0 || y >= w.source.Height() {
		for i := range w.lines[slot] {
			w.lines[slot][i] = 0
		}
		w.lineIdx[slot] = y
		w.valid[slot] = true
		return w.lines[slot], errLineOutOfRange("window3", y, w.source.Height())
	}
	if err := w.source.GetLineF32(w.lines[slot], y); err != nil {
		return nil, err
	}
	w.lineIdx[slot] = y
	w.valid[slot] = true
	return w.lines[slot], nil
}

// reliefBase is the shared 3x3-window plumbing Relief/Slope/Aspect
// build on: each shrinks the source by one pixel on every side
// (spec.md §4.5.5 "Source image must be one pixel larger on each side").
type reliefBase struct {
	source     Image
	win        *window3
	resXMeters float64
	resYMeters float64
	nodata     float32
	hasNodata  bool
}

func newReliefBase(source Image, nodata float32, hasNodata bool, crsIsGeographic bool) reliefBase {
	resX, resY := source.ResolutionX(), source.ResolutionY()
	if crsIsGeographic {
		resX *= metersPerDegree
		resY *= metersPerDegree
	}
	return reliefBase{
		source:     source,
		win:        newWindow3(source, source.Width()),
		resXMeters: resX,
		resYMeters: resY,
		nodata:     nodata,
		hasNodata:  hasNodata,
	}
}

func shrunkBBox(source Image) geom.Box[float64] {
	b := source.BBox()
	return geom.New(b.XMin+source.ResolutionX(), b.YMin+source.ResolutionY(), b.XMax-source.ResolutionX(), b.YMax-source.ResolutionY(), b.CRS)
}

// window9 gathers the 3x3 neighborhood around output pixel (x, y) (y is
// 0-based in output space, so the source rows are y, y+1, y+2).
func (r *reliefBase) window9(x, y int) (z [9]float32, anyNodata bool, err error) {
	for j := 0; j < 3; j++ {
		line, lerr := r.win.get(y + j)
		if lerr != nil {
			return z, true, nil
		}
		for i := 0; i < 3; i++ {
			v := line[x+i]
			z[j*3+i] = v
			if r.hasNodata && v == r.nodata {
				anyNodata = true
			}
		}
	}
	return z, anyNodata, err
}

// gradient computes (dz/dx, dz/dy) using either Horn's weighted 3x3
// gradient or Zevenbergen-Thorne's orthogonal central differences.
func gradient(z [9]float32, algo ReliefAlgorithm, resX, resY float64) (dzdx, dzdy float64) {
	switch algo {
	case AlgorithmZevenbergenThorne:
		dzdx = (float64(z[5]) - float64(z[3])) / (2 * resX)
		dzdy = (float64(z[1]) - float64(z[7])) / (2 * resY)
	default: // Horn
		dzdx = ((float64(z[2]) + 2*float64(z[5]) + float64(z[8])) -
			(float64(z[0]) + 2*float64(z[3]) + float64(z[6]))) / (8 * resX)
		dzdy = ((float64(z[0]) + 2*float64(z[1]) + float64(z[2])) -
			(float64(z[6]) + 2*float64(z[7]) + float64(z[8]))) / (8 * resY)
	}
	return
}

// ReliefImage is a Horn hillshade operator (spec.md §4.5.5), with an
// optional second "shadows" output channel (SPEC_FULL.md §6 Estompage
// supplement).
type ReliefImage struct {
	base
	reliefBase
	zenithRad  float64
	azimuthRad float64
	zFactor    float64
	shadows    bool
}

// NewReliefImage builds a hillshade operator. zenithDeg/azimuthDeg are
// in degrees as configured by the style; azimuth is flipped to
// clockwise-from-north and zenith complemented per spec.md §4.5.5. When
// shadows is true the image carries a second channel: a binary
// self-shadow mask (255 where the facet faces away from the sun, i.e.
// illumination would have gone negative before clamping), the local
// approximation this module uses for the original's cast-shadow pass —
// see DESIGN.md for why a full horizon ray-march isn't implemented.
func NewReliefImage(source Image, zenithDeg, azimuthDeg, zFactor float64, nodata float32, hasNodata bool, crsIsGeographic, shadows bool) *ReliefImage {
	rb := newReliefBase(source, nodata, hasNodata, crsIsGeographic)
	channels := 1
	if shadows {
		channels = 2
	}
	return &ReliefImage{
		base:       newBase(source.Width()-2, source.Height()-2, channels, shrunkBBox(source), source.CRS()),
		reliefBase: rb,
		zenithRad:  (90 - zenithDeg) * math.Pi / 180,
		azimuthRad: math.Mod(360-azimuthDeg+90, 360) * math.Pi / 180,
		zFactor:    zFactor,
		shadows:    shadows,
	}
}

func (r *ReliefImage) GetLineU8(buf []uint8, y int) error {
	if y < 0 || y >= r.height {
		return errLineOutOfRange("ReliefImage", y, r.height)
	}
	for x := 0; x < r.width; x++ {
		out := buf[x*r.channels : (x+1)*r.channels]
		z, nodataHit, err := r.window9(x, y)
		if err != nil {
			return err
		}
		if nodataHit {
			out[0] = 0
			if r.shadows {
				out[1] = 0
			}
			continue
		}
		dzdx, dzdy := gradient(z, AlgorithmHorn, r.resXMeters, r.resYMeters)
		dzdx *= r.zFactor
		dzdy *= r.zFactor
		slopeRad := math.Atan(math.Hypot(dzdx, dzdy))
		aspectRad := math.Atan2(dzdy, -dzdx)
		illum := math.Cos(r.zenithRad)*math.Cos(slopeRad) +
			math.Sin(r.zenithRad)*math.Sin(slopeRad)*math.Cos(r.azimuthRad-aspectRad)
		if r.shadows {
			if illum < 0 {
				out[1] = 255
			} else {
				out[1] = 0
			}
		}
		if illum < 0 {
			illum = 0
		}
		out[0] = uint8(illum*255 + 0.5)
	}
	return nil
}

func (r *ReliefImage) GetLineU16(buf []uint16, y int) error { return errUnsupportedSample("ReliefImage", "u16") }
func (r *ReliefImage) GetLineF32(buf []float32, y int) error { return errUnsupportedSample("ReliefImage", "f32") }

// SlopeImage emits per-pixel slope in degrees or percent (spec.md §4.5.5).
type SlopeImage struct {
	base
	reliefBase
	algo     ReliefAlgorithm
	unit     SlopeUnit
	maxSlope float64
	hasMax   bool
}

// NewSlopeImage builds a slope operator.
func NewSlopeImage(source Image, algo ReliefAlgorithm, unit SlopeUnit, maxSlope float64, hasMax bool, nodata float32, hasNodata bool, crsIsGeographic bool) *SlopeImage {
	rb := newReliefBase(source, nodata, hasNodata, crsIsGeographic)
	return &SlopeImage{
		base:       newBase(source.Width()-2, source.Height()-2, 1, shrunkBBox(source), source.CRS()),
		reliefBase: rb,
		algo:       algo,
		unit:       unit,
		maxSlope:   maxSlope,
		hasMax:     hasMax,
	}
}

func (s *SlopeImage) GetLineF32(buf []float32, y int) error {
	if y < 0 || y >= s.height {
		return errLineOutOfRange("SlopeImage", y, s.height)
	}
	for x := 0; x < s.width; x++ {
		z, nodataHit, err := s.window9(x, y)
		if err != nil {
			return err
		}
		if nodataHit {
			buf[x] = s.nodata
			continue
		}
		dzdx, dzdy := gradient(z, s.algo, s.resXMeters, s.resYMeters)
		grad := math.Hypot(dzdx, dzdy)
		var v float64
		if s.unit == SlopePercent {
			v = grad * 100
		} else {
			v = foldTo90(math.Atan(grad) * 180 / math.Pi)
		}
		if s.hasMax && v > s.maxSlope {
			v = s.maxSlope
		}
		buf[x] = float32(v)
	}
	return nil
}

func foldTo90(deg float64) float64 {
	deg = math.Mod(deg, 180)
	if deg < 0 {
		deg += 180
	}
	if deg > 90 {
		deg = 180 - deg
	}
	return deg
}

func (s *SlopeImage) GetLineU8(buf []uint8, y int) error  { return errUnsupportedSample("SlopeImage", "u8") }
func (s *SlopeImage) GetLineU16(buf []uint16, y int) error { return errUnsupportedSample("SlopeImage", "u16") }

// AspectImage emits aspect in degrees [0, 360) (spec.md §4.5.5).
type AspectImage struct {
	base
	reliefBase
	minSlope float64
}

// NewAspectImage builds an aspect operator; pixels whose slope falls
// below minSlope emit AspectNodata.
func NewAspectImage(source Image, minSlope float64, nodata float32, hasNodata bool, crsIsGeographic bool) *AspectImage {
	rb := newReliefBase(source, nodata, hasNodata, crsIsGeographic)
	return &AspectImage{
		base:       newBase(source.Width()-2, source.Height()-2, 1, shrunkBBox(source), source.CRS()),
		reliefBase: rb,
		minSlope:   minSlope,
	}
}

func (a *AspectImage) GetLineF32(buf []float32, y int) error {
	if y < 0 || y >= a.height {
		return errLineOutOfRange("AspectImage", y, a.height)
	}
	for x := 0; x < a.width; x++ {
		z, nodataHit, err := a.window9(x, y)
		if err != nil {
			return err
		}
		if nodataHit {
			buf[x] = float32(a.nodata)
			continue
		}
		dzdx, dzdy := gradient(z, AlgorithmHorn, a.resXMeters, a.resYMeters)
		slopeDeg := math.Atan(math.Hypot(dzdx, dzdy)) * 180 / math.Pi
		if slopeDeg < a.minSlope {
			buf[x] = AspectNodata
			continue
		}
		aspect := math.Atan2(dzdy, -dzdx) * 180 / math.Pi
		aspect = math.Mod(90-aspect, 360)
		if aspect < 0 {
			aspect += 360
		}
		buf[x] = float32(aspect)
	}
	return nil
}

func (a *AspectImage) GetLineU8(buf []uint8, y int) error  { return errUnsupportedSample("AspectImage", "u8") }
func (a *AspectImage) GetLineU16(buf []uint16, y int) error { return errUnsupportedSample("AspectImage", "u16") }
