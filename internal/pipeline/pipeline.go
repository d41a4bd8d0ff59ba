// Package pipeline builds the per-request image graph spec.md §2's
// control-flow paragraph describes: a Level's tile window, reprojected
// and resampled into the caller's bounding box/resolution/CRS, ending in
// a Style-driven decorator (palette or relief/slope/aspect), ready for an
// encoder.
//
// This is the one package allowed to import both internal/pyramid and
// internal/raster/internal/style/internal/crs together — it is the
// composition root spec.md's component table places above all of them,
// not a leaf of its own.
package pipeline

import (
	"context"
	"math"

	"github.com/rok4/pyramid-core/internal/cache"
	"github.com/rok4/pyramid-core/internal/crs"
	"github.com/rok4/pyramid-core/internal/geom"
	"github.com/rok4/pyramid-core/internal/pyramid"
	"github.com/rok4/pyramid-core/internal/raster"
	"github.com/rok4/pyramid-core/internal/rerr"
	"github.com/rok4/pyramid-core/internal/style"
)

// Request describes a single tile/image response: a bounding box and
// pixel dimensions in a requested CRS, a resampling kernel, and an
// optional style.
type Request struct {
	BBox    geom.Box[float64]
	CRSCode string
	Width   int
	Height  int
	Kernel  raster.Kernel
	Style   *style.Style
}

// sourceMargin is the number of extra source pixels requested on every
// side of the reprojected footprint, covering the resampling kernel's
// support plus the 1-pixel apron relief/slope/aspect need (spec.md
// §4.5.5 "Source image must be one pixel larger on each side").
func sourceMargin(kernel raster.Kernel) int {
	switch kernel {
	case raster.KernelLanczos4:
		return 6
	case raster.KernelLanczos3:
		return 5
	case raster.KernelCubic, raster.KernelLanczos2:
		return 4
	default:
		return 3
	}
}

// Build resolves req against pyr (consulting idx for slab lookups) and
// returns the final Image ready to hand to an encoder.
func Build(ctx context.Context, pyr *pyramid.Pyramid, idx *cache.Cache, req Request) (raster.Image, error) {
	targetCRS := crs.Registry().Resolve(req.CRSCode)
	if err := crs.RequireResolved(targetCRS); err != nil {
		return nil, err
	}
	sourceCRS := crs.Registry().Resolve(pyr.TMS.CRS)
	if err := crs.RequireResolved(sourceCRS); err != nil {
		return nil, err
	}
	if req.Width <= 0 || req.Height <= 0 {
		return nil, rerr.Wrap(rerr.Consistency, "pipeline: width/height must be positive, got %dx%d", req.Width, req.Height)
	}

	sameCRS := targetCRS.CanonicalCode == sourceCRS.CanonicalCode

	sourceBBox := req.BBox
	if !sameCRS {
		reprojected, ok := req.BBox.Reproject(crs.Transformer(targetCRS, sourceCRS), sourceCRS.CanonicalCode, 256)
		if !ok {
			return nil, rerr.Wrap(rerr.Projection, "pipeline: could not reproject request bbox from %s to %s", req.CRSCode, pyr.TMS.CRS)
		}
		sourceBBox = reprojected
	}

	resX := sourceBBox.Width() / float64(req.Width)
	resY := sourceBBox.Height() / float64(req.Height)
	level := pyr.BestLevel(resX, resY)
	if level == nil {
		return nil, rerr.Wrap(rerr.Consistency, "pipeline: pyramid has no levels")
	}

	margin := float64(sourceMargin(req.Kernel))
	expanded := geom.New(
		sourceBBox.XMin-margin*level.Matrix.Resolution,
		sourceBBox.YMin-margin*level.Matrix.Resolution,
		sourceBBox.XMax+margin*level.Matrix.Resolution,
		sourceBBox.YMax+margin*level.Matrix.Resolution,
		sourceCRS.CanonicalCode,
	)

	window, err := level.GetBboxWindow(ctx, idx, pyr.Format, expanded)
	if err != nil {
		return nil, err
	}

	decorated, channels, err := applyStyle(window, req.Style, sourceCRS, pyr.Format)
	if err != nil {
		return nil, err
	}

	if decorated.Channels() != channels {
		return nil, rerr.Wrap(rerr.Consistency, "pipeline: style produced %d channels, expected %d", decorated.Channels(), channels)
	}

	// decorated must serve GetLineU8 for ReprojectedImage to compose over
	// it (spec.md §9: relief/slope/aspect "internally convert once" —
	// this pipeline keeps that conversion to u8 as the last step before
	// reprojection, the one sample flavor ReprojectedImage implements).
	if _, isU8Capable := probeU8(decorated); !isU8Capable && !sameResolution(decorated, req) {
		return nil, rerr.Wrap(rerr.Consistency,
			"pipeline: %s output cannot be reprojected across CRS/resolution; request a matching resolution in the pyramid's own CRS",
			styleKind(req.Style))
	}

	grid := raster.NewGrid(req.Width, req.Height, req.BBox, raster.DefaultGridStep)
	if !sameCRS {
		if err := grid.Reproject(crs.Transformer(targetCRS, sourceCRS), sourceCRS.CanonicalCode); err != nil {
			return nil, err
		}
	}

	nodata := make([]uint8, channels)
	for i := range nodata {
		nodata[i] = uint8(pyr.Format.NoDataAt(i))
	}

	if _, ok := probeU8(decorated); ok {
		return raster.NewReprojectedImage(decorated, req.BBox, req.Width, req.Height, grid, req.Kernel, nodata), nil
	}

	// f32-only output (slope/aspect, or a raw float pyramid with no
	// style): same-CRS integer decimation is the only resampling path
	// available until ReprojectedImage grows f32 support (see
	// DESIGN.md).
	nodataF64 := make([]float64, channels)
	for i := range nodataF64 {
		nodataF64[i] = pyr.Format.NoDataAt(i)
	}
	return raster.NewDecimatedImage(decorated, req.BBox, req.Width, req.Height, nodataF64)
}

// applyStyle decorates window per req's style, returning the decorated
// image and the channel count it should carry.
func applyStyle(window raster.Image, s *style.Style, sourceCRS *crs.CRS, format pyramid.PixelFormat) (raster.Image, int, error) {
	geographic := sourceCRS.CanonicalCode == "EPSG:4326"

	if s == nil {
		return window, window.Channels(), nil
	}
	if err := s.Validate(); err != nil {
		return nil, 0, err
	}

	switch {
	case s.Palette != nil:
		pal, err := raster.NewPaletteImage(window, s.Palette)
		if err != nil {
			return nil, 0, err
		}
		ch := 3
		if s.Palette.HasAlpha() {
			ch = 4
		}
		return pal, ch, nil

	case s.Hillshade != nil:
		nodata, hasNodata := reliefNodata(format)
		relief := raster.NewReliefImage(window, s.Hillshade.ZenithDeg, s.Hillshade.AzimuthDeg, s.Hillshade.ZFactor, nodata, hasNodata, geographic, s.Hillshade.Shadows)
		channels := 1
		if s.Hillshade.Shadows {
			channels = 2
		}
		return relief, channels, nil

	case s.Slope != nil:
		nodata, hasNodata := reliefNodata(format)
		slope := raster.NewSlopeImage(window, s.Slope.Algorithm, s.Slope.Unit, s.Slope.MaxSlope, s.Slope.HasMax, nodata, hasNodata, geographic)
		return slope, 1, nil

	case s.Aspect != nil:
		nodata, hasNodata := reliefNodata(format)
		aspect := raster.NewAspectImage(window, s.Aspect.MinSlope, nodata, hasNodata, geographic)
		return aspect, 1, nil

	default:
		return window, window.Channels(), nil
	}
}

// reliefNodata reads the pyramid's declared channel-0 nodata value
// (the elevation channel relief/slope/aspect always source from) so
// the nodata-propagation paths in relief.go actually trigger on the
// nodata window.go already stamps into missing tiles, instead of the
// no-op "no declared nodata" this used to hardcode.
func reliefNodata(format pyramid.PixelFormat) (float32, bool) {
	if len(format.NoData) == 0 {
		return 0, false
	}
	return float32(format.NoDataAt(0)), true
}

func styleKind(s *style.Style) string {
	switch {
	case s == nil:
		return "ungridded"
	case s.Slope != nil:
		return "slope"
	case s.Aspect != nil:
		return "aspect"
	default:
		return "style"
	}
}

// probeU8 reports whether img can serve GetLineU8 without error, by
// attempting to read its first line. A relief/hillshade or palette
// output always can; a raw slope/aspect f32-only image cannot.
func probeU8(img raster.Image) ([]uint8, bool) {
	if img.Height() == 0 {
		return nil, true
	}
	buf := make([]uint8, img.Width()*img.Channels())
	if err := img.GetLineU8(buf, 0); err != nil {
		return nil, false
	}
	return buf, true
}

func sameResolution(img raster.Image, req Request) bool {
	resX := req.BBox.Width() / float64(req.Width)
	resY := req.BBox.Height() / float64(req.Height)
	return closeEnough(img.ResolutionX(), resX) && closeEnough(img.ResolutionY(), resY) && img.CRS() == req.CRSCode
}

func closeEnough(a, b float64) bool {
	if b == 0 {
		return a == 0
	}
	return math.Abs(a-b)/math.Abs(b) < 1e-3
}
