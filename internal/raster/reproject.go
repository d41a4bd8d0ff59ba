package raster

import (
	"math"

	"github.com/rok4/pyramid-core/internal/geom"
)

// Kernel selects a resampling filter for ReprojectedImage (spec.md
// §4.5.6). Half-widths: nearest 0.5, linear 1, cubic 2, Lanczos-2 2,
// Lanczos-3 3 (default), Lanczos-4 4.
type Kernel int

const (
	KernelNearest Kernel = iota
	KernelLinear
	KernelCubic
	KernelLanczos2
	KernelLanczos3
	KernelLanczos4
)

func (k Kernel) halfWidth() float64 {
	switch k {
	case KernelNearest:
		return 0.5
	case KernelLinear:
		return 1
	case KernelCubic:
		return 2
	case KernelLanczos2:
		return 2
	case KernelLanczos4:
		return 4
	default: // KernelLanczos3
		return 3
	}
}

func (k Kernel) weight(x float64) float64 {
	switch k {
	case KernelNearest:
		if x > -0.5 && x <= 0.5 {
			return 1
		}
		return 0
	case KernelLinear:
		x = math.Abs(x)
		if x < 1 {
			return 1 - x
		}
		return 0
	case KernelCubic:
		return cubicWeight(x, -0.5)
	case KernelLanczos2:
		return lanczosWeight(x, 2)
	case KernelLanczos4:
		return lanczosWeight(x, 4)
	default:
		return lanczosWeight(x, 3)
	}
}

func cubicWeight(x, a float64) float64 {
	x = math.Abs(x)
	if x <= 1 {
		return (a+2)*x*x*x - (a+3)*x*x + 1
	}
	if x < 2 {
		return a*x*x*x - 5*a*x*x + 8*a*x - 4*a
	}
	return 0
}

func lanczosWeight(x, a float64) float64 {
	if x == 0 {
		return 1
	}
	ax := math.Abs(x)
	if ax >= a {
		return 0
	}
	piX := math.Pi * x
	return a * math.Sin(piX) * math.Sin(piX/a) / (piX * piX)
}

// weightTableSize is the fractional-position resolution spec.md §4.5.6
// fixes for precomputed kernel weight arrays.
const weightTableSize = 1024

// kernelWeights precomputes, for a kernel with the given effective
// (possibly axis-ratio-scaled) half-width, the offset-origin and
// per-fractional-position weight rows used by convolveAxis.
type kernelWeights struct {
	kernel     Kernel
	halfWidth  float64
	size       int     // number of taps per pixel
	xmin       []int   // xmin[frac] : starting tap offset (negative), per fractional position
	weights    [][]float64
}

func newKernelWeights(k Kernel, scale float64) *kernelWeights {
	hw := k.halfWidth() * scale
	if hw < 0.5 {
		hw = 0.5
	}
	size := int(math.Ceil(hw))*2 + 2
	kw := &kernelWeights{kernel: k, halfWidth: hw, size: size}
	kw.xmin = make([]int, weightTableSize)
	kw.weights = make([][]float64, weightTableSize)

	for f := 0; f < weightTableSize; f++ {
		frac := float64(f) / weightTableSize
		start := -int(math.Ceil(hw)) - 1
		kw.xmin[f] = start
		row := make([]float64, size)
		sum := 0.0
		for i := 0; i < size; i++ {
			d := (float64(start+i) - frac)
			w := k.weight(d / scale)
			row[i] = w
			sum += w
		}
		if sum != 0 {
			for i := range row {
				row[i] /= sum
			}
		}
		kw.weights[f] = row
	}
	return kw
}

// ReprojectedImage resamples a source image in CRS_A onto a target
// bounding box/dimensions in CRS_B through a precomputed Grid (spec.md
// §4.5.6). This implementation follows the algorithm's per-pixel
// structure (gather a kernel-sized neighborhood, convolve X then Y,
// mask-aware) without the original's SIMD-oriented 4-line interleaving,
// since Go has no portable SIMD intrinsic surface in the retrieval pack
// to target; each output line is computed independently instead.
type ReprojectedImage struct {
	base
	source  Image
	grid    *Grid
	kernelX *kernelWeights
	kernelY *kernelWeights
	nodata  []uint8
}

// NewReprojectedImage builds a ReprojectedImage. grid must already be
// reprojected into source CRS coordinates via Grid.Reproject.
func NewReprojectedImage(source Image, bbox geom.Box[float64], width, height int, grid *Grid, kernel Kernel, nodata []uint8) *ReprojectedImage {
	scaleX := grid.XRatio() / source.ResolutionX()
	scaleY := grid.YRatio() / source.ResolutionY()
	if scaleX < 1 {
		scaleX = 1
	}
	if scaleY < 1 {
		scaleY = 1
	}
	return &ReprojectedImage{
		base:    newBase(width, height, source.Channels(), bbox, source.CRS()),
		source:  source,
		grid:    grid,
		kernelX: newKernelWeights(kernel, scaleX),
		kernelY: newKernelWeights(kernel, scaleY),
		nodata:  nodata,
	}
}

// lineCacheSize is the rolling window of memorized source lines, sized
// 2*y_kernel_size + ceil(grid.y_maximal_gap) + 1 (spec.md §4.5.6).
func (r *ReprojectedImage) lineCacheSize() int {
	return 2*r.kernelY.size + int(math.Ceil(r.grid.YMaximalGap())) + 1
}

func (r *ReprojectedImage) getLineF64(buf []float64, sy int) ([]uint8, bool) {
	ch := r.channels
	if sy < 0 || sy >= r.source.Height() {
		return nil, false
	}
	u8 := make([]uint8, r.source.Width()*ch)
	if err := r.source.GetLineU8(u8, sy); err != nil {
		return nil, false
	}
	for i, v := range u8 {
		buf[i] = float64(v)
	}
	var maskLine []uint8
	if mk := r.source.Mask(); mk != nil {
		maskLine = make([]uint8, r.source.Width())
		_ = mk.GetLineU8(maskLine, sy)
	} else {
		maskLine = make([]uint8, r.source.Width())
		fillU8(maskLine, 255)
	}
	return maskLine, true
}

func (r *ReprojectedImage) GetLineU8(buf []uint8, y int) error {
	if y < 0 || y >= r.height {
		return errLineOutOfRange("ReprojectedImage", y, r.height)
	}
	ch := r.channels
	tx := make([]float64, r.width)
	ty := make([]float64, r.width)
	r.grid.GetLine(y, tx, ty)

	srcW, srcH := r.source.Width(), r.source.Height()
	resX, resY := r.source.ResolutionX(), r.source.ResolutionY()
	srcBox := r.source.BBox()

	lineCache := map[int][]float64{}
	maskCache := map[int][]uint8{}
	getSrcLine := func(sy int) ([]float64, []uint8, bool) {
		if l, ok := lineCache[sy]; ok {
			return l, maskCache[sy], true
		}
		l := make([]float64, srcW*ch)
		m, ok := r.getLineF64(l, sy)
		if !ok {
			return nil, nil, false
		}
		lineCache[sy] = l
		maskCache[sy] = m
		return l, m, true
	}

	for x := 0; x < r.width; x++ {
		if math.IsNaN(tx[x]) {
			copy(buf[x*ch:(x+1)*ch], r.nodata)
			continue
		}
		fpx, fpy := TerrainToPixel(srcBox, resX, resY, tx[x], ty[x])
		if fpx < 0 || fpy < 0 || fpx >= float64(srcW) || fpy >= float64(srcH) {
			copy(buf[x*ch:(x+1)*ch], r.nodata)
			continue
		}

		ix, iy := int(math.Floor(fpx)), int(math.Floor(fpy))
		fracX := int((fpx - math.Floor(fpx)) * weightTableSize)
		fracY := int((fpy - math.Floor(fpy)) * weightTableSize)
		wx := r.kernelX.weights[fracX]
		wy := r.kernelY.weights[fracY]
		x0 := r.kernelX.xmin[fracX]
		y0 := r.kernelY.xmin[fracY]

		accum := make([]float64, ch)
		maskSum := 0.0
		for j := 0; j < r.kernelY.size; j++ {
			sy := iy + y0 + j
			if sy < 0 || sy >= srcH {
				continue
			}
			line, mask, ok := getSrcLine(sy)
			if !ok {
				continue
			}
			rowAccum := make([]float64, ch)
			rowMask := 0.0
			for i := 0; i < r.kernelX.size; i++ {
				sx := ix + x0 + i
				if sx < 0 || sx >= srcW {
					continue
				}
				m := float64(mask[sx]) / 255
				w := wx[i] * m
				rowMask += w
				for c := 0; c < ch; c++ {
					rowAccum[c] += w * line[sx*ch+c]
				}
			}
			wy2 := wy[j]
			maskSum += wy2 * rowMask
			for c := 0; c < ch; c++ {
				accum[c] += wy2 * rowAccum[c]
			}
		}

		if maskSum <= 0 {
			copy(buf[x*ch:(x+1)*ch], r.nodata)
			continue
		}
		for c := 0; c < ch; c++ {
			v := accum[c] / maskSum
			if v < 0 {
				v = 0
			}
			if v > 255 {
				v = 255
			}
			buf[x*ch+c] = uint8(v + 0.5)
		}
	}
	return nil
}

func (r *ReprojectedImage) GetLineU16(buf []uint16, y int) error {
	return errUnsupportedSample("ReprojectedImage", "u16")
}

func (r *ReprojectedImage) GetLineF32(buf []float32, y int) error {
	return errUnsupportedSample("ReprojectedImage", "f32")
}
