package raster

import (
	"math"

	"github.com/rok4/pyramid-core/internal/geom"
)

// DefaultGridStep is the control-lattice sampling interval spec.md
// §4.5.7 defaults to.
const DefaultGridStep = 16

// Grid is a sampled mapping from target pixel centers to source
// coordinates (spec.md §4.5.7): a lattice of control points at every
// pixel_step pixels, plus an extra row/column to cover the final
// (possibly irregular) remainder.
type Grid struct {
	width, height int
	step          int
	cols, rows    int // control-point grid dimensions
	x, y          []float64 // row-major, len == cols*rows
	valid         []bool
	bbox          geom.Box[float64]
	yMaximalGap   float64
}

// NewGrid builds an unprojected identity grid over a target
// width/height/bbox: control point (i, j) maps to the target pixel
// center at column i*step, row j*step (clamped to width-1/height-1 for
// the trailing irregular segment).
func NewGrid(width, height int, bbox geom.Box[float64], step int) *Grid {
	if step <= 0 {
		step = DefaultGridStep
	}
	cols := width/step + 1
	if width%step != 0 {
		cols++
	}
	rows := height/step + 1
	if height%step != 0 {
		rows++
	}
	g := &Grid{width: width, height: height, step: step, cols: cols, rows: rows, bbox: bbox}
	g.x = make([]float64, cols*rows)
	g.y = make([]float64, cols*rows)
	g.valid = make([]bool, cols*rows)

	resX := bbox.Width() / float64(width)
	resY := bbox.Height() / float64(height)
	for j := 0; j < rows; j++ {
		py := gridLinePos(j, rows, step, height)
		for i := 0; i < cols; i++ {
			px := gridLinePos(i, cols, step, width)
			tx, ty := PixelToTerrain(bbox, resX, resY, float64(px), float64(py))
			idx := j*cols + i
			g.x[idx] = tx
			g.y[idx] = ty
			g.valid[idx] = true
		}
	}
	return g
}

func gridLinePos(idx, count, step, dim int) int {
	if idx == count-1 {
		return dim - 1
	}
	p := idx * step
	if p > dim-1 {
		return dim - 1
	}
	return p
}

// Reproject transforms every control point through proj (source CRS ->
// target CRS of the grid's coordinates), rejecting the grid if any
// point fails to project. The grid's bounding box is recomputed by
// sampling each side into 256 segments, matching Box.Reproject.
func (g *Grid) Reproject(proj geom.Projector, toCRS string) error {
	for idx := range g.x {
		if !g.valid[idx] {
			continue
		}
		tx, ty, ok := proj.Transform(g.x[idx], g.y[idx])
		if !ok || math.IsNaN(tx) || math.IsNaN(ty) {
			return errIncompatible("Grid: reprojection failed at a control point")
		}
		g.x[idx] = tx
		g.y[idx] = ty
	}
	newBox, ok := g.bbox.Reproject(proj, toCRS, 256)
	if !ok {
		return errIncompatible("Grid: bbox reprojection failed")
	}
	g.bbox = newBox
	g.updateYMaximalGap()
	return nil
}

// AffineTransform applies x' = Ax*x + Bx, y' = Ay*y + By to every
// control point in place, updating y_maximal_gap by |Ay| (spec.md
// §4.5.7).
func (g *Grid) AffineTransform(ax, bx, ay, by float64) {
	for idx := range g.x {
		g.x[idx] = ax*g.x[idx] + bx
		g.y[idx] = ay*g.y[idx] + by
	}
	g.yMaximalGap *= math.Abs(ay)
}

func (g *Grid) updateYMaximalGap() {
	if g.rows == 0 {
		return
	}
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i := 0; i < g.cols; i++ {
		v := g.y[i] // topmost row (j == 0)
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}
	g.yMaximalGap = maxY - minY
}

// YMaximalGap returns the spread of the topmost control-point row,
// sizing the reprojected image's source line cache.
func (g *Grid) YMaximalGap() float64 {
	if g.yMaximalGap == 0 {
		g.updateYMaximalGap()
	}
	return g.yMaximalGap
}

// XRatio/YRatio bound the maximum pseudo-resolution per target pixel
// across columns/rows — each control-point gap divided by the number of
// target pixels it spans — used to pick the resampling kernel
// half-width scale.
func (g *Grid) XRatio() float64 {
	maxRatio := 0.0
	for j := 0; j < g.rows; j++ {
		for i := 1; i < g.cols; i++ {
			span := float64(gridLinePos(i, g.cols, g.step, g.width) - gridLinePos(i-1, g.cols, g.step, g.width))
			if span <= 0 {
				continue
			}
			a := j*g.cols + i - 1
			b := j*g.cols + i
			d := math.Abs(g.x[b]-g.x[a]) / span
			if d > maxRatio {
				maxRatio = d
			}
		}
	}
	return maxRatio
}

func (g *Grid) YRatio() float64 {
	maxRatio := 0.0
	for j := 1; j < g.rows; j++ {
		span := float64(gridLinePos(j, g.rows, g.step, g.height) - gridLinePos(j-1, g.rows, g.step, g.height))
		if span <= 0 {
			continue
		}
		for i := 0; i < g.cols; i++ {
			a := (j-1)*g.cols + i
			b := j*g.cols + i
			d := math.Abs(g.y[b]-g.y[a]) / span
			if d > maxRatio {
				maxRatio = d
			}
		}
	}
	return maxRatio
}

// GetLine bilinearly interpolates the source-space X/Y coordinate of
// every pixel center on target line y, handling the grid's trailing
// irregular row/column segment with its own denominator (spec.md
// §4.5.7).
func (g *Grid) GetLine(y int, xOut, yOut []float64) {
	row := y / g.step
	if row >= g.rows-1 {
		row = g.rows - 2
		if row < 0 {
			row = 0
		}
	}
	rowStart := row * g.step
	rowSpan := g.step
	if row == g.rows-2 {
		rowSpan = g.height - 1 - rowStart
		if rowSpan <= 0 {
			rowSpan = g.step
		}
	}
	w := 0.0
	if rowSpan > 0 {
		w = float64(y-rowStart) / float64(rowSpan)
	}

	for col := 0; col < g.cols-1; col++ {
		colStart := col * g.step
		colSpan := g.step
		if col == g.cols-2 {
			colSpan = g.width - 1 - colStart
			if colSpan <= 0 {
				colSpan = g.step
			}
		}
		i00 := row*g.cols + col
		i01 := row*g.cols + col + 1
		i10 := (row+1)*g.cols + col
		i11 := (row+1)*g.cols + col + 1

		colEnd := colStart + colSpan
		if col == g.cols-2 {
			// Trailing irregular segment: span covers the remainder up
			// to and including the final pixel column (width-1), unlike
			// a regular step-sized segment whose endpoint is the start
			// of the next segment and so stays exclusive.
			colEnd = g.width
		}
		if colEnd > g.width {
			colEnd = g.width
		}
		for px := colStart; px < colEnd; px++ {
			u := 0.0
			if colSpan > 0 {
				u = float64(px-colStart) / float64(colSpan)
			}
			topXv := lerp(g.x[i00], g.x[i01], u)
			botXv := lerp(g.x[i10], g.x[i11], u)
			topYv := lerp(g.y[i00], g.y[i01], u)
			botYv := lerp(g.y[i10], g.y[i11], u)
			xOut[px] = lerp(topXv, botXv, w)
			yOut[px] = lerp(topYv, botYv, w)
		}
	}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }
