package tms

import (
	"math"
	"sort"

	"github.com/rok4/pyramid-core/internal/crs"
	"github.com/rok4/pyramid-core/internal/geom"
)

// TileMatrixSet carries a CRS, its levels in resolution-descending order,
// and whether the sequence forms a quad-tree (spec.md §3).
type TileMatrixSet struct {
	ID       string
	Title    string
	Keywords []string
	CRS      string
	Levels   []TileMatrix
}

// New sorts levels by descending resolution and returns a TileMatrixSet.
func New(id, title, crsCode string, levels []TileMatrix) *TileMatrixSet {
	sorted := append([]TileMatrix(nil), levels...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Resolution > sorted[j].Resolution
	})
	return &TileMatrixSet{ID: id, Title: title, CRS: crsCode, Levels: sorted}
}

// Level returns the level with the given id, or nil.
func (s *TileMatrixSet) Level(id string) *TileMatrix {
	for i := range s.Levels {
		if s.Levels[i].ID == id {
			return &s.Levels[i]
		}
	}
	return nil
}

// IsQuadTree reports whether every consecutive pair of levels halves
// resolution while sharing origin and tile dimensions, within the
// 0.01% tolerance spec.md §8 names: |2*res(n) - res(n-1)| <= 0.0001*res(n-1).
func (s *TileMatrixSet) IsQuadTree() bool {
	if len(s.Levels) < 2 {
		return true
	}
	for i := 1; i < len(s.Levels); i++ {
		prev, cur := s.Levels[i-1], s.Levels[i]
		if prev.TileWidth != cur.TileWidth || prev.TileHeight != cur.TileHeight {
			return false
		}
		if prev.X0 != cur.X0 || prev.Y0 != cur.Y0 {
			return false
		}
		tol := 0.0001 * prev.Resolution
		if math.Abs(2*cur.Resolution-prev.Resolution) > tol {
			return false
		}
	}
	return true
}

// BestLevel scans levels resolution-descending and picks the first whose
// resolution is >= the requested mean resolution, falling back to the
// finest level (spec.md §4.3 Pyramid.best_level).
func (s *TileMatrixSet) BestLevel(resX, resY float64) *TileMatrix {
	if len(s.Levels) == 0 {
		return nil
	}
	want := (resX + resY) / 2
	for i := range s.Levels {
		if s.Levels[i].Resolution >= want {
			return &s.Levels[i]
		}
	}
	return &s.Levels[len(s.Levels)-1]
}

// ClosestLevel finds the level in other whose effective resolution ratio
// to target — after reprojecting the intersection of their definition
// areas — lies in [0.8, 1.5] and is closest to 1 (spec.md §3 "Cross-TMS
// correspondence"). Returns nil if no candidate's ratio falls in range.
func ClosestLevel(target TileMatrix, targetCRS *crs.CRS, other *TileMatrixSet, otherCRS *crs.CRS) *TileMatrix {
	if other == nil || len(other.Levels) == 0 {
		return nil
	}

	// The effective resolution ratio only depends on the two CRS's unit
	// scale near the overlapping area; approximate it by reprojecting the
	// target tile's footprint through both CRSes and comparing ground
	// widths, matching the teacher's edge-sampling approach in geom.Box.
	var bestLevel *TileMatrix
	bestDist := math.Inf(1)

	for i := range other.Levels {
		cand := other.Levels[i]
		ratio := effectiveResolutionRatio(target, targetCRS, cand, otherCRS)
		if ratio < 0.8 || ratio > 1.5 {
			continue
		}
		dist := math.Abs(ratio - 1)
		if dist < bestDist {
			bestDist = dist
			bestLevel = &other.Levels[i]
		}
	}
	return bestLevel
}

func effectiveResolutionRatio(target TileMatrix, targetCRS *crs.CRS, cand TileMatrix, candCRS *crs.CRS) float64 {
	if targetCRS == nil || candCRS == nil || targetCRS.Undefined || candCRS.Undefined {
		return target.Resolution / cand.Resolution
	}
	tFoot := target.TileIndicesToBBox(0, 0)
	tProj, ok := tFoot.Reproject(crs.Transformer(targetCRS, candCRS), candCRS.CanonicalCode, 8)
	if !ok || tProj.Width() <= 0 {
		return target.Resolution / cand.Resolution
	}
	targetGroundWidth := tProj.Width() / float64(target.TileWidth)
	return targetGroundWidth / cand.Resolution
}

// DefinitionAreaIntersection returns the overlap of two TileMatrixSets'
// definition areas, both reprojected into a common CRS via WGS84 pivot.
func DefinitionAreaIntersection(aArea geom.Box[float64], aCRS *crs.CRS, bArea geom.Box[float64], bCRS *crs.CRS) (geom.Box[float64], bool) {
	projected, ok := aArea.Reproject(crs.Transformer(aCRS, bCRS), bCRS.CanonicalCode, 16)
	if !ok {
		return geom.Box[float64]{}, false
	}
	inter := projected.GetIntersection(bArea)
	return inter, !inter.HasNullArea()
}
