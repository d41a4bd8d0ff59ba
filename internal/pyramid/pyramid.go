package pyramid

import (
	"context"
	"fmt"

	"github.com/rok4/pyramid-core/internal/cache"
	"github.com/rok4/pyramid-core/internal/rerr"
	"github.com/rok4/pyramid-core/internal/storage"
	"github.com/rok4/pyramid-core/internal/tms"
)

// LevelSource distinguishes a level backed by pre-generated stored
// tiles from one computed on demand from a finer level, a feature the
// distilled spec omits but original_source/include/rok4/utils/Level.h
// (via Pyramid.h's on-the-fly generation path) models explicitly.
type LevelSource int

const (
	LevelSourceStored LevelSource = iota
	LevelSourceOnDemand
)

// PixelFormat is the pyramid-wide canonical sample layout (spec.md §3
// Pyramid: "canonical pixel format (sample format, channel count,
// photometric, compression)").
type PixelFormat struct {
	SampleFormat string // "uint8", "uint16", "float32"
	Channels     int
	Photometric  string // "gray", "rgb", "rgba", "palette"
	Compression  string // "raw", "lzw", "deflate", "packbits"
	NoData       []float64
}

// Level bundles a TileMatrix, the tile-row/column limits this level
// actually stores, its slab layout, backend pathing, and its source
// kind (spec.md §3 Pyramid & Level).
type Level struct {
	Matrix          tms.TileMatrix
	Limits          tms.TileLimits
	TilesPerWidth   int
	TilesPerHeight  int
	Context         storage.Context
	PathDepth       int // file backend bucketing depth p; 0 uses the object rule
	Source          LevelSource
	CRS             string // set by Pyramid.AddLevel from the owning TMS
}

// slabKey identifies a slab by level + slab coordinates.
func (l *Level) slabKey(sx, sy uint32) string {
	if l.PathDepth > 0 {
		return filePathRule(l.Matrix.ID, sx, sy, l.PathDepth)
	}
	return objectPathRule(l.Matrix.ID, sx, sy)
}

// DataSource is a resolved, not-yet-decoded tile payload.
type DataSource struct {
	Bytes  []byte
	Format PixelFormat
}

// GetTile returns the DataSource for tile (x, y) in level coordinates,
// consulting idx before reading the slab header from storage (spec.md
// §4.3).
func (l *Level) GetTile(ctx context.Context, idx *cache.Cache, format PixelFormat, x, y uint32) (*DataSource, error) {
	w, h := uint32(l.TilesPerWidth), uint32(l.TilesPerHeight)
	if w == 0 || h == 0 {
		return nil, rerr.Wrap(rerr.Consistency, "level %s has zero slab dimensions", l.Matrix.ID)
	}
	sx, sy := x/w, y/h
	tileIdx := int((y%h)*w + (x % w))
	key := l.slabKey(sx, sy)

	loc, hit := idx.Get(key, tileIdx)
	if !hit {
		slabName := l.Context.PathFor(key)
		header, err := l.Context.ReadFull(ctx, key)
		if err != nil {
			return nil, err
		}
		parsed, err := ParseSlabHeader(header)
		if err != nil {
			return nil, err
		}
		fileOffsets := make([]uint32, len(parsed.Offsets))
		for i, o := range parsed.Offsets {
			fileOffsets[i] = o + uint32(parsed.HeaderSize)
		}
		idx.Add(key, l.Context, slabName, fileOffsets, parsed.Sizes)
		loc, hit = idx.Get(key, tileIdx)
		if !hit {
			return nil, rerr.Wrap(rerr.Consistency, "tile index %d out of range for slab %s", tileIdx, key)
		}
	}

	buf := make([]byte, loc.Size)
	n, err := loc.Context.Read(ctx, buf, int64(loc.Offset), int64(loc.Size), key)
	if err != nil {
		return nil, err
	}
	return &DataSource{Bytes: buf[:n], Format: format}, nil
}

// Pyramid owns a TileMatrixSet, a map of Levels keyed by id, a canonical
// pixel format, and a storage context (spec.md §3).
type Pyramid struct {
	TMS     *tms.TileMatrixSet
	Levels  map[string]*Level
	Format  PixelFormat
	Context storage.Context
}

// New builds an empty Pyramid over set.
func New(set *tms.TileMatrixSet, format PixelFormat, ctx storage.Context) *Pyramid {
	return &Pyramid{TMS: set, Levels: make(map[string]*Level), Format: format, Context: ctx}
}

// AddLevel registers a level, validating that it belongs to the
// pyramid's TMS (spec.md §3 invariant).
func (p *Pyramid) AddLevel(l *Level) error {
	if p.TMS.Level(l.Matrix.ID) == nil {
		return rerr.Wrap(rerr.Consistency, "level %s does not belong to pyramid's TileMatrixSet %s", l.Matrix.ID, p.TMS.ID)
	}
	l.CRS = p.TMS.CRS
	p.Levels[l.Matrix.ID] = l
	return nil
}

// BestLevel scans levels resolution-descending, picking the first whose
// resolution is >= the requested mean resolution, falling back to the
// finest level (spec.md §4.3 Pyramid.best_level).
func (p *Pyramid) BestLevel(resX, resY float64) *Level {
	tm := p.TMS.BestLevel(resX, resY)
	if tm == nil {
		return nil
	}
	return p.Levels[tm.ID]
}

// Clone returns a shallow copy of l sharing the original's storage
// context, matching spec.md §3's invariant that "levels added by copy
// retain the original's storage context".
func (l *Level) Clone() *Level {
	clone := *l
	return &clone
}

func (p PixelFormat) String() string {
	return fmt.Sprintf("%s x%d %s/%s", p.SampleFormat, p.Channels, p.Photometric, p.Compression)
}

// NoDataAt returns the declared nodata value for channel c, defaulting
// to 0 when fewer values were declared than channels.
func (p PixelFormat) NoDataAt(c int) float64 {
	if c < len(p.NoData) {
		return p.NoData[c]
	}
	return 0
}
