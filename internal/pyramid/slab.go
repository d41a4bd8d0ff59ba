// Package pyramid implements the Pyramid/Level data model of spec.md
// §3/§4.3: resolving a (tile-matrix, col, row) request to a raw tile
// payload inside a slab object, via the storage abstraction and the
// tile index cache.
package pyramid

import (
	"encoding/binary"

	"github.com/rok4/pyramid-core/internal/rerr"
)

// Slab header layout (spec.md §6 "Slab layout (pyramid storage)"): a
// fixed magic/version prefix (spec.md §4.3's "fixed prefix bytes: magic,
// version, W, H, channel count"), followed by parallel offset and size
// tables of W*H little-endian u32 words, followed by the concatenated
// tile payloads. Tile offsets count from the first payload byte, not
// from the start of the slab.
const (
	slabMagic      uint32 = 0x534C4231 // "SLB1"
	slabVersion    uint32 = 1
	slabHeaderBase        = 4 + 4 + 4 + 4 + 4 // magic, version, W, H, channels
)

// SlabHeader is the parsed fixed-prefix metadata of a slab object.
type SlabHeader struct {
	Width, Height int
	Channels      int
	Offsets       []uint32
	Sizes         []uint32
	HeaderSize    int
}

// ParseSlabHeader validates the magic/version prefix and extracts the
// offset/size tables. FormatError on truncation or a bad magic, matching
// spec.md §7's ErrorHandling taxonomy for "truncated slab header, bad
// magic, unsupported compression".
func ParseSlabHeader(data []byte) (*SlabHeader, error) {
	if len(data) < slabHeaderBase {
		return nil, rerr.Wrap(rerr.Format, "slab header truncated: %d bytes", len(data))
	}
	magic := binary.LittleEndian.Uint32(data[0:4])
	if magic != slabMagic {
		return nil, rerr.Wrap(rerr.Format, "slab header bad magic: %#x", magic)
	}
	version := binary.LittleEndian.Uint32(data[4:8])
	if version != slabVersion {
		return nil, rerr.Wrap(rerr.Format, "slab header unsupported version: %d", version)
	}
	w := binary.LittleEndian.Uint32(data[8:12])
	h := binary.LittleEndian.Uint32(data[12:16])
	channels := binary.LittleEndian.Uint32(data[16:20])

	tileCount := int(w) * int(h)
	tablesSize := tileCount * 4 * 2
	headerSize := slabHeaderBase + tablesSize
	if len(data) < headerSize {
		return nil, rerr.Wrap(rerr.Format, "slab header truncated: need %d bytes, have %d", headerSize, len(data))
	}

	offsets := make([]uint32, tileCount)
	sizes := make([]uint32, tileCount)
	cursor := slabHeaderBase
	for i := 0; i < tileCount; i++ {
		offsets[i] = binary.LittleEndian.Uint32(data[cursor : cursor+4])
		cursor += 4
	}
	for i := 0; i < tileCount; i++ {
		sizes[i] = binary.LittleEndian.Uint32(data[cursor : cursor+4])
		cursor += 4
	}

	return &SlabHeader{
		Width:      int(w),
		Height:     int(h),
		Channels:   int(channels),
		Offsets:    offsets,
		Sizes:      sizes,
		HeaderSize: headerSize,
	}, nil
}

// BuildSlabHeader serializes a SlabHeader's prefix, for writers/tests.
func BuildSlabHeader(w, h, channels int, offsets, sizes []uint32) []byte {
	buf := make([]byte, slabHeaderBase+len(offsets)*4+len(sizes)*4)
	binary.LittleEndian.PutUint32(buf[0:4], slabMagic)
	binary.LittleEndian.PutUint32(buf[4:8], slabVersion)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(w))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(h))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(channels))
	cursor := slabHeaderBase
	for _, o := range offsets {
		binary.LittleEndian.PutUint32(buf[cursor:cursor+4], o)
		cursor += 4
	}
	for _, s := range sizes {
		binary.LittleEndian.PutUint32(buf[cursor:cursor+4], s)
		cursor += 4
	}
	return buf
}
