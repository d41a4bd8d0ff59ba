package cache

import "sort"

// SlabCoord is a slab's column/row position within a level, used to order
// a bulk warmup sweep.
type SlabCoord struct {
	Col, Row uint32
}

// hilbertIndex converts (x, y) to a Hilbert curve index for an n x n
// grid, adapted from the teacher's internal/coord/hilbert.go (there used
// to order tile-generation jobs for cache locality; here it orders bulk
// slab-header warmup the same way, so consecutive prefetches land on
// nearby slabs instead of bouncing across the matrix).
func hilbertIndex(x, y, n uint64) uint64 {
	var d uint64
	s := n / 2
	for s > 0 {
		var rx, ry uint64
		if (x & s) > 0 {
			rx = 1
		}
		if (y & s) > 0 {
			ry = 1
		}
		d += s * s * ((3 * rx) ^ ry)
		if ry == 0 {
			if rx == 1 {
				x = s*2 - 1 - x
				y = s*2 - 1 - y
			}
			x, y = y, x
		}
		s /= 2
	}
	return d
}

// OrderForWarmup sorts slab coordinates by Hilbert curve index within a
// matrix of side n (n must be a power of two large enough to cover the
// widest coordinate), so a bulk warmup sweep visits spatially nearby
// slabs consecutively.
func OrderForWarmup(coords []SlabCoord, n uint64) []SlabCoord {
	out := append([]SlabCoord(nil), coords...)
	indices := make([]uint64, len(out))
	for i, c := range out {
		indices[i] = hilbertIndex(uint64(c.Col), uint64(c.Row), n)
	}
	sort.Sort(hilbertSlabSorter{coords: out, indices: indices})
	return out
}

type hilbertSlabSorter struct {
	coords  []SlabCoord
	indices []uint64
}

func (s hilbertSlabSorter) Len() int           { return len(s.coords) }
func (s hilbertSlabSorter) Less(i, j int) bool { return s.indices[i] < s.indices[j] }
func (s hilbertSlabSorter) Swap(i, j int) {
	s.coords[i], s.coords[j] = s.coords[j], s.coords[i]
	s.indices[i], s.indices[j] = s.indices[j], s.indices[i]
}
