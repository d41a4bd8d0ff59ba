// Package pyramidbuild implements bulk, Hilbert-ordered slab-header
// cache warmup: the supplemental feature SPEC_FULL.md §3 names as a
// worker-pool-over-channel job reusing the teacher's
// internal/tile/generator.go shape, retargeted from tile rendering onto
// slab-header prefetch.
package pyramidbuild

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/rok4/pyramid-core/internal/cache"
	"github.com/rok4/pyramid-core/internal/pyramid"
)

// Config holds warmup sweep configuration.
type Config struct {
	Concurrency int
	Verbose     bool
}

// Stats holds warmup sweep statistics.
type Stats struct {
	SlabCount  int64
	ErrorCount int64
}

// slabJob is a single slab to warm.
type slabJob struct {
	Col, Row uint32
}

// Warmup reads the slab header for every slab a level's tile limits
// intersect and populates idx, so the first real request against this
// level never pays a cold-cache read (spec.md §4.3's IndexCache
// consulted before a slab read; this sweep does all those reads ahead
// of time). Slabs are visited in Hilbert-curve order
// (internal/cache.OrderForWarmup) for storage locality, mirroring how
// the teacher's Generate ordered tile jobs for cache-friendly COG reads.
//
// Errors warming individual slabs are counted, not fatal: a missing or
// corrupt slab here only means the first real request for it pays the
// cold-read cost (or surfaces its own error) later, exactly as spec.md
// §7 asks storage faults to be recoverable rather than abort a bulk
// operation outright.
func Warmup(ctx context.Context, level *pyramid.Level, idx *cache.Cache, format pyramid.PixelFormat, cfg Config) (Stats, error) {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}

	tw, th := uint32(level.TilesPerWidth), uint32(level.TilesPerHeight)
	if tw == 0 || th == 0 {
		return Stats{}, fmt.Errorf("pyramidbuild: level %s has zero slab dimensions", level.Matrix.ID)
	}

	minSlabCol, maxSlabCol := level.Limits.MinCol/tw, level.Limits.MaxCol/tw
	minSlabRow, maxSlabRow := level.Limits.MinRow/th, level.Limits.MaxRow/th

	var coords []cache.SlabCoord
	for row := minSlabRow; row <= maxSlabRow; row++ {
		for col := minSlabCol; col <= maxSlabCol; col++ {
			coords = append(coords, cache.SlabCoord{Col: col, Row: row})
		}
	}
	if len(coords) == 0 {
		return Stats{}, nil
	}

	n := uint64(1)
	for n < uint64(level.Matrix.MatrixWidth) || n < uint64(level.Matrix.MatrixHeight) {
		n *= 2
	}
	coords = cache.OrderForWarmup(coords, n)

	if cfg.Verbose {
		log.Printf("level %s: warming %d slabs", level.Matrix.ID, len(coords))
	}

	pb := newProgressBar(fmt.Sprintf("Level %3s", level.Matrix.ID), int64(len(coords)))

	jobs := make(chan slabJob, cfg.Concurrency*2)
	var wg sync.WaitGroup
	var warmed, failed atomic.Int64

	for w := 0; w < cfg.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				x := job.Col * tw
				y := job.Row * th
				if _, err := level.GetTile(ctx, idx, format, x, y); err != nil {
					failed.Add(1)
					if cfg.Verbose {
						log.Printf("level %s: warming slab (%d,%d): %v", level.Matrix.ID, job.Col, job.Row, err)
					}
				} else {
					warmed.Add(1)
				}
				pb.Increment()
			}
		}()
	}

	for _, c := range coords {
		jobs <- slabJob{Col: c.Col, Row: c.Row}
	}
	close(jobs)
	wg.Wait()
	pb.Finish()

	return Stats{SlabCount: warmed.Load(), ErrorCount: failed.Load()}, nil
}
