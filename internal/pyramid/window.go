package pyramid

import (
	"context"
	"encoding/binary"
	"math"

	"github.com/rok4/pyramid-core/internal/cache"
	"github.com/rok4/pyramid-core/internal/compress"
	"github.com/rok4/pyramid-core/internal/geom"
	"github.com/rok4/pyramid-core/internal/raster"
	"github.com/rok4/pyramid-core/internal/rerr"
)

// sampleSize is the byte width of one channel sample for a pyramid's
// canonical SampleFormat.
func sampleSize(sampleFormat string) int {
	switch sampleFormat {
	case "uint16":
		return 2
	case "float32":
		return 4
	default:
		return 1
	}
}

// decodeTile decompresses a tile's payload according to the pyramid's
// canonical compression, returning width*height*channels samples of
// the appropriate byte width, line-major (spec.md §4.4 compression
// variants: raw, LZW, Deflate, PackBits).
func decodeTile(ds *DataSource, width, height int) ([]byte, error) {
	want := width * height * ds.Format.Channels * sampleSize(ds.Format.SampleFormat)
	var out []byte
	var err error
	switch ds.Format.Compression {
	case "", "raw":
		out = ds.Bytes
	case "lzw":
		out, err = compress.DecodeLZW(ds.Bytes)
	case "deflate":
		out, err = compress.InflateAll(ds.Bytes)
	case "packbits":
		out = compress.DecodePackBits(ds.Bytes)
	default:
		return nil, rerr.Wrap(rerr.Format, "pyramid: unsupported tile compression %q", ds.Format.Compression)
	}
	if err != nil {
		return nil, rerr.Wrap(rerr.Format, "pyramid: decoding tile: %v", err)
	}
	if len(out) != want {
		return nil, rerr.Wrap(rerr.Format, "pyramid: decoded tile size mismatch: got %d want %d", len(out), want)
	}
	return out, nil
}

// tileToImage wraps a decoded tile's bytes as a leaf raster.Image in the
// pyramid's canonical sample format.
func tileToImage(raw []byte, width, height, channels int, sampleFormat string, bbox geom.Box[float64], crsCode string) raster.Image {
	switch sampleFormat {
	case "uint16":
		pix := make([]uint16, width*height*channels)
		for i := range pix {
			pix[i] = binary.LittleEndian.Uint16(raw[i*2:])
		}
		return raster.NewBufferImageU16(width, height, channels, bbox, crsCode, pix)
	case "float32":
		pix := make([]float32, width*height*channels)
		for i := range pix {
			pix[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
		}
		return raster.NewBufferImageF32(width, height, channels, bbox, crsCode, pix)
	default:
		return raster.NewBufferImageU8(width, height, channels, bbox, crsCode, raw)
	}
}

// nodataBytes renders the pyramid's per-channel nodata values as one u8
// value per channel, which GetBboxWindow stamps missing tiles with. Non-u8 pyramids
// still use this for the mask/leaf shape; callers needing the exact
// float nodata read Format.NoData directly.
func nodataBytes(nodata []float64, channels int) []uint8 {
	out := make([]uint8, channels)
	for i := range out {
		if i < len(nodata) {
			out[i] = uint8(nodata[i])
		}
	}
	return out
}

// GetBboxWindow assembles every tile intersecting bbox (in the level's
// TileMatrix CRS) into a single mosaic Image covering the full
// tile-aligned rectangle, at the level's native resolution (spec.md
// §4.3 Level.get_bbox_window steps 1-2). Missing or unreadable tiles
// are stamped with the pyramid's nodata, never propagated as a fatal
// error (spec.md §7: "operators check for this and propagate" nodata,
// not panics, for per-tile storage faults).
//
// Cropping, resampling, and reprojecting the mosaic to a caller's
// requested bbox/resolution/CRS (step 3) is the image-graph
// composition job of the internal/pipeline package, not of this one.
// This package imports internal/raster only to wrap the assembled mosaic
// as an Image: mosaic assembly is the one place pyramid must itself
// build an Image, since only it knows the tile grid.
func (l *Level) GetBboxWindow(ctx context.Context, idx *cache.Cache, format PixelFormat, bbox geom.Box[float64]) (raster.Image, error) {
	limits := l.Matrix.BBoxToTileLimits(bbox)
	tw, th := l.Matrix.TileWidth, l.Matrix.TileHeight
	cols := int(limits.MaxCol-limits.MinCol) + 1
	rows := int(limits.MaxRow-limits.MinRow) + 1
	channels := format.Channels
	ss := sampleSize(format.SampleFormat)

	mosaic := make([]byte, cols*tw*rows*th*channels*ss)
	nd := nodataBytes(format.NoData, channels)

	for ty := 0; ty < rows; ty++ {
		for tx := 0; tx < cols; tx++ {
			col := limits.MinCol + uint32(tx)
			row := limits.MinRow + uint32(ty)

			var decoded []byte
			ds, err := l.GetTile(ctx, idx, format, col, row)
			if err == nil {
				decoded, err = decodeTile(ds, tw, th)
			}
			if err != nil {
				decoded = nil // fall through to nodata stamping below
			}

			for py := 0; py < th; py++ {
				destRow := ty*th + py
				destOff := (destRow*cols*tw + tx*tw) * channels * ss
				if decoded != nil {
					srcOff := py * tw * channels * ss
					copy(mosaic[destOff:destOff+tw*channels*ss], decoded[srcOff:srcOff+tw*channels*ss])
					continue
				}
				for px := 0; px < tw; px++ {
					for c := 0; c < channels; c++ {
						o := destOff + (px*channels+c)*ss
						switch ss {
						case 1:
							mosaic[o] = nd[c]
						case 2:
							binary.LittleEndian.PutUint16(mosaic[o:], uint16(format.nodataFloat(c)))
						case 4:
							binary.LittleEndian.PutUint32(mosaic[o:], math.Float32bits(float32(format.nodataFloat(c))))
						}
					}
				}
			}
		}
	}

	windowBBox := l.Matrix.BBoxFromTileLimits(limits)
	return tileToImage(mosaic, cols*tw, rows*th, channels, format.SampleFormat, windowBBox, l.CRS), nil
}

// nodataFloat returns the float64 nodata value for channel c, defaulting
// to 0 when the pyramid declares fewer nodata values than channels.
func (f PixelFormat) nodataFloat(c int) float64 {
	if c < len(f.NoData) {
		return f.NoData[c]
	}
	return 0
}
