// Package bilenc streams a single-channel raster.Image as raw
// line-major float32 samples (BIL: Band Interleaved by Line), the way
// the original's BilEncoder serves elevation/float data with no header
// at all — just width*height*4 bytes of native sample values.
package bilenc

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/rok4/pyramid-core/internal/raster"
	"github.com/rok4/pyramid-core/internal/rerr"
)

// contentType matches the original's get_type(): "image/x-bil;bits=32".
const contentType = "image/x-bil;bits=32"

// Encoder lazily streams img one line at a time, converting each line to
// little-endian float32 bytes on demand rather than materializing the
// whole image in memory.
type Encoder struct {
	img     raster.Image
	width   int
	height  int
	lineBuf []byte
	linePos int
	lineIdx int
}

// NewEncoder wraps img, which must carry exactly one channel — BIL as
// this package renders it has no per-sample channel layout to interleave.
func NewEncoder(img raster.Image) (*Encoder, error) {
	if img.Channels() != 1 {
		return nil, rerr.Wrap(rerr.Config, "bilenc: image has %d channels, BIL encoding needs 1", img.Channels())
	}
	return &Encoder{img: img, width: img.Width(), height: img.Height()}, nil
}

// ContentType reports "image/x-bil;bits=32".
func (e *Encoder) ContentType() string { return contentType }

// Len returns width*height*4, the original's get_length().
func (e *Encoder) Len() int { return e.width * e.height * 4 }

// Read implements io.Reader, pulling one source line at a time and
// serving its little-endian float32 encoding before moving to the next.
func (e *Encoder) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if e.lineIdx >= e.height {
			if n == 0 {
				return 0, io.EOF
			}
			return n, nil
		}
		if e.lineBuf == nil {
			line := make([]float32, e.width)
			if err := e.img.GetLineF32(line, e.lineIdx); err != nil {
				return n, err
			}
			buf := make([]byte, e.width*4)
			for i, v := range line {
				binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
			}
			e.lineBuf = buf
			e.linePos = 0
		}
		m := copy(p[n:], e.lineBuf[e.linePos:])
		e.linePos += m
		n += m
		if e.linePos >= len(e.lineBuf) {
			e.lineBuf = nil
			e.lineIdx++
		}
	}
	return n, nil
}
