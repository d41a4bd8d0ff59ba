// Package compress implements the TIFF-flavored LZW, PackBits, and
// Deflate codecs spec.md §4.4 names for the encoder family.
//
// TIFF's LZW variant differs from the GIF/PDF one Go's stdlib
// compress/lzw implements: TIFF increments the code width only after
// emitting the code that fills the current width ("deferred increment"),
// while GIF increments before. That mismatch is why this package carries
// its own codec instead of wrapping the standard library — grounded on
// the teacher's own internal/cog/lzw.go, which documents and works
// around the identical incompatibility for decoding; this package
// extends that decoder with a matching encoder spec.md's write path
// needs (the teacher, a read-only COG tool, never needed one).
package compress

import (
	"errors"
	"io"

	"github.com/rok4/pyramid-core/internal/rerr"
)

const (
	lzwMaxWidth  = 12
	lzwClearCode = 256
	lzwEOICode   = 257
	lzwFirstCode = 258
	lzwMinWidth  = 9
)

type lzwEntry struct {
	prefix int
	suffix byte
	length int
}

// DecodeLZW decompresses TIFF-style LZW data (MSB bit ordering,
// deferred code-width increment).
func DecodeLZW(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	d := &lzwBitReader{src: data}
	return decodeLZW(d)
}

type lzwBitReader struct {
	src    []byte
	bitPos int
}

func (d *lzwBitReader) readBits(n int) (int, error) {
	if n <= 0 || n > 16 {
		return 0, errors.New("lzw: invalid bit count")
	}
	result := 0
	for i := 0; i < n; i++ {
		bytePos := d.bitPos / 8
		bitOff := 7 - (d.bitPos % 8)
		if bytePos >= len(d.src) {
			return 0, io.ErrUnexpectedEOF
		}
		bit := (int(d.src[bytePos]) >> bitOff) & 1
		result = (result << 1) | bit
		d.bitPos++
	}
	return result, nil
}

func decodeLZW(d *lzwBitReader) ([]byte, error) {
	table := make([]lzwEntry, 4097)
	for i := 0; i < 256; i++ {
		table[i] = lzwEntry{prefix: -1, suffix: byte(i), length: 1}
	}

	nextCode := lzwFirstCode
	codeWidth := lzwMinWidth

	var output []byte
	buf := make([]byte, 0, 4096)

	getString := func(code int) []byte {
		entry := &table[code]
		buf = buf[:entry.length]
		idx := entry.length - 1
		for code >= 0 {
			e := &table[code]
			buf[idx] = e.suffix
			idx--
			code = e.prefix
		}
		return buf
	}

	code, err := d.readBits(codeWidth)
	if err != nil {
		return nil, rerr.Wrap(rerr.Format, "lzw: %v", err)
	}
	if code != lzwClearCode {
		return nil, rerr.Wrap(rerr.Format, "lzw: first code is not clear code")
	}

	prevCode := -1
	for {
		code, err := d.readBits(codeWidth)
		if err != nil {
			if err == io.ErrUnexpectedEOF {
				return output, nil
			}
			return nil, rerr.Wrap(rerr.Format, "lzw: %v", err)
		}

		if code == lzwEOICode {
			return output, nil
		}
		if code == lzwClearCode {
			nextCode = lzwFirstCode
			codeWidth = lzwMinWidth
			prevCode = -1
			continue
		}

		if prevCode == -1 {
			if code >= 256 {
				return nil, rerr.Wrap(rerr.Format, "lzw: first code after clear is not literal")
			}
			output = append(output, byte(code))
			prevCode = code
			continue
		}

		var outStr []byte
		if code < nextCode {
			outStr = getString(code)
			output = append(output, outStr...)
			if nextCode < 4097 {
				table[nextCode] = lzwEntry{prefix: prevCode, suffix: outStr[0], length: table[prevCode].length + 1}
				nextCode++
			}
		} else if code == nextCode {
			prevStr := getString(prevCode)
			firstByte := prevStr[0]
			output = append(output, prevStr...)
			output = append(output, firstByte)
			if nextCode < 4097 {
				table[nextCode] = lzwEntry{prefix: prevCode, suffix: firstByte, length: table[prevCode].length + 1}
				nextCode++
			}
		} else {
			return nil, rerr.Wrap(rerr.Format, "lzw: invalid code %d", code)
		}

		if nextCode+1 >= (1<<codeWidth) && codeWidth < lzwMaxWidth {
			codeWidth++
		}
		prevCode = code
	}
}

// EncodeLZW compresses data using the TIFF LZW variant: same dictionary
// semantics and deferred code-width increment as DecodeLZW expects.
func EncodeLZW(data []byte) []byte {
	w := &lzwBitWriter{}
	w.writeBits(lzwClearCode, lzwMinWidth)

	dict := make(map[string]int, 4096)
	resetDict := func() {
		dict = make(map[string]int, 4096)
		for i := 0; i < 256; i++ {
			dict[string([]byte{byte(i)})] = i
		}
	}
	resetDict()
	nextCode := lzwFirstCode
	codeWidth := lzwMinWidth

	if len(data) == 0 {
		w.writeBits(lzwEOICode, codeWidth)
		return w.bytes()
	}

	cur := string(data[0:1])
	for i := 1; i < len(data); i++ {
		ext := cur + string(data[i:i+1])
		if _, ok := dict[ext]; ok {
			cur = ext
			continue
		}

		w.writeBits(dict[cur], codeWidth)

		if nextCode < 4096 {
			dict[ext] = nextCode
			nextCode++
		}
		if nextCode >= (1<<codeWidth) && codeWidth < lzwMaxWidth {
			codeWidth++
		}
		if nextCode >= 4096 {
			w.writeBits(lzwClearCode, codeWidth)
			resetDict()
			nextCode = lzwFirstCode
			codeWidth = lzwMinWidth
		}

		cur = string(data[i : i+1])
	}
	w.writeBits(dict[cur], codeWidth)
	if nextCode >= (1<<codeWidth) && codeWidth < lzwMaxWidth {
		codeWidth++
	}
	w.writeBits(lzwEOICode, codeWidth)

	return w.bytes()
}

type lzwBitWriter struct {
	buf    []byte
	bitBuf uint32
	bitCnt int
}

func (w *lzwBitWriter) writeBits(code, width int) {
	w.bitBuf = (w.bitBuf << uint(width)) | uint32(code)
	w.bitCnt += width
	for w.bitCnt >= 8 {
		shift := uint(w.bitCnt - 8)
		w.buf = append(w.buf, byte(w.bitBuf>>shift))
		w.bitCnt -= 8
		w.bitBuf &= (1 << uint(w.bitCnt)) - 1
	}
}

func (w *lzwBitWriter) bytes() []byte {
	if w.bitCnt > 0 {
		shift := uint(8 - w.bitCnt)
		w.buf = append(w.buf, byte(w.bitBuf<<shift))
		w.bitCnt = 0
	}
	return w.buf
}
