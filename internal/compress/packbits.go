package compress

// EncodePackBits applies per-scanline PackBits run/literal encoding
// (spec.md §4.4), the Apple/TIFF variant: a control byte n followed by
// either n+1 literal bytes (0 <= n <= 127) or one byte repeated 1-n
// times (-127 <= n <= -1); -128 is a no-op.
func EncodePackBits(line []byte) []byte {
	var out []byte
	i := 0
	for i < len(line) {
		runLen := 1
		for i+runLen < len(line) && runLen < 128 && line[i+runLen] == line[i] {
			runLen++
		}
		if runLen >= 2 {
			out = append(out, byte(int8(-(runLen - 1))), line[i])
			i += runLen
			continue
		}

		// Accumulate a literal run until a repeat of length >= 2 appears.
		litStart := i
		i++
		for i < len(line) {
			rep := 1
			for i+rep < len(line) && rep < 128 && line[i+rep] == line[i] {
				rep++
			}
			if rep >= 2 {
				break
			}
			i++
		}
		litLen := i - litStart
		for litLen > 0 {
			chunk := litLen
			if chunk > 128 {
				chunk = 128
			}
			out = append(out, byte(chunk-1))
			out = append(out, line[litStart:litStart+chunk]...)
			litStart += chunk
			litLen -= chunk
		}
	}
	return out
}

// DecodePackBits reverses EncodePackBits.
func DecodePackBits(data []byte) []byte {
	var out []byte
	i := 0
	for i < len(data) {
		n := int(int8(data[i]))
		i++
		switch {
		case n >= 0:
			end := i + n + 1
			if end > len(data) {
				end = len(data)
			}
			out = append(out, data[i:end]...)
			i = end
		case n > -128:
			if i >= len(data) {
				return out
			}
			count := 1 - n
			for j := 0; j < count; j++ {
				out = append(out, data[i])
			}
			i++
		default:
			// -128: no-op.
		}
	}
	return out
}
