package raster

// MergeMethod selects the per-pixel compositing rule spec.md §4.5.2
// names.
type MergeMethod int

const (
	MergeNormal MergeMethod = iota
	MergeTop
	MergeMultiply
	MergeAlphaTop
)

// MergeSource is one layer of a MergeImage: the image itself, an
// optional "treat as transparent" RGB triple (demoted to alpha=0 before
// merging), checked only when the image has exactly 3 or 4 channels.
type MergeSource struct {
	Image          Image
	Transparent    [3]uint8
	HasTransparent bool
}

// MergeImage layers N compatible images (spec.md §4.5.2): same
// dimensions, channel count, and CRS are required of every source; the
// mask is the union over every source, with no early exit on an opaque
// one.
type MergeImage struct {
	base
	sources []MergeSource
	method  MergeMethod
}

// NewMergeImage validates that every source is Compatible with the
// first and builds a MergeImage composited with method. The returned
// image's Mask() is the union of every source's (transparent-demoted)
// mask, spec.md §4.5.2's "MergeMask is the union of source masks".
func NewMergeImage(sources []MergeSource, method MergeMethod) (*MergeImage, error) {
	if len(sources) == 0 {
		return nil, errIncompatible("MergeImage: no sources")
	}
	first := sources[0].Image
	for _, s := range sources[1:] {
		if !Compatible(first, s.Image) || s.Image.Width() != first.Width() || s.Image.Height() != first.Height() {
			return nil, errIncompatible("MergeImage")
		}
	}
	m := &MergeImage{
		base:    newBase(first.Width(), first.Height(), first.Channels(), first.BBox(), first.CRS()),
		sources: sources,
		method:  method,
	}
	m.mask = newMergeMaskImage(m)
	return m, nil
}

// sourceEffectiveMask returns src's per-pixel mask for line y, with the
// "treat as transparent" RGB triple already demoted to 0 (spec.md
// §4.5.2: "Transparent triples demote to alpha = 0 before merging"). A
// source with no attached mask is treated as fully opaque.
func sourceEffectiveMask(src MergeSource, y, w int) ([]uint8, error) {
	maskLine := make([]uint8, w)
	if mk := src.Image.Mask(); mk != nil {
		if err := mk.GetLineU8(maskLine, y); err != nil {
			return nil, err
		}
	} else {
		fillU8(maskLine, 255)
	}
	ch := src.Image.Channels()
	if src.HasTransparent && (ch == 3 || ch == 4) {
		line := make([]uint8, w*ch)
		if err := src.Image.GetLineU8(line, y); err != nil {
			return nil, err
		}
		for x := 0; x < w; x++ {
			px := line[x*ch : x*ch+3]
			if px[0] == src.Transparent[0] && px[1] == src.Transparent[1] && px[2] == src.Transparent[2] {
				maskLine[x] = 0
			}
		}
	}
	return maskLine, nil
}

// mergeMaskImage is MergeImage's own Mask(): the per-pixel union of its
// sources' effective masks, so a downstream mask-aware consumer (e.g.
// ReprojectedImage, which reads source.Mask()) sees the composited
// result instead of nil.
type mergeMaskImage struct {
	base
	sources []MergeSource
}

func newMergeMaskImage(m *MergeImage) *mergeMaskImage {
	mi := &mergeMaskImage{base: newBase(m.width, m.height, 1, m.bbox, m.crs), sources: m.sources}
	mi.isMask = true
	return mi
}

func (mi *mergeMaskImage) GetLineU8(buf []uint8, y int) error {
	if y < 0 || y >= mi.height {
		return errLineOutOfRange("MergeImage mask", y, mi.height)
	}
	w := mi.width
	out := make([]uint8, w)
	for _, src := range mi.sources {
		maskLine, err := sourceEffectiveMask(src, y, w)
		if err != nil {
			return err
		}
		for x := 0; x < w; x++ {
			if maskLine[x] != 0 {
				out[x] = 255
			}
		}
	}
	copy(buf, out)
	return nil
}

func (mi *mergeMaskImage) GetLineU16(buf []uint16, y int) error {
	return errUnsupportedSample("MergeImage mask", "u16")
}

func (mi *mergeMaskImage) GetLineF32(buf []float32, y int) error {
	return errUnsupportedSample("MergeImage mask", "f32")
}

func (m *MergeImage) GetLineU8(buf []uint8, y int) error {
	if y < 0 || y >= m.height {
		return errLineOutOfRange("MergeImage", y, m.height)
	}
	ch := m.channels
	w := m.width
	out := make([]uint8, w*ch)

	for si, src := range m.sources {
		line := make([]uint8, w*ch)
		if err := src.Image.GetLineU8(line, y); err != nil {
			return err
		}
		maskLine, err := sourceEffectiveMask(src, y, w)
		if err != nil {
			return err
		}

		if si == 0 {
			copy(out, line)
			continue
		}

		for x := 0; x < w; x++ {
			if maskLine[x] == 0 {
				continue
			}
			mergePixelU8(out[x*ch:(x+1)*ch], line[x*ch:(x+1)*ch], ch, m.method)
		}
	}
	copy(buf, out)
	return nil
}

func mergePixelU8(out, above []uint8, ch int, method MergeMethod) {
	switch method {
	case MergeNormal, MergeTop:
		copy(out, above)
	case MergeMultiply:
		for c := 0; c < ch; c++ {
			out[c] = uint8((int(out[c])*int(above[c]) + 127) / 255)
		}
	case MergeAlphaTop:
		aAbove := float64(255)
		if ch == 4 {
			aAbove = float64(above[3])
		}
		aAbove /= 255
		aOut := float64(255)
		if ch == 4 {
			aOut = float64(out[3])
		}
		aOut /= 255
		aFinal := aAbove + aOut*(1-aAbove)
		for c := 0; c < 3 && c < ch; c++ {
			var blended float64
			if aFinal > 0 {
				blended = (aAbove*float64(above[c]) + aOut*float64(out[c])*(1-aAbove)) / aFinal
			}
			out[c] = uint8(blended + 0.5)
		}
		if ch == 4 {
			out[3] = uint8(aFinal*255 + 0.5)
		}
	}
}

func (m *MergeImage) GetLineU16(buf []uint16, y int) error {
	return errUnsupportedSample("MergeImage", "u16")
}

func (m *MergeImage) GetLineF32(buf []float32, y int) error {
	if y < 0 || y >= m.height {
		return errLineOutOfRange("MergeImage", y, m.height)
	}
	ch := m.channels
	w := m.width
	out := make([]float32, w*ch)

	for si, src := range m.sources {
		line := make([]float32, w*ch)
		if err := src.Image.GetLineF32(line, y); err != nil {
			return err
		}
		var maskLine []uint8
		if mk := src.Image.Mask(); mk != nil {
			maskLine = make([]uint8, w)
			_ = mk.GetLineU8(maskLine, y)
		} else {
			maskLine = make([]uint8, w)
			fillU8(maskLine, 255)
		}
		if si == 0 {
			copy(out, line)
			continue
		}
		for x := 0; x < w; x++ {
			if maskLine[x] == 0 {
				continue
			}
			mergePixelF32(out[x*ch:(x+1)*ch], line[x*ch:(x+1)*ch], ch, m.method)
		}
	}
	copy(buf, out)
	return nil
}

func mergePixelF32(out, above []float32, ch int, method MergeMethod) {
	switch method {
	case MergeNormal, MergeTop:
		copy(out, above)
	case MergeMultiply:
		for c := 0; c < ch; c++ {
			out[c] = out[c] * above[c]
		}
	case MergeAlphaTop:
		copy(out, above)
	}
}
