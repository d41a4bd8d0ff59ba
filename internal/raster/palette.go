package raster

// Palette is the lookup contract a PaletteImage maps single-channel
// samples through. internal/style.Palette implements this without
// raster importing style, keeping the image-graph leaf layer
// independent of the style/metadata layer above it.
type Palette interface {
	// Lookup returns the RGB(A) color for value v. ok is false when v
	// has no color (source pixel was nodata); hasAlpha reports whether
	// the palette itself carries a 4th (alpha) channel.
	Lookup(v float64) (r, g, b, a uint8, hasAlpha bool, ok bool)
	// NoAlphaColor is the fallback RGB(A) used when the source pixel is
	// nodata and the palette does not discard alpha (spec.md §8 boundary
	// behavior, "PaletteImage no_alpha fallback color").
	NoAlphaColor() (r, g, b, a uint8)
	// HasAlpha reports whether this palette's output carries alpha,
	// fixing PaletteImage's channel count at construction.
	HasAlpha() bool
}

// PaletteImage wraps a single-channel float source and maps each sample
// to RGB or RGBA via a Palette (spec.md §4.5.4).
type PaletteImage struct {
	base
	source  Image
	palette Palette
}

// NewPaletteImage builds a PaletteImage over source (channels == 1).
func NewPaletteImage(source Image, palette Palette) (*PaletteImage, error) {
	if source.Channels() != 1 {
		return nil, errIncompatible("PaletteImage: source must be single-channel")
	}
	ch := 3
	if palette.HasAlpha() {
		ch = 4
	}
	return &PaletteImage{
		base:    newBase(source.Width(), source.Height(), ch, source.BBox(), source.CRS()),
		source:  source,
		palette: palette,
	}, nil
}

func (p *PaletteImage) GetLineU8(buf []uint8, y int) error {
	if y < 0 || y >= p.height {
		return errLineOutOfRange("PaletteImage", y, p.height)
	}
	srcLine := make([]float32, p.source.Width())
	if err := p.source.GetLineF32(srcLine, y); err == nil {
		return p.fillFromF32(buf, srcLine, y)
	}
	u8Line := make([]uint8, p.source.Width())
	if err := p.source.GetLineU8(u8Line, y); err != nil {
		return err
	}
	f32Line := make([]float32, len(u8Line))
	for i, v := range u8Line {
		f32Line[i] = float32(v)
	}
	return p.fillFromF32(buf, f32Line, y)
}

func (p *PaletteImage) fillFromF32(buf []uint8, src []float32, y int) error {
	ch := p.channels
	var maskLine []uint8
	if mk := p.source.Mask(); mk != nil {
		maskLine = make([]uint8, p.width)
		_ = mk.GetLineU8(maskLine, y)
	}
	for x := 0; x < p.width; x++ {
		masked := maskLine != nil && maskLine[x] == 0
		r, g, b, a, _, ok := p.palette.Lookup(float64(src[x]))
		if !ok || masked {
			r, g, b, a = p.palette.NoAlphaColor()
		}
		buf[x*ch+0] = r
		buf[x*ch+1] = g
		buf[x*ch+2] = b
		if ch == 4 {
			buf[x*ch+3] = a
		}
	}
	return nil
}

func (p *PaletteImage) GetLineU16(buf []uint16, y int) error {
	return errUnsupportedSample("PaletteImage", "u16")
}

func (p *PaletteImage) GetLineF32(buf []float32, y int) error {
	return errUnsupportedSample("PaletteImage", "f32")
}
