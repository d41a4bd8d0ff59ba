package raster

// ConvertMode selects the channel-count adaptation a PixelConverter
// performs. spec.md §9's "Pixel converters" design note asks for this to
// be "an associated component rather than inlining branches in every
// operator" — a decorator an encoder or merge stage reaches for only
// when its declared channel count does not already match its source.
type ConvertMode int

const (
	// ConvertGrayToRGB broadcasts a 1-channel source into 3 identical
	// channels.
	ConvertGrayToRGB ConvertMode = iota
	// ConvertAddOpaqueAlpha appends a constant 255 alpha channel to a
	// 3-channel source.
	ConvertAddOpaqueAlpha
	// ConvertDropAlpha discards a 4-channel source's alpha channel.
	ConvertDropAlpha
)

// PixelConverter adapts a source's channel count without the source
// itself needing to know about the adaptation.
type PixelConverter struct {
	base
	source Image
	mode   ConvertMode
}

// NewPixelConverter validates source's channel count against mode and
// wraps it.
func NewPixelConverter(source Image, mode ConvertMode) (*PixelConverter, error) {
	var outCh int
	switch mode {
	case ConvertGrayToRGB:
		if source.Channels() != 1 {
			return nil, errIncompatible("PixelConverter: GrayToRGB requires a 1-channel source")
		}
		outCh = 3
	case ConvertAddOpaqueAlpha:
		if source.Channels() != 3 {
			return nil, errIncompatible("PixelConverter: AddOpaqueAlpha requires a 3-channel source")
		}
		outCh = 4
	case ConvertDropAlpha:
		if source.Channels() != 4 {
			return nil, errIncompatible("PixelConverter: DropAlpha requires a 4-channel source")
		}
		outCh = 3
	default:
		return nil, errIncompatible("PixelConverter: unknown mode")
	}
	return &PixelConverter{
		base:   newBase(source.Width(), source.Height(), outCh, source.BBox(), source.CRS()),
		source: source,
		mode:   mode,
	}, nil
}

func (c *PixelConverter) Mask() Image { return c.source.Mask() }

func (c *PixelConverter) GetLineU8(buf []uint8, y int) error {
	if y < 0 || y >= c.height {
		return errLineOutOfRange("PixelConverter", y, c.height)
	}
	srcCh := c.source.Channels()
	src := make([]uint8, c.width*srcCh)
	if err := c.source.GetLineU8(src, y); err != nil {
		return err
	}
	for x := 0; x < c.width; x++ {
		in := src[x*srcCh : (x+1)*srcCh]
		out := buf[x*c.channels : (x+1)*c.channels]
		switch c.mode {
		case ConvertGrayToRGB:
			out[0], out[1], out[2] = in[0], in[0], in[0]
		case ConvertAddOpaqueAlpha:
			copy(out[:3], in[:3])
			out[3] = 255
		case ConvertDropAlpha:
			copy(out[:3], in[:3])
		}
	}
	return nil
}

func (c *PixelConverter) GetLineU16(buf []uint16, y int) error {
	return errUnsupportedSample("PixelConverter", "u16")
}

func (c *PixelConverter) GetLineF32(buf []float32, y int) error {
	return errUnsupportedSample("PixelConverter", "f32")
}
