package raster

import "github.com/rok4/pyramid-core/internal/geom"

// MirrorSide selects which edge a MirrorImage reflects outward from.
type MirrorSide int

const (
	MirrorTop MirrorSide = iota
	MirrorRight
	MirrorBottom
	MirrorLeft
)

// MirrorImage reflects a k-pixel band of the source back out past one
// of its edges (spec.md §4.5.3), used to pad kernel support beyond an
// image's border. Requires k <= min(width, height).
type MirrorImage struct {
	base
	source Image
	side   MirrorSide
	k      int
}

// NewMirrorImage builds the reflected band of width/height k pixels
// along side.
func NewMirrorImage(source Image, side MirrorSide, k int) (*MirrorImage, error) {
	if k <= 0 || k > source.Width() || k > source.Height() {
		return nil, errIncompatible("MirrorImage: k out of range")
	}
	bbox := source.BBox()
	resX, resY := source.ResolutionX(), source.ResolutionY()
	w, h := source.Width(), source.Height()
	var outW, outH int
	var outBox geom.Box[float64]

	switch side {
	case MirrorTop:
		outW, outH = w, k
		outBox = geom.New(bbox.XMin, bbox.YMax, bbox.XMax, bbox.YMax+float64(k)*resY, bbox.CRS)
	case MirrorBottom:
		outW, outH = w, k
		outBox = geom.New(bbox.XMin, bbox.YMin-float64(k)*resY, bbox.XMax, bbox.YMin, bbox.CRS)
	case MirrorLeft:
		outW, outH = k, h
		outBox = geom.New(bbox.XMin-float64(k)*resX, bbox.YMin, bbox.XMin, bbox.YMax, bbox.CRS)
	case MirrorRight:
		outW, outH = k, h
		outBox = geom.New(bbox.XMax, bbox.YMin, bbox.XMax+float64(k)*resX, bbox.YMax, bbox.CRS)
	}

	return &MirrorImage{
		base:   newBase(outW, outH, source.Channels(), outBox, source.CRS()),
		source: source,
		side:   side,
		k:      k,
	}, nil
}

// sourceLineIndex returns the source line mirrored band line y reads
// from, for top/bottom sides (left/right reflect columns instead).
func (m *MirrorImage) sourceLineIndex(y int) int {
	switch m.side {
	case MirrorTop:
		return m.k - 1 - y
	case MirrorBottom:
		return m.source.Height() - 1 - y
	default:
		return y
	}
}

func (m *MirrorImage) GetLineU8(buf []uint8, y int) error {
	if y < 0 || y >= m.height {
		return errLineOutOfRange("MirrorImage", y, m.height)
	}
	ch := m.channels
	if m.side == MirrorTop || m.side == MirrorBottom {
		sy := m.sourceLineIndex(y)
		return m.source.GetLineU8(buf, sy)
	}
	// Left/right: reflect columns of the same source line y.
	line := make([]uint8, m.source.Width()*ch)
	if err := m.source.GetLineU8(line, y); err != nil {
		return err
	}
	for x := 0; x < m.width; x++ {
		var sx int
		if m.side == MirrorLeft {
			sx = m.k - 1 - x
		} else {
			sx = m.source.Width() - 1 - x
		}
		copy(buf[x*ch:(x+1)*ch], line[sx*ch:(sx+1)*ch])
	}
	return nil
}

func (m *MirrorImage) GetLineU16(buf []uint16, y int) error {
	return errUnsupportedSample("MirrorImage", "u16")
}

func (m *MirrorImage) GetLineF32(buf []float32, y int) error {
	if y < 0 || y >= m.height {
		return errLineOutOfRange("MirrorImage", y, m.height)
	}
	ch := m.channels
	if m.side == MirrorTop || m.side == MirrorBottom {
		sy := m.sourceLineIndex(y)
		return m.source.GetLineF32(buf, sy)
	}
	line := make([]float32, m.source.Width()*ch)
	if err := m.source.GetLineF32(line, y); err != nil {
		return err
	}
	for x := 0; x < m.width; x++ {
		var sx int
		if m.side == MirrorLeft {
			sx = m.k - 1 - x
		} else {
			sx = m.source.Width() - 1 - x
		}
		copy(buf[x*ch:(x+1)*ch], line[sx*ch:(sx+1)*ch])
	}
	return nil
}
