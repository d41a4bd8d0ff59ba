// Package style implements the style/palette/shading descriptor layer
// spec.md §3 names ("Style: identifier, human metadata, optional
// palette ... optional hillshade parameters ... optional slope ...
// optional aspect ... rules for nodata translation pre- and
// post-style"), plus a process-wide style book mirroring the CRS
// registry and TMS book's sync.Once singleton pattern.
package style

import (
	"sort"
	"sync"

	"github.com/rok4/pyramid-core/internal/raster"
	"github.com/rok4/pyramid-core/internal/rerr"
)

// Attribute is one entry of a Style's human-metadata bag (spec.md §3
// "human metadata").
type Attribute struct {
	Key   string
	Value string
}

// HillshadeParams configures a raster.ReliefImage. Shadows enables the
// second self-shadow-mask output channel (SPEC_FULL.md §6 Estompage
// supplement).
type HillshadeParams struct {
	ZenithDeg  float64
	AzimuthDeg float64
	ZFactor    float64
	Shadows    bool
}

// SlopeParams configures a raster.SlopeImage.
type SlopeParams struct {
	Algorithm raster.ReliefAlgorithm
	Unit      raster.SlopeUnit
	MaxSlope  float64
	HasMax    bool
}

// AspectParams configures a raster.AspectImage.
type AspectParams struct {
	MinSlope float64
}

// NodataRule renumbers a pre-style or post-style nodata value.
type NodataRule struct {
	Value   float64
	HasRule bool
}

// Style holds an identifier, human metadata, an optional palette, and
// at most one of {hillshade, slope, aspect} — spec.md §3's invariant.
type Style struct {
	ID       string
	Metadata []Attribute

	Palette *Palette

	Hillshade *HillshadeParams
	Slope     *SlopeParams
	Aspect    *AspectParams

	PreNodata  NodataRule
	PostNodata NodataRule
}

// Validate enforces the at-most-one-shading invariant.
func (s *Style) Validate() error {
	active := 0
	if s.Hillshade != nil {
		active++
	}
	if s.Slope != nil {
		active++
	}
	if s.Aspect != nil {
		active++
	}
	if active > 1 {
		return rerr.Wrap(rerr.Config, "style %q: at most one of hillshade/slope/aspect may be active", s.ID)
	}
	return nil
}

// paletteStop is one entry of a Palette's value->color table.
type paletteStop struct {
	value      float64
	r, g, b, a uint8
}

// Palette maps a source sample value to RGB(A), continuous
// (interpolated between adjacent stops) or stepwise (flat between
// stops), per spec.md §3 "value->RGBA lookup, continuous or stepwise in
// both color and alpha" and §3's monotone-lookup invariant.
type Palette struct {
	stops      []paletteStop
	continuous bool
	hasAlpha   bool
	noAlpha    [4]uint8
	hasNoAlpha bool
}

// NewPalette returns an empty Palette; stops are added with AddStop.
// Finalize sorts the stops by value ascending and fails if two stops
// share the same value (breaking monotonicity).
func NewPalette(continuous, hasAlpha bool) *Palette {
	return &Palette{continuous: continuous, hasAlpha: hasAlpha}
}

// AddStop appends a value->color stop. Stops need not be added in
// order; Finalize sorts them.
func (p *Palette) AddStop(value float64, r, g, b, a uint8) {
	p.stops = append(p.stops, paletteStop{value: value, r: r, g: g, b: b, a: a})
}

// SetNoAlphaColor sets the fallback color PaletteImage uses when a
// source pixel is nodata and the palette does not discard alpha
// (spec.md §8 boundary behavior).
func (p *Palette) SetNoAlphaColor(r, g, b, a uint8) {
	p.noAlpha = [4]uint8{r, g, b, a}
	p.hasNoAlpha = true
}

// Finalize sorts stops by value and rejects duplicate values, so Lookup
// can binary-search in O(log n) as spec.md §3 requires.
func (p *Palette) Finalize() error {
	sort.Slice(p.stops, func(i, j int) bool { return p.stops[i].value < p.stops[j].value })
	for i := 1; i < len(p.stops); i++ {
		if p.stops[i].value == p.stops[i-1].value {
			return rerr.Wrap(rerr.Config, "palette: duplicate stop value %v breaks monotone lookup", p.stops[i].value)
		}
	}
	return nil
}

// HasAlpha implements raster.Palette.
func (p *Palette) HasAlpha() bool { return p.hasAlpha }

// NoAlphaColor implements raster.Palette.
func (p *Palette) NoAlphaColor() (r, g, b, a uint8) {
	return p.noAlpha[0], p.noAlpha[1], p.noAlpha[2], p.noAlpha[3]
}

// Lookup implements raster.Palette: O(log n) via sort.Search over the
// sorted stop table.
func (p *Palette) Lookup(v float64) (r, g, b, a uint8, hasAlpha bool, ok bool) {
	n := len(p.stops)
	if n == 0 {
		return 0, 0, 0, 0, p.hasAlpha, false
	}
	i := sort.Search(n, func(i int) bool { return p.stops[i].value >= v })

	if i == 0 {
		s := p.stops[0]
		return s.r, s.g, s.b, s.a, p.hasAlpha, true
	}
	if i == n || p.stops[i].value != v {
		// v falls strictly between stops[i-1] and stops[i] (or past the end).
		if !p.continuous || i == n {
			s := p.stops[i-1]
			return s.r, s.g, s.b, s.a, p.hasAlpha, true
		}
		lo, hi := p.stops[i-1], p.stops[i]
		t := (v - lo.value) / (hi.value - lo.value)
		return lerpColor(lo, hi, t, p.hasAlpha)
	}
	s := p.stops[i]
	return s.r, s.g, s.b, s.a, p.hasAlpha, true
}

func lerpColor(lo, hi paletteStop, t float64, hasAlpha bool) (r, g, b, a uint8, ha bool, ok bool) {
	lerp8 := func(a, b uint8) uint8 { return uint8(float64(a) + t*(float64(b)-float64(a)) + 0.5) }
	r = lerp8(lo.r, hi.r)
	g = lerp8(lo.g, hi.g)
	b = lerp8(lo.b, hi.b)
	a = lerp8(lo.a, hi.a)
	return r, g, b, a, hasAlpha, true
}

// Book is the process-wide style registry (spec.md §3 "style book:
// process-wide, initialized on first use"), mirroring crs.Registry()
// and tms.GetBook().
type Book struct {
	mu      sync.RWMutex
	entries map[string]*Style
}

var (
	bookOnce sync.Once
	book     *Book
)

// GetBook returns the process-wide style book, constructing it on first
// call.
func GetBook() *Book {
	bookOnce.Do(func() {
		book = &Book{entries: make(map[string]*Style)}
	})
	return book
}

// Register adds or replaces a style by ID.
func (b *Book) Register(s *Style) error {
	if err := s.Validate(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[s.ID] = s
	return nil
}

// Get returns the style registered under id, or nil if none.
func (b *Book) Get(id string) *Style {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.entries[id]
}

// Remove deletes a style from the book.
func (b *Book) Remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.entries, id)
}
