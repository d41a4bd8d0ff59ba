package style

import "testing"

func buildTestPalette(t *testing.T, continuous bool) *Palette {
	t.Helper()
	p := NewPalette(continuous, false)
	p.AddStop(0, 0, 0, 0, 255)
	p.AddStop(100, 255, 255, 255, 255)
	p.SetNoAlphaColor(128, 128, 128, 255)
	if err := p.Finalize(); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestPaletteContinuousInterpolates(t *testing.T) {
	p := buildTestPalette(t, true)
	r, g, b, _, _, ok := p.Lookup(50)
	if !ok {
		t.Fatal("expected a hit within range")
	}
	if r != 128 || g != 128 || b != 128 {
		t.Fatalf("expected midpoint gray, got (%d,%d,%d)", r, g, b)
	}
}

func TestPaletteStepwiseHoldsLowerStop(t *testing.T) {
	p := buildTestPalette(t, false)
	r, _, _, _, _, ok := p.Lookup(50)
	if !ok {
		t.Fatal("expected a hit")
	}
	if r != 0 {
		t.Fatalf("expected stepwise lookup to hold the lower stop (0), got %d", r)
	}
}

func TestPaletteRejectsDuplicateStops(t *testing.T) {
	p := NewPalette(true, false)
	p.AddStop(10, 0, 0, 0, 255)
	p.AddStop(10, 1, 1, 1, 255)
	if err := p.Finalize(); err == nil {
		t.Fatal("expected duplicate-stop rejection")
	}
}

func TestStyleValidateRejectsMultipleShading(t *testing.T) {
	s := &Style{
		ID:        "dual",
		Hillshade: &HillshadeParams{ZenithDeg: 45, AzimuthDeg: 315, ZFactor: 1},
		Slope:     &SlopeParams{},
	}
	if err := s.Validate(); err == nil {
		t.Fatal("expected rejection of multiple active shading modes")
	}
}

func TestBookRegisterAndGet(t *testing.T) {
	b := GetBook()
	s := &Style{ID: "test-style-book"}
	if err := b.Register(s); err != nil {
		t.Fatal(err)
	}
	defer b.Remove("test-style-book")

	if got := b.Get("test-style-book"); got != s {
		t.Fatalf("expected to retrieve the registered style, got %v", got)
	}
	if got := b.Get("does-not-exist"); got != nil {
		t.Fatalf("expected nil for unregistered style, got %v", got)
	}
}

func TestPreviewPNGProducesBytes(t *testing.T) {
	p := buildTestPalette(t, true)
	data, err := p.PreviewPNG()
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty PNG preview")
	}
}
