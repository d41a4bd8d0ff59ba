package main

import "testing"

func TestParseBBox(t *testing.T) {
	b, err := parseBBox("1,2,3,4", "EPSG:3857")
	if err != nil {
		t.Fatal(err)
	}
	if b.XMin != 1 || b.YMin != 2 || b.XMax != 3 || b.YMax != 4 || b.CRS != "EPSG:3857" {
		t.Fatalf("unexpected bbox: %+v", b)
	}
}

func TestParseBBoxRejectsWrongArity(t *testing.T) {
	if _, err := parseBBox("1,2,3", "EPSG:3857"); err == nil {
		t.Fatal("expected rejection of a 3-value bbox")
	}
}

func TestParseKernelKnownNames(t *testing.T) {
	for _, name := range []string{"nearest", "linear", "cubic", "lanczos2", "lanczos3", "lanczos4"} {
		if _, err := parseKernel(name); err != nil {
			t.Fatalf("kernel %q: %v", name, err)
		}
	}
}

func TestParseKernelRejectsUnknown(t *testing.T) {
	if _, err := parseKernel("bogus"); err == nil {
		t.Fatal("expected rejection of an unknown kernel name")
	}
}

func TestParseFloatsEmptyIsNil(t *testing.T) {
	v, err := parseFloats("")
	if err != nil {
		t.Fatal(err)
	}
	if v != nil {
		t.Fatalf("expected nil, got %v", v)
	}
}

func TestParseFloatsParsesCSV(t *testing.T) {
	v, err := parseFloats("1, 2.5, -3")
	if err != nil {
		t.Fatal(err)
	}
	if len(v) != 3 || v[0] != 1 || v[1] != 2.5 || v[2] != -3 {
		t.Fatalf("unexpected values: %v", v)
	}
}

func TestBuildStyleNoneReturnsNil(t *testing.T) {
	s, err := buildStyle("", false, "")
	if err != nil {
		t.Fatal(err)
	}
	if s != nil {
		t.Fatal("expected nil style when no palette/hillshade given")
	}
}

func TestBuildStylePalette(t *testing.T) {
	s, err := buildStyle("0:0:0:0,255:255:255:255", false, "")
	if err != nil {
		t.Fatal(err)
	}
	if s == nil || s.Palette == nil {
		t.Fatal("expected a palette style")
	}
}

func TestBuildStyleHillshade(t *testing.T) {
	s, err := buildStyle("", false, "45:315:1")
	if err != nil {
		t.Fatal(err)
	}
	if s == nil || s.Hillshade == nil {
		t.Fatal("expected a hillshade style")
	}
}

func TestBuildStyleRejectsMalformedHillshade(t *testing.T) {
	if _, err := buildStyle("", false, "45:315"); err == nil {
		t.Fatal("expected rejection of a 2-field hillshade spec")
	}
}

func TestBuildStyleHillshadeWithShadows(t *testing.T) {
	s, err := buildStyle("", false, "45:315:1:true")
	if err != nil {
		t.Fatal(err)
	}
	if s == nil || s.Hillshade == nil || !s.Hillshade.Shadows {
		t.Fatal("expected a hillshade style with shadows enabled")
	}
}
