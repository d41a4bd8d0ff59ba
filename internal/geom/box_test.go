package geom

import (
	"math"
	"testing"
)

func TestIntersectionUnion(t *testing.T) {
	a := New(0.0, 0.0, 10.0, 10.0, "EPSG:4326")
	b := New(5.0, 5.0, 15.0, 15.0, "EPSG:4326")

	inter := a.GetIntersection(b)
	if inter.XMin != 5 || inter.YMin != 5 || inter.XMax != 10 || inter.YMax != 10 {
		t.Fatalf("unexpected intersection: %+v", inter)
	}

	union := a.GetUnion(b)
	if union.XMin != 0 || union.YMin != 0 || union.XMax != 15 || union.YMax != 15 {
		t.Fatalf("unexpected union: %+v", union)
	}
}

func TestPhaseSum(t *testing.T) {
	b := New(12.3, 0.0, 112.3, 0.0, "EPSG:4326")
	res := 10.0
	px := b.PhaseX(res)
	widthPhase := math.Mod((float64(b.Width()))/res, 1)
	// spec.md §8: phase_xmin + phase_xmax differs from (width/res mod 1) by at most 0.001
	phaseXmax := math.Mod(float64(b.XMax)/res, 1)
	if diff := math.Abs((px + phaseXmax) - widthPhase); diff > 0.001 && math.Abs(diff-1) > 0.001 {
		t.Fatalf("phase invariant violated: px=%v phaseXmax=%v widthPhase=%v", px, phaseXmax, widthPhase)
	}
}

type identityProjector struct{}

func (identityProjector) Transform(x, y float64) (float64, float64, bool) { return x, y, true }

func TestReprojectIdentitySamplesEnvelope(t *testing.T) {
	b := New(-10.0, -5.0, 10.0, 5.0, "EPSG:4326")
	out, ok := b.Reproject(identityProjector{}, "EPSG:4326", 16)
	if !ok {
		t.Fatal("expected successful reprojection")
	}
	if out.XMin != -10 || out.XMax != 10 || out.YMin != -5 || out.YMax != 5 {
		t.Fatalf("identity reprojection should preserve bounds, got %+v", out)
	}
}

func TestHasNullArea(t *testing.T) {
	b := New(0.0, 0.0, 0.0, 10.0, "EPSG:4326")
	if !b.HasNullArea() {
		t.Fatal("expected null area for zero-width box")
	}
}
