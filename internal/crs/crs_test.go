package crs

import (
	"math"
	"testing"

	"github.com/rok4/pyramid-core/internal/geom"
)

func TestResolveKnownAndUnknown(t *testing.T) {
	r := Registry()

	c := r.Resolve("epsg:4326")
	if c.Undefined || c.CanonicalCode != "EPSG:4326" {
		t.Fatalf("expected EPSG:4326 to resolve, got %+v", c)
	}

	unknown := r.Resolve("EPSG:99999")
	if !unknown.Undefined || unknown.CanonicalCode != NoProjCode {
		t.Fatalf("expected unresolved CRS, got %+v", unknown)
	}
}

// TestRoundTrip4326To3857 reproduces spec.md §8 scenario 1: the WGS84
// bbox (-180, -85.0511, 180, 85.0511) reprojected to EPSG:3857 should
// land within 0.5m of (±20037508.34, ±20037508.34).
func TestRoundTrip4326To3857(t *testing.T) {
	r := Registry()
	from := r.Resolve("EPSG:4326")
	to := r.Resolve("EPSG:3857")

	b := geom.New(-180.0, -85.0511, 180.0, 85.0511, "EPSG:4326")
	out, ok := b.Reproject(Transformer(from, to), "EPSG:3857", 32)
	if !ok {
		t.Fatal("expected reprojection to succeed")
	}

	const want = 20037508.34
	const tol = 0.5
	if math.Abs(out.XMin-(-want)) > tol || math.Abs(out.XMax-want) > tol {
		t.Fatalf("x extent off: got [%v, %v]", out.XMin, out.XMax)
	}
	if math.Abs(out.YMin-(-want)) > tol || math.Abs(out.YMax-want) > tol {
		t.Fatalf("y extent off: got [%v, %v]", out.YMin, out.YMax)
	}
}

func TestSwissLV95RoundTrip(t *testing.T) {
	r := Registry()
	lv95 := r.Resolve("EPSG:2056")
	wgs84 := r.Resolve("EPSG:4326")

	easting, northing := 2600000.0, 1200000.0
	lon, lat, ok := Transform(lv95, wgs84, easting, northing)
	if !ok {
		t.Fatal("expected forward transform to succeed")
	}

	e2, n2, ok := Transform(wgs84, lv95, lon, lat)
	if !ok {
		t.Fatal("expected inverse transform to succeed")
	}
	if math.Abs(e2-easting) > 1.0 || math.Abs(n2-northing) > 1.0 {
		t.Fatalf("round trip drifted: got (%v, %v) want (%v, %v)", e2, n2, easting, northing)
	}
}

func TestRequireResolved(t *testing.T) {
	r := Registry()
	undefined := r.Resolve("EPSG:0")
	if err := RequireResolved(undefined); err == nil {
		t.Fatal("expected error for undefined CRS")
	}
	defined := r.Resolve("EPSG:4326")
	if err := RequireResolved(defined); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
