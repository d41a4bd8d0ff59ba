// Package crs wraps coordinate reference systems, generalizing the
// teacher's internal/coord package (WGS84Identity, WebMercatorProj,
// SwissLV95 — each a to/from-WGS84 Projection) into the spec's general
// CRS-to-CRS Projector contract, pivoting through WGS84 the way the
// teacher's own MergedBoundsWGS84 already does for mixed-CRS sources.
package crs

import "math"

// Projection converts between a single CRS and WGS84 longitude/latitude.
// This is the out-of-scope "geodetic library" contract spec.md §1 treats
// as an external collaborator; the registry below ships the three
// projections the teacher's own internal/coord package implements.
type Projection interface {
	ToWGS84(x, y float64) (lon, lat float64)
	FromWGS84(lon, lat float64) (x, y float64)
	EPSG() int
}

// WGS84Identity is a no-op projection for data already in EPSG:4326.
type WGS84Identity struct{}

func (WGS84Identity) ToWGS84(x, y float64) (float64, float64)   { return x, y }
func (WGS84Identity) FromWGS84(lon, lat float64) (float64, float64) { return lon, lat }
func (WGS84Identity) EPSG() int                                  { return 4326 }

// WebMercator implements EPSG:3857.
type WebMercator struct{}

const (
	earthCircumference = 40075016.685578488
	originShift        = earthCircumference / 2.0
)

func (WebMercator) EPSG() int { return 3857 }

func (WebMercator) ToWGS84(x, y float64) (lon, lat float64) {
	lon = (x / originShift) * 180.0
	lat = (y / originShift) * 180.0
	lat = 180.0 / math.Pi * (2.0*math.Atan(math.Exp(lat*math.Pi/180.0)) - math.Pi/2.0)
	return
}

func (WebMercator) FromWGS84(lon, lat float64) (x, y float64) {
	x = lon * originShift / 180.0
	y = math.Log(math.Tan((90.0+lat)*math.Pi/360.0)) / (math.Pi / 180.0)
	y = y * originShift / 180.0
	return
}

// SwissLV95 implements EPSG:2056 (CH1903+ / LV95) via swisstopo's
// published polynomial approximation, accurate to ~1 meter.
type SwissLV95 struct{}

func (SwissLV95) EPSG() int { return 2056 }

func (SwissLV95) ToWGS84(easting, northing float64) (lon, lat float64) {
	y := (easting - 2_600_000) / 1_000_000
	x := (northing - 1_200_000) / 1_000_000

	lonSec := 2.6779094 + 4.728982*y + 0.791484*y*x + 0.1306*y*x*x - 0.0436*y*y*y
	latSec := 16.9023892 + 3.238272*x - 0.270978*y*y - 0.002528*x*x - 0.0447*y*y*x - 0.0140*x*x*x

	lon = lonSec * 100.0 / 36.0
	lat = latSec * 100.0 / 36.0
	return
}

func (SwissLV95) FromWGS84(lon, lat float64) (easting, northing float64) {
	phiSec := lat * 3600
	lambdaSec := lon * 3600

	phiAux := (phiSec - 169028.66) / 10000
	lambdaAux := (lambdaSec - 26782.5) / 10000

	easting = 2_600_072.37 +
		211_455.93*lambdaAux -
		10_938.51*lambdaAux*phiAux -
		0.36*lambdaAux*phiAux*phiAux -
		44.54*lambdaAux*lambdaAux*lambdaAux

	northing = 1_200_147.07 +
		308_807.95*phiAux +
		3_745.25*lambdaAux*lambdaAux +
		76.63*phiAux*phiAux -
		194.56*lambdaAux*lambdaAux*phiAux +
		119.79*phiAux*phiAux*phiAux
	return
}
