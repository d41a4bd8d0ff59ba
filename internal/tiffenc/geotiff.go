package tiffenc

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rok4/pyramid-core/internal/crs"
	"github.com/rok4/pyramid-core/internal/rerr"
)

// geoKeyBuilder accumulates GeoKeyDirectory 4-uint16 tuples in the order
// the original inserts them: a version header tuple, one tuple per key,
// and a trailing zero tuple whose presence and NumberOfKeys arithmetic
// mirror the original byte-for-byte.
type geoKeyBuilder struct {
	entries [][4]uint16
}

func (g *geoKeyBuilder) add(key, location, count, value uint16) {
	g.entries = append(g.entries, [4]uint16{key, location, count, value})
}

// geoDoubleParams accumulates the GeoDoubleParamsTag payload. nextOffset
// must be read before append, matching the original's "index recorded,
// then appended" ordering.
type geoDoubleParams struct {
	values []float64
}

func (g *geoDoubleParams) nextOffset() uint16 { return uint16(len(g.values)) }
func (g *geoDoubleParams) append(v float64)   { g.values = append(g.values, v) }

// projParam names one proj4 parameter and the GeoTIFF key it feeds.
type projParam struct {
	proj string
	tag  uint16
}

// projParams is a projection's ProjCoordTransGeoKey value plus the list of
// proj4 parameters (in the order the original walks them) that become
// GeoDoubleParams entries, transcribed from TiffHeader.h's ProjParams
// tables.
type projParams struct {
	coordTrans uint16
	params     []projParam
}

var (
	lcc1SP = projParams{9, []projParam{{"lon_0", 3080}, {"lat_1", 3081}, {"x_0", 3082}, {"y_0", 3083}, {"k_0", 3092}, {"k", 3092}}}
	lcc2SP = projParams{8, []projParam{{"lat_1", 3078}, {"lat_2", 3079}, {"lon_0", 3084}, {"lat_0", 3085}, {"x_0", 3086}, {"y_0", 3087}}}
	merc1SP = projParams{7, []projParam{{"lon_0", 3080}, {"x_0", 3082}, {"y_0", 3083}, {"k_0", 3092}, {"k", 3092}}}
	aea    = projParams{11, []projParam{{"lat_1", 3078}, {"lat_2", 3079}, {"lon_0", 3080}, {"lat_0", 3081}, {"x_0", 3082}, {"y_0", 3083}}}
	aeqd   = projParams{12, []projParam{{"x_0", 3082}, {"y_0", 3083}, {"lon_0", 3088}, {"lat_0", 3089}}}
	cass   = projParams{18, []projParam{{"x_0", 3082}, {"y_0", 3083}, {"lon_0", 3080}, {"lat_0", 3081}}}
	cea    = projParams{28, []projParam{{"x_0", 3082}, {"y_0", 3083}, {"lon_0", 3080}, {"lat_ts", 3078}}}
	eqdc   = projParams{13, []projParam{{"x_0", 3082}, {"y_0", 3083}, {"lat_1", 3078}, {"lat_2", 3079}, {"lon_0", 3080}, {"lat_0", 3081}}}
	eqc    = projParams{17, []projParam{{"x_0", 3082}, {"y_0", 3083}, {"lon_0", 3088}, {"lat_ts", 3089}}}
	tmerc  = projParams{1, []projParam{{"x_0", 3082}, {"y_0", 3083}, {"lon_0", 3080}, {"lat_0", 3081}, {"k", 3092}, {"k_0", 3092}}}
	gnom   = projParams{19, []projParam{{"x_0", 3082}, {"y_0", 3083}, {"lon_0", 3088}, {"lat_0", 3089}}}
	omerc  = projParams{3, []projParam{{"x_0", 3082}, {"y_0", 3083}, {"lonc", 3088}, {"lat_0", 3089}, {"k_0", 3093}, {"k", 3093}, {"alpha", 3094}}}
	laea   = projParams{10, []projParam{{"x_0", 3082}, {"y_0", 3083}, {"lon_0", 3088}, {"lat_0", 3089}}}
	mill   = projParams{20, []projParam{{"x_0", 3082}, {"y_0", 3083}, {"lon_0", 3088}, {"lat_0", 3089}}}
	sterea = projParams{16, []projParam{{"x_0", 3082}, {"y_0", 3083}, {"lon_0", 3080}, {"lat_0", 3081}, {"k_0", 3092}, {"k", 3092}}}
	ortho  = projParams{21, []projParam{{"x_0", 3082}, {"y_0", 3083}, {"lon_0", 3088}, {"lat_0", 3089}}}
	poly   = projParams{22, []projParam{{"x_0", 3082}, {"y_0", 3083}, {"lon_0", 3080}, {"lat_0", 3081}}}
	robin  = projParams{23, []projParam{{"x_0", 3082}, {"y_0", 3083}, {"lon_0", 3088}}}
	sinu   = projParams{24, []projParam{{"x_0", 3082}, {"y_0", 3083}, {"lon_0", 3088}}}
	stere  = projParams{14, []projParam{{"x_0", 3082}, {"y_0", 3083}, {"lon_0", 3088}, {"lat_0", 3089}}}
	vandg  = projParams{25, []projParam{{"x_0", 3082}, {"y_0", 3083}, {"lon_0", 3088}}}
)

// projParamsFor resolves a proj4 projection name to its GeoTIFF parameter
// table. "lcc" picks the 1SP or 2SP form depending on whether lat_2 is
// present, the way the original does. "utm" is handled separately by its
// caller and never reaches here.
func projParamsFor(name string, hasLat2 bool) *projParams {
	switch name {
	case "lcc":
		if hasLat2 {
			return &lcc2SP
		}
		return &lcc1SP
	case "aea":
		return &aea
	case "aeqd":
		return &aeqd
	case "cass":
		return &cass
	case "cea":
		return &cea
	case "eqdc":
		return &eqdc
	case "eqc":
		return &eqc
	case "tmerc":
		return &tmerc
	case "gnom":
		return &gnom
	case "omerc":
		return &omerc
	case "laea":
		return &laea
	case "merc":
		return &merc1SP
	case "mill":
		return &mill
	case "sterea":
		return &sterea
	case "ortho":
		return &ortho
	case "poly":
		return &poly
	case "stere":
		return &stere
	case "robin":
		return &robin
	case "sinu":
		return &sinu
	case "vandg":
		return &vandg
	}
	return nil
}

func parseProjFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v, err == nil
}

// InsertGeoTags splices GeoTIFF tags (ModelPixelScale, ModelTiepoint,
// GeoKeyDirectory, GeoDoubleParams, GeoAsciiParams, a nodata value as
// ASCII) into a plain TIFF header built by BuildHeader, following
// http://geotiff.maptools.org/spec/geotiff6.html the way the original
// does: six new IFD entries spliced right after the existing tag table,
// their variable-length payloads appended at the end of the header, and
// every pointer-valued existing tag's offset bumped by the splice size.
func InsertGeoTags(header []byte, resX, resY, bboxXMin, bboxYMax float64, c *crs.CRS, nodata int) ([]byte, error) {
	projName := c.ProjParam("proj")
	if projName == "" {
		return nil, rerr.Wrap(rerr.Projection, "tiffenc: crs %q carries no proj4 projection name", c.CanonicalCode)
	}

	keys := &geoKeyBuilder{}
	doubles := &geoDoubleParams{}
	ascii := ""

	keys.add(1, 1, 0, 0)

	if projName == "longlat" {
		keys.add(1024, 0, 1, 2)
	} else {
		keys.add(1024, 0, 1, 1)
	}
	keys.add(1025, 0, 1, 1)

	keys.add(1026, 34737, uint16(len(c.CanonicalCode)+1), uint16(len(ascii)))
	ascii += c.CanonicalCode + "|"

	keys.add(2048, 0, 1, 32767)
	keys.add(2050, 0, 1, 32767)
	keys.add(2051, 0, 1, 32767)
	keys.add(2052, 0, 1, 9001)
	keys.add(2054, 0, 1, 9102)
	keys.add(2056, 0, 1, 32767)

	if v, ok := parseProjFloat(c.ProjParam("a")); ok {
		keys.add(2057, 34736, 1, doubles.nextOffset())
		doubles.append(v)
	}
	if v, ok := parseProjFloat(c.ProjParam("b")); ok {
		keys.add(2058, 34736, 1, doubles.nextOffset())
		doubles.append(v)
	}
	if v, ok := parseProjFloat(c.ProjParam("rf")); ok {
		keys.add(2059, 34736, 1, doubles.nextOffset())
		doubles.append(v)
	}
	if v, ok := parseProjFloat(c.ProjParam("pm")); ok {
		keys.add(2061, 34736, 1, doubles.nextOffset())
		doubles.append(v)
	}
	if tw := c.ProjParam("towgs84"); tw != "" {
		parts := strings.Split(tw, ",")
		if len(parts) != 3 && len(parts) != 7 {
			return nil, rerr.Wrap(rerr.Projection, "tiffenc: towgs84 %q has %d elements, want 3 or 7", tw, len(parts))
		}
		keys.add(2062, 34736, uint16(len(parts)), doubles.nextOffset())
		for _, p := range parts {
			v, ok := parseProjFloat(p)
			if !ok {
				return nil, rerr.Wrap(rerr.Projection, "tiffenc: towgs84 element %q is not numeric", p)
			}
			doubles.append(v)
		}
	}

	if projName != "longlat" {
		keys.add(3072, 0, 1, 32767)
		keys.add(3074, 0, 1, 32767)

		if projName == "utm" {
			keys.add(3075, 0, 1, tmerc.coordTrans)
			keys.add(3076, 0, 1, 9001)

			keys.add(3081, 34736, 1, doubles.nextOffset())
			doubles.append(0.0)

			if zoneStr := c.ProjParam("zone"); zoneStr != "" {
				zone, ok := parseProjFloat(zoneStr)
				if !ok {
					return nil, rerr.Wrap(rerr.Projection, "tiffenc: utm zone %q is not numeric", zoneStr)
				}
				keys.add(3080, 34736, 1, doubles.nextOffset())
				doubles.append(zone*6 - 183)
			}

			keys.add(3082, 34736, 1, doubles.nextOffset())
			doubles.append(500000.0)

			switch {
			case c.HasProjParam("south"):
				keys.add(3083, 34736, 1, doubles.nextOffset())
				doubles.append(10000000.0)
			case c.HasProjParam("north"):
				keys.add(3083, 34736, 1, doubles.nextOffset())
				doubles.append(0.0)
			default:
				return nil, rerr.Wrap(rerr.Projection, "tiffenc: utm crs %q names neither south nor north hemisphere", c.CanonicalCode)
			}

			keys.add(3092, 34736, 1, doubles.nextOffset())
			doubles.append(0.9996)
		} else {
			pp := projParamsFor(projName, c.ProjParam("lat_2") != "")
			if pp == nil {
				return nil, rerr.Wrap(rerr.Projection, "tiffenc: projection %q has no GeoTIFF ProjCoordTrans mapping", projName)
			}
			keys.add(3075, 0, 1, pp.coordTrans)
			keys.add(3076, 0, 1, 9001)
			for _, p := range pp.params {
				raw := c.ProjParam(p.proj)
				if raw == "" {
					continue
				}
				v, ok := parseProjFloat(raw)
				if !ok {
					return nil, rerr.Wrap(rerr.Projection, "tiffenc: parameter %s=%q is not numeric", p.proj, raw)
				}
				keys.add(p.tag, 34736, 1, doubles.nextOffset())
				doubles.append(v)
			}
		}
	}

	keys.add(0, 0, 0, 0)
	keys.entries[0][3] = uint16(len(keys.entries) - 2)

	nodataAscii := fmt.Sprintf(" %d", nodata)

	oldNbTag := binary.LittleEndian.Uint16(header[8:10])
	baseOffset := 10 + 12*int(oldNbTag)
	if baseOffset > len(header) {
		return nil, rerr.Wrap(rerr.Consistency, "tiffenc: header too short for %d IFD entries", oldNbTag)
	}

	out := make([]byte, baseOffset)
	copy(out, header[:baseOffset])
	binary.LittleEndian.PutUint16(out[8:10], oldNbTag+6)

	const geoHeaderPartSize = 72
	for i := 0; i < int(oldNbTag); i++ {
		countLow := out[10+12*i+4]
		if countLow != 1 {
			valOff := 10 + 12*i + 8
			old := binary.LittleEndian.Uint32(out[valOff:])
			binary.LittleEndian.PutUint32(out[valOff:], old+geoHeaderPartSize)
		}
	}

	geoTagsStart := len(out)
	out = append(out, geoTIFFHeaderPart...)
	out = append(out, header[baseOffset:]...)

	// ModelPixelScaleTag
	binary.LittleEndian.PutUint32(out[geoTagsStart+8:], uint32(len(out)))
	out = appendFloat64(out, resX)
	out = appendFloat64(out, resY)
	out = appendFloat64(out, 0.0)

	// ModelTiepointTag
	binary.LittleEndian.PutUint32(out[geoTagsStart+20:], uint32(len(out)))
	out = appendFloat64(out, 0.0)
	out = appendFloat64(out, 0.0)
	out = appendFloat64(out, 0.0)
	out = appendFloat64(out, bboxXMin)
	out = appendFloat64(out, bboxYMax)
	out = appendFloat64(out, 0.0)

	// GeoKeyDirectoryTag
	binary.LittleEndian.PutUint32(out[geoTagsStart+28:], uint32(len(keys.entries)*4))
	binary.LittleEndian.PutUint32(out[geoTagsStart+32:], uint32(len(out)))
	for _, e := range keys.entries {
		for _, v := range e {
			out = appendUint16(out, v)
		}
	}

	// GeoDoubleParamsTag
	binary.LittleEndian.PutUint32(out[geoTagsStart+40:], uint32(len(doubles.values)))
	binary.LittleEndian.PutUint32(out[geoTagsStart+44:], uint32(len(out)))
	for _, v := range doubles.values {
		out = appendFloat64(out, v)
	}

	// GeoAsciiParamsTag
	binary.LittleEndian.PutUint32(out[geoTagsStart+52:], uint32(len(ascii)+1))
	binary.LittleEndian.PutUint32(out[geoTagsStart+56:], uint32(len(out)))
	out = append(out, []byte(ascii)...)
	out = append(out, 0)

	// NodataAsciiParamsTag
	binary.LittleEndian.PutUint32(out[geoTagsStart+64:], uint32(len(nodataAscii)+1))
	binary.LittleEndian.PutUint32(out[geoTagsStart+68:], uint32(len(out)))
	out = append(out, []byte(nodataAscii)...)
	out = append(out, 0)

	out = append(out, 0)

	binary.LittleEndian.PutUint32(out[offsetStripOffsetValue:], uint32(len(out)))

	return out, nil
}

func appendFloat64(buf []byte, v float64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	return append(buf, b[:]...)
}

func appendUint16(buf []byte, v uint16) []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return append(buf, b[:]...)
}
