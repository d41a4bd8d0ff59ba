package crs

import (
	"math"
	"strings"
	"sync"

	"github.com/rok4/pyramid-core/internal/geom"
	"github.com/rok4/pyramid-core/internal/rerr"
)

// NoProjCode marks a CRS whose requested code could not be resolved
// against the registry, mirroring NO_PROJ_CODE in the source library.
const NoProjCode = "NO_PROJ_CODE"

// CRS is a resolved coordinate reference system: the code as the client
// presented it, the canonical code the registry resolved it to, the
// projection handle that implements it, and its definition area expressed
// in its own units. A CRS with Undefined true carries a nil Handle and
// must never be passed to Transform.
type CRS struct {
	RequestCode   string
	CanonicalCode string
	Handle        Projection
	DefinitionArea geom.Box[float64]
	Undefined     bool

	// Proj holds the proj4-style key/value parameters describing this CRS's
	// projection (e.g. "proj", "lon_0", "a", "b", "rf"), the way the source
	// library's CRS exposes get_proj_param/test_proj_param for GeoTIFF key
	// synthesis. Nil for a CRS whose projection has no such description.
	Proj map[string]string
}

// ProjParam returns the proj4 parameter named key, or "" if c.Proj is nil or
// the key is absent.
func (c *CRS) ProjParam(key string) string {
	if c == nil || c.Proj == nil {
		return ""
	}
	return c.Proj[key]
}

// HasProjParam reports whether key is present in c.Proj, for boolean flags
// like "south"/"north" that carry no value.
func (c *CRS) HasProjParam(key string) bool {
	if c == nil || c.Proj == nil {
		return false
	}
	_, ok := c.Proj[key]
	return ok
}

type registryEntry struct {
	build func(requestCode string) *CRS
}

var (
	registryOnce sync.Once
	reg          *registry
)

type registry struct {
	mu      sync.RWMutex
	entries map[string]registryEntry
	cache   map[string]*CRS
}

// Registry returns the process-wide CRS registry, built once on first use
// the way the teacher's caches guard their singleton state with sync.Once.
func Registry() *registry {
	registryOnce.Do(func() {
		reg = &registry{
			entries: map[string]registryEntry{
				"EPSG:4326": {build: func(req string) *CRS {
					return &CRS{
						RequestCode:   req,
						CanonicalCode: "EPSG:4326",
						Handle:        WGS84Identity{},
						DefinitionArea: geom.New(-180.0, -90.0, 180.0, 90.0, "EPSG:4326"),
						Proj: map[string]string{
							"proj": "longlat", "a": "6378137", "rf": "298.257223563",
						},
					}
				}},
				"EPSG:3857": {build: func(req string) *CRS {
					return &CRS{
						RequestCode:   req,
						CanonicalCode: "EPSG:3857",
						Handle:        WebMercator{},
						DefinitionArea: geom.New(-originShift, -originShift, originShift, originShift, "EPSG:3857"),
						Proj: map[string]string{
							"proj": "merc", "a": "6378137", "b": "6378137",
							"lon_0": "0", "x_0": "0", "y_0": "0", "k": "1",
						},
					}
				}},
				"EPSG:2056": {build: func(req string) *CRS {
					return &CRS{
						RequestCode:   req,
						CanonicalCode: "EPSG:2056",
						Handle:        SwissLV95{},
						DefinitionArea: geom.New(2485000.0, 1075000.0, 2834000.0, 1299000.0, "EPSG:2056"),
						// "somerc" (Swiss oblique Mercator) has no entry in
						// the GeoTIFF ProjCoordTrans table: InsertGeoTags
						// rejects it rather than guess a substitute.
						Proj: map[string]string{"proj": "somerc"},
					}
				}},
			},
			cache: make(map[string]*CRS),
		}
	})
	return reg
}

// Resolve looks up requestCode (case-insensitive) and returns the CRS,
// building and caching it on first use. An unrecognized code yields a
// CRS with Undefined set and CanonicalCode == NoProjCode, never an error:
// the caller decides whether an undefined CRS is fatal in context.
func (r *registry) Resolve(requestCode string) *CRS {
	key := strings.ToUpper(strings.TrimSpace(requestCode))

	r.mu.RLock()
	if c, ok := r.cache[key]; ok {
		r.mu.RUnlock()
		return c
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.cache[key]; ok {
		return c
	}

	entry, ok := r.entries[key]
	var c *CRS
	if !ok {
		c = &CRS{RequestCode: requestCode, CanonicalCode: NoProjCode, Undefined: true}
	} else {
		c = entry.build(requestCode)
	}
	r.cache[key] = c
	return c
}

// Transform converts (x, y) expressed in from's CRS into to's CRS,
// pivoting through WGS84 as the teacher's MergedBoundsWGS84 does for
// mixed-source pyramids. Returns ok=false if either CRS is undefined or
// the transformed coordinates are not finite numbers; the point is not
// checked against either CRS's DefinitionArea.
func Transform(from, to *CRS, x, y float64) (float64, float64, bool) {
	if from == nil || to == nil || from.Undefined || to.Undefined {
		return 0, 0, false
	}
	if from.CanonicalCode == to.CanonicalCode {
		return x, y, true
	}
	lon, lat := from.Handle.ToWGS84(x, y)
	tx, ty := to.Handle.FromWGS84(lon, lat)
	if math.IsNaN(tx) || math.IsNaN(ty) || math.IsInf(tx, 0) || math.IsInf(ty, 0) {
		return 0, 0, false
	}
	return tx, ty, true
}

// transformer adapts a (from, to) CRS pair into a geom.Projector, letting
// geom.Box.Reproject drive the point sampling without geom importing crs.
type transformer struct {
	From, To *CRS
}

// Transformer returns a geom.Projector for reprojecting boxes from one
// CRS to another.
func Transformer(from, to *CRS) geom.Projector {
	return transformer{From: from, To: to}
}

func (t transformer) Transform(x, y float64) (float64, float64, bool) {
	return Transform(t.From, t.To, x, y)
}

// RequireResolved returns an error wrapping rerr.Projection if c is nil or
// undefined, otherwise nil.
func RequireResolved(c *CRS) error {
	if c == nil || c.Undefined {
		code := "<nil>"
		if c != nil {
			code = c.RequestCode
		}
		return rerr.Wrap(rerr.Projection, "unresolved CRS: %s", code)
	}
	return nil
}
