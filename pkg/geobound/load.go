package geobound

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/woodlandatlas/woodmap/pkg/errors"
)

// Option configures the boundary loader.
type Option func(*loader)

type loader struct {
	nameField string
	names     []string
	tolerance float64
}

// WithNameField sets the attribute column used to match feature names.
func WithNameField(field string) Option { return func(l *loader) { l.nameField = field } }

// WithNames keeps only features whose name attribute matches one of names.
// Matching is case-insensitive and ignores surrounding whitespace.
func WithNames(names ...string) Option {
	return func(l *loader) { l.names = append(l.names, names...) }
}

// WithTolerance simplifies the merged geometry with the given tolerance
// in input units. Zero disables simplification.
func WithTolerance(tol float64) Option { return func(l *loader) { l.tolerance = tol } }

func newLoader(opts ...Option) *loader {
	l := &loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads a boundary file and merges its polygon features into a Region.
//
// The file format is chosen by extension: .shp for shapefiles, .geojson or
// .json for GeoJSON feature collections. Missing files, undecodable content,
// and inputs without usable polygon geometry all return DATA_LOAD_ERROR.
func Load(path string, opts ...Option) (*Region, error) {
	if err := errors.ValidateBoundaryPath(path); err != nil {
		return nil, err
	}
	l := newLoader(opts...)

	var (
		polys    []geom.Polygon
		features int
		err      error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".shp":
		polys, features, err = l.loadShapefile(path)
	default:
		polys, features, err = l.loadGeoJSON(path)
	}
	if err != nil {
		return nil, err
	}

	if features == 0 {
		if len(l.names) > 0 {
			return nil, errors.New(errors.ErrCodeDataLoad, "%s: no polygon features match %s", path, strings.Join(l.names, ", "))
		}
		return nil, errors.New(errors.ErrCodeDataLoad, "%s contains no polygon features", path)
	}

	union := mergePolygons(polys)
	if l.tolerance > 0 {
		if simplified, ok := union.Simplify(l.tolerance).(geom.Polygonal); ok {
			union = simplified
		}
	}

	return NewRegion(union, features)
}

// mergePolygons folds the polygons into a single union. Overlapping parts
// dissolve into one shape; disjoint parts stay separate rings.
func mergePolygons(polys []geom.Polygon) geom.Polygonal {
	var union geom.Polygonal
	for _, p := range polys {
		if union == nil {
			union = p
			continue
		}
		union = union.Union(p)
	}
	return union
}

func (l *loader) loadShapefile(path string) ([]geom.Polygon, int, error) {
	d, err := shp.NewDecoder(path)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeDataLoad, err, "open shapefile %s", path)
	}
	defer d.Close()

	var cols []string
	if l.nameField != "" {
		cols = append(cols, l.nameField)
	}

	var (
		polys    []geom.Polygon
		features int
	)
	for {
		g, fields, more := d.DecodeRowFields(cols...)
		if !more {
			break
		}
		if g == nil {
			continue // null shape
		}
		if l.nameField != "" && !l.wantName(fields[l.nameField]) {
			continue
		}
		p, ok := g.(geom.Polygonal)
		if !ok {
			return nil, 0, errors.New(errors.ErrCodeDataLoad, "%s holds %T shapes, polygons required", path, g)
		}
		polys = append(polys, p.Polygons()...)
		features++
	}
	if err := d.Error(); err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeDataLoad, err, "decode shapefile %s", path)
	}
	return polys, features, nil
}

func (l *loader) loadGeoJSON(path string) ([]geom.Polygon, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeDataLoad, err, "read boundary file %s", path)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeDataLoad, err, "parse geojson %s", path)
	}

	var (
		polys    []geom.Polygon
		features int
	)
	for _, f := range fc.Features {
		if l.nameField != "" && !l.wantName(f.Properties.MustString(l.nameField, "")) {
			continue
		}
		parts := polygonsFromOrb(f.Geometry)
		if len(parts) == 0 {
			continue // points and lines carry no area
		}
		polys = append(polys, parts...)
		features++
	}
	return polys, features, nil
}

func (l *loader) wantName(name string) bool {
	if len(l.names) == 0 {
		return true
	}
	for _, want := range l.names {
		if strings.EqualFold(strings.TrimSpace(name), strings.TrimSpace(want)) {
			return true
		}
	}
	return false
}

// polygonsFromOrb converts orb geometry to planar polygons.
// Non-areal geometry converts to nothing.
func polygonsFromOrb(g orb.Geometry) []geom.Polygon {
	switch t := g.(type) {
	case orb.Polygon:
		return []geom.Polygon{polygonFromOrb(t)}
	case orb.MultiPolygon:
		out := make([]geom.Polygon, 0, len(t))
		for _, p := range t {
			out = append(out, polygonFromOrb(p))
		}
		return out
	case orb.Collection:
		var out []geom.Polygon
		for _, sub := range t {
			out = append(out, polygonsFromOrb(sub)...)
		}
		return out
	default:
		return nil
	}
}

func polygonFromOrb(p orb.Polygon) geom.Polygon {
	poly := make(geom.Polygon, 0, len(p))
	for _, ring := range p {
		r := make([]geom.Point, 0, len(ring))
		for _, pt := range ring {
			r = append(r, geom.Point{X: pt.X(), Y: pt.Y()})
		}
		poly = append(poly, r)
	}
	return poly
}
