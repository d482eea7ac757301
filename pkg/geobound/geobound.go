// Package geobound loads vector boundary files and merges their features
// into a single region.
//
// A Region is the unioned study area that the grid and sampling stages
// operate on. Supported inputs are ESRI shapefiles and GeoJSON feature
// collections; features may be filtered by an attribute before merging.
package geobound

import (
	"encoding/json"

	"github.com/ctessum/geom"

	"github.com/woodlandatlas/woodmap/pkg/errors"
)

// Region is the merged boundary geometry of one or more source features.
// The zero value is not usable; construct via Load or NewRegion.
type Region struct {
	poly     geom.Polygonal
	features int
}

// NewRegion wraps unioned geometry as a Region.
// Returns DATA_LOAD_ERROR if the geometry is missing or has no area.
func NewRegion(poly geom.Polygonal, features int) (*Region, error) {
	if poly == nil || len(poly.Polygons()) == 0 {
		return nil, errors.New(errors.ErrCodeDataLoad, "boundary contains no geometry")
	}
	if poly.Area() <= 0 {
		return nil, errors.New(errors.ErrCodeDataLoad, "boundary geometry has zero area")
	}
	return &Region{poly: poly, features: features}, nil
}

// Polygonal returns the unioned geometry.
func (r *Region) Polygonal() geom.Polygonal {
	return r.poly
}

// Polygons returns the individual polygons of the union.
// Disjoint source features (islands, exclaves) stay separate polygons.
func (r *Region) Polygons() []geom.Polygon {
	return r.poly.Polygons()
}

// Bounds returns the bounding box of the region.
func (r *Region) Bounds() *geom.Bounds {
	return r.poly.Bounds()
}

// Area returns the total area of the region in squared input units.
func (r *Region) Area() float64 {
	return r.poly.Area()
}

// Centroid returns the centroid of the region.
func (r *Region) Centroid() geom.Point {
	return r.poly.Centroid()
}

// FeatureCount returns the number of source features merged into the region.
func (r *Region) FeatureCount() int {
	return r.features
}

// Contains reports whether the point lies inside the region.
// Points exactly on the boundary count as inside.
func (r *Region) Contains(p geom.Point) bool {
	return p.Within(r.poly) != geom.Outside
}

// regionJSON is the serialization form used for caching and data export.
type regionJSON struct {
	Features int            `json:"features"`
	Polygons []geom.Polygon `json:"polygons"`
}

// MarshalJSON serializes the region geometry.
func (r *Region) MarshalJSON() ([]byte, error) {
	return json.Marshal(regionJSON{
		Features: r.features,
		Polygons: r.poly.Polygons(),
	})
}

// UnmarshalJSON restores a region serialized with MarshalJSON.
func (r *Region) UnmarshalJSON(data []byte) error {
	var rj regionJSON
	if err := json.Unmarshal(data, &rj); err != nil {
		return err
	}
	restored, err := NewRegion(geom.MultiPolygon(rj.Polygons), rj.Features)
	if err != nil {
		return err
	}
	*r = *restored
	return nil
}
