package geobound

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/paulmach/orb/geojson"

	"github.com/woodlandatlas/woodmap/pkg/errors"
)

// FeatureInfo describes one feature of a boundary file without merging it.
type FeatureInfo struct {
	Name  string  `json:"name"`
	Parts int     `json:"parts"`
	Area  float64 `json:"area"`
}

// Features lists the polygon features of a boundary file in file order.
// nameField selects the attribute used for feature names; when empty or
// missing, features are named by position.
func Features(path, nameField string) ([]FeatureInfo, error) {
	if err := errors.ValidateBoundaryPath(path); err != nil {
		return nil, err
	}
	if strings.ToLower(filepath.Ext(path)) == ".shp" {
		return shapefileFeatures(path, nameField)
	}
	return geojsonFeatures(path, nameField)
}

func shapefileFeatures(path, nameField string) ([]FeatureInfo, error) {
	d, err := shp.NewDecoder(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataLoad, err, "open shapefile %s", path)
	}
	defer d.Close()

	var cols []string
	if nameField != "" {
		cols = append(cols, nameField)
	}

	var infos []FeatureInfo
	for {
		g, fields, more := d.DecodeRowFields(cols...)
		if !more {
			break
		}
		p, ok := g.(geom.Polygonal)
		if !ok {
			continue
		}
		infos = append(infos, FeatureInfo{
			Name:  featureName(fields[nameField], len(infos)),
			Parts: len(p.Polygons()),
			Area:  p.Area(),
		})
	}
	if err := d.Error(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataLoad, err, "decode shapefile %s", path)
	}
	return infos, nil
}

func geojsonFeatures(path, nameField string) ([]FeatureInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataLoad, err, "read boundary file %s", path)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataLoad, err, "parse geojson %s", path)
	}

	var infos []FeatureInfo
	for _, f := range fc.Features {
		parts := polygonsFromOrb(f.Geometry)
		if len(parts) == 0 {
			continue
		}
		area := 0.0
		for _, p := range parts {
			area += p.Area()
		}
		var name string
		if nameField != "" {
			name = f.Properties.MustString(nameField, "")
		}
		infos = append(infos, FeatureInfo{
			Name:  featureName(name, len(infos)),
			Parts: len(parts),
			Area:  area,
		})
	}
	return infos, nil
}

func featureName(name string, index int) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Sprintf("feature %d", index+1)
	}
	return name
}

// SpatialRef reports the projection name a boundary file was saved in.
// Shapefiles read the .prj sidecar; GeoJSON is longitude/latitude by
// convention. Returns "" when the reference is missing or unreadable.
// The name is informational; coordinates are never reprojected.
func SpatialRef(path string) string {
	if strings.ToLower(filepath.Ext(path)) != ".shp" {
		return "longlat"
	}
	d, err := shp.NewDecoder(path)
	if err != nil {
		return ""
	}
	defer d.Close()
	sr, err := d.SR()
	if err != nil || sr == nil {
		return ""
	}
	return sr.Name
}
