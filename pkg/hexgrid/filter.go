package hexgrid

import (
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
	"github.com/ctessum/geom/proj"

	"github.com/woodlandatlas/woodmap/pkg/errors"
	"github.com/woodlandatlas/woodmap/pkg/geobound"
)

// TouchPolicy decides the fate of cells that contact the region boundary
// without enclosing any of its interior.
type TouchPolicy string

const (
	// TouchRetain keeps every cell with a non-empty intersection, down to
	// cells sharing a single boundary point with the region.
	TouchRetain TouchPolicy = "retain"

	// TouchDiscard keeps only cells whose overlap has positive area.
	TouchDiscard TouchPolicy = "discard"
)

// ParseTouchPolicy converts a config string to a TouchPolicy.
// The empty string selects TouchRetain.
func ParseTouchPolicy(s string) (TouchPolicy, error) {
	switch TouchPolicy(strings.ToLower(s)) {
	case "", TouchRetain:
		return TouchRetain, nil
	case TouchDiscard:
		return TouchDiscard, nil
	}
	return "", errors.New(errors.ErrCodeConfig, "unknown touch policy %q (valid: retain, discard)", s)
}

// regionPart wraps one polygon of the region for r-tree indexing.
type regionPart struct {
	poly geom.Polygon
}

func (p *regionPart) Bounds() *geom.Bounds { return p.poly.Bounds() }

// The remaining geom.Geom methods delegate to the wrapped polygon; the
// r-tree itself only ever calls Bounds.
func (p *regionPart) Similar(g geom.Geom, tolerance float64) bool { return p.poly.Similar(g, tolerance) }

func (p *regionPart) Transform(t proj.Transformer) (geom.Geom, error) { return p.poly.Transform(t) }

func (p *regionPart) Len() int { return p.poly.Len() }

func (p *regionPart) Points() func() geom.Point { return p.poly.Points() }

// Filter returns the cells intersecting the region, preserving input order.
// Cells whose only contact with the region is a zero-area boundary touch
// are kept under TouchRetain and dropped under TouchDiscard; any other
// policy value behaves like TouchDiscard.
func Filter(cells []Cell, region *geobound.Region, policy TouchPolicy) []Cell {
	index := rtree.NewTree(25, 50)
	for _, p := range region.Polygons() {
		index.Insert(&regionPart{poly: p})
	}

	kept := make([]Cell, 0, len(cells))
	for _, c := range cells {
		if cellTouches(c, index, policy) {
			kept = append(kept, c)
		}
	}
	return kept
}

func cellTouches(c Cell, index *rtree.Rtree, policy TouchPolicy) bool {
	hex := c.Polygon()
	for _, candidate := range index.SearchIntersect(searchBounds(c)) {
		part := candidate.(*regionPart)
		if hex.Intersection(part.poly).Area() > 0 {
			return true
		}
		if policy == TouchRetain && touchesBoundary(hex, part.poly) {
			return true
		}
	}
	return false
}

// searchBounds inflates the cell box by a hair so parts that only touch
// its edge are not culled by the index before the exact tests run.
func searchBounds(c Cell) *geom.Bounds {
	b := c.Bounds()
	eps := c.Size * 1e-9
	return &geom.Bounds{
		Min: geom.Point{X: b.Min.X - eps, Y: b.Min.Y - eps},
		Max: geom.Point{X: b.Max.X + eps, Y: b.Max.Y + eps},
	}
}

// touchesBoundary reports whether two polygons with no interior overlap
// still share boundary points. Straight edges can only make zero-area
// contact along collinear runs or at vertices, and both cases put a vertex
// of one polygon on the boundary of the other, so vertex checks suffice.
func touchesBoundary(hex, part geom.Polygon) bool {
	for _, ring := range hex {
		for _, v := range ring {
			if v.Within(part) != geom.Outside {
				return true
			}
		}
	}
	for _, ring := range part {
		for _, v := range ring {
			if v.Within(hex) != geom.Outside {
				return true
			}
		}
	}
	return false
}
