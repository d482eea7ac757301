// Package hexgrid tiles a bounding box with flat-top hexagonal cells and
// filters the tiling against a region.
//
// Cells use axial coordinates (q, r): q counts columns left to right, r
// counts rows bottom to top, with odd columns shifted up by half a row.
// Generation walks columns in q order and rows in r order, so the cell
// slice is deterministic for fixed bounds and size.
package hexgrid

import (
	"math"

	"github.com/ctessum/geom"

	"github.com/woodlandatlas/woodmap/pkg/errors"
)

// Cell is one flat-top hexagon of the tiling. Size is the circumradius,
// the distance from Center to each of the six vertices.
type Cell struct {
	Q      int        `json:"q"`
	R      int        `json:"r"`
	Center geom.Point `json:"center"`
	Size   float64    `json:"size"`
}

// Width returns the horizontal extent of the cell, vertex to vertex.
func (c Cell) Width() float64 { return 2 * c.Size }

// Height returns the vertical extent of the cell, edge to edge.
func (c Cell) Height() float64 { return math.Sqrt(3) * c.Size }

// Polygon returns the cell outline as six vertices in counterclockwise
// order, starting at the rightmost vertex. The ring is implicitly closed.
func (c Cell) Polygon() geom.Polygon {
	ring := make([]geom.Point, 6)
	for i := range ring {
		angle := math.Pi / 3 * float64(i)
		ring[i] = geom.Point{
			X: c.Center.X + c.Size*math.Cos(angle),
			Y: c.Center.Y + c.Size*math.Sin(angle),
		}
	}
	return geom.Polygon{ring}
}

// Bounds returns the axis-aligned bounding box of the cell.
func (c Cell) Bounds() *geom.Bounds {
	h := c.Height() / 2
	return &geom.Bounds{
		Min: geom.Point{X: c.Center.X - c.Size, Y: c.Center.Y - h},
		Max: geom.Point{X: c.Center.X + c.Size, Y: c.Center.Y + h},
	}
}

// Generate tiles the bounding box with hexagons of the given circumradius.
// The tiling extends one cell beyond every edge so that cells straddling
// the box boundary are present; callers discard unwanted cells via Filter.
// Returns CONFIG_ERROR for a non-positive size or degenerate bounds.
func Generate(b *geom.Bounds, size float64) ([]Cell, error) {
	if err := errors.ValidateCellSize(size); err != nil {
		return nil, err
	}
	if b == nil || b.Max.X < b.Min.X || b.Max.Y < b.Min.Y {
		return nil, errors.New(errors.ErrCodeConfig, "grid bounds are empty or inverted")
	}

	// Flat-top spacing: columns advance 1.5 circumradii, rows one full
	// hex height, odd columns offset by half a height.
	dx := 1.5 * size
	dy := math.Sqrt(3) * size

	startX := b.Min.X - dx
	startY := b.Min.Y - dy
	cols := int(math.Ceil((b.Max.X-startX)/dx)) + 2
	rows := int(math.Ceil((b.Max.Y-startY)/dy)) + 2

	cells := make([]Cell, 0, cols*rows)
	for q := range cols {
		cx := startX + float64(q)*dx
		var yOff float64
		if q%2 == 1 {
			yOff = dy / 2
		}
		for r := range rows {
			cells = append(cells, Cell{
				Q:      q,
				R:      r,
				Center: geom.Point{X: cx, Y: startY + float64(r)*dy + yOff},
				Size:   size,
			})
		}
	}
	return cells, nil
}
