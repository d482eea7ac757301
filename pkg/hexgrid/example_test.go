package hexgrid_test

import (
	"fmt"

	"github.com/ctessum/geom"

	"github.com/woodlandatlas/woodmap/pkg/geobound"
	"github.com/woodlandatlas/woodmap/pkg/hexgrid"
)

func ExampleGenerate() {
	// Tile a 10x10 box with hexagons of circumradius 5. The tiling
	// extends one cell past every edge so straddling cells are present.
	b := &geom.Bounds{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 10, Y: 10}}

	cells, _ := hexgrid.Generate(b, 5)

	fmt.Println("cells:", len(cells))
	fmt.Println("first:", cells[0].Q, cells[0].R)
	// Output:
	// cells: 25
	// first: 0 0
}

func ExampleFilter() {
	poly := geom.Polygon{{
		{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 40, Y: 40}, {X: 0, Y: 40},
	}}
	region, _ := geobound.NewRegion(poly, 1)

	cells, _ := hexgrid.Generate(region.Bounds(), 4)
	kept := hexgrid.Filter(cells, region, hexgrid.TouchRetain)

	fmt.Println("kept some:", len(kept) > 0)
	fmt.Println("dropped the overhang:", len(kept) < len(cells))
	// Output:
	// kept some: true
	// dropped the overhang: true
}

func ExampleParseTouchPolicy() {
	p, _ := hexgrid.ParseTouchPolicy("")
	fmt.Println(p)

	p, _ = hexgrid.ParseTouchPolicy("DISCARD")
	fmt.Println(p)
	// Output:
	// retain
	// discard
}
