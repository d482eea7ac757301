package render_test

import (
	"fmt"

	"github.com/ctessum/geom"

	"github.com/woodlandatlas/woodmap/pkg/geobound"
	"github.com/woodlandatlas/woodmap/pkg/render"
)

func ExampleBuild() {
	poly := geom.Polygon{{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	}}
	region, _ := geobound.NewRegion(poly, 1)

	// A 10x10 region in a 120px frame with a 10px margin scales 10x.
	scene, _ := render.Build(region, nil, render.BuildOptions{Width: 120, Margin: 10})

	fmt.Println("frame:", scene.Frame.Width, "x", scene.Frame.Height)
	fmt.Println("rings:", len(scene.Silhouette))

	// Boundary data is y-up, screens are y-down: the region's origin
	// lands near the frame's bottom-left corner.
	fmt.Println("corner:", scene.Silhouette[0][0].X, scene.Silhouette[0][0].Y)
	// Output:
	// frame: 120 x 120
	// rings: 1
	// corner: 10 110
}
