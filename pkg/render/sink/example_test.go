package sink_test

import (
	"fmt"
	"strings"

	"github.com/woodlandatlas/woodmap/pkg/render"
	"github.com/woodlandatlas/woodmap/pkg/render/sink"
	"github.com/woodlandatlas/woodmap/pkg/sprite"
)

func ExampleRenderSVG() {
	scene := &render.Scene{
		Frame: render.Frame{Width: 200, Height: 160, Margin: 10},
		Silhouette: []render.Ring{{
			{X: 20, Y: 20}, {X: 180, Y: 20}, {X: 100, Y: 140},
		}},
		Icons: []render.Icon{
			{X: 100, Y: 60, Kind: sprite.Broadleaf, Color: "#2d6a4f", Size: 14},
		},
	}

	svg := sink.RenderSVG(scene)

	fmt.Println("starts with:", string(svg[:4]))
	fmt.Println("has viewBox:", strings.Contains(string(svg), "viewBox"))
	fmt.Println("has the icon:", strings.Contains(string(svg), "translate(100 60)"))
	// Output:
	// starts with: <svg
	// has viewBox: true
	// has the icon: true
}

func ExampleRenderSVG_withCaption() {
	scene := &render.Scene{
		Frame: render.Frame{Width: 200, Height: 160, Margin: 10},
		Silhouette: []render.Ring{{
			{X: 20, Y: 20}, {X: 180, Y: 20}, {X: 100, Y: 140},
		}},
	}

	svg := sink.RenderSVG(scene, sink.WithCaption("Oak & Ash"))

	// Caption text is XML-escaped.
	fmt.Println(strings.Contains(string(svg), "Oak &amp; Ash"))
	// Output:
	// true
}
