package render

import (
	"testing"

	"github.com/ctessum/geom"

	"github.com/woodlandatlas/woodmap/pkg/errors"
	"github.com/woodlandatlas/woodmap/pkg/geobound"
	"github.com/woodlandatlas/woodmap/pkg/scatter"
	"github.com/woodlandatlas/woodmap/pkg/sprite"
)

func squareRegion(t *testing.T, x0, y0, x1, y1 float64) *geobound.Region {
	t.Helper()
	poly := geom.Polygon{{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
	}}
	region, err := geobound.NewRegion(poly, 1)
	if err != nil {
		t.Fatalf("NewRegion: %v", err)
	}
	return region
}

func TestBuildFrameFollowsAspectRatio(t *testing.T) {
	// A 10x5 region in a 120px frame with 10px margins: the 100px
	// drawing area maps 10 units wide, so 5 units tall becomes 50px.
	region := squareRegion(t, 0, 0, 10, 5)

	scene, err := Build(region, nil, BuildOptions{Width: 120, Margin: 10})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if scene.Frame.Width != 120 {
		t.Errorf("frame width = %g, want 120", scene.Frame.Width)
	}
	if scene.Frame.Height != 70 {
		t.Errorf("frame height = %g, want 70", scene.Frame.Height)
	}
	if scene.Frame.Margin != 10 {
		t.Errorf("frame margin = %g, want 10", scene.Frame.Margin)
	}
}

func TestBuildFlipsYAxis(t *testing.T) {
	region := squareRegion(t, 0, 0, 10, 10)
	placements := []scatter.Placement{
		{Point: scatter.Point{X: 0, Y: 0}, Icon: sprite.Broadleaf, Color: "#111111", Size: 10},
		{Point: scatter.Point{X: 10, Y: 10}, Icon: sprite.Conifer, Color: "#222222", Size: 10},
	}

	scene, err := Build(region, placements, BuildOptions{Width: 120, Margin: 10})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// Data-space origin lands at the bottom-left of the drawing area.
	if got := scene.Icons[0]; got.X != 10 || got.Y != 110 {
		t.Errorf("origin mapped to (%g, %g), want (10, 110)", got.X, got.Y)
	}
	// Data-space top-right lands at the top-right.
	if got := scene.Icons[1]; got.X != 110 || got.Y != 10 {
		t.Errorf("top-right mapped to (%g, %g), want (110, 10)", got.X, got.Y)
	}
}

func TestBuildCarriesDecorationAndProvenance(t *testing.T) {
	region := squareRegion(t, 0, 0, 10, 10)
	placements := []scatter.Placement{
		{Point: scatter.Point{X: 5, Y: 5}, Icon: sprite.Shrub, Color: "#2d6a4f", Size: 13.5},
	}
	prov := Provenance{Source: "uk.geojson", Seed: 42, CellSize: 1, Cells: 9, Palette: "woodland"}

	scene, err := Build(region, placements, BuildOptions{Width: 100, Margin: 0, Provenance: prov})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(scene.Silhouette) != 1 {
		t.Fatalf("silhouette rings = %d, want 1", len(scene.Silhouette))
	}
	ic := scene.Icons[0]
	if ic.Kind != sprite.Shrub || ic.Color != "#2d6a4f" || ic.Size != 13.5 {
		t.Errorf("icon lost decoration: %+v", ic)
	}
	if scene.Provenance.Seed != 42 || scene.Provenance.Source != "uk.geojson" {
		t.Errorf("provenance not carried: %+v", scene.Provenance)
	}
	if scene.Provenance.Points != 1 {
		t.Errorf("provenance points = %d, want 1", scene.Provenance.Points)
	}
}

func TestBuildValidation(t *testing.T) {
	region := squareRegion(t, 0, 0, 10, 10)

	if _, err := Build(nil, nil, BuildOptions{Width: 100}); !errors.Is(err, errors.ErrCodeConfig) {
		t.Errorf("nil region should be CONFIG_ERROR, got %v", err)
	}
	if _, err := Build(region, nil, BuildOptions{Width: 0}); !errors.Is(err, errors.ErrCodeConfig) {
		t.Errorf("zero width should be CONFIG_ERROR, got %v", err)
	}
	if _, err := Build(region, nil, BuildOptions{Width: 100, Margin: 50}); !errors.Is(err, errors.ErrCodeConfig) {
		t.Errorf("margin swallowing the frame should be CONFIG_ERROR, got %v", err)
	}
	if _, err := Build(region, nil, BuildOptions{Width: 100, Margin: -1}); !errors.Is(err, errors.ErrCodeConfig) {
		t.Errorf("negative margin should be CONFIG_ERROR, got %v", err)
	}
}

func TestSceneValidate(t *testing.T) {
	valid := func() *Scene {
		return &Scene{
			Frame:      Frame{Width: 100, Height: 80, Margin: 5},
			Silhouette: []Ring{{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 25, Y: 40}}},
			Icons:      []Icon{{X: 20, Y: 20, Kind: sprite.Broadleaf, Color: "#123456", Size: 9}},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid scene rejected: %v", err)
	}

	s := valid()
	s.Frame.Width = 0
	if err := s.Validate(); !errors.Is(err, errors.ErrCodeDataLoad) {
		t.Errorf("empty frame should be DATA_LOAD_ERROR, got %v", err)
	}

	s = valid()
	s.Silhouette = nil
	if err := s.Validate(); !errors.Is(err, errors.ErrCodeDataLoad) {
		t.Errorf("missing silhouette should be DATA_LOAD_ERROR, got %v", err)
	}

	s = valid()
	s.Silhouette = []Ring{{{X: 0, Y: 0}, {X: 1, Y: 1}}}
	if err := s.Validate(); !errors.Is(err, errors.ErrCodeDataLoad) {
		t.Errorf("two-point ring should be DATA_LOAD_ERROR, got %v", err)
	}

	s = valid()
	s.Icons[0].Size = 0
	if err := s.Validate(); !errors.Is(err, errors.ErrCodeDataLoad) {
		t.Errorf("zero icon size should be DATA_LOAD_ERROR, got %v", err)
	}

	s = valid()
	s.Icons[0].Color = ""
	if err := s.Validate(); !errors.Is(err, errors.ErrCodeDataLoad) {
		t.Errorf("blank icon color should be DATA_LOAD_ERROR, got %v", err)
	}
}
