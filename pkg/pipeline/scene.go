package pipeline

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/woodlandatlas/woodmap/pkg/errors"
	"github.com/woodlandatlas/woodmap/pkg/geobound"
	"github.com/woodlandatlas/woodmap/pkg/hexgrid"
	"github.com/woodlandatlas/woodmap/pkg/io"
	"github.com/woodlandatlas/woodmap/pkg/render"
	"github.com/woodlandatlas/woodmap/pkg/render/sink"
	"github.com/woodlandatlas/woodmap/pkg/scatter"
	"github.com/woodlandatlas/woodmap/pkg/sprite"
)

// =============================================================================
// Scene Building
// =============================================================================

// BuildScene runs the plan stage: overlay the grid, scatter points,
// decorate them, and resolve everything into screen space.
//
// The whole stage draws from one random stream seeded by opts.Seed, so a
// fixed seed reproduces the scene exactly, icon choices included.
func BuildScene(region *geobound.Region, opts Options) (*render.Scene, error) {
	if err := opts.ValidateForPlan(); err != nil {
		return nil, err
	}
	if region == nil {
		return nil, errors.New(errors.ErrCodeConfig, "plan region is required")
	}

	cellSize := opts.CellSize
	if cellSize == 0 {
		cellSize = autoCellSize(region)
	}

	rng := scatter.NewStream(opts.Seed)

	var points []scatter.Point
	var cells int

	switch opts.Placement {
	case PlacementPoisson:
		spacing := opts.PoissonSpacing
		if spacing == 0 {
			spacing = cellSize / 3
		}
		sampled, err := scatter.SamplePoisson(region, spacing, opts.Seed)
		if err != nil {
			return nil, err
		}
		points = sampled
	default:
		policy, err := hexgrid.ParseTouchPolicy(opts.TouchPolicy)
		if err != nil {
			return nil, err
		}
		grid, err := hexgrid.Generate(region.Bounds(), cellSize)
		if err != nil {
			return nil, err
		}
		kept := hexgrid.Filter(grid, region, policy)
		cells = len(kept)
		sampled, err := scatter.Sample(kept, region, scatter.SampleConfig{Counts: opts.CountDist()}, rng)
		if err != nil {
			return nil, err
		}
		points = sampled
	}

	palette, err := sprite.PaletteByName(opts.Palette)
	if err != nil {
		return nil, err
	}
	placements, err := scatter.Decorate(points, scatter.DecorateConfig{
		Icons:   opts.IconKinds(),
		Palette: palette,
		Sizes:   opts.SizeDist(),
	}, rng)
	if err != nil {
		return nil, err
	}

	return render.Build(region, placements, render.BuildOptions{
		Width:  opts.Width,
		Margin: opts.Margin,
		Provenance: render.Provenance{
			Source:      filepath.Base(opts.Boundary),
			Seed:        opts.Seed,
			CellSize:    cellSize,
			TouchPolicy: opts.TouchPolicy,
			Placement:   opts.Placement,
			Palette:     opts.Palette,
			Cells:       cells,
		},
	})
}

// autoCellSize derives a cell size from the region extent when none is
// configured: the larger bounding-box span split into DefaultGridDivisions
// columns. A degenerate extent is caught later by hexgrid.Generate.
func autoCellSize(region *geobound.Region) float64 {
	b := region.Bounds()
	span := math.Max(b.Max.X-b.Min.X, b.Max.Y-b.Min.Y)
	return span / DefaultGridDivisions
}

// =============================================================================
// Rendering
// =============================================================================

// RenderScene generates output artifacts in the requested formats.
func RenderScene(scene *render.Scene, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if scene == nil {
		return nil, errors.New(errors.ErrCodeConfig, "render scene is required")
	}

	sinkOpts := buildSinkOptions(opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(scene, sinkOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(scene, sinkOpts...)
		case FormatJSON:
			data, err = io.MarshalScene(scene)
		default:
			return nil, errors.New(errors.ErrCodeConfig, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSinkOptions translates pipeline options into sink style options.
// Empty fields keep the sink defaults.
func buildSinkOptions(opts Options) []sink.Option {
	var sinkOpts []sink.Option

	if opts.Background != "" {
		sinkOpts = append(sinkOpts, sink.WithBackground(opts.Background))
	}
	if opts.LandFill != "" || opts.LandStroke != "" {
		def := sink.DefaultStyle()
		fill, stroke := opts.LandFill, opts.LandStroke
		if fill == "" {
			fill = def.LandFill
		}
		if stroke == "" {
			stroke = def.LandStroke
		}
		sinkOpts = append(sinkOpts, sink.WithLand(fill, stroke))
	}
	if opts.Caption != "" {
		sinkOpts = append(sinkOpts, sink.WithCaption(opts.Caption))
	}

	return sinkOpts
}
