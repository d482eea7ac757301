package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/woodlandatlas/woodmap/pkg/pipeline"
	"github.com/woodlandatlas/woodmap/pkg/sprite"
)

// pipelineFlags binds pipeline options to command flags. A flag only
// overrides the config file when it was set on the command line, so
// `--config map.toml --seed 9` keeps the file's palette but reseeds.
type pipelineFlags struct {
	nameField string
	names     []string
	tolerance float64
	refresh   bool

	cellSize       float64
	touchPolicy    string
	seed           uint64
	counts         []int
	weights        []float64
	placement      string
	poissonSpacing float64
	icons          []string
	palette        string
	sizeMean       float64
	sizeSigma      float64
	sizeMin        float64
	sizeMax        float64
	width          float64
	margin         float64

	background string
	landFill   string
	landStroke string
	caption    string
}

// registerLoad adds the boundary-loading flags.
func (f *pipelineFlags) registerLoad(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.nameField, "name-field", "", "attribute holding feature names")
	cmd.Flags().StringSliceVar(&f.names, "names", nil, "keep only features with these names")
	cmd.Flags().Float64Var(&f.tolerance, "tolerance", 0, "simplification tolerance in input units")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "reload the boundary even if cached")
}

// registerPlan adds the scene-planning flags.
func (f *pipelineFlags) registerPlan(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.cellSize, "cell-size", 0, "hexagon size in input units (0 derives it from the extent)")
	cmd.Flags().StringVar(&f.touchPolicy, "touch-policy", "", "cells touching the boundary: retain or discard")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed for point placement")
	cmd.Flags().IntSliceVar(&f.counts, "counts", nil, "candidate icon counts per cell, e.g. 2,3")
	cmd.Flags().Float64SliceVar(&f.weights, "weights", nil, "weights matching --counts, e.g. 0.3,0.7")
	cmd.Flags().StringVar(&f.placement, "placement", "", "point placement: grid or poisson")
	cmd.Flags().Float64Var(&f.poissonSpacing, "poisson-spacing", 0, "minimum point distance for poisson placement")
	cmd.Flags().StringSliceVar(&f.icons, "icons", nil, "icon kinds to plant, e.g. broadleaf,conifer")
	cmd.Flags().StringVar(&f.palette, "palette", "", "color palette: "+strings.Join(sprite.PaletteNames(), ", "))
	cmd.Flags().Float64Var(&f.sizeMean, "size-mean", 0, "mean icon size in pixels")
	cmd.Flags().Float64Var(&f.sizeSigma, "size-sigma", 0, "icon size spread")
	cmd.Flags().Float64Var(&f.sizeMin, "size-min", 0, "smallest icon size")
	cmd.Flags().Float64Var(&f.sizeMax, "size-max", 0, "largest icon size")
	cmd.Flags().Float64Var(&f.width, "width", 0, "frame width in pixels")
	cmd.Flags().Float64Var(&f.margin, "margin", 0, "frame margin in pixels")
}

// registerRender adds the artifact-styling flags.
func (f *pipelineFlags) registerRender(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.background, "background", "", "canvas color, e.g. '#f6f1e3'")
	cmd.Flags().StringVar(&f.landFill, "land-fill", "", "region silhouette fill color")
	cmd.Flags().StringVar(&f.landStroke, "land-stroke", "", "region silhouette stroke color")
	cmd.Flags().StringVar(&f.caption, "caption", "", "caption text under the map")
}

// apply copies every flag the user set onto opts, leaving the rest
// untouched.
func (f *pipelineFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	set := cmd.Flags().Changed

	if set("name-field") {
		opts.NameField = f.nameField
	}
	if set("names") {
		opts.Names = f.names
	}
	if set("tolerance") {
		opts.Tolerance = f.tolerance
	}
	if set("refresh") {
		opts.Refresh = f.refresh
	}
	if set("cell-size") {
		opts.CellSize = f.cellSize
	}
	if set("touch-policy") {
		opts.TouchPolicy = f.touchPolicy
	}
	if set("seed") {
		opts.Seed = f.seed
	}
	if set("counts") {
		opts.Counts = f.counts
	}
	if set("weights") {
		opts.Weights = f.weights
	}
	if set("placement") {
		opts.Placement = f.placement
	}
	if set("poisson-spacing") {
		opts.PoissonSpacing = f.poissonSpacing
	}
	if set("icons") {
		opts.Icons = f.icons
	}
	if set("palette") {
		opts.Palette = f.palette
	}
	if set("size-mean") {
		opts.SizeMean = f.sizeMean
	}
	if set("size-sigma") {
		opts.SizeSigma = f.sizeSigma
	}
	if set("size-min") {
		opts.SizeMin = f.sizeMin
	}
	if set("size-max") {
		opts.SizeMax = f.sizeMax
	}
	if set("width") {
		opts.Width = f.width
	}
	if set("margin") {
		opts.Margin = f.margin
	}
	if set("background") {
		opts.Background = f.background
	}
	if set("land-fill") {
		opts.LandFill = f.landFill
	}
	if set("land-stroke") {
		opts.LandStroke = f.landStroke
	}
	if set("caption") {
		opts.Caption = f.caption
	}
}

// buildOptions assembles pipeline options from the config file, the
// boundary argument, and whichever flags the user set, in that order.
func buildOptions(cmd *cobra.Command, rf *rootFlags, pf *pipelineFlags, boundary string) (pipeline.Options, error) {
	var opts pipeline.Options
	if rf.config != "" {
		loaded, err := pipeline.LoadConfig(rf.config)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts = loaded
	}
	if boundary != "" {
		opts.Boundary = boundary
	}
	pf.apply(cmd, &opts)
	opts.Logger = loggerFromContext(cmd.Context())
	return opts, nil
}
