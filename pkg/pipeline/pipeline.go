// Package pipeline provides the core map-making pipeline for Woodmap.
//
// This package implements the complete load → plan → render pipeline that
// the CLI drives end to end or stage by stage. Centralizing it keeps the
// caching, validation, and defaulting behavior identical however a stage
// is reached.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a boundary file and union its features into one region
//  2. Plan: Overlay the hexagonal grid, scatter icon points, and resolve
//     the scene to screen space
//  3. Render: Generate output in various formats (SVG, PNG, scene JSON)
//
// Each stage can be run independently or as part of the complete pipeline,
// and each is cached under a key derived from its exact inputs.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Boundary: "uk.geojson",
//	    Seed:     42,
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	region, err := runner.Load(ctx, opts)
//
//	// Plan with an existing region
//	scene, err := runner.Plan(ctx, region, opts)
//
//	// Render an existing scene
//	artifacts, err := runner.Render(ctx, scene, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/woodlandatlas/woodmap/pkg/cache"
	"github.com/woodlandatlas/woodmap/pkg/errors"
	"github.com/woodlandatlas/woodmap/pkg/geobound"
	"github.com/woodlandatlas/woodmap/pkg/hexgrid"
	"github.com/woodlandatlas/woodmap/pkg/render"
	"github.com/woodlandatlas/woodmap/pkg/scatter"
	"github.com/woodlandatlas/woodmap/pkg/sprite"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Config Files
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 1600.0

	// DefaultMargin is the default frame margin in pixels.
	DefaultMargin = 48.0

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultGridDivisions derives the cell size when none is given: the
	// region's larger bounding-box span divided into this many columns.
	DefaultGridDivisions = 18
)

// DefaultTouchPolicy keeps cells that touch the boundary, matching the
// full-silhouette look of the reference posters.
const DefaultTouchPolicy = hexgrid.TouchRetain

// Placement modes for point scattering.
const (
	// PlacementGrid samples per retained hexagon cell.
	PlacementGrid = "grid"

	// PlacementPoisson scatters blue-noise points over the whole region.
	PlacementPoisson = "poisson"
)

// ValidPlacements is the set of supported placement modes.
var ValidPlacements = map[string]bool{
	PlacementGrid:    true,
	PlacementPoisson: true,
}

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the map pipeline.
// The struct serializes to JSON for scene provenance and decodes from
// TOML config files; zero values mean "use the default".
type Options struct {
	// Load options
	Boundary  string   `json:"boundary" toml:"boundary"`
	NameField string   `json:"name_field,omitempty" toml:"name_field"`
	Names     []string `json:"names,omitempty" toml:"names"`
	Tolerance float64  `json:"tolerance,omitempty" toml:"tolerance"`
	Refresh   bool     `json:"refresh,omitempty" toml:"-"`

	// Plan options
	CellSize       float64   `json:"cell_size,omitempty" toml:"cell_size"` // 0 = derive from extent
	TouchPolicy    string    `json:"touch_policy,omitempty" toml:"touch_policy"`
	Seed           uint64    `json:"seed,omitempty" toml:"seed"`
	Counts         []int     `json:"counts,omitempty" toml:"counts"`
	Weights        []float64 `json:"weights,omitempty" toml:"weights"`
	Placement      string    `json:"placement,omitempty" toml:"placement"`
	PoissonSpacing float64   `json:"poisson_spacing,omitempty" toml:"poisson_spacing"` // 0 = cell size / 3
	Icons          []string  `json:"icons,omitempty" toml:"icons"`
	Palette        string    `json:"palette,omitempty" toml:"palette"`
	SizeMean       float64   `json:"size_mean,omitempty" toml:"size_mean"`
	SizeSigma      float64   `json:"size_sigma,omitempty" toml:"size_sigma"`
	SizeMin        float64   `json:"size_min,omitempty" toml:"size_min"`
	SizeMax        float64   `json:"size_max,omitempty" toml:"size_max"`
	Width          float64   `json:"width,omitempty" toml:"width"`
	Margin         float64   `json:"margin,omitempty" toml:"margin"`

	// Render options
	Formats    []string `json:"formats,omitempty" toml:"formats"`
	Background string   `json:"background,omitempty" toml:"background"`
	LandFill   string   `json:"land_fill,omitempty" toml:"land_fill"`
	LandStroke string   `json:"land_stroke,omitempty" toml:"land_stroke"`
	Caption    string   `json:"caption,omitempty" toml:"caption"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Region is the loaded, unioned boundary geometry.
	Region *geobound.Region

	// Scene is the resolved scene in screen space.
	Scene *render.Scene

	// SceneHash is the content hash of the serialized scene.
	SceneHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Features   int
	Cells      int
	Points     int
	LoadTime   time.Duration
	PlanTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether boundary geometry came from cache
	PlanHit   bool // Whether the scene came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeConfig, "invalid format %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePlacement checks that a placement mode is valid.
func ValidatePlacement(placement string) error {
	if !ValidPlacements[placement] {
		return errors.New(errors.ErrCodeConfig, "invalid placement %q (must be one of: grid, poisson)", placement)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForPlan(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for boundary loading.
func (o *Options) ValidateForLoad() error {
	if err := errors.ValidateBoundaryPath(o.Boundary); err != nil {
		return err
	}
	if o.Tolerance < 0 {
		return errors.New(errors.ErrCodeConfig, "tolerance must be non-negative, got %g", o.Tolerance)
	}
	o.setLoggerDefault()
	return nil
}

// SetPlanDefaults sets default values for grid and sampling.
func (o *Options) SetPlanDefaults() {
	if o.TouchPolicy == "" {
		o.TouchPolicy = string(DefaultTouchPolicy)
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if len(o.Counts) == 0 && len(o.Weights) == 0 {
		d := scatter.DefaultCountDist()
		o.Counts, o.Weights = d.Counts, d.Weights
	}
	if o.Placement == "" {
		o.Placement = PlacementGrid
	}
	if len(o.Icons) == 0 {
		for _, k := range sprite.Kinds() {
			o.Icons = append(o.Icons, string(k))
		}
	}
	if o.Palette == "" {
		o.Palette = sprite.DefaultPalette
	}
	sizes := scatter.DefaultSizeDist()
	if o.SizeMean == 0 {
		o.SizeMean = sizes.Mean
	}
	if o.SizeSigma == 0 {
		o.SizeSigma = sizes.Sigma
	}
	if o.SizeMin == 0 {
		o.SizeMin = sizes.Min
	}
	if o.SizeMax == 0 {
		o.SizeMax = sizes.Max
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Margin == 0 {
		o.Margin = DefaultMargin
	}
	o.setLoggerDefault()
}

// ValidateForPlan validates and sets defaults for scene planning.
func (o *Options) ValidateForPlan() error {
	o.SetPlanDefaults()

	if o.CellSize != 0 {
		if err := errors.ValidateCellSize(o.CellSize); err != nil {
			return err
		}
	}
	if _, err := hexgrid.ParseTouchPolicy(o.TouchPolicy); err != nil {
		return err
	}
	if err := errors.ValidateCountDistribution(o.Counts, o.Weights); err != nil {
		return err
	}
	if err := ValidatePlacement(o.Placement); err != nil {
		return err
	}
	if o.PoissonSpacing < 0 {
		return errors.New(errors.ErrCodeConfig, "poisson spacing must be non-negative, got %g", o.PoissonSpacing)
	}
	for _, icon := range o.Icons {
		if _, err := sprite.ParseKind(icon); err != nil {
			return err
		}
	}
	if _, err := sprite.PaletteByName(o.Palette); err != nil {
		return err
	}
	if err := errors.ValidateSizeDistribution(o.SizeMean, o.SizeSigma, o.SizeMin, o.SizeMax); err != nil {
		return err
	}
	if !(o.Width > 0) {
		return errors.New(errors.ErrCodeConfig, "width must be positive, got %g", o.Width)
	}
	if o.Margin < 0 || 2*o.Margin >= o.Width {
		return errors.New(errors.ErrCodeConfig, "margin %g leaves no drawing area in width %g", o.Margin, o.Width)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.setLoggerDefault()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// CountDist returns the per-cell count distribution from the options.
func (o *Options) CountDist() scatter.CountDist {
	return scatter.CountDist{Counts: o.Counts, Weights: o.Weights}
}

// SizeDist returns the icon size distribution from the options.
func (o *Options) SizeDist() scatter.SizeDist {
	return scatter.SizeDist{Mean: o.SizeMean, Sigma: o.SizeSigma, Min: o.SizeMin, Max: o.SizeMax}
}

// IconKinds returns the configured icon kinds. Call after ValidateForPlan;
// unknown names fall back to the full built-in set rather than panic.
func (o *Options) IconKinds() []sprite.Kind {
	kinds := make([]sprite.Kind, 0, len(o.Icons))
	for _, icon := range o.Icons {
		k, err := sprite.ParseKind(icon)
		if err != nil {
			return sprite.Kinds()
		}
		kinds = append(kinds, k)
	}
	return kinds
}

// LoadOptions returns the geobound loader options.
func (o *Options) LoadOptions() []geobound.Option {
	var loadOpts []geobound.Option
	if o.NameField != "" {
		loadOpts = append(loadOpts, geobound.WithNameField(o.NameField))
	}
	if len(o.Names) > 0 {
		loadOpts = append(loadOpts, geobound.WithNames(o.Names...))
	}
	if o.Tolerance > 0 {
		loadOpts = append(loadOpts, geobound.WithTolerance(o.Tolerance))
	}
	return loadOpts
}

// BoundaryKeyOpts returns cache key options for boundary loading.
func (o *Options) BoundaryKeyOpts() cache.BoundaryKeyOpts {
	return cache.BoundaryKeyOpts{
		NameField: o.NameField,
		Names:     o.Names,
		Tolerance: o.Tolerance,
	}
}

// SceneKeyOpts returns cache key options for scene planning.
func (o *Options) SceneKeyOpts() cache.SceneKeyOpts {
	return cache.SceneKeyOpts{
		CellSize:       o.CellSize,
		Seed:           o.Seed,
		TouchPolicy:    o.TouchPolicy,
		Counts:         o.Counts,
		Weights:        o.Weights,
		Placement:      o.Placement,
		PoissonSpacing: o.PoissonSpacing,
		Icons:          o.Icons,
		Palette:        o.Palette,
		SizeMean:       o.SizeMean,
		SizeSigma:      o.SizeSigma,
		SizeMin:        o.SizeMin,
		SizeMax:        o.SizeMax,
		Width:          o.Width,
		Margin:         o.Margin,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Background: o.Background,
		LandFill:   o.LandFill,
		LandStroke: o.LandStroke,
		Caption:    o.Caption,
	}
}
