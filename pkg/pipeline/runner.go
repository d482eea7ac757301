package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/woodlandatlas/woodmap/pkg/cache"
	"github.com/woodlandatlas/woodmap/pkg/errors"
	"github.com/woodlandatlas/woodmap/pkg/geobound"
	"github.com/woodlandatlas/woodmap/pkg/io"
	"github.com/woodlandatlas/woodmap/pkg/observability"
	"github.com/woodlandatlas/woodmap/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → plan → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.Boundary)
	region, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	result.Stats.LoadTime = time.Since(loadStart)
	observability.Pipeline().OnLoadComplete(ctx, opts.Boundary, featureCount(region), result.Stats.LoadTime, err)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Region = region
	result.Stats.Features = region.FeatureCount()
	result.CacheInfo.LoadHit = loadHit

	r.Logger.Info("loaded boundary",
		"source", opts.Boundary,
		"features", region.FeatureCount(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Plan
	planStart := time.Now()
	observability.Pipeline().OnPlanStart(ctx, opts.CellSize)
	scene, planHit, err := r.PlanWithCacheInfo(ctx, region, opts)
	result.Stats.PlanTime = time.Since(planStart)
	observability.Pipeline().OnPlanComplete(ctx, sceneCells(scene), scenePoints(scene), result.Stats.PlanTime, err)
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}
	result.Scene = scene
	result.Stats.Cells = scene.Provenance.Cells
	result.Stats.Points = scene.Provenance.Points
	result.CacheInfo.PlanHit = planHit

	// Compute scene hash for cache keys and provenance display
	if sceneData, err := io.MarshalScene(scene); err == nil {
		result.SceneHash = cache.Hash(sceneData)
	}

	r.Logger.Info("planned scene",
		"cells", scene.Provenance.Cells,
		"points", scene.Provenance.Points,
		"duration", result.Stats.PlanTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, scene, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo loads the boundary with caching and returns cache hit info.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (*geobound.Region, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from the raw file contents
	raw, err := os.ReadFile(opts.Boundary)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeDataLoad, err, "read boundary file %s", opts.Boundary)
	}
	cacheKey := r.Keyer.BoundaryKey(cache.Hash(raw), opts.BoundaryKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			region := &geobound.Region{}
			if err := json.Unmarshal(data, region); err == nil {
				observability.Cache().OnCacheHit(ctx, "boundary")
				return region, true, nil // Cache hit
			}
			// If deserialization fails, fall through to reload
		}
	}
	observability.Cache().OnCacheMiss(ctx, "boundary")

	// Load
	region, err := geobound.Load(opts.Boundary, opts.LoadOptions()...)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := json.Marshal(region); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLBoundary)
		observability.Cache().OnCacheSet(ctx, "boundary", len(data))
	}

	return region, false, nil // Cache miss
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (*geobound.Region, error) {
	region, _, err := r.LoadWithCacheInfo(ctx, opts)
	return region, err
}

// PlanWithCacheInfo builds the scene with caching and returns cache hit info.
func (r *Runner) PlanWithCacheInfo(ctx context.Context, region *geobound.Region, opts Options) (*render.Scene, bool, error) {
	if err := opts.ValidateForPlan(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from the region geometry
	regionData, err := json.Marshal(region)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize region for cache key")
	}
	cacheKey := r.Keyer.SceneKey(cache.Hash(regionData), opts.SceneKeyOpts())

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		cached, err := io.UnmarshalScene(data)
		if err == nil {
			observability.Cache().OnCacheHit(ctx, "scene")
			return cached, true, nil // Cache hit
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "scene")

	// Build the scene
	scene, err := BuildScene(region, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := io.MarshalScene(scene); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLScene)
		observability.Cache().OnCacheSet(ctx, "scene", len(data))
	}

	return scene, false, nil // Cache miss
}

// Plan is a convenience wrapper that calls PlanWithCacheInfo and discards the cache hit info.
func (r *Runner) Plan(ctx context.Context, region *geobound.Region, opts Options) (*render.Scene, error) {
	scene, _, err := r.PlanWithCacheInfo(ctx, region, opts)
	return scene, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, scene *render.Scene, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from scene data
	sceneData, err := io.MarshalScene(scene)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize scene for cache key")
	}
	sceneHash := cache.Hash(sceneData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	rendered, err := RenderScene(scene, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, scene *render.Scene, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, scene, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func featureCount(r *geobound.Region) int {
	if r == nil {
		return 0
	}
	return r.FeatureCount()
}

func sceneCells(s *render.Scene) int {
	if s == nil {
		return 0
	}
	return s.Provenance.Cells
}

func scenePoints(s *render.Scene) int {
	if s == nil {
		return 0
	}
	return s.Provenance.Points
}
