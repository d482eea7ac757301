// Package pkg provides the core libraries for woodmap poster generation.
//
// # Overview
//
// Woodmap turns a vector boundary into a decorative woodland coverage map:
// the boundary is merged into one region, covered with a hexagonal grid,
// and each retained cell is planted with a few randomly placed tree icons.
// The pkg directory is organized into three main areas:
//
//  1. Domain logic (geometry, grids, sampling, sprites, scenes)
//  2. Infrastructure (caching, errors, fonts, observability)
//  3. Orchestration ([pipeline] ties the stages together)
//
// # Architecture
//
// The typical data flow through woodmap:
//
//	Boundary file (shapefile / GeoJSON)
//	         ↓
//	    [geobound] package (parse, filter, union into one region)
//	         ↓
//	    [hexgrid] package (grid generation + cell filtering)
//	         ↓
//	    [scatter] package (point sampling + decoration)
//	         ↓
//	    [render] package (screen-space scene)
//	         ↓
//	    SVG/PNG/JSON output
//
// # Quick Start
//
// Plan and render a map in one call:
//
//	import (
//	    "context"
//	    "github.com/woodlandatlas/woodmap/pkg/cache"
//	    "github.com/woodlandatlas/woodmap/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Boundary: "uk.geojson",
//	    Seed:     7,
//	    Formats:  []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("uk.svg", result.Artifacts["svg"], 0o644)
//
// # Main Packages
//
// ## Domain Logic
//
// [geobound] - Boundary loading. Reads shapefiles (ctessum/geom) and
// GeoJSON (paulmach/orb), filters features by name, optionally
// simplifies, and unions everything into a single Region.
//
// [hexgrid] - Flat-top hexagonal grids over a bounding box, plus the
// cell filter that decides which cells count as inside the region.
//
// [scatter] - Per-cell point sampling with a weighted count distribution
// and rejection against the region, Poisson-disc placement as an
// alternative, and decoration (icon kind, color, size).
//
// [sprite] - Tree icon outlines and the named color palettes.
//
// [render] - Resolves a region and its decorated points into a
// screen-space scene; the sink subpackage draws scenes to SVG and PNG.
//
// [offset] - Back-of-envelope carbon arithmetic and the comparison chart
// behind the poster caption.
//
// ## Infrastructure
//
// [cache] - Content-addressed caching of boundaries, scenes, and
// artifacts with per-stage TTLs. FileCache for the CLI, NullCache for
// tests and one-shot runs.
//
// [errors] - Typed error codes (DATA_LOAD_ERROR, CONFIG_ERROR, ...) and
// the option validators shared across packages.
//
// [fonts] - The embedded caption font face.
//
// [observability] - Optional hooks around pipeline stages and cache
// operations.
//
// [io] - Scene JSON import and export.
//
// ## Orchestration
//
// [pipeline] - The load → plan → render pipeline used by the CLI.
// Options cover every stage; the Runner adds caching and logging.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...        # All tests
//	go test ./pkg/scatter    # Specific package
//
// [geobound]: https://pkg.go.dev/github.com/woodlandatlas/woodmap/pkg/geobound
// [hexgrid]: https://pkg.go.dev/github.com/woodlandatlas/woodmap/pkg/hexgrid
// [scatter]: https://pkg.go.dev/github.com/woodlandatlas/woodmap/pkg/scatter
// [sprite]: https://pkg.go.dev/github.com/woodlandatlas/woodmap/pkg/sprite
// [render]: https://pkg.go.dev/github.com/woodlandatlas/woodmap/pkg/render
// [offset]: https://pkg.go.dev/github.com/woodlandatlas/woodmap/pkg/offset
// [cache]: https://pkg.go.dev/github.com/woodlandatlas/woodmap/pkg/cache
// [errors]: https://pkg.go.dev/github.com/woodlandatlas/woodmap/pkg/errors
// [fonts]: https://pkg.go.dev/github.com/woodlandatlas/woodmap/pkg/fonts
// [observability]: https://pkg.go.dev/github.com/woodlandatlas/woodmap/pkg/observability
// [io]: https://pkg.go.dev/github.com/woodlandatlas/woodmap/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/woodlandatlas/woodmap/pkg/pipeline
package pkg
