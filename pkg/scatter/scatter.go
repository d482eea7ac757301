// Package scatter places random points inside retained grid cells and
// dresses each point with an icon kind, color, and size.
//
// All randomness flows from a single PCG stream seeded by the caller:
// a fixed seed reproduces the exact same point set and decoration on
// every run, which is what makes scenes cacheable.
package scatter

import (
	"math/rand/v2"

	"github.com/ctessum/geom"

	"github.com/woodlandatlas/woodmap/pkg/errors"
	"github.com/woodlandatlas/woodmap/pkg/geobound"
	"github.com/woodlandatlas/woodmap/pkg/hexgrid"
)

// DefaultMaxAttempts bounds rejection sampling per point. A hexagon fills
// about three quarters of its bounding box, so 64 consecutive misses do
// not happen in practice; the bound only guards degenerate geometry.
const DefaultMaxAttempts = 64

// NewStream builds the deterministic random stream shared by sampling
// and decoration.
func NewStream(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Point is one sampled location, tagged with the cell that produced it.
// Poisson placement produces points with a zero Cell.
type Point struct {
	X, Y float64
	Cell hexgrid.Cell
}

// SampleConfig controls per-cell point sampling.
type SampleConfig struct {
	// Counts is the per-cell count distribution. Zero value means the
	// default (two or three points per cell).
	Counts CountDist

	// MaxAttempts caps rejection sampling per point. Zero means
	// DefaultMaxAttempts.
	MaxAttempts int
}

// Sample draws points inside each cell and keeps those inside the region.
//
// Per cell, a count is drawn from cfg.Counts, then that many candidate
// points are placed by rejection sampling: uniform draws over the cell's
// bounding box, accepted once they land inside the hexagon. Accepted
// points are then re-checked against the full region, because a retained
// cell that only partially overlaps the region can produce points in the
// sea. Cell order is preserved in the output.
func Sample(cells []hexgrid.Cell, region *geobound.Region, cfg SampleConfig, rng *rand.Rand) ([]Point, error) {
	if region == nil {
		return nil, errors.New(errors.ErrCodeConfig, "sample region is required")
	}
	if rng == nil {
		return nil, errors.New(errors.ErrCodeConfig, "sample stream is required")
	}
	counts := cfg.Counts
	if len(counts.Counts) == 0 {
		counts = DefaultCountDist()
	}
	sampler, err := counts.Sampler(rng)
	if err != nil {
		return nil, err
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	var points []Point
	for _, cell := range cells {
		n := sampler.Draw()
		for i := 0; i < n; i++ {
			p, ok := pointInCell(cell, rng, maxAttempts)
			if !ok {
				continue
			}
			if !region.Contains(geom.Point{X: p.X, Y: p.Y}) {
				continue
			}
			points = append(points, p)
		}
	}
	return points, nil
}

// pointInCell rejection-samples one point from the cell's hexagon.
func pointInCell(cell hexgrid.Cell, rng *rand.Rand, maxAttempts int) (Point, bool) {
	hex := cell.Polygon()
	b := cell.Bounds()
	w := b.Max.X - b.Min.X
	h := b.Max.Y - b.Min.Y
	for i := 0; i < maxAttempts; i++ {
		p := geom.Point{
			X: b.Min.X + rng.Float64()*w,
			Y: b.Min.Y + rng.Float64()*h,
		}
		if p.Within(hex) != geom.Outside {
			return Point{X: p.X, Y: p.Y, Cell: cell}, true
		}
	}
	return Point{}, false
}
