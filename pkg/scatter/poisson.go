package scatter

import (
	mathrand "math/rand"

	"github.com/ctessum/geom"
	"github.com/fogleman/poissondisc"

	"github.com/woodlandatlas/woodmap/pkg/errors"
	"github.com/woodlandatlas/woodmap/pkg/geobound"
)

// poissonK is the candidate budget per active sample in Bridson's
// algorithm. Higher values pack tighter but cost proportionally more.
const poissonK = 10

// SamplePoisson scatters blue-noise points across the whole region,
// skipping the grid entirely. Spacing is the minimum distance between
// points in boundary units. The disc sampler runs over the region's
// bounding box and points outside the region are dropped afterwards.
//
// poissondisc drives a legacy rand source, so the seed is folded into
// one; determinism per seed still holds.
func SamplePoisson(region *geobound.Region, spacing float64, seed uint64) ([]Point, error) {
	if region == nil {
		return nil, errors.New(errors.ErrCodeConfig, "sample region is required")
	}
	if !(spacing > 0) {
		return nil, errors.New(errors.ErrCodeConfig, "poisson spacing must be positive, got %g", spacing)
	}

	b := region.Bounds()
	rng := mathrand.New(mathrand.NewSource(int64(seed)))
	raw := poissondisc.Sample(b.Min.X, b.Min.Y, b.Max.X, b.Max.Y, spacing, poissonK, rng)

	points := make([]Point, 0, len(raw))
	for _, p := range raw {
		if region.Contains(geom.Point{X: p.X, Y: p.Y}) {
			points = append(points, Point{X: p.X, Y: p.Y})
		}
	}
	return points, nil
}
