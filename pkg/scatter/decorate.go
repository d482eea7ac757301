package scatter

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/woodlandatlas/woodmap/pkg/errors"
	"github.com/woodlandatlas/woodmap/pkg/sprite"
)

// Placement is a decorated point: where to draw which icon, in which
// color, at what size. Size is the icon's scale factor in output pixels.
type Placement struct {
	Point
	Icon  sprite.Kind
	Color string
	Size  float64
}

// SizeDist describes icon sizes: Normal(Mean, Sigma) clamped to
// [Min, Max], in output pixels.
type SizeDist struct {
	Mean  float64 `json:"mean" toml:"mean"`
	Sigma float64 `json:"sigma" toml:"sigma"`
	Min   float64 `json:"min" toml:"min"`
	Max   float64 `json:"max" toml:"max"`
}

// DefaultSizeDist suits icons on a poster around 1600px wide.
func DefaultSizeDist() SizeDist {
	return SizeDist{Mean: 14, Sigma: 3, Min: 7, Max: 22}
}

// Validate checks the size distribution is usable.
// Returns CONFIG_ERROR with the first violation found.
func (d SizeDist) Validate() error {
	return errors.ValidateSizeDistribution(d.Mean, d.Sigma, d.Min, d.Max)
}

// DecorateConfig controls icon assignment.
type DecorateConfig struct {
	// Icons are the kinds to draw from, uniformly. Empty means all
	// built-in kinds.
	Icons []sprite.Kind

	// Palette supplies the fill colors, drawn uniformly.
	Palette sprite.Palette

	// Sizes is the icon size distribution. Zero value means the default.
	Sizes SizeDist
}

// Decorate assigns each point an icon kind, a color, and a size, drawing
// from the same stream that produced the points. The input order is kept.
func Decorate(points []Point, cfg DecorateConfig, rng *rand.Rand) ([]Placement, error) {
	if rng == nil {
		return nil, errors.New(errors.ErrCodeConfig, "decorate stream is required")
	}
	icons := cfg.Icons
	if len(icons) == 0 {
		icons = sprite.Kinds()
	}
	if len(cfg.Palette.Colors) == 0 {
		return nil, errors.New(errors.ErrCodeConfig, "palette has no colors")
	}
	sizes := cfg.Sizes
	if sizes == (SizeDist{}) {
		sizes = DefaultSizeDist()
	}
	if err := sizes.Validate(); err != nil {
		return nil, err
	}

	normal := distuv.Normal{Mu: sizes.Mean, Sigma: sizes.Sigma, Src: rng}
	placements := make([]Placement, len(points))
	for i, p := range points {
		placements[i] = Placement{
			Point: p,
			Icon:  icons[rng.IntN(len(icons))],
			Color: cfg.Palette.Colors[rng.IntN(len(cfg.Palette.Colors))],
			Size:  clamp(normal.Rand(), sizes.Min, sizes.Max),
		}
	}
	return placements, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
