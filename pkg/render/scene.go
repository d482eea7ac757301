// Package render resolves a region and its decorated points into a
// drawable scene, handed to the sink subpackage for output.
//
// A Scene is fully resolved: every coordinate is in output pixels with
// the origin at the top-left corner and y growing downward. Building the
// scene is the last deterministic step of the pipeline; sinks only
// replay it, so any sink given the same scene draws the same picture.
package render

import (
	"math"

	"github.com/woodlandatlas/woodmap/pkg/errors"
	"github.com/woodlandatlas/woodmap/pkg/geobound"
	"github.com/woodlandatlas/woodmap/pkg/scatter"
	"github.com/woodlandatlas/woodmap/pkg/sprite"
)

// Point is a screen-space coordinate in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Ring is one closed silhouette outline. Holes are separate rings and
// rely on the even-odd fill rule.
type Ring []Point

// Frame is the output canvas in pixels.
type Frame struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin float64 `json:"margin"`
}

// Icon is one placed sprite in screen space. Size is the scale factor
// applied to the unit-space sprite outline, so it equals the icon's
// rendered width in pixels.
type Icon struct {
	X     float64     `json:"x"`
	Y     float64     `json:"y"`
	Kind  sprite.Kind `json:"kind"`
	Color string      `json:"color"`
	Size  float64     `json:"size"`
}

// Provenance records how a scene was produced. It travels with the
// scene JSON so a rendered file can be traced back to its inputs.
type Provenance struct {
	Source      string  `json:"source,omitempty"`
	Seed        uint64  `json:"seed"`
	CellSize    float64 `json:"cell_size,omitempty"`
	TouchPolicy string  `json:"touch_policy,omitempty"`
	Placement   string  `json:"placement,omitempty"`
	Palette     string  `json:"palette,omitempty"`
	Cells       int     `json:"cells,omitempty"`
	Points      int     `json:"points"`
}

// Scene is a resolved drawing: the land silhouette plus every icon,
// all in pixels.
type Scene struct {
	Frame      Frame      `json:"frame"`
	Silhouette []Ring     `json:"silhouette"`
	Icons      []Icon     `json:"icons"`
	Provenance Provenance `json:"provenance"`
}

// BuildOptions configure scene assembly.
type BuildOptions struct {
	// Width is the frame width in pixels. Height follows from the
	// region's aspect ratio.
	Width float64

	// Margin is the uniform frame margin in pixels.
	Margin float64

	// Provenance is carried into the scene; Points is overwritten with
	// the placement count.
	Provenance Provenance
}

// Build fits the region into a frame of the requested width and lays the
// placements over it. Boundary data is y-up, screens are y-down, so the
// vertical axis is flipped here, exactly once.
func Build(region *geobound.Region, placements []scatter.Placement, opts BuildOptions) (*Scene, error) {
	if region == nil {
		return nil, errors.New(errors.ErrCodeConfig, "scene region is required")
	}
	if !(opts.Width > 0) {
		return nil, errors.New(errors.ErrCodeConfig, "frame width must be positive, got %g", opts.Width)
	}
	if opts.Margin < 0 || 2*opts.Margin >= opts.Width {
		return nil, errors.New(errors.ErrCodeConfig, "margin %g leaves no drawing area in width %g", opts.Margin, opts.Width)
	}

	b := region.Bounds()
	spanX := b.Max.X - b.Min.X
	spanY := b.Max.Y - b.Min.Y
	if !(spanX > 0) || !(spanY > 0) {
		return nil, errors.New(errors.ErrCodeDataLoad, "region bounds are degenerate")
	}

	scale := (opts.Width - 2*opts.Margin) / spanX
	toX := func(x float64) float64 { return opts.Margin + (x-b.Min.X)*scale }
	toY := func(y float64) float64 { return opts.Margin + (b.Max.Y-y)*scale }

	scene := &Scene{
		Frame: Frame{
			Width:  opts.Width,
			Height: round2(spanY*scale + 2*opts.Margin),
			Margin: opts.Margin,
		},
		Provenance: opts.Provenance,
	}

	for _, poly := range region.Polygons() {
		for _, ring := range poly {
			if len(ring) == 0 {
				continue
			}
			out := make(Ring, len(ring))
			for i, v := range ring {
				out[i] = Point{X: round2(toX(v.X)), Y: round2(toY(v.Y))}
			}
			scene.Silhouette = append(scene.Silhouette, out)
		}
	}

	scene.Icons = make([]Icon, len(placements))
	for i, p := range placements {
		scene.Icons[i] = Icon{
			X:     round2(toX(p.X)),
			Y:     round2(toY(p.Y)),
			Kind:  p.Icon,
			Color: p.Color,
			Size:  round2(p.Size),
		}
	}
	scene.Provenance.Points = len(placements)
	return scene, nil
}

// Validate checks a scene is drawable. Imported scenes go through this
// before any sink sees them.
func (s *Scene) Validate() error {
	if !(s.Frame.Width > 0) || !(s.Frame.Height > 0) {
		return errors.New(errors.ErrCodeDataLoad, "scene frame %gx%g is empty", s.Frame.Width, s.Frame.Height)
	}
	if len(s.Silhouette) == 0 {
		return errors.New(errors.ErrCodeDataLoad, "scene has no silhouette")
	}
	for i, ring := range s.Silhouette {
		if len(ring) < 3 {
			return errors.New(errors.ErrCodeDataLoad, "silhouette ring %d has %d points, need at least 3", i, len(ring))
		}
	}
	for i, ic := range s.Icons {
		if !(ic.Size > 0) {
			return errors.New(errors.ErrCodeDataLoad, "icon %d has size %g", i, ic.Size)
		}
		if ic.Color == "" {
			return errors.New(errors.ErrCodeDataLoad, "icon %d has no color", i)
		}
	}
	return nil
}

// round2 keeps scene JSON compact and stable across runs.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
