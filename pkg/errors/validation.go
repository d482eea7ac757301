package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateCellSize validates the hexagonal grid cell size.
// The size is the hexagon circumradius in the linear units of the
// boundary's coordinate system and must be strictly positive and finite.
func ValidateCellSize(size float64) error {
	if !(size > 0) || math.IsInf(size, 1) {
		return New(ErrCodeConfig, "cell size must be positive and finite, got %g", size)
	}
	return nil
}

// ValidateBoundaryPath validates a boundary file path for safety and
// checks the extension is one the loader understands.
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No control characters or null bytes
//   - Extension must be .shp, .geojson, or .json
func ValidateBoundaryPath(path string) error {
	if path == "" {
		return New(ErrCodeConfig, "boundary path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeConfig, "boundary path contains invalid characters")
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".shp", ".geojson", ".json":
		return nil
	}
	return New(ErrCodeUnsupported, "unsupported boundary format %q (must be .shp, .geojson, or .json)", filepath.Ext(path))
}

// ValidateOutputPath validates an output file path.
// It rejects empty paths and paths containing control characters;
// the directory is not required to exist yet.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeConfig, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeConfig, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeConfig, "output path contains invalid characters")
		}
	}

	return nil
}

// ValidateCountDistribution validates a per-cell point-count distribution.
// Counts must be non-negative, weights strictly positive, and the two
// slices the same non-zero length.
func ValidateCountDistribution(counts []int, weights []float64) error {
	if len(counts) == 0 {
		return New(ErrCodeConfig, "count distribution cannot be empty")
	}
	if len(counts) != len(weights) {
		return New(ErrCodeConfig, "count distribution has %d counts but %d weights", len(counts), len(weights))
	}
	for i, c := range counts {
		if c < 0 {
			return New(ErrCodeConfig, "count distribution values must be non-negative, got %d", c)
		}
		if !(weights[i] > 0) {
			return New(ErrCodeConfig, "count distribution weights must be positive, got %g", weights[i])
		}
	}
	return nil
}

// ValidateSizeDistribution validates the icon size distribution.
// The mean and bounds must be positive, sigma non-negative, and the
// clamp interval non-empty.
func ValidateSizeDistribution(mean, sigma, min, max float64) error {
	if !(mean > 0) {
		return New(ErrCodeConfig, "size mean must be positive, got %g", mean)
	}
	if sigma < 0 {
		return New(ErrCodeConfig, "size sigma must be non-negative, got %g", sigma)
	}
	if !(min > 0) || max < min {
		return New(ErrCodeConfig, "size bounds [%g, %g] are invalid", min, max)
	}
	return nil
}
