// Package fonts provides the caption typeface for raster rendering.
//
// The Go Regular face ships as TTF bytes inside golang.org/x/image, so
// captions render identically everywhere without touching system fonts.
package fonts

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/woodlandatlas/woodmap/pkg/errors"
)

// Family is the font-family value written into SVG output, with fallbacks
// for viewers that do not ship the Go face.
const Family = "Go, 'Helvetica Neue', Arial, sans-serif"

var (
	parseOnce sync.Once
	parsed    *opentype.Font
	parseErr  error

	faceMu    sync.Mutex
	faceCache = map[float64]font.Face{}
)

// Face returns a caption face at the given point size (72 DPI). The font
// is parsed once and faces are cached per size; callers must not mutate them.
func Face(size float64) (font.Face, error) {
	parseOnce.Do(func() {
		parsed, parseErr = opentype.Parse(goregular.TTF)
	})
	if parseErr != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, parseErr, "parse embedded font")
	}

	faceMu.Lock()
	defer faceMu.Unlock()
	if face, ok := faceCache[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build %gpt font face", size)
	}
	faceCache[size] = face
	return face, nil
}
