// Package sink turns resolved scenes into output bytes.
//
// Sinks are pure: the same scene and style always produce the same
// bytes, which is what makes artifacts cacheable. SVG is written by
// hand into a buffer; PNG replays the same shapes through a raster
// context.
package sink

import "strconv"

// Style holds the visual constants shared by every sink.
type Style struct {
	Background      string
	LandFill        string
	LandStroke      string
	LandStrokeWidth float64
	Caption         string
	CaptionColor    string
	CaptionSize     float64
}

// Icon opacities are fixed: translucent fills let overlapping crowns
// read as denser woodland, and the stroke is fainter still.
const (
	iconFillOpacity   = 0.88
	iconStrokeOpacity = 0.45

	// iconStrokeWidth is relative to the icon's size.
	iconStrokeWidth = 0.04
)

// DefaultStyle mirrors the woodland poster: warm paper, pale land,
// muted caption.
func DefaultStyle() Style {
	return Style{
		Background:      "#f6f1e3",
		LandFill:        "#e9e2cd",
		LandStroke:      "#b5ac93",
		LandStrokeWidth: 1.5,
		CaptionColor:    "#4a4435",
		CaptionSize:     22,
	}
}

// Option adjusts the style of a single render call.
type Option func(*Style)

// WithBackground sets the canvas color.
func WithBackground(hex string) Option {
	return func(s *Style) { s.Background = hex }
}

// WithLand sets the silhouette fill and stroke colors.
func WithLand(fill, stroke string) Option {
	return func(s *Style) {
		s.LandFill = fill
		s.LandStroke = stroke
	}
}

// WithCaption sets the caption text under the map. Empty means no caption.
func WithCaption(text string) Option {
	return func(s *Style) { s.Caption = text }
}

func applyOptions(opts []Option) Style {
	s := DefaultStyle()
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// parseHexColor reads "#rgb" or "#rrggbb" into [0,1] channels.
// Unparseable colors come back black, which is visible enough to notice.
func parseHexColor(hex string) (r, g, b float64) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	switch len(hex) {
	case 3:
		return hexChannel(hex[0:1] + hex[0:1]), hexChannel(hex[1:2] + hex[1:2]), hexChannel(hex[2:3] + hex[2:3])
	case 6:
		return hexChannel(hex[0:2]), hexChannel(hex[2:4]), hexChannel(hex[4:6])
	}
	return 0, 0, 0
}

func hexChannel(s string) float64 {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0
	}
	return float64(v) / 255
}
