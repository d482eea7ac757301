package sink

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"

	"github.com/woodlandatlas/woodmap/pkg/errors"
	"github.com/woodlandatlas/woodmap/pkg/fonts"
	"github.com/woodlandatlas/woodmap/pkg/render"
	"github.com/woodlandatlas/woodmap/pkg/sprite"
)

// RenderPNG rasterizes the scene natively, replaying the same sprite
// outlines the SVG sink writes as path data.
func RenderPNG(scene *render.Scene, opts ...Option) ([]byte, error) {
	style := applyOptions(opts)

	w := int(math.Ceil(scene.Frame.Width))
	h := int(math.Ceil(scene.Frame.Height))
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeRender, "scene frame %dx%d is empty", w, h)
	}

	dc := gg.NewContext(w, h)
	setColor(dc, style.Background, 1)
	dc.Clear()

	drawSilhouette(dc, scene.Silhouette, style)

	// Sprite outlines overlap (crown over trunk), so icons fill with the
	// winding rule; only the silhouette needs even-odd for its holes.
	dc.SetFillRule(gg.FillRuleWinding)
	for _, ic := range scene.Icons {
		drawIcon(dc, ic)
	}
	if style.Caption != "" {
		if err := drawCaption(dc, scene.Frame, style); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "encode png")
	}
	return buf.Bytes(), nil
}

func drawSilhouette(dc *gg.Context, rings []render.Ring, style Style) {
	if len(rings) == 0 {
		return
	}
	dc.SetFillRule(gg.FillRuleEvenOdd)
	for _, ring := range rings {
		for i, p := range ring {
			if i == 0 {
				dc.MoveTo(p.X, p.Y)
			} else {
				dc.LineTo(p.X, p.Y)
			}
		}
		dc.ClosePath()
	}
	setColor(dc, style.LandFill, 1)
	dc.FillPreserve()
	setColor(dc, style.LandStroke, 1)
	dc.SetLineWidth(style.LandStrokeWidth)
	dc.Stroke()
}

// drawIcon replays the sprite outline under a translate+scale transform.
// gg bakes the matrix into path points as they are added, so the stroke
// width is set in absolute pixels, not sprite units.
func drawIcon(dc *gg.Context, ic render.Icon) {
	dc.Push()
	dc.Translate(ic.X, ic.Y)
	dc.Scale(ic.Size, ic.Size)
	for _, c := range sprite.Outline(ic.Kind) {
		switch c.Op {
		case sprite.OpMove:
			dc.MoveTo(c.X, c.Y)
		case sprite.OpLine:
			dc.LineTo(c.X, c.Y)
		case sprite.OpQuad:
			dc.QuadraticTo(c.X1, c.Y1, c.X, c.Y)
		case sprite.OpClose:
			dc.ClosePath()
		}
	}
	dc.Pop()

	setColor(dc, ic.Color, iconFillOpacity)
	dc.FillPreserve()
	setColor(dc, ic.Color, iconStrokeOpacity)
	dc.SetLineWidth(iconStrokeWidth * ic.Size)
	dc.Stroke()
}

func drawCaption(dc *gg.Context, frame render.Frame, style Style) error {
	face, err := fonts.Face(style.CaptionSize)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	setColor(dc, style.CaptionColor, 1)
	dc.DrawStringAnchored(style.Caption, frame.Width/2, frame.Height-style.CaptionSize*0.75, 0.5, 0.5)
	return nil
}

func setColor(dc *gg.Context, hex string, alpha float64) {
	r, g, b := parseHexColor(hex)
	dc.SetRGBA(r, g, b, alpha)
}
