package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/woodlandatlas/woodmap/pkg/fonts"
	"github.com/woodlandatlas/woodmap/pkg/render"
	"github.com/woodlandatlas/woodmap/pkg/sprite"
)

// RenderSVG writes the scene as a standalone SVG document. Output is
// deterministic: icons appear in scene order and coordinates are
// formatted with fixed precision.
func RenderSVG(scene *render.Scene, opts ...Option) []byte {
	style := applyOptions(opts)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		coord(scene.Frame.Width), coord(scene.Frame.Height), coord(scene.Frame.Width), coord(scene.Frame.Height))
	fmt.Fprintf(&buf, `  <rect width="%s" height="%s" fill="%s"/>`+"\n",
		coord(scene.Frame.Width), coord(scene.Frame.Height), style.Background)

	renderSilhouette(&buf, scene.Silhouette, style)
	renderIcons(&buf, scene.Icons)
	if style.Caption != "" {
		renderCaption(&buf, scene.Frame, style)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderSilhouette writes all rings as one path so holes punch out via
// the even-odd rule.
func renderSilhouette(buf *bytes.Buffer, rings []render.Ring, style Style) {
	if len(rings) == 0 {
		return
	}
	var d strings.Builder
	for _, ring := range rings {
		for i, p := range ring {
			cmd := byte('L')
			if i == 0 {
				cmd = 'M'
			}
			fmt.Fprintf(&d, "%c%s %s", cmd, coord(p.X), coord(p.Y))
		}
		d.WriteByte('Z')
	}
	fmt.Fprintf(buf, `  <path d="%s" fill="%s" fill-rule="evenodd" stroke="%s" stroke-width="%s" stroke-linejoin="round"/>`+"\n",
		d.String(), style.LandFill, style.LandStroke, coord(style.LandStrokeWidth))
}

func renderIcons(buf *bytes.Buffer, icons []render.Icon) {
	for _, ic := range icons {
		fmt.Fprintf(buf,
			`  <path d="%s" transform="translate(%s %s) scale(%s)" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-opacity="%.2f" stroke-width="%.2f"/>`+"\n",
			sprite.PathData(ic.Kind), coord(ic.X), coord(ic.Y), coord(ic.Size),
			ic.Color, iconFillOpacity, ic.Color, iconStrokeOpacity, iconStrokeWidth)
	}
}

func renderCaption(buf *bytes.Buffer, frame render.Frame, style Style) {
	fmt.Fprintf(buf,
		`  <text x="%s" y="%s" text-anchor="middle" font-family="%s" font-size="%s" fill="%s">%s</text>`+"\n",
		coord(frame.Width/2), coord(frame.Height-style.CaptionSize*0.5),
		fonts.Family, coord(style.CaptionSize), style.CaptionColor, escapeXML(style.Caption))
}

// coord formats a pixel value compactly, trimming trailing zeros.
func coord(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
