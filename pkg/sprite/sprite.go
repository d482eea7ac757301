// Package sprite defines the tree icon shapes and color palettes used to
// decorate sampled points.
//
// Each icon is authored once as an outline in unit space and compiled to
// whatever the active sink needs: SVG path data or raster draw calls.
// Unit space is the square [-0.5, 0.5] x [-0.5, 0.5] centered on the
// planting point, with y growing downward to match screen coordinates.
package sprite

import (
	"fmt"
	"strings"

	"github.com/woodlandatlas/woodmap/pkg/errors"
)

// Kind identifies an icon shape.
type Kind string

const (
	// Broadleaf is a round-crowned tree with a trunk.
	Broadleaf Kind = "broadleaf"

	// Conifer is a stacked-triangle tree with a trunk.
	Conifer Kind = "conifer"

	// Shrub is a low crown without a trunk.
	Shrub Kind = "shrub"
)

// Kinds returns the default icon set in stable order.
func Kinds() []Kind {
	return []Kind{Broadleaf, Conifer, Shrub}
}

// ParseKind converts a config string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case Broadleaf:
		return Broadleaf, nil
	case Conifer:
		return Conifer, nil
	case Shrub:
		return Shrub, nil
	}
	return "", errors.New(errors.ErrCodeConfig, "unknown icon kind %q (valid: broadleaf, conifer, shrub)", s)
}

// Op is one outline drawing operation.
type Op uint8

const (
	// OpMove starts a new subpath at (X, Y).
	OpMove Op = iota

	// OpLine draws a straight segment to (X, Y).
	OpLine

	// OpQuad draws a quadratic curve to (X, Y) with control point (X1, Y1).
	OpQuad

	// OpClose closes the current subpath.
	OpClose
)

// Command is one step of a sprite outline in unit space.
type Command struct {
	Op     Op
	X1, Y1 float64 // control point, OpQuad only
	X, Y   float64
}

// crown traces a four-arc blob around (cx, cy) with radii rx, ry.
// The control points sit at the corners, giving a slightly full shape.
func crown(cx, cy, rx, ry float64) []Command {
	return []Command{
		{Op: OpMove, X: cx + rx, Y: cy},
		{Op: OpQuad, X1: cx + rx, Y1: cy + ry, X: cx, Y: cy + ry},
		{Op: OpQuad, X1: cx - rx, Y1: cy + ry, X: cx - rx, Y: cy},
		{Op: OpQuad, X1: cx - rx, Y1: cy - ry, X: cx, Y: cy - ry},
		{Op: OpQuad, X1: cx + rx, Y1: cy - ry, X: cx + rx, Y: cy},
		{Op: OpClose},
	}
}

// trunk traces a narrow rectangle from y0 down to y1.
func trunk(halfWidth, y0, y1 float64) []Command {
	return []Command{
		{Op: OpMove, X: -halfWidth, Y: y0},
		{Op: OpLine, X: -halfWidth, Y: y1},
		{Op: OpLine, X: halfWidth, Y: y1},
		{Op: OpLine, X: halfWidth, Y: y0},
		{Op: OpClose},
	}
}

func triangle(halfBase, yBase, yApex float64) []Command {
	return []Command{
		{Op: OpMove, X: -halfBase, Y: yBase},
		{Op: OpLine, X: halfBase, Y: yBase},
		{Op: OpLine, X: 0, Y: yApex},
		{Op: OpClose},
	}
}

var outlines = map[Kind][]Command{
	Broadleaf: concat(
		crown(0, -0.1, 0.35, 0.35),
		trunk(0.05, 0.2, 0.5),
	),
	Conifer: concat(
		triangle(0.35, 0.3, -0.15),
		triangle(0.25, 0, -0.5),
		trunk(0.04, 0.3, 0.5),
	),
	Shrub: crown(0, 0.2, 0.35, 0.28),
}

func concat(parts ...[]Command) []Command {
	var out []Command
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Outline returns the drawing commands for the kind.
// Unknown kinds fall back to Shrub so rendering never fails midway.
func Outline(kind Kind) []Command {
	if cmds, ok := outlines[kind]; ok {
		return cmds
	}
	return outlines[Shrub]
}

// PathData compiles the kind's outline to an SVG path attribute.
func PathData(kind Kind) string {
	var b strings.Builder
	for _, c := range Outline(kind) {
		switch c.Op {
		case OpMove:
			fmt.Fprintf(&b, "M%s %s", coord(c.X), coord(c.Y))
		case OpLine:
			fmt.Fprintf(&b, "L%s %s", coord(c.X), coord(c.Y))
		case OpQuad:
			fmt.Fprintf(&b, "Q%s %s %s %s", coord(c.X1), coord(c.Y1), coord(c.X), coord(c.Y))
		case OpClose:
			b.WriteString("Z")
		}
	}
	return b.String()
}

// coord formats a unit-space coordinate compactly.
func coord(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", v), "0"), ".")
}
