package hexgrid

import (
	"math"
	"testing"

	"github.com/ctessum/geom"

	"github.com/woodlandatlas/woodmap/pkg/errors"
	"github.com/woodlandatlas/woodmap/pkg/geobound"
)

func squareRegion(t *testing.T, x0, y0, x1, y1 float64) *geobound.Region {
	t.Helper()
	poly := geom.Polygon{{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
	}}
	region, err := geobound.NewRegion(poly, 1)
	if err != nil {
		t.Fatalf("NewRegion: %v", err)
	}
	return region
}

func TestGenerateRejectsBadSize(t *testing.T) {
	b := &geom.Bounds{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 10, Y: 10}}

	for _, size := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := Generate(b, size); !errors.Is(err, errors.ErrCodeConfig) {
			t.Errorf("Generate(size=%v) should be CONFIG_ERROR, got %v", size, err)
		}
	}
}

func TestGenerateRejectsBadBounds(t *testing.T) {
	inverted := &geom.Bounds{Min: geom.Point{X: 10, Y: 10}, Max: geom.Point{X: 0, Y: 0}}
	if _, err := Generate(inverted, 1); !errors.Is(err, errors.ErrCodeConfig) {
		t.Errorf("inverted bounds should be CONFIG_ERROR, got %v", err)
	}
	if _, err := Generate(nil, 1); !errors.Is(err, errors.ErrCodeConfig) {
		t.Errorf("nil bounds should be CONFIG_ERROR, got %v", err)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	b := &geom.Bounds{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 10, Y: 10}}

	first, err := Generate(b, 1.5)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := Generate(b, 1.5)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("cell counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("cell %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestGenerateCoversBounds(t *testing.T) {
	b := &geom.Bounds{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 10, Y: 10}}
	cells, err := Generate(b, 1)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// Every probe point in the box must land in at least one cell.
	for x := 0.0; x <= 10; x += 0.7 {
		for y := 0.0; y <= 10; y += 0.7 {
			pt := geom.Point{X: x, Y: y}
			covered := false
			for _, c := range cells {
				if pt.Within(c.Polygon()) != geom.Outside {
					covered = true
					break
				}
			}
			if !covered {
				t.Fatalf("point %v not covered by any cell", pt)
			}
		}
	}
}

func TestCellGeometry(t *testing.T) {
	c := Cell{Q: 0, R: 0, Center: geom.Point{X: 2, Y: 3}, Size: 1.5}

	poly := c.Polygon()
	if len(poly) != 1 || len(poly[0]) != 6 {
		t.Fatalf("hexagon should be one ring of 6 vertices, got %d rings", len(poly))
	}
	for i, v := range poly[0] {
		d := math.Hypot(v.X-c.Center.X, v.Y-c.Center.Y)
		if math.Abs(d-c.Size) > 1e-9 {
			t.Errorf("vertex %d at distance %v from center, want %v", i, d, c.Size)
		}
	}

	// First vertex is the rightmost point of a flat-top hexagon
	if v := poly[0][0]; math.Abs(v.X-(c.Center.X+c.Size)) > 1e-9 || math.Abs(v.Y-c.Center.Y) > 1e-9 {
		t.Errorf("first vertex = %v, want rightmost point", v)
	}

	if math.Abs(c.Width()-3.0) > 1e-9 {
		t.Errorf("Width = %v, want 3.0", c.Width())
	}
	if math.Abs(c.Height()-1.5*math.Sqrt(3)) > 1e-9 {
		t.Errorf("Height = %v, want %v", c.Height(), 1.5*math.Sqrt(3))
	}

	b := c.Bounds()
	if math.Abs(b.Max.X-b.Min.X-c.Width()) > 1e-9 {
		t.Errorf("bounds width = %v, want %v", b.Max.X-b.Min.X, c.Width())
	}
	if math.Abs(b.Max.Y-b.Min.Y-c.Height()) > 1e-9 {
		t.Errorf("bounds height = %v, want %v", b.Max.Y-b.Min.Y, c.Height())
	}
}

func TestFilterSquareRegion(t *testing.T) {
	region := squareRegion(t, 0, 0, 10, 10)
	cells, err := Generate(region.Bounds(), 1)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	kept := Filter(cells, region, TouchRetain)
	if len(kept) == 0 {
		t.Fatal("no cells retained for a 10x10 square")
	}
	if len(kept) >= len(cells) {
		t.Errorf("filter should drop the padding cells: kept %d of %d", len(kept), len(cells))
	}

	// Every retained cell genuinely intersects the region.
	for _, c := range kept {
		hex := c.Polygon()
		if hex.Intersection(region.Polygonal()).Area() > 0 {
			continue
		}
		if !touchesBoundary(hex, region.Polygons()[0]) {
			t.Errorf("cell (%d,%d) retained without touching the region", c.Q, c.R)
		}
	}

	// Every point of the region lies in some retained cell, so dropping
	// the rest lost nothing.
	for x := 0.5; x < 10; x += 1.3 {
		for y := 0.5; y < 10; y += 1.3 {
			pt := geom.Point{X: x, Y: y}
			covered := false
			for _, c := range kept {
				if pt.Within(c.Polygon()) != geom.Outside {
					covered = true
					break
				}
			}
			if !covered {
				t.Fatalf("region point %v not covered by retained cells", pt)
			}
		}
	}
}

func TestFilterCoarseCells(t *testing.T) {
	// Cells half as wide as the region itself: at this scale the kept set
	// is small enough to check exactness in both directions.
	region := squareRegion(t, 0, 0, 10, 10)
	cells, err := Generate(region.Bounds(), 5)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	kept := Filter(cells, region, TouchRetain)
	if len(kept) == 0 {
		t.Fatal("no cells retained for a 10x10 square with size-5 cells")
	}

	keptSet := map[[2]int]bool{}
	for _, c := range kept {
		keptSet[[2]int{c.Q, c.R}] = true
	}
	for _, c := range cells {
		hex := c.Polygon()
		intersects := hex.Intersection(region.Polygonal()).Area() > 0 ||
			touchesBoundary(hex, region.Polygons()[0])
		if intersects != keptSet[[2]int{c.Q, c.R}] {
			t.Errorf("cell (%d,%d): intersects=%v but retained=%v",
				c.Q, c.R, intersects, keptSet[[2]int{c.Q, c.R}])
		}
	}
}

func TestFilterTouchPolicy(t *testing.T) {
	region := squareRegion(t, 0, 0, 1, 1)

	// Leftmost vertex of this hexagon lands exactly on the square's right
	// edge at (1, 0.5): boundary contact with zero overlap area.
	touching := Cell{Center: geom.Point{X: 1.25, Y: 0.5}, Size: 0.25}
	// Clearly overlapping and clearly separate cells for contrast.
	inside := Cell{Center: geom.Point{X: 0.5, Y: 0.5}, Size: 0.25}
	outside := Cell{Center: geom.Point{X: 5, Y: 5}, Size: 0.25}

	cells := []Cell{inside, touching, outside}

	retained := Filter(cells, region, TouchRetain)
	if len(retained) != 2 {
		t.Errorf("TouchRetain kept %d cells, want 2 (inside + touching)", len(retained))
	}

	discarded := Filter(cells, region, TouchDiscard)
	if len(discarded) != 1 {
		t.Errorf("TouchDiscard kept %d cells, want 1 (inside only)", len(discarded))
	}
	if len(discarded) == 1 && discarded[0].Center != inside.Center {
		t.Errorf("TouchDiscard kept wrong cell: %+v", discarded[0])
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	region := squareRegion(t, 0, 0, 10, 10)
	cells, err := Generate(region.Bounds(), 1)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	kept := Filter(cells, region, TouchRetain)
	for i := 1; i < len(kept); i++ {
		prev, cur := kept[i-1], kept[i]
		if cur.Q < prev.Q || (cur.Q == prev.Q && cur.R <= prev.R) {
			t.Fatalf("filter broke generation order at %d: (%d,%d) after (%d,%d)",
				i, cur.Q, cur.R, prev.Q, prev.R)
		}
	}
}

func TestParseTouchPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    TouchPolicy
		wantErr bool
	}{
		{"", TouchRetain, false},
		{"retain", TouchRetain, false},
		{"RETAIN", TouchRetain, false},
		{"discard", TouchDiscard, false},
		{"keep", "", true},
	}

	for _, tt := range tests {
		t.Run("policy "+tt.in, func(t *testing.T) {
			got, err := ParseTouchPolicy(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeConfig) {
					t.Errorf("want CONFIG_ERROR, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTouchPolicy(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseTouchPolicy(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
