package sprite

import (
	"math"
	"strings"
	"testing"

	"github.com/woodlandatlas/woodmap/pkg/errors"
)

func TestOutlinesFitUnitSpace(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			cmds := Outline(kind)
			if len(cmds) == 0 {
				t.Fatal("empty outline")
			}
			if cmds[0].Op != OpMove {
				t.Error("outline must start with a move")
			}
			for _, c := range cmds {
				if c.Op == OpClose {
					continue
				}
				if math.Abs(c.X) > 0.5 || math.Abs(c.Y) > 0.5 {
					t.Errorf("point (%v, %v) outside unit space", c.X, c.Y)
				}
				if c.Op == OpQuad && (math.Abs(c.X1) > 0.5 || math.Abs(c.Y1) > 0.5) {
					t.Errorf("control point (%v, %v) outside unit space", c.X1, c.Y1)
				}
			}
		})
	}
}

func TestOutlineUnknownKindFallsBack(t *testing.T) {
	got := Outline(Kind("oak"))
	want := Outline(Shrub)
	if len(got) != len(want) {
		t.Errorf("unknown kind should fall back to shrub outline")
	}
}

func TestPathData(t *testing.T) {
	for _, kind := range Kinds() {
		d := PathData(kind)
		if !strings.HasPrefix(d, "M") {
			t.Errorf("%s: path %q should start with a move", kind, d)
		}
		if !strings.HasSuffix(d, "Z") {
			t.Errorf("%s: path %q should end closed", kind, d)
		}
		// Trailing zeros are trimmed for compact output
		if strings.Contains(d, ".350 ") || strings.Contains(d, "0.000") {
			t.Errorf("%s: path %q has untrimmed coordinates", kind, d)
		}
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"broadleaf", Broadleaf, false},
		{"Conifer", Conifer, false},
		{" shrub ", Shrub, false},
		{"oak", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run("kind "+tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeConfig) {
					t.Errorf("want CONFIG_ERROR, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKind(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPaletteByName(t *testing.T) {
	p, err := PaletteByName("woodland")
	if err != nil {
		t.Fatalf("PaletteByName: %v", err)
	}
	if len(p.Colors) == 0 {
		t.Fatal("woodland palette has no colors")
	}
	for _, c := range p.Colors {
		if !strings.HasPrefix(c, "#") || len(c) != 7 {
			t.Errorf("color %q is not a 6-digit hex value", c)
		}
	}

	// Empty name selects the default
	d, err := PaletteByName("")
	if err != nil {
		t.Fatalf("PaletteByName(\"\"): %v", err)
	}
	if d.Name != DefaultPalette {
		t.Errorf("default palette = %q, want %q", d.Name, DefaultPalette)
	}

	if _, err := PaletteByName("neon"); !errors.Is(err, errors.ErrCodeConfig) {
		t.Errorf("unknown palette should be CONFIG_ERROR, got %v", err)
	}
}

func TestPaletteNamesSorted(t *testing.T) {
	names := PaletteNames()
	if len(names) < 2 {
		t.Fatalf("expected several palettes, got %v", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("palette names not sorted: %v", names)
		}
	}
}
