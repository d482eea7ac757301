package offset

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/woodlandatlas/woodmap/pkg/errors"
)

func TestEstimateArithmetic(t *testing.T) {
	// 100 Mt at 5 t/ha-yr needs 20M hectares = 20,000 kha.
	p := Params{EmissionsMt: 100, SequestrationRate: 5, WoodlandKha: 4000, LandKha: 10000}

	r, err := Estimate(p)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if r.RequiredKha != 20000 {
		t.Errorf("RequiredKha = %g, want 20000", r.RequiredKha)
	}
	if r.WoodlandMultiple != 5 {
		t.Errorf("WoodlandMultiple = %g, want 5", r.WoodlandMultiple)
	}
	if r.LandShare != 2 {
		t.Errorf("LandShare = %g, want 2", r.LandShare)
	}
	if r.Params != p {
		t.Errorf("inputs not carried into result: %+v", r.Params)
	}
}

func TestEstimateDefaultsExceedTheCountry(t *testing.T) {
	r, err := Estimate(DefaultParams())
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	// The published UK figures land on 65,000 kha of new woodland,
	// roughly 20x the current stock and 2.7x the whole country.
	if math.Abs(r.RequiredKha-65000) > 1 {
		t.Errorf("RequiredKha = %g, want 65000", r.RequiredKha)
	}
	if r.WoodlandMultiple < 20 || r.WoodlandMultiple > 21 {
		t.Errorf("WoodlandMultiple = %g, want about 20.4", r.WoodlandMultiple)
	}
	if r.LandShare < 2.6 || r.LandShare > 2.7 {
		t.Errorf("LandShare = %g, want about 2.66", r.LandShare)
	}
}

func TestEstimateValidation(t *testing.T) {
	base := DefaultParams()

	cases := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero emissions", func(p *Params) { p.EmissionsMt = 0 }},
		{"negative rate", func(p *Params) { p.SequestrationRate = -1 }},
		{"zero woodland", func(p *Params) { p.WoodlandKha = 0 }},
		{"zero land", func(p *Params) { p.LandKha = 0 }},
		{"nan emissions", func(p *Params) { p.EmissionsMt = math.NaN() }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := base
			tc.mutate(&p)
			if _, err := Estimate(p); !errors.Is(err, errors.ErrCodeConfig) {
				t.Errorf("want CONFIG_ERROR, got %v", err)
			}
		})
	}
}

func TestChartWritesFile(t *testing.T) {
	r, err := Estimate(DefaultParams())
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	path := filepath.Join(t.TempDir(), "offset.svg")
	if err := Chart(r, path); err != nil {
		t.Fatalf("Chart: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("chart file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("chart file is empty")
	}
}

func TestChartRejectsBadPath(t *testing.T) {
	r, _ := Estimate(DefaultParams())
	if err := Chart(r, ""); !errors.Is(err, errors.ErrCodeConfig) {
		t.Errorf("empty path should be CONFIG_ERROR, got %v", err)
	}
}
