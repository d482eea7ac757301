// Package offset estimates how much new woodland it would take to
// absorb a country's annual greenhouse-gas emissions.
//
// The arithmetic is deliberately naive: a published emissions total
// divided by a published per-hectare sequestration rate. The result
// feeds the poster caption and the comparison chart, not a carbon
// ledger.
package offset

import "github.com/woodlandatlas/woodmap/pkg/errors"

// Params are the published figures the estimate runs on.
type Params struct {
	// EmissionsMt is the annual emissions total in megatonnes CO2e.
	EmissionsMt float64 `json:"emissions_mt" toml:"emissions_mt"`

	// SequestrationRate is tonnes CO2e absorbed per hectare per year,
	// averaged over a young mixed woodland's first decades.
	SequestrationRate float64 `json:"sequestration_rate" toml:"sequestration_rate"`

	// WoodlandKha is the existing woodland stock in thousand hectares.
	WoodlandKha float64 `json:"woodland_kha" toml:"woodland_kha"`

	// LandKha is the total land area in thousand hectares.
	LandKha float64 `json:"land_kha" toml:"land_kha"`
}

// DefaultParams describe the United Kingdom: 2019 territorial emissions,
// woodland stock and land area from the national inventory.
func DefaultParams() Params {
	return Params{
		EmissionsMt:       455,
		SequestrationRate: 7,
		WoodlandKha:       3190,
		LandKha:           24436,
	}
}

// Validate checks every figure is positive.
// Returns CONFIG_ERROR with the first violation found.
func (p Params) Validate() error {
	switch {
	case !(p.EmissionsMt > 0):
		return errors.New(errors.ErrCodeConfig, "annual emissions must be positive, got %g", p.EmissionsMt)
	case !(p.SequestrationRate > 0):
		return errors.New(errors.ErrCodeConfig, "sequestration rate must be positive, got %g", p.SequestrationRate)
	case !(p.WoodlandKha > 0):
		return errors.New(errors.ErrCodeConfig, "existing woodland must be positive, got %g", p.WoodlandKha)
	case !(p.LandKha > 0):
		return errors.New(errors.ErrCodeConfig, "land area must be positive, got %g", p.LandKha)
	}
	return nil
}

// Result is the offset estimate with the comparisons used in captions.
type Result struct {
	Params Params `json:"params"`

	// RequiredKha is the new woodland needed, in thousand hectares.
	RequiredKha float64 `json:"required_kha"`

	// WoodlandMultiple is RequiredKha as a multiple of the existing stock.
	WoodlandMultiple float64 `json:"woodland_multiple"`

	// LandShare is RequiredKha as a fraction of the total land area.
	// Values above 1 mean the country is not big enough.
	LandShare float64 `json:"land_share"`
}

// Estimate computes the required woodland area from the published figures.
func Estimate(p Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	// Mt -> t is 1e6; ha -> kha is 1e3.
	requiredKha := p.EmissionsMt * 1e6 / p.SequestrationRate / 1e3

	return Result{
		Params:           p,
		RequiredKha:      requiredKha,
		WoodlandMultiple: requiredKha / p.WoodlandKha,
		LandShare:        requiredKha / p.LandKha,
	}, nil
}
