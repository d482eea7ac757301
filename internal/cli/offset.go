package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/woodlandatlas/woodmap/pkg/offset"
)

// newOffsetCmd creates the offset command for the back-of-envelope
// woodland estimate.
func newOffsetCmd() *cobra.Command {
	params := offset.DefaultParams()
	var chartPath string

	cmd := &cobra.Command{
		Use:   "offset",
		Short: "Estimate the woodland needed to offset annual emissions",
		Long: `Estimate how much new woodland it would take to absorb a country's
annual greenhouse-gas emissions.

The defaults describe the United Kingdom; override any figure to model
another country. The arithmetic is poster-caption material, not a
carbon ledger: emissions divided by a flat per-hectare sequestration
rate.

Examples:
  woodmap offset
  woodmap offset --emissions 380 --rate 5.2
  woodmap offset --chart offset.png`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runOffset(params, chartPath)
		},
	}

	cmd.Flags().Float64Var(&params.EmissionsMt, "emissions", params.EmissionsMt, "annual emissions in MtCO2e")
	cmd.Flags().Float64Var(&params.SequestrationRate, "rate", params.SequestrationRate, "sequestration in tCO2e per hectare per year")
	cmd.Flags().Float64Var(&params.WoodlandKha, "woodland", params.WoodlandKha, "existing woodland in thousand hectares")
	cmd.Flags().Float64Var(&params.LandKha, "land", params.LandKha, "total land area in thousand hectares")
	cmd.Flags().StringVar(&chartPath, "chart", "", "write a comparison chart (.png, .svg, .pdf)")

	return cmd
}

func runOffset(params offset.Params, chartPath string) error {
	res, err := offset.Estimate(params)
	if err != nil {
		return err
	}

	printSuccess("Offset estimate")
	printKeyValue("Required", fmt.Sprintf("%.0f kha of new woodland", res.RequiredKha))
	printKeyValue("Existing", fmt.Sprintf("%.1fx the current stock", res.WoodlandMultiple))
	printKeyValue("Land share", fmt.Sprintf("%.0f%% of the land area", res.LandShare*100))
	printNewline()
	printDetail("%g MtCO2e/yr at %g tCO2e per hectare-year", params.EmissionsMt, params.SequestrationRate)

	if chartPath != "" {
		if err := offset.Chart(res, chartPath); err != nil {
			return fmt.Errorf("write chart: %w", err)
		}
		printFile(chartPath)
	}

	return nil
}
