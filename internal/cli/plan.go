package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	pkgio "github.com/woodlandatlas/woodmap/pkg/io"
)

// newPlanCmd creates the plan command: boundary file in, scene JSON out.
func newPlanCmd(rf *rootFlags) *cobra.Command {
	var output string
	pf := &pipelineFlags{}

	cmd := &cobra.Command{
		Use:   "plan <boundary>",
		Short: "Plan a woodland scene from a boundary file",
		Long: `Plan a woodland scene from a boundary file.

The boundary (shapefile or GeoJSON) is merged into a single region,
covered with a hexagonal grid, and every retained cell is planted with
randomly placed icons. The resolved scene is written as JSON for
'woodmap render'.

Planning is deterministic: the same boundary and options reproduce the
scene byte for byte.

Examples:
  woodmap plan uk.geojson
  woodmap plan uk.geojson --cell-size 35 --seed 7
  woodmap plan counties.shp --names Kent,Sussex --palette autumn`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, rf, pf, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <boundary>.scene.json)")
	pf.registerLoad(cmd)
	pf.registerPlan(cmd)

	return cmd
}

func runPlan(cmd *cobra.Command, rf *rootFlags, pf *pipelineFlags, input, output string) error {
	ctx := cmd.Context()

	opts, err := buildOptions(cmd, rf, pf, input)
	if err != nil {
		return err
	}

	runner := newRunner(ctx, rf.noCache)
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Planning scene...")
	spinner.Start()

	region, _, err := runner.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Planning failed")
		return fmt.Errorf("plan: %w", err)
	}

	scene, planHit, err := runner.PlanWithCacheInfo(ctx, region, opts)
	if err != nil {
		spinner.StopWithError("Planning failed")
		return fmt.Errorf("plan: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".scene.json"
	}
	if err := pkgio.ExportJSON(scene, outputPath); err != nil {
		return fmt.Errorf("write scene %s: %w", outputPath, err)
	}

	printSuccess("Scene planned")
	printFile(outputPath)
	printStats(scene.Provenance.Cells, scene.Provenance.Points, planHit)
	printNewline()
	printNextStep("Render", "woodmap render "+outputPath)

	return nil
}
