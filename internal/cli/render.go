package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	pkgio "github.com/woodlandatlas/woodmap/pkg/io"
	"github.com/woodlandatlas/woodmap/pkg/pipeline"
	"github.com/woodlandatlas/woodmap/pkg/render"
)

// newRenderCmd creates the render command for producing map artifacts.
func newRenderCmd(rf *rootFlags) *cobra.Command {
	var (
		output     string
		formatsStr string
	)
	pf := &pipelineFlags{}

	cmd := &cobra.Command{
		Use:   "render <scene.json|boundary>",
		Short: "Render a woodland map to SVG, PNG, or scene JSON",
		Long: `Render a woodland map.

The input is either a scene JSON produced by 'plan', or a boundary file
(shapefile or GeoJSON), in which case the full pipeline runs first.

With multiple formats the outputs become sibling files: -f svg,png with
-o posters/uk.svg writes posters/uk.svg and posters/uk.png.

Examples:
  woodmap render uk.scene.json
  woodmap render uk.geojson -f svg,png -o posters/uk.svg
  woodmap render uk.geojson --caption "Every hexagon is a wood" --palette winter`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, rf, pf, args[0], output, formatsStr)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	pf.registerLoad(cmd)
	pf.registerPlan(cmd)
	pf.registerRender(cmd)

	return cmd
}

func runRender(cmd *cobra.Command, rf *rootFlags, pf *pipelineFlags, input, output, formatsStr string) error {
	ctx := cmd.Context()

	opts, err := buildOptions(cmd, rf, pf, input)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("format") || len(opts.Formats) == 0 {
		opts.Formats = parseFormats(formatsStr)
	}
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}

	runner := newRunner(ctx, rf.noCache)
	defer runner.Close()

	// Scene files skip straight to rendering; everything else runs the
	// full pipeline from the boundary.
	if scene, ok := readScene(input); ok {
		spinner := newSpinnerWithContext(ctx, "Rendering map...")
		spinner.Start()

		artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, scene, opts)
		if err != nil {
			spinner.StopWithError("Rendering failed")
			return fmt.Errorf("render: %w", err)
		}
		spinner.Stop()

		if ctx.Err() != nil {
			return ctx.Err()
		}
		return writeArtifacts(artifacts, opts.Formats, input, output,
			scene.Provenance.Cells, scene.Provenance.Points, cacheHit)
	}

	spinner := newSpinnerWithContext(ctx, "Growing woodland...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return writeArtifacts(result.Artifacts, opts.Formats, input, output,
		result.Stats.Cells, result.Stats.Points, result.CacheInfo.RenderHit)
}

// readScene reports whether path holds a scene JSON and returns it.
// Boundary files with a .json extension fail scene validation and fall
// through to the pipeline.
func readScene(path string) (*render.Scene, bool) {
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return nil, false
	}
	scene, err := pkgio.ImportJSON(path)
	if err != nil {
		return nil, false
	}
	return scene, true
}

// writeArtifacts writes one file per requested format and prints the
// result summary.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string, cells, points int, cacheHit bool) error {
	base := basePath(output, input)

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + format
		if output != "" && len(formats) == 1 {
			path = output
		}

		out, err := openOutput(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if _, err := out.Write(artifacts[format]); err != nil {
			out.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("close %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	printSuccess("Map rendered")
	for _, path := range paths {
		printFile(path)
	}
	printStats(cells, points, cacheHit)

	return nil
}

// parseFormats splits the comma-separated format flag, defaulting to SVG.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// basePath derives the base output path from the output and input paths.
// An empty output falls back to the input with its extension stripped; an
// output ending in a known format extension loses that extension so
// sibling formats can share the stem.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// openOutput opens path for writing, or stdout when path is "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
