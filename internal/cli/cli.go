package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/woodlandatlas/woodmap/pkg/buildinfo"
	"github.com/woodlandatlas/woodmap/pkg/cache"
	"github.com/woodlandatlas/woodmap/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "woodmap"

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	verbose bool
	config  string
	noCache bool
}

// Execute builds the command tree and runs it with the given context.
// The context flows through cobra into the pipeline, so cancelling it
// (for example on SIGINT) aborts in-flight work.
func Execute(ctx context.Context) error {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   appName,
		Short: "Render decorative woodland coverage maps",
		Long: `Woodmap turns a vector boundary into a decorative woodland map.

The boundary (shapefile or GeoJSON) is merged into a single region, a
flat-top hexagonal grid is laid over it, and every cell that overlaps
the region is planted with a few randomly placed tree icons. The result
renders to SVG or PNG posters, or to a scene JSON for later rendering.

Planning is deterministic: the same boundary and seed always grow the
same forest.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := log.InfoLevel
			if flags.verbose {
				level = log.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&flags.config, "config", "", "TOML file with pipeline options")
	root.PersistentFlags().BoolVar(&flags.noCache, "no-cache", false, "disable the pipeline cache")

	root.AddCommand(newPlanCmd(flags))
	root.AddCommand(newRenderCmd(flags))
	root.AddCommand(newInspectCmd())
	root.AddCommand(newOffsetCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}

// newRunner creates a pipeline runner wired to the CLI cache and the
// logger carried by ctx.
func newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(newCLICache(noCache), nil, loggerFromContext(ctx))
}

// newCLICache creates the cache for CLI commands. Failures degrade to a
// null cache rather than blocking the pipeline.
func newCLICache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the cache directory following the XDG convention
// (~/.cache/woodmap or $XDG_CACHE_HOME/woodmap).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
