package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/woodlandatlas/woodmap/pkg/geobound"
)

// newInspectCmd creates the inspect command for listing boundary features.
func newInspectCmd() *cobra.Command {
	var (
		nameField string
		pick      bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <boundary>",
		Short: "List the features of a boundary file",
		Long: `List the features of a boundary file without planning anything.

Each polygon feature is shown with its name, part count, and area in
input units. With --pick an interactive list opens instead, and the
chosen names are printed as a ready-to-run plan command.

Examples:
  woodmap inspect uk.geojson
  woodmap inspect counties.shp --name-field NAME
  woodmap inspect counties.shp --name-field NAME --pick`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], nameField, pick)
		},
	}

	cmd.Flags().StringVar(&nameField, "name-field", "", "attribute holding feature names")
	cmd.Flags().BoolVar(&pick, "pick", false, "select features interactively")

	return cmd
}

func runInspect(cmd *cobra.Command, input, nameField string, pick bool) error {
	logger := loggerFromContext(cmd.Context())

	prog := newProgress(logger)
	features, err := geobound.Features(input, nameField)
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	prog.done(fmt.Sprintf("Read %d features from %s", len(features), input))

	if ref := geobound.SpatialRef(input); ref != "" {
		printDetail("Spatial reference: %s (coordinates used as-is)", ref)
	}

	if pick {
		return pickFeatures(cmd, input, nameField, features)
	}

	printFeatureTable(features)
	return nil
}

// pickFeatures runs the interactive selector and suggests a plan command
// for the chosen features.
func pickFeatures(cmd *cobra.Command, input, nameField string, features []geobound.FeatureInfo) error {
	p := tea.NewProgram(newFeatureListModel(features), tea.WithContext(cmd.Context()))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("feature selection: %w", err)
	}

	m, ok := final.(featureListModel)
	if !ok || !m.accepted {
		printWarning("Selection cancelled")
		return nil
	}

	names := m.Names()
	if len(names) == 0 {
		printInfo("No features selected")
		return nil
	}

	printSuccess("Selected %d of %d features", len(names), len(features))

	planCmd := fmt.Sprintf("woodmap plan %s --names %s", input, strings.Join(names, ","))
	if nameField != "" {
		planCmd = fmt.Sprintf("woodmap plan %s --name-field %s --names %s", input, nameField, strings.Join(names, ","))
	}
	printNextStep("Plan", planCmd)

	return nil
}

func printFeatureTable(features []geobound.FeatureInfo) {
	rows := make([][]string, 0, len(features))
	var total float64
	for _, f := range features {
		rows = append(rows, []string{
			f.Name,
			fmt.Sprintf("%d", f.Parts),
			fmt.Sprintf("%.4g", f.Area),
		})
		total += f.Area
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Feature", "Parts", "Area").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col > 0 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		})

	fmt.Println(t.Render())
	printInline("%d features, total area %.4g", len(features), total)
	printNewline()
}
