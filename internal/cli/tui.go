package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/woodlandatlas/woodmap/pkg/geobound"
)

// List styles
var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// featureListModel - Interactive feature selection
// =============================================================================

// featureListModel is the bubbletea model for picking boundary features.
// Space toggles the feature under the cursor; enter confirms the set.
type featureListModel struct {
	features []geobound.FeatureInfo
	cursor   int
	selected map[int]bool
	height   int
	offset   int
	accepted bool
}

// newFeatureListModel creates a feature list model with nothing selected.
func newFeatureListModel(features []geobound.FeatureInfo) featureListModel {
	return featureListModel{
		features: features,
		selected: make(map[int]bool),
		height:   15,
	}
}

// Names returns the selected feature names in file order.
func (m featureListModel) Names() []string {
	var names []string
	for i, f := range m.features {
		if m.selected[i] {
			names = append(names, f.Name)
		}
	}
	return names
}

func (m featureListModel) Init() tea.Cmd {
	return nil
}

func (m featureListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.features)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case " ":
			m.selected[m.cursor] = !m.selected[m.cursor]
		case "a":
			for i := range m.features {
				m.selected[i] = true
			}
		case "n":
			m.selected = make(map[int]bool)
		case "enter":
			m.accepted = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m featureListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Features"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  n none  ⏎ confirm  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.features) {
		end = len(m.features)
	}

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		f := m.features[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		mark := " "
		if m.selected[i] {
			mark = "✓"
		}

		rows = append(rows, []string{
			cursor, mark, f.Name,
			fmt.Sprintf("%d", f.Parts),
			fmt.Sprintf("%.4g", f.Area),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Feature", "Parts", "Area").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			idx := m.offset + row
			if idx >= len(m.features) {
				return lipgloss.NewStyle()
			}

			base := lipgloss.NewStyle()
			if idx == m.cursor {
				return base.Foreground(colorCyan).Bold(true)
			}
			if m.selected[idx] {
				return base.Foreground(colorGreen)
			}
			if col >= 3 {
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d selected", m.cursor+1, len(m.features), len(m.Names()))))

	return b.String()
}
