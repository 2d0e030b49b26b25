package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/touring/pkg/board"
	"github.com/matzehuels/touring/pkg/render/styles"
	"github.com/matzehuels/touring/pkg/tour"
)

// strategyInfo describes one insertion heuristic.
var strategyInfo = map[tour.Strategy]struct {
	mode    board.Mode
	aliases string
	summary string
}{
	tour.Beginning: {board.ModeAdd, "add, head", "new point becomes the head; O(1)"},
	tour.Nearest:   {board.ModeClosest, "closest", "insert after the closest point; O(n)"},
	tour.Smallest:  {board.ModeSmallest, "cheapest", "insert on the edge that grows the tour least; O(n)"},
}

// strategiesCommand lists the insertion heuristics.
func (c *CLI) strategiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the insertion heuristics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(StyleTitle.Render("Insertion strategies"))
			fmt.Println(strategiesTable(c.strategyStyles()))
			printNextStep("Compare all three", "touring build points.txt --mode all")
			return nil
		},
	}
}

// strategyStyles returns the effective style per strategy.
func (c *CLI) strategyStyles() map[tour.Strategy]styles.Style {
	out := styles.Defaults()
	if overrides, err := c.config.StyleOverrides(); err == nil {
		for s, st := range overrides {
			out[s] = st
		}
	}
	return out
}

// strategiesTable renders the strategy table.
func strategiesTable(tourStyles map[tour.Strategy]styles.Style) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	strategies := tour.Strategies()
	rows := make([][]string, 0, len(strategies))
	for _, s := range strategies {
		info := strategyInfo[s]
		rows = append(rows, []string{s.String(), info.mode.String(), info.aliases, tourStyles[s].Stroke, info.summary})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Strategy", "Mode", "Aliases", "Stroke", "Rule").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if row < 0 || row >= len(strategies) {
				return cellStyle
			}
			if col == 0 || col == 3 {
				return cellStyle.Foreground(strokeColor(tourStyles[strategies[row]].Stroke))
			}
			return cellStyle
		}).
		Render()
}
