package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/microviz/pkg/engine"
	"github.com/matzehuels/microviz/pkg/snap"
)

// typesCommand lists the registered chart types.
func (c *CLI) typesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the supported chart types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(stdout, typesTable())
			return nil
		},
	}
}

func typesTable() *table.Table {
	var rows [][]string
	for _, tag := range engine.Types() {
		h, ok := engine.Lookup(tag)
		if !ok {
			continue
		}
		size := h.DefaultSize()
		rows = append(rows, []string{
			string(tag),
			snap.Num(size.Width) + "×" + snap.Num(size.Height),
			snap.Num(h.DefaultPad()),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Type", "Size", "Pad").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle.Foreground(colorCyan)
			default:
				return cellStyle
			}
		})
}
