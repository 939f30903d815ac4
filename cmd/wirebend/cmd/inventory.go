package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/piwi3910/WireBend/internal/project"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
)

func newInventoryCmd(g *globalOptions) *cobra.Command {
	var (
		asJSON     bool
		importPath string
	)
	c := &cobra.Command{
		Use:   "inventory",
		Short: "Show the stocked wire spools",
		Long: `Show the stocked wire spools. With --import, spools for diameters not yet
stocked are merged in from another inventory file and saved.

Examples:
  wirebend inventory
  wirebend inventory --import brass.json --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := loadInventory(g)
			if err != nil {
				return err
			}
			if importPath != "" {
				merged, err := project.ImportInventory(importPath, inv)
				if err != nil {
					return fmt.Errorf("failed to import inventory %s: %w", importPath, err)
				}
				if err := project.SaveInventory(g.inventoryPath, merged); err != nil {
					return err
				}
				log.Info().Str("path", g.inventoryPath).
					Int("added", len(merged.Spools)-len(inv.Spools)).Msg("inventory merged")
				inv = merged
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(inv)
			}

			rows := [][]string{{"Diameter", "Label", "Spool (mm)", "Ordered (mm)", "Spools", "Color"}}
			for _, s := range inv.Spools {
				color := s.Color
				if color == "" {
					color = "-"
				}
				rows = append(rows, []string{
					fmt.Sprintf("%g", s.Diameter),
					s.Label,
					fmt.Sprintf("%.0f", s.UnitLength),
					fmt.Sprintf("%.0f", s.OrderedLength),
					fmt.Sprintf("%d", s.Spools()),
					color,
				})
			}
			_, err = fmt.Fprintln(out, renderTable(rows))
			return err
		},
	}
	c.Flags().BoolVar(&asJSON, "json", false, "print the inventory as JSON")
	c.Flags().StringVar(&importPath, "import", "", "merge spools from another inventory JSON file")
	return c
}

// renderTable lays rows out in left-aligned columns; the first row is the
// header.
func renderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	widths := make([]int, len(rows[0]))
	for _, r := range rows {
		for i, cell := range r {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, len(rows))
	for ri, r := range rows {
		cells := make([]string, len(r))
		for i, cell := range r {
			s := cellStyle.Width(widths[i] + 2)
			if ri == 0 {
				s = s.Inherit(headerStyle)
			}
			cells[i] = s.Render(cell)
		}
		lines[ri] = strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, cells...), " ")
	}
	return strings.Join(lines, "\n")
}
