package cmd

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/piwi3910/WireBend/internal/engine"
	"github.com/piwi3910/WireBend/internal/importer"
	"github.com/piwi3910/WireBend/internal/model"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newValidateCmd(g *globalOptions) *cobra.Command {
	var (
		diameter  float64
		searchCap int
		from      string
	)
	c := &cobra.Command{
		Use:   "validate [LENGTH...]",
		Short: "Check that piece lengths can be cut from the stocked spools",
		Long: `Search for an ordering of piece lengths (mm) that packs onto the spools
stocked for their diameter, and print the spools it uses. Lengths come
from the arguments, or from a CSV or Excel cut list with --from.

Examples:
  wirebend validate --diameter 0.5 120 80 250
  wirebend validate --diameter 1.0 --search-cap 10000 88.7 88.7 60.4
  wirebend validate --from cutlist.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := loadInventory(g)
			if err != nil {
				return err
			}
			v := engine.New(inv, searchCap)
			out := cmd.OutOrStdout()

			if from == "" {
				if !cmd.Flags().Changed("diameter") {
					return errors.New("--diameter is required unless --from is given")
				}
				if len(args) == 0 {
					return errors.New("no piece lengths given")
				}
				lengths, err := parseLengths(args)
				if err != nil {
					return err
				}
				arr, err := v.Validate(diameter, lengths)
				if err != nil {
					return err
				}
				return writeLines(out, arrangementLines(diameter, arr, lengths))
			}

			if len(args) > 0 {
				return errors.New("lengths cannot be combined with --from")
			}
			result := importer.Import(from)
			for _, w := range result.Warnings {
				log.Warn().Str("file", from).Msg(w)
			}
			if len(result.Errors) > 0 {
				return fmt.Errorf("failed to import %s: %s", from, strings.Join(result.Errors, "; "))
			}
			diameters := result.Diameters()
			if cmd.Flags().Changed("diameter") {
				diameters = []float64{diameter}
			}
			if len(diameters) == 0 || len(result.Lengths(diameters[0])) == 0 {
				return fmt.Errorf("no pieces in %s", from)
			}

			arrangements, failures := v.ValidateAll(diameters, result.Lengths)
			var lines []string
			for _, d := range diameters {
				if err, failed := failures[d]; failed {
					lines = append(lines, fmt.Sprintf("⌀=%g: %v", d, err))
					continue
				}
				lines = append(lines, arrangementLines(d, arrangements[d], result.Lengths(d))...)
			}
			if err := writeLines(out, lines); err != nil {
				return err
			}
			for _, d := range diameters {
				if err, failed := failures[d]; failed {
					return err
				}
			}
			return nil
		},
	}
	c.Flags().Float64VarP(&diameter, "diameter", "d", 0, "wire diameter in mm")
	c.Flags().IntVar(&searchCap, "search-cap", 0, "max orderings tried, 0 = unbounded")
	c.Flags().StringVar(&from, "from", "", "read the cut list from a CSV or .xlsx file")
	return c
}

func parseLengths(args []string) ([]float64, error) {
	lengths := make([]float64, len(args))
	for i, a := range args {
		l, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid length %q: %w", a, err)
		}
		if math.IsNaN(l) || math.IsInf(l, 0) || l <= 0 {
			return nil, fmt.Errorf("invalid length %q: %w", a, model.ErrInvalidLength)
		}
		lengths[i] = l
	}
	return lengths, nil
}

// arrangementLines describes a found arrangement, one spool per line.
func arrangementLines(diameter float64, arr engine.Arrangement, lengths []float64) []string {
	lines := []string{fmt.Sprintf("⌀=%g: Arrangement found (%d orderings tried)", diameter, arr.Permutations)}
	for i, spool := range arr.SpoolLengths(lengths) {
		parts := make([]string, len(spool))
		for j, l := range spool {
			parts[j] = strconv.FormatFloat(l, 'f', -1, 64)
		}
		lines = append(lines, fmt.Sprintf("  spool %d: %s", i+1, strings.Join(parts, " + ")))
	}
	return lines
}
