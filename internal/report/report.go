// Package report summarizes a finished scene per wire diameter: how much
// wire the committed pieces use, whether it fits the ordered stock, and
// whether an arrangement of pieces onto spools exists.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/piwi3910/WireBend/internal/engine"
	"github.com/piwi3910/WireBend/internal/model"
	"github.com/piwi3910/WireBend/internal/scene"
)

// Status is the outcome of the arrangement search for one diameter.
type Status int

const (
	StatusFound Status = iota
	StatusNotFound
	StatusExhausted
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "Arrangement found"
	case StatusNotFound:
		return "No arrangement found"
	case StatusExhausted:
		return "Search exhausted"
	default:
		return "Unknown diameter"
	}
}

// DiameterReport is the summary line for one diameter.
type DiameterReport struct {
	Diameter      float64
	Label         string
	Pieces        int
	Lengths       []float64
	TotalLength   float64
	OrderedLength float64
	UsedPercent   float64
	Status        Status
	Err           error
	Arrangement   engine.Arrangement
	Estimate      model.SpoolEstimate
	Remnants      []model.Remnant
}

// OK reports whether the committed length stays below the ordered length.
func (r DiameterReport) OK() bool {
	return r.TotalLength < r.OrderedLength
}

// Feasible reports whether the pieces can be cut from the ordered spools.
func (r DiameterReport) Feasible() bool {
	return r.OK() && r.Status == StatusFound
}

// Line renders the report as one plain console line.
func (r DiameterReport) Line() string {
	flag := "OK"
	if !r.OK() {
		flag = "OOPS!"
	}
	return fmt.Sprintf("⌀=%g: %.1f mm, %.1f%%, %s", r.Diameter, r.TotalLength, r.UsedPercent, flag)
}

// Build validates every diameter in the scene ledger, in first-commit order.
func Build(sc *scene.Scene, v *engine.Validator, wastePercent float64) []DiameterReport {
	ledger := sc.Ledger()
	reports := make([]DiameterReport, 0, len(ledger.Diameters()))
	for _, d := range ledger.Diameters() {
		lengths := ledger.Lengths(d)
		r := DiameterReport{
			Diameter:    d,
			Pieces:      len(lengths),
			Lengths:     lengths,
			TotalLength: ledger.Total(d),
		}

		spec, err := sc.Inventory.Spec(d)
		if err != nil {
			r.Status = StatusUnknown
			r.Err = err
			reports = append(reports, r)
			continue
		}
		r.Label = spec.Label
		r.OrderedLength = spec.OrderedLength
		if spec.OrderedLength > 0 {
			r.UsedPercent = r.TotalLength / spec.OrderedLength * 100
		}
		r.Estimate = model.CalculateSpoolEstimate(lengths, spec, wastePercent)

		arr, err := v.Validate(d, lengths)
		r.Arrangement = arr
		r.Err = err
		switch {
		case err == nil:
			r.Status = StatusFound
			r.Remnants = arr.Remnants(lengths, spec.UnitLength)
		case errors.Is(err, model.ErrSearchExhausted):
			r.Status = StatusExhausted
		case errors.Is(err, model.ErrUnknownDiameter):
			r.Status = StatusUnknown
		default:
			r.Status = StatusNotFound
		}
		reports = append(reports, r)
	}
	return reports
}

// AllFeasible reports whether every diameter fits its ordered stock.
func AllFeasible(reports []DiameterReport) bool {
	for _, r := range reports {
		if !r.Feasible() {
			return false
		}
	}
	return true
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Render writes the reports as a boxed console summary.
func Render(w io.Writer, reports []DiameterReport) error {
	var blocks []string
	for _, r := range reports {
		blocks = append(blocks, renderOne(r))
	}
	if len(blocks) == 0 {
		blocks = append(blocks, faintStyle.Render("No pieces committed"))
	}
	out := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		append([]string{titleStyle.Render("Wire usage"), ""}, blocks...)...))
	_, err := fmt.Fprintln(w, out)
	return err
}

func renderOne(r DiameterReport) string {
	line := r.Line()
	if r.OK() {
		line = okStyle.Render(line)
	} else {
		line = failStyle.Render(line)
	}

	status := r.Status.String()
	if r.Status == StatusFound {
		status = okStyle.Render(fmt.Sprintf("%s (%d spools, %d orderings tried)",
			status, len(r.Arrangement.Spools), r.Arrangement.Permutations))
	} else {
		status = failStyle.Render(status)
	}

	lines := []string{line, "  " + status}
	if r.Estimate.UnitLength > 0 {
		lines = append(lines, faintStyle.Render(fmt.Sprintf("  %d pieces, %d of %d spools needed with %.0f%% waste",
			r.Pieces, r.Estimate.SpoolsWithWaste, r.Estimate.SpoolsOrdered, r.Estimate.WastePercent)))
		if n := r.Estimate.Shortfall(); n > 0 {
			lines = append(lines, failStyle.Render(fmt.Sprintf("  buy %d more spool(s)", n)))
		}
	}
	if len(r.Remnants) > 0 {
		parts := make([]string, len(r.Remnants))
		for i, rem := range r.Remnants {
			parts[i] = fmt.Sprintf("%.0f", rem.Length)
		}
		lines = append(lines, faintStyle.Render(fmt.Sprintf("  remnants mm: %s (total %.0f)",
			strings.Join(parts, ", "), model.TotalRemnantLength(r.Remnants))))
	}
	return strings.Join(lines, "\n")
}
