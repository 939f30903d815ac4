package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/piwi3910/WireBend/internal/model"
	"github.com/piwi3910/WireBend/internal/report"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	SheetCutList = "Cut List"
	SheetUsage   = "Wire Usage"
	SheetSpools  = "Spools"
)

// ExportXLSX writes the cut list, the per-diameter usage and the spool
// arrangement to an Excel workbook.
func ExportXLSX(path string, pieces []model.Piece, reports []report.DiameterReport) error {
	if len(pieces) == 0 {
		return model.ErrNoPieces
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetCutList); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	for _, name := range []string{SheetUsage, SheetSpools} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to add sheet %q: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	rows := [][]interface{}{{"#", "Piece", "ID", "Diameter (mm)", "Length (mm)", "Bend (deg)", "Segments", "Twisted", "Page", "Spool"}}
	for i, p := range pieces {
		rows = append(rows, []interface{}{
			i + 1, p.Title, p.ID, p.Diameter, round1(p.Length), p.CumulativeBend,
			p.Segments, p.Twisted, p.Page + 1, p.Spool,
		})
	}
	if err := writeRows(f, SheetCutList, rows, header); err != nil {
		return err
	}

	rows = [][]interface{}{{"Diameter (mm)", "Wire", "Pieces", "Total (mm)", "Ordered (mm)", "Used (%)", "Status", "Spools needed", "Spools ordered"}}
	for _, r := range reports {
		rows = append(rows, []interface{}{
			r.Diameter, r.Label, r.Pieces, round1(r.TotalLength), r.OrderedLength,
			round1(r.UsedPercent), r.Status.String(), r.Estimate.SpoolsWithWaste, r.Estimate.SpoolsOrdered,
		})
	}
	if err := writeRows(f, SheetUsage, rows, header); err != nil {
		return err
	}

	rows = [][]interface{}{{"Diameter (mm)", "Spool", "Pieces (mm)", "Used (mm)", "Left (mm)"}}
	for _, r := range reports {
		if r.Status != report.StatusFound {
			continue
		}
		for si, lengths := range r.Arrangement.SpoolLengths(r.Lengths) {
			var used float64
			parts := make([]string, len(lengths))
			for i, l := range lengths {
				used += l
				parts[i] = fmt.Sprintf("%.1f", l)
			}
			rows = append(rows, []interface{}{
				r.Diameter, si + 1, strings.Join(parts, " + "), round1(used), round1(r.Estimate.UnitLength - used),
			})
		}
	}
	if err := writeRows(f, SheetSpools, rows, header); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// writeRows writes rows starting at A1 and styles the first one as a header.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(rows[0]))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 14)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
