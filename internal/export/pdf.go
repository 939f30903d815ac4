// Package export writes a finished build to printable and tabular formats:
// full-scale cut templates, QR-coded piece labels, a cut-list workbook and
// a DXF drawing.
package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/WireBend/internal/drawing"
	"github.com/piwi3910/WireBend/internal/model"
	"github.com/piwi3910/WireBend/internal/report"
)

// Summary page layout constants (mm).
const (
	marginLeft   = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	rowHeight    = 6.0
)

// ExportPDF writes the cut templates at true scale, one PDF page per sheet
// page, followed by a wire usage summary and the cut list.
func ExportPDF(path string, sheet *drawing.Sheet, pieces []model.Piece, reports []report.DiameterReport) error {
	if len(pieces) == 0 {
		return model.ErrNoPieces
	}

	pdf := newTemplatePDF(sheet.Page)

	for p := 0; p < sheet.Pages(); p++ {
		pdf.AddPage()
		renderTemplatePage(pdf, sheet, p)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, sheet.Page, pieces, reports)

	return pdf.OutputFileAndClose(path)
}

// newTemplatePDF returns a document whose pages match the layout page. fpdf
// swaps a custom size for "L", so the size is passed as given with "P".
func newTemplatePDF(page model.PageConfig) *fpdf.Fpdf {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: page.Width, Ht: page.Height},
	})
	pdf.SetAutoPageBreak(false, marginBottom)
	return pdf
}

// renderTemplatePage draws every group placed on page p at 1:1 scale.
func renderTemplatePage(pdf *fpdf.Fpdf, sheet *drawing.Sheet, p int) {
	for _, g := range sheet.PageGroups(p) {
		c := model.NamedRGB(g.Color)
		pdf.SetDrawColor(c.R, c.G, c.B)
		pdf.SetLineWidth(g.StrokeWidth)
		pdf.SetLineCapStyle("round")
		for _, l := range g.Lines {
			pdf.Line(g.Offset.X+l.From.X, g.Offset.Y+l.From.Y, g.Offset.X+l.To.X, g.Offset.Y+l.To.Y)
		}
		if g.Label != "" {
			// Font size is in points, the page font size in mm
			pdf.SetFont("Helvetica", "", sheet.Page.FontSize*72/25.4)
			pdf.SetTextColor(0, 0, 0)
			pdf.Text(g.Offset.X, g.Offset.Y, g.Label)
		}
	}

	pdf.SetFont("Helvetica", "I", 7)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, sheet.Page.Height-marginBottom/2)
	pdf.CellFormat(sheet.Page.Width-2*marginLeft, 4,
		fmt.Sprintf("Page %d of %d - print at 100%% scale", p+1, sheet.Pages()), "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// renderSummaryPage draws the per-diameter usage table and the cut list.
func renderSummaryPage(pdf *fpdf.Fpdf, page model.PageConfig, pieces []model.Piece, reports []report.DiameterReport) {
	contentWidth := page.Width - 2*marginLeft

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, 10, "Wire Usage Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, page.Width-marginLeft, marginTop+12)

	y := marginTop + 18

	colWidths := []float64{22, 40, 18, 32, 32, 22, 60}
	headers := []string{"Diameter", "Wire", "Pieces", "Total", "Ordered", "Used", "Arrangement"}
	y = tableHeader(pdf, y, colWidths, headers)

	pdf.SetFont("Helvetica", "", 9)
	for i, r := range reports {
		status := r.Status.String()
		if r.Status == report.StatusFound {
			status = fmt.Sprintf("%s (%d spools)", status, len(r.Arrangement.Spools))
		}
		row := []string{
			fmt.Sprintf("%g mm", r.Diameter),
			r.Label,
			fmt.Sprintf("%d", r.Pieces),
			fmt.Sprintf("%.1f mm", r.TotalLength),
			fmt.Sprintf("%.0f mm", r.OrderedLength),
			fmt.Sprintf("%.1f%%", r.UsedPercent),
			status,
		}
		if !r.Feasible() {
			pdf.SetTextColor(200, 0, 0)
		}
		y = tableRow(pdf, y, i, colWidths, row)
		pdf.SetTextColor(0, 0, 0)
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Cut List", "", 0, "L", false, 0, "")
	y += 9

	cutWidths := []float64{12, 70, 22, 30, 30, 20, 20}
	cutHeaders := []string{"#", "Piece", "Diameter", "Length", "Bend", "Spool", "Page"}
	y = tableHeader(pdf, y, cutWidths, cutHeaders)

	pdf.SetFont("Helvetica", "", 9)
	for i, p := range pieces {
		if y+rowHeight > page.Height-marginBottom {
			pdf.AddPage()
			y = tableHeader(pdf, marginTop, cutWidths, cutHeaders)
			pdf.SetFont("Helvetica", "", 9)
		}
		spool := "-"
		if p.Spool > 0 {
			spool = fmt.Sprintf("%d", p.Spool)
		}
		row := []string{
			fmt.Sprintf("%d", i+1),
			p.Title,
			fmt.Sprintf("%g mm", p.Diameter),
			fmt.Sprintf("%.1f mm", p.Length),
			fmt.Sprintf("%g\xb0", p.CumulativeBend),
			spool,
			fmt.Sprintf("%d", p.Page+1),
		}
		y = tableRow(pdf, y, i, cutWidths, row)
	}
}

func tableHeader(pdf *fpdf.Fpdf, y float64, widths []float64, headers []string) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(widths[i], rowHeight, h, "1", 0, "C", true, 0, "")
		x += widths[i]
	}
	return y + rowHeight
}

func tableRow(pdf *fpdf.Fpdf, y float64, index int, widths []float64, cells []string) float64 {
	// Alternate row background
	if index%2 == 0 {
		pdf.SetFillColor(245, 245, 245)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
	x := marginLeft
	for j, cell := range cells {
		pdf.SetXY(x, y)
		pdf.CellFormat(widths[j], rowHeight, cell, "1", 0, "C", true, 0, "")
		x += widths[j]
	}
	return y + rowHeight
}
