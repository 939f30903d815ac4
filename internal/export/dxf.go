package export

import (
	"fmt"
	"strings"

	"github.com/piwi3910/WireBend/internal/drawing"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
)

// aciColors maps schematic color names to AutoCAD color indices.
var aciColors = map[string]color.ColorNumber{
	"red":   1,
	"green": 3,
	"blue":  5,
	"black": 7,
	"white": 7,
	"gray":  8,
	"grey":  8,
}

// LayerName returns the DXF layer a group is drawn on: one layer per
// schematic color, so cut templates for each wire stay selectable.
func LayerName(g *drawing.Group) string {
	return "WIRE_" + strings.ToUpper(g.Color)
}

// ExportDXF writes the cut templates as a DXF drawing in mm for plotters and
// laser engravers. DXF has Y pointing up, so pages are stacked downward from
// the origin and every Y coordinate is negated.
func ExportDXF(path string, sheet *drawing.Sheet) error {
	d := dxf.NewDrawing()

	layers := make(map[string]bool)
	for _, g := range sheet.Groups {
		name := LayerName(g)
		if layers[name] {
			continue
		}
		cl, ok := aciColors[strings.ToLower(g.Color)]
		if !ok {
			cl = dxf.DefaultColor
		}
		if _, err := d.AddLayer(name, cl, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", name, err)
		}
		layers[name] = true
	}

	for _, g := range sheet.Groups {
		if err := d.ChangeLayer(LayerName(g)); err != nil {
			return fmt.Errorf("failed to select layer for %s: %w", g.ID, err)
		}
		ox := g.Offset.X
		oy := g.Offset.Y + sheet.Page.Height*float64(g.Page)
		for _, l := range g.Lines {
			if _, err := d.Line(ox+l.From.X, -(oy + l.From.Y), 0, ox+l.To.X, -(oy + l.To.Y), 0); err != nil {
				return fmt.Errorf("failed to draw %s: %w", g.ID, err)
			}
		}
		if g.Label != "" {
			if _, err := d.Text(g.Label, ox, -oy, 0, sheet.Page.FontSize); err != nil {
				return fmt.Errorf("failed to label %s: %w", g.ID, err)
			}
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save dxf: %w", err)
	}
	return nil
}
