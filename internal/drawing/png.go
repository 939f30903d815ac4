package drawing

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/piwi3910/WireBend/internal/model"
	"golang.org/x/image/font/gofont/gomono"
)

// RenderPNG rasterizes the sheet at the given resolution. Pages are stacked
// vertically with a thin separator.
func RenderPNG(s *Sheet, pixelsPerMM float64) (*gg.Context, error) {
	pages := s.Pages()
	w := int(s.Page.Width * pixelsPerMM)
	h := int(s.Page.Height * float64(pages) * pixelsPerMM)
	dc := gg.NewContext(w, h)

	dc.SetRGB(1, 1, 1)
	dc.Clear()

	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to load label font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: s.Page.FontSize * pixelsPerMM}))

	// Page separators
	dc.SetRGB(0.85, 0.85, 0.85)
	dc.SetLineWidth(1)
	for p := 1; p < pages; p++ {
		y := s.Page.Height * float64(p) * pixelsPerMM
		dc.DrawLine(0, y, float64(w), y)
		dc.Stroke()
	}

	for _, g := range s.Groups {
		ox := g.Offset.X
		oy := g.Offset.Y + s.Page.Height*float64(g.Page)
		c := model.NamedRGB(g.Color)
		dc.SetRGB255(c.R, c.G, c.B)
		dc.SetLineWidth(g.StrokeWidth * pixelsPerMM)
		dc.SetLineCapRound()
		for _, l := range g.Lines {
			dc.DrawLine((ox+l.From.X)*pixelsPerMM, (oy+l.From.Y)*pixelsPerMM,
				(ox+l.To.X)*pixelsPerMM, (oy+l.To.Y)*pixelsPerMM)
			dc.Stroke()
		}
		if g.Label != "" {
			dc.SetRGB(0, 0, 0)
			dc.DrawString(g.Label, ox*pixelsPerMM, oy*pixelsPerMM)
		}
	}
	return dc, nil
}

// SavePNG renders the sheet and writes it to path.
func SavePNG(path string, s *Sheet, pixelsPerMM float64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	dc, err := RenderPNG(s, pixelsPerMM)
	if err != nil {
		return err
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to write png file: %w", err)
	}
	return nil
}
