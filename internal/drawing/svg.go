package drawing

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	svg "github.com/ajstarks/svgo/float"
)

const inkscapeNS = `xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape"`

// WriteSVG writes the sheet as an SVG document in millimetres. Pages are
// stacked vertically, each in its own Inkscape layer.
func WriteSVG(w io.Writer, s *Sheet) {
	pages := s.Pages()
	width := s.Page.Width
	height := s.Page.Height * float64(pages)

	canvas := svg.New(w)
	canvas.Decimals = 3
	canvas.Startunit(width, height, "mm",
		fmt.Sprintf(`viewBox="0 0 %g %g"`, width, height),
		inkscapeNS)

	for p := 0; p < pages; p++ {
		canvas.Group(
			fmt.Sprintf(`id="page%d"`, p+1),
			`inkscape:groupmode="layer"`,
			fmt.Sprintf(`inkscape:label="Page %d"`, p+1),
			fmt.Sprintf(`transform="translate(0,%g)"`, s.Page.Height*float64(p)),
		)
		for _, g := range s.PageGroups(p) {
			writeGroup(canvas, g, s.Page.FontSize)
		}
		canvas.Gend()
	}
	canvas.End()
}

func writeGroup(canvas *svg.SVG, g *Group, fontSize float64) {
	canvas.Group(
		attr("id", g.ID),
		fmt.Sprintf(`transform="translate(%g,%g)"`, g.Offset.X, g.Offset.Y),
	)
	canvas.Title(g.Title)
	canvas.Desc(g.TransformString())
	stroke := attr("stroke", g.Color)
	strokeWidth := fmt.Sprintf(`stroke-width="%g"`, g.StrokeWidth)
	for _, l := range g.Lines {
		canvas.Line(l.From.X, l.From.Y, l.To.X, l.To.Y, stroke, strokeWidth, `stroke-linecap="round"`)
	}
	if g.Label != "" {
		canvas.Text(0, 0, g.Label, fmt.Sprintf(`style="font-size:%gpx"`, fontSize))
	}
	canvas.Gend()
}

// attr formats name="value" with the value escaped for XML. svgo escapes
// element text but passes attributes through as written.
func attr(name, value string) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteString(`="`)
	xml.EscapeText(&b, []byte(value))
	b.WriteByte('"')
	return b.String()
}

// SaveSVG writes the sheet to path.
func SaveSVG(path string, s *Sheet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create svg file: %w", err)
	}
	WriteSVG(f, s)
	return f.Close()
}
