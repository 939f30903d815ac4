package drawing

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/piwi3910/WireBend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lineGroup returns a group with one horizontal stroke from x0 to x1.
func lineGroup(id string, x0, x1 float64) *Group {
	g := NewGroup(id, "black", 1)
	g.AddLine(model.Point2D{X: x0}, model.Point2D{X: x1})
	return g
}

func TestGroupExtent_IncludesOrigin(t *testing.T) {
	minX, width := lineGroup("a", 5, 20).Extent()
	assert.Equal(t, 0.0, minX)
	assert.Equal(t, 20.0, width)

	g := NewGroup("b", "black", 1)
	g.AddLine(model.Point2D{}, model.Point2D{X: -12, Y: 3})
	g.AddLine(model.Point2D{X: -12, Y: 3}, model.Point2D{X: 4, Y: 3})
	minX, width = g.Extent()
	assert.Equal(t, -12.0, minX)
	assert.Equal(t, 16.0, width)

	minX, width = NewGroup("empty", "black", 1).Extent()
	assert.Equal(t, 0.0, minX)
	assert.Equal(t, 0.0, width)
}

func TestGroupApply_Composes(t *testing.T) {
	g := NewGroup("a", "black", 1)
	g.Apply(mgl64.Translate3D(1, 0, 0))
	g.Apply(mgl64.HomogRotate3DZ(mgl64.DegToRad(90)))
	p := g.Transform.Mul4x1(mgl64.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, p.X(), 1e-9)
	assert.InDelta(t, 1, p.Y(), 1e-9)
	assert.True(t, strings.HasPrefix(g.TransformString(), "matrix3d("))
}

func TestGroupPoints(t *testing.T) {
	g := NewGroup("a", "black", 1)
	g.AddLine(model.Point2D{}, model.Point2D{X: 10})
	g.AddLine(model.Point2D{X: 10}, model.Point2D{X: 10, Y: 5})
	g.Offset = model.Point2D{X: 100, Y: 50}
	pts := g.Points()
	require.Len(t, pts, 3)
	assert.Equal(t, model.Point2D{X: 100, Y: 50}, pts[0])
	assert.Equal(t, model.Point2D{X: 110, Y: 55}, pts[2])
}

func TestNewSheet_PlacesCalibrationFirst(t *testing.T) {
	layout := NewLayout(model.DefaultPageConfig())
	sheet := NewSheet(layout)

	require.Len(t, sheet.Groups, 1)
	cal := sheet.Groups[0]
	assert.Equal(t, "calibration_10x10", cal.ID)
	assert.Equal(t, "10 mm", cal.Label)
	assert.Equal(t, "blue", cal.Color)
	assert.Equal(t, model.Point2D{X: 15, Y: 15}, cal.Offset)
	assert.Equal(t, 35.0, layout.X)
	assert.Equal(t, 15.0, layout.Y)
}

func TestLayoutPlace_AdvancesAndShiftsByMinX(t *testing.T) {
	layout := NewLayout(model.DefaultPageConfig())
	g := NewGroup("neg", "black", 1)
	g.AddLine(model.Point2D{}, model.Point2D{X: -20})
	layout.Place(g)

	// minX=-20 so the frame shifts right to keep the piece inside the slot
	assert.Equal(t, model.Point2D{X: 35, Y: 15}, g.Offset)
	assert.Equal(t, 15.0+20+10, layout.X)
}

func TestLayoutPlace_WrapsRow(t *testing.T) {
	layout := NewLayout(model.DefaultPageConfig())
	layout.X = 250

	g := lineGroup("wide", 0, 40) // 250+40 > 297-15
	layout.Place(g)
	assert.Equal(t, model.Point2D{X: 15, Y: 40}, g.Offset)
	assert.Equal(t, 65.0, layout.X)

	fits := lineGroup("fits", 0, 17) // 65+17 <= 282
	layout.Place(fits)
	assert.Equal(t, 40.0, fits.Offset.Y)
}

func TestLayoutPlace_ExactFitDoesNotWrap(t *testing.T) {
	layout := NewLayout(model.DefaultPageConfig())
	layout.X = 232
	g := lineGroup("edge", 0, 50) // 232+50 == 282
	layout.Place(g)
	assert.Equal(t, 15.0, g.Offset.Y)
}

func TestLayoutPlace_WrapsPage(t *testing.T) {
	page := model.DefaultPageConfig()
	layout := NewLayout(page)
	layout.X = 280
	layout.Y = 190

	g := lineGroup("overflow", 0, 30)
	layout.Place(g)
	assert.Equal(t, 1, g.Page)
	assert.Equal(t, model.Point2D{X: 15, Y: 15}, g.Offset)
	assert.Equal(t, 1, layout.PageIndex)
}

func TestSheetPages(t *testing.T) {
	layout := NewLayout(model.DefaultPageConfig())
	sheet := NewSheet(layout)
	assert.Equal(t, 1, sheet.Pages())

	g := lineGroup("p2", 0, 10)
	g.Page = 1
	sheet.Add(g)
	assert.Equal(t, 2, sheet.Pages())
	assert.Len(t, sheet.PageGroups(0), 1)
	assert.Len(t, sheet.PageGroups(1), 1)
	assert.Empty(t, sheet.PageGroups(2))

	assert.Equal(t, 1, (&Sheet{}).Pages())
}

func buildTestSheet() *Sheet {
	layout := NewLayout(model.DefaultPageConfig())
	sheet := NewSheet(layout)
	g := NewGroup("wingFrame_120.5mm_240deg", "gray", 0.5)
	g.Title = "wingFrame"
	g.AddLine(model.Point2D{}, model.Point2D{X: 35})
	g.AddLine(model.Point2D{X: 35}, model.Point2D{X: 35, Y: 14.9})
	g.Label = "120.5"
	layout.Place(g)
	sheet.Add(g)
	return sheet
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	WriteSVG(&buf, buildTestSheet())
	out := buf.String()

	assert.Contains(t, out, `width="297.000mm"`)
	assert.Contains(t, out, `xmlns:inkscape=`)
	assert.Contains(t, out, `inkscape:groupmode="layer"`)
	assert.Contains(t, out, `id="calibration_10x10"`)
	assert.Contains(t, out, `id="wingFrame_120.5mm_240deg"`)
	assert.Contains(t, out, `transform="translate(35,15)"`)
	assert.Contains(t, out, `stroke="gray"`)
	assert.Contains(t, out, `stroke="blue"`)
	assert.Contains(t, out, ">120.5</text>")
	assert.Contains(t, out, ">10 mm</text>")
	assert.Contains(t, out, "<title>wingFrame</title>")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))
	assert.Equal(t, strings.Count(out, "<g "), strings.Count(out, "</g>"))
}

func TestWriteSVG_EscapesMarkup(t *testing.T) {
	layout := NewLayout(model.DefaultPageConfig())
	sheet := NewSheet(layout)
	g := NewGroup(`a "b" & <c>`, `red" onload="x`, 0.5)
	g.AddLine(model.Point2D{}, model.Point2D{X: 10})
	g.Label = `<10 & "up">`
	layout.Place(g)
	sheet.Add(g)

	var buf bytes.Buffer
	WriteSVG(&buf, sheet)

	dec := xml.NewDecoder(&buf)
	var ids, titles, labels []string
	var inTitle, inText bool
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		switch el := tok.(type) {
		case xml.StartElement:
			inTitle = el.Name.Local == "title"
			inText = el.Name.Local == "text"
			for _, a := range el.Attr {
				if el.Name.Local == "g" && a.Name.Local == "id" {
					ids = append(ids, a.Value)
				}
				if a.Name.Local == "onload" {
					t.Errorf("unexpected onload attribute on %s", el.Name.Local)
				}
			}
		case xml.CharData:
			if inTitle {
				titles = append(titles, string(el))
			}
			if inText {
				labels = append(labels, string(el))
			}
		case xml.EndElement:
			inTitle, inText = false, false
		}
	}
	assert.Contains(t, ids, `a "b" & <c>`)
	assert.Contains(t, titles, `a "b" & <c>`)
	assert.Contains(t, labels, `<10 & "up">`)
}

func TestSaveSVG_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.svg")
	require.NoError(t, SaveSVG(path, buildTestSheet()))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRenderPNG_Size(t *testing.T) {
	sheet := buildTestSheet()
	g := lineGroup("second", 0, 10)
	g.Page = 1
	sheet.Add(g)

	dc, err := RenderPNG(sheet, 2)
	require.NoError(t, err)
	assert.Equal(t, 594, dc.Width())
	assert.Equal(t, 840, dc.Height())
}

func TestSavePNG_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.png")
	require.NoError(t, SavePNG(path, buildTestSheet(), 1))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
