package report

import (
	"bytes"
	"testing"

	"github.com/piwi3910/WireBend/internal/drawing"
	"github.com/piwi3910/WireBend/internal/engine"
	"github.com/piwi3910/WireBend/internal/model"
	"github.com/piwi3910/WireBend/internal/scene"
	"github.com/piwi3910/WireBend/internal/solid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addPiece(sc *scene.Scene, title string, diameter, length float64) {
	g := drawing.NewGroup(title, "black", diameter)
	g.AddLine(model.Point2D{}, model.Point2D{X: 10})
	sc.Layout.Place(g)
	sc.Add(model.NewPiece(title, diameter, length, 0, 1), solid.Cylinder{Height: length, Diameter: diameter}, g)
}

func testScene() *scene.Scene {
	return scene.New(model.DefaultInventory(), model.DefaultAppConfig())
}

func TestBuild_FeasibleDiameter(t *testing.T) {
	sc := testScene()
	addPiece(sc, "a", 1.0, 200)
	addPiece(sc, "b", 1.0, 100)

	reports := Build(sc, engine.New(sc.Inventory, 0), 10)
	require.Len(t, reports, 1)
	r := reports[0]

	assert.Equal(t, 1.0, r.Diameter)
	assert.Equal(t, "Steel 1.0mm", r.Label)
	assert.Equal(t, 2, r.Pieces)
	assert.InDelta(t, 300, r.TotalLength, 1e-9)
	assert.InDelta(t, 25, r.UsedPercent, 1e-9)
	assert.True(t, r.OK())
	assert.Equal(t, StatusFound, r.Status)
	assert.True(t, r.Feasible())
	assert.Equal(t, 4, r.Estimate.SpoolsOrdered)
	assert.True(t, AllFeasible(reports))
}

func TestBuild_FirstCommitOrder(t *testing.T) {
	sc := testScene()
	addPiece(sc, "a", 1.0, 50)
	addPiece(sc, "b", 0.5, 50)
	addPiece(sc, "c", 1.0, 50)

	reports := Build(sc, engine.New(sc.Inventory, 0), 10)
	require.Len(t, reports, 2)
	assert.Equal(t, 1.0, reports[0].Diameter)
	assert.Equal(t, 2, reports[0].Pieces)
	assert.Equal(t, 0.5, reports[1].Diameter)
}

func TestBuild_OverrunAndNoArrangement(t *testing.T) {
	sc := testScene()
	addPiece(sc, "long", 1.0, 350)

	reports := Build(sc, engine.New(sc.Inventory, 0), 10)
	require.Len(t, reports, 1)
	r := reports[0]
	assert.True(t, r.OK())
	assert.Equal(t, StatusNotFound, r.Status)
	assert.Error(t, r.Err)
	assert.False(t, AllFeasible(reports))
}

func TestBuild_Exhausted(t *testing.T) {
	sc := testScene()
	// Sorted first ordering needs five spools, a later one needs four.
	for _, l := range []float64{100, 200, 200, 100, 200, 200, 100, 100} {
		addPiece(sc, "p", 1.0, l)
	}

	reports := Build(sc, engine.New(sc.Inventory, 1), 10)
	require.Len(t, reports, 1)
	assert.Equal(t, StatusExhausted, reports[0].Status)
}

func TestDiameterReport_Line(t *testing.T) {
	r := DiameterReport{Diameter: 0.5, TotalLength: 750, OrderedLength: 1500, UsedPercent: 50}
	assert.Equal(t, "⌀=0.5: 750.0 mm, 50.0%, OK", r.Line())

	r.TotalLength = 1500
	r.UsedPercent = 100
	assert.Equal(t, "⌀=0.5: 1500.0 mm, 100.0%, OOPS!", r.Line())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "Arrangement found", StatusFound.String())
	assert.Equal(t, "No arrangement found", StatusNotFound.String())
	assert.Equal(t, "Search exhausted", StatusExhausted.String())
	assert.Equal(t, "Unknown diameter", StatusUnknown.String())
}

func TestRender(t *testing.T) {
	sc := testScene()
	addPiece(sc, "a", 0.5, 120)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Build(sc, engine.New(sc.Inventory, 0), 10)))

	out := buf.String()
	assert.Contains(t, out, "Wire usage")
	assert.Contains(t, out, "⌀=0.5: 120.0 mm, 8.0%, OK")
	assert.Contains(t, out, "Arrangement found")
	assert.Contains(t, out, "remnants mm: 180")
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, nil))
	assert.Contains(t, buf.String(), "No pieces committed")
}
