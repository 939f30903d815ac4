package biplane

import (
	"strings"
	"testing"

	"github.com/piwi3910/WireBend/internal/model"
	"github.com/piwi3910/WireBend/internal/scene"
	"github.com/piwi3910/WireBend/internal/solid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScene() *scene.Scene {
	return scene.New(model.DefaultInventory(), model.DefaultAppConfig())
}

func TestDerive(t *testing.T) {
	d := Derive()

	assert.InDelta(t, 14.9, d.WingWidth, 1e-9)
	assert.InDelta(t, 14.5, d.TopWingPosition, 1e-9)
	assert.InDelta(t, 40.3013, d.WingLength, 1e-4)
	assert.InDelta(t, 65.2075, d.PlaneLength, 1e-3)
	assert.InDelta(t, 13.25, d.WingSpacerHeight, 1e-9)
	assert.InDelta(t, 14, d.CabinFrameWidth, 1e-9)
	assert.Greater(t, d.CabinTailAngleZY, 0.0)
	assert.Greater(t, d.CabinTailAngleXY, 0.0)
}

func TestBuild_PieceCounts(t *testing.T) {
	sc := newScene()
	require.NoError(t, Build(sc, Options{}))

	assert.Len(t, sc.Pieces(), 36)
	ledger := sc.Ledger()
	assert.Equal(t, []float64{ThickWire, ThinWire}, ledger.Diameters())
	assert.Equal(t, 14, ledger.Count(ThickWire))
	assert.Equal(t, 22, ledger.Count(ThinWire))

	// Calibration mark plus one template per piece
	assert.Len(t, sc.Sheet().Groups, 37)
}

func TestBuild_Totals(t *testing.T) {
	sc := newScene()
	require.NoError(t, Build(sc, Options{}))

	ledger := sc.Ledger()
	assert.InDelta(t, 770.52, ledger.Total(ThickWire), 0.01)
	assert.InDelta(t, 451.96, ledger.Total(ThinWire), 0.01)
}

func TestBuild_MirroredPairsHaveEqualLengths(t *testing.T) {
	sc := newScene()
	require.NoError(t, Build(sc, Options{}))

	byTitle := make(map[string][]float64)
	for _, p := range sc.Pieces() {
		byTitle[p.Title] = append(byTitle[p.Title], p.Length)
	}
	require.Len(t, byTitle["wingFrame"], 4)
	require.Len(t, byTitle["fuselageLength"], 4)
	for _, title := range []string{"wingFrame", "fuselageLength", "wingSpacer", "wingSupportBeam"} {
		lengths := byTitle[title]
		for _, l := range lengths[1:] {
			assert.InDelta(t, lengths[0], l, 1e-9, title)
		}
	}
}

func TestBuild_NoTwistedPieces(t *testing.T) {
	sc := newScene()
	require.NoError(t, Build(sc, Options{}))

	for _, p := range sc.Pieces() {
		assert.False(t, p.Twisted, p.Title)
	}
}

func TestBuild_SymmetricAboutYZPlane(t *testing.T) {
	sc := newScene()
	require.NoError(t, Build(sc, Options{}))

	bounds := solid.Bounds(sc.Solid())
	require.False(t, bounds.IsEmpty())
	assert.InDelta(t, -bounds.Min.X(), bounds.Max.X(), 1e-6)
}

func TestBuild_Accessories(t *testing.T) {
	plain := newScene()
	require.NoError(t, Build(plain, Options{}))

	sc := newScene()
	require.NoError(t, Build(sc, Options{Accessories: true}))

	assert.Equal(t, plain.Solid().Len()+3, sc.Solid().Len())
	assert.Equal(t, len(plain.Pieces()), len(sc.Pieces()))
	assert.Equal(t, plain.Ledger().Total(ThinWire), sc.Ledger().Total(ThinWire))
}

func TestBuild_AccessoryResolution(t *testing.T) {
	sc := newScene()
	require.NoError(t, Build(sc, Options{Accessories: true}))
	out := solid.GenerateSCAD(sc.Solid())

	assert.Contains(t, out, "cylinder(h=20, d=10);")
	assert.NotContains(t, out, "cylinder(h=20, d=10, $fn=")
	assert.Contains(t, out, "cylinder(h=5.2, d=3, $fn=100);")
	assert.Equal(t, 1, strings.Count(out, "cylinder(h=20, d=10"))
}

func TestBuild_MissingDiameterColor(t *testing.T) {
	inv := model.DefaultInventory()
	inv.Find(ThickWire).Color = ""
	sc := scene.New(inv, model.DefaultAppConfig())

	err := Build(sc, Options{})
	assert.ErrorIs(t, err, model.ErrUnknownDiameter)
	assert.Empty(t, sc.Pieces())
}
