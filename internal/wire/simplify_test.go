package wire

import (
	"testing"

	"github.com/piwi3910/WireBend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimplify_PlanarRightAngle(t *testing.T) {
	sc := newTestScene()
	w, err := Simplify(sc, "corner", 1.0, model.Seg(10, 0, 0), model.Seg(10, 90, 0))
	require.NoError(t, err)

	require.Len(t, w.Path.Segments, 2)
	assert.InDelta(t, 90, w.Path.Segments[1].Angles.Bend, 1e-9)
	assert.Equal(t, 0.0, w.Path.Segments[1].Angles.Twist)
	assert.Equal(t, 10.0, w.Path.Segments[1].Length)
	assert.InDelta(t, 20+BendAllowance(1.0, 90), w.Length(), 1e-9)

	// Already in the XY plane, so the roll is zero
	require.Len(t, w.History, 1)
	assert.Equal(t, model.TransformRotate, w.History[0].Kind)
	assert.InDelta(t, 0, w.History[0].X, 1e-9)
}

func TestSimplify_OutOfPlaneMatchesOriginalEnd(t *testing.T) {
	for _, twist := range []float64{20, -20, 75} {
		sc := newTestScene()
		segs := []model.WireSegment{model.Seg(20, 0, 0), model.Seg(30, 30, twist)}
		original, err := NewPath(1.0, segs...)
		require.NoError(t, err)

		w, err := Simplify(sc, "fuselage", 1.0, segs...)
		require.NoError(t, err)

		assert.Equal(t, 0.0, w.Path.Segments[1].Angles.Twist)
		assert.False(t, w.Path.Twisted())
		joints := w.WorldJoints()
		for i := range joints {
			assertVec(t, original.Joints[i], joints[i])
		}
	}
}

func TestSimplify_BendIsAngleBetweenSegments(t *testing.T) {
	sc := newTestScene()
	w, err := Simplify(sc, "shallow", 0.5, model.Seg(10, 0, 0), model.Seg(10, 0, 40))
	require.NoError(t, err)
	assert.InDelta(t, 40, w.Path.Segments[1].Angles.Bend, 1e-9)
	assert.Equal(t, "gray", w.Group().Color)
}

func TestSimplify_Preconditions(t *testing.T) {
	sc := newTestScene()

	_, err := Simplify(sc, "one", 1.0, model.Seg(10, 0, 0))
	assert.ErrorIs(t, err, model.ErrPrecondition)

	_, err = Simplify(sc, "three", 1.0, model.Seg(10, 0, 0), model.Seg(10, 90, 0), model.Seg(10, 90, 0))
	assert.ErrorIs(t, err, model.ErrPrecondition)

	_, err = Simplify(sc, "bent", 1.0, model.Seg(10, 5, 0), model.Seg(10, 90, 0))
	assert.ErrorIs(t, err, model.ErrPrecondition)

	_, err = Simplify(sc, "twisted", 1.0, model.Seg(10, 0, 5), model.Seg(10, 90, 0))
	assert.ErrorIs(t, err, model.ErrPrecondition)
}

func TestSimplify_Degenerate(t *testing.T) {
	sc := newTestScene()

	_, err := Simplify(sc, "straight", 1.0, model.Seg(10, 0, 0), model.Seg(10, 0, 0))
	assert.ErrorIs(t, err, model.ErrDegenerateGeometry)

	_, err = Simplify(sc, "hairpin", 1.0, model.Seg(10, 0, 0), model.Seg(10, 180, 0))
	assert.ErrorIs(t, err, model.ErrDegenerateGeometry)
}

func TestSimplify_PropagatesPathAndDiameterErrors(t *testing.T) {
	sc := newTestScene()

	_, err := Simplify(sc, "short", 1.0, model.Seg(10, 0, 0), model.Seg(0, 90, 0))
	assert.ErrorIs(t, err, model.ErrInvalidPath)

	_, err = Simplify(sc, "brass", 1.58, model.Seg(10, 0, 0), model.Seg(10, 90, 0))
	assert.ErrorIs(t, err, model.ErrUnknownDiameter)
}
