package wire

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/piwi3910/WireBend/internal/geom"
	"github.com/piwi3910/WireBend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func assertVec(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	assert.True(t, geom.Near(want, got, tol), "expected %v, got %v", want, got)
}

func TestNewPath_JointsStartAtOrigin(t *testing.T) {
	cases := [][]model.WireSegment{
		{model.Seg(10, 0, 0)},
		{model.Seg(10, 0, 0), model.Seg(5, 45, 0)},
		{model.Seg(3, 10, 0), model.Seg(4, -20, 5), model.Seg(5, 90, 0), model.Seg(1, 0, -30)},
	}
	for _, segs := range cases {
		p, err := NewPath(1.0, segs...)
		require.NoError(t, err)
		assert.Len(t, p.Joints, len(segs)+1)
		assert.Len(t, p.Poses, len(segs))
		assertVec(t, mgl64.Vec3{}, p.Joints[0])
		assert.GreaterOrEqual(t, p.TotalLength, p.StraightLength())
	}
}

func TestNewPath_Straight(t *testing.T) {
	p, err := NewPath(1.0, model.Seg(10, 0, 0), model.Seg(5, 0, 0))
	require.NoError(t, err)
	assertVec(t, mgl64.Vec3{15, 0, 0}, p.End())
	assert.Equal(t, 15.0, p.TotalLength)
	assert.Equal(t, 0.0, p.CumulativeBend)
	assert.False(t, p.Twisted())
}

func TestNewPath_SingleBend90(t *testing.T) {
	p, err := NewPath(1.0, model.Seg(10, 0, 0), model.Seg(10, 90, 0))
	require.NoError(t, err)

	assertVec(t, mgl64.Vec3{0, 0, 0}, p.Joints[0])
	assertVec(t, mgl64.Vec3{10, 0, 0}, p.Joints[1])
	assertVec(t, mgl64.Vec3{10, 10, 0}, p.Joints[2])
	assert.InDelta(t, 20+0.5*90.0/360, p.TotalLength, tol)
	assert.Equal(t, 90.0, p.CumulativeBend)

	// Second segment starts at the first joint facing +Y
	assertVec(t, mgl64.Vec3{10, 0, 0}, p.Poses[1].Position)
	assertVec(t, geom.AxisY, p.Poses[1].Forward())
}

func TestNewPath_NegativeBendCountsAbsolute(t *testing.T) {
	p, err := NewPath(2.0, model.Seg(10, 0, 0), model.Seg(10, -90, 0))
	require.NoError(t, err)
	assertVec(t, mgl64.Vec3{10, -10, 0}, p.End())
	assert.Equal(t, 90.0, p.CumulativeBend)
	assert.InDelta(t, 20+1.0*90.0/360, p.TotalLength, tol)
}

func TestNewPath_ClosedSquare(t *testing.T) {
	p, err := NewPath(0.5,
		model.Seg(10, 0, 0),
		model.Seg(10, 90, 0),
		model.Seg(10, 90, 0),
		model.Seg(10, 90, 0),
	)
	require.NoError(t, err)
	assertVec(t, mgl64.Vec3{}, p.End())
	assert.Equal(t, 270.0, p.CumulativeBend)
}

func TestNewPath_TwistIsFlaggedNotRejected(t *testing.T) {
	p, err := NewPath(1.0, model.Seg(10, 0, 0), model.Seg(5, 0, 90))
	require.NoError(t, err)
	assert.True(t, p.Twisted())
	assert.Equal(t, []int{1}, p.TwistedSegments)
	assertVec(t, mgl64.Vec3{10, 0, -5}, p.End())
	// Twist adds no allowance
	assert.Equal(t, 15.0, p.TotalLength)
}

func TestNewPath_Errors(t *testing.T) {
	_, err := NewPath(1.0)
	assert.ErrorIs(t, err, model.ErrInvalidPath)

	_, err = NewPath(1.0, model.Seg(10, 0, 0), model.Seg(0, 90, 0))
	assert.ErrorIs(t, err, model.ErrInvalidPath)

	_, err = NewPath(1.0, model.Seg(-1, 0, 0))
	assert.ErrorIs(t, err, model.ErrInvalidPath)

	_, err = NewPath(1.0, model.Seg(math.Inf(1), 0, 0))
	assert.ErrorIs(t, err, model.ErrInvalidPath)

	_, err = NewPath(1.0, model.Seg(1, math.NaN(), 0))
	assert.ErrorIs(t, err, model.ErrInvalidPath)
}

func TestNewPath_CopiesSegments(t *testing.T) {
	segs := []model.WireSegment{model.Seg(10, 0, 0)}
	p, err := NewPath(1.0, segs...)
	require.NoError(t, err)
	segs[0].Length = 99
	assert.Equal(t, 10.0, p.Segments[0].Length)
}

func TestBendAllowance(t *testing.T) {
	assert.Equal(t, 0.0, BendAllowance(1.0, 0))
	assert.InDelta(t, 0.125, BendAllowance(1.0, 90), tol)
	assert.InDelta(t, 0.125, BendAllowance(1.0, -90), tol)
	assert.InDelta(t, 0.5, BendAllowance(1.0, 360), tol)
}
