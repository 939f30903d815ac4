package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/piwi3910/WireBend/internal/model"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-9

func TestNear(t *testing.T) {
	assert.True(t, Near(mgl64.Vec3{0, 1e-12, 0}, mgl64.Vec3{}, tol))
	assert.False(t, Near(mgl64.Vec3{0, 1e-3, 0}, mgl64.Vec3{}, tol))
}

func assertVec(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	assert.True(t, Near(want, got, tol), "expected %v, got %v", want, got)
}

func TestSegmentRotation_Straight(t *testing.T) {
	q := SegmentRotation(model.Straight)
	assertVec(t, AxisX, q.Rotate(AxisX))
}

func TestSegmentRotation_Bend90(t *testing.T) {
	q := SegmentRotation(model.Angles{Bend: 90})
	assertVec(t, AxisY, q.Rotate(AxisX))
}

func TestSegmentRotation_Twist90(t *testing.T) {
	q := SegmentRotation(model.Angles{Twist: 90})
	assertVec(t, mgl64.Vec3{0, 0, -1}, q.Rotate(AxisX))
}

func TestSegmentRotation_BendThenTwistAboutLocalAxis(t *testing.T) {
	// Twist acts in the already bent frame.
	q := SegmentRotation(model.Angles{Bend: 90, Twist: 90})
	assertVec(t, mgl64.Vec3{0, 0, -1}, q.Rotate(AxisX))

	q = SegmentRotation(model.Angles{Bend: 90, Twist: 45})
	s := 1 / mgl64.Vec3{1, 1, 0}.Len()
	assertVec(t, mgl64.Vec3{0, s, -s}, q.Rotate(AxisX))
}

func TestPoseMatrix(t *testing.T) {
	p := Pose{Position: mgl64.Vec3{1, 2, 3}, Orientation: SegmentRotation(model.Angles{Bend: 90})}
	assertVec(t, mgl64.Vec3{1, 3, 3}, Apply(p.Matrix(), AxisX))
	assertVec(t, AxisY, p.Forward())
}

func TestRotateMatrix_Order(t *testing.T) {
	m := RotateMatrix(0, 0, 90)
	assertVec(t, AxisY, Apply(m, AxisX))

	// X first, then Z
	m = RotateMatrix(90, 0, 90)
	assertVec(t, AxisZ, Apply(m, AxisY))
	assertVec(t, AxisY, Apply(m, AxisX))

	m = RotateMatrix(0, -90, 0)
	assertVec(t, AxisZ, Apply(m, AxisX))
}

func TestMirrorMatrix(t *testing.T) {
	p := mgl64.Vec3{3, 4, 5}
	assertVec(t, mgl64.Vec3{-3, 4, 5}, Apply(MirrorMatrix(1, 0, 0), p))
	assertVec(t, mgl64.Vec3{-3, 4, 5}, Apply(MirrorMatrix(2, 0, 0), p))
	assertVec(t, mgl64.Vec3{3, 4, -5}, Apply(MirrorMatrix(0, 0, 1), p))
	assertVec(t, p, Apply(MirrorMatrix(0, 0, 0), p))

	// Diagonal plane swaps X and Y
	assertVec(t, mgl64.Vec3{-4, -3, 5}, Apply(MirrorMatrix(1, 1, 0), p))
}

func TestMirrorMatrix_Involution(t *testing.T) {
	m := MirrorMatrix(0.3, -1, 2)
	assert.True(t, NearMat(m.Mul4(m), mgl64.Ident4(), tol))
}

func TestFold_AppliesInOrder(t *testing.T) {
	history := []model.Transform{
		{Kind: model.TransformTranslate, X: 1},
		{Kind: model.TransformRotate, Z: 90},
	}
	assertVec(t, AxisY, Apply(Fold(history), mgl64.Vec3{}))

	reversed := []model.Transform{history[1], history[0]}
	assertVec(t, AxisX, Apply(Fold(reversed), mgl64.Vec3{}))
}

func TestFold_TranslateInverse(t *testing.T) {
	history := []model.Transform{
		{Kind: model.TransformTranslate, X: 1.5, Y: -2, Z: 7},
		{Kind: model.TransformTranslate, X: -1.5, Y: 2, Z: -7},
	}
	assert.True(t, NearMat(Fold(history), mgl64.Ident4(), tol))
	assert.True(t, NearMat(Fold(nil), mgl64.Ident4(), tol))
}

func TestMatrix_UnknownKindIsIdentity(t *testing.T) {
	m := Matrix(model.Transform{Kind: model.TransformKind(42), X: 5})
	assert.True(t, NearMat(m, mgl64.Ident4(), tol))
}

func TestAngleBetween(t *testing.T) {
	assert.InDelta(t, 90, AngleBetween(AxisX, AxisY), tol)
	assert.InDelta(t, 0, AngleBetween(AxisX, mgl64.Vec3{5, 0, 0}), tol)
	assert.InDelta(t, 180, AngleBetween(AxisX, mgl64.Vec3{-2, 0, 0}), tol)
	assert.InDelta(t, 45, AngleBetween(AxisX, mgl64.Vec3{1, 1, 0}), 1e-6)
}

func TestBounds(t *testing.T) {
	b := EmptyBounds()
	assert.True(t, b.IsEmpty())
	assertVec(t, mgl64.Vec3{}, b.Size())

	b = b.Extend(mgl64.Vec3{1, 2, 3}).Extend(mgl64.Vec3{-1, 5, 0})
	assert.False(t, b.IsEmpty())
	assertVec(t, mgl64.Vec3{-1, 2, 0}, b.Min)
	assertVec(t, mgl64.Vec3{1, 5, 3}, b.Max)
	assertVec(t, mgl64.Vec3{2, 3, 3}, b.Size())

	o := EmptyBounds().Extend(mgl64.Vec3{10, 0, 0})
	u := b.Union(o)
	assertVec(t, mgl64.Vec3{10, 5, 3}, u.Max)
	assert.True(t, b.Union(EmptyBounds()).ApproxEqual(b, tol))
}
