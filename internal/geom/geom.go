// Package geom holds the rotation and affine conventions shared by the wire
// path, the solid model and the schematic drawing.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/piwi3910/WireBend/internal/model"
)

// Axis unit vectors.
var (
	AxisX = mgl64.Vec3{1, 0, 0}
	AxisY = mgl64.Vec3{0, 1, 0}
	AxisZ = mgl64.Vec3{0, 0, 1}
)

// Epsilon is the tolerance used for geometric comparisons in mm.
const Epsilon = 1e-9

// SegmentRotation returns the local rotation applied before a segment:
// a bend about the local Z axis followed by a twist about the rotated Y axis.
func SegmentRotation(a model.Angles) mgl64.Quat {
	bend := mgl64.QuatRotate(mgl64.DegToRad(a.Bend), AxisZ)
	twist := mgl64.QuatRotate(mgl64.DegToRad(a.Twist), AxisY)
	return bend.Mul(twist)
}

// Pose is a position and orientation reached while walking a path.
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// Origin is the start pose of every path.
func Origin() Pose {
	return Pose{Orientation: mgl64.QuatIdent()}
}

// Forward returns the unit direction the pose is facing (its local X axis).
func (p Pose) Forward() mgl64.Vec3 {
	return p.Orientation.Rotate(AxisX)
}

// Matrix returns the rigid transform that maps local coordinates into the pose.
func (p Pose) Matrix() mgl64.Mat4 {
	return mgl64.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z()).Mul4(p.Orientation.Mat4())
}

// TranslateMatrix returns a translation by (x, y, z).
func TranslateMatrix(x, y, z float64) mgl64.Mat4 {
	return mgl64.Translate3D(x, y, z)
}

// RotateMatrix returns a rotation about X, then Y, then Z, angles in degrees.
func RotateMatrix(rx, ry, rz float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DZ(mgl64.DegToRad(rz)).
		Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(ry))).
		Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(rx)))
}

// MirrorMatrix returns a reflection across the plane through the origin with
// normal (x, y, z). A zero normal yields the identity.
func MirrorMatrix(x, y, z float64) mgl64.Mat4 {
	n := mgl64.Vec3{x, y, z}
	l := n.Len()
	if l < Epsilon {
		return mgl64.Ident4()
	}
	n = n.Mul(1 / l)
	a, b, c := n.X(), n.Y(), n.Z()
	// Householder matrix I - 2nn^T is symmetric, so column order does not matter.
	return mgl64.Mat4{
		1 - 2*a*a, -2 * a * b, -2 * a * c, 0,
		-2 * a * b, 1 - 2*b*b, -2 * b * c, 0,
		-2 * a * c, -2 * b * c, 1 - 2*c*c, 0,
		0, 0, 0, 1,
	}
}

// Matrix returns the affine matrix of a recorded transform.
func Matrix(t model.Transform) mgl64.Mat4 {
	switch t.Kind {
	case model.TransformTranslate:
		return TranslateMatrix(t.X, t.Y, t.Z)
	case model.TransformRotate:
		return RotateMatrix(t.X, t.Y, t.Z)
	case model.TransformMirror:
		return MirrorMatrix(t.X, t.Y, t.Z)
	default:
		return mgl64.Ident4()
	}
}

// Fold composes a transform history into one matrix. Later operations are
// applied on top of earlier ones.
func Fold(history []model.Transform) mgl64.Mat4 {
	m := mgl64.Ident4()
	for _, t := range history {
		m = Matrix(t).Mul4(m)
	}
	return m
}

// Apply transforms a point by an affine matrix.
func Apply(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// AngleBetween returns the unsigned angle between two vectors in degrees.
func AngleBetween(a, b mgl64.Vec3) float64 {
	cos := a.Dot(b) / (a.Len() * b.Len())
	return mgl64.RadToDeg(math.Acos(mgl64.Clamp(cos, -1, 1)))
}

// Bounds is an axis-aligned box.
type Bounds struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// EmptyBounds returns a box that any point will extend.
func EmptyBounds() Bounds {
	inf := math.Inf(1)
	return Bounds{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether no point has been added.
func (b Bounds) IsEmpty() bool {
	return b.Min.X() > b.Max.X()
}

// Extend grows the box to include p.
func (b Bounds) Extend(p mgl64.Vec3) Bounds {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
	return b
}

// Union returns the smallest box containing both boxes.
func (b Bounds) Union(o Bounds) Bounds {
	if o.IsEmpty() {
		return b
	}
	return b.Extend(o.Min).Extend(o.Max)
}

// Size returns the box extent along each axis.
func (b Bounds) Size() mgl64.Vec3 {
	if b.IsEmpty() {
		return mgl64.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// ApproxEqual compares two boxes corner by corner.
func (b Bounds) ApproxEqual(o Bounds, eps float64) bool {
	return Near(b.Min, o.Min, eps) && Near(b.Max, o.Max, eps)
}

// Near reports whether two points differ by at most eps on every axis.
// Unlike mgl64's relative comparison it behaves the same near zero.
func Near(a, b mgl64.Vec3, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

// NearMat is Near for matrices.
func NearMat(a, b mgl64.Mat4, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}
