// Package wire turns sequences of (length, bend) segments into bent-wire
// pieces: their 3D path, tube solid and 2D cut template.
package wire

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/piwi3910/WireBend/internal/geom"
	"github.com/piwi3910/WireBend/internal/model"
)

// Path is the walked geometry of a segment list. Every wire owns its Path;
// Copy hands the new wire a clone.
type Path struct {
	Diameter float64
	Segments []model.WireSegment
	// Joints holds the start point and the end point of every segment.
	Joints []mgl64.Vec3
	// Poses holds, per segment, its start point and the orientation after
	// the segment's rotation.
	Poses          []geom.Pose
	TotalLength    float64
	CumulativeBend float64
	// TwistedSegments lists the indices of segments with a non-zero twist.
	TwistedSegments []int
}

func (p *Path) clone() *Path {
	c := *p
	c.Segments = append([]model.WireSegment(nil), p.Segments...)
	c.Joints = append([]mgl64.Vec3(nil), p.Joints...)
	c.Poses = append([]geom.Pose(nil), p.Poses...)
	c.TwistedSegments = append([]int(nil), p.TwistedSegments...)
	return &c
}

// BendAllowance is the extra wire consumed by a bend of the given angle.
// It is an empirical shop rule, not a neutral-axis calculation.
func BendAllowance(diameter, bend float64) float64 {
	return diameter / 2 * math.Abs(bend) / 360
}

// NewPath walks the segments from the origin facing +X.
func NewPath(diameter float64, segments ...model.WireSegment) (*Path, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: no segments", model.ErrInvalidPath)
	}
	for i, s := range segments {
		if !(s.Length > 0) || math.IsInf(s.Length, 0) {
			return nil, fmt.Errorf("%w: segment %d has length %g", model.ErrInvalidPath, i, s.Length)
		}
		if math.IsNaN(s.Angles.Bend) || math.IsNaN(s.Angles.Twist) {
			return nil, fmt.Errorf("%w: segment %d has an undefined angle", model.ErrInvalidPath, i)
		}
	}

	p := &Path{
		Diameter: diameter,
		Segments: append([]model.WireSegment(nil), segments...),
		Joints:   make([]mgl64.Vec3, 0, len(segments)+1),
		Poses:    make([]geom.Pose, 0, len(segments)),
	}

	pose := geom.Origin()
	p.Joints = append(p.Joints, pose.Position)
	for i, s := range segments {
		pose.Orientation = pose.Orientation.Mul(geom.SegmentRotation(s.Angles)).Normalize()
		p.Poses = append(p.Poses, pose)
		pose.Position = pose.Position.Add(pose.Orientation.Rotate(mgl64.Vec3{s.Length, 0, 0}))
		p.Joints = append(p.Joints, pose.Position)

		p.TotalLength += s.Length + BendAllowance(diameter, s.Angles.Bend)
		p.CumulativeBend += math.Abs(s.Angles.Bend)
		if s.Angles.Twist != 0 {
			p.TwistedSegments = append(p.TwistedSegments, i)
		}
	}
	return p, nil
}

// Twisted reports whether any segment uses a twist angle.
func (p *Path) Twisted() bool {
	return len(p.TwistedSegments) > 0
}

// StraightLength returns the sum of the segment lengths without allowance.
func (p *Path) StraightLength() float64 {
	var total float64
	for _, s := range p.Segments {
		total += s.Length
	}
	return total
}

// End returns the last joint.
func (p *Path) End() mgl64.Vec3 {
	return p.Joints[len(p.Joints)-1]
}
