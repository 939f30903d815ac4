package wire

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/piwi3910/WireBend/internal/geom"
	"github.com/piwi3910/WireBend/internal/model"
	"github.com/piwi3910/WireBend/internal/scene"
)

// Simplify replaces a two-segment path whose second segment bends in any
// direction with an equivalent one that bends in the XY plane and is then
// rolled about X into place. The first segment must be straight.
func Simplify(sc *scene.Scene, title string, diameter float64, segments ...model.WireSegment) (*BendWire, error) {
	if len(segments) != 2 {
		return nil, fmt.Errorf("%w: simplify %q needs 2 segments, has %d", model.ErrPrecondition, title, len(segments))
	}
	if !segments[0].Angles.IsStraight() {
		return nil, fmt.Errorf("%w: simplify %q needs a straight first segment, has (%g, %g)",
			model.ErrPrecondition, title, segments[0].Angles.Bend, segments[0].Angles.Twist)
	}
	path, err := NewPath(diameter, segments...)
	if err != nil {
		return nil, fmt.Errorf("simplify %q: %w", title, err)
	}

	v0 := path.Joints[1].Sub(path.Joints[0])
	v2 := path.Joints[2].Sub(path.Joints[1])
	normal := v0.Cross(v2)
	if normal.Len() <= 1e-9*v0.Len()*v2.Len() {
		return nil, fmt.Errorf("%w: simplify %q segments are collinear", model.ErrDegenerateGeometry, title)
	}

	bend := geom.AngleBetween(v0, v2)
	roll := mgl64.RadToDeg(math.Acos(mgl64.Clamp(normal.Z()/normal.Len(), -1, 1)))
	// acos loses the side of the roll; the normal's Y component recovers it.
	if normal.Y() < 0 {
		roll = -roll
	}

	w, err := New(sc, title, diameter, segments[0], model.Seg(segments[1].Length, bend, 0))
	if err != nil {
		return nil, err
	}
	return w.Rotate(-roll, 0, 0), nil
}
