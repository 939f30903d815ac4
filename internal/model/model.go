package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Point2D represents a 2D coordinate in mm.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polyline is an open sequence of 2D points. Consecutive points are joined
// by straight lines; the last point does not connect back to the first.
type Polyline []Point2D

// BoundingBox returns the min and max corners of the polyline.
func (p Polyline) BoundingBox() (min, max Point2D) {
	if len(p) == 0 {
		return Point2D{}, Point2D{}
	}
	min = Point2D{X: p[0].X, Y: p[0].Y}
	max = Point2D{X: p[0].X, Y: p[0].Y}
	for _, pt := range p[1:] {
		if pt.X < min.X {
			min.X = pt.X
		}
		if pt.Y < min.Y {
			min.Y = pt.Y
		}
		if pt.X > max.X {
			max.X = pt.X
		}
		if pt.Y > max.Y {
			max.Y = pt.Y
		}
	}
	return min, max
}

// Translate shifts all points by dx, dy.
func (p Polyline) Translate(dx, dy float64) Polyline {
	result := make(Polyline, len(p))
	for i, pt := range p {
		result[i] = Point2D{X: pt.X + dx, Y: pt.Y + dy}
	}
	return result
}

// Angles holds the two rotation angles applied before a segment, in degrees.
type Angles struct {
	Bend  float64 `json:"bend"`  // In-plane bend about the local Z axis
	Twist float64 `json:"twist"` // Out-of-plane rotation about the local Y axis
}

// Straight is the zero rotation: the segment continues in the current direction.
var Straight = Angles{}

// IsStraight reports whether both angles are exactly zero.
func (a Angles) IsStraight() bool {
	return a.Bend == 0 && a.Twist == 0
}

// WireSegment is a straight run of wire preceded by a bend.
type WireSegment struct {
	Length float64 `json:"length"` // mm
	Angles Angles  `json:"angles"`
}

// Seg is shorthand for building a WireSegment.
func Seg(length, bend, twist float64) WireSegment {
	return WireSegment{Length: length, Angles: Angles{Bend: bend, Twist: twist}}
}

func (s WireSegment) String() string {
	return fmt.Sprintf("%.2fmm (%g, %g)", s.Length, s.Angles.Bend, s.Angles.Twist)
}

// TransformKind identifies an affine operation applied to a wire.
type TransformKind int

const (
	TransformTranslate TransformKind = iota // Move by (x, y, z) mm
	TransformRotate                         // Rotate about X, then Y, then Z, in degrees
	TransformMirror                         // Reflect across the plane with normal (x, y, z)
)

func (k TransformKind) String() string {
	switch k {
	case TransformTranslate:
		return "translate"
	case TransformRotate:
		return "rotate"
	case TransformMirror:
		return "mirror"
	default:
		return "unknown"
	}
}

// Transform is one recorded entry of a wire's transform history.
type Transform struct {
	Kind TransformKind `json:"kind"`
	X    float64       `json:"x"`
	Y    float64       `json:"y"`
	Z    float64       `json:"z"`
}

func (t Transform) String() string {
	return fmt.Sprintf("%s(%g, %g, %g)", t.Kind, t.X, t.Y, t.Z)
}

// Piece is the record of one committed wire, as needed for cut lists and labels.
type Piece struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	GroupID        string  `json:"group_id"`        // Schematic group identifier
	Diameter       float64 `json:"diameter"`        // mm
	Length         float64 `json:"length"`          // Total length including bend allowance (mm)
	CumulativeBend float64 `json:"cumulative_bend"` // Sum of absolute bend angles (degrees)
	Segments       int     `json:"segments"`
	Twisted        bool    `json:"twisted"` // At least one segment uses a twist angle
	Page           int     `json:"page"`    // Schematic page, zero-based
	Spool          int     `json:"spool"`   // Assigned spool, 1-based; 0 when unassigned
}

func NewPiece(title string, diameter, length, cumulativeBend float64, segments int) Piece {
	return Piece{
		ID:             uuid.New().String()[:8],
		Title:          title,
		GroupID:        GroupID(title, length, cumulativeBend),
		Diameter:       diameter,
		Length:         length,
		CumulativeBend: cumulativeBend,
		Segments:       segments,
	}
}

// GroupID formats the identifier used for a piece's schematic group.
func GroupID(title string, length, cumulativeBend float64) string {
	return fmt.Sprintf("%s_%.1fmm_%gdeg", title, length, cumulativeBend)
}
