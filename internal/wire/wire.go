package wire

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/piwi3910/WireBend/internal/drawing"
	"github.com/piwi3910/WireBend/internal/geom"
	"github.com/piwi3910/WireBend/internal/model"
	"github.com/piwi3910/WireBend/internal/scene"
	"github.com/piwi3910/WireBend/internal/solid"
	"github.com/rs/zerolog/log"
)

// BendWire is one physical wire piece bound to a scene. Its tube solid and
// its schematic group always carry the same transform.
type BendWire struct {
	Title    string
	Diameter float64
	Path     *Path
	History  []model.Transform

	scene     *scene.Scene
	color     string
	solid     solid.Node
	group     *drawing.Group
	committed bool
}

// New builds a wire from segments and reserves its slot on the scene's sheet.
// The diameter must have a schematic color in the scene's inventory.
func New(sc *scene.Scene, title string, diameter float64, segments ...model.WireSegment) (*BendWire, error) {
	color, err := sc.Inventory.ColorFor(diameter)
	if err != nil {
		return nil, fmt.Errorf("wire %q: %w", title, err)
	}
	path, err := NewPath(diameter, segments...)
	if err != nil {
		return nil, fmt.Errorf("wire %q: %w", title, err)
	}
	for _, i := range path.TwistedSegments {
		log.Warn().
			Str("wire", title).
			Int("segment", i).
			Float64("twist", path.Segments[i].Angles.Twist).
			Msg("segment uses non-zero twist angle")
	}
	if path.Twisted() && sc.Inventory.WarningColor != "" {
		color = sc.Inventory.WarningColor
	}
	return build(sc, title, diameter, color, path), nil
}

// build creates the solid and the placed schematic for a validated path.
func build(sc *scene.Scene, title string, diameter float64, color string, path *Path) *BendWire {
	tubes := solid.NewUnion()
	for i, s := range path.Segments {
		cyl := solid.Cylinder{Height: s.Length, Diameter: diameter, Facets: sc.Facets}
		tubes.Add(solid.Multmatrix(solid.Rotate(cyl, 0, 90, 0), path.Poses[i].Matrix()))
	}

	group := drawing.NewGroup(model.GroupID(title, path.TotalLength, path.CumulativeBend), color, diameter)
	group.Title = title
	for i := 1; i < len(path.Joints); i++ {
		group.AddLine(flat(path.Joints[i-1]), flat(path.Joints[i]))
	}
	group.Label = fmt.Sprintf("%.1f", path.TotalLength)
	sc.Layout.Place(group)

	return &BendWire{
		Title:    title,
		Diameter: diameter,
		Path:     path,
		scene:    sc,
		color:    color,
		solid:    tubes,
		group:    group,
	}
}

// flat drops the Z coordinate.
func flat(v mgl64.Vec3) model.Point2D {
	return model.Point2D{X: v.X(), Y: v.Y()}
}

// Translate moves the wire by (x, y, z) mm.
func (w *BendWire) Translate(x, y, z float64) *BendWire {
	return w.apply(model.Transform{Kind: model.TransformTranslate, X: x, Y: y, Z: z})
}

// Rotate turns the wire about X, then Y, then Z, in degrees.
func (w *BendWire) Rotate(x, y, z float64) *BendWire {
	return w.apply(model.Transform{Kind: model.TransformRotate, X: x, Y: y, Z: z})
}

// Mirror reflects the wire across the plane through the origin with normal (x, y, z).
func (w *BendWire) Mirror(x, y, z float64) *BendWire {
	return w.apply(model.Transform{Kind: model.TransformMirror, X: x, Y: y, Z: z})
}

func (w *BendWire) apply(t model.Transform) *BendWire {
	w.History = append(w.History, t)
	w.solid = solid.Apply(w.solid, t)
	w.group.Apply(geom.Matrix(t))
	return w
}

// Copy builds a new wire from the same segments, with its own slot on the
// sheet, and replays the transform history onto it.
func (w *BendWire) Copy() *BendWire {
	c := build(w.scene, w.Title, w.Diameter, w.color, w.Path.clone())
	for _, t := range w.History {
		c.apply(t)
	}
	return c
}

// Commit adds the wire to its scene: the solid joins the model union, the
// length joins the ledger and the schematic joins the sheet. A wire can be
// committed once; use Copy for every further piece.
func (w *BendWire) Commit() error {
	if w.committed {
		return fmt.Errorf("%w: %s", model.ErrAlreadyCommitted, w.group.ID)
	}
	piece := model.NewPiece(w.Title, w.Diameter, w.Path.TotalLength, w.Path.CumulativeBend, len(w.Path.Segments))
	piece.Twisted = w.Path.Twisted()
	piece.Page = w.group.Page

	// The sheet keeps its own copy so later transforms on w cannot move a
	// committed template.
	g := *w.group
	g.Lines = append([]drawing.Line(nil), w.group.Lines...)
	w.scene.Add(piece, w.solid, &g)
	w.committed = true
	return nil
}

// Committed reports whether Commit has succeeded.
func (w *BendWire) Committed() bool {
	return w.committed
}

// Length returns the total wire length including bend allowance.
func (w *BendWire) Length() float64 {
	return w.Path.TotalLength
}

// Solid returns the current tube solid.
func (w *BendWire) Solid() solid.Node {
	return w.solid
}

// Group returns the current schematic group.
func (w *BendWire) Group() *drawing.Group {
	return w.group
}

// Matrix returns the accumulated transform of the wire.
func (w *BendWire) Matrix() mgl64.Mat4 {
	return geom.Fold(w.History)
}

// WorldJoints returns the joint positions with the transform history applied.
func (w *BendWire) WorldJoints() []mgl64.Vec3 {
	m := w.Matrix()
	out := make([]mgl64.Vec3, len(w.Path.Joints))
	for i, j := range w.Path.Joints {
		out[i] = geom.Apply(m, j)
	}
	return out
}
