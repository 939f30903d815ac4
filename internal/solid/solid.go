// Package solid is a small immutable CSG tree: the primitives, boolean union
// and affine wrappers needed to describe bent-wire tubes, plus bounds and an
// OpenSCAD writer.
package solid

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/piwi3910/WireBend/internal/geom"
	"github.com/piwi3910/WireBend/internal/model"
)

// Node is any element of the solid tree. Nodes are never modified after
// construction, so subtrees may be shared freely.
type Node interface {
	// bounds returns the box of the node under the given parent transform.
	bounds(m mgl64.Mat4) geom.Bounds
	// primitives counts the leaf solids under the node.
	primitives() int
	writeSCAD(w *scadWriter)
}

// Cylinder is a solid cylinder standing on the XY plane along +Z.
type Cylinder struct {
	Height   float64
	Diameter float64
	Facets   int // Edge count; 0 leaves it to the renderer
}

func (c Cylinder) bounds(m mgl64.Mat4) geom.Bounds {
	r := c.Diameter / 2
	return boxBounds(m, mgl64.Vec3{-r, -r, 0}, mgl64.Vec3{r, r, c.Height})
}

func (c Cylinder) primitives() int { return 1 }

// Cube is a box with one corner at the origin, or centered on it.
type Cube struct {
	Size   mgl64.Vec3
	Center bool
}

func (c Cube) bounds(m mgl64.Mat4) geom.Bounds {
	lo := mgl64.Vec3{}
	if c.Center {
		lo = c.Size.Mul(-0.5)
	}
	return boxBounds(m, lo, lo.Add(c.Size))
}

func (c Cube) primitives() int { return 1 }

// Union merges its children.
type Union struct {
	Children []Node
}

// NewUnion returns a union of the given nodes.
func NewUnion(children ...Node) *Union {
	return &Union{Children: children}
}

// Add appends nodes to the union.
func (u *Union) Add(nodes ...Node) {
	u.Children = append(u.Children, nodes...)
}

// Len returns the number of direct children.
func (u *Union) Len() int {
	return len(u.Children)
}

func (u *Union) bounds(m mgl64.Mat4) geom.Bounds {
	b := geom.EmptyBounds()
	for _, c := range u.Children {
		b = b.Union(c.bounds(m))
	}
	return b
}

func (u *Union) primitives() int {
	n := 0
	for _, c := range u.Children {
		n += c.primitives()
	}
	return n
}

// Transformed applies an affine operation to its child. Op keeps the
// operation that produced Matrix so writers can emit it by name.
type Transformed struct {
	Op     model.Transform
	Raw    bool // Emit Matrix directly instead of Op
	Matrix mgl64.Mat4
	Child  Node
}

func (t Transformed) bounds(m mgl64.Mat4) geom.Bounds {
	return t.Child.bounds(m.Mul4(t.Matrix))
}

func (t Transformed) primitives() int { return t.Child.primitives() }

// Colored tints its child.
type Colored struct {
	Color string
	Alpha float64
	Child Node
}

func (c Colored) bounds(m mgl64.Mat4) geom.Bounds { return c.Child.bounds(m) }

func (c Colored) primitives() int { return c.Child.primitives() }

// Apply wraps n in the recorded transform t.
func Apply(n Node, t model.Transform) Node {
	return Transformed{Op: t, Matrix: geom.Matrix(t), Child: n}
}

// Translate moves n by (x, y, z).
func Translate(n Node, x, y, z float64) Node {
	return Apply(n, model.Transform{Kind: model.TransformTranslate, X: x, Y: y, Z: z})
}

// Rotate turns n about X, then Y, then Z, in degrees.
func Rotate(n Node, x, y, z float64) Node {
	return Apply(n, model.Transform{Kind: model.TransformRotate, X: x, Y: y, Z: z})
}

// Mirror reflects n across the plane with normal (x, y, z).
func Mirror(n Node, x, y, z float64) Node {
	return Apply(n, model.Transform{Kind: model.TransformMirror, X: x, Y: y, Z: z})
}

// Multmatrix applies an arbitrary affine matrix to n.
func Multmatrix(n Node, m mgl64.Mat4) Node {
	return Transformed{Raw: true, Matrix: m, Child: n}
}

// Color tints n with a named color and opacity.
func Color(n Node, name string, alpha float64) Node {
	return Colored{Color: name, Alpha: alpha, Child: n}
}

// Bounds returns the axis-aligned box around n in world coordinates.
// Curved surfaces are bounded by their local boxes, so the result may be
// slightly larger than the exact hull.
func Bounds(n Node) geom.Bounds {
	return n.bounds(mgl64.Ident4())
}

// Primitives counts the leaf solids in n.
func Primitives(n Node) int {
	return n.primitives()
}

// boxBounds transforms the eight corners of a local box.
func boxBounds(m mgl64.Mat4, lo, hi mgl64.Vec3) geom.Bounds {
	b := geom.EmptyBounds()
	for i := 0; i < 8; i++ {
		c := lo
		if i&1 != 0 {
			c[0] = hi[0]
		}
		if i&2 != 0 {
			c[1] = hi[1]
		}
		if i&4 != 0 {
			c[2] = hi[2]
		}
		b = b.Extend(geom.Apply(m, c))
	}
	return b
}
