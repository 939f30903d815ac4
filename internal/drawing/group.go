// Package drawing builds the 2D cut-template sheet: one group of lines per
// wire piece, placed on pages by a row-wrapping layout cursor, and written
// out as SVG or PNG.
package drawing

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/piwi3910/WireBend/internal/model"
)

// Line is a straight stroke in group coordinates (mm).
type Line struct {
	From model.Point2D `json:"from"`
	To   model.Point2D `json:"to"`
}

// Length returns the drawn length of the line.
func (l Line) Length() float64 {
	return math.Hypot(l.To.X-l.From.X, l.To.Y-l.From.Y)
}

// Group is the schematic of one wire piece. Lines are drawn at true size in
// the group's own frame; Offset places the frame on a page.
type Group struct {
	ID          string
	Title       string
	Color       string
	StrokeWidth float64
	Lines       []Line
	Label       string
	Offset      model.Point2D
	Page        int
	// Transform mirrors the affine state of the piece's solid model. It is
	// carried as metadata only; the template itself is never distorted.
	Transform mgl64.Mat4
}

// NewGroup returns an empty group with an identity transform.
func NewGroup(title, color string, strokeWidth float64) *Group {
	return &Group{
		ID:          title,
		Title:       title,
		Color:       color,
		StrokeWidth: strokeWidth,
		Transform:   mgl64.Ident4(),
	}
}

// AddLine appends a stroke from a to b.
func (g *Group) AddLine(a, b model.Point2D) {
	g.Lines = append(g.Lines, Line{From: a, To: b})
}

// Extent returns the smallest X and the width of the group. The group's
// origin always counts, so a piece drawn entirely to the right of it still
// reserves the gap.
func (g *Group) Extent() (minX, width float64) {
	var maxX float64
	for _, l := range g.Lines {
		minX = math.Min(minX, math.Min(l.From.X, l.To.X))
		maxX = math.Max(maxX, math.Max(l.From.X, l.To.X))
	}
	return minX, maxX - minX
}

// Points returns the stroke end points as a polyline in page coordinates.
func (g *Group) Points() model.Polyline {
	pts := make(model.Polyline, 0, len(g.Lines)+1)
	for i, l := range g.Lines {
		if i == 0 {
			pts = append(pts, l.From)
		}
		pts = append(pts, l.To)
	}
	return pts.Translate(g.Offset.X, g.Offset.Y)
}

// Apply composes m on top of the group's transform.
func (g *Group) Apply(m mgl64.Mat4) {
	g.Transform = m.Mul4(g.Transform)
}

// TransformString formats the transform as an SVG-style 3D matrix for metadata.
func (g *Group) TransformString() string {
	m := g.Transform
	return fmt.Sprintf("matrix3d(%g,%g,%g,%g,%g,%g,%g,%g,%g,%g,%g,%g,%g,%g,%g,%g)",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7],
		m[8], m[9], m[10], m[11], m[12], m[13], m[14], m[15])
}

// CalibrationGroup returns the L-shaped scale mark printed first on every
// sheet so the print scale can be checked with a ruler.
func CalibrationGroup(size float64) *Group {
	g := NewGroup(fmt.Sprintf("calibration_%gx%g", size, size), "blue", 0.2)
	g.Title = "calibration"
	g.AddLine(model.Point2D{}, model.Point2D{X: size})
	g.AddLine(model.Point2D{}, model.Point2D{Y: size})
	g.Label = fmt.Sprintf("%g mm", size)
	return g
}
