package solid

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// scadWriter accumulates OpenSCAD source with indentation.
type scadWriter struct {
	b     strings.Builder
	depth int
}

func (w *scadWriter) line(format string, args ...interface{}) {
	w.b.WriteString(strings.Repeat("  ", w.depth))
	w.b.WriteString(fmt.Sprintf(format, args...))
	w.b.WriteString("\n")
}

// block writes "head {", the body one level deeper, then "}".
func (w *scadWriter) block(head string, body func()) {
	w.line("%s {", head)
	w.depth++
	body()
	w.depth--
	w.line("}")
}

// GenerateSCAD returns the OpenSCAD source for n.
func GenerateSCAD(n Node) string {
	w := &scadWriter{}
	n.writeSCAD(w)
	return w.b.String()
}

// WriteSCAD writes the OpenSCAD source for n, preceded by a comment header.
func WriteSCAD(out io.Writer, title string, n Node) error {
	var b strings.Builder
	if title != "" {
		b.WriteString("// " + title + "\n")
	}
	b.WriteString(fmt.Sprintf("// %d primitives\n\n", Primitives(n)))
	b.WriteString(GenerateSCAD(n))
	_, err := io.WriteString(out, b.String())
	return err
}

// SaveSCAD writes n to path as an OpenSCAD file.
func SaveSCAD(path, title string, n Node) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create scad file: %w", err)
	}
	if err := WriteSCAD(f, title, n); err != nil {
		f.Close()
		return fmt.Errorf("failed to write scad file: %w", err)
	}
	return f.Close()
}

func (c Cylinder) writeSCAD(w *scadWriter) {
	if c.Facets > 0 {
		w.line("cylinder(h=%s, d=%s, $fn=%d);", num(c.Height), num(c.Diameter), c.Facets)
		return
	}
	w.line("cylinder(h=%s, d=%s);", num(c.Height), num(c.Diameter))
}

func (c Cube) writeSCAD(w *scadWriter) {
	w.line("cube(%s, center=%t);", vec(c.Size[0], c.Size[1], c.Size[2]), c.Center)
}

func (u *Union) writeSCAD(w *scadWriter) {
	w.block("union()", func() {
		for _, c := range u.Children {
			c.writeSCAD(w)
		}
	})
}

func (t Transformed) writeSCAD(w *scadWriter) {
	var head string
	if t.Raw {
		m := t.Matrix
		rows := make([]string, 4)
		for r := 0; r < 4; r++ {
			rows[r] = fmt.Sprintf("[%s, %s, %s, %s]", num(m.At(r, 0)), num(m.At(r, 1)), num(m.At(r, 2)), num(m.At(r, 3)))
		}
		head = "multmatrix([" + strings.Join(rows, ", ") + "])"
	} else {
		head = fmt.Sprintf("%s(%s)", t.Op.Kind, vec(t.Op.X, t.Op.Y, t.Op.Z))
	}
	w.block(head, func() { t.Child.writeSCAD(w) })
}

func (c Colored) writeSCAD(w *scadWriter) {
	w.block(fmt.Sprintf("color(%q, %s)", c.Color, num(c.Alpha)), func() { c.Child.writeSCAD(w) })
}

// num formats a float with at most six decimals and no trailing zeros.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func vec(x, y, z float64) string {
	return "[" + num(x) + ", " + num(y) + ", " + num(z) + "]"
}
