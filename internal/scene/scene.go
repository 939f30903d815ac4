// Package scene holds the state shared by every wire piece in one build: the
// solid-model union, the cut-template sheet with its layout cursor, and the
// per-diameter length ledger.
package scene

import (
	"fmt"
	"path/filepath"

	"github.com/piwi3910/WireBend/internal/drawing"
	"github.com/piwi3910/WireBend/internal/model"
	"github.com/piwi3910/WireBend/internal/solid"
	"github.com/rs/zerolog/log"
)

// Scene accumulates committed pieces. It is not safe for concurrent use.
type Scene struct {
	Inventory model.Inventory
	Page      model.PageConfig
	Facets    int
	Layout    *drawing.Layout

	solid  *solid.Union
	sheet  *drawing.Sheet
	ledger *Ledger
	pieces []model.Piece
}

// New returns an empty scene. The calibration mark is placed on the sheet
// before any piece so every layout starts after it.
func New(inv model.Inventory, cfg model.AppConfig) *Scene {
	cfg.Normalize()
	layout := drawing.NewLayout(cfg.Page)
	return &Scene{
		Inventory: inv,
		Page:      cfg.Page,
		Facets:    cfg.Facets,
		Layout:    layout,
		solid:     solid.NewUnion(),
		sheet:     drawing.NewSheet(layout),
		ledger:    NewLedger(),
	}
}

// Add merges a committed piece into the scene.
func (s *Scene) Add(piece model.Piece, n solid.Node, g *drawing.Group) {
	s.solid.Add(n)
	s.sheet.Add(g)
	s.ledger.Append(piece.Diameter, piece.Length)
	s.pieces = append(s.pieces, piece)
	log.Debug().
		Str("wire", piece.Title).
		Float64("diameter", piece.Diameter).
		Float64("length_mm", piece.Length).
		Msg("piece committed")
}

// AddSolid merges a solid that is not a wire piece, such as a mock-up of a
// mounted component. It does not touch the ledger or the sheet.
func (s *Scene) AddSolid(n solid.Node) {
	s.solid.Add(n)
}

// Solid returns the union of all committed solids.
func (s *Scene) Solid() *solid.Union {
	return s.solid
}

// Sheet returns the cut-template drawing.
func (s *Scene) Sheet() *drawing.Sheet {
	return s.sheet
}

// Ledger returns the per-diameter length ledger.
func (s *Scene) Ledger() *Ledger {
	return s.ledger
}

// Pieces returns the committed pieces in commit order.
func (s *Scene) Pieces() []model.Piece {
	out := make([]model.Piece, len(s.pieces))
	copy(out, s.pieces)
	return out
}

// AssignSpools records which spool each piece of a diameter is cut from.
// spools lists, per spool, indices into the ledger's lengths for that diameter.
func (s *Scene) AssignSpools(diameter float64, spools [][]int) {
	spoolOf := make(map[int]int)
	for si, idxs := range spools {
		for _, idx := range idxs {
			spoolOf[idx] = si + 1
		}
	}
	k := 0
	for i := range s.pieces {
		if s.pieces[i].Diameter != diameter {
			continue
		}
		s.pieces[i].Spool = spoolOf[k]
		k++
	}
}

// Export writes the solid model and the drawing sinks selected in formats
// to dir, naming each file after base. It returns the written paths.
func (s *Scene) Export(dir, base string, formats model.ExportFormats, pixelsPerMM float64) ([]string, error) {
	if len(s.pieces) == 0 {
		return nil, model.ErrNoPieces
	}
	var written []string
	if formats.SCAD {
		path := filepath.Join(dir, base+".scad")
		if err := solid.SaveSCAD(path, base, s.solid); err != nil {
			return written, fmt.Errorf("export solid model: %w", err)
		}
		written = append(written, path)
	}
	if formats.SVG {
		path := filepath.Join(dir, base+".svg")
		if err := drawing.SaveSVG(path, s.sheet); err != nil {
			return written, fmt.Errorf("export drawing: %w", err)
		}
		written = append(written, path)
	}
	if formats.PNG {
		path := filepath.Join(dir, base+".png")
		if err := drawing.SavePNG(path, s.sheet, pixelsPerMM); err != nil {
			return written, fmt.Errorf("export preview: %w", err)
		}
		written = append(written, path)
	}
	for _, p := range written {
		log.Info().Str("path", p).Msg("exported")
	}
	return written, nil
}
