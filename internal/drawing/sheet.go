package drawing

import "github.com/piwi3910/WireBend/internal/model"

// Sheet accumulates the groups that make up the cut-template drawing.
type Sheet struct {
	Page   model.PageConfig
	Groups []*Group
}

// NewSheet returns a sheet holding only the calibration mark, placed through
// the layout so that pieces start after it.
func NewSheet(layout *Layout) *Sheet {
	cal := CalibrationGroup(layout.Page.CalibrationSize)
	layout.Place(cal)
	return &Sheet{Page: layout.Page, Groups: []*Group{cal}}
}

// Add appends a placed group.
func (s *Sheet) Add(g *Group) {
	s.Groups = append(s.Groups, g)
}

// Pages returns the number of pages the groups occupy.
func (s *Sheet) Pages() int {
	n := 0
	for _, g := range s.Groups {
		if g.Page+1 > n {
			n = g.Page + 1
		}
	}
	if n == 0 {
		n = 1
	}
	return n
}

// PageGroups returns the groups placed on page i.
func (s *Sheet) PageGroups(i int) []*Group {
	var out []*Group
	for _, g := range s.Groups {
		if g.Page == i {
			out = append(out, g)
		}
	}
	return out
}
