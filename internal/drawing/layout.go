package drawing

import (
	"github.com/piwi3910/WireBend/internal/model"
	"github.com/rs/zerolog/log"
)

// Layout is the cursor that places groups left to right in rows, wrapping to
// a new row when a group would cross the right margin and to a new page when
// a row would leave the bottom margin.
type Layout struct {
	Page      model.PageConfig
	X         float64
	Y         float64
	PageIndex int
}

// NewLayout returns a cursor at the top-left margin of the first page.
func NewLayout(page model.PageConfig) *Layout {
	return &Layout{Page: page, X: page.Margin, Y: page.Margin}
}

// Place assigns the group its page and offset and advances the cursor by the
// group's width plus the gutter.
func (l *Layout) Place(g *Group) {
	minX, width := g.Extent()
	if l.X+width > l.Page.Width-l.Page.Margin {
		l.X = l.Page.Margin
		l.Y += l.Page.RowAdvance
		log.Debug().Str("group", g.ID).Float64("y", l.Y).Msg("layout wrapped to new row")
		if l.Y > l.Page.Height-l.Page.Margin {
			l.PageIndex++
			l.Y = l.Page.Margin
			log.Debug().Str("group", g.ID).Int("page", l.PageIndex+1).Msg("layout wrapped to new page")
		}
	}
	g.Offset = model.Point2D{X: l.X - minX, Y: l.Y}
	g.Page = l.PageIndex
	l.X += width + l.Page.Gutter
}
