// Package indicator builds the panel indicator line from modifier
// configuration and live lock-key state.
package indicator

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/modlight/internal/modifier"
	"github.com/dshills/modlight/internal/modstate"
)

// Segment is one rendered modifier cell.
type Segment struct {
	// ID is the modifier this segment shows.
	ID modifier.ID

	// Text is the display text: the configured symbol, or the icon label
	// when use-icon is set and an icon path is present.
	Text string

	// Active marks lock keys whose lock is currently latched.
	Active bool

	// Width is the terminal cell width of Text.
	Width int
}

// Fields is the slice of settings the indicator reads.
type Fields interface {
	String(key string) string
	Bool(key string) bool
}

// Compose builds one segment per modifier in canonical order.
func Compose(fields Fields, state modstate.State) []Segment {
	segments := make([]Segment, 0, len(modifier.All()))
	for _, id := range modifier.All() {
		f := modifier.Field{
			ID:       id,
			Symbol:   fields.String(id.SymbolKey()),
			IconPath: fields.String(id.IconPathKey()),
			UseIcon:  fields.Bool(id.UseIconKey()),
		}
		text := f.DisplayText()
		segments = append(segments, Segment{
			ID:     id,
			Text:   text,
			Active: state.On(id),
			Width:  uniseg.StringWidth(text),
		})
	}
	return segments
}

// Line joins segments into the indicator string, one space between cells.
func Line(segments []Segment) string {
	parts := make([]string, len(segments))
	for i, s := range segments {
		parts[i] = s.Text
	}
	return strings.Join(parts, " ")
}

// ActiveLine joins only the active segments. An empty result means no lock
// is latched.
func ActiveLine(segments []Segment) string {
	var parts []string
	for _, s := range segments {
		if s.Active {
			parts = append(parts, s.Text)
		}
	}
	return strings.Join(parts, " ")
}

// TotalWidth returns the cell width of the full line including separators.
func TotalWidth(segments []Segment) int {
	if len(segments) == 0 {
		return 0
	}
	width := len(segments) - 1
	for _, s := range segments {
		width += s.Width
	}
	return width
}
