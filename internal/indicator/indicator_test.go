package indicator

import (
	"testing"

	"github.com/dshills/modlight/internal/modifier"
	"github.com/dshills/modlight/internal/modstate"
)

// mapFields backs Fields with plain maps.
type mapFields struct {
	strings map[string]string
	bools   map[string]bool
}

func (f mapFields) String(key string) string { return f.strings[key] }

func (f mapFields) Bool(key string) bool { return f.bools[key] }

func defaultFields() mapFields {
	f := mapFields{strings: make(map[string]string), bools: make(map[string]bool)}
	for _, id := range modifier.All() {
		f.strings[id.SymbolKey()] = modifier.DefaultSymbol(id)
	}
	return f
}

func TestCompose_CanonicalOrder(t *testing.T) {
	segments := Compose(defaultFields(), modstate.State{})
	if len(segments) != 8 {
		t.Fatalf("got %d segments, want 8", len(segments))
	}
	if segments[0].ID != modifier.Shift || segments[7].ID != modifier.AltGr {
		t.Errorf("segment order wrong: first %s, last %s", segments[0].ID, segments[7].ID)
	}
	if segments[0].Text != "⇧" {
		t.Errorf("shift text = %q, want ⇧", segments[0].Text)
	}
}

func TestCompose_ActiveTracksLockState(t *testing.T) {
	segments := Compose(defaultFields(), modstate.State{Caps: true, Scroll: true})

	active := make(map[modifier.ID]bool)
	for _, s := range segments {
		active[s.ID] = s.Active
	}
	if !active[modifier.Caps] || !active[modifier.Scroll] {
		t.Error("latched locks not marked active")
	}
	if active[modifier.Shift] || active[modifier.Num] {
		t.Error("inactive modifiers marked active")
	}
}

func TestCompose_IconFallback(t *testing.T) {
	f := defaultFields()
	f.bools["caps-use-icon"] = true
	// No icon path set: falls back to the symbol.
	segments := Compose(f, modstate.State{})
	if segments[1].Text != "⇪" {
		t.Errorf("degenerate use-icon state text = %q, want symbol fallback", segments[1].Text)
	}

	f.strings["caps-icon-path"] = "/tmp/caps.png"
	segments = Compose(f, modstate.State{})
	if segments[1].Text != "Cap" {
		t.Errorf("icon label = %q, want Cap", segments[1].Text)
	}
}

func TestLine(t *testing.T) {
	segments := []Segment{
		{Text: "⇧", Width: 1},
		{Text: "Cap", Width: 3},
	}
	if got := Line(segments); got != "⇧ Cap" {
		t.Errorf("Line() = %q", got)
	}
	if got := TotalWidth(segments); got != 5 {
		t.Errorf("TotalWidth() = %d, want 5", got)
	}
}

func TestActiveLine(t *testing.T) {
	segments := []Segment{
		{Text: "⇪", Active: true},
		{Text: "⇭", Active: false},
		{Text: "⇳", Active: true},
	}
	if got := ActiveLine(segments); got != "⇪ ⇳" {
		t.Errorf("ActiveLine() = %q, want ⇪ ⇳", got)
	}
	if got := ActiveLine(nil); got != "" {
		t.Errorf("ActiveLine(nil) = %q, want empty", got)
	}
}
