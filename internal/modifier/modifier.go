// Package modifier defines the fixed set of keyboard modifier identities
// and their display metadata.
package modifier

// ID identifies one keyboard modifier.
type ID string

// The known modifiers. The declared order here is the canonical order used
// for indicator layout, key enumeration, and reset iteration.
const (
	Shift   ID = "shift"
	Caps    ID = "caps"
	Control ID = "control"
	Alt     ID = "alt"
	Num     ID = "num"
	Scroll  ID = "scroll"
	Super   ID = "super"
	AltGr   ID = "altgr"
)

// all lists the modifiers in canonical order.
var all = []ID{Shift, Caps, Control, Alt, Num, Scroll, Super, AltGr}

// All returns the modifiers in canonical order. The returned slice is a copy.
func All() []ID {
	result := make([]ID, len(all))
	copy(result, all)
	return result
}

// Valid reports whether id names a known modifier.
func Valid(id ID) bool {
	for _, m := range all {
		if m == id {
			return true
		}
	}
	return false
}

// SymbolKey returns the configuration key holding the text symbol for id.
func (id ID) SymbolKey() string { return string(id) + "-symbol" }

// IconPathKey returns the configuration key holding the icon file path for id.
func (id ID) IconPathKey() string { return string(id) + "-icon-path" }

// UseIconKey returns the configuration key holding the icon-enabled flag for id.
func (id ID) UseIconKey() string { return string(id) + "-use-icon" }

// IsUseIconKey reports whether key is one of the boolean use-icon keys.
func IsUseIconKey(key string) bool {
	for _, id := range all {
		if key == id.UseIconKey() {
			return true
		}
	}
	return false
}

// PresetKey is the aggregate configuration key holding the saved preset.
// The preset maps symbol and icon-path keys to their saved string values.
// Use-icon flags are never part of the preset.
const PresetKey = "saved-symbols"

// StringKeys returns every string-valued configuration key in canonical
// order: for each modifier, its symbol key then its icon-path key. These are
// exactly the keys that participate in the saved preset.
func StringKeys() []string {
	keys := make([]string, 0, len(all)*2)
	for _, id := range all {
		keys = append(keys, id.SymbolKey(), id.IconPathKey())
	}
	return keys
}

// BoolKeys returns every boolean configuration key in canonical order.
func BoolKeys() []string {
	keys := make([]string, 0, len(all))
	for _, id := range all {
		keys = append(keys, id.UseIconKey())
	}
	return keys
}

// Field is the full configuration of one modifier at a point in time.
// UseIcon set with an empty IconPath is an allowed degenerate state: the
// indicator falls back to the text symbol.
type Field struct {
	ID       ID
	Symbol   string
	IconPath string
	UseIcon  bool
}

// DisplayText returns the text the indicator should show for the field.
// When UseIcon is set and an icon path is present the icon's label is
// preferred; otherwise the symbol is used.
func (f Field) DisplayText() string {
	if f.UseIcon && f.IconPath != "" {
		if m, ok := Metadata(f.ID); ok {
			return m.Label
		}
	}
	return f.Symbol
}
