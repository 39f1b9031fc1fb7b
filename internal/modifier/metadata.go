package modifier

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Meta is the display metadata for one modifier, resolved once at init from
// the embedded table.
type Meta struct {
	// Name is the human-readable name (e.g. "Caps Lock").
	Name string `yaml:"name"`

	// Label is the short text label used when an icon is shown.
	Label string `yaml:"label"`

	// Symbol is the default indicator glyph.
	Symbol string `yaml:"symbol"`

	// Lock marks modifiers with latched lock state (caps, num, scroll).
	Lock bool `yaml:"lock"`
}

//go:embed metadata.yaml
var metadataYAML []byte

var metadata map[ID]Meta

func init() {
	if err := yaml.Unmarshal(metadataYAML, &metadata); err != nil {
		panic(fmt.Sprintf("modifier: invalid embedded metadata: %v", err))
	}
	for _, id := range all {
		if _, ok := metadata[id]; !ok {
			panic(fmt.Sprintf("modifier: metadata missing for %q", id))
		}
	}
}

// Metadata returns the display metadata for id.
func Metadata(id ID) (Meta, bool) {
	m, ok := metadata[id]
	return m, ok
}

// DefaultSymbol returns the default indicator glyph for id, or "" for an
// unknown modifier.
func DefaultSymbol(id ID) string {
	return metadata[id].Symbol
}

// Locks returns the modifiers with latched lock state, in canonical order.
func Locks() []ID {
	var result []ID
	for _, id := range all {
		if metadata[id].Lock {
			result = append(result, id)
		}
	}
	return result
}
