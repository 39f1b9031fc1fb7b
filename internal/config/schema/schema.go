// Package schema defines the configuration keys known to modlight, their
// types, defaults, and display summaries.
//
// The schema is the single source of truth for which keys exist. Every store
// write is validated against it, and defaults are read from it for reset and
// comparison.
package schema

import "github.com/dshills/modlight/internal/modifier"

// Type is the data type of a configuration key.
type Type uint8

const (
	// TypeString represents a string value.
	TypeString Type = iota
	// TypeBool represents a boolean value.
	TypeBool
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeBool:
		return "boolean"
	default:
		return "unknown"
	}
}

// Key defines one configuration key.
type Key struct {
	// Name is the key name (e.g. "caps-symbol").
	Name string

	// Type is the key's data type.
	Type Type

	// Default is the default value. Its Go type matches Type.
	Default any

	// Summary is human-readable documentation for the key.
	Summary string
}

// Validate checks that value matches the key's declared type.
func (k Key) Validate(value any) error {
	switch k.Type {
	case TypeString:
		if _, ok := value.(string); !ok {
			return &WriteError{Key: k.Name, Expected: "string", Actual: typeName(value)}
		}
	case TypeBool:
		if _, ok := value.(bool); !ok {
			return &WriteError{Key: k.Name, Expected: "boolean", Actual: typeName(value)}
		}
	}
	return nil
}

// Schema holds the full set of key definitions in declared order.
type Schema struct {
	keys  map[string]Key
	order []string
}

// New builds the modlight schema: three keys per modifier plus the aggregate
// preset key.
func New() *Schema {
	s := &Schema{keys: make(map[string]Key)}

	for _, id := range modifier.All() {
		meta, _ := modifier.Metadata(id)
		s.add(Key{
			Name:    id.SymbolKey(),
			Type:    TypeString,
			Default: meta.Symbol,
			Summary: meta.Name + " symbol",
		})
		s.add(Key{
			Name:    id.IconPathKey(),
			Type:    TypeString,
			Default: "",
			Summary: meta.Name + " icon file path",
		})
		s.add(Key{
			Name:    id.UseIconKey(),
			Type:    TypeBool,
			Default: false,
			Summary: "Show an icon instead of the " + meta.Name + " symbol",
		})
	}

	s.add(Key{
		Name:    modifier.PresetKey,
		Type:    TypeString,
		Default: "{}",
		Summary: "Saved symbol preset (JSON object of key to value)",
	})

	return s
}

func (s *Schema) add(k Key) {
	s.keys[k.Name] = k
	s.order = append(s.order, k.Name)
}

// Lookup returns the definition for name.
func (s *Schema) Lookup(name string) (Key, bool) {
	k, ok := s.keys[name]
	return k, ok
}

// Has reports whether name is a known key.
func (s *Schema) Has(name string) bool {
	_, ok := s.keys[name]
	return ok
}

// Default returns the default value for name, or nil for an unknown key.
func (s *Schema) Default(name string) any {
	if k, ok := s.keys[name]; ok {
		return k.Default
	}
	return nil
}

// Keys returns all key names in declared order. The returned slice is a copy.
func (s *Schema) Keys() []string {
	result := make([]string, len(s.order))
	copy(result, s.order)
	return result
}

// Validate checks that value is assignable to the named key.
func (s *Schema) Validate(name string, value any) error {
	k, ok := s.keys[name]
	if !ok {
		return &WriteError{Key: name, Expected: "", Actual: typeName(value)}
	}
	return k.Validate(value)
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64:
		return "integer"
	case float64:
		return "number"
	default:
		return "unknown"
	}
}
