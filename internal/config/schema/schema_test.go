package schema

import (
	"errors"
	"testing"

	"github.com/dshills/modlight/internal/modifier"
)

func TestNew_KeyCount(t *testing.T) {
	s := New()
	// 8 modifiers x 3 keys + saved-symbols.
	if got := len(s.Keys()); got != 25 {
		t.Fatalf("schema has %d keys, want 25", got)
	}
}

func TestSchema_Defaults(t *testing.T) {
	s := New()

	tests := []struct {
		key  string
		want any
	}{
		{"shift-symbol", "⇧"},
		{"caps-symbol", "⇪"},
		{"caps-icon-path", ""},
		{"caps-use-icon", false},
		{modifier.PresetKey, "{}"},
	}
	for _, tt := range tests {
		if got := s.Default(tt.key); got != tt.want {
			t.Errorf("Default(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}

	if s.Default("no-such-key") != nil {
		t.Error("Default of unknown key should be nil")
	}
}

func TestSchema_Validate(t *testing.T) {
	s := New()

	if err := s.Validate("shift-symbol", "S"); err != nil {
		t.Errorf("valid string write rejected: %v", err)
	}
	if err := s.Validate("caps-use-icon", true); err != nil {
		t.Errorf("valid bool write rejected: %v", err)
	}

	err := s.Validate("shift-symbol", true)
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("type mismatch not reported, got %v", err)
	}

	err = s.Validate("bogus", "x")
	if !errors.Is(err, ErrUnknownKey) {
		t.Errorf("unknown key not reported, got %v", err)
	}
}

func TestWriteError_Message(t *testing.T) {
	e := &WriteError{Key: "caps-use-icon", Expected: "boolean", Actual: "string"}
	want := `invalid write to "caps-use-icon": expected boolean, got string`
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}
}

func TestSchema_KeysOrdered(t *testing.T) {
	s := New()
	keys := s.Keys()
	if keys[0] != "shift-symbol" || keys[1] != "shift-icon-path" || keys[2] != "shift-use-icon" {
		t.Errorf("unexpected leading keys: %v", keys[:3])
	}
	if keys[len(keys)-1] != modifier.PresetKey {
		t.Errorf("last key = %q, want %q", keys[len(keys)-1], modifier.PresetKey)
	}
}
