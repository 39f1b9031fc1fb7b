package config

import (
	"sort"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/modlight/internal/modifier"
)

// Preset returns the saved preset as a key-to-value mapping. The preset is
// persisted under the saved-symbols key as a JSON object of symbol and
// icon-path values. A missing or malformed blob yields an empty mapping.
func (s *Store) Preset() map[string]string {
	blob, err := s.GetString(modifier.PresetKey)
	if err != nil {
		return map[string]string{}
	}

	result := make(map[string]string)
	parsed := gjson.Parse(blob)
	if !parsed.IsObject() {
		return result
	}
	parsed.ForEach(func(key, value gjson.Result) bool {
		result[key.String()] = value.String()
		return true
	})
	return result
}

// SetPreset replaces the saved preset wholesale. Keys are encoded in sorted
// order so equal mappings always produce the same blob, which keeps the
// store's no-op write suppression effective for presets too.
func (s *Store) SetPreset(preset map[string]string) error {
	keys := make([]string, 0, len(preset))
	for k := range preset {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	blob := "{}"
	for _, k := range keys {
		var err error
		// Raw key path: preset keys contain dashes, never path syntax.
		blob, err = sjson.Set(blob, escapePresetKey(k), preset[k])
		if err != nil {
			return err
		}
	}

	return s.Set(modifier.PresetKey, blob)
}

// escapePresetKey escapes sjson path metacharacters in a preset key.
func escapePresetKey(k string) string {
	out := make([]byte, 0, len(k))
	for i := 0; i < len(k); i++ {
		switch k[i] {
		case '.', '*', '?', '|', '#', '@', '\\', ':':
			out = append(out, '\\')
		}
		out = append(out, k[i])
	}
	return string(out)
}
