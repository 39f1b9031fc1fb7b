package settings

// PresetManager derives default/saved equality over a fixed key list and
// performs reset and save.
//
// The preset deliberately covers only the string-valued symbol and icon-path
// keys. Use-icon flags are excluded from saving and from the saved-equality
// comparison: the saved record is symbols only.
type PresetManager struct {
	cache *Cache
	keys  []string
}

// NewPresetManager creates a manager over cache for the given keys, in the
// order reset iterates them. An empty key list is valid: both predicates are
// then vacuously true and reset and save do nothing.
func NewPresetManager(cache *Cache, keys []string) *PresetManager {
	return &PresetManager{cache: cache, keys: keys}
}

// Keys returns the managed keys in declared order.
func (m *PresetManager) Keys() []string {
	result := make([]string, len(m.keys))
	copy(result, m.keys)
	return result
}

// IsAtDefault reports whether every managed key holds its schema default.
func (m *PresetManager) IsAtDefault() bool {
	return m.cache.EqualsDefault(m.keys)
}

// IsAtSaved reports whether every managed key holds its saved preset value.
func (m *PresetManager) IsAtSaved() bool {
	return m.cache.EqualsSaved(m.keys)
}

// ResetToDefault pushes the schema default into every managed key whose
// current value differs, in declared order. apply receives each key and its
// default and is expected to update both the bound control and the cache;
// when apply is nil the cache alone is updated.
func (m *PresetManager) ResetToDefault(apply func(key, value string) error) error {
	if apply == nil {
		apply = m.cache.SetString
	}
	for _, key := range m.keys {
		def := m.cache.DefaultString(key)
		if m.cache.String(key) == def {
			continue
		}
		if err := apply(key, def); err != nil {
			return err
		}
	}
	return nil
}

// SaveAsPreset promotes the current values of the managed keys into the
// saved preset and persists it.
func (m *PresetManager) SaveAsPreset() error {
	return m.cache.Promote(m.keys)
}
