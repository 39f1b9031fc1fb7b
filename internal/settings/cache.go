// Package settings keeps an in-memory mirror of the configuration store and
// the saved preset, and answers the equality questions the preferences
// surface is built on.
//
// The cache is the single owner of the current and saved records. Bindings
// and the preset manager read and request mutation through it; nothing else
// holds a copy. All methods must be called from the UI goroutine; the store
// underneath does its own locking.
package settings

import "github.com/dshills/modlight/internal/modifier"

// Store is the slice of the configuration store the cache depends on.
type Store interface {
	Default(key string) any
	Set(key string, value any) error
	GetString(key string) (string, error)
	GetBool(key string) (bool, error)
	Preset() map[string]string
	SetPreset(preset map[string]string) error
}

// Cache mirrors store values in memory.
type Cache struct {
	store Store

	stringKeys []string
	boolKeys   []string

	current map[string]any
	saved   map[string]string
}

// NewCache creates a cache over store for the full modifier key set.
// Call Load before any other operation.
func NewCache(store Store) *Cache {
	return &Cache{
		store:      store,
		stringKeys: modifier.StringKeys(),
		boolKeys:   modifier.BoolKeys(),
		current:    make(map[string]any),
		saved:      make(map[string]string),
	}
}

// Load reads every known key and the saved preset from the store. It is
// re-entrant: calling it again fully refreshes both records.
func (c *Cache) Load() error {
	for _, key := range c.stringKeys {
		v, err := c.store.GetString(key)
		if err != nil {
			return err
		}
		c.current[key] = v
	}
	for _, key := range c.boolKeys {
		v, err := c.store.GetBool(key)
		if err != nil {
			return err
		}
		c.current[key] = v
	}
	c.saved = c.store.Preset()
	return nil
}

// SetString writes value through to the store and updates the mirror. The
// store write is issued even when the value is unchanged; the store itself
// suppresses no-op notifications, so this stays loop-free.
func (c *Cache) SetString(key, value string) error {
	if err := c.store.Set(key, value); err != nil {
		return err
	}
	c.current[key] = value
	return nil
}

// SetBool writes value through to the store and updates the mirror.
func (c *Cache) SetBool(key string, value bool) error {
	if err := c.store.Set(key, value); err != nil {
		return err
	}
	c.current[key] = value
	return nil
}

// String returns the mirrored string value for key ("" if absent).
func (c *Cache) String(key string) string {
	if v, ok := c.current[key].(string); ok {
		return v
	}
	return ""
}

// Bool returns the mirrored boolean value for key (false if absent).
func (c *Cache) Bool(key string) bool {
	if v, ok := c.current[key].(bool); ok {
		return v
	}
	return false
}

// Current returns the mirrored value for key.
func (c *Cache) Current(key string) (any, bool) {
	v, ok := c.current[key]
	return v, ok
}

// DefaultString returns the schema default for a string key.
func (c *Cache) DefaultString(key string) string {
	if v, ok := c.store.Default(key).(string); ok {
		return v
	}
	return ""
}

// EqualsDefault reports whether every key in keys currently holds its schema
// default. An empty key list is vacuously true.
func (c *Cache) EqualsDefault(keys []string) bool {
	for _, key := range keys {
		if c.current[key] != c.store.Default(key) {
			return false
		}
	}
	return true
}

// EqualsSaved reports whether every key in keys currently holds its saved
// preset value. A key absent from the saved map counts as the empty string,
// not as unset. An empty key list is vacuously true.
func (c *Cache) EqualsSaved(keys []string) bool {
	for _, key := range keys {
		if c.current[key] != c.saved[key] {
			return false
		}
	}
	return true
}

// Promote copies the current value of every key in keys into the saved
// record, then persists the full record. Saved entries outside keys are
// re-written untouched: promotion is additive, never destructive.
func (c *Cache) Promote(keys []string) error {
	for _, key := range keys {
		if v, ok := c.current[key].(string); ok {
			c.saved[key] = v
		}
	}

	out := make(map[string]string, len(c.saved))
	for k, v := range c.saved {
		out[k] = v
	}
	return c.store.SetPreset(out)
}

// ReconcileExternal applies a store change that did not originate from this
// cache. It returns true when dependent UI must refresh. A change carrying
// the value the cache already holds is the echo of the cache's own write and
// is ignored; this no-op check is what prevents notification loops.
func (c *Cache) ReconcileExternal(key string, value any) bool {
	if key == modifier.PresetKey {
		c.saved = c.store.Preset()
		return true
	}

	if cur, ok := c.current[key]; ok && cur == value {
		return false
	}
	c.current[key] = value
	return true
}
