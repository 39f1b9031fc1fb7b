// Package config provides the durable modifier configuration store.
//
// The store holds one value per schema key, persists them to a TOML file,
// and emits a change notification for every write that changes a stored
// value. Writes that store a value equal to the current one never notify,
// which is what keeps the settings cache's echo suppression sound.
package config

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dshills/modlight/internal/config/notify"
	"github.com/dshills/modlight/internal/config/schema"
	"github.com/dshills/modlight/internal/config/watcher"
)

// SourceLocal and SourceExternal identify where a change originated.
const (
	SourceLocal    = "local"
	SourceExternal = "external"
)

// Store is the durable key/value store of modifier configuration.
type Store struct {
	mu sync.RWMutex

	schema   *schema.Schema
	values   map[string]any
	path     string
	notifier *notify.Notifier

	enableWatcher bool
	debounce      time.Duration
	watcher       *watcher.Watcher
}

// Option configures a Store.
type Option func(*Store)

// WithPath sets the settings file path.
func WithPath(path string) Option {
	return func(s *Store) {
		s.path = path
	}
}

// WithWatcher enables watching the settings file for external changes.
func WithWatcher(enable bool) Option {
	return func(s *Store) {
		s.enableWatcher = enable
	}
}

// WithDebounce sets the external-change debounce window.
func WithDebounce(d time.Duration) Option {
	return func(s *Store) {
		if d >= 0 {
			s.debounce = d
		}
	}
}

// New creates a Store populated with schema defaults. Call Load to read the
// settings file and begin watching it.
func New(opts ...Option) *Store {
	s := &Store{
		schema:   schema.New(),
		notifier: notify.New(),
		debounce: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.path == "" {
		s.path = DefaultPath()
	}

	s.values = make(map[string]any, len(s.schema.Keys()))
	for _, key := range s.schema.Keys() {
		s.values[key] = s.schema.Default(key)
	}

	return s
}

// DefaultPath returns the default settings file location.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "modlight", "settings.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "modlight", "settings.toml")
}

// Load reads the settings file into the store and, if enabled, starts the
// file watcher. A missing file is not an error; defaults remain in effect.
func (s *Store) Load() error {
	s.mu.Lock()
	if err := s.loadFileLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	if s.enableWatcher && s.watcher == nil {
		// The watcher watches the parent directory, which may not exist
		// before the first save.
		if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
			return err
		}
		w, err := watcher.New(s.path, s.reloadExternal, watcher.WithDebounce(s.debounce))
		if err != nil {
			return err
		}
		s.watcher = w
	}

	return nil
}

// Close stops the watcher and drops all subscriptions.
func (s *Store) Close() {
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
	s.notifier.Close()
}

// Path returns the settings file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the stored value for key.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// GetString returns the stored string value for key.
func (s *Store) GetString(key string) (string, error) {
	v, ok := s.Get(key)
	if !ok {
		return "", &schema.WriteError{Key: key}
	}
	str, ok := v.(string)
	if !ok {
		return "", &schema.WriteError{Key: key, Expected: "string", Actual: typeName(v)}
	}
	return str, nil
}

// GetBool returns the stored boolean value for key.
func (s *Store) GetBool(key string) (bool, error) {
	v, ok := s.Get(key)
	if !ok {
		return false, &schema.WriteError{Key: key}
	}
	b, ok := v.(bool)
	if !ok {
		return false, &schema.WriteError{Key: key, Expected: "boolean", Actual: typeName(v)}
	}
	return b, nil
}

// Default returns the schema default for key.
func (s *Store) Default(key string) any {
	return s.schema.Default(key)
}

// Keys returns all schema keys in declared order.
func (s *Store) Keys() []string {
	return s.schema.Keys()
}

// Set validates and writes value to key, persists the file, and notifies
// observers if the stored value actually changed. Writing the current value
// again is a durable no-op: the file is rewritten but nothing is notified.
func (s *Store) Set(key string, value any) error {
	if err := s.schema.Validate(key, value); err != nil {
		return err
	}

	s.mu.Lock()
	old := s.values[key]
	changed := old != value
	s.values[key] = value
	err := s.saveLocked()
	s.mu.Unlock()

	if err != nil {
		return err
	}

	if changed {
		s.notifier.Notify(notify.Change{Key: key, Old: old, New: value, Source: SourceLocal})
	}
	return nil
}

// Subscribe registers an observer for all changes.
func (s *Store) Subscribe(observer notify.Observer) *notify.Subscription {
	return s.notifier.Subscribe(observer)
}

// SubscribeKey registers an observer for changes to one key.
func (s *Store) SubscribeKey(key string, observer notify.Observer) *notify.Subscription {
	return s.notifier.SubscribeKey(key, observer)
}

// reloadExternal re-reads the settings file after the watcher reports an
// external change, then notifies one change per key whose value differs from
// the in-memory state. The store's own writes produce no diff here, so they
// never echo back as external changes.
func (s *Store) reloadExternal() {
	s.mu.Lock()
	before := make(map[string]any, len(s.values))
	for k, v := range s.values {
		before[k] = v
	}
	if err := s.loadFileLocked(); err != nil {
		s.mu.Unlock()
		return
	}
	var changes []notify.Change
	for _, key := range s.schema.Keys() {
		if before[key] != s.values[key] {
			changes = append(changes, notify.Change{
				Key:    key,
				Old:    before[key],
				New:    s.values[key],
				Source: SourceExternal,
			})
		}
	}
	s.mu.Unlock()

	for _, c := range changes {
		s.notifier.Notify(c)
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return "unknown"
	}
}
