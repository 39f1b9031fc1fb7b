package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// loadFileLocked reads the settings file into s.values, keeping defaults for
// missing keys and ignoring unknown or mistyped entries. Caller holds s.mu.
func (s *Store) loadFileLocked() error {
	for _, key := range s.schema.Keys() {
		s.values[key] = s.schema.Default(key)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading settings file %s: %w", s.path, err)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing settings file %s: %w", s.path, err)
	}

	for key, value := range raw {
		if err := s.schema.Validate(key, value); err != nil {
			// Unknown keys and mistyped values in the file are skipped,
			// not fatal; the schema default stays in effect.
			continue
		}
		s.values[key] = value
	}

	return nil
}

// saveLocked writes s.values to the settings file atomically: the new
// content lands in a temp file in the same directory and is renamed over the
// old file, so other processes never observe a partial write. Caller holds
// s.mu.
func (s *Store) saveLocked() error {
	data, err := toml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.toml")
	if err != nil {
		return fmt.Errorf("creating temp settings file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing settings file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing settings file: %w", err)
	}

	return nil
}
