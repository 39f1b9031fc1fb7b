package config

import (
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dshills/modlight/internal/config/notify"
	"github.com/dshills/modlight/internal/config/schema"
	"github.com/dshills/modlight/internal/modifier"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(WithPath(filepath.Join(t.TempDir(), "settings.toml")))
	if err := s.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestStore_DefaultsBeforeAnyWrite(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetString("shift-symbol")
	if err != nil {
		t.Fatalf("GetString failed: %v", err)
	}
	if got != "⇧" {
		t.Errorf("shift-symbol = %q, want default ⇧", got)
	}

	useIcon, err := s.GetBool("caps-use-icon")
	if err != nil {
		t.Fatalf("GetBool failed: %v", err)
	}
	if useIcon {
		t.Error("caps-use-icon default should be false")
	}
}

func TestStore_SetThenGet(t *testing.T) {
	s := newTestStore(t)

	if err := s.Set("caps-symbol", "C"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := s.GetString("caps-symbol")
	if err != nil {
		t.Fatalf("GetString failed: %v", err)
	}
	if got != "C" {
		t.Errorf("caps-symbol = %q, want C", got)
	}
}

func TestStore_SetRejectsBadWrites(t *testing.T) {
	s := newTestStore(t)

	if err := s.Set("no-such-key", "x"); !errors.Is(err, schema.ErrUnknownKey) {
		t.Errorf("unknown key write returned %v", err)
	}
	if err := s.Set("caps-symbol", true); !errors.Is(err, schema.ErrTypeMismatch) {
		t.Errorf("mistyped write returned %v", err)
	}
}

func TestStore_NotifiesOncePerChangingWrite(t *testing.T) {
	s := newTestStore(t)

	var count atomic.Int32
	s.SubscribeKey("num-symbol", func(change notify.Change) {
		count.Add(1)
	})

	if err := s.Set("num-symbol", "N"); err != nil {
		t.Fatal(err)
	}
	if got := count.Load(); got != 1 {
		t.Errorf("changing write notified %d times, want 1", got)
	}

	// Writing the same value again is durable but silent.
	if err := s.Set("num-symbol", "N"); err != nil {
		t.Fatal(err)
	}
	if got := count.Load(); got != 1 {
		t.Errorf("no-op write notified, total %d", got)
	}
}

func TestStore_DurabilityRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")

	s1 := New(WithPath(path))
	if err := s1.Load(); err != nil {
		t.Fatal(err)
	}
	if err := s1.Set("scroll-symbol", "SL"); err != nil {
		t.Fatal(err)
	}
	if err := s1.Set("scroll-use-icon", true); err != nil {
		t.Fatal(err)
	}
	s1.Close()

	s2 := New(WithPath(path))
	if err := s2.Load(); err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	got, err := s2.GetString("scroll-symbol")
	if err != nil || got != "SL" {
		t.Errorf("scroll-symbol after reload = %q, %v; want SL", got, err)
	}
	useIcon, err := s2.GetBool("scroll-use-icon")
	if err != nil || !useIcon {
		t.Errorf("scroll-use-icon after reload = %v, %v; want true", useIcon, err)
	}
	// Untouched keys keep their defaults.
	if def, _ := s2.GetString("shift-symbol"); def != "⇧" {
		t.Errorf("shift-symbol after reload = %q, want default", def)
	}
}

func TestStore_PresetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if got := s.Preset(); len(got) != 0 {
		t.Errorf("fresh preset = %v, want empty", got)
	}

	want := map[string]string{
		"caps-symbol":    "C",
		"caps-icon-path": "/tmp/caps.png",
	}
	if err := s.SetPreset(want); err != nil {
		t.Fatalf("SetPreset failed: %v", err)
	}

	got := s.Preset()
	if len(got) != len(want) {
		t.Fatalf("preset = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("preset[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestStore_SetPresetEqualMappingIsSilent(t *testing.T) {
	s := newTestStore(t)

	preset := map[string]string{"alt-symbol": "A", "caps-symbol": "C"}
	if err := s.SetPreset(preset); err != nil {
		t.Fatal(err)
	}

	var count atomic.Int32
	s.SubscribeKey(modifier.PresetKey, func(change notify.Change) {
		count.Add(1)
	})

	// Same mapping, different insertion order: sorted encoding makes the
	// blob identical, so no notification fires.
	if err := s.SetPreset(map[string]string{"caps-symbol": "C", "alt-symbol": "A"}); err != nil {
		t.Fatal(err)
	}
	if got := count.Load(); got != 0 {
		t.Errorf("equal preset write notified %d times", got)
	}
}

func TestStore_ExternalChangeNotification(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")

	writerStore := New(WithPath(path))
	if err := writerStore.Load(); err != nil {
		t.Fatal(err)
	}
	defer writerStore.Close()
	// Seed the file so the watching store has something to load.
	if err := writerStore.Set("caps-symbol", "C"); err != nil {
		t.Fatal(err)
	}

	watching := New(WithPath(path), WithWatcher(true), WithDebounce(20*time.Millisecond))
	if err := watching.Load(); err != nil {
		t.Fatal(err)
	}
	defer watching.Close()

	type received struct {
		key    string
		value  any
		source string
	}
	ch := make(chan received, 8)
	watching.Subscribe(func(change notify.Change) {
		ch <- received{key: change.Key, value: change.New, source: change.Source}
	})

	if err := writerStore.Set("caps-symbol", "K"); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-ch:
		if got.key != "caps-symbol" || got.value != "K" || got.source != SourceExternal {
			t.Errorf("external change = %+v, want caps-symbol/K/external", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no external change notification received")
	}

	if v, _ := watching.GetString("caps-symbol"); v != "K" {
		t.Errorf("watching store value = %q, want K", v)
	}
}
