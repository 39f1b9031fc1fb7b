// Package reconcile orchestrates the settings cache, the saved preset, and
// the live field bindings of the preferences surface.
//
// After every mutation the coordinator recomputes the derived group state
// from (isAtDefault, isAtSaved) and drives the reset/save affordances. It
// never stores the answer between mutations; the state is always derived.
package reconcile

import (
	"strconv"

	"github.com/dshills/modlight/internal/binding"
	"github.com/dshills/modlight/internal/config/notify"
	"github.com/dshills/modlight/internal/modifier"
	"github.com/dshills/modlight/internal/settings"
)

// GroupState is the derived state of a modifier field group.
type GroupState uint8

const (
	// AtDefaultAtSaved: current equals both defaults and the saved preset.
	AtDefaultAtSaved GroupState = iota
	// AtDefaultNotSaved: current equals defaults but not the saved preset.
	AtDefaultNotSaved
	// NotDefaultAtSaved: current equals the saved preset but not defaults.
	NotDefaultAtSaved
	// NotDefaultNotSaved: current differs from both.
	NotDefaultNotSaved
)

// StateOf derives the group state from the two predicates.
func StateOf(atDefault, atSaved bool) GroupState {
	switch {
	case atDefault && atSaved:
		return AtDefaultAtSaved
	case atDefault:
		return AtDefaultNotSaved
	case atSaved:
		return NotDefaultAtSaved
	default:
		return NotDefaultNotSaved
	}
}

// String returns the state name.
func (s GroupState) String() string {
	switch s {
	case AtDefaultAtSaved:
		return "at-default/at-saved"
	case AtDefaultNotSaved:
		return "at-default/not-saved"
	case NotDefaultAtSaved:
		return "not-default/at-saved"
	case NotDefaultNotSaved:
		return "not-default/not-saved"
	default:
		return "unknown"
	}
}

// Affordances receives the derived UI enablement after each recompute.
type Affordances interface {
	// SetResetEnabled enables the reset control (iff not at defaults).
	SetResetEnabled(enabled bool)

	// SetSaveVisible shows the save control (iff not at the saved preset).
	SetSaveVisible(visible bool)
}

// ErrorReporter receives mutation errors. Failures here indicate a
// schema/core mismatch and must be reported, not swallowed, but they never
// crash the surface.
type ErrorReporter func(key string, err error)

// Coordinator wires cache, preset manager, and bindings together.
type Coordinator struct {
	cache       *settings.Cache
	presets     *settings.PresetManager
	affordances Affordances
	report      ErrorReporter

	bindings map[string]*binding.Binding
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithErrorReporter sets the mutation error reporter.
func WithErrorReporter(report ErrorReporter) Option {
	return func(c *Coordinator) {
		c.report = report
	}
}

// New creates a coordinator. Call Refresh once after all fields are bound to
// establish the initial affordances.
func New(cache *settings.Cache, presets *settings.PresetManager, affordances Affordances, opts ...Option) *Coordinator {
	c := &Coordinator{
		cache:       cache,
		presets:     presets,
		affordances: affordances,
		report:      func(string, error) {},
		bindings:    make(map[string]*binding.Binding),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bind creates a field binding for key over control and registers it. User
// edits flow into the cache and trigger a recompute.
func (c *Coordinator) Bind(key string, control binding.Control, loop binding.Loop) *binding.Binding {
	b := binding.New(key)
	b.Bind(control, loop, func(value string) {
		c.FieldEdited(key, value)
	})
	c.bindings[key] = b
	return b
}

// FieldEdited applies a user edit to key. File-picker dialogs land here too;
// they are indistinguishable from typed edits.
func (c *Coordinator) FieldEdited(key, value string) {
	var err error
	if modifier.IsUseIconKey(key) {
		var b bool
		if b, err = strconv.ParseBool(value); err == nil {
			err = c.cache.SetBool(key, b)
		}
	} else {
		err = c.cache.SetString(key, value)
	}
	if err != nil {
		c.report(key, err)
		return
	}
	c.Refresh()
}

// StoreChanged reconciles a store change notification. The cache's no-op
// check filters echoes of the coordinator's own writes; genuinely external
// values are pushed into the bound control and the affordances recomputed.
func (c *Coordinator) StoreChanged(change notify.Change) {
	if !c.cache.ReconcileExternal(change.Key, change.New) {
		return
	}
	if b, ok := c.bindings[change.Key]; ok {
		b.Push(valueString(change.New))
	}
	c.Refresh()
}

// ResetToDefault pushes schema defaults into every differing field and
// recomputes.
func (c *Coordinator) ResetToDefault() {
	err := c.presets.ResetToDefault(func(key, value string) error {
		if err := c.cache.SetString(key, value); err != nil {
			return err
		}
		if b, ok := c.bindings[key]; ok {
			b.Push(value)
		}
		return nil
	})
	if err != nil {
		c.report("", err)
	}
	c.Refresh()
}

// SaveAsPreset promotes the current values to the saved preset and
// recomputes.
func (c *Coordinator) SaveAsPreset() {
	if err := c.presets.SaveAsPreset(); err != nil {
		c.report(modifier.PresetKey, err)
	}
	c.Refresh()
}

// Refresh recomputes the derived state and drives the affordances.
func (c *Coordinator) Refresh() GroupState {
	state := StateOf(c.presets.IsAtDefault(), c.presets.IsAtSaved())
	if c.affordances != nil {
		c.affordances.SetResetEnabled(state == NotDefaultAtSaved || state == NotDefaultNotSaved)
		c.affordances.SetSaveVisible(state == AtDefaultNotSaved || state == NotDefaultNotSaved)
	}
	return state
}

// valueString renders a store value for a control push.
func valueString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}
