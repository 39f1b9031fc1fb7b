// Package binding connects one editable control to one configuration key.
//
// The binding's job is echo suppression: pushing a store-originated value
// into a control makes the control fire its own change event, and that event
// must not be forwarded back as a user edit. Suppression is an explicit
// state machine rather than a captured boolean, and the listener is restored
// only after the UI loop has drained the synthetic event the push produced.
package binding

// State is the binding's suppression state.
type State uint8

const (
	// StateIdle forwards control changes as user edits.
	StateIdle State = iota

	// StateSuppressed swallows changes; a push is writing the control.
	StateSuppressed

	// StatePendingRestore swallows changes; the push has finished writing
	// but the loop has not yet drained the synthetic change event.
	StatePendingRestore
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSuppressed:
		return "suppressed"
	case StatePendingRestore:
		return "pending-restore"
	default:
		return "unknown"
	}
}

// Control is the editable UI control a binding drives. File-path controls
// and text controls look identical here; both are string-valued. Boolean
// controls marshal their state as "true"/"false".
type Control interface {
	// Value returns the control's current value.
	Value() string

	// SetValue writes a value into the control. The control may fire its
	// change listener synchronously or on a later loop turn.
	SetValue(value string)

	// OnChanged registers the change listener. Only one listener is kept.
	OnChanged(fn func(value string))

	// Destroyed reports whether the control has been torn down.
	Destroyed() bool
}

// Loop schedules work onto the UI event loop. Post runs fn on a later loop
// turn, after events already queued have been dispatched.
type Loop interface {
	Post(fn func())
}

// Binding binds one control to one configuration key.
type Binding struct {
	key     string
	control Control
	loop    Loop
	onEdit  func(value string)
	state   State
}

// New creates an unbound binding for key. All methods must be called from
// the UI goroutine.
func New(key string) *Binding {
	return &Binding{key: key}
}

// Key returns the configuration key this binding serves.
func (b *Binding) Key() string {
	return b.key
}

// State returns the current suppression state.
func (b *Binding) State() State {
	return b.state
}

// Bind attaches the binding to a control. User edits are forwarded to
// onEdit; pushes are delivered to the control with the listener suppressed.
func (b *Binding) Bind(control Control, loop Loop, onEdit func(value string)) {
	b.control = control
	b.loop = loop
	b.onEdit = onEdit
	b.state = StateIdle
	control.OnChanged(b.handleChanged)
}

// Push writes value into the control without echoing it back through onEdit.
// Pushing to a destroyed control is a silent no-op: destruction races
// against pending external-change notifications are expected, never an
// error.
func (b *Binding) Push(value string) {
	if b.control == nil || b.control.Destroyed() {
		return
	}

	b.state = StateSuppressed
	b.control.SetValue(value)
	b.state = StatePendingRestore

	// Restore on a later loop turn, after the synthetic change event from
	// SetValue has been dispatched. Restoring on the next line would race
	// with toolkits that deliver the event asynchronously.
	b.loop.Post(func() {
		if b.control.Destroyed() {
			return
		}
		b.state = StateIdle
	})
}

// handleChanged is the control's change listener.
func (b *Binding) handleChanged(value string) {
	if b.state != StateIdle {
		return
	}
	if b.onEdit != nil {
		b.onEdit(value)
	}
}
