package tui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
)

// Focusable is a control that can take keyboard focus.
type Focusable interface {
	Focus(focused bool)
	HandleKey(ev *tcell.EventKey) bool
}

// TextField is a single-line editable string control. It implements
// binding.Control: SetValue fires the change listener synchronously, and a
// destroyed field ignores writes.
type TextField struct {
	value     string
	cursor    int
	listener  func(string)
	focused   bool
	destroyed bool
}

// NewTextField creates a field holding value.
func NewTextField(value string) *TextField {
	return &TextField{value: value, cursor: len([]rune(value))}
}

// Value returns the field's current value.
func (f *TextField) Value() string { return f.value }

// SetValue writes value into the field and fires the change listener.
func (f *TextField) SetValue(value string) {
	if f.destroyed {
		return
	}
	f.value = value
	f.cursor = len([]rune(value))
	if f.listener != nil {
		f.listener(value)
	}
}

// OnChanged registers the change listener. Only one listener is kept.
func (f *TextField) OnChanged(fn func(string)) { f.listener = fn }

// Destroyed reports whether the field has been torn down.
func (f *TextField) Destroyed() bool { return f.destroyed }

// Destroy tears the field down; later writes are ignored.
func (f *TextField) Destroy() { f.destroyed = true }

// Focus implements Focusable.
func (f *TextField) Focus(focused bool) { f.focused = focused }

// Focused reports keyboard focus.
func (f *TextField) Focused() bool { return f.focused }

// HandleKey applies an editing key and reports whether it was consumed.
func (f *TextField) HandleKey(ev *tcell.EventKey) bool {
	if f.destroyed {
		return false
	}

	runes := []rune(f.value)
	switch ev.Key() {
	case tcell.KeyRune:
		runes = append(runes[:f.cursor], append([]rune{ev.Rune()}, runes[f.cursor:]...)...)
		f.cursor++
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if f.cursor == 0 {
			return true
		}
		runes = append(runes[:f.cursor-1], runes[f.cursor:]...)
		f.cursor--
	case tcell.KeyDelete:
		if f.cursor >= len(runes) {
			return true
		}
		runes = append(runes[:f.cursor], runes[f.cursor+1:]...)
	case tcell.KeyLeft:
		if f.cursor > 0 {
			f.cursor--
		}
		return true
	case tcell.KeyRight:
		if f.cursor < len(runes) {
			f.cursor++
		}
		return true
	case tcell.KeyHome:
		f.cursor = 0
		return true
	case tcell.KeyEnd:
		f.cursor = len(runes)
		return true
	default:
		return false
	}

	f.value = string(runes)
	if f.listener != nil {
		f.listener(f.value)
	}
	return true
}

// Toggle is a boolean control. Its binding value is "true"/"false".
type Toggle struct {
	on        bool
	listener  func(string)
	focused   bool
	destroyed bool
}

// NewToggle creates a toggle in the given state.
func NewToggle(on bool) *Toggle {
	return &Toggle{on: on}
}

// On reports the toggle state.
func (t *Toggle) On() bool { return t.on }

// Value returns "true" or "false".
func (t *Toggle) Value() string { return strconv.FormatBool(t.on) }

// SetValue parses value and fires the change listener. Unparseable values
// are ignored.
func (t *Toggle) SetValue(value string) {
	if t.destroyed {
		return
	}
	on, err := strconv.ParseBool(value)
	if err != nil {
		return
	}
	t.on = on
	if t.listener != nil {
		t.listener(t.Value())
	}
}

// OnChanged registers the change listener. Only one listener is kept.
func (t *Toggle) OnChanged(fn func(string)) { t.listener = fn }

// Destroyed reports whether the toggle has been torn down.
func (t *Toggle) Destroyed() bool { return t.destroyed }

// Destroy tears the toggle down; later writes are ignored.
func (t *Toggle) Destroy() { t.destroyed = true }

// Focus implements Focusable.
func (t *Toggle) Focus(focused bool) { t.focused = focused }

// HandleKey flips the toggle on space or enter.
func (t *Toggle) HandleKey(ev *tcell.EventKey) bool {
	if t.destroyed {
		return false
	}
	if ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ') {
		t.on = !t.on
		if t.listener != nil {
			t.listener(t.Value())
		}
		return true
	}
	return false
}

// Button is a pressable control with enablement and visibility.
type Button struct {
	label   string
	enabled bool
	visible bool
	focused bool
	onPress func()
}

// NewButton creates a button.
func NewButton(label string, onPress func()) *Button {
	return &Button{label: label, enabled: true, visible: true, onPress: onPress}
}

// SetEnabled controls whether presses fire.
func (b *Button) SetEnabled(enabled bool) { b.enabled = enabled }

// SetVisible controls whether the button is drawn and focusable.
func (b *Button) SetVisible(visible bool) { b.visible = visible }

// Enabled reports enablement.
func (b *Button) Enabled() bool { return b.enabled }

// Visible reports visibility.
func (b *Button) Visible() bool { return b.visible }

// Focus implements Focusable.
func (b *Button) Focus(focused bool) { b.focused = focused }

// HandleKey presses the button on enter or space.
func (b *Button) HandleKey(ev *tcell.EventKey) bool {
	if !b.enabled || !b.visible {
		return false
	}
	if ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ') {
		if b.onPress != nil {
			b.onPress()
		}
		return true
	}
	return false
}
