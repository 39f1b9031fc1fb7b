package modstate

// stubReader always reports all locks off.
//
// TODO: read Caps Lock via IOKit HID (kHIDUsage_LED_CapsLock) as the macOS
// implementation.
type stubReader struct{}

// NewReader returns the platform lock-key reader.
func NewReader() Reader {
	return stubReader{}
}

func (stubReader) Read() (State, error) {
	return State{}, nil
}
