package modstate

import (
	"os"
	"path/filepath"
	"strings"
)

// ledsDir is the sysfs directory exposing keyboard LED state.
const ledsDir = "/sys/class/leds"

// ledReader reads lock-key state from the kernel LED class. Each keyboard
// exposes entries like "input3::capslock" whose brightness file is "0" when
// the lock is off.
type ledReader struct {
	dir string
}

// NewReader returns the platform lock-key reader.
func NewReader() Reader {
	return &ledReader{dir: ledsDir}
}

// Read scans the LED entries. A lock counts as on when any keyboard reports
// its LED lit.
func (r *ledReader) Read() (State, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return State{}, err
	}

	var s State
	for _, e := range entries {
		name := e.Name()
		idx := strings.Index(name, "::")
		if idx < 0 {
			continue
		}
		lit, err := r.lit(name)
		if err != nil {
			continue
		}
		switch name[idx+2:] {
		case "capslock":
			s.Caps = s.Caps || lit
		case "numlock":
			s.Num = s.Num || lit
		case "scrolllock":
			s.Scroll = s.Scroll || lit
		}
	}
	return s, nil
}

func (r *ledReader) lit(name string) (bool, error) {
	data, err := os.ReadFile(filepath.Join(r.dir, name, "brightness"))
	if err != nil {
		return false, err
	}
	v := strings.TrimSpace(string(data))
	return v != "" && v != "0", nil
}
