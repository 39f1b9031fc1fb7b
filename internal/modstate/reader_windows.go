package modstate

import (
	"golang.org/x/sys/windows"
)

// vkReader reads lock-key state with GetKeyState: the low-order toggle bit
// reports whether the lock is latched.
type vkReader struct {
	proc *windows.LazyProc
}

const (
	vkCapital = 0x14
	vkNumlock = 0x90
	vkScroll  = 0x91
)

// NewReader returns the platform lock-key reader.
func NewReader() Reader {
	user32 := windows.NewLazySystemDLL("user32.dll")
	return &vkReader{proc: user32.NewProc("GetKeyState")}
}

func (r *vkReader) Read() (State, error) {
	if err := r.proc.Find(); err != nil {
		return State{}, err
	}
	toggled := func(vk uintptr) bool {
		ret, _, _ := r.proc.Call(vk)
		return ret&0x1 != 0
	}
	return State{
		Caps:   toggled(vkCapital),
		Num:    toggled(vkNumlock),
		Scroll: toggled(vkScroll),
	}, nil
}
