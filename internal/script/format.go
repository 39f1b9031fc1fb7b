// Package script runs an optional user Lua hook that rewrites the indicator
// line before display.
//
// The script declares a global function format(text) returning a string.
// The Lua state is opened with only the safe base libraries; io, os, debug,
// and package stay closed. A broken script never takes the indicator down:
// failures surface as errors and the caller keeps the unformatted line.
package script

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// FuncName is the global function the script must define.
const FuncName = "format"

// Errors returned by the formatter.
var (
	// ErrNoFormatter indicates the script defines no format function.
	ErrNoFormatter = errors.New("script does not define format()")

	// ErrBadResult indicates format() returned a non-string value.
	ErrBadResult = errors.New("format() did not return a string")

	// ErrClosed indicates the formatter has been closed.
	ErrClosed = errors.New("formatter is closed")
)

// Formatter holds a loaded user script.
type Formatter struct {
	mu     sync.Mutex
	state  *lua.LState
	closed bool
}

// Load compiles and runs the script at path, then verifies it defined a
// format function.
func Load(path string) (*Formatter, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)

	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading script %s: %w", path, err)
	}

	if _, ok := L.GetGlobal(FuncName).(*lua.LFunction); !ok {
		L.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrNoFormatter)
	}

	return &Formatter{state: L}, nil
}

// Format passes text through the script's format function.
func (f *Formatter) Format(text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return "", ErrClosed
	}

	fn := f.state.GetGlobal(FuncName)
	err := f.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(text))
	if err != nil {
		return "", fmt.Errorf("running format(): %w", err)
	}

	ret := f.state.Get(-1)
	f.state.Pop(1)

	s, ok := ret.(lua.LString)
	if !ok {
		return "", ErrBadResult
	}
	return string(s), nil
}

// Close releases the Lua state. It is safe to call more than once.
func (f *Formatter) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	f.state.Close()
}

// openSafeLibraries opens only the Lua libraries a formatter can safely use.
// io, os, debug, and package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}
