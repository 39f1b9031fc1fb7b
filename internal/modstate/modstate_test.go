package modstate

import (
	"sync"
	"testing"
	"time"

	"github.com/dshills/modlight/internal/modifier"
)

// fakeReader returns a controllable state.
type fakeReader struct {
	mu    sync.Mutex
	state State
}

func (r *fakeReader) Read() (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state, nil
}

func (r *fakeReader) set(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}

func TestState_On(t *testing.T) {
	s := State{Caps: true, Scroll: true}

	tests := []struct {
		id   modifier.ID
		want bool
	}{
		{modifier.Caps, true},
		{modifier.Num, false},
		{modifier.Scroll, true},
		{modifier.Shift, false},
	}
	for _, tt := range tests {
		if got := s.On(tt.id); got != tt.want {
			t.Errorf("On(%s) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestMonitor_EmitsTransitions(t *testing.T) {
	reader := &fakeReader{}
	m := NewMonitor(reader, WithInterval(10*time.Millisecond))
	m.Start()
	defer m.Stop()

	reader.set(State{Caps: true})

	select {
	case change := <-m.Changes():
		if change.Lock != modifier.Caps || !change.On {
			t.Errorf("change = %+v, want caps on", change)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no change emitted for caps transition")
	}

	reader.set(State{Caps: false})
	select {
	case change := <-m.Changes():
		if change.Lock != modifier.Caps || change.On {
			t.Errorf("change = %+v, want caps off", change)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no change emitted for caps release")
	}
}

func TestMonitor_NoChangeNoEmit(t *testing.T) {
	reader := &fakeReader{}
	m := NewMonitor(reader, WithInterval(10*time.Millisecond))
	m.Start()
	defer m.Stop()

	select {
	case change := <-m.Changes():
		t.Errorf("unexpected change with stable state: %+v", change)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestMonitor_InitialStateIsBaseline(t *testing.T) {
	// A lock already held at startup must not be reported as a transition.
	reader := &fakeReader{state: State{Num: true}}
	m := NewMonitor(reader, WithInterval(10*time.Millisecond))
	m.Start()
	defer m.Stop()

	select {
	case change := <-m.Changes():
		t.Errorf("startup state reported as transition: %+v", change)
	case <-time.After(150 * time.Millisecond):
	}

	if !m.Current().Num {
		t.Error("Current() lost the startup state")
	}
}

func TestMonitor_StopIdempotent(t *testing.T) {
	m := NewMonitor(&fakeReader{}, WithInterval(10*time.Millisecond))
	m.Start()
	m.Stop()
	m.Stop()
}

func TestMonitor_StopReleasesRangingConsumer(t *testing.T) {
	m := NewMonitor(&fakeReader{}, WithInterval(10*time.Millisecond))
	m.Start()

	done := make(chan struct{})
	go func() {
		for range m.Changes() {
		}
		close(done)
	}()

	m.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer still blocked on Changes() after Stop")
	}
}
