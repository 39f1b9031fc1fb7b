// Package modstate reads and monitors keyboard lock-key state (Caps Lock,
// Num Lock, Scroll Lock).
package modstate

import (
	"context"
	"sync"
	"time"

	"github.com/dshills/modlight/internal/modifier"
)

// State is a snapshot of the lock keys.
type State struct {
	Caps   bool
	Num    bool
	Scroll bool
}

// On reports whether the lock state for id is set. Non-lock modifiers are
// always false here; momentary modifier state is not tracked.
func (s State) On(id modifier.ID) bool {
	switch id {
	case modifier.Caps:
		return s.Caps
	case modifier.Num:
		return s.Num
	case modifier.Scroll:
		return s.Scroll
	default:
		return false
	}
}

// Reader reads the current lock-key state from the platform.
type Reader interface {
	Read() (State, error)
}

// Change reports one lock key transition.
type Change struct {
	Lock modifier.ID
	On   bool
}

// Monitor polls a Reader and emits a Change per lock-key transition.
type Monitor struct {
	reader   Reader
	interval time.Duration

	mu      sync.Mutex
	last    State
	running bool
	stopped bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	changes chan Change
}

// MonitorOption configures a Monitor.
type MonitorOption func(*Monitor)

// WithInterval sets the polling interval.
func WithInterval(d time.Duration) MonitorOption {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// NewMonitor creates a monitor over reader.
func NewMonitor(reader Reader, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		reader:   reader,
		interval: 150 * time.Millisecond,
		changes:  make(chan Change, 16),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Changes returns the channel of lock transitions. Events are dropped, not
// blocked on, when the receiver falls behind. The channel is closed by Stop,
// so consumers can range over it.
func (m *Monitor) Changes() <-chan Change {
	return m.changes
}

// Start begins polling. It is a no-op if the monitor is already running or
// has been stopped.
func (m *Monitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running || m.stopped {
		return
	}

	if s, err := m.reader.Read(); err == nil {
		m.last = s
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.running = true

	m.wg.Add(1)
	go m.loop(ctx)
}

// Stop stops polling and closes the change channel once the polling
// goroutine has exited. It is safe to call more than once; a stopped monitor
// cannot be restarted.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	m.stopped = true
	m.cancel()
	m.mu.Unlock()

	m.wg.Wait()
	close(m.changes)
}

// Current returns the most recently observed state.
func (m *Monitor) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

func (m *Monitor) loop(ctx context.Context) {
	defer m.wg.Done()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.poll()
		}
	}
}

func (m *Monitor) poll() {
	current, err := m.reader.Read()
	if err != nil {
		return
	}

	m.mu.Lock()
	prev := m.last
	m.last = current
	m.mu.Unlock()

	m.emit(modifier.Caps, prev.Caps, current.Caps)
	m.emit(modifier.Num, prev.Num, current.Num)
	m.emit(modifier.Scroll, prev.Scroll, current.Scroll)
}

func (m *Monitor) emit(lock modifier.ID, was, now bool) {
	if was == now {
		return
	}
	select {
	case m.changes <- Change{Lock: lock, On: now}:
	default:
	}
}
