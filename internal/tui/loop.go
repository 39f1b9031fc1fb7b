// Package tui renders the modifier indicator and the preferences surface on
// a terminal screen.
package tui

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// wakeEvent asks the event loop to drain the posted-work queue.
type wakeEvent struct {
	when time.Time
}

// When implements tcell.Event.
func (e *wakeEvent) When() time.Time { return e.when }

// Loop schedules work onto the screen's event loop. Functions posted with
// Post run only on the goroutine that dispatches events, after events
// already queued have been dispatched, which is exactly the deferral the
// field bindings need for listener restoration.
type Loop struct {
	screen tcell.Screen

	mu      sync.Mutex
	pending []func()
	wake    bool
}

// NewLoop creates a Loop over screen.
func NewLoop(screen tcell.Screen) *Loop {
	return &Loop{screen: screen}
}

// Post queues fn for a later loop turn. The work itself travels through an
// internal queue; at most one wake event is in flight through the screen at
// a time, so a notification burst cannot overflow the event queue, and fn
// never runs in the caller's frame.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.pending = append(l.pending, fn)
	needWake := !l.wake
	l.wake = true
	l.mu.Unlock()

	if !needWake {
		return
	}
	ev := &wakeEvent{when: time.Now()}
	if err := l.screen.PostEvent(ev); err != nil {
		l.screen.PostEventWait(ev)
	}
}

// Dispatch drains the posted-work queue if ev is a wake event and reports
// whether it consumed the event. Work posted while draining is drained in
// the same pass.
func (l *Loop) Dispatch(ev tcell.Event) bool {
	if _, ok := ev.(*wakeEvent); !ok {
		return false
	}

	for {
		l.mu.Lock()
		fns := l.pending
		l.pending = nil
		if len(fns) == 0 {
			l.wake = false
			l.mu.Unlock()
			return true
		}
		l.mu.Unlock()

		for _, fn := range fns {
			fn()
		}
	}
}
