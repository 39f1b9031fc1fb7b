// Package osd emits transient desktop notifications when a lock key changes
// state.
package osd

import (
	"fmt"
	"sync"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/google/uuid"

	"github.com/dshills/modlight/internal/modifier"
)

// Sender delivers one desktop notification. The default sender is
// beeep.Notify.
type Sender func(title, message, icon string) error

// Notifier formats and sends lock-change notifications, rate-limited per
// lock so a bouncing LED cannot flood the desktop.
type Notifier struct {
	mu sync.Mutex

	send        Sender
	title       string
	minInterval time.Duration
	lastSent    map[modifier.ID]time.Time
	now         func() time.Time
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithSender replaces the notification backend.
func WithSender(send Sender) Option {
	return func(n *Notifier) {
		n.send = send
	}
}

// WithMinInterval sets the per-lock rate limit.
func WithMinInterval(d time.Duration) Option {
	return func(n *Notifier) {
		if d >= 0 {
			n.minInterval = d
		}
	}
}

// withClock replaces the time source in tests.
func withClock(now func() time.Time) Option {
	return func(n *Notifier) {
		n.now = now
	}
}

// New creates a Notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		send:        beeep.Notify,
		title:       "modlight",
		minInterval: 300 * time.Millisecond,
		lastSent:    make(map[modifier.ID]time.Time),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// LockChanged sends a notification for a lock transition. field supplies the
// configured symbol and icon. The returned id tags the emission for logging.
// A transition inside the rate-limit window returns an empty id and no
// error.
func (n *Notifier) LockChanged(lock modifier.ID, on bool, field modifier.Field) (string, error) {
	n.mu.Lock()
	now := n.now()
	if last, ok := n.lastSent[lock]; ok && now.Sub(last) < n.minInterval {
		n.mu.Unlock()
		return "", nil
	}
	n.lastSent[lock] = now
	n.mu.Unlock()

	meta, ok := modifier.Metadata(lock)
	if !ok {
		return "", fmt.Errorf("unknown lock modifier %q", lock)
	}

	word := "off"
	if on {
		word = "on"
	}
	message := fmt.Sprintf("%s %s %s", meta.Name, word, field.DisplayText())

	icon := ""
	if field.UseIcon {
		icon = field.IconPath
	}

	id := uuid.NewString()
	if err := n.send(n.title, message, icon); err != nil {
		return "", fmt.Errorf("sending notification %s: %w", id, err)
	}
	return id, nil
}
