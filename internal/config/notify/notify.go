// Package notify provides change notification for configuration writes.
//
// Observers subscribe to a single key or to all keys. Delivery is
// synchronous and in write order: the notifier calls observers one at a time
// on the goroutine that performed the write, so a notification for a write is
// always observed before any later write to the same key.
package notify

import "sync"

// Change describes one configuration value change.
type Change struct {
	// Key is the configuration key that changed.
	Key string

	// Old is the previous value.
	Old any

	// New is the new value.
	New any

	// Source identifies where the change came from ("local" for writes
	// through the store API, "external" for changes observed on disk).
	Source string
}

// Observer is called for each change.
type Observer func(change Change)

// Subscription is an active observer registration.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes the subscription. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier manages configuration change subscriptions.
type Notifier struct {
	mu sync.RWMutex

	// Observers receiving every change
	global map[uint64]Observer

	// Observers keyed by configuration key
	byKey map[string]map[uint64]Observer

	nextID uint64
	closed bool
}

// New creates a Notifier.
func New() *Notifier {
	return &Notifier{
		global: make(map[uint64]Observer),
		byKey:  make(map[string]map[uint64]Observer),
	}
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.global[id] = observer

	return &Subscription{id: id, notifier: n}
}

// SubscribeKey registers an observer for changes to one key.
func (n *Notifier) SubscribeKey(key string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	if n.byKey[key] == nil {
		n.byKey[key] = make(map[uint64]Observer)
	}
	n.byKey[key][id] = observer

	return &Subscription{id: id, notifier: n}
}

// Notify delivers a change to all matching observers. Observers are called
// outside the notifier's lock so they may subscribe or unsubscribe freely.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}

	observers := make([]Observer, 0, len(n.global))
	for _, obs := range n.global {
		observers = append(observers, obs)
	}
	for _, obs := range n.byKey[change.Key] {
		observers = append(observers, obs)
	}
	n.mu.RUnlock()

	for _, obs := range observers {
		obs(change)
	}
}

// Close drops all subscriptions and suppresses further delivery. It is safe
// to call more than once.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.closed = true
	n.global = make(map[uint64]Observer)
	n.byKey = make(map[string]map[uint64]Observer)
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.global, id)
	for key, observers := range n.byKey {
		delete(observers, id)
		if len(observers) == 0 {
			delete(n.byKey, key)
		}
	}
}
