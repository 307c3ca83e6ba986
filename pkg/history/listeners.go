package history

import "sync"

type subscriber struct {
	id uint64
	cb func()
}

// Listeners is an ordered fan-out list. Callbacks are notified in
// registration order, removal is idempotent, and the zero value is
// ready to use. It backs every EventSource in this module as well as
// the engine's synthetic bus.
type Listeners struct {
	mu   sync.Mutex
	next uint64
	subs []subscriber
}

// Add registers cb and returns its remove function. Calling remove
// more than once is a no-op.
func (l *Listeners) Add(cb func()) (remove func()) {
	l.mu.Lock()
	l.next++
	id := l.next
	l.subs = append(l.subs, subscriber{id: id, cb: cb})
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, sub := range l.subs {
			if sub.id == id {
				l.subs = append(l.subs[:i:i], l.subs[i+1:]...)
				return
			}
		}
	}
}

// Notify invokes every registered callback in registration order and
// returns how many were called. The list is copied before dispatch so
// a callback may subscribe or unsubscribe without affecting the
// in-flight broadcast.
func (l *Listeners) Notify() int {
	l.mu.Lock()
	subs := make([]subscriber, len(l.subs))
	copy(subs, l.subs)
	l.mu.Unlock()

	for _, sub := range subs {
		sub.cb()
	}
	return len(subs)
}

// Len returns the number of registered callbacks.
func (l *Listeners) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.subs)
}
