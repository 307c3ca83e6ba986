package history

import (
	"net/url"
	"sync"
)

// Memory is an in-process History holding a single navigation entry.
// It is the headless stand-in for a browser tab: tests and server-side
// code use it to run the full engine without any transport.
//
// Memory is silent: it never reports navigations, so the engine pairs
// it with the synthetic fallback bus. Use EventedMemory when the
// native strategy should be exercised.
type Memory struct {
	mu      sync.Mutex
	current *url.URL
	state   any
}

// NewMemory creates a Memory whose current entry is rawURL.
func NewMemory(rawURL string) (*Memory, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	return &Memory{current: u}, nil
}

// Detached creates a Memory with no document attached. Location fails
// with ErrNoDocument until Navigate attaches one.
func Detached() *Memory {
	return &Memory{}
}

// Location returns a copy of the current entry's URL.
func (m *Memory) Location() (*url.URL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil, ErrNoDocument
	}
	u := *m.current
	return &u, nil
}

// State returns the opaque state object of the current entry.
func (m *Memory) State() any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Replace swaps the current entry without growing any stack.
func (m *Memory) Replace(state any, u *url.URL) error {
	if u == nil {
		return ErrNoDocument
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *u
	m.current = &copied
	m.state = state
	return nil
}

// Navigate simulates a navigation originating outside the engine, such
// as back/forward or an address-bar edit. It attaches a document if
// none was present.
func (m *Memory) Navigate(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = u
	m.state = nil
	return nil
}

// EventedMemory is a Memory that also implements EventSource: every
// Replace and Navigate fires the navigation-succeeded listeners after
// the entry is updated, so a listener reading Location always observes
// the committed URL. The engine detects it as native-capable.
type EventedMemory struct {
	Memory
	listeners Listeners
}

// NewEventedMemory creates an EventedMemory whose current entry is
// rawURL.
func NewEventedMemory(rawURL string) (*EventedMemory, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	m := &EventedMemory{}
	m.current = u
	return m, nil
}

// Replace swaps the current entry, then notifies listeners.
func (m *EventedMemory) Replace(state any, u *url.URL) error {
	if err := m.Memory.Replace(state, u); err != nil {
		return err
	}
	m.listeners.Notify()
	return nil
}

// Navigate simulates an external navigation, then notifies listeners.
func (m *EventedMemory) Navigate(rawURL string) error {
	if err := m.Memory.Navigate(rawURL); err != nil {
		return err
	}
	m.listeners.Notify()
	return nil
}

// Listen implements EventSource.
func (m *EventedMemory) Listen(cb func()) (remove func()) {
	return m.listeners.Add(cb)
}
