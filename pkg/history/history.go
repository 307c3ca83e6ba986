// Package history abstracts the navigable-history mechanism the
// engine synchronizes with. A History holds exactly one current entry
// (a URL plus an opaque state object) and can replace it without
// growing any navigation stack. An implementation that can also report
// navigation happening outside the library (back/forward in a real
// browser) additionally implements EventSource.
package history

import (
	"errors"
	"net/url"
)

// ErrNoDocument is returned by Location when no document is attached:
// a detached Memory, or a bridge whose browser tab has not connected
// yet. There is no meaningful query string to read, so operations that
// need the current URL fail fast instead of silently defaulting.
var ErrNoDocument = errors.New("history: no document attached")

// History is the commit surface for the current navigation entry.
type History interface {
	// Location returns the current entry's URL. It fails with
	// ErrNoDocument when no document is attached.
	Location() (*url.URL, error)

	// Replace swaps the current entry for u, carrying an opaque state
	// object, without creating a new entry.
	Replace(state any, u *url.URL) error
}

// EventSource is the optional native notification capability: an
// implementation fires its listeners after every navigation that
// succeeded, whatever caused it. Listeners are invoked in registration
// order; the returned remove function is idempotent.
type EventSource interface {
	Listen(cb func()) (remove func())
}
