package qstate

import (
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/chrisneven/qstate/pkg/history"
	"github.com/chrisneven/qstate/pkg/query"
)

// Strategy selects how change notifications are sourced. It is
// resolved exactly once, in New; it never re-evaluates per call.
type Strategy int

const (
	// StrategyAuto picks Native when the history implements
	// history.EventSource and Synthetic otherwise.
	StrategyAuto Strategy = iota

	// StrategyNative passes subscriptions straight through to the
	// history's own navigation-succeeded events.
	StrategyNative

	// StrategySynthetic broadcasts from the engine's commit path. Only
	// changes made through this engine (or reported to it) are
	// observed; URL edits that bypass the commit path are not.
	StrategySynthetic
)

func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategyNative:
		return "native"
	case StrategySynthetic:
		return "synthetic"
	default:
		return "unknown"
	}
}

// ErrNoEventSource is returned by New when StrategyNative is forced on
// a history that does not expose navigation events.
var ErrNoEventSource = errors.New("qstate: history has no native event source")

// Hook receives engine instrumentation callbacks. Implementations in
// package middleware export these as Prometheus metrics and
// OpenTelemetry spans.
type Hook interface {
	// CommitObserved fires after every Replace through the engine's
	// commit path, successful or not.
	CommitObserved(u *url.URL, elapsed time.Duration, err error)

	// BroadcastObserved fires after a synthetic broadcast with the
	// number of subscribers notified. Native-strategy engines never
	// call it: delivery happens inside the history implementation.
	BroadcastObserved(subscribers int)
}

// Option configures an Engine.
type Option func(*Engine)

// WithStrategy overrides the automatic strategy selection. Forcing
// StrategySynthetic on an event-capable history is allowed and useful
// in tests.
func WithStrategy(s Strategy) Option {
	return func(e *Engine) {
		e.strategy = s
	}
}

// WithHooks installs instrumentation hooks.
func WithHooks(hooks ...Hook) Option {
	return func(e *Engine) {
		e.hooks = append(e.hooks, hooks...)
	}
}

// WithLogger sets the engine's logger. Defaults to slog.Default
// scoped to component=qstate.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// Engine synchronizes typed query-string state with one History and
// notifies subscribers of every change. All mutation funnels through
// the commit method, the single choke point that keeps the synthetic
// strategy honest.
type Engine struct {
	hist     history.History
	src      history.EventSource // nil under StrategySynthetic
	strategy Strategy
	bus      history.Listeners
	hooks    []Hook
	logger   *slog.Logger
}

// New creates an engine bound to h and resolves the notification
// strategy once. With StrategyAuto (the default) the engine is native
// exactly when h implements history.EventSource.
func New(h history.History, opts ...Option) (*Engine, error) {
	e := &Engine{hist: h, strategy: StrategyAuto}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default().With("component", "qstate")
	}

	src, capable := h.(history.EventSource)
	switch e.strategy {
	case StrategyAuto:
		if capable {
			e.strategy = StrategyNative
			e.src = src
		} else {
			e.strategy = StrategySynthetic
		}
	case StrategyNative:
		if !capable {
			return nil, ErrNoEventSource
		}
		e.src = src
	case StrategySynthetic:
		// Nothing to wire; the commit path broadcasts.
	default:
		return nil, errors.New("qstate: unknown strategy")
	}

	e.logger.Debug("engine created", "strategy", e.strategy.String())
	return e, nil
}

// Strategy returns the strategy resolved at construction.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// History returns the engine's history.
func (e *Engine) History() history.History {
	return e.hist
}

// Subscribe registers cb for change broadcasts and returns its
// unsubscribe function, which is idempotent. Subscribers are notified
// in registration order, one call per triggering event, never batched
// or coalesced.
func (e *Engine) Subscribe(cb func()) (unsubscribe func()) {
	if e.strategy == StrategyNative {
		return e.src.Listen(cb)
	}
	return e.bus.Add(cb)
}

// Snapshot returns the canonical change-detection token for the
// schema's wire keys, read from the current location. A nil schema
// canonicalizes the entire query string.
func (e *Engine) Snapshot(s *query.Schema) (string, error) {
	pairs, err := e.currentPairs()
	if err != nil {
		return "", err
	}
	if s == nil {
		return query.SnapshotAll(pairs), nil
	}
	return query.SnapshotSchema(s, pairs), nil
}

// SnapshotKeys is Snapshot over an explicit wire-key list.
func (e *Engine) SnapshotKeys(wireKeys []string) (string, error) {
	pairs, err := e.currentPairs()
	if err != nil {
		return "", err
	}
	return query.Snapshot(pairs, wireKeys), nil
}

// Decode reads the current location and converts it into typed state
// for the schema. For decoding an explicit query string without a
// history, use query.Decode directly.
func (e *Engine) Decode(s *query.Schema) (query.State, error) {
	pairs, err := e.currentPairs()
	if err != nil {
		return nil, err
	}
	return query.DecodePairs(s, pairs), nil
}

// Apply merges a partial update into the current query string and
// commits the result as a replacement of the current navigation entry.
// Exactly one broadcast follows a successful commit.
func (e *Engine) Apply(s *query.Schema, update query.Update) error {
	loc, err := e.hist.Location()
	if err != nil {
		return err
	}
	pairs := query.ParseQuery(loc.RawQuery)
	merged, err := query.Apply(s, pairs, update)
	if err != nil {
		return err
	}

	next := *loc
	next.RawQuery = merged.Encode()
	return e.commit(&next)
}

func (e *Engine) currentPairs() (query.Pairs, error) {
	loc, err := e.hist.Location()
	if err != nil {
		return nil, err
	}
	return query.ParseQuery(loc.RawQuery), nil
}

// commit is the single choke point for URL mutation. It replaces the
// current entry and, under the synthetic strategy, fires the broadcast
// afterwards, so the new state is always readable before any
// subscriber runs.
func (e *Engine) commit(u *url.URL) error {
	start := time.Now()
	err := e.hist.Replace(nil, u)
	elapsed := time.Since(start)

	for _, h := range e.hooks {
		h.CommitObserved(u, elapsed, err)
	}
	if err != nil {
		e.logger.Error("commit failed", "url", u.String(), "error", err)
		return err
	}

	if e.strategy == StrategySynthetic {
		notified := e.bus.Notify()
		for _, h := range e.hooks {
			h.BroadcastObserved(notified)
		}
	}
	return nil
}
