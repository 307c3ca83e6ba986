// Package query implements the typed view over a document's query
// string: schemas mapping logical keys to codecs, the pure decode and
// merge engines, and the canonical snapshot token used for change
// detection. Everything here is a pure function of its inputs; reading
// and committing the live URL is the job of package qstate.
package query

import (
	"errors"
	"fmt"
	"sort"

	interrs "github.com/chrisneven/qstate/internal/errors"
	"github.com/chrisneven/qstate/pkg/codec"
)

// ErrDuplicateWireKey is returned by NewSchema when two logical keys
// resolve to the same wire-level key.
var ErrDuplicateWireKey = errors.New("query: duplicate wire key")

// Setting describes one schema entry: how a logical key decodes,
// encodes, which wire key it lives under, and what it falls back to.
// Param is the only implementation; the interface exists so a schema
// can hold settings of heterogeneous value types.
type Setting interface {
	wireKey(logical string) string
	decodeRaw(raw []string) (any, bool)
	encodeValue(v any) ([]string, error)
	fallback() (any, bool)
}

// Param binds a codec to an optional default value and an optional
// wire-key override. The zero value is not usable; construct with
// NewParam.
type Param[T any] struct {
	codec codec.Codec[T]
	name  string
	def   *T
}

// NewParam creates a setting for one schema entry.
func NewParam[T any](c codec.Codec[T]) Param[T] {
	return Param[T]{codec: c}
}

// Default sets the value used when the parameter is missing from the
// query string or its raw value does not decode. A decoded value
// always wins over the default, including falsy ones like 0, false,
// and the empty string.
func (p Param[T]) Default(v T) Param[T] {
	p.def = &v
	return p
}

// Named overrides the wire-level key. Without it, the schema's logical
// key is used on the wire.
func (p Param[T]) Named(wire string) Param[T] {
	p.name = wire
	return p
}

func (p Param[T]) wireKey(logical string) string {
	if p.name != "" {
		return p.name
	}
	return logical
}

func (p Param[T]) decodeRaw(raw []string) (any, bool) {
	v, ok := p.codec.Decode(raw)
	if !ok {
		return nil, false
	}
	return v, true
}

func (p Param[T]) encodeValue(v any) ([]string, error) {
	t, ok := v.(T)
	if !ok {
		var want T
		return nil, fmt.Errorf("query: value is %T, want %T", v, want)
	}
	return p.codec.Encode(t), nil
}

func (p Param[T]) fallback() (any, bool) {
	if p.def == nil {
		return nil, false
	}
	return *p.def, true
}

// Schema is an immutable mapping from logical keys to settings. It is
// constructed once and reused across decode, apply, and snapshot
// calls. Logical keys are kept in sorted order so every derived
// artifact (snapshots in particular) is deterministic.
type Schema struct {
	order    []string
	settings map[string]Setting
}

// NewSchema builds a schema from its settings. It fails with
// ErrDuplicateWireKey when two logical keys resolve to the same wire
// key, since a merge through such a schema would be ambiguous.
func NewSchema(settings map[string]Setting) (*Schema, error) {
	order := make([]string, 0, len(settings))
	for logical := range settings {
		order = append(order, logical)
	}
	sort.Strings(order)

	byWire := make(map[string]string, len(settings))
	for _, logical := range order {
		wire := settings[logical].wireKey(logical)
		if prev, dup := byWire[wire]; dup {
			return nil, interrs.New("S001", interrs.CategorySchema, "duplicate wire key").
				WithDetail(fmt.Sprintf("%q shared by %q and %q", wire, prev, logical)).
				WithSuggestion("give one of the parameters a distinct wire name with Named").
				WithCause(ErrDuplicateWireKey)
		}
		byWire[wire] = logical
	}

	copied := make(map[string]Setting, len(settings))
	for logical, s := range settings {
		copied[logical] = s
	}
	return &Schema{order: order, settings: copied}, nil
}

// MustSchema is NewSchema for schemas declared as literals; it panics
// on a wire-key collision.
func MustSchema(settings map[string]Setting) *Schema {
	s, err := NewSchema(settings)
	if err != nil {
		panic(err)
	}
	return s
}

// Keys returns the logical keys in sorted order.
func (s *Schema) Keys() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// WireKeys returns the resolved wire keys, ordered by logical key.
func (s *Schema) WireKeys() []string {
	out := make([]string, 0, len(s.order))
	for _, logical := range s.order {
		out = append(out, s.settings[logical].wireKey(logical))
	}
	return out
}

// Resolve returns the wire key for a logical key.
func (s *Schema) Resolve(logical string) (string, bool) {
	setting, ok := s.settings[logical]
	if !ok {
		return "", false
	}
	return setting.wireKey(logical), true
}

// Len returns the number of schema entries.
func (s *Schema) Len() int {
	return len(s.order)
}
