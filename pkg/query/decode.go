package query

// State holds the decoded values for a schema's logical keys. A key is
// present when its parameter decoded or a default was configured;
// otherwise it is absent. Values are heterogeneous; use Get for typed
// access.
type State map[string]any

// Decode converts a raw query string into typed state for the schema.
// It is a pure function of its two inputs and never fails: a raw value
// that does not decode falls back to the setting's default, and a key
// with neither stays absent.
//
// A successfully decoded value always wins over the default, even when
// it is falsy (0, false, ""): only a missing or undecodable raw value
// reaches the fallback.
func Decode(s *Schema, rawQuery string) State {
	return DecodePairs(s, ParseQuery(rawQuery))
}

// DecodePairs is Decode over an already parsed pair list.
func DecodePairs(s *Schema, pairs Pairs) State {
	state := make(State, len(s.order))
	for _, logical := range s.order {
		setting := s.settings[logical]
		raw := pairs.Get(setting.wireKey(logical))
		if len(raw) > 0 {
			if v, ok := setting.decodeRaw(raw); ok {
				state[logical] = v
				continue
			}
		}
		if def, ok := setting.fallback(); ok {
			state[logical] = def
		}
	}
	return state
}

// Get returns the state value for key as a T. ok is false when the key
// is absent or holds a different type.
func Get[T any](s State, key string) (T, bool) {
	var zero T
	v, ok := s[key]
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}
