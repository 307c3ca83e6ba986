package query

import "sort"

// Update is a partial record over a schema's logical keys.
//
// For each entry:
//   - a nil value removes every occurrence of the wire key,
//   - Keep leaves the parameter exactly as it is,
//   - any other value is encoded through the key's codec and replaces
//     all existing occurrences.
//
// Keys absent from the update are never touched.
type Update map[string]any

// Keep marks an update key as present but unchanged. It exists so a
// caller assembling an Update from optional inputs can say "no change"
// without deleting the map entry.
var Keep any = keepSentinel{}

type keepSentinel struct{}

// Apply merges an update into a query string's pairs and returns the
// result. Wire keys not named by the update are byte-for-byte
// untouched, including their relative order; an updated key has its
// old occurrences removed and the freshly encoded sequence appended,
// so repeated application of the same update is idempotent.
//
// Update keys that the schema does not declare are ignored. The only
// error is a value whose type does not match the key's codec.
func Apply(s *Schema, pairs Pairs, update Update) (Pairs, error) {
	keys := make([]string, 0, len(update))
	for k := range update {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := pairs
	for _, logical := range keys {
		setting, ok := s.settings[logical]
		if !ok {
			continue
		}
		wire := setting.wireKey(logical)

		v := update[logical]
		if v == nil {
			if out.Has(wire) {
				out = out.Delete(wire)
			}
			continue
		}
		if _, unchanged := v.(keepSentinel); unchanged {
			continue
		}

		encoded, err := setting.encodeValue(v)
		if err != nil {
			return nil, err
		}
		out = out.Delete(wire)
		for _, value := range encoded {
			out = out.Append(wire, value)
		}
	}
	return out, nil
}
