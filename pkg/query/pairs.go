package query

import (
	"net/url"
	"strings"
)

// Pair is one key=value occurrence in a query string. Key and Value
// hold the decoded (unescaped) form. Pairs parsed from a raw query
// remember their original wire segment so that untouched parameters
// re-serialize byte-for-byte, whatever escaping the author used.
type Pair struct {
	Key   string
	Value string

	raw string
}

// Pairs is an ordered list of query-string occurrences. Unlike
// url.Values it preserves both the relative order of keys and the
// repetition of multi-valued keys.
type Pairs []Pair

// ParseQuery splits a raw query string ("a=1&b=2", with or without a
// leading "?") into ordered pairs. Malformed percent-escapes never
// fail the parse: the segment is kept with its literal bytes as the
// decoded form, the way browsers treat a stray "%", so it still
// re-serializes byte-for-byte and can be targeted by key.
func ParseQuery(rawQuery string) Pairs {
	rawQuery = strings.TrimPrefix(rawQuery, "?")
	if rawQuery == "" {
		return nil
	}

	var pairs Pairs
	for _, segment := range strings.Split(rawQuery, "&") {
		if segment == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(segment, "=")
		pairs = append(pairs, Pair{
			Key:   unescapeLenient(rawKey),
			Value: unescapeLenient(rawValue),
			raw:   segment,
		})
	}
	return pairs
}

// unescapeLenient decodes percent-escapes, falling back to the literal
// bytes when the escaping is malformed.
func unescapeLenient(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// Encode serializes the pairs back into a query string, preserving
// order. Pairs that came from ParseQuery and were not replaced emit
// their original wire segment unchanged.
func (p Pairs) Encode() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for i, pair := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		if pair.raw != "" {
			b.WriteString(pair.raw)
			continue
		}
		b.WriteString(url.QueryEscape(pair.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(pair.Value))
	}
	return b.String()
}

// Get returns every value stored under key, in wire order. The result
// is nil when the key does not occur.
func (p Pairs) Get(key string) []string {
	var values []string
	for _, pair := range p {
		if pair.Key == key {
			values = append(values, pair.Value)
		}
	}
	return values
}

// Has reports whether key occurs at least once.
func (p Pairs) Has(key string) bool {
	for _, pair := range p {
		if pair.Key == key {
			return true
		}
	}
	return false
}

// Delete returns a copy of p with every occurrence of key removed.
// The relative order of the remaining pairs is unchanged.
func (p Pairs) Delete(key string) Pairs {
	out := make(Pairs, 0, len(p))
	for _, pair := range p {
		if pair.Key != key {
			out = append(out, pair)
		}
	}
	return out
}

// Append returns a copy of p with one new occurrence of key appended.
func (p Pairs) Append(key, value string) Pairs {
	out := make(Pairs, len(p), len(p)+1)
	copy(out, p)
	return append(out, Pair{Key: key, Value: value})
}
