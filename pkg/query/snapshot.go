package query

import (
	"net/url"
	"sort"
	"strings"
)

// Snapshot builds the canonical change-detection token over the given
// wire keys. Key enumeration follows the order the keys are given, so
// two query strings that differ only in parameter order produce equal
// snapshots; each key's multi-value sequence is preserved. A key
// listed more than once is coalesced: the last listing decides its
// position and the key contributes once.
//
// The token is an equality check, nothing more. It is not meant to be
// parsed back.
func Snapshot(pairs Pairs, wireKeys []string) string {
	keys := coalesce(wireKeys)

	var b strings.Builder
	for _, key := range keys {
		for _, value := range pairs.Get(key) {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(key))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(value))
		}
	}
	return b.String()
}

// SnapshotSchema is Snapshot restricted to the schema's wire keys.
func SnapshotSchema(s *Schema, pairs Pairs) string {
	return Snapshot(pairs, s.WireKeys())
}

// SnapshotAll canonicalizes the whole pair list: keys are enumerated
// in sorted order so the token is independent of the original query
// ordering.
func SnapshotAll(pairs Pairs) string {
	seen := make(map[string]bool, len(pairs))
	keys := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		if !seen[pair.Key] {
			seen[pair.Key] = true
			keys = append(keys, pair.Key)
		}
	}
	sort.Strings(keys)
	return Snapshot(pairs, keys)
}

// coalesce drops duplicate keys, keeping the position of the last
// occurrence.
func coalesce(keys []string) []string {
	count := make(map[string]int, len(keys))
	for _, k := range keys {
		count[k]++
	}
	out := make([]string, 0, len(count))
	for _, k := range keys {
		count[k]--
		if count[k] == 0 {
			out = append(out, k)
		}
	}
	return out
}
