// Package codec provides encode/decode pairs for query-string values.
//
// A Codec converts between one typed value and the raw string values
// that appear under a single query-string key. Raw values are
// multi-valued because a key may repeat in the wire format
// (?tag=go&tag=web). Decoding is total: unparsable input reports
// ok=false ("absent") instead of returning an error or panicking, so a
// bad value under one key can never fail a whole schema.
package codec

import (
	"strconv"
	"time"
)

// Codec converts between a typed value and the raw string sequence
// stored under one query-string key.
type Codec[T any] struct {
	// Decode parses the raw values found under a key. ok is false when
	// the input is empty or cannot be parsed.
	Decode func(raw []string) (value T, ok bool)

	// Encode serializes a value into the raw sequence written under
	// the key. Element order is preserved on the wire.
	Encode func(value T) []string
}

// Scalar builds a single-valued codec from a parse/format pair. Only
// the first raw value is considered; extra repetitions are ignored.
func Scalar[T any](parse func(string) (T, bool), format func(T) string) Codec[T] {
	return Codec[T]{
		Decode: func(raw []string) (T, bool) {
			var zero T
			if len(raw) == 0 {
				return zero, false
			}
			return parse(raw[0])
		},
		Encode: func(v T) []string {
			return []string{format(v)}
		},
	}
}

// String is the identity codec over the first raw value.
func String() Codec[string] {
	return Scalar(
		func(s string) (string, bool) { return s, true },
		func(s string) string { return s },
	)
}

// Int parses base-10 integers. Unparsable input is absent.
func Int() Codec[int] {
	return Scalar(
		func(s string) (int, bool) {
			n, err := strconv.Atoi(s)
			if err != nil {
				return 0, false
			}
			return n, true
		},
		strconv.Itoa,
	)
}

// Float parses decimal numbers. Unparsable input and NaN are absent.
func Float() Codec[float64] {
	return Scalar(
		func(s string) (float64, bool) {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil || f != f {
				return 0, false
			}
			return f, true
		},
		func(f float64) string {
			return strconv.FormatFloat(f, 'g', -1, 64)
		},
	)
}

// Bool decodes the literal "true" as true and any other present value
// as false; only a missing value is absent. This is deliberately not a
// symmetric round trip ("yes" decodes to false, which re-encodes as
// "false"): it matches the long-standing wire behavior applications
// depend on.
func Bool() Codec[bool] {
	return Scalar(
		func(s string) (bool, bool) { return s == "true", true },
		strconv.FormatBool,
	)
}

// Time encodes timestamps as RFC 3339 and parses permissively: full
// RFC 3339 with or without sub-second precision, or a bare
// YYYY-MM-DD date (interpreted as midnight UTC). Anything else is
// absent.
func Time() Codec[time.Time] {
	return Scalar(parseTime, func(t time.Time) string {
		return t.Format(time.RFC3339Nano)
	})
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// StringList passes the raw value sequence through unchanged, one
// element per key repetition. An empty sequence is absent.
func StringList() Codec[[]string] {
	return Codec[[]string]{
		Decode: func(raw []string) ([]string, bool) {
			if len(raw) == 0 {
				return nil, false
			}
			out := make([]string, len(raw))
			copy(out, raw)
			return out, true
		},
		Encode: func(v []string) []string {
			out := make([]string, len(v))
			copy(out, v)
			return out
		},
	}
}
