package query

import (
	"reflect"
	"testing"
)

func TestParseQuery(t *testing.T) {
	t.Run("Simple", func(t *testing.T) {
		pairs := ParseQuery("q=hi&page=1")
		if len(pairs) != 2 {
			t.Fatalf("got %d pairs, want 2", len(pairs))
		}
		if pairs[0].Key != "q" || pairs[0].Value != "hi" {
			t.Errorf("pairs[0]: got %v", pairs[0])
		}
		if pairs[1].Key != "page" || pairs[1].Value != "1" {
			t.Errorf("pairs[1]: got %v", pairs[1])
		}
	})

	t.Run("LeadingQuestionMark", func(t *testing.T) {
		pairs := ParseQuery("?q=hi")
		if len(pairs) != 1 || pairs[0].Key != "q" {
			t.Errorf("got %v", pairs)
		}
	})

	t.Run("RepeatedKeysKeepOrder", func(t *testing.T) {
		pairs := ParseQuery("tag=go&tag=web&tag=api")
		if got := pairs.Get("tag"); !reflect.DeepEqual(got, []string{"go", "web", "api"}) {
			t.Errorf("Get: got %v", got)
		}
	})

	t.Run("PercentEscapes", func(t *testing.T) {
		pairs := ParseQuery("q=hello%20world")
		if got := pairs.Get("q"); !reflect.DeepEqual(got, []string{"hello world"}) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("MalformedEscapeKeptLiterally", func(t *testing.T) {
		pairs := ParseQuery("pct=100%&good=1")
		if got := pairs.Get("pct"); !reflect.DeepEqual(got, []string{"100%"}) {
			t.Errorf("Get(pct): got %v, want the literal bytes", got)
		}
		if !pairs.Has("good") {
			t.Error("well-formed segment should survive")
		}
	})

	t.Run("MalformedEscapeInKeyKeptLiterally", func(t *testing.T) {
		pairs := ParseQuery("%zz=1&good=2")
		if got := pairs.Get("%zz"); !reflect.DeepEqual(got, []string{"1"}) {
			t.Errorf("Get(%%zz): got %v", got)
		}
	})

	t.Run("ValuelessKey", func(t *testing.T) {
		pairs := ParseQuery("flag")
		if got := pairs.Get("flag"); !reflect.DeepEqual(got, []string{""}) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if pairs := ParseQuery(""); len(pairs) != 0 {
			t.Errorf("got %v", pairs)
		}
	})
}

func TestPairsEncode(t *testing.T) {
	t.Run("PreservesOrder", func(t *testing.T) {
		pairs := ParseQuery("z=1&a=2&m=3")
		if got := pairs.Encode(); got != "z=1&a=2&m=3" {
			t.Errorf("Encode: got %q", got)
		}
	})

	t.Run("UntouchedSegmentsAreByteIdentical", func(t *testing.T) {
		// The author used %20; re-encoding alone would normalize it
		// to +, which must not happen to untouched pairs.
		raw := "q=hello%20world&x=1"
		if got := ParseQuery(raw).Encode(); got != raw {
			t.Errorf("Encode: got %q, want %q", got, raw)
		}
	})

	t.Run("MalformedSegmentsAreByteIdentical", func(t *testing.T) {
		raw := "pct=100%&q=hi"
		if got := ParseQuery(raw).Encode(); got != raw {
			t.Errorf("Encode: got %q, want %q", got, raw)
		}
	})

	t.Run("SynthesizedPairsAreEscaped", func(t *testing.T) {
		pairs := Pairs{{Key: "q", Value: "a b&c"}}
		if got := pairs.Encode(); got != "q=a+b%26c" {
			t.Errorf("Encode: got %q", got)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if got := (Pairs)(nil).Encode(); got != "" {
			t.Errorf("got %q", got)
		}
	})
}

func TestPairsDelete(t *testing.T) {
	pairs := ParseQuery("a=1&b=2&a=3&c=4")
	got := pairs.Delete("a")
	if got.Encode() != "b=2&c=4" {
		t.Errorf("Delete: got %q", got.Encode())
	}
	// Original is unchanged.
	if pairs.Encode() != "a=1&b=2&a=3&c=4" {
		t.Errorf("original mutated: %q", pairs.Encode())
	}
}

func TestPairsAppend(t *testing.T) {
	pairs := ParseQuery("a=1")
	got := pairs.Append("b", "2")
	if got.Encode() != "a=1&b=2" {
		t.Errorf("Append: got %q", got.Encode())
	}
	if len(pairs) != 1 {
		t.Error("Append must not mutate the receiver")
	}
}
