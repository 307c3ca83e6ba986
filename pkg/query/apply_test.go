package query

import (
	"testing"

	"github.com/chrisneven/qstate/pkg/codec"
)

func TestApply(t *testing.T) {
	s := testSchema(t)

	t.Run("ReplaceLeavesOthersUntouched", func(t *testing.T) {
		pairs := ParseQuery("q=hi&page=1")
		got, err := Apply(s, pairs, Update{"page": 2})
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if got.Encode() != "q=hi&page=2" {
			t.Errorf("got %q, want %q", got.Encode(), "q=hi&page=2")
		}
	})

	t.Run("NilRemoves", func(t *testing.T) {
		pairs := ParseQuery("q=hi&page=1")
		got, err := Apply(s, pairs, Update{"q": nil})
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if got.Encode() != "page=1" {
			t.Errorf("got %q, want %q", got.Encode(), "page=1")
		}
	})

	t.Run("KeepIsNoOp", func(t *testing.T) {
		pairs := ParseQuery("q=hi&page=1")
		got, err := Apply(s, pairs, Update{"q": Keep, "page": Keep})
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if got.Encode() != "q=hi&page=1" {
			t.Errorf("got %q, want unchanged", got.Encode())
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		pairs := ParseQuery("q=hi&page=1")
		once, err := Apply(s, pairs, Update{"page": 2})
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		twice, err := Apply(s, once, Update{"page": 2})
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if once.Encode() != twice.Encode() {
			t.Errorf("not idempotent: %q then %q", once.Encode(), twice.Encode())
		}
	})

	t.Run("UntouchedKeysByteForByte", func(t *testing.T) {
		// %20 would normalize to + if the untouched pair were
		// re-encoded.
		pairs := ParseQuery("q=hello%20world&other=1&page=1")
		got, err := Apply(s, pairs, Update{"page": 5})
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if got.Encode() != "q=hello%20world&other=1&page=5" {
			t.Errorf("got %q", got.Encode())
		}
	})

	t.Run("MalformedEscapeElsewhereSurvives", func(t *testing.T) {
		// A stray "%" in an unrelated parameter must not cost the
		// author that parameter when another key is updated.
		pairs := ParseQuery("pct=100%&page=1")
		got, err := Apply(s, pairs, Update{"page": 2})
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if got.Encode() != "pct=100%&page=2" {
			t.Errorf("got %q, want %q", got.Encode(), "pct=100%&page=2")
		}
	})

	t.Run("RemoveAbsentKeyIsNoOp", func(t *testing.T) {
		pairs := ParseQuery("page=1")
		got, err := Apply(s, pairs, Update{"q": nil})
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if got.Encode() != "page=1" {
			t.Errorf("got %q, want unchanged", got.Encode())
		}
	})

	t.Run("MultiValuedReplacesWithoutStaleDuplicates", func(t *testing.T) {
		s := MustSchema(map[string]Setting{
			"tags": NewParam(codec.StringList()),
		})
		pairs := ParseQuery("tags=old&x=1&tags=stale")
		got, err := Apply(s, pairs, Update{"tags": []string{"go", "web"}})
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if got.Encode() != "x=1&tags=go&tags=web" {
			t.Errorf("got %q", got.Encode())
		}
	})

	t.Run("SetMissingKeyAppends", func(t *testing.T) {
		pairs := ParseQuery("q=hi")
		got, err := Apply(s, pairs, Update{"page": 3})
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if got.Encode() != "q=hi&page=3" {
			t.Errorf("got %q", got.Encode())
		}
	})

	t.Run("UnknownKeysIgnored", func(t *testing.T) {
		pairs := ParseQuery("q=hi")
		got, err := Apply(s, pairs, Update{"nope": 1})
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if got.Encode() != "q=hi" {
			t.Errorf("got %q", got.Encode())
		}
	})

	t.Run("TypeMismatchErrors", func(t *testing.T) {
		pairs := ParseQuery("q=hi")
		if _, err := Apply(s, pairs, Update{"page": "two"}); err == nil {
			t.Error("expected a type mismatch error")
		}
	})

	t.Run("WireNameOverride", func(t *testing.T) {
		s := MustSchema(map[string]Setting{
			"search": NewParam(codec.String()).Named("q"),
		})
		pairs := ParseQuery("q=old&x=1")
		got, err := Apply(s, pairs, Update{"search": "new"})
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if got.Encode() != "x=1&q=new" {
			t.Errorf("got %q", got.Encode())
		}
	})
}
