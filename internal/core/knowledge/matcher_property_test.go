package knowledge

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestNormalize_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := rapid.String().Draw(t, "input")
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("Normalize not idempotent: %q -> %q -> %q", input, once, twice)
		}
	})
}

func TestNormalize_NeverHasOuterOrDoubledWhitespace(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := rapid.String().Draw(t, "input")
		key := Normalize(input)
		if key != strings.TrimSpace(key) {
			t.Fatalf("key %q has surrounding whitespace", key)
		}
		if strings.Contains(key, "  ") {
			t.Fatalf("key %q has doubled spaces", key)
		}
		if key != strings.ToLower(key) {
			t.Fatalf("key %q is not lower-cased", key)
		}
	})
}

func TestScore_NeverNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := Candidate{
			Question: rapid.String().Draw(t, "question"),
			Answer:   rapid.String().Draw(t, "answer"),
			Tags:     rapid.SliceOfN(rapid.String(), 0, 4).Draw(t, "tags"),
		}
		query := rapid.String().Draw(t, "query")
		if got := Score(c, query); got < 0 {
			t.Fatalf("Score returned negative %v", got)
		}
	})
}

func TestScore_EmptyQueryAlwaysZero(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := Candidate{
			Question: rapid.String().Draw(t, "question"),
			Answer:   rapid.String().Draw(t, "answer"),
		}
		query := rapid.StringMatching(`[ \t\n]*`).Draw(t, "query")
		if got := Score(c, query); got != 0 {
			t.Fatalf("blank query scored %v against %+v", got, c)
		}
	})
}
