package treepath

import (
	"testing"

	"pgregory.net/rapid"
)

func genPath(t *rapid.T, label string) Path {
	return Path(rapid.SliceOfN(rapid.IntRange(0, 8), 0, 12).Draw(t, label))
}

// Clip must return exactly the first min(len(p), d) elements, in order.
func TestClipIsPrefixPreserving(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := genPath(t, "path")
		d := rapid.IntRange(-2, 16).Draw(t, "maxLen")

		got := Clip(p, d)

		want := d
		if want < 0 {
			want = 0
		}
		if want > len(p) {
			want = len(p)
		}
		if len(got) != want {
			t.Fatalf("Clip(%v, %d) has length %d, want %d", p, d, len(got), want)
		}
		for i := range got {
			if got[i] != p[i] {
				t.Fatalf("Clip(%v, %d)[%d] = %d, want %d", p, d, i, got[i], p[i])
			}
		}
	})
}

func TestConcatThenSliceRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		prefix := genPath(t, "prefix")
		suffix := genPath(t, "suffix")

		joined := Concat(prefix, suffix)
		if !HasPrefix(joined, prefix) {
			t.Fatalf("Concat(%v, %v) lost its prefix", prefix, suffix)
		}
		if !Equal(Slice(joined, len(prefix)), suffix) {
			t.Fatalf("slicing off the prefix of %v did not recover %v", joined, suffix)
		}
	})
}

func TestStringParseRoundTripProp(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := genPath(t, "path")
		parsed, err := Parse(p.String())
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", p.String(), err)
		}
		if !Equal(parsed, p) {
			t.Fatalf("round trip of %v gave %v", p, parsed)
		}
	})
}
