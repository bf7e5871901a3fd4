package symbolic

import (
	"testing"

	"github.com/coregx/symregex/smt"
)

func lit(b *Backend, s string) smt.Term {
	return b.ReString(b.String(s))
}

func TestMatches(t *testing.T) {
	b := New()
	a, bb, c := lit(b, "a"), lit(b, "b"), lit(b, "c")
	word := b.ReUnion(b.ReRange('a', 'z'), b.ReRange('0', '9'))
	anyStr := b.ReStar(b.ReRange(0, 0xff))

	tests := []struct {
		name   string
		re     smt.Term
		accept []string
		reject []string
	}{
		{
			name:   "literal",
			re:     lit(b, "abc"),
			accept: []string{"abc"},
			reject: []string{"", "ab", "abcd"},
		},
		{
			name:   "plus",
			re:     b.ReConcat(b.ReConcat(a, b.RePlus(bb)), c),
			accept: []string{"abc", "abbbc"},
			reject: []string{"ac", "abcd"},
		},
		{
			name:   "option",
			re:     b.ReConcat(b.ReOption(a), bb),
			accept: []string{"b", "ab"},
			reject: []string{"aab", ""},
		},
		{
			name:   "loop",
			re:     b.ReLoop(a, 2, 3),
			accept: []string{"aa", "aaa"},
			reject: []string{"a", "aaaa"},
		},
		{
			name:   "loop from zero",
			re:     b.ReLoop(a, 0, 2),
			accept: []string{"", "a", "aa"},
			reject: []string{"aaa"},
		},
		{
			name:   "complement",
			re:     b.ReIntersect(b.ReRange(0, 0xff), b.ReComplement(word)),
			accept: []string{" ", "-"},
			reject: []string{"a", "7", "", "  "},
		},
		{
			name:   "intersection",
			re:     b.ReIntersect(b.ReConcat(anyStr, a), b.ReConcat(bb, anyStr)),
			accept: []string{"ba", "bxxa"},
			reject: []string{"ab", "a", "b"},
		},
		{
			name:   "empty language",
			re:     b.ReEmpty(),
			reject: []string{"", "a"},
		},
		{
			name:   "full language",
			re:     b.ReFull(),
			accept: []string{"", "anything", "é"},
		},
		{
			name:   "multibyte literal",
			re:     lit(b, "é"),
			accept: []string{"é"},
			reject: []string{"e"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, s := range tt.accept {
				if !b.Matches(tt.re, s) {
					t.Errorf("Matches(%s, %q) = false, want true", tt.re, s)
				}
			}
			for _, s := range tt.reject {
				if b.Matches(tt.re, s) {
					t.Errorf("Matches(%s, %q) = true, want false", tt.re, s)
				}
			}
		})
	}
}

func TestMatches_NonGroundPanics(t *testing.T) {
	b := New()
	defer func() {
		if recover() == nil {
			t.Error("membership in a variable language should panic")
		}
	}()
	b.Matches(b.ReString(b.StringVar("x")), "x")
}

func TestTransitionCache_Clears(t *testing.T) {
	b := NewWithCacheSize(4)
	re := b.ReStar(b.ReUnion(lit(b, "ab"), b.ReRange('0', '9')))

	if !b.Matches(re, "ab0123ab9") {
		t.Fatal("expected match")
	}
	if b.CacheClears() == 0 {
		t.Error("a tiny cache should have been cleared at least once")
	}
	if b.Matches(re, "ab0x") {
		t.Error("cache clearing must not change results")
	}
}
