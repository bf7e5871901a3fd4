package symbolic

import (
	"testing"

	"github.com/coregx/symregex/smt"
)

func TestBackend_HashConsing(t *testing.T) {
	b := New()

	if b.StringVar("x") != b.StringVar("x") {
		t.Error("same variable name should intern to the same term")
	}
	if b.StringVar("x") == b.StringVar("y") {
		t.Error("different variable names should be different terms")
	}

	a := b.ReRange('a', 'z')
	d := b.ReRange('0', '9')
	if b.ReUnion(a, d) != b.ReUnion(d, a) {
		t.Error("union should be commutative on identity")
	}
	if b.ReUnion(a, a) != a {
		t.Error("union should be idempotent")
	}
	if b.ReIntersect(a, b.ReFull()) != a {
		t.Error("full language is the unit of intersection")
	}
	if b.ReUnion(a, b.ReEmpty()) != a {
		t.Error("empty language is the unit of union")
	}
	if b.ReComplement(b.ReComplement(a)) != a {
		t.Error("double complement should cancel")
	}
}

func TestBackend_Concat(t *testing.T) {
	b := New()
	x := b.StringVar("x")

	tests := []struct {
		name string
		got  smt.Term
		want string
	}{
		{"empty", b.Concat(), `""`},
		{"drop empty literal", b.Concat(b.String(""), x), "x"},
		{"merge literals", b.Concat(b.String("a"), b.String("b"), x), `(str.++ "ab" x)`},
		{"flatten", b.Concat(b.Concat(x, b.String("a")), b.String("b")), `(str.++ x "ab")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.got.String(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBackend_Boolean(t *testing.T) {
	b := New()
	x, y := b.StringVar("x"), b.StringVar("y")
	eq := b.Eq(x, y)

	tests := []struct {
		name string
		got  smt.Term
		want string
	}{
		{"empty and", b.And(), "true"},
		{"empty or", b.Or(), "false"},
		{"and drops true", b.And(b.True(), eq), "(= x y)"},
		{"or with true", b.Or(eq, b.True()), "true"},
		{"eq reflexive", b.Eq(x, x), "true"},
		{"implies true antecedent", b.Implies(b.True(), eq), "(= x y)"},
		{"not not", b.Not(b.Not(eq)), "(= x y)"},
		{"implies", b.Implies(eq, b.Eq(x, b.String(""))), `(=> (= x y) (= x ""))`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.got.String(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBackend_ForeignTermPanics(t *testing.T) {
	b := New()
	defer func() {
		if recover() == nil {
			t.Error("mixing a foreign term type should panic")
		}
	}()
	b.ReStar(foreign{})
}

type foreign struct{}

func (foreign) String() string { return "foreign" }

func TestKind_String(t *testing.T) {
	if KindReLoop.String() != "ReLoop" {
		t.Errorf("KindReLoop.String() = %q", KindReLoop.String())
	}
	if Kind(200).String() != "Kind(200)" {
		t.Errorf("unknown kind = %q", Kind(200).String())
	}
	if !KindReStar.IsRegex() || KindInRe.IsRegex() {
		t.Error("IsRegex mismatch")
	}
}

func TestTerm_Accessors(t *testing.T) {
	b := New()
	x := b.StringVar("x").(*Term)
	if x.Name() != "x" || x.Kind() != KindVar {
		t.Errorf("var accessors: %q %v", x.Name(), x.Kind())
	}
	lit := b.String("hi").(*Term)
	if v, ok := lit.Literal(); !ok || v != "hi" {
		t.Errorf("Literal() = %q, %v", v, ok)
	}
	if lit.Name() != "" {
		t.Error("literal has no name")
	}
	loop := b.ReLoop(b.ReRange('a', 'b'), 2, 5).(*Term)
	if lo, hi := loop.Bounds(); lo != 2 || hi != 5 {
		t.Errorf("Bounds() = %d, %d", lo, hi)
	}
	if len(loop.Args()) != 1 {
		t.Errorf("loop args = %d", len(loop.Args()))
	}
	if b.Len() == 0 {
		t.Error("Len() should count interned terms")
	}
}
