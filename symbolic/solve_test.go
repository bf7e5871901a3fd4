package symbolic

import (
	"testing"

	"github.com/coregx/symregex/smt"
)

func TestFindModel(t *testing.T) {
	b := New()
	x, y, z := b.StringVar("x"), b.StringVar("y"), b.StringVar("z")
	a := b.ReString(b.String("a"))
	universe := []string{"", "a", "b", "ab"}

	tests := []struct {
		name  string
		cons  []smt.Term
		sat   bool
		check map[string]string
	}{
		{
			name:  "membership",
			cons:  []smt.Term{b.InRe(x, b.RePlus(a)), b.Eq(b.Length(x), b.Int(1))},
			sat:   true,
			check: map[string]string{"x": "a"},
		},
		{
			name: "definition propagates",
			cons: []smt.Term{
				b.InRe(x, a),
				b.InRe(y, b.ReString(b.String("b"))),
				b.Eq(z, b.Concat(x, y)),
			},
			sat:   true,
			check: map[string]string{"z": "ab"},
		},
		{
			name: "value outside universe via equation",
			cons: []smt.Term{
				b.Eq(x, b.String("ab")),
				b.Eq(z, b.Concat(x, x)),
			},
			sat:   true,
			check: map[string]string{"z": "abab"},
		},
		{
			name: "disjunction",
			cons: []smt.Term{
				b.Or(b.Eq(z, b.String("b")), b.Eq(z, b.String(""))),
				b.Not(b.Eq(z, b.String(""))),
			},
			sat:   true,
			check: map[string]string{"z": "b"},
		},
		{
			name: "unsat",
			cons: []smt.Term{b.InRe(x, a), b.Eq(x, b.String("b"))},
			sat:  false,
		},
		{
			name: "ground false",
			cons: []smt.Term{b.Eq(b.String("a"), b.String("b"))},
			sat:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := b.FindModel(tt.cons, universe)
			if ok != tt.sat {
				t.Fatalf("FindModel() sat = %v, want %v", ok, tt.sat)
			}
			if !ok {
				return
			}
			if !b.Holds(tt.cons, m) {
				t.Errorf("model %v does not satisfy the constraints", m)
			}
			for name, want := range tt.check {
				if m[name] != want {
					t.Errorf("model[%s] = %q, want %q", name, m[name], want)
				}
			}
		})
	}
}

func TestValue(t *testing.T) {
	b := New()
	x := b.StringVar("x")
	m := Model{"x": "hé"}

	s, err := b.Value(b.Concat(x, b.String("!")), m)
	if err != nil || s != "hé!" {
		t.Errorf("Value() = %q, %v", s, err)
	}
	n, err := b.IntValue(b.Length(x), m)
	if err != nil || n != 2 {
		t.Errorf("IntValue(len) = %d, %v; want 2 runes", n, err)
	}
	if _, err := b.Value(b.StringVar("unbound"), m); err == nil {
		t.Error("unbound variable should fail")
	}
	if b.Holds([]smt.Term{b.Eq(b.StringVar("unbound"), x)}, m) {
		t.Error("constraint over unbound variable should not hold")
	}
}
