package symbolic

import (
	"strings"
	"testing"

	"github.com/coregx/symregex/smt"
)

func TestRender(t *testing.T) {
	b := New()
	x := b.StringVar("x")

	tests := []struct {
		name string
		term smt.Term
		want string
	}{
		{"quote", b.String(`say "hi"`), `"say ""hi"""`},
		{"control", b.String("a\nb"), `"a\u{a}b"`},
		{"backslash", b.String(`\`), `"\u{5c}"`},
		{"non-ascii", b.String("é"), `"\u{e9}"`},
		{"quoted symbol", b.StringVar("ns 1 fill"), "|ns 1 fill|"},
		{"negative int", b.Int(-3), "(- 3)"},
		{"range", b.ReRange(0, 0xff), `(re.range "\u{0}" "\u{ff}")`},
		{"loop", b.ReLoop(b.ReString(b.String("a")), 2, 4), `((_ re.loop 2 4) (str.to_re "a"))`},
		{"membership", b.InRe(x, b.ReStar(b.ReFull())), "(str.in_re x (re.* re.all))"},
		{"length", b.Length(x), "(str.len x)"},
		{"empty", b.ReEmpty(), "re.none"},
		{"option", b.ReOption(b.ReRange('a', 'a')), `(re.opt (re.range "a" "a"))`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.term.String(); got != tt.want {
				t.Errorf("String() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestScript(t *testing.T) {
	b := New()
	x, y := b.StringVar("x"), b.StringVar("y")
	script := b.Script([]smt.Term{
		b.InRe(x, b.ReString(b.String("a"))),
		b.Eq(y, b.Concat(x, x)),
	})

	want := []string{
		"(set-logic QF_SLIA)",
		"(declare-const x String)",
		"(declare-const y String)",
		`(assert (str.in_re x (str.to_re "a")))`,
		"(assert (= y (str.++ x x)))",
		"(check-sat)",
	}
	for _, line := range want {
		if !strings.Contains(script, line+"\n") {
			t.Errorf("script missing %q:\n%s", line, script)
		}
	}
	if strings.Count(script, "declare-const x ") != 1 {
		t.Errorf("x declared more than once:\n%s", script)
	}
}
