package symregex

import (
	"testing"

	"github.com/coregx/symregex/smt"
	"github.com/coregx/symregex/symbolic"
)

func TestCompile(t *testing.T) {
	b := symbolic.New()
	re, err := Compile(b, `/^(a+)@(b)$/i`)
	if err != nil {
		t.Fatalf("Compile() failed: %v", err)
	}
	if re.String() != `/^(a+)@(b)$/i` {
		t.Errorf("String() = %q", re.String())
	}
	if re.Result().Flags() != "i" {
		t.Errorf("Flags() = %q, want i", re.Result().Flags())
	}
	if re.NumSubexp() != 2 {
		t.Errorf("NumSubexp() = %d, want 2", re.NumSubexp())
	}
	if re.Language() != re.Result().Language() {
		t.Error("Language() differs from Result().Language()")
	}
}

func TestQuery(t *testing.T) {
	b := symbolic.New()
	re := MustCompile(b, `^(a+)@(b)$`)
	input := b.StringVar("input")

	tests := []struct {
		name  string
		input string
		sat   bool
		want  []string
	}{
		{"match", "aa@b", true, []string{"aa@b", "aa", "b"}},
		{"no match", "aa@c", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := append(re.Query(input), b.Eq(input, b.String(tt.input)))
			m, ok := b.FindModel(query, []string{"", "a", "aa", "@", "b", "c"})
			if ok != tt.sat {
				t.Fatalf("FindModel() sat = %v, want %v", ok, tt.sat)
			}
			for i, want := range tt.want {
				name := re.Capture(i).(*symbolic.Term).Name()
				if m[name] != want {
					t.Errorf("capture %d = %q, want %q", i, m[name], want)
				}
			}
		})
	}
}

func TestMatchConstraint(t *testing.T) {
	b := symbolic.New()
	re := MustCompile(b, `b+`)
	x := b.StringVar("x")
	cons := []smt.Term{re.MatchConstraint(x), b.Eq(b.Length(x), b.Int(2))}
	m, ok := b.FindModel(cons, []string{"", "a", "b", "ab", "ba"})
	if !ok {
		t.Fatal("no model")
	}
	if !b.Matches(re.Language(), m["x"]) || len(m["x"]) != 2 {
		t.Errorf("model x = %q", m["x"])
	}
}

func TestQuoteMeta(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"abc", "abc"},
		{"a.b", `a\.b`},
		{"1+1=2", `1\+1=2`},
		{"a/b", `a\/b`},
		{`[x]{2}(y)|^$\`, `\[x\]\{2\}\(y\)\|\^\$\\`},
		{"é.ü", `é\.ü`},
	}

	b := symbolic.New()
	for _, tt := range tests {
		got := QuoteMeta(tt.in)
		if got != tt.want {
			t.Errorf("QuoteMeta(%q) = %q, want %q", tt.in, got, tt.want)
			continue
		}
		re, err := Compile(b, "^"+got+"$")
		if err != nil {
			t.Errorf("Compile(QuoteMeta(%q)) failed: %v", tt.in, err)
			continue
		}
		if !b.Matches(re.Language(), tt.in) {
			t.Errorf("quoted pattern does not match %q", tt.in)
		}
	}
}

func TestQuoteMetaLiteral(t *testing.T) {
	b := symbolic.New()
	for _, text := range []string{"a/b", "/", "x/*y*/", "1+1=2"} {
		literal := "/^" + QuoteMeta(text) + "$/g"
		body, flags, ok := SplitLiteral(literal)
		if !ok || flags != "g" {
			t.Errorf("SplitLiteral(%q) = %q, %q, %v", literal, body, flags, ok)
			continue
		}
		re, err := Compile(b, literal)
		if err != nil {
			t.Errorf("Compile(%q) failed: %v", literal, err)
			continue
		}
		if !b.Matches(re.Language(), text) {
			t.Errorf("%s does not match %q", literal, text)
		}
		if b.Matches(re.Language(), text+"x") {
			t.Errorf("%s matches %q", literal, text+"x")
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if err := config.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
	if config.Namespace != "" || config.Logger != nil {
		t.Error("DefaultConfig() should leave Namespace and Logger unset")
	}
}
