package symregex

import (
	"errors"
	"strings"
	"testing"

	"github.com/coregx/symregex/compiler"
	"github.com/coregx/symregex/symbolic"
)

// TestErrorMessageFormat verifies that errors name the pattern and point at
// the failing position.
func TestErrorMessageFormat(t *testing.T) {
	tests := []struct {
		pattern string
		kind    error
		trace   string
	}{
		{"[invalid", ErrSyntax, "\t[invalid\n\t^"},
		{`a\`, ErrSyntax, "\ta\\\n\t ^"},
		{"(abc", ErrSyntax, "\t(abc\n\t    ^"},
		{"*abc", ErrSyntax, "\t*abc\n\t^"},
		{"(?<=a)b", ErrUnsupported, "\t(?<=a)b\n\t^"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := Compile(symbolic.New(), tt.pattern)
			if err == nil {
				t.Fatalf("Compile(%q) expected error, got nil", tt.pattern)
			}
			if !errors.Is(err, tt.kind) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.kind)
			}
			msg := err.Error()
			if !strings.HasPrefix(msg, "regexp: compiling ") {
				t.Errorf("message %q lacks the regexp prefix", msg)
			}
			if !strings.HasSuffix(msg, tt.trace) {
				t.Errorf("message %q does not end with trace %q", msg, tt.trace)
			}
		})
	}
}

// TestMustCompilePanicFormat verifies the MustCompile panic message.
func TestMustCompilePanicFormat(t *testing.T) {
	pattern := "[invalid"

	var msg string
	func() {
		defer func() {
			if r := recover(); r != nil {
				msg = r.(string)
			}
		}()
		MustCompile(symbolic.New(), pattern)
	}()

	want := "regexp: Compile(`" + pattern + "`): "
	if !strings.HasPrefix(msg, want) {
		t.Errorf("panic = %q, want prefix %q", msg, want)
	}
}

// TestErrorUnwrap verifies the error chain down to the parse position.
func TestErrorUnwrap(t *testing.T) {
	_, err := Compile(symbolic.New(), "/ab(c/")
	var ce *compiler.CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("error %T is not *compiler.CompileError", err)
	}
	if ce.Pattern != "/ab(c/" {
		t.Errorf("Pattern = %q", ce.Pattern)
	}
	var pe *compiler.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error chain lacks *compiler.ParseError")
	}
	if pe.Unit != "ab(c" || pe.Pos != 4 || pe.Remaining != "" {
		t.Errorf("ParseError = %+v", pe)
	}
}

func TestInvalidConfig(t *testing.T) {
	config := DefaultConfig()
	config.MaxRecursionDepth = 1
	_, err := CompileWithConfig(symbolic.New(), "a", config)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}
