package compiler

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Common compilation errors. Every *ParseError wraps one of them.
var (
	// ErrSyntax indicates a structural problem: an unterminated group or
	// class, a bad escape, malformed repetition bounds.
	ErrSyntax = errors.New("invalid regex syntax")

	// ErrUnsupported indicates valid ECMAScript syntax the compiler does not
	// model, such as lookbehind or Unicode property escapes.
	ErrUnsupported = errors.New("unsupported regex construct")

	// ErrTooComplex indicates the pattern exceeds the configured nesting or
	// repetition limits.
	ErrTooComplex = errors.New("pattern too complex")

	// ErrInvalidConfig indicates invalid configuration was provided.
	ErrInvalidConfig = errors.New("invalid compiler configuration")
)

// ParseError reports a failure at a position of the pattern text being
// compiled. Unit is that text; it differs from the caller's pattern when
// the failure happened while compiling a derived sub-pattern.
type ParseError struct {
	Kind      error
	Message   string
	Pos       int // rune offset into Unit
	Remaining string
	Unit      string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at position %d (remaining %q)", e.Message, e.Pos, e.Remaining)
}

// Unwrap returns the error kind, for errors.Is.
func (e *ParseError) Unwrap() error {
	return e.Kind
}

// Trace renders the unit text with a caret under the failing position.
func (e *ParseError) Trace() string {
	col := e.Pos
	if n := utf8.RuneCountInString(e.Unit); col > n {
		col = n
	}
	return "\t" + e.Unit + "\n\t" + strings.Repeat(" ", col) + "^"
}

// CompileError wraps any failure leaving Compile with the caller's pattern.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface. When the cause is a *ParseError the
// message ends with its trace.
func (e *CompileError) Error() string {
	msg := fmt.Sprintf("regexp: compiling %q: %s", e.Pattern, strings.TrimPrefix(e.Err.Error(), "regexp: "))
	var pe *ParseError
	if errors.As(e.Err, &pe) {
		msg += "\n" + pe.Trace()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "regexp: invalid config: " + e.Field + ": " + e.Message
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
