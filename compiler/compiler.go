// Package compiler translates ECMAScript-style regular expressions into
// terms for a solver over strings and regular languages.
//
// The result of a compile is a regular-language term for the whole pattern
// and a set of string constraints that give every capture group a variable
// holding the text it captured. Zero-width assertions (\b, \B, (?=...),
// (?!...)) contribute no text; they are encoded by intersecting the
// language with constraints on how the pattern splits around them.
//
// Basic usage:
//
//	b := symbolic.New()
//	res, err := compiler.Compile(b, `^(a|b)c$`)
//	if err != nil {
//	    return err
//	}
//	_ = b.InRe(b.String("ac"), res.Language())
package compiler

import (
	"strings"

	"github.com/coregx/symregex/smt"
)

// Compile compiles a pattern with the default configuration.
//
// The pattern is either raw pattern text or a /pattern/flags literal; see
// SplitLiteral. Errors are *CompileError values; errors.Is reports which of
// ErrSyntax, ErrUnsupported, ErrTooComplex or ErrInvalidConfig caused them.
func Compile(b smt.Backend, pattern string) (*Result, error) {
	return CompileWithConfig(b, pattern, DefaultConfig())
}

// CompileWithConfig compiles a pattern with a custom configuration.
func CompileWithConfig(b smt.Backend, pattern string, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	body, flags, _ := SplitLiteral(pattern)
	s := newSession(b, config)
	if flags != "" {
		s.log.Debug("regex flags recorded but not applied", "flags", flags)
	}

	res, err := s.compileUnit(body)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	res.flags = flags
	s.log.Debug("compiled pattern",
		"pattern", pattern,
		"captures", len(res.captures),
		"assertions", len(res.assertions),
		"variables", s.names.next)
	return res, nil
}

// SplitLiteral separates a /pattern/flags literal into its body and flags.
// Text that is not a literal is returned unchanged with ok false.
func SplitLiteral(s string) (body, flags string, ok bool) {
	if !strings.HasPrefix(s, "/") {
		return s, "", false
	}
	end := strings.LastIndexByte(s, '/')
	if end == 0 {
		return s, "", false
	}
	return s[1:end], s[end+1:], true
}
