// Package symregex compiles ECMAScript-style regular expressions into
// constraints for a solver over strings and regular languages.
//
// A compiled Regex holds a regular-language term for the pattern plus
// string constraints that bind each capture group to a solver variable, so
// a satisfying model of the query tells both whether a string matches and
// what every group captured. Zero-width assertions (\b, \B, lookahead) are
// folded into the language term.
//
// The solver is supplied by the caller through the smt.Backend interface.
// Package symbolic implements it in-process.
//
// Basic usage:
//
//	b := symbolic.New()
//	re, err := symregex.Compile(b, `^(a|b)c$`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	input := b.StringVar("input")
//	query := re.Query(input)
//	model, ok := b.FindModel(query, []string{"ac", "bc", "a", "b", ""})
//	// ok == true, model[re.Capture(1).String()] is "a" or "b"
//
// Advanced usage:
//
//	config := symregex.DefaultConfig()
//	config.Namespace = "q1"
//	config.Logger = slog.Default()
//	re, err := symregex.CompileWithConfig(b, `/\bfoo\b/i`, config)
//
// Supported syntax: literals, '.', character classes, the escapes \d \D \w
// \W \s \S \xHH \uHHHH \u{H...} \n \r \t \v \f \0, groups (capturing,
// non-capturing and named), alternation, the quantifiers * + ? {n} {n,}
// {n,m} (lazy forms are accepted and treated as greedy), backreferences
// \1-\9, ^ and $ at the ends of the pattern, \b, \B, (?=...) and (?!...).
//
// Limitations:
//   - Lookbehind, Unicode property escapes and named backreferences are
//     rejected with ErrUnsupported
//   - Flags of a /pattern/flags literal are recorded but not applied
//   - Repeated groups capture the text of their last iteration only
package symregex

import (
	"strings"

	"github.com/coregx/symregex/compiler"
	"github.com/coregx/symregex/smt"
)

// Config controls compilation. See compiler.Config.
type Config = compiler.Config

// Result is the raw compile output. See compiler.Result.
type Result = compiler.Result

// Errors returned by Compile; match them with errors.Is.
var (
	ErrSyntax        = compiler.ErrSyntax
	ErrUnsupported   = compiler.ErrUnsupported
	ErrTooComplex    = compiler.ErrTooComplex
	ErrInvalidConfig = compiler.ErrInvalidConfig
)

// Regex is a compiled pattern bound to the backend that built its terms.
//
// A Regex is immutable and safe to share between goroutines as long as the
// backend is.
//
// Example:
//
//	re := symregex.MustCompile(b, `(\w+)@(\w+)`)
//	user := re.Capture(1)
type Regex struct {
	b       smt.Backend
	res     *compiler.Result
	pattern string
}

// Compile compiles a pattern, given as raw text or as a /pattern/flags
// literal, into terms built by b.
//
// Example:
//
//	re, err := symregex.Compile(b, `\d{3}-\d{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(b smt.Backend, pattern string) (*Regex, error) {
	return CompileWithConfig(b, pattern, DefaultConfig())
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
//
// Example:
//
//	var email = symregex.MustCompile(b, `[a-z]+@[a-z]+\.[a-z]+`)
func MustCompile(b smt.Backend, pattern string) *Regex {
	re, err := Compile(b, pattern)
	if err != nil {
		panic("regexp: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := symregex.DefaultConfig()
//	config.MaxRepeat = 10000
//	re, err := symregex.CompileWithConfig(b, `a{5000}`, config)
func CompileWithConfig(b smt.Backend, pattern string, config Config) (*Regex, error) {
	res, err := compiler.CompileWithConfig(b, pattern, config)
	if err != nil {
		return nil, err
	}
	return &Regex{b: b, res: res, pattern: pattern}, nil
}

// DefaultConfig returns the default configuration for compilation.
func DefaultConfig() Config {
	return compiler.DefaultConfig()
}

// SplitLiteral separates a /pattern/flags literal into body and flags.
// Other text is returned unchanged with ok false.
func SplitLiteral(s string) (body, flags string, ok bool) {
	return compiler.SplitLiteral(s)
}

// syntaxChars are the ECMAScript pattern syntax characters plus the
// literal delimiter '/'.
const syntaxChars = `\^$.*+?()[]{}|/`

// QuoteMeta escapes s so it can be placed between the slashes of a
// /pattern/flags literal, or used as raw pattern text, and match exactly s.
//
// Example:
//
//	escaped := symregex.QuoteMeta("1+1=2")
//	// escaped = `1\+1=2`
func QuoteMeta(s string) string {
	if !strings.ContainsAny(s, syntaxChars) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 8)
	for _, r := range s {
		if strings.ContainsRune(syntaxChars, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// String returns the source text used to compile the pattern.
func (r *Regex) String() string {
	return r.pattern
}

// Result returns the underlying compile result.
func (r *Regex) Result() *Result {
	return r.res
}

// Language returns the regular-language term of the pattern.
func (r *Regex) Language() smt.Term {
	return r.res.Language()
}

// MatchConstraint returns the constraint that input is matched by the
// pattern. It says nothing about captures; use Query for those.
func (r *Regex) MatchConstraint(input smt.Term) smt.Term {
	return r.b.InRe(input, r.res.Language())
}

// Query returns every constraint needed to match input and bind the
// captures: membership of input in the language, input equal to the
// implier, and the compile assertions.
func (r *Regex) Query(input smt.Term) []smt.Term {
	assertions := r.res.Assertions()
	query := make([]smt.Term, 0, len(assertions)+2)
	query = append(query,
		r.b.InRe(input, r.res.Language()),
		r.b.Eq(input, r.res.Implier()),
	)
	return append(query, assertions...)
}

// Capture returns the variable holding the text of capture group i.
// Group 0 is the whole match.
func (r *Regex) Capture(i int) smt.Term {
	return r.res.Capture(i)
}

// NumSubexp returns the number of capture groups, not counting group 0.
//
// Example:
//
//	re := symregex.MustCompile(b, `(\w+)@(\w+)\.(\w+)`)
//	println(re.NumSubexp()) // 3
func (r *Regex) NumSubexp() int {
	return r.res.NumCaptures() - 1
}

// SubexpNames returns the names of the capture groups. names[0] is the
// whole match and always "", as are unnamed groups.
//
// Example:
//
//	re := symregex.MustCompile(b, `(?<year>\d+)-(?<month>\d+)`)
//	names := re.SubexpNames()
//	// names[1] = "year"
//	// names[2] = "month"
func (r *Regex) SubexpNames() []string {
	return r.res.SubexpNames()
}

// SubexpIndex returns the index of the first group with the given name, or
// -1.
func (r *Regex) SubexpIndex(name string) int {
	return r.res.SubexpIndex(name)
}
