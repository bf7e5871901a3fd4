package compiler

import (
	"slices"

	"github.com/coregx/symregex/smt"
)

// Result is the output of compiling one pattern. It is immutable.
//
// A string s is matched by the pattern iff s ∈ Language(). The constraints
// in Assertions() tie Implier() and the capture variables to that match:
// when the caller asserts Implier() = s together with them, a satisfying
// model assigns each capture the text the group captured.
type Result struct {
	language      smt.Term
	implier       smt.Term
	assertions    []smt.Term
	captures      []smt.Term
	names         []string
	startIndex    smt.Term
	anchoredStart smt.Term
	anchoredEnd   smt.Term
	pattern       string
	flags         string
	pos           int
	backrefs      bool
}

// Language returns the regular-language term of the whole pattern.
func (r *Result) Language() smt.Term { return r.language }

// Implier returns the string term the match is built from: the text
// captured by the whole pattern, wrapped in the implicit prefix and suffix
// fillers when the pattern is not anchored.
func (r *Result) Implier() smt.Term { return r.implier }

// Assertions returns a copy of the constraints relating fillers, captures
// and the implier.
func (r *Result) Assertions() []smt.Term { return slices.Clone(r.assertions) }

// Captures returns a copy of the capture variables. Index 0 is the whole
// match; index i is group i in order of opening parenthesis.
func (r *Result) Captures() []smt.Term { return slices.Clone(r.captures) }

// Capture returns capture variable i.
func (r *Result) Capture(i int) smt.Term { return r.captures[i] }

// NumCaptures returns the number of captures, including the whole match.
func (r *Result) NumCaptures() int { return len(r.captures) }

// SubexpNames returns the names of the groups. Index 0 and unnamed groups
// are "".
func (r *Result) SubexpNames() []string { return slices.Clone(r.names) }

// SubexpIndex returns the index of the group with the given name, or -1.
func (r *Result) SubexpIndex(name string) int {
	if name == "" {
		return -1
	}
	return slices.Index(r.names, name)
}

// StartIndex returns the integer term for the offset at which the match
// begins: 0 for anchored patterns, otherwise the length of AnchoredStart.
func (r *Result) StartIndex() smt.Term { return r.startIndex }

// AnchoredStart returns the filler for the text before the match, or nil
// when the pattern starts with '^'.
func (r *Result) AnchoredStart() smt.Term { return r.anchoredStart }

// AnchoredEnd returns the filler for the text after the match, or nil when
// the pattern ends with '$'.
func (r *Result) AnchoredEnd() smt.Term { return r.anchoredEnd }

// Backreferences reports whether the pattern contains a backreference to a
// declared group.
func (r *Result) Backreferences() bool { return r.backrefs }

// Pos returns the cursor position at which compilation stopped.
func (r *Result) Pos() int { return r.pos }

// Pattern returns the pattern body that was compiled.
func (r *Result) Pattern() string { return r.pattern }

// Flags returns the flags of a /pattern/flags literal. They are recorded
// but not applied.
func (r *Result) Flags() string { return r.flags }
