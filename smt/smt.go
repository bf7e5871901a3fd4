// Package smt defines the capability interface the pattern compiler needs
// from a constraint solver over strings and regular languages.
//
// The compiler never inspects terms. It only combines them through a Backend
// and hands the results to the caller, who owns the solver, its lifecycle and
// any reference counting the native library requires. Package symbolic
// provides an in-process implementation.
//
// Three sorts of terms flow through the interface:
//   - string terms (variables, literals, concatenations)
//   - regular-language terms over strings
//   - boolean terms (constraints)
//
// plus the integer terms produced by Int and Length. Mixing sorts is a
// programming error; backends may panic on it.
package smt

// Term is an opaque handle to a backend expression.
// String renders the term for diagnostics.
type Term interface {
	String() string
}

// Backend builds terms. Implementations must return terms that stay valid
// for as long as the backend does.
type Backend interface {
	// StringVar returns the string variable with the given name. Two calls
	// with the same name denote the same variable.
	StringVar(name string) Term

	// String returns a string literal.
	String(s string) Term

	// Int returns an integer literal.
	Int(n int) Term

	// Concat concatenates string terms. Concat() is the empty string.
	Concat(parts ...Term) Term

	// Length returns the integer length of a string term.
	Length(s Term) Term

	// InRe is the membership predicate s ∈ re.
	InRe(s, re Term) Term

	// ReString is the language containing exactly the string term s.
	ReString(s Term) Term

	// ReRange is the language of single characters in [lo, hi].
	ReRange(lo, hi rune) Term

	ReUnion(a, b Term) Term
	ReConcat(a, b Term) Term
	ReIntersect(a, b Term) Term

	// ReComplement is the complement relative to all strings.
	ReComplement(re Term) Term

	ReStar(re Term) Term
	RePlus(re Term) Term
	ReOption(re Term) Term

	// ReLoop is between lo and hi repetitions of re, inclusive.
	ReLoop(re Term, lo, hi uint32) Term

	// ReEmpty is the empty language; ReFull is the language of all strings.
	ReEmpty() Term
	ReFull() Term

	True() Term
	Eq(a, b Term) Term
	Not(a Term) Term

	// And and Or accept any number of operands. And() is true and Or() is
	// false.
	And(ts ...Term) Term
	Or(ts ...Term) Term
	Implies(a, b Term) Term
}
