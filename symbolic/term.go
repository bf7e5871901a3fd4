// Package symbolic is an in-process implementation of smt.Backend.
//
// Terms are hash-consed: structurally equal terms built by one Backend are
// the same pointer, so equality checks and memo tables are keyed by term ID.
// Besides building terms the package can
//   - render them as SMT-LIB 2.6 (Term.String, Backend.Script)
//   - decide membership of a concrete string in a ground regular-language
//     term using Brzozowski derivatives (Backend.Matches)
//   - evaluate constraints under an assignment (Backend.Holds)
//   - search a finite universe of strings for a model (Backend.FindModel)
//
// It is not a decision procedure for strings; FindModel only explores the
// universe it is given. It exists so compiled patterns can be checked,
// dumped and exercised without a native solver.
package symbolic

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the operator of a Term.
type Kind uint8

const (
	KindString Kind = iota
	KindVar
	KindInt
	KindConcat
	KindLength
	KindInRe
	KindReString
	KindReRange
	KindReUnion
	KindReConcat
	KindReIntersect
	KindReComplement
	KindReStar
	KindRePlus
	KindReOption
	KindReLoop
	KindReEmpty
	KindReFull
	KindTrue
	KindFalse
	KindEq
	KindNot
	KindAnd
	KindOr
	KindImplies
)

var kindNames = [...]string{
	KindString:       "String",
	KindVar:          "Var",
	KindInt:          "Int",
	KindConcat:       "Concat",
	KindLength:       "Length",
	KindInRe:         "InRe",
	KindReString:     "ReString",
	KindReRange:      "ReRange",
	KindReUnion:      "ReUnion",
	KindReConcat:     "ReConcat",
	KindReIntersect:  "ReIntersect",
	KindReComplement: "ReComplement",
	KindReStar:       "ReStar",
	KindRePlus:       "RePlus",
	KindReOption:     "ReOption",
	KindReLoop:       "ReLoop",
	KindReEmpty:      "ReEmpty",
	KindReFull:       "ReFull",
	KindTrue:         "True",
	KindFalse:        "False",
	KindEq:           "Eq",
	KindNot:          "Not",
	KindAnd:          "And",
	KindOr:           "Or",
	KindImplies:      "Implies",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// IsRegex reports whether terms of this kind denote regular languages.
func (k Kind) IsRegex() bool {
	return k >= KindReString && k <= KindReFull
}

// Term is an immutable node of the term DAG.
type Term struct {
	id   uint32
	kind Kind
	str  string // string literal value or variable name
	n    int    // integer literal
	lo   uint32 // range start rune or loop minimum
	hi   uint32 // range end rune or loop maximum
	args []*Term
}

// ID returns the term's identifier, unique within its Backend.
func (t *Term) ID() uint32 { return t.id }

// Kind returns the operator of the term.
func (t *Term) Kind() Kind { return t.kind }

// Args returns the operands. The slice must not be modified.
func (t *Term) Args() []*Term { return t.args }

// Name returns the name of a variable, or "" for other kinds.
func (t *Term) Name() string {
	if t.kind != KindVar {
		return ""
	}
	return t.str
}

// Literal returns the value of a string literal and true, or "" and false.
func (t *Term) Literal() (string, bool) {
	if t.kind != KindString {
		return "", false
	}
	return t.str, true
}

// Bounds returns the loop bounds of a KindReLoop term.
func (t *Term) Bounds() (lo, hi uint32) {
	return t.lo, t.hi
}

// String renders the term in SMT-LIB 2.6 syntax.
func (t *Term) String() string {
	var sb strings.Builder
	render(&sb, t)
	return sb.String()
}

// termKey is the structural identity used for hash-consing.
type termKey struct {
	kind Kind
	str  string
	n    int
	lo   uint32
	hi   uint32
	args string
}

func keyOf(kind Kind, str string, n int, lo, hi uint32, args []*Term) termKey {
	var sb strings.Builder
	for i, a := range args {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(a.id), 10))
	}
	return termKey{kind: kind, str: str, n: n, lo: lo, hi: hi, args: sb.String()}
}

// vars appends the distinct variables reachable from t to out, in first-seen
// order.
func vars(t *Term, seen map[uint32]bool, out []*Term) []*Term {
	if seen[t.id] {
		return out
	}
	seen[t.id] = true
	if t.kind == KindVar {
		return append(out, t)
	}
	for _, a := range t.args {
		out = vars(a, seen, out)
	}
	return out
}
