package symbolic

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/coregx/symregex/smt"
)

// Backend builds hash-consed terms and implements smt.Backend.
//
// A Backend is safe for concurrent use. Terms from different Backends must
// not be mixed; doing so panics.
type Backend struct {
	mu     sync.Mutex
	terms  map[termKey]*Term
	nextID uint32
	cache  *transitionCache

	empty  *Term // ReEmpty
	full   *Term // ReFull
	eps    *Term // ReString("")
	emptyS *Term // String("")
	trueT  *Term
	falseT *Term
}

var _ smt.Backend = (*Backend)(nil)

// New creates a Backend with the default transition cache size.
func New() *Backend {
	return NewWithCacheSize(DefaultCacheSize)
}

// NewWithCacheSize creates a Backend whose derivative cache holds at most
// maxEntries transitions before it is cleared.
func NewWithCacheSize(maxEntries int) *Backend {
	b := &Backend{
		terms: make(map[termKey]*Term),
		cache: newTransitionCache(maxEntries),
	}
	b.empty = b.mk(KindReEmpty, "", 0, 0, 0)
	b.full = b.mk(KindReFull, "", 0, 0, 0)
	b.emptyS = b.mk(KindString, "", 0, 0, 0)
	b.eps = b.mk(KindReString, "", 0, 0, 0, b.emptyS)
	b.trueT = b.mk(KindTrue, "", 0, 0, 0)
	b.falseT = b.mk(KindFalse, "", 0, 0, 0)
	return b
}

// Len returns the number of distinct terms built so far.
func (b *Backend) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.terms)
}

// mk interns a term. Callers must hold b.mu, except during New.
func (b *Backend) mk(kind Kind, str string, n int, lo, hi uint32, args ...*Term) *Term {
	key := keyOf(kind, str, n, lo, hi, args)
	if t, ok := b.terms[key]; ok {
		return t
	}
	t := &Term{
		id:   b.nextID,
		kind: kind,
		str:  str,
		n:    n,
		lo:   lo,
		hi:   hi,
		args: args,
	}
	b.nextID++
	b.terms[key] = t
	return t
}

// unwrap converts an smt.Term produced by this package.
func unwrap(t smt.Term) *Term {
	st, ok := t.(*Term)
	if !ok || st == nil {
		panic(fmt.Sprintf("symbolic: foreign term %T", t))
	}
	return st
}

func unwrapAll(ts []smt.Term) []*Term {
	out := make([]*Term, len(ts))
	for i, t := range ts {
		out[i] = unwrap(t)
	}
	return out
}

// StringVar implements smt.Backend.
func (b *Backend) StringVar(name string) smt.Term {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mk(KindVar, name, 0, 0, 0)
}

// String implements smt.Backend.
func (b *Backend) String(s string) smt.Term {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.str(s)
}

func (b *Backend) str(s string) *Term {
	return b.mk(KindString, s, 0, 0, 0)
}

// Int implements smt.Backend.
func (b *Backend) Int(n int) smt.Term {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mk(KindInt, "", n, 0, 0)
}

// Concat implements smt.Backend. Nested concatenations are flattened,
// empty literals dropped and adjacent literals merged.
func (b *Backend) Concat(parts ...smt.Term) smt.Term {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.concat(unwrapAll(parts))
}

func (b *Backend) concat(parts []*Term) *Term {
	var flat []*Term
	var push func(t *Term)
	push = func(t *Term) {
		switch {
		case t.kind == KindConcat:
			for _, a := range t.args {
				push(a)
			}
		case t.kind == KindString && t.str == "":
		case t.kind == KindString && len(flat) > 0 && flat[len(flat)-1].kind == KindString:
			flat[len(flat)-1] = b.str(flat[len(flat)-1].str + t.str)
		default:
			flat = append(flat, t)
		}
	}
	for _, p := range parts {
		push(p)
	}
	switch len(flat) {
	case 0:
		return b.emptyS
	case 1:
		return flat[0]
	}
	return b.mk(KindConcat, "", 0, 0, 0, flat...)
}

// Length implements smt.Backend.
func (b *Backend) Length(s smt.Term) smt.Term {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mk(KindLength, "", 0, 0, 0, unwrap(s))
}

// InRe implements smt.Backend.
func (b *Backend) InRe(s, re smt.Term) smt.Term {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mk(KindInRe, "", 0, 0, 0, unwrap(s), unwrap(re))
}

// ReString implements smt.Backend.
func (b *Backend) ReString(s smt.Term) smt.Term {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reString(unwrap(s))
}

func (b *Backend) reString(s *Term) *Term {
	return b.mk(KindReString, "", 0, 0, 0, s)
}

// ReRange implements smt.Backend. An inverted range is the empty language.
func (b *Backend) ReRange(lo, hi rune) smt.Term {
	b.mu.Lock()
	defer b.mu.Unlock()
	if lo > hi || lo < 0 {
		return b.empty
	}
	return b.mk(KindReRange, "", 0, uint32(lo), uint32(hi))
}

// ReUnion implements smt.Backend.
func (b *Backend) ReUnion(x, y smt.Term) smt.Term {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.union(unwrap(x), unwrap(y))
}

// union flattens, drops the empty language and orders operands by ID so
// that union is associative, commutative and idempotent on term identity.
func (b *Backend) union(ts ...*Term) *Term {
	set := b.flatSet(KindReUnion, ts, b.empty)
	if slices.Contains(set, b.full) {
		return b.full
	}
	switch len(set) {
	case 0:
		return b.empty
	case 1:
		return set[0]
	}
	return b.mk(KindReUnion, "", 0, 0, 0, set...)
}

// ReIntersect implements smt.Backend.
func (b *Backend) ReIntersect(x, y smt.Term) smt.Term {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.intersect(unwrap(x), unwrap(y))
}

func (b *Backend) intersect(ts ...*Term) *Term {
	set := b.flatSet(KindReIntersect, ts, b.full)
	if slices.Contains(set, b.empty) {
		return b.empty
	}
	switch len(set) {
	case 0:
		return b.full
	case 1:
		return set[0]
	}
	return b.mk(KindReIntersect, "", 0, 0, 0, set...)
}

func (b *Backend) flatSet(kind Kind, ts []*Term, unit *Term) []*Term {
	var out []*Term
	var push func(t *Term)
	push = func(t *Term) {
		if t.kind == kind {
			for _, a := range t.args {
				push(a)
			}
			return
		}
		if t == unit {
			return
		}
		out = append(out, t)
	}
	for _, t := range ts {
		push(t)
	}
	slices.SortFunc(out, func(x, y *Term) int {
		return cmp.Compare(x.id, y.id)
	})
	return slices.Compact(out)
}

// ReConcat implements smt.Backend.
func (b *Backend) ReConcat(x, y smt.Term) smt.Term {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reConcat(unwrap(x), unwrap(y))
}

func (b *Backend) reConcat(ts ...*Term) *Term {
	var flat []*Term
	for _, t := range ts {
		switch {
		case t == b.empty:
			return b.empty
		case t == b.eps:
		case t.kind == KindReConcat:
			flat = append(flat, t.args...)
		default:
			flat = append(flat, t)
		}
	}
	switch len(flat) {
	case 0:
		return b.eps
	case 1:
		return flat[0]
	}
	return b.mk(KindReConcat, "", 0, 0, 0, flat...)
}

// ReComplement implements smt.Backend.
func (b *Backend) ReComplement(re smt.Term) smt.Term {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.complement(unwrap(re))
}

func (b *Backend) complement(t *Term) *Term {
	switch {
	case t.kind == KindReComplement:
		return t.args[0]
	case t == b.empty:
		return b.full
	case t == b.full:
		return b.empty
	}
	return b.mk(KindReComplement, "", 0, 0, 0, t)
}

// ReStar implements smt.Backend.
func (b *Backend) ReStar(re smt.Term) smt.Term {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.star(unwrap(re))
}

func (b *Backend) star(t *Term) *Term {
	switch {
	case t.kind == KindReStar:
		return t
	case t == b.eps || t == b.empty:
		return b.eps
	}
	return b.mk(KindReStar, "", 0, 0, 0, t)
}

// RePlus implements smt.Backend.
func (b *Backend) RePlus(re smt.Term) smt.Term {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := unwrap(re)
	if t == b.eps || t == b.empty {
		return t
	}
	return b.mk(KindRePlus, "", 0, 0, 0, t)
}

// ReOption implements smt.Backend.
func (b *Backend) ReOption(re smt.Term) smt.Term {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := unwrap(re)
	if t == b.eps || t == b.empty {
		return b.eps
	}
	return b.mk(KindReOption, "", 0, 0, 0, t)
}

// ReLoop implements smt.Backend. A loop with hi < lo is the empty language.
func (b *Backend) ReLoop(re smt.Term, lo, hi uint32) smt.Term {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loop(unwrap(re), lo, hi)
}

func (b *Backend) loop(t *Term, lo, hi uint32) *Term {
	switch {
	case hi < lo:
		return b.empty
	case hi == 0 || t == b.eps:
		return b.eps
	case lo == 1 && hi == 1:
		return t
	}
	return b.mk(KindReLoop, "", 0, lo, hi, t)
}

// ReEmpty implements smt.Backend.
func (b *Backend) ReEmpty() smt.Term { return b.empty }

// ReFull implements smt.Backend.
func (b *Backend) ReFull() smt.Term { return b.full }

// True implements smt.Backend.
func (b *Backend) True() smt.Term { return b.trueT }

// Eq implements smt.Backend.
func (b *Backend) Eq(x, y smt.Term) smt.Term {
	b.mu.Lock()
	defer b.mu.Unlock()
	tx, ty := unwrap(x), unwrap(y)
	if tx == ty {
		return b.trueT
	}
	return b.mk(KindEq, "", 0, 0, 0, tx, ty)
}

// Not implements smt.Backend.
func (b *Backend) Not(x smt.Term) smt.Term {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := unwrap(x)
	switch {
	case t == b.trueT:
		return b.falseT
	case t == b.falseT:
		return b.trueT
	case t.kind == KindNot:
		return t.args[0]
	}
	return b.mk(KindNot, "", 0, 0, 0, t)
}

// And implements smt.Backend.
func (b *Backend) And(ts ...smt.Term) smt.Term {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.junction(KindAnd, unwrapAll(ts), b.trueT, b.falseT)
}

// Or implements smt.Backend.
func (b *Backend) Or(ts ...smt.Term) smt.Term {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.junction(KindOr, unwrapAll(ts), b.falseT, b.trueT)
}

// junction builds an n-ary And or Or. Operand order is preserved so the
// rendered constraint reads like the code that built it.
func (b *Backend) junction(kind Kind, ts []*Term, unit, zero *Term) *Term {
	var flat []*Term
	for _, t := range ts {
		switch {
		case t == zero:
			return zero
		case t == unit:
		case t.kind == kind:
			flat = append(flat, t.args...)
		default:
			flat = append(flat, t)
		}
	}
	switch len(flat) {
	case 0:
		return unit
	case 1:
		return flat[0]
	}
	return b.mk(kind, "", 0, 0, 0, flat...)
}

// Implies implements smt.Backend.
func (b *Backend) Implies(x, y smt.Term) smt.Term {
	b.mu.Lock()
	defer b.mu.Unlock()
	tx, ty := unwrap(x), unwrap(y)
	switch {
	case tx == b.falseT || ty == b.trueT:
		return b.trueT
	case tx == b.trueT:
		return ty
	}
	return b.mk(KindImplies, "", 0, 0, 0, tx, ty)
}
