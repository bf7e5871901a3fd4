package symbolic

import (
	"fmt"
	"unicode/utf8"

	"github.com/coregx/symregex/smt"
)

// DefaultCacheSize is the default number of derivative transitions cached
// per Backend before the cache is cleared.
const DefaultCacheSize = 1 << 16

// transitionKey identifies the derivative of a language term by one rune.
type transitionKey struct {
	id uint32
	r  rune
}

// transitionCache memoises derivatives and nullability. Because terms are
// hash-consed, a language term plays the role of a DFA state and the cache
// is its lazily built transition table.
//
// The cache is never evicted piecemeal: when it reaches maxEntries it is
// cleared and construction continues from the current state.
type transitionCache struct {
	next       map[transitionKey]*Term
	nullable   map[uint32]bool
	maxEntries int
	clears     int
}

func newTransitionCache(maxEntries int) *transitionCache {
	if maxEntries < 1 {
		maxEntries = DefaultCacheSize
	}
	return &transitionCache{
		next:       make(map[transitionKey]*Term),
		nullable:   make(map[uint32]bool),
		maxEntries: maxEntries,
	}
}

func (c *transitionCache) put(k transitionKey, t *Term) {
	if len(c.next) >= c.maxEntries {
		clear(c.next)
		clear(c.nullable)
		c.clears++
	}
	c.next[k] = t
}

// CacheClears returns how many times the derivative cache has been cleared.
func (b *Backend) CacheClears() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cache.clears
}

// Matches reports whether s is in the language denoted by re.
//
// re must be ground: every ReString operand must be a string literal.
// Matches panics otherwise.
func (b *Backend) Matches(re smt.Term, s string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.matches(unwrap(re), s)
}

func (b *Backend) matches(re *Term, s string) bool {
	cur := re
	for _, r := range s {
		cur = b.deriv(cur, r)
		if cur == b.empty {
			return false
		}
	}
	return b.nullable(cur)
}

func (b *Backend) nullable(t *Term) bool {
	if v, ok := b.cache.nullable[t.id]; ok {
		return v
	}
	var v bool
	switch t.kind {
	case KindReString:
		v = literalOf(t) == ""
	case KindReRange, KindReEmpty:
		v = false
	case KindReFull, KindReStar, KindReOption:
		v = true
	case KindRePlus:
		v = b.nullable(t.args[0])
	case KindReLoop:
		v = t.lo == 0 || b.nullable(t.args[0])
	case KindReComplement:
		v = !b.nullable(t.args[0])
	case KindReUnion:
		for _, a := range t.args {
			if b.nullable(a) {
				v = true
				break
			}
		}
	case KindReIntersect, KindReConcat:
		v = true
		for _, a := range t.args {
			if !b.nullable(a) {
				v = false
				break
			}
		}
	default:
		panic(fmt.Sprintf("symbolic: %v is not a regular-language term", t.kind))
	}
	b.cache.nullable[t.id] = v
	return v
}

// deriv returns the Brzozowski derivative of t with respect to r.
func (b *Backend) deriv(t *Term, r rune) *Term {
	key := transitionKey{id: t.id, r: r}
	if d, ok := b.cache.next[key]; ok {
		return d
	}

	var d *Term
	switch t.kind {
	case KindReString:
		lit := literalOf(t)
		first, size := utf8.DecodeRuneInString(lit)
		if lit != "" && first == r {
			d = b.reString(b.str(lit[size:]))
		} else {
			d = b.empty
		}
	case KindReRange:
		if uint32(r) >= t.lo && uint32(r) <= t.hi {
			d = b.eps
		} else {
			d = b.empty
		}
	case KindReEmpty:
		d = b.empty
	case KindReFull:
		d = b.full
	case KindReUnion:
		ds := make([]*Term, len(t.args))
		for i, a := range t.args {
			ds[i] = b.deriv(a, r)
		}
		d = b.union(ds...)
	case KindReIntersect:
		ds := make([]*Term, len(t.args))
		for i, a := range t.args {
			ds[i] = b.deriv(a, r)
		}
		d = b.intersect(ds...)
	case KindReComplement:
		d = b.complement(b.deriv(t.args[0], r))
	case KindReConcat:
		head, tail := t.args[0], b.reConcat(t.args[1:]...)
		d = b.reConcat(b.deriv(head, r), tail)
		if b.nullable(head) {
			d = b.union(d, b.deriv(tail, r))
		}
	case KindReStar:
		d = b.reConcat(b.deriv(t.args[0], r), t)
	case KindRePlus:
		d = b.reConcat(b.deriv(t.args[0], r), b.star(t.args[0]))
	case KindReOption:
		d = b.deriv(t.args[0], r)
	case KindReLoop:
		lo := t.lo
		if lo > 0 {
			lo--
		}
		d = b.reConcat(b.deriv(t.args[0], r), b.loop(t.args[0], lo, t.hi-1))
	default:
		panic(fmt.Sprintf("symbolic: %v is not a regular-language term", t.kind))
	}

	b.cache.put(key, d)
	return d
}

func literalOf(re *Term) string {
	s := re.args[0]
	if s.kind != KindString {
		panic("symbolic: membership test on a non-ground language: " + re.String())
	}
	return s.str
}
