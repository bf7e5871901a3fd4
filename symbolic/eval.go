package symbolic

import (
	"fmt"
	"unicode/utf8"

	"github.com/coregx/symregex/smt"
)

// Model assigns string values to variables by name.
type Model map[string]string

// binding resolves a variable to its value; ok is false when it is unbound.
type binding func(v *Term) (string, bool)

func (m Model) lookup(v *Term) (string, bool) {
	s, ok := m[v.str]
	return s, ok
}

// Value evaluates a string term under m. It fails if the term mentions a
// variable m does not bind.
func (b *Backend) Value(t smt.Term, m Model) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.evalString(unwrap(t), m.lookup)
	if !ok {
		return "", fmt.Errorf("symbolic: %s is not bound by the model", t)
	}
	return s, nil
}

// IntValue evaluates an integer term under m.
func (b *Backend) IntValue(t smt.Term, m Model) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, ok := b.evalInt(unwrap(t), m.lookup)
	if !ok {
		return 0, fmt.Errorf("symbolic: %s is not bound by the model", t)
	}
	return n, nil
}

// Holds reports whether every constraint is true under m. Constraints that
// mention unbound variables count as not holding.
func (b *Backend) Holds(constraints []smt.Term, m Model) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range constraints {
		if v, known := b.evalBool(unwrap(c), m.lookup); !known || !v {
			return false
		}
	}
	return true
}

func (b *Backend) evalString(t *Term, env binding) (string, bool) {
	switch t.kind {
	case KindString:
		return t.str, true
	case KindVar:
		return env(t)
	case KindConcat:
		var out []byte
		for _, a := range t.args {
			s, ok := b.evalString(a, env)
			if !ok {
				return "", false
			}
			out = append(out, s...)
		}
		return string(out), true
	}
	panic(fmt.Sprintf("symbolic: %v is not a string term", t.kind))
}

func (b *Backend) evalInt(t *Term, env binding) (int, bool) {
	switch t.kind {
	case KindInt:
		return t.n, true
	case KindLength:
		s, ok := b.evalString(t.args[0], env)
		if !ok {
			return 0, false
		}
		return utf8.RuneCountInString(s), true
	}
	panic(fmt.Sprintf("symbolic: %v is not an integer term", t.kind))
}

// evalBool evaluates a constraint in three-valued logic: known is false when
// the outcome depends on unbound variables.
func (b *Backend) evalBool(t *Term, env binding) (value, known bool) {
	switch t.kind {
	case KindTrue:
		return true, true
	case KindFalse:
		return false, true
	case KindNot:
		v, k := b.evalBool(t.args[0], env)
		return !v, k
	case KindAnd:
		known = true
		for _, a := range t.args {
			v, k := b.evalBool(a, env)
			if k && !v {
				return false, true
			}
			known = known && k
		}
		return true, known
	case KindOr:
		known = true
		for _, a := range t.args {
			v, k := b.evalBool(a, env)
			if k && v {
				return true, true
			}
			known = known && k
		}
		return false, known
	case KindImplies:
		lv, lk := b.evalBool(t.args[0], env)
		if lk && !lv {
			return true, true
		}
		rv, rk := b.evalBool(t.args[1], env)
		if rk && rv {
			return true, true
		}
		return false, lk && rk
	case KindEq:
		return b.evalEq(t.args[0], t.args[1], env)
	case KindInRe:
		s, ok := b.evalString(t.args[0], env)
		if !ok {
			return false, false
		}
		return b.matches(t.args[1], s), true
	}
	panic(fmt.Sprintf("symbolic: %v is not a boolean term", t.kind))
}

func (b *Backend) evalEq(x, y *Term, env binding) (value, known bool) {
	if isIntKind(x.kind) {
		xv, xk := b.evalInt(x, env)
		yv, yk := b.evalInt(y, env)
		return xv == yv, xk && yk
	}
	xs, xk := b.evalString(x, env)
	ys, yk := b.evalString(y, env)
	return xs == ys, xk && yk
}

func isIntKind(k Kind) bool {
	return k == KindInt || k == KindLength
}
