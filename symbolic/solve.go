package symbolic

import (
	"github.com/coregx/symregex/internal/conv"
	"github.com/coregx/symregex/internal/sparse"
	"github.com/coregx/symregex/smt"
)

// DefaultSearchLimit bounds the number of bindings FindModel tries.
const DefaultSearchLimit = 1_000_000

// FindModel searches for a model of constraints.
//
// A variable that appears as one side of an equation whose other side is
// already determined takes that value; a variable constrained by a
// disjunction of such equations tries each alternative. Every other variable
// ranges over universe. The search is exhaustive up to DefaultSearchLimit
// bindings, so a false result means no model exists within the universe, or
// that the limit was hit.
func (b *Backend) FindModel(constraints []smt.Term, universe []string) (Model, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := newSearch(b, unwrapAll(constraints), universe)
	if !s.run() {
		return nil, false
	}
	m := make(Model, len(s.vars))
	for i, v := range s.vars {
		m[v.str] = s.values[i]
	}
	return m, true
}

type search struct {
	b        *Backend
	cons     []*Term
	universe []string

	vars    []*Term
	index   map[uint32]int // variable term ID -> position in vars
	varCons [][]int        // variable -> constraints mentioning it
	values  []string
	bound   *sparse.SparseSet
	budget  int
}

func newSearch(b *Backend, cons []*Term, universe []string) *search {
	s := &search{
		b:        b,
		cons:     cons,
		universe: universe,
		index:    make(map[uint32]int),
		budget:   DefaultSearchLimit,
	}
	for ci, c := range cons {
		for _, v := range vars(c, make(map[uint32]bool), nil) {
			i, ok := s.index[v.id]
			if !ok {
				i = len(s.vars)
				s.index[v.id] = i
				s.vars = append(s.vars, v)
				s.varCons = append(s.varCons, nil)
			}
			s.varCons[i] = append(s.varCons[i], ci)
		}
	}
	s.values = make([]string, len(s.vars))
	s.bound = sparse.NewSparseSet(conv.IntToUint32(len(s.vars)))
	return s
}

func (s *search) env(v *Term) (string, bool) {
	i, ok := s.index[v.id]
	if !ok || !s.bound.Contains(conv.IntToUint32(i)) {
		return "", false
	}
	return s.values[i], true
}

func (s *search) run() bool {
	// Constraints without variables are decided up front.
	for _, c := range s.cons {
		if v, known := s.b.evalBool(c, s.env); known && !v {
			return false
		}
	}
	return s.step()
}

func (s *search) step() bool {
	if s.bound.Len() == len(s.vars) {
		return true
	}
	v, candidates := s.pick()
	id := conv.IntToUint32(v)
	for _, val := range candidates {
		if s.budget == 0 {
			return false
		}
		s.budget--

		s.values[v] = val
		s.bound.Insert(id)
		if s.consistent(v) && s.step() {
			return true
		}
		s.bound.Remove(id)
	}
	return false
}

// pick chooses the next variable to bind: one fixed by an equation first,
// then one restricted by a disjunction of equations, then the first unbound
// variable over the whole universe.
func (s *search) pick() (int, []string) {
	choice, choiceVals := -1, []string(nil)
	first := -1
	for i := range s.vars {
		if s.bound.Contains(conv.IntToUint32(i)) {
			continue
		}
		if first < 0 {
			first = i
		}
		for _, ci := range s.varCons[i] {
			vals, ok := s.forced(s.cons[ci], s.vars[i])
			if !ok {
				continue
			}
			if len(vals) == 1 {
				return i, vals
			}
			if choice < 0 {
				choice, choiceVals = i, vals
			}
		}
	}
	if choice >= 0 {
		return choice, choiceVals
	}
	return first, s.universe
}

// forced returns the values c allows for v when c is v = e, e = v or a
// disjunction of such equations with every e already determined. The
// disjuncts may be conjunctions led by the equation.
func (s *search) forced(c, v *Term) ([]string, bool) {
	switch c.kind {
	case KindEq:
		if val, ok := s.definition(c, v); ok {
			return []string{val}, true
		}
	case KindOr:
		vals := make([]string, 0, len(c.args))
		for _, a := range c.args {
			// (or (and (= v e1) ...) (and (= v e2) ...)) guards on its first conjunct.
			if a.kind == KindAnd {
				a = a.args[0]
			}
			if a.kind != KindEq {
				return nil, false
			}
			val, ok := s.definition(a, v)
			if !ok {
				return nil, false
			}
			vals = append(vals, val)
		}
		return vals, true
	}
	return nil, false
}

func (s *search) definition(eq, v *Term) (string, bool) {
	x, y := eq.args[0], eq.args[1]
	if isIntKind(x.kind) {
		return "", false
	}
	switch v {
	case x:
		return s.b.evalString(y, s.env)
	case y:
		return s.b.evalString(x, s.env)
	}
	return "", false
}

// consistent reports whether no constraint mentioning v is already false.
func (s *search) consistent(v int) bool {
	for _, ci := range s.varCons[v] {
		if val, known := s.b.evalBool(s.cons[ci], s.env); known && !val {
			return false
		}
	}
	return true
}
