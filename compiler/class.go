package compiler

import "github.com/coregx/symregex/smt"

// parseClass compiles a bracket expression. The cursor is on '['.
func (p *parser) parseClass() (atom, error) {
	start := p.cur.Pos()
	p.cur.Next()
	negated := false
	if p.cur.Is('^') {
		p.cur.Next()
		negated = true
	}

	var parts []smt.Term
	for !p.cur.Is(']') {
		if !p.cur.More() {
			return atom{}, p.errorf(ErrSyntax, start, "missing ] to close character class")
		}
		lo, set, err := p.classAtom()
		if err != nil {
			return atom{}, err
		}
		if set != nil {
			parts = append(parts, set)
			continue
		}
		if !p.cur.Is('-') || !p.hasPeek(1) || p.cur.PeekIs(1, ']') {
			parts = append(parts, literal(p.b, string(lo)))
			continue
		}
		dash := p.cur.Pos()
		p.cur.Next()
		hi, hiSet, err := p.classAtom()
		if err != nil {
			return atom{}, err
		}
		if hiSet != nil {
			// [a-\d] is a, '-' and the digits.
			parts = append(parts, literal(p.b, string(lo)), literal(p.b, "-"), hiSet)
			continue
		}
		if hi < lo {
			return atom{}, p.errorf(ErrSyntax, dash, "range out of order in character class")
		}
		parts = append(parts, p.b.ReRange(lo, hi))
	}
	p.cur.Next()

	set := unionOf(p.b, parts...)
	if negated {
		set = negate(p.b, set)
	}
	return atom{lang: set}, nil
}

func (p *parser) hasPeek(off int) bool {
	_, ok := p.cur.Peek(off)
	return ok
}

// classAtom reads one class member: either a single character or, for a
// class escape, a set.
func (p *parser) classAtom() (rune, smt.Term, error) {
	start := p.cur.Pos()
	r := p.cur.Next()
	if r != '\\' {
		return r, nil, nil
	}
	c, ok := p.cur.Current()
	if !ok {
		return 0, nil, p.errorf(ErrSyntax, start, `\ at end of pattern`)
	}
	p.cur.Next()
	switch {
	case isClassEscape(c):
		return 0, classEscape(p.b, c), nil
	case c == 'b':
		return '\b', nil, nil
	case c == '-':
		return '-', nil, nil
	}
	r, err := p.charEscape(c, start)
	return r, nil, err
}
