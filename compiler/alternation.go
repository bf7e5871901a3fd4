package compiler

import "github.com/coregx/symregex/smt"

// parseAlternation compiles "left|right" into slot dst.
//
// Each branch is compiled against an empty slot so its text can be told
// apart from what dst held before (the prefix). Slots opened by either
// branch become optional, and a fresh choice variable c selects one side:
//
//	(c = left  ∧ leftSlots = leftOrig   ∧ rightSlots = "") ∨
//	(c = right ∧ rightSlots = rightOrig ∧ leftSlots = "")
//
// dst then holds prefix ++ c. Alternatives nest to the right.
func (p *parser) parseAlternation(dst int) (smt.Term, error) {
	prefix := p.slots[dst].text
	first := len(p.slots)

	p.slots[dst].text = p.b.String("")
	left, err := p.parseConcat(dst)
	if err != nil {
		return nil, err
	}
	if !p.cur.Is('|') {
		p.slots[dst].text = p.b.Concat(prefix, p.slots[dst].text)
		return left, nil
	}
	p.cur.Next()
	leftText := p.slots[dst].text
	mid := len(p.slots)

	p.slots[dst].text = p.b.String("")
	right, err := p.parseAlternation(dst)
	if err != nil {
		return nil, err
	}
	rightText := p.slots[dst].text
	end := len(p.slots)

	orig := p.texts(first, end)
	p.makeOptional(first, end)

	c := p.s.fresh("choice")
	p.assert(p.b.Or(
		p.b.And(p.b.Eq(c, leftText), p.pin(first, mid, orig[:mid-first]), p.clear(mid, end)),
		p.b.And(p.b.Eq(c, rightText), p.pin(mid, end, orig[mid-first:]), p.clear(first, mid)),
	))
	p.slots[dst].text = p.b.Concat(prefix, c)
	return p.b.ReUnion(left, right), nil
}

// texts snapshots slots [from, to).
func (p *parser) texts(from, to int) []smt.Term {
	out := make([]smt.Term, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, p.slots[i].text)
	}
	return out
}

// pin equates slots [from, to) to orig, their values before they became
// optional.
func (p *parser) pin(from, to int, orig []smt.Term) smt.Term {
	eqs := make([]smt.Term, 0, to-from)
	for i := from; i < to; i++ {
		eqs = append(eqs, p.b.Eq(p.slots[i].text, orig[i-from]))
	}
	return p.b.And(eqs...)
}

// clear forces slots [from, to) to the empty string.
func (p *parser) clear(from, to int) smt.Term {
	eqs := make([]smt.Term, 0, to-from)
	for i := from; i < to; i++ {
		eqs = append(eqs, p.b.Eq(p.slots[i].text, p.b.String("")))
	}
	return p.b.And(eqs...)
}
