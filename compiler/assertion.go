package compiler

import "github.com/coregx/symregex/smt"

type markerKind uint8

const (
	markWordBoundary markerKind = iota
	markNonWordBoundary
	markLookahead
	markNegativeLookahead
)

// String returns the pattern syntax of the assertion.
func (k markerKind) String() string {
	switch k {
	case markWordBoundary:
		return `\b`
	case markNonWordBoundary:
		return `\B`
	case markLookahead:
		return "(?="
	default:
		return "(?!"
	}
}

// marker records a zero-width assertion found by the primary pass.
// pos is the rune offset just past the assertion, where the unit is split
// into lhs and rhs. body is the lookahead expression.
type marker struct {
	kind markerKind
	pos  int
	body string
}

// mark records an assertion; it contributes ε to the language and nothing
// to the captures.
func (p *parser) mark(kind markerKind, pos int, body string) atom {
	p.markers = append(p.markers, marker{kind: kind, pos: pos, body: body})
	p.s.log.Debug("zero-width assertion", "kind", kind.String(), "pos", pos)
	return atom{lang: epsilon(p.b), text: p.b.String(""), marker: true}
}

// parseLookahead records a (?=...) or (?!...) group. The cursor is on the
// '=' or '!' and open is the position of '('.
func (p *parser) parseLookahead(open int) (atom, error) {
	kind := markLookahead
	if p.cur.Is('!') {
		kind = markNegativeLookahead
	}
	rs := []rune(p.cur.Text())
	from := p.cur.Pos() + 1
	end := closingParen(rs, scanLive(rs), from)
	if end < 0 {
		return atom{}, p.errorf(ErrSyntax, open, "missing ) to close lookahead")
	}
	p.cur.Seek(end + 1)
	return p.mark(kind, end+1, string(rs[from:end])), nil
}

// applyMarkers intersects lang with the constraint each recorded assertion
// places on the split of the unit text at the assertion's position.
//
// The text before the split is desugared and compiled as lhs+"$", the text
// after it as "^"+rhs, so their languages describe every way the whole
// pattern can match on either side of the split.
func (p *parser) applyMarkers(lang smt.Term) (smt.Term, error) {
	if len(p.markers) == 0 {
		return lang, nil
	}
	rs := []rune(p.cur.Text())
	for _, m := range p.markers {
		lhs, err := p.s.compileUnit(desugar(string(rs[:m.pos])) + "$")
		if err != nil {
			return nil, err
		}
		rhs, err := p.s.compileUnit("^" + desugar(string(rs[m.pos:])))
		if err != nil {
			return nil, err
		}

		var split smt.Term
		switch m.kind {
		case markWordBoundary, markNonWordBoundary:
			split = p.boundary(m.kind, lhs.language, rhs.language)
		default:
			la, err := p.s.compileUnit("^" + m.body + "$")
			if err != nil {
				return nil, err
			}
			ahead := p.b.ReConcat(la.language, anyString(p.b))
			if m.kind == markNegativeLookahead {
				ahead = p.b.ReComplement(ahead)
			}
			split = p.b.ReConcat(lhs.language, p.b.ReIntersect(rhs.language, ahead))
		}
		lang = p.b.ReIntersect(lang, split)
	}
	return lang, nil
}

// boundary returns the strings that split into lhs·rhs with a word
// boundary (\b) or no word boundary (\B) between the two parts.
func (p *parser) boundary(kind markerKind, lhs, rhs smt.Term) smt.Term {
	b := p.b
	all := anyString(b)
	w := wordChar(b)
	n := negate(b, w)

	endsWord := b.ReConcat(all, w)
	endsNonWord := b.ReUnion(b.ReConcat(all, n), epsilon(b))
	startsWord := b.ReConcat(w, all)
	startsNonWord := b.ReUnion(b.ReConcat(n, all), epsilon(b))

	side := func(l, r smt.Term) smt.Term {
		return b.ReConcat(b.ReIntersect(lhs, l), b.ReIntersect(rhs, r))
	}
	if kind == markWordBoundary {
		return b.ReUnion(side(endsNonWord, startsWord), side(endsWord, startsNonWord))
	}
	return b.ReUnion(side(endsWord, startsWord), side(endsNonWord, startsNonWord))
}
