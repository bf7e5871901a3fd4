package compiler

import (
	"fmt"

	"github.com/coregx/symregex/internal/conv"
	"github.com/coregx/symregex/internal/cursor"
	"github.com/coregx/symregex/smt"
)

// slot is one capture group of a compile unit. Slot 0 is the whole match.
type slot struct {
	text   smt.Term // string the group captured, built from fillers
	lang   smt.Term // set once the group closes
	name   string
	closed bool
}

// atom is the result of compiling one element of a concatenation.
type atom struct {
	lang smt.Term

	// text, when non-nil, is the string term the atom contributes to the
	// enclosing capture. Otherwise the caller allocates a filler.
	text smt.Term

	group  *groupInfo
	marker bool
}

type groupInfo struct {
	capture bool
	slot    int // capture slot; only when capture
	first   int // first slot opened inside the group
}

// quantifier is {lo,hi}; hi < 0 means unbounded.
type quantifier struct {
	lo, hi int
}

var (
	star   = quantifier{0, -1}
	plus   = quantifier{1, -1}
	option = quantifier{0, 1}
)

func (q quantifier) optional() bool { return q.lo == 0 }

// parser compiles one unit of pattern text.
type parser struct {
	s          *session
	b          smt.Backend
	cur        *cursor.Cursor
	slots      []slot
	assertions []smt.Term
	markers    []marker
	backrefs   bool
}

func newParser(s *session, text string) *parser {
	return &parser{
		s:   s,
		b:   s.b,
		cur: cursor.New(text),
	}
}

func (p *parser) errorf(kind error, pos int, format string, args ...any) error {
	c := cursor.New(p.cur.Text())
	c.Seek(pos)
	return &ParseError{
		Kind:      kind,
		Message:   fmt.Sprintf(format, args...),
		Pos:       c.Pos(),
		Remaining: c.Remaining(),
		Unit:      c.Text(),
	}
}

func (p *parser) assert(t smt.Term) {
	p.assertions = append(p.assertions, t)
}

func (p *parser) appendText(i int, t smt.Term) {
	p.slots[i].text = p.b.Concat(p.slots[i].text, t)
}

// filler returns a fresh variable constrained to lang.
func (p *parser) filler(role string, lang smt.Term) smt.Term {
	f := p.s.fresh(role)
	p.assert(p.b.InRe(f, lang))
	return f
}

// optional returns a fresh variable equal to t or to "".
func (p *parser) optional(t smt.Term) smt.Term {
	o := p.s.fresh("opt")
	p.assert(p.b.Or(p.b.Eq(o, t), p.b.Eq(o, p.b.String(""))))
	return o
}

// makeOptional rewrites slots [from, to) so each may also be empty.
func (p *parser) makeOptional(from, to int) {
	for i := from; i < to; i++ {
		p.slots[i].text = p.optional(p.slots[i].text)
	}
}

// enter accounts for one level of group or sub-compile nesting.
func (p *parser) enter(pos int) error {
	if p.s.depth >= p.s.cfg.MaxRecursionDepth {
		return p.errorf(ErrTooComplex, pos, "nesting exceeds maximum depth %d", p.s.cfg.MaxRecursionDepth)
	}
	p.s.depth++
	return nil
}

func (p *parser) leave() {
	p.s.depth--
}

// parseCapture opens a new slot, compiles a group body into it and
// constrains the captured text to the body's language.
func (p *parser) parseCapture(name string) (smt.Term, int, error) {
	p.slots = append(p.slots, slot{text: p.b.String(""), name: name})
	idx := len(p.slots) - 1
	lang, err := p.parseAlternation(idx)
	if err != nil {
		return nil, 0, err
	}
	p.assert(p.b.InRe(p.slots[idx].text, lang))
	p.slots[idx].lang = lang
	p.slots[idx].closed = true
	return lang, idx, nil
}

// parseConcat compiles atoms up to the next '|' or ')' and appends their
// text to slot dst.
func (p *parser) parseConcat(dst int) (smt.Term, error) {
	var lang smt.Term
	for p.cur.MoreInGroup() {
		if p.cur.Is('^') || p.cur.Is('$') {
			p.cur.Next()
			continue
		}
		a, err := p.parseRepeat(dst)
		if err != nil {
			return nil, err
		}
		text := a.text
		if text == nil {
			text = p.filler("fill", a.lang)
		}
		p.appendText(dst, text)
		if lang == nil {
			lang = a.lang
		} else {
			lang = p.b.ReConcat(lang, a.lang)
		}
	}
	if lang == nil {
		return epsilon(p.b), nil
	}
	return lang, nil
}

// parseRepeat compiles an atom and the quantifier following it, if any.
func (p *parser) parseRepeat(dst int) (atom, error) {
	a, err := p.parseAtom(dst)
	if err != nil {
		return atom{}, err
	}
	q, ok, err := p.parseQuantifier()
	if err != nil || !ok {
		return a, err
	}
	lang := p.quantify(a.lang, q)

	switch {
	case a.group != nil:
		return atom{lang: lang, text: p.repeatGroup(a, q, lang)}, nil
	case a.marker:
		// An assertion that may repeat zero times never applies.
		last := len(p.markers) - 1
		if q.optional() {
			p.markers = p.markers[:last]
		} else {
			p.markers[last].pos = p.cur.Pos()
		}
		return atom{lang: lang, text: a.text, marker: true}, nil
	}
	// A repeated backreference loses its tie to the group.
	return atom{lang: lang}, nil
}

// repeatGroup threads a quantified group's text into the enclosing capture.
// The group's captures keep the value of the last iteration: with t a fresh
// prefix followed by the group text, t must match the whole repetition.
func (p *parser) repeatGroup(a atom, q quantifier, lang smt.Term) smt.Term {
	g := a.group
	text := a.text
	if q.optional() {
		p.makeOptional(g.first, len(p.slots))
		if g.capture {
			text = p.slots[g.slot].text
		} else {
			text = p.optional(text)
		}
	}
	t := p.b.Concat(p.s.fresh("iter"), text)
	p.assert(p.b.InRe(t, lang))
	if q.optional() {
		p.assert(p.b.Implies(p.b.Eq(text, p.b.String("")), p.b.Eq(t, p.b.String(""))))
	}
	return t
}

func (p *parser) parseAtom(dst int) (atom, error) {
	r, _ := p.cur.Current()
	switch r {
	case '(':
		return p.parseGroup(dst)
	case '[':
		return p.parseClass()
	case '\\':
		return p.parseEscape()
	case '.':
		p.cur.Next()
		return atom{lang: dotChar(p.b)}, nil
	case '*', '+', '?':
		return atom{}, p.errorf(ErrSyntax, p.cur.Pos(), "nothing to repeat")
	case '{':
		if p.digitAt(1) {
			return atom{}, p.errorf(ErrSyntax, p.cur.Pos(), "nothing to repeat")
		}
	}
	return p.parseLiteral(), nil
}

func (p *parser) digitAt(off int) bool {
	r, ok := p.cur.Peek(off)
	return ok && isDigit(r)
}

// parseGroup compiles a parenthesised group. The cursor is on '('.
func (p *parser) parseGroup(dst int) (atom, error) {
	open := p.cur.Pos()
	p.cur.Next()

	capture, name := true, ""
	if p.cur.Is('?') {
		r, _ := p.cur.Peek(1)
		switch r {
		case ':':
			p.cur.Advance(2)
			capture = false
		case '=', '!':
			p.cur.Next()
			return p.parseLookahead(open)
		case '<':
			if p.cur.PeekIs(2, '=') || p.cur.PeekIs(2, '!') {
				return atom{}, p.errorf(ErrUnsupported, open, "lookbehind is not supported")
			}
			p.cur.Advance(2)
			var err error
			if name, err = p.parseGroupName(open); err != nil {
				return atom{}, err
			}
		default:
			return atom{}, p.errorf(ErrSyntax, p.cur.Pos()+1, "invalid group: expected ':' after '?'")
		}
	}

	if err := p.enter(open); err != nil {
		return atom{}, err
	}
	defer p.leave()

	info := &groupInfo{capture: capture, first: len(p.slots)}
	var lang, text smt.Term
	if capture {
		var err error
		if lang, info.slot, err = p.parseCapture(name); err != nil {
			return atom{}, err
		}
		text = p.slots[info.slot].text
	} else {
		// Compile into dst with its text set aside so the group's own
		// contribution can be told apart.
		saved := p.slots[dst].text
		p.slots[dst].text = p.b.String("")
		var err error
		if lang, err = p.parseAlternation(dst); err != nil {
			return atom{}, err
		}
		text = p.slots[dst].text
		p.slots[dst].text = saved
	}

	if !p.cur.Is(')') {
		return atom{}, p.errorf(ErrSyntax, p.cur.Pos(), "missing ) to close group opened at position %d", open)
	}
	p.cur.Next()
	return atom{lang: lang, text: text, group: info}, nil
}

// parseGroupName reads "name>" of a (?<name>...) group.
func (p *parser) parseGroupName(open int) (string, error) {
	start := p.cur.Pos()
	for !p.cur.Is('>') {
		r, ok := p.cur.Current()
		valid := ok && (isAlnum(r) || r == '_' || r == '$')
		if !valid || (p.cur.Pos() == start && isDigit(r)) {
			return "", p.errorf(ErrSyntax, open, "invalid capture group name")
		}
		p.cur.Next()
	}
	name := p.cur.Slice(start, p.cur.Pos())
	p.cur.Next()
	if name == "" {
		return "", p.errorf(ErrSyntax, open, "invalid capture group name")
	}
	for _, sl := range p.slots {
		if sl.name == name {
			return "", p.errorf(ErrSyntax, open, "duplicate capture group name %q", name)
		}
	}
	return name, nil
}

// parseQuantifier consumes *, +, ?, {n}, {n,} or {n,m} and an optional
// trailing lazy '?', which has no effect on the language.
func (p *parser) parseQuantifier() (quantifier, bool, error) {
	r, ok := p.cur.Current()
	var q quantifier
	switch {
	case !ok:
		return q, false, nil
	case r == '*':
		p.cur.Next()
		q = star
	case r == '+':
		p.cur.Next()
		q = plus
	case r == '?':
		p.cur.Next()
		q = option
	case r == '{' && p.digitAt(1):
		var err error
		if q, err = p.parseCounted(); err != nil {
			return q, false, err
		}
	default:
		return q, false, nil
	}
	if p.cur.Is('?') {
		p.cur.Next()
	}
	return q, true, nil
}

func (p *parser) parseCounted() (quantifier, error) {
	start := p.cur.Pos()
	p.cur.Next()
	q := quantifier{lo: p.parseCount()}
	q.hi = q.lo
	if p.cur.Is(',') {
		p.cur.Next()
		q.hi = -1
		if p.digitAt(0) {
			q.hi = p.parseCount()
		}
	}
	if !p.cur.Is('}') {
		return q, p.errorf(ErrSyntax, p.cur.Pos(), "missing } to close repetition")
	}
	p.cur.Next()

	limit := p.s.cfg.MaxRepeat
	if q.hi >= 0 && q.hi < q.lo {
		return q, p.errorf(ErrSyntax, start, "numbers out of order in {} quantifier")
	}
	if q.lo > limit || q.hi > limit {
		return q, p.errorf(ErrTooComplex, start, "repetition count exceeds %d", limit)
	}
	return q, nil
}

// parseCount reads a decimal count. Values above MaxRepeat saturate.
func (p *parser) parseCount() int {
	n := 0
	for p.digitAt(0) {
		d := int(p.cur.Next() - '0')
		if n <= p.s.cfg.MaxRepeat {
			n = n*10 + d
		}
	}
	return n
}

func (p *parser) quantify(lang smt.Term, q quantifier) smt.Term {
	switch {
	case q == star:
		return p.b.ReStar(lang)
	case q == plus:
		return p.b.RePlus(lang)
	case q == option:
		return p.b.ReOption(lang)
	case q.hi < 0:
		lo := conv.IntToUint32(q.lo)
		return p.b.ReConcat(p.b.ReLoop(lang, lo, lo), p.b.ReStar(lang))
	}
	return p.b.ReLoop(lang, conv.IntToUint32(q.lo), conv.IntToUint32(q.hi))
}
