package compiler

import (
	"strings"

	"github.com/coregx/symregex/smt"
)

// Character sets. The alphabet the compiler reasons about is 0x00-0xFF;
// literals outside it are still accepted but negated sets never contain
// them.

func anyChar(b smt.Backend) smt.Term {
	return b.ReRange(0x00, 0xff)
}

// dotChar is any character except '\n'.
func dotChar(b smt.Backend) smt.Term {
	return b.ReUnion(b.ReRange(0x00, 0x09), b.ReRange(0x0b, 0xff))
}

func digitChar(b smt.Backend) smt.Term {
	return b.ReRange('0', '9')
}

func wordChar(b smt.Backend) smt.Term {
	return unionOf(b,
		b.ReRange('a', 'z'),
		b.ReRange('A', 'Z'),
		digitChar(b),
		literal(b, "_"),
	)
}

// spaceChar covers '\t', '\n', '\v', '\f', '\r' and ' '.
func spaceChar(b smt.Backend) smt.Term {
	return b.ReUnion(b.ReRange('\t', '\r'), literal(b, " "))
}

// negate returns the single characters not in set.
func negate(b smt.Backend, set smt.Term) smt.Term {
	return b.ReIntersect(anyChar(b), b.ReComplement(set))
}

func anyString(b smt.Backend) smt.Term {
	return b.ReStar(anyChar(b))
}

func epsilon(b smt.Backend) smt.Term {
	return literal(b, "")
}

func literal(b smt.Backend, s string) smt.Term {
	return b.ReString(b.String(s))
}

func unionOf(b smt.Backend, sets ...smt.Term) smt.Term {
	if len(sets) == 0 {
		return b.ReEmpty()
	}
	u := sets[0]
	for _, s := range sets[1:] {
		u = b.ReUnion(u, s)
	}
	return u
}

// classEscape returns the set for \d \D \w \W \s \S.
func classEscape(b smt.Backend, c rune) smt.Term {
	switch c {
	case 'd':
		return digitChar(b)
	case 'D':
		return negate(b, digitChar(b))
	case 'w':
		return wordChar(b)
	case 'W':
		return negate(b, wordChar(b))
	case 's':
		return spaceChar(b)
	default:
		return negate(b, spaceChar(b))
	}
}

func isClassEscape(c rune) bool {
	return strings.ContainsRune("dDwWsS", c)
}

func isAlnum(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isQuantifierStart(r rune) bool {
	return r == '*' || r == '+' || r == '?' || r == '{'
}

func hexValue(r rune) (rune, bool) {
	switch {
	case r >= '0' && r <= '9':
		return r - '0', true
	case r >= 'a' && r <= 'f':
		return r - 'a' + 10, true
	case r >= 'A' && r <= 'F':
		return r - 'A' + 10, true
	}
	return 0, false
}

// parseLiteral consumes one character, or a run of alphanumerics that no
// quantifier applies to, and returns its literal language.
func (p *parser) parseLiteral() atom {
	first := p.cur.Next()
	if !isAlnum(first) {
		return atom{lang: literal(p.b, string(first))}
	}
	var sb strings.Builder
	sb.WriteRune(first)
	for {
		r, ok := p.cur.Current()
		if !ok || !isAlnum(r) {
			break
		}
		if next, ok := p.cur.Peek(1); ok && isQuantifierStart(next) {
			break
		}
		sb.WriteRune(p.cur.Next())
	}
	return atom{lang: literal(p.b, sb.String())}
}

// parseEscape handles an escape outside a character class. The cursor is
// on the backslash.
func (p *parser) parseEscape() (atom, error) {
	start := p.cur.Pos()
	p.cur.Next()
	c, ok := p.cur.Current()
	if !ok {
		return atom{}, p.errorf(ErrSyntax, start, `\ at end of pattern`)
	}
	p.cur.Next()

	switch {
	case isClassEscape(c):
		return atom{lang: classEscape(p.b, c)}, nil
	case c == 'b':
		return p.mark(markWordBoundary, p.cur.Pos(), ""), nil
	case c == 'B':
		return p.mark(markNonWordBoundary, p.cur.Pos(), ""), nil
	case c >= '1' && c <= '9':
		return p.backreference(int(c - '0')), nil
	}

	r, err := p.charEscape(c, start)
	if err != nil {
		return atom{}, err
	}
	return atom{lang: literal(p.b, string(r))}, nil
}

// charEscape decodes the escape whose letter c was just consumed. It is
// shared by atoms and character classes.
func (p *parser) charEscape(c rune, start int) (rune, error) {
	switch c {
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'v':
		return '\v', nil
	case 'f':
		return '\f', nil
	case '0':
		return 0, nil
	case 'x':
		if r, ok := p.readHex(2); ok {
			return r, nil
		}
		return 0, p.errorf(ErrSyntax, start, `invalid \x escape`)
	case 'u':
		return p.unicodeEscape(start)
	}
	if isAlnum(c) {
		return 0, p.errorf(ErrUnsupported, start, `unsupported escape \%c`, c)
	}
	return c, nil
}

func (p *parser) unicodeEscape(start int) (rune, error) {
	if !p.cur.Is('{') {
		if r, ok := p.readHex(4); ok {
			return r, nil
		}
		return 0, p.errorf(ErrSyntax, start, `invalid \u escape`)
	}
	p.cur.Next()
	var v rune
	n := 0
	for !p.cur.Is('}') {
		r, ok := p.cur.Current()
		d, isHex := hexValue(r)
		if !ok || !isHex || n == 6 {
			return 0, p.errorf(ErrSyntax, start, `invalid \u{...} escape`)
		}
		v = v<<4 | d
		n++
		p.cur.Next()
	}
	p.cur.Next()
	if n == 0 || v > 0x10ffff {
		return 0, p.errorf(ErrSyntax, start, `invalid \u{...} escape`)
	}
	return v, nil
}

// readHex consumes exactly n hex digits. On failure nothing is consumed.
func (p *parser) readHex(n int) (rune, bool) {
	var v rune
	for i := range n {
		r, ok := p.cur.Peek(i)
		d, isHex := hexValue(r)
		if !ok || !isHex {
			return 0, false
		}
		v = v<<4 | d
	}
	p.cur.Advance(n)
	return v, true
}

// backreference refers to capture slot idx. A group that is not yet
// declared or still open matches the empty string.
func (p *parser) backreference(idx int) atom {
	if idx < len(p.slots) && p.slots[idx].closed {
		p.backrefs = true
		return atom{lang: p.slots[idx].lang, text: p.slots[idx].text}
	}
	p.s.log.Debug("backreference to undeclared or open group matches empty",
		"group", idx, "pos", p.cur.Pos())
	return atom{lang: epsilon(p.b)}
}
