package compiler

import (
	"strconv"
	"strings"

	"github.com/coregx/symregex/smt"
)

// compileUnit compiles one piece of pattern text: the caller's pattern or
// a sub-pattern derived from it by the assertion pass.
func (s *session) compileUnit(text string) (*Result, error) {
	p := newParser(s, text)
	if err := p.enter(0); err != nil {
		return nil, err
	}
	defer p.leave()
	s.log.Debug("compile unit", "pattern", text, "depth", s.depth)

	lang, _, err := p.parseCapture("")
	if err != nil {
		return nil, err
	}
	if p.cur.More() {
		return nil, p.errorf(ErrSyntax, p.cur.Pos(), "unmatched )")
	}

	b := s.b
	res := &Result{
		implier:    p.slots[0].text,
		startIndex: b.Int(0),
		pattern:    text,
		pos:        p.cur.Pos(),
		backrefs:   p.backrefs,
	}
	if !strings.HasPrefix(text, "^") {
		res.anchoredStart = s.fresh("start")
		res.startIndex = b.Length(res.anchoredStart)
		res.implier = b.Concat(res.anchoredStart, res.implier)
		lang = b.ReConcat(anyString(b), lang)
	}
	if !anchoredAtEnd(text) {
		res.anchoredEnd = s.fresh("end")
		res.implier = b.Concat(res.implier, res.anchoredEnd)
		lang = b.ReConcat(lang, anyString(b))
	}

	if res.language, err = p.applyMarkers(lang); err != nil {
		return nil, err
	}

	// Captures are handed out as fresh variables so callers never see the
	// internal concatenations.
	res.captures = make([]smt.Term, len(p.slots))
	res.names = make([]string, len(p.slots))
	for i, sl := range p.slots {
		v := s.fresh("cap" + strconv.Itoa(i))
		p.assert(b.Eq(v, sl.text))
		res.captures[i] = v
		res.names[i] = sl.name
	}
	res.assertions = p.assertions
	return res, nil
}

// anchoredAtEnd reports whether text ends with an unescaped '$'.
func anchoredAtEnd(text string) bool {
	if !strings.HasSuffix(text, "$") {
		return false
	}
	slashes := 0
	for i := len(text) - 2; i >= 0 && text[i] == '\\'; i-- {
		slashes++
	}
	return slashes%2 == 0
}
