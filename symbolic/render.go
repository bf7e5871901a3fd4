package symbolic

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/coregx/symregex/smt"
)

var opNames = map[Kind]string{
	KindConcat:       "str.++",
	KindLength:       "str.len",
	KindInRe:         "str.in_re",
	KindReString:     "str.to_re",
	KindReUnion:      "re.union",
	KindReConcat:     "re.++",
	KindReIntersect:  "re.inter",
	KindReComplement: "re.comp",
	KindReStar:       "re.*",
	KindRePlus:       "re.+",
	KindReOption:     "re.opt",
	KindEq:           "=",
	KindNot:          "not",
	KindAnd:          "and",
	KindOr:           "or",
	KindImplies:      "=>",
}

func render(sb *strings.Builder, t *Term) {
	switch t.kind {
	case KindString:
		writeStringLiteral(sb, t.str)
	case KindVar:
		writeSymbol(sb, t.str)
	case KindInt:
		if t.n < 0 {
			sb.WriteString("(- ")
			sb.WriteString(strconv.Itoa(-t.n))
			sb.WriteByte(')')
			return
		}
		sb.WriteString(strconv.Itoa(t.n))
	case KindReRange:
		sb.WriteString("(re.range ")
		writeStringLiteral(sb, string(rune(t.lo)))
		sb.WriteByte(' ')
		writeStringLiteral(sb, string(rune(t.hi)))
		sb.WriteByte(')')
	case KindReLoop:
		fmt.Fprintf(sb, "((_ re.loop %d %d) ", t.lo, t.hi)
		render(sb, t.args[0])
		sb.WriteByte(')')
	case KindReEmpty:
		sb.WriteString("re.none")
	case KindReFull:
		sb.WriteString("re.all")
	case KindTrue:
		sb.WriteString("true")
	case KindFalse:
		sb.WriteString("false")
	default:
		sb.WriteByte('(')
		sb.WriteString(opNames[t.kind])
		for _, a := range t.args {
			sb.WriteByte(' ')
			render(sb, a)
		}
		sb.WriteByte(')')
	}
}

// writeStringLiteral writes s as an SMT-LIB 2.6 string literal. Quotes are
// doubled; backslashes and anything outside printable ASCII use \u{...}.
func writeStringLiteral(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"':
			sb.WriteString(`""`)
		case r == '\\' || r < 0x20 || r > 0x7e:
			fmt.Fprintf(sb, `\u{%x}`, r)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
}

func isSimpleSymbol(s string) bool {
	if s == "" || (s[0] >= '0' && s[0] <= '9') {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.IndexByte("~!@$%^&*_-+=<>.?/", c) >= 0:
		default:
			return false
		}
	}
	return true
}

func writeSymbol(sb *strings.Builder, name string) {
	if isSimpleSymbol(name) {
		sb.WriteString(name)
		return
	}
	sb.WriteByte('|')
	sb.WriteString(strings.ReplaceAll(name, "|", "_"))
	sb.WriteByte('|')
}

// Script renders constraints as an SMT-LIB 2.6 script: one declare-const per
// string variable in first-seen order, one assert per constraint, then
// check-sat and get-model.
func (b *Backend) Script(constraints []smt.Term) string {
	terms := unwrapAll(constraints)

	seen := make(map[uint32]bool)
	var vs []*Term
	for _, c := range terms {
		vs = vars(c, seen, vs)
	}

	var sb strings.Builder
	sb.WriteString("(set-logic QF_SLIA)\n")
	for _, v := range vs {
		sb.WriteString("(declare-const ")
		writeSymbol(&sb, v.str)
		sb.WriteString(" String)\n")
	}
	for _, c := range terms {
		sb.WriteString("(assert ")
		render(&sb, c)
		sb.WriteString(")\n")
	}
	sb.WriteString("(check-sat)\n(get-model)\n")
	return sb.String()
}
