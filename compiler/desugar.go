package compiler

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/coregx/ahocorasick"
)

// Zero-width constructs removed by desugar.
var markerPatterns = []string{`(?=`, `(?!`, `\b`, `\B`}

var markerAutomaton = sync.OnceValues(func() (*ahocorasick.Automaton, error) {
	builder := ahocorasick.NewBuilder()
	for _, m := range markerPatterns {
		builder.AddPattern([]byte(m))
	}
	return builder.Build()
})

// desugar rewrites a fragment of pattern text into a self-contained pattern
// without zero-width assertions or capturing groups:
//   - lookahead groups and \b, \B (with any quantifier on them) are removed
//   - "(" and "(?<name>" become "(?:"
//   - a ")" without its "(" gets a "(?:" prepended; a "(" left open gets a
//     ")" appended
//
// Escapes and character classes are respected throughout.
func desugar(s string) string {
	return normalizeGroups(stripMarkers(s))
}

// scanLive reports for each rune whether it is syntax: not escaped and not
// inside a character class. A backslash introducing an escape is live, the
// escaped rune is not.
func scanLive(rs []rune) []bool {
	live := make([]bool, len(rs))
	inClass := false
	for i := 0; i < len(rs); i++ {
		switch {
		case rs[i] == '\\':
			live[i] = !inClass
			i++
		case inClass:
			if rs[i] == ']' {
				inClass = false
			}
		case rs[i] == '[':
			inClass = true
		default:
			live[i] = true
		}
	}
	return live
}

func stripMarkers(s string) string {
	auto, err := markerAutomaton()
	if err != nil {
		// Only reachable if the fixed pattern set fails to build.
		panic("compiler: marker automaton: " + err.Error())
	}
	bs := []byte(s)
	rs := []rune(s)
	offs := runeOffsets(s)
	live := scanLive(rs)

	var sb strings.Builder
	keep := 0 // rune index up to which rs has been copied or skipped
	for at := 0; at < len(bs); {
		m := auto.Find(bs, at)
		if m == nil {
			break
		}
		i := utf8.RuneCount(bs[:m.Start])
		if i < keep || !live[i] {
			at = m.Start + 1
			continue
		}
		end := i + 2
		if rs[i] == '(' {
			if end = closingParen(rs, live, i+3); end < 0 {
				end = len(rs)
			} else {
				end++
			}
		}
		end = skipQuantifier(rs, end)

		sb.WriteString(string(rs[keep:i]))
		keep = end
		at = offs[end]
	}
	sb.WriteString(string(rs[keep:]))
	return sb.String()
}

// runeOffsets returns the byte offset of each rune of s, as []rune(s)
// splits it, followed by len(s). An invalid byte is one rune of width 1.
func runeOffsets(s string) []int {
	offs := make([]int, 0, len(s)+1)
	for i := 0; i < len(s); {
		offs = append(offs, i)
		_, n := utf8.DecodeRuneInString(s[i:])
		i += n
	}
	return append(offs, len(s))
}

// closingParen returns the index of the ')' closing a group whose body
// starts at from, or -1.
func closingParen(rs []rune, live []bool, from int) int {
	depth := 0
	for i := from; i < len(rs); i++ {
		if !live[i] {
			continue
		}
		switch rs[i] {
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

// skipQuantifier returns the index after a quantifier starting at i, or i.
func skipQuantifier(rs []rune, i int) int {
	if i >= len(rs) {
		return i
	}
	j := i
	switch rs[i] {
	case '*', '+', '?':
		j = i + 1
	case '{':
		k := i + 1
		for k < len(rs) && (isDigit(rs[k]) || rs[k] == ',') {
			k++
		}
		if k == i+1 || !isDigit(rs[i+1]) || k >= len(rs) || rs[k] != '}' {
			return i
		}
		j = k + 1
	default:
		return i
	}
	if j < len(rs) && rs[j] == '?' {
		j++
	}
	return j
}

func normalizeGroups(s string) string {
	rs := []rune(s)
	live := scanLive(rs)

	var sb strings.Builder
	open, unmatched := 0, 0
	for i := 0; i < len(rs); i++ {
		if !live[i] {
			sb.WriteRune(rs[i])
			continue
		}
		switch rs[i] {
		case '(':
			open++
			body := groupBodyStart(rs, i)
			if body == i+1 && i+1 < len(rs) && rs[i+1] == '?' {
				sb.WriteRune('(')
			} else {
				sb.WriteString("(?:")
			}
			i = body - 1
		case ')':
			if open == 0 {
				unmatched++
			} else {
				open--
			}
			sb.WriteRune(')')
		default:
			sb.WriteRune(rs[i])
		}
	}
	return strings.Repeat("(?:", unmatched) + sb.String() + strings.Repeat(")", open)
}

// groupBodyStart returns the index of the first rune inside the group
// opened at i, skipping "?:" or "?<name>". Lookbehind and any other "(?"
// form is left for the compiler to reject, so only the '(' is skipped.
func groupBodyStart(rs []rune, i int) int {
	if i+2 < len(rs) && rs[i+1] == '?' {
		switch {
		case rs[i+2] == ':':
			return i + 3
		case rs[i+2] == '<' && i+3 < len(rs) && rs[i+3] != '=' && rs[i+3] != '!':
			for j := i + 3; j < len(rs); j++ {
				if rs[j] == '>' {
					return j + 1
				}
			}
		}
	}
	return i + 1
}
