package symregex

import (
	"testing"

	"github.com/coregx/symregex/symbolic"
)

// TestWordBoundary tests \b and \B assertions.
// \b holds where the previous and next characters have different word/non-word
// status; the start and end of the input count as non-word.
func TestWordBoundary(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		input   string
		want    bool
	}{
		// Basic \b at start of word
		{"word_start_match", `\bword`, "hello word", true},
		{"word_start_at_string_start", `\bword`, "word end", true},
		{"word_start_no_match_inside", `\bword`, "sword", false},
		{"word_start_no_match_embedded", `\bword`, "password", false},

		// Basic \b at end of word
		{"word_end_match", `word\b`, "word!", true},
		{"word_end_at_string_end", `word\b`, "test word", true},
		{"word_end_no_match_inside", `word\b`, "words", false},

		// \b on both sides (whole word)
		{"whole_word_match", `\bword\b`, "a word here", true},
		{"whole_word_alone", `\bword\b`, "word", true},
		{"whole_word_no_match_prefix", `\bword\b`, "aword", false},
		{"whole_word_no_match_suffix", `\bword\b`, "worda", false},
		{"whole_word_no_match_embedded", `\bword\b`, "swords", false},

		// Word characters: [a-zA-Z0-9_]
		{"underscore_is_word_char", `\b_test\b`, "a _test here", true},
		{"digit_is_word_char", `\btest123\b`, "x test123 y", true},
		{"hyphen_is_not_word_char", `\btest\b`, "x-test-y", true},

		// Edge cases at string boundaries
		{"at_empty_string_no_word", `\b`, "", false},
		{"at_start_entering_word", `\ba`, "abc", true},
		{"at_start_not_entering_word", `\b `, " abc", false},
		{"at_end_leaving_word", `c\b`, "abc", true},

		// \B
		{"non_boundary_inside_word", `\Bor`, "word", true},
		{"non_boundary_at_word_start", `\Bwo`, "word", false},
		{"non_boundary_at_word_end", `a\B`, "a", false},
		{"non_boundary_empty_input", `\B`, "", true},
		{"non_boundary_between_spaces", `\B `, "  ", true},

		// Anchored
		{"anchored_whole_word", `^\bword\b$`, "word", true},
		{"anchored_rejects_context", `^\bword\b$`, " word", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := symbolic.New()
			re := MustCompile(b, tt.pattern)
			if got := b.Matches(re.Language(), tt.input); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.pattern, tt.input, got, tt.want)
			}
		})
	}
}
