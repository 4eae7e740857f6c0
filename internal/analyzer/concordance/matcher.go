package concordance

import (
	"strings"
	"unicode/utf8"

	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/internal/analyzer/index"
)

// Matcher finds whole-word, case-insensitive occurrences of one word. A match
// must start and end on a word boundary, i.e. a position where exactly one
// of the neighbouring characters is a word character.
type Matcher struct {
	word string
}

// NewMatcher returns a Matcher for word.
func NewMatcher(word string) *Matcher {
	return &Matcher{word: strings.ToLower(word)}
}

// Word returns the lower-cased word being matched.
func (m *Matcher) Word() string {
	return m.word
}

// Match reports whether text contains the word.
func (m *Matcher) Match(text string) bool {
	return m.MatchLower(strings.ToLower(text))
}

// MatchLower is Match for text that is already lower-cased.
func (m *Matcher) MatchLower(lower string) bool {
	if m.word == "" {
		return false
	}
	offset := 0
	for offset <= len(lower)-len(m.word) {
		idx := strings.Index(lower[offset:], m.word)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(m.word)
		if isBoundary(lower, start) && isBoundary(lower, end) {
			return true
		}
		offset = start + 1
	}
	return false
}

func isBoundary(s string, pos int) bool {
	before, after := false, false
	if pos > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:pos])
		before = index.IsWordRune(r)
	}
	if pos < len(s) {
		r, _ := utf8.DecodeRuneInString(s[pos:])
		after = index.IsWordRune(r)
	}
	return before != after
}
