// Package stopword removes stop words from a ranked frequency table.
//
// Matching is exact and case-sensitive against two forms of every listed
// word: the word as given and its capitalized form ("the" and "The"). Other
// casings such as "THE" are kept.
package stopword

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/internal/analyzer/frequency"
)

// List is an immutable exclusion set.
type List struct {
	excluded map[string]struct{}
	size     int
}

// NewList builds the exclusion set from words. Surrounding spaces are
// trimmed and empty words are ignored.
func NewList(words []string) *List {
	l := &List{excluded: make(map[string]struct{}, len(words)*2)}
	for _, w := range words {
		w = strings.Trim(w, " ")
		if w == "" {
			continue
		}
		l.size++
		l.excluded[w] = struct{}{}
		if c := Capitalize(w); c != "" {
			l.excluded[c] = struct{}{}
		}
	}
	return l
}

// Len returns the number of stop words the list was built from.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return l.size
}

// Contains reports whether word is excluded.
func (l *List) Contains(word string) bool {
	if l == nil {
		return false
	}
	_, ok := l.excluded[word]
	return ok
}

// Filter returns a new table without excluded words. Counts and the relative
// order of the survivors are unchanged.
func (l *List) Filter(table frequency.Table) frequency.Table {
	return table.Without(l.Contains)
}

// Capitalize upper-cases the first letter and lower-cases the rest of every
// whitespace-separated part of s, joining the parts with single spaces.
func Capitalize(s string) string {
	parts := strings.Fields(s)
	for i, p := range parts {
		r, size := utf8.DecodeRuneInString(p)
		parts[i] = string(unicode.ToTitle(r)) + strings.ToLower(p[size:])
	}
	return strings.Join(parts, " ")
}
