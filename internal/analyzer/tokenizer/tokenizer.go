// Package tokenizer splits corpus text into case-preserving word tokens. Runs
// of digits and of the characters , . ; @ # ? ! & $ - " are treated as
// separators; every other non-space character belongs to a token.
package tokenizer

import (
	"regexp"
	"strings"
)

// separatorRun matches a run of digits or stripped punctuation together with
// the spaces that directly follow it.
var separatorRun = regexp.MustCompile(`[0-9,.;@#?!&$\-"]+ *`)

// Normalize replaces every separator run in text with a single space.
func Normalize(text string) string {
	return separatorRun.ReplaceAllString(text, " ")
}

// Tokenize normalizes text and splits it on whitespace. Case is preserved,
// so "The" and "the" are distinct tokens. The result is never nil.
func Tokenize(text string) []string {
	fields := strings.Fields(Normalize(text))
	if fields == nil {
		return []string{}
	}
	return fields
}

// TokenizeCorpus tokenizes the given texts as one corpus, joined by single
// spaces so that words never fuse across document boundaries.
func TokenizeCorpus(texts []string) []string {
	return Tokenize(strings.Join(texts, " "))
}
