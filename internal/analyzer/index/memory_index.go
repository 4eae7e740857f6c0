// Package index is an in-memory inverted index from lower-cased word runs to
// the sentences containing them. It is built once per run and answers
// candidate lookups for the concordance builder.
package index

import (
	"sort"
	"strings"
	"sync"
	"unicode"
)

type MemoryIndex struct {
	mu            sync.RWMutex
	index         map[string]PostingList
	sentenceCount int
	size          int64
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		index: make(map[string]PostingList),
	}
}

// IsWordRune reports whether r is a word character: a letter, a number or
// an underscore.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Terms splits lower-cased text into the runs the index is keyed by:
// maximal sequences of word characters.
func Terms(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !IsWordRune(r)
	})
}

// AddSentence indexes one sentence. Sentence ids must be added in ascending
// order so posting lists stay sorted.
func (m *MemoryIndex) AddSentence(sentenceID int, text string) {
	termFreq := make(map[string]int)
	for _, term := range Terms(text) {
		termFreq[term]++
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for term, freq := range termFreq {
		m.index[term] = append(m.index[term], Posting{SentenceID: sentenceID, Frequency: freq})
		m.size += int64(len(term) + 16)
	}
	m.sentenceCount++
}

func (m *MemoryIndex) Search(term string) PostingList {
	m.mu.RLock()
	defer m.mu.RUnlock()
	postings, exists := m.index[term]
	if !exists {
		return nil
	}
	result := make(PostingList, len(postings))
	copy(result, postings)
	return result
}

func (m *MemoryIndex) Snapshot() []TermEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]TermEntry, 0, len(m.index))
	for term, postings := range m.index {
		cp := make(PostingList, len(postings))
		copy(cp, postings)
		entries = append(entries, TermEntry{Term: term, Postings: cp})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Term < entries[j].Term
	})
	return entries
}

// Size is an estimate of the index footprint in bytes.
func (m *MemoryIndex) Size() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.size
}

func (m *MemoryIndex) TermCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.index)
}

func (m *MemoryIndex) SentenceCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sentenceCount
}
