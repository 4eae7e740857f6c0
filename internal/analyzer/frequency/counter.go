// Package frequency counts word occurrences across a corpus and ranks them.
package frequency

import "sort"

// Entry is one distinct surface form of a word and its corpus-wide count.
type Entry struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Table is a ranked sequence of entries: count descending, ties in the
// order the words were first seen.
type Table []Entry

// Count tallies tokens and returns the ranked table. Words are compared
// case-sensitively.
func Count(tokens []string) Table {
	positions := make(map[string]int)
	table := make(Table, 0)
	for _, token := range tokens {
		if idx, seen := positions[token]; seen {
			table[idx].Count++
			continue
		}
		positions[token] = len(table)
		table = append(table, Entry{Word: token, Count: 1})
	}
	sort.SliceStable(table, func(i, j int) bool {
		return table[i].Count > table[j].Count
	})
	return table
}

// Total returns the sum of all counts.
func (t Table) Total() int {
	total := 0
	for _, e := range t {
		total += e.Count
	}
	return total
}

// Top returns a copy of the first min(n, len(t)) entries.
func (t Table) Top(n int) Table {
	if n < 0 {
		n = 0
	}
	if n > len(t) {
		n = len(t)
	}
	out := make(Table, n)
	copy(out, t[:n])
	return out
}

// Without returns a new table holding the entries for which removed reports
// false, in their original order.
func (t Table) Without(removed func(word string) bool) Table {
	out := make(Table, 0, len(t))
	for _, e := range t {
		if removed(e.Word) {
			continue
		}
		out = append(out, e)
	}
	return out
}
