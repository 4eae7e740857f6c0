// Package concordance maps each top-ranked word to the documents and
// sentences it occurs in.
//
// Two strategies produce the same entries. config.StrategyScan matches
// every word against every sentence. config.StrategyIndex first builds an
// inverted index over all sentences and only verifies the sentences that
// contain every word run of the query word, trading index memory for scan
// time.
package concordance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/internal/analyzer/frequency"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/internal/analyzer/index"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/internal/analyzer/sentence"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/config"
)

// Entry is one row of the result table. Documents and Sentences hold no
// duplicates; their order is first occurrence in the corpus.
type Entry struct {
	Word      string   `json:"word"`
	Frequency int      `json:"frequency"`
	Documents []string `json:"document_names"`
	Sentences []string `json:"sentences"`
}

// Builder builds concordance entries. It holds no state between Build calls.
type Builder struct {
	strategy string
	workers  int
	logger   *slog.Logger
}

// NewBuilder returns a Builder for config.StrategyScan or
// config.StrategyIndex. Workers below 1 are treated as 1.
func NewBuilder(strategy string, workers int) (*Builder, error) {
	switch strategy {
	case config.StrategyScan, config.StrategyIndex:
	default:
		return nil, fmt.Errorf("unknown concordance strategy %q", strategy)
	}
	if workers < 1 {
		workers = 1
	}
	return &Builder{
		strategy: strategy,
		workers:  workers,
		logger:   slog.Default().With("component", "concordance"),
	}, nil
}

// Build returns one entry per word of ranked, in rank order. The caller
// decides how many words to pass; names resolves a sentence's DocumentID.
func (b *Builder) Build(ctx context.Context, ranked frequency.Table, sentences []sentence.Sentence, names map[int]string) ([]Entry, error) {
	lowered := make([]string, len(sentences))
	for i, s := range sentences {
		lowered[i] = strings.ToLower(s.Text)
	}

	var candidates func(m *Matcher) []int
	switch b.strategy {
	case config.StrategyIndex:
		idx := index.NewMemoryIndex()
		for i, text := range lowered {
			idx.AddSentence(i, text)
		}
		b.logger.Debug("sentence index built",
			"terms", idx.TermCount(),
			"sentences", idx.SentenceCount(),
			"size_bytes", idx.Size(),
		)
		candidates = func(m *Matcher) []int {
			return indexCandidates(idx, m, len(sentences))
		}
	default:
		all := allIDs(len(sentences))
		candidates = func(*Matcher) []int { return all }
	}

	entries := make([]Entry, len(ranked))
	build := func(i int) {
		e := ranked[i]
		m := NewMatcher(e.Word)
		acc := newAccumulator(e)
		for _, id := range candidates(m) {
			if m.MatchLower(lowered[id]) {
				acc.add(names[sentences[id].DocumentID], sentences[id].Text)
			}
		}
		entries[i] = acc.entry()
	}

	if b.workers == 1 {
		for i := range ranked {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			build(i)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(b.workers)
		for i := range ranked {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				build(i)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	b.logger.Debug("concordance built",
		"strategy", b.strategy,
		"words", len(entries),
		"sentences", len(sentences),
		"workers", b.workers,
	)
	return entries, nil
}

// indexCandidates returns the sentences holding every word run of the
// matcher's word. A word without word runs cannot be narrowed and falls back
// to all sentences.
func indexCandidates(idx *index.MemoryIndex, m *Matcher, total int) []int {
	terms := index.Terms(m.Word())
	if len(terms) == 0 {
		return allIDs(total)
	}
	lists := make([]index.PostingList, 0, len(terms))
	for _, term := range terms {
		postings := idx.Search(term)
		if len(postings) == 0 {
			return nil
		}
		lists = append(lists, postings)
	}
	return index.Intersect(lists...)
}

func allIDs(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	return ids
}

type accumulator struct {
	e         Entry
	seenDocs  map[string]struct{}
	seenSents map[string]struct{}
}

func newAccumulator(fe frequency.Entry) *accumulator {
	return &accumulator{
		e: Entry{
			Word:      fe.Word,
			Frequency: fe.Count,
			Documents: make([]string, 0),
			Sentences: make([]string, 0),
		},
		seenDocs:  make(map[string]struct{}),
		seenSents: make(map[string]struct{}),
	}
}

func (a *accumulator) add(doc, text string) {
	if _, ok := a.seenDocs[doc]; !ok {
		a.seenDocs[doc] = struct{}{}
		a.e.Documents = append(a.e.Documents, doc)
	}
	if _, ok := a.seenSents[text]; !ok {
		a.seenSents[text] = struct{}{}
		a.e.Sentences = append(a.e.Sentences, text)
	}
}

func (a *accumulator) entry() Entry {
	return a.e
}
