// Package sentence splits document text into sentences. A sentence ends
// right after '.', '?' or '!'; whitespace following the delimiter separates
// sentences and belongs to neither.
package sentence

import (
	"context"
	"unicode"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/internal/corpus"
)

// Sentence is one segment of a document. Order is its position within the
// document, starting at 0.
type Sentence struct {
	DocumentID int    `json:"document_id"`
	Order      int    `json:"order"`
	Text       string `json:"text"`
}

func isDelimiter(b byte) bool {
	return b == '.' || b == '?' || b == '!'
}

// Split cuts text after every delimiter. Empty fragments, such as the one
// after a trailing delimiter, are dropped.
func Split(text string) []string {
	out := make([]string, 0)
	start := 0
	for i := 0; i < len(text); i++ {
		if !isDelimiter(text[i]) {
			continue
		}
		out = appendFragment(out, text[start:i+1])
		next := i + 1
		for next < len(text) {
			r, size := utf8.DecodeRuneInString(text[next:])
			if !unicode.IsSpace(r) {
				break
			}
			next += size
		}
		start = next
		i = next - 1
	}
	if start < len(text) {
		out = appendFragment(out, text[start:])
	}
	return out
}

func appendFragment(out []string, fragment string) []string {
	if fragment == "" {
		return out
	}
	return append(out, fragment)
}

// Segment splits every document in order and returns one flat table,
// grouped by document.
func Segment(docs []corpus.Document) []Sentence {
	out := make([]Sentence, 0)
	for _, doc := range docs {
		out = append(out, segmentDocument(doc)...)
	}
	return out
}

// SegmentConcurrent is Segment with up to workers documents split in
// parallel. The result is identical to Segment's.
func SegmentConcurrent(ctx context.Context, docs []corpus.Document, workers int) ([]Sentence, error) {
	if workers <= 1 || len(docs) <= 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return Segment(docs), nil
	}
	perDoc := make([][]Sentence, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perDoc[i] = segmentDocument(doc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	total := 0
	for _, s := range perDoc {
		total += len(s)
	}
	out := make([]Sentence, 0, total)
	for _, s := range perDoc {
		out = append(out, s...)
	}
	return out, nil
}

func segmentDocument(doc corpus.Document) []Sentence {
	parts := Split(doc.Text)
	out := make([]Sentence, len(parts))
	for i, text := range parts {
		out[i] = Sentence{DocumentID: doc.ID, Order: i, Text: text}
	}
	return out
}
