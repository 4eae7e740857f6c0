// Package report writes a finished concordance to one or more sinks. File
// sinks (csv, json, table) render to an io.Writer; network sinks (postgres,
// kafka, redis) publish the same rows to external systems.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/internal/analyzer"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/internal/analyzer/concordance"
)

// Header is the column order of the result table.
var Header = []string{"word", "frequency", "document_names", "sentences"}

// Report is the result of one run as handed to every sink.
type Report struct {
	RunID       string              `json:"run_id"`
	GeneratedAt time.Time           `json:"generated_at"`
	Directory   string              `json:"directory"`
	TopN        int                 `json:"top_n"`
	Strategy    string              `json:"strategy"`
	Stats       analyzer.Stats      `json:"stats"`
	Entries     []concordance.Entry `json:"entries"`
}

// Sink is an output destination for a Report.
type Sink interface {
	Name() string
	Write(ctx context.Context, r *Report) error
	Close() error
}

// New assembles a Report from an analysis result.
func New(runID, directory string, topN int, strategy string, res *analyzer.Result) *Report {
	entries := res.Entries
	if entries == nil {
		entries = []concordance.Entry{}
	}
	return &Report{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Directory:   directory,
		TopN:        topN,
		Strategy:    strategy,
		Stats:       res.Stats,
		Entries:     entries,
	}
}

// Rows renders the entries as string cells in Header order. List cells are
// JSON arrays.
func (r *Report) Rows() ([][]string, error) {
	rows := make([][]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		docs, err := jsonList(e.Documents)
		if err != nil {
			return nil, fmt.Errorf("encoding documents of %q: %w", e.Word, err)
		}
		sents, err := jsonList(e.Sentences)
		if err != nil {
			return nil, fmt.Errorf("encoding sentences of %q: %w", e.Word, err)
		}
		rows = append(rows, []string{e.Word, strconv.Itoa(e.Frequency), docs, sents})
	}
	return rows, nil
}

func jsonList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
