package report

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// TableSink renders a rounded terminal table. Lists are shown one item per
// line rather than as JSON.
type TableSink struct {
	w io.WriteCloser
}

// NewTableSink returns a sink that renders the report to w.
func NewTableSink(w io.WriteCloser) *TableSink {
	return &TableSink{w: w}
}

// Name returns "table".
func (s *TableSink) Name() string { return "table" }

// Write renders r as a table.
func (s *TableSink) Write(_ context.Context, r *Report) error {
	if _, err := io.WriteString(s.w, renderTable(r)+"\n"); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}
	return nil
}

// Close closes the underlying writer.
func (s *TableSink) Close() error {
	return s.w.Close()
}

func renderTable(r *Report) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateRows = true

	header := make(table.Row, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, e := range r.Entries {
		tw.AppendRow(table.Row{
			e.Word,
			strconv.Itoa(e.Frequency),
			strings.Join(e.Documents, "\n"),
			strings.Join(e.Sentences, "\n"),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignLeft, WidthMax: 80},
	})
	tw.SetCaption("run %s: %d of %d words", r.RunID, len(r.Entries), r.Stats.FilteredWords)

	return tw.Render()
}
