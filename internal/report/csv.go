package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
)

// CSVSink writes the header and one record per entry.
type CSVSink struct {
	w io.WriteCloser
}

// NewCSVSink returns a sink that writes CSV records to w.
func NewCSVSink(w io.WriteCloser) *CSVSink {
	return &CSVSink{w: w}
}

// Name returns "csv".
func (s *CSVSink) Name() string { return "csv" }

// Write emits the header row followed by one record per entry.
func (s *CSVSink) Write(_ context.Context, r *Report) error {
	rows, err := r.Rows()
	if err != nil {
		return err
	}
	cw := csv.NewWriter(s.w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing csv rows: %w", err)
	}
	return nil
}

// Close closes the underlying writer.
func (s *CSVSink) Close() error {
	return s.w.Close()
}
