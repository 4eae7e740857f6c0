package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// JSONSink writes the whole report as one indented document.
type JSONSink struct {
	w io.WriteCloser
}

// NewJSONSink returns a sink that encodes the report to w.
func NewJSONSink(w io.WriteCloser) *JSONSink {
	return &JSONSink{w: w}
}

// Name returns "json".
func (s *JSONSink) Name() string { return "json" }

// Write encodes r as one indented JSON document.
func (s *JSONSink) Write(_ context.Context, r *Report) error {
	enc := json.NewEncoder(s.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding json report: %w", err)
	}
	return nil
}

// Close closes the underlying writer.
func (s *JSONSink) Close() error {
	return s.w.Close()
}
