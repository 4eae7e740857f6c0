package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	apperrors "github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/resilience"
)

// Multi writes a report to every sink in order and stops at the first
// failure.
type Multi struct {
	sinks   []Sink
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewMulti returns a Multi over sinks. m may be nil.
func NewMulti(m *metrics.Metrics, sinks ...Sink) *Multi {
	return &Multi{
		sinks:   sinks,
		metrics: m,
		logger:  slog.Default().With("component", "report"),
	}
}

// Write returns an error wrapping ErrSinkFailed naming the failed sink.
func (m *Multi) Write(ctx context.Context, r *Report) error {
	for _, s := range m.sinks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Write(ctx, r); err != nil {
			m.record(s.Name(), "error")
			if ctx.Err() != nil {
				return fmt.Errorf("sink %s: %w", s.Name(), ctx.Err())
			}
			return apperrors.Wrapf(apperrors.ErrSinkFailed, apperrors.ExitSink, err, "sink %s: %v", s.Name(), err)
		}
		m.record(s.Name(), "ok")
		m.logger.Debug("report written", "sink", s.Name(), "entries", len(r.Entries))
	}
	return nil
}

// Close closes every sink and joins their errors.
func (m *Multi) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing sink %s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func (m *Multi) record(sink, status string) {
	if m.metrics == nil {
		return
	}
	m.metrics.SinkWritesTotal.WithLabelValues(sink, status).Inc()
}

// retrying retries Write with backoff. Only network sinks are wrapped.
type retrying struct {
	Sink
	cfg resilience.RetryConfig
}

// WithRetry wraps s so that a failed Write is retried per cfg.
func WithRetry(s Sink, cfg resilience.RetryConfig) Sink {
	return &retrying{Sink: s, cfg: cfg}
}

func (r *retrying) Write(ctx context.Context, rep *Report) error {
	return resilience.Retry(ctx, "sink "+r.Sink.Name(), r.cfg, func(ctx context.Context) error {
		return r.Sink.Write(ctx, rep)
	})
}

// OpenOutput returns the destination for file sinks. "-" and "" mean stdout,
// which is never closed.
func OpenOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrSinkFailed, apperrors.ExitSink, err, "creating output %s: %v", path, err)
	}
	return f, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// NopCloser adapts w for sinks that must not close it.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}
