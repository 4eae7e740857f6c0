// Package metrics defines the Prometheus collectors for a concordance run.
// A batch run has nobody to scrape it, so the registry is written out in the
// node-exporter textfile format when the run ends.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus collectors for one run.
type Metrics struct {
	registry *prometheus.Registry

	DocumentsLoaded    prometheus.Counter
	TokensCounted      prometheus.Counter
	DistinctWords      prometheus.Gauge
	StopWordsRemoved   prometheus.Counter
	SentencesSegmented prometheus.Counter
	ConcordanceEntries prometheus.Gauge
	SinkWritesTotal    *prometheus.CounterVec
	StageDuration      *prometheus.HistogramVec
	RunSuccess         prometheus.Gauge
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		DocumentsLoaded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "concordance_documents_loaded_total",
				Help: "Documents read from the corpus directory.",
			},
		),
		TokensCounted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "concordance_tokens_total",
				Help: "Word tokens produced by the tokenizer over the whole corpus.",
			},
		),
		DistinctWords: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "concordance_distinct_words",
				Help: "Distinct case-sensitive words before stop-word filtering.",
			},
		),
		StopWordsRemoved: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "concordance_stopwords_removed_total",
				Help: "Frequency entries removed by the stop-word filter.",
			},
		),
		SentencesSegmented: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "concordance_sentences_total",
				Help: "Sentences produced by the segmenter.",
			},
		),
		ConcordanceEntries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "concordance_entries",
				Help: "Rows in the result table.",
			},
		),
		SinkWritesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "concordance_sink_writes_total",
				Help: "Result writes by sink and status.",
			},
			[]string{"sink", "status"},
		),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "concordance_stage_duration_seconds",
				Help:    "Wall time of each pipeline stage in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 60},
			},
			[]string{"stage"},
		),
		RunSuccess: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "concordance_run_success",
				Help: "1 if the last run completed and emitted its table, 0 otherwise.",
			},
		),
	}

	m.registry.MustRegister(
		m.DocumentsLoaded,
		m.TokensCounted,
		m.DistinctWords,
		m.StopWordsRemoved,
		m.SentencesSegmented,
		m.ConcordanceEntries,
		m.SinkWritesTotal,
		m.StageDuration,
		m.RunSuccess,
	)
	return m
}

// Registry exposes the underlying registry as a Gatherer.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes every metric to path atomically. An empty path is a
// no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile %s: %w", path, err)
	}
	return nil
}
