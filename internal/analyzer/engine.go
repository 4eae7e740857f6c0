package analyzer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/internal/analyzer/concordance"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/internal/analyzer/frequency"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/internal/analyzer/sentence"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/internal/analyzer/stopword"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/internal/analyzer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/tracing"
)

// Stats summarises one analysis.
type Stats struct {
	Documents        int `json:"documents"`
	Tokens           int `json:"tokens"`
	DistinctWords    int `json:"distinct_words"`
	StopWordsRemoved int `json:"stopwords_removed"`
	FilteredWords    int `json:"filtered_words"`
	Sentences        int `json:"sentences"`
	Entries          int `json:"entries"`
}

// Result is everything an analysis produces. Ranked is the full filtered
// ranking; Entries covers its first TopN words.
type Result struct {
	Ranked  frequency.Table     `json:"-"`
	Entries []concordance.Entry `json:"entries"`
	Stats   Stats               `json:"stats"`
}

// Engine runs count, filter, segment and concord over a loaded corpus.
type Engine struct {
	cfg       config.AnalysisConfig
	stopWords *stopword.List
	builder   *concordance.Builder
	metrics   *metrics.Metrics
}

// NewEngine validates the analysis settings and prepares the builder. A nil
// metrics value gets a private registry.
func NewEngine(cfg config.AnalysisConfig, stopWords *stopword.List, m *metrics.Metrics) (*Engine, error) {
	if cfg.TopN < 0 || cfg.TopN > config.MaxTopN {
		return nil, fmt.Errorf("top N must be between 0 and %d, got %d", config.MaxTopN, cfg.TopN)
	}
	builder, err := concordance.NewBuilder(cfg.Strategy, cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("creating concordance builder: %w", err)
	}
	if stopWords == nil {
		stopWords = stopword.NewList(nil)
	}
	if m == nil {
		m = metrics.New()
	}
	return &Engine{
		cfg:       cfg,
		stopWords: stopWords,
		builder:   builder,
		metrics:   m,
	}, nil
}

// Analyze runs the pipeline. Documents are never modified; every stage
// returns a new collection.
func (e *Engine) Analyze(ctx context.Context, docs []corpus.Document) (*Result, error) {
	log := logger.FromContext(ctx).With("component", "analyzer")
	stats := Stats{Documents: len(docs)}

	var ranked frequency.Table
	e.stage(ctx, "count", func(span *tracing.Span) {
		tokens := tokenizer.TokenizeCorpus(corpus.Texts(docs))
		ranked = frequency.Count(tokens)
		stats.Tokens = len(tokens)
		stats.DistinctWords = len(ranked)
		span.SetAttr("tokens", stats.Tokens)
		span.SetAttr("distinct_words", stats.DistinctWords)
	})
	e.metrics.TokensCounted.Add(float64(stats.Tokens))
	e.metrics.DistinctWords.Set(float64(stats.DistinctWords))
	log.Info("frequencies counted", "tokens", stats.Tokens, "distinct_words", stats.DistinctWords)

	var filtered frequency.Table
	e.stage(ctx, "filter", func(span *tracing.Span) {
		filtered = e.stopWords.Filter(ranked)
		stats.FilteredWords = len(filtered)
		stats.StopWordsRemoved = len(ranked) - len(filtered)
		span.SetAttr("removed", stats.StopWordsRemoved)
	})
	e.metrics.StopWordsRemoved.Add(float64(stats.StopWordsRemoved))
	log.Info("stop words filtered",
		"stop_words", e.stopWords.Len(),
		"removed", stats.StopWordsRemoved,
		"remaining", stats.FilteredWords,
	)

	var sentences []sentence.Sentence
	var err error
	e.stage(ctx, "segment", func(span *tracing.Span) {
		sentences, err = sentence.SegmentConcurrent(ctx, docs, e.cfg.Workers)
		span.SetAttr("sentences", len(sentences))
	})
	if err != nil {
		return nil, fmt.Errorf("segmenting sentences: %w", err)
	}
	stats.Sentences = len(sentences)
	e.metrics.SentencesSegmented.Add(float64(stats.Sentences))
	log.Info("sentences segmented", "sentences", stats.Sentences)

	var entries []concordance.Entry
	e.stage(ctx, "concord", func(span *tracing.Span) {
		entries, err = e.builder.Build(ctx, filtered.Top(e.cfg.TopN), sentences, corpus.Names(docs))
		span.SetAttr("strategy", e.cfg.Strategy)
		span.SetAttr("entries", len(entries))
	})
	if err != nil {
		return nil, fmt.Errorf("building concordance: %w", err)
	}
	stats.Entries = len(entries)
	e.metrics.ConcordanceEntries.Set(float64(stats.Entries))
	log.Info("concordance built",
		"requested", e.cfg.TopN,
		"entries", stats.Entries,
		"strategy", e.cfg.Strategy,
	)

	return &Result{
		Ranked:  filtered,
		Entries: entries,
		Stats:   stats,
	}, nil
}

// stage runs fn inside a child span and records its duration.
func (e *Engine) stage(ctx context.Context, name string, fn func(span *tracing.Span)) {
	_, span := tracing.StartChildSpan(ctx, name)
	fn(span)
	elapsed := span.End()
	e.metrics.StageDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	slog.Default().Debug("stage finished", "stage", name, "duration", elapsed)
}
