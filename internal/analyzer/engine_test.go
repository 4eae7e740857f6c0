package analyzer

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/internal/analyzer/stopword"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/tracing"
)

func scenarioDocs() []corpus.Document {
	return []corpus.Document{
		{ID: 0, Name: "doc1.txt", Text: "The cat sat. The cat ran."},
		{ID: 1, Name: "doc2.txt", Text: "A dog sat."},
	}
}

func newEngine(t *testing.T, topN int, strategy string, stop []string) (*Engine, *metrics.Metrics) {
	t.Helper()
	m := metrics.New()
	e, err := NewEngine(config.AnalysisConfig{TopN: topN, Strategy: strategy, Workers: 2}, stopword.NewList(stop), m)
	require.NoError(t, err)
	return e, m
}

func TestAnalyzeScenario(t *testing.T) {
	for _, strategy := range []string{config.StrategyScan, config.StrategyIndex} {
		t.Run(strategy, func(t *testing.T) {
			e, _ := newEngine(t, 2, strategy, []string{"the", "a"})
			res, err := e.Analyze(context.Background(), scenarioDocs())
			require.NoError(t, err)

			require.Len(t, res.Entries, 2)
			cat, sat := res.Entries[0], res.Entries[1]
			assert.Equal(t, "cat", cat.Word)
			assert.Equal(t, 2, cat.Frequency)
			assert.Equal(t, []string{"doc1.txt"}, cat.Documents)
			assert.Equal(t, []string{"The cat sat.", "The cat ran."}, cat.Sentences)

			assert.Equal(t, "sat", sat.Word)
			assert.Equal(t, 2, sat.Frequency)
			assert.Equal(t, []string{"doc1.txt", "doc2.txt"}, sat.Documents)
			assert.Equal(t, []string{"The cat sat.", "A dog sat."}, sat.Sentences)

			assert.Equal(t, Stats{
				Documents:        2,
				Tokens:           9,
				DistinctWords:    6,
				StopWordsRemoved: 2,
				FilteredWords:    4,
				Sentences:        3,
				Entries:          2,
			}, res.Stats)
		})
	}
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	e, _ := newEngine(t, 10, config.StrategyIndex, nil)
	first, err := e.Analyze(context.Background(), scenarioDocs())
	require.NoError(t, err)
	second, err := e.Analyze(context.Background(), scenarioDocs())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAnalyzeConservesCounts(t *testing.T) {
	e, _ := newEngine(t, config.MaxTopN, config.StrategyScan, nil)
	res, err := e.Analyze(context.Background(), scenarioDocs())
	require.NoError(t, err)

	assert.Equal(t, res.Stats.Tokens, res.Ranked.Total())
	for _, entry := range res.Entries {
		assert.NotEmpty(t, entry.Documents, entry.Word)
		assert.NotEmpty(t, entry.Sentences, entry.Word)
	}
}

func TestAnalyzeDegenerateInputs(t *testing.T) {
	t.Run("no documents", func(t *testing.T) {
		e, _ := newEngine(t, 5, config.StrategyScan, nil)
		res, err := e.Analyze(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, res.Entries)
		assert.Zero(t, res.Stats.Tokens)
	})
	t.Run("top zero", func(t *testing.T) {
		e, _ := newEngine(t, 0, config.StrategyScan, nil)
		res, err := e.Analyze(context.Background(), scenarioDocs())
		require.NoError(t, err)
		assert.Empty(t, res.Entries)
		assert.Len(t, res.Ranked, 6)
	})
	t.Run("top above distinct words", func(t *testing.T) {
		e, _ := newEngine(t, 50, config.StrategyScan, nil)
		res, err := e.Analyze(context.Background(), scenarioDocs())
		require.NoError(t, err)
		assert.Len(t, res.Entries, 6)
	})
	t.Run("everything is a stop word", func(t *testing.T) {
		e, _ := newEngine(t, 5, config.StrategyScan, []string{"the", "cat", "sat", "ran", "a", "dog"})
		res, err := e.Analyze(context.Background(), scenarioDocs())
		require.NoError(t, err)
		assert.Empty(t, res.Entries)
		assert.Equal(t, 6, res.Stats.StopWordsRemoved)
	})
}

func TestAnalyzeRecordsMetricsAndSpans(t *testing.T) {
	e, m := newEngine(t, 2, config.StrategyScan, nil)
	ctx, root := tracing.StartSpan(context.Background(), "run", "trace-1")

	_, err := e.Analyze(ctx, scenarioDocs())
	require.NoError(t, err)

	assert.Equal(t, float64(9), testutil.ToFloat64(m.TokensCounted))
	assert.Equal(t, float64(6), testutil.ToFloat64(m.DistinctWords))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.SentencesSegmented))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.ConcordanceEntries))

	names := make([]string, 0, len(root.Children))
	for _, child := range root.Children {
		names = append(names, child.Name)
		assert.Equal(t, "trace-1", child.TraceID)
	}
	assert.Equal(t, []string{"count", "filter", "segment", "concord"}, names)
}

func TestAnalyzeCancelled(t *testing.T) {
	e, _ := newEngine(t, 2, config.StrategyScan, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Analyze(ctx, scenarioDocs())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewEngineRejectsBadSettings(t *testing.T) {
	_, err := NewEngine(config.AnalysisConfig{TopN: 101, Strategy: config.StrategyScan}, nil, nil)
	assert.Error(t, err)
	_, err = NewEngine(config.AnalysisConfig{TopN: 1, Strategy: "guess"}, nil, nil)
	assert.Error(t, err)
}
