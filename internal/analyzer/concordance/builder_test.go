package concordance

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/internal/analyzer/frequency"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/internal/analyzer/sentence"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/config"
)

func fixture() ([]corpus.Document, []sentence.Sentence) {
	docs := []corpus.Document{
		{ID: 0, Name: "doc1.txt", Text: "The cat sat. The cat ran."},
		{ID: 1, Name: "doc2.txt", Text: "A dog sat."},
	}
	return docs, sentence.Segment(docs)
}

func TestBuildScenario(t *testing.T) {
	docs, sents := fixture()
	ranked := frequency.Table{{Word: "cat", Count: 2}, {Word: "sat", Count: 2}}

	for _, strategy := range []string{config.StrategyScan, config.StrategyIndex} {
		t.Run(strategy, func(t *testing.T) {
			b, err := NewBuilder(strategy, 1)
			require.NoError(t, err)
			got, err := b.Build(context.Background(), ranked, sents, corpus.Names(docs))
			require.NoError(t, err)

			require.Len(t, got, 2)
			assert.Equal(t, "cat", got[0].Word)
			assert.Equal(t, 2, got[0].Frequency)
			assert.ElementsMatch(t, []string{"doc1.txt"}, got[0].Documents)
			assert.ElementsMatch(t, []string{"The cat sat.", "The cat ran."}, got[0].Sentences)

			assert.Equal(t, "sat", got[1].Word)
			assert.ElementsMatch(t, []string{"doc1.txt", "doc2.txt"}, got[1].Documents)
			assert.ElementsMatch(t, []string{"The cat sat.", "A dog sat."}, got[1].Sentences)
		})
	}
}

func TestBuildDeduplicates(t *testing.T) {
	docs := []corpus.Document{
		{ID: 0, Name: "a.txt", Text: "Echo echo ECHO. Echo again. Echo echo ECHO."},
		{ID: 1, Name: "b.txt", Text: "Silence."},
	}
	b, err := NewBuilder(config.StrategyScan, 1)
	require.NoError(t, err)
	got, err := b.Build(context.Background(), frequency.Table{{Word: "echo", Count: 8}}, sentence.Segment(docs), corpus.Names(docs))
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, []string{"a.txt"}, got[0].Documents)
	assert.Equal(t, []string{"Echo echo ECHO.", "Echo again."}, got[0].Sentences)
}

func TestBuildWordWithoutMatches(t *testing.T) {
	docs, sents := fixture()
	b, err := NewBuilder(config.StrategyIndex, 1)
	require.NoError(t, err)
	got, err := b.Build(context.Background(), frequency.Table{{Word: "bird", Count: 1}}, sents, corpus.Names(docs))
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Empty(t, got[0].Documents)
	assert.Empty(t, got[0].Sentences)
	assert.NotNil(t, got[0].Sentences)
}

func TestBuildEmptyInputs(t *testing.T) {
	b, err := NewBuilder(config.StrategyScan, 1)
	require.NoError(t, err)
	got, err := b.Build(context.Background(), nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNewBuilderAcceptsConfiguredStrategies(t *testing.T) {
	for _, strategy := range []string{config.Default().Analysis.Strategy, config.StrategyScan, config.StrategyIndex} {
		_, err := NewBuilder(strategy, 1)
		assert.NoError(t, err, strategy)
	}
}

func TestNewBuilderRejectsUnknownStrategy(t *testing.T) {
	_, err := NewBuilder("guess", 1)
	assert.Error(t, err)
}

func TestBuildCancelled(t *testing.T) {
	docs, sents := fixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, workers := range []int{1, 4} {
		b, err := NewBuilder(config.StrategyScan, workers)
		require.NoError(t, err)
		_, err = b.Build(ctx, frequency.Table{{Word: "cat", Count: 2}}, sents, corpus.Names(docs))
		assert.ErrorIs(t, err, context.Canceled)
	}
}

// randomCorpus builds documents from a small vocabulary that includes
// apostrophes, mixed case and symbols so both strategies see awkward words.
func randomCorpus(r *rand.Rand, docs, sentencesPerDoc int) []corpus.Document {
	vocab := []string{"cat", "Cat", "CAT", "dog", "don't", "o'clock", "(aside)", "x*y", "under_score", "café", "caf", "concat", "a", "The"}
	ends := []string{".", "?", "!"}
	out := make([]corpus.Document, docs)
	for d := 0; d < docs; d++ {
		var sb strings.Builder
		for s := 0; s < sentencesPerDoc; s++ {
			n := r.Intn(6) + 1
			for w := 0; w < n; w++ {
				if w > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(vocab[r.Intn(len(vocab))])
			}
			sb.WriteString(ends[r.Intn(len(ends))])
			sb.WriteByte(' ')
		}
		out[d] = corpus.Document{ID: d, Name: fmt.Sprintf("doc%02d.txt", d), Text: sb.String()}
	}
	return out
}

func TestStrategiesAndWorkersAgree(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	docs := randomCorpus(r, 12, 15)
	sents := sentence.Segment(docs)
	ranked := frequency.Table{
		{Word: "cat", Count: 9}, {Word: "don't", Count: 8}, {Word: "(aside)", Count: 7},
		{Word: "x*y", Count: 6}, {Word: "café", Count: 5}, {Word: "under_score", Count: 4},
		{Word: "o'clock", Count: 3}, {Word: "*", Count: 2}, {Word: "missing", Count: 1},
	}

	base, err := NewBuilder(config.StrategyScan, 1)
	require.NoError(t, err)
	want, err := base.Build(context.Background(), ranked, sents, corpus.Names(docs))
	require.NoError(t, err)

	for _, strategy := range []string{config.StrategyScan, config.StrategyIndex} {
		for _, workers := range []int{1, 3, 16} {
			b, err := NewBuilder(strategy, workers)
			require.NoError(t, err)
			got, err := b.Build(context.Background(), ranked, sents, corpus.Names(docs))
			require.NoError(t, err)
			assert.Equal(t, want, got, "strategy=%s workers=%d", strategy, workers)
		}
	}
}

func BenchmarkBuild(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	docs := randomCorpus(r, 50, 200)
	sents := sentence.Segment(docs)
	ranked := frequency.Table{
		{Word: "cat", Count: 1}, {Word: "dog", Count: 1}, {Word: "don't", Count: 1},
		{Word: "café", Count: 1}, {Word: "concat", Count: 1}, {Word: "The", Count: 1},
	}
	names := corpus.Names(docs)
	for _, strategy := range []string{config.StrategyScan, config.StrategyIndex} {
		b.Run(strategy, func(b *testing.B) {
			builder, err := NewBuilder(strategy, 1)
			if err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := builder.Build(context.Background(), ranked, sents, names); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
