package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "*.txt", cfg.Corpus.Pattern)
	assert.Equal(t, 10, cfg.Analysis.TopN)
	assert.Equal(t, StrategyScan, cfg.Analysis.Strategy)
	assert.Equal(t, 1, cfg.Analysis.Workers)
	assert.Equal(t, []string{SinkCSV}, cfg.Output.Sinks)
	assert.Equal(t, "-", cfg.Output.Path)
}

func TestLoadYAMLAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	body := `
corpus:
  directory: /data/books
  stopWordsFile: stop.csv
analysis:
  topN: 25
  strategy: index
  workers: 4
  timeout: 30s
output:
  sinks: [csv, table]
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("CC_ANALYSIS_TOPN", "7")
	t.Setenv("CC_OUTPUT_SINKS", "json,redis")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/books", cfg.Corpus.Directory)
	assert.Equal(t, "stop.csv", cfg.Corpus.StopWordsFile)
	assert.Equal(t, "*.txt", cfg.Corpus.Pattern, "unset fields keep defaults")
	assert.Equal(t, 7, cfg.Analysis.TopN, "env overrides file")
	assert.Equal(t, StrategyIndex, cfg.Analysis.Strategy)
	assert.Equal(t, 4, cfg.Analysis.Workers)
	assert.Equal(t, 30*time.Second, cfg.Analysis.Timeout)
	assert.Equal(t, []string{SinkJSON, SinkRedis}, cfg.Output.Sinks)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidConfig))
	assert.Equal(t, apperrors.ExitConfig, apperrors.ExitCode(err))
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   error
	}{
		{"valid", func(c *Config) {}, nil},
		{"zero words allowed", func(c *Config) { c.Analysis.TopN = 0 }, nil},
		{"upper bound allowed", func(c *Config) { c.Analysis.TopN = MaxTopN }, nil},
		{"missing directory", func(c *Config) { c.Corpus.Directory = filepath.Join(dir, "nope") }, apperrors.ErrDirectoryNotFound},
		{"file is not a directory", func(c *Config) { c.Corpus.Directory = file }, apperrors.ErrDirectoryNotFound},
		{"too many words", func(c *Config) { c.Analysis.TopN = MaxTopN + 1 }, apperrors.ErrTopNOutOfRange},
		{"negative words", func(c *Config) { c.Analysis.TopN = -1 }, apperrors.ErrTopNOutOfRange},
		{"unknown strategy", func(c *Config) { c.Analysis.Strategy = "magic" }, apperrors.ErrInvalidConfig},
		{"no workers", func(c *Config) { c.Analysis.Workers = 0 }, apperrors.ErrInvalidConfig},
		{"unknown sink", func(c *Config) { c.Output.Sinks = []string{"csv", "ftp"} }, apperrors.ErrInvalidConfig},
		{"no sinks", func(c *Config) { c.Output.Sinks = nil }, apperrors.ErrInvalidConfig},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, apperrors.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Corpus.Directory = dir
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Equal(t, apperrors.ExitConfig, apperrors.ExitCode(err))
		})
	}
}

func TestHasSink(t *testing.T) {
	cfg := Default()
	cfg.Output.Sinks = []string{SinkCSV, SinkKafka}
	assert.True(t, cfg.HasSink(SinkKafka))
	assert.False(t, cfg.HasSink(SinkRedis))
}
