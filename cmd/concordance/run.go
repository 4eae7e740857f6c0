package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/internal/analyzer"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/internal/analyzer/stopword"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/internal/report"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/resilience"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/tracing"
)

type runFlags struct {
	directory   string
	topN        int
	pattern     string
	stopWords   string
	strategy    string
	workers     int
	sinks       []string
	output      string
	timeout     time.Duration
	logLevel    string
	logFormat   string
	metricsFile string
	trace       bool
}

func newRunCommand(configFlag *string) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Rank the most frequent words of a corpus and list where they occur",
		Long: `Reads every matching text file in a directory, counts word frequencies,
removes stop words and prints the top N words together with the documents
and sentences that contain them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load(cmd, *configFlag)
			if err != nil {
				return err
			}
			return runConcordance(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	flags.register(cmd)

	return cmd
}

// register binds the run flags on cmd.
func (f *runFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.directory, "directory", "d", "", "Directory holding the corpus")
	fs.IntVarP(&f.topN, "number-words", "n", 0, fmt.Sprintf("Number of words to report (0-%d)", config.MaxTopN))
	fs.StringVar(&f.pattern, "pattern", "", "File name pattern inside the directory")
	fs.StringVar(&f.stopWords, "stopwords", "", "Comma-separated stop-word file")
	fs.StringVar(&f.strategy, "strategy", "", "Concordance strategy: scan or index")
	fs.IntVar(&f.workers, "workers", 0, "Concurrent workers for segmenting and matching")
	fs.StringSliceVar(&f.sinks, "sink", nil, "Output sink (csv, json, table, postgres, kafka, redis); repeatable")
	fs.StringVarP(&f.output, "output", "o", "", "Output file for csv and json sinks, - for stdout")
	fs.DurationVar(&f.timeout, "timeout", 0, "Abort the run after this long")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	fs.StringVar(&f.logFormat, "log-format", "", "Log format: text or json")
	fs.StringVar(&f.metricsFile, "metrics-textfile", "", "Write run metrics to this Prometheus textfile")
	fs.BoolVar(&f.trace, "trace", false, "Log the per-stage span tree")
}

// load reads the config file, applies flags, validates the result and
// installs the logger.
func (f *runFlags) load(cmd *cobra.Command, path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	f.apply(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
	return cfg, nil
}

// apply copies explicitly set flags over the loaded config.
func (f *runFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	set := cmd.Flags().Changed
	if set("directory") {
		cfg.Corpus.Directory = f.directory
	}
	if set("number-words") {
		cfg.Analysis.TopN = f.topN
	}
	if set("pattern") {
		cfg.Corpus.Pattern = f.pattern
	}
	if set("stopwords") {
		cfg.Corpus.StopWordsFile = f.stopWords
	}
	if set("strategy") {
		cfg.Analysis.Strategy = f.strategy
	}
	if set("workers") {
		cfg.Analysis.Workers = f.workers
	}
	if set("sink") {
		cfg.Output.Sinks = f.sinks
	}
	if set("output") {
		cfg.Output.Path = f.output
	}
	if set("timeout") {
		cfg.Analysis.Timeout = f.timeout
	}
	if set("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if set("log-format") {
		cfg.Logging.Format = f.logFormat
	}
	if set("metrics-textfile") {
		cfg.Metrics.TextfilePath = f.metricsFile
	}
	if set("trace") {
		cfg.Tracing.Enabled = f.trace
	}
}

// runConcordance executes one validated run. Metrics and the span tree are
// emitted whether or not the run succeeds.
func runConcordance(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	runID := uuid.NewString()
	ctx = logger.WithRunID(ctx, runID)
	log := logger.FromContext(ctx)
	m := metrics.New()

	ctx, root := tracing.StartSpan(ctx, "run", runID)
	root.SetAttr("directory", cfg.Corpus.Directory)
	root.SetAttr("top_n", cfg.Analysis.TopN)

	log.Info("starting concordance run",
		"directory", cfg.Corpus.Directory,
		"top_n", cfg.Analysis.TopN,
		"strategy", cfg.Analysis.Strategy,
		"workers", cfg.Analysis.Workers,
		"sinks", cfg.Output.Sinks,
	)

	err := resilience.WithTimeout(ctx, cfg.Analysis.Timeout, "concordance run", func(ctx context.Context) error {
		return execute(ctx, cfg, m, runID, stdout)
	})

	elapsed := root.End()
	if err != nil {
		m.RunSuccess.Set(0)
		log.Error("concordance run failed", "error", err, "duration", elapsed)
	} else {
		m.RunSuccess.Set(1)
		log.Info("concordance run finished", "duration", elapsed)
	}
	if cfg.Tracing.Enabled {
		root.Log(log)
	}
	if werr := m.WriteTextfile(cfg.Metrics.TextfilePath); werr != nil {
		log.Warn("metrics not written", "error", werr)
	}
	return err
}

func execute(ctx context.Context, cfg *config.Config, m *metrics.Metrics, runID string, stdout io.Writer) error {
	_, span := tracing.StartChildSpan(ctx, "load")
	docs, err := corpus.Load(ctx, cfg.Corpus.Directory, cfg.Corpus.Pattern)
	var words []string
	if err == nil {
		words, err = corpus.LoadStopWords(cfg.Corpus.StopWordsFile)
	}
	span.SetAttr("documents", len(docs))
	m.StageDuration.WithLabelValues("load").Observe(span.End().Seconds())
	if err != nil {
		return err
	}
	m.DocumentsLoaded.Add(float64(len(docs)))

	engine, err := analyzer.NewEngine(cfg.Analysis, stopword.NewList(words), m)
	if err != nil {
		return fmt.Errorf("creating analyzer: %w", err)
	}
	res, err := engine.Analyze(ctx, docs)
	if err != nil {
		return err
	}

	sinks, output, cleanup, err := openSinks(ctx, cfg, m, stdout)
	if err != nil {
		return err
	}
	defer cleanup()

	_, span = tracing.StartChildSpan(ctx, "write")
	rep := report.New(runID, cfg.Corpus.Directory, cfg.Analysis.TopN, cfg.Analysis.Strategy, res)
	err = sinks.Write(ctx, rep)
	if err == nil {
		err = output.flush(ctx)
	}
	span.SetAttr("sinks", len(cfg.Output.Sinks))
	m.StageDuration.WithLabelValues("write").Observe(span.End().Seconds())
	return err
}
