package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/health"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/postgres"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/redis"
)

func newCheckCommand(configFlag *string) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the corpus, the stop-word list and every configured sink",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load(cmd, *configFlag)
			if err != nil {
				return err
			}
			report := preflight(cfg).Run(cmd.Context())
			renderChecks(cmd.OutOrStdout(), report)
			if report.Status != health.StatusUp {
				return apperrors.New(apperrors.ErrSinkFailed, apperrors.ExitSink, "preflight checks failed")
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// preflight registers one check per input and per network sink.
func preflight(cfg *config.Config) *health.Checker {
	checker := health.NewChecker()
	checker.Register("corpus", func(ctx context.Context) error {
		docs, err := corpus.Load(ctx, cfg.Corpus.Directory, cfg.Corpus.Pattern)
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			return fmt.Errorf("no files matching %q in %s", cfg.Corpus.Pattern, cfg.Corpus.Directory)
		}
		return nil
	})
	checker.Register("stopwords", func(context.Context) error {
		_, err := corpus.LoadStopWords(cfg.Corpus.StopWordsFile)
		return err
	})
	if cfg.Output.Path != "" && cfg.Output.Path != "-" && (cfg.HasSink(config.SinkCSV) || cfg.HasSink(config.SinkJSON)) {
		checker.Register("output", func(context.Context) error {
			f, err := os.OpenFile(cfg.Output.Path, os.O_WRONLY|os.O_CREATE, 0o644)
			if err != nil {
				return err
			}
			return f.Close()
		})
	}
	if cfg.HasSink(config.SinkPostgres) {
		checker.Register(config.SinkPostgres, func(ctx context.Context) error {
			client, err := postgres.New(ctx, cfg.Postgres)
			if err != nil {
				return err
			}
			return client.Close()
		})
	}
	if cfg.HasSink(config.SinkKafka) {
		checker.Register(config.SinkKafka, func(ctx context.Context) error {
			return kafka.Ping(ctx, cfg.Kafka)
		})
	}
	if cfg.HasSink(config.SinkRedis) {
		checker.Register(config.SinkRedis, func(ctx context.Context) error {
			client, err := redis.NewClient(ctx, cfg.Redis)
			if err != nil {
				return err
			}
			return client.Close()
		})
	}
	return checker
}

func renderChecks(w io.Writer, report health.Report) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"check", "status", "latency", "message"})
	for _, r := range report.Results {
		tw.AppendRow(table.Row{r.Name, string(r.Status), r.Latency.String(), r.Message})
	}
	tw.AppendFooter(table.Row{"", string(report.Status), "", ""})
	tw.Render()
}
