package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/internal/report"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/postgres"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/redis"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/resilience"
)

// openSinks builds the configured sinks. Network sinks come first and retry
// their writes; csv, json and table render into the returned fileOutput,
// which reaches stdout or the output path only after every sink has
// accepted the report. Configured order is kept within each group.
func openSinks(ctx context.Context, cfg *config.Config, m *metrics.Metrics, stdout io.Writer) (*report.Multi, *fileOutput, func(), error) {
	var network, files []report.Sink
	closeAll := func() {
		if err := report.NewMulti(nil, append(network, files...)...).Close(); err != nil {
			slog.Warn("closing sinks", "error", err)
		}
	}
	output := &fileOutput{path: cfg.Output.Path, stdout: stdout}
	retry := resilience.FromConfig(cfg.Retry)

	for _, name := range cfg.Output.Sinks {
		switch name {
		case config.SinkCSV:
			files = append(files, report.NewCSVSink(output.buffer(false)))
		case config.SinkJSON:
			files = append(files, report.NewJSONSink(output.buffer(false)))
		case config.SinkTable:
			files = append(files, report.NewTableSink(output.buffer(true)))
		case config.SinkPostgres:
			client, err := postgres.New(ctx, cfg.Postgres)
			if err != nil {
				closeAll()
				return nil, nil, nil, sinkError(name, err)
			}
			network = append(network, report.WithRetry(report.NewPostgresSink(client), retry))
		case config.SinkKafka:
			producer, err := kafka.NewProducer(cfg.Kafka)
			if err != nil {
				closeAll()
				return nil, nil, nil, sinkError(name, err)
			}
			network = append(network, report.WithRetry(report.NewKafkaSink(producer), retry))
		case config.SinkRedis:
			client, err := redis.NewClient(ctx, cfg.Redis)
			if err != nil {
				closeAll()
				return nil, nil, nil, sinkError(name, err)
			}
			network = append(network, report.WithRetry(report.NewRedisSink(client, cfg.Redis.KeyPrefix, cfg.Redis.TTL), retry))
		default:
			closeAll()
			return nil, nil, nil, apperrors.Configf(apperrors.ErrInvalidConfig, "unknown output sink %q", name)
		}
	}
	return report.NewMulti(m, append(network, files...)...), output, closeAll, nil
}

// fileOutput holds the rendered csv, json and table output of one run.
type fileOutput struct {
	path   string
	stdout io.Writer
	parts  []outputPart
}

type outputPart struct {
	stdout bool
	buf    *bytes.Buffer
}

// buffer returns a writer for one file sink. table output always goes to
// stdout; csv and json share the output path.
func (o *fileOutput) buffer(stdout bool) io.WriteCloser {
	part := outputPart{stdout: stdout, buf: &bytes.Buffer{}}
	o.parts = append(o.parts, part)
	return report.NopCloser(part.buf)
}

// flush copies every buffer to its destination in configured order. The
// output path is created here and nowhere earlier.
func (o *fileOutput) flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var file io.WriteCloser
	for _, part := range o.parts {
		dst := o.stdout
		if !part.stdout {
			if file == nil {
				w, err := report.OpenOutput(o.path, o.stdout)
				if err != nil {
					return err
				}
				file = w
			}
			dst = file
		}
		if _, err := part.buf.WriteTo(dst); err != nil {
			if file != nil {
				file.Close()
			}
			return apperrors.Wrapf(apperrors.ErrSinkFailed, apperrors.ExitSink, err, "writing output: %v", err)
		}
	}
	if file != nil {
		if err := file.Close(); err != nil {
			return apperrors.Wrapf(apperrors.ErrSinkFailed, apperrors.ExitSink, err, "closing output %s: %v", o.path, err)
		}
	}
	return nil
}

func sinkError(name string, err error) error {
	return apperrors.Wrapf(apperrors.ErrSinkFailed, apperrors.ExitSink, err, "connecting %s sink: %v", name, err)
}
