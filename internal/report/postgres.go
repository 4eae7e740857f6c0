package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/postgres"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/resilience"
)

// schema is applied before the first write. Runs are never overwritten;
// re-running a corpus adds a new run.
const schema = `
CREATE TABLE IF NOT EXISTS concordance_runs (
    run_id        TEXT PRIMARY KEY,
    generated_at  TIMESTAMPTZ NOT NULL,
    directory     TEXT NOT NULL,
    top_n         INTEGER NOT NULL,
    strategy      TEXT NOT NULL,
    documents     INTEGER NOT NULL,
    tokens        INTEGER NOT NULL,
    sentences     INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS concordance_entries (
    run_id          TEXT NOT NULL REFERENCES concordance_runs(run_id) ON DELETE CASCADE,
    rank            INTEGER NOT NULL,
    word            TEXT NOT NULL,
    frequency       INTEGER NOT NULL,
    document_names  TEXT[] NOT NULL,
    sentences       TEXT[] NOT NULL,
    PRIMARY KEY (run_id, rank)
);`

const (
	insertRun = `INSERT INTO concordance_runs
    (run_id, generated_at, directory, top_n, strategy, documents, tokens, sentences)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	insertEntry = `INSERT INTO concordance_entries
    (run_id, rank, word, frequency, document_names, sentences)
    VALUES ($1, $2, $3, $4, $5, $6)`
)

// txRunner is satisfied by *postgres.Client.
type txRunner interface {
	InTx(ctx context.Context, fn func(tx *sql.Tx) error) error
	Close() error
}

var _ txRunner = (*postgres.Client)(nil)

// PostgresSink stores a run and its entries in one transaction.
type PostgresSink struct {
	db     txRunner
	logger *slog.Logger
}

// NewPostgresSink returns a sink that stores runs through db.
func NewPostgresSink(db *postgres.Client) *PostgresSink {
	return &PostgresSink{
		db:     db,
		logger: slog.Default().With("component", "postgres-sink"),
	}
}

// Name returns "postgres".
func (s *PostgresSink) Name() string { return "postgres" }

// Write applies the schema once, then inserts the run and its entries in
// one transaction. Constraint violations are marked permanent.
func (s *PostgresSink) Write(ctx context.Context, r *Report) error {
	err := s.db.InTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, schema); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertRun, runArgs(r)...); err != nil {
			return fmt.Errorf("inserting run %s: %w", r.RunID, err)
		}
		stmt, err := tx.PrepareContext(ctx, insertEntry)
		if err != nil {
			return fmt.Errorf("preparing entry insert: %w", err)
		}
		defer stmt.Close()
		for rank := range r.Entries {
			if _, err := stmt.ExecContext(ctx, entryArgs(r, rank)...); err != nil {
				return fmt.Errorf("inserting entry %q: %w", r.Entries[rank].Word, err)
			}
		}
		return nil
	})
	if err != nil {
		if isConstraintViolation(err) {
			return resilience.Permanent(err)
		}
		return err
	}
	s.logger.Info("run stored", "run_id", r.RunID, "entries", len(r.Entries))
	return nil
}

// Close closes the database client.
func (s *PostgresSink) Close() error {
	return s.db.Close()
}

func runArgs(r *Report) []any {
	return []any{
		r.RunID,
		r.GeneratedAt,
		r.Directory,
		r.TopN,
		r.Strategy,
		r.Stats.Documents,
		r.Stats.Tokens,
		r.Stats.Sentences,
	}
}

// entryArgs binds the entry at rank (0-based) for insertEntry. Ranks are
// stored 1-based.
func entryArgs(r *Report, rank int) []any {
	e := r.Entries[rank]
	return []any{
		r.RunID,
		rank + 1,
		e.Word,
		e.Frequency,
		pq.Array(nonNil(e.Documents)),
		pq.Array(nonNil(e.Sentences)),
	}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

// isConstraintViolation reports SQLSTATE class 23 errors, which a retry of
// the same rows cannot fix.
func isConstraintViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Class() == "23"
}
