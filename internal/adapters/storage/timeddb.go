package storage

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"celula/internal/adapters/http/perf"
)

// SQLDB is the database interface used by all stores.
// Both *sql.DB and *TimedDB satisfy this interface.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

var _ SQLDB = (*sql.DB)(nil)

// DefaultSlowQuery is used when no threshold is configured.
const DefaultSlowQuery = 100 * time.Millisecond

var tracer = otel.Tracer("celula/storage")

// TimedDB wraps a *sql.DB to trace every statement, log slow ones and
// record timings to a collector.
type TimedDB struct {
	db        *sql.DB
	collector *perf.Collector
	threshold time.Duration
}

var _ SQLDB = (*TimedDB)(nil)

// NewTimedDB wraps a *sql.DB with timing instrumentation.
// PRE: db is a valid database connection; collector may be nil
// POST: a non-positive threshold selects DefaultSlowQuery
func NewTimedDB(db *sql.DB, collector *perf.Collector, threshold time.Duration) *TimedDB {
	if threshold <= 0 {
		threshold = DefaultSlowQuery
	}
	return &TimedDB{db: db, collector: collector, threshold: threshold}
}

// RawDB returns the underlying *sql.DB (needed for schema setup and pool config).
func (t *TimedDB) RawDB() *sql.DB {
	return t.db
}

// Label names a statement by its verb and first table, e.g. "SELECT membro".
func Label(query string) string {
	words := strings.Fields(query)
	if len(words) == 0 {
		return "EMPTY"
	}
	verb := strings.ToUpper(words[0])
	for i, w := range words[:len(words)-1] {
		switch strings.ToUpper(w) {
		case "FROM", "INTO", "UPDATE":
			return verb + " " + strings.Trim(words[i+1], "(`\"")
		}
	}
	return verb
}

func (t *TimedDB) start(ctx context.Context, query string) (context.Context, trace.Span, time.Time) {
	ctx, span := tracer.Start(ctx, "sql "+Label(query),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("db.system", "sqlite")),
	)
	return ctx, span, time.Now()
}

// finish ends the span and records the timing.
func (t *TimedDB) finish(span trace.Span, query string, start time.Time, err error) {
	elapsed := time.Since(start)
	if err != nil && err != sql.ErrNoRows {
		span.RecordError(err)
	}
	span.End()

	label := Label(query)
	durationMs := float64(elapsed.Microseconds()) / 1000.0
	if elapsed >= t.threshold {
		slog.Warn("slow_query", "op", label, "duration_ms", durationMs)
	} else {
		slog.Debug("query", "op", label, "duration_ms", durationMs)
	}
	t.collector.Record(perf.Entry{
		Kind:       perf.KindQuery,
		Path:       label,
		DurationMs: durationMs,
		Timestamp:  start,
	})
}

// ExecContext wraps sql.DB.ExecContext with timing.
func (t *TimedDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx, span, start := t.start(ctx, query)
	result, err := t.db.ExecContext(ctx, query, args...)
	t.finish(span, query, start, err)
	return result, err
}

// QueryContext wraps sql.DB.QueryContext with timing.
func (t *TimedDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	ctx, span, start := t.start(ctx, query)
	rows, err := t.db.QueryContext(ctx, query, args...)
	t.finish(span, query, start, err)
	return rows, err
}

// QueryRowContext wraps sql.DB.QueryRowContext with timing.
func (t *TimedDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	ctx, span, start := t.start(ctx, query)
	row := t.db.QueryRowContext(ctx, query, args...)
	t.finish(span, query, start, row.Err())
	return row
}

// BeginTx wraps sql.DB.BeginTx with timing.
func (t *TimedDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	ctx, span, start := t.start(ctx, "BEGIN")
	tx, err := t.db.BeginTx(ctx, opts)
	t.finish(span, "BEGIN", start, err)
	return tx, err
}

// Close closes the underlying database connection.
func (t *TimedDB) Close() error {
	return t.db.Close()
}

// Ping verifies the database connection.
func (t *TimedDB) Ping(ctx context.Context) error {
	return t.db.PingContext(ctx)
}
