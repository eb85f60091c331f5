// Package store provides the PostgreSQL implementation of the entity
// execution contract, backed by a pgx connection pool. Rows come back as
// generic records keyed by column name so the engine stays schema-agnostic.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/fieldlinehq/listquery/pkg/entity"
)

// Compile-time interface guard.
var _ entity.Executor = (*Postgres)(nil)

// Postgres executes parameterized queries against a pooled PostgreSQL
// connection. Metrics are optional; a nil *Metrics disables recording.
type Postgres struct {
	pool    *pgxpool.Pool
	logger  *zap.Logger
	metrics *Metrics
}

// New wraps an existing pool. A nil logger disables logging.
func New(pool *pgxpool.Pool, logger *zap.Logger, metrics *Metrics) *Postgres {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Postgres{
		pool:    pool,
		logger:  logger,
		metrics: metrics,
	}
}

// Connect opens a pool for the given DSN and verifies the connection.
func Connect(ctx context.Context, dsn string, logger *zap.Logger, metrics *Metrics) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return New(pool, logger, metrics), nil
}

// Execute runs a parameterized query and returns every row as a column-name
// keyed record. Database errors are wrapped with context and otherwise
// bubble to the caller unmodified; there is no retry at this layer.
func (p *Postgres) Execute(ctx context.Context, sql string, params []any) ([]map[string]any, error) {
	start := time.Now()

	rows, err := p.pool.Query(ctx, sql, params...)
	if err != nil {
		p.metrics.observe("error", time.Since(start))
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var records []map[string]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			p.metrics.observe("error", time.Since(start))
			return nil, fmt.Errorf("read row: %w", err)
		}
		record := make(map[string]any, len(fields))
		for i, fd := range fields {
			record[fd.Name] = values[i]
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		p.metrics.observe("error", time.Since(start))
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	elapsed := time.Since(start)
	p.metrics.observe("ok", elapsed)
	p.logger.Debug("query executed",
		zap.Int("rows", len(records)),
		zap.Duration("elapsed", elapsed),
	)
	return records, nil
}

// Ping verifies the pool is reachable.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close releases the underlying pool.
func (p *Postgres) Close() {
	p.pool.Close()
}
