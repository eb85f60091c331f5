package testutil

import (
	"context"
	"fmt"
	"sync"
)

// ExecutedQuery records one Execute call made against the fake executor.
type ExecutedQuery struct {
	SQL    string
	Params []any
}

// FakeExecutor implements entity.Executor for tests. Queued results are
// consumed in FIFO order, one per Execute call; a set Err is returned on
// every call instead. Every call is recorded in Queries.
type FakeExecutor struct {
	mu      sync.Mutex
	Queries []ExecutedQuery
	Err     error
	results [][]map[string]any
}

// NewFakeExecutor queues the given result sets in call order.
func NewFakeExecutor(results ...[]map[string]any) *FakeExecutor {
	return &FakeExecutor{results: results}
}

// Execute records the call and pops the next queued result.
func (f *FakeExecutor) Execute(_ context.Context, sql string, params []any) ([]map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Queries = append(f.Queries, ExecutedQuery{SQL: sql, Params: params})
	if f.Err != nil {
		return nil, f.Err
	}
	if len(f.results) == 0 {
		return nil, fmt.Errorf("fake executor: no result queued for query %q", sql)
	}
	next := f.results[0]
	f.results = f.results[1:]
	return next, nil
}

// CountRow builds the single-row result a COUNT(*) query produces. The
// value is an int64, matching what pgx returns for bigint aggregates.
func CountRow(total int) []map[string]any {
	return []map[string]any{{"count": int64(total)}}
}
