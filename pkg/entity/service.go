package entity

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/fieldlinehq/listquery/pkg/clause"
	"github.com/fieldlinehq/listquery/pkg/paginate"
)

// Executor is the database execution contract the service runs against: a
// parameterized query using $1, $2, … positional placeholders, returning
// rows as generic records. Timeouts, retries, and cancellation belong to
// the implementation; the service passes the context through untouched.
type Executor interface {
	Execute(ctx context.Context, sql string, params []any) ([]map[string]any, error)
}

// FindOptions is the raw, untrusted list request for one entity. All fields
// are optional; unauthorized field names are dropped, out-of-range
// pagination is clamped, and neither ever surfaces as an error.
type FindOptions struct {
	Search    string
	Filters   clause.Filters
	SortBy    string
	SortOrder string
	Page      *int
	Limit     *int
	MaxLimit  int
}

// AppliedFilters echoes what actually shaped the executed query: the search
// term if it was used, the authorized filter subset, and the resolved sort.
// Callers detect silently-dropped fields by comparing this against what
// they requested.
type AppliedFilters struct {
	Search    string         `json:"search,omitempty"`
	Filters   clause.Filters `json:"filters,omitempty"`
	SortBy    string         `json:"sortBy"`
	SortOrder string         `json:"sortOrder"`
}

// Result is the query result envelope returned to route handlers.
type Result struct {
	Data           []map[string]any  `json:"data"`
	Count          int               `json:"count"`
	Pagination     paginate.Metadata `json:"pagination"`
	AppliedFilters AppliedFilters    `json:"appliedFilters"`
}

// Service executes generic list queries for registered entities. It is
// stateless apart from its collaborators and safe for concurrent use.
type Service struct {
	registry *Registry
	db       Executor
	logger   *zap.Logger
}

// NewService creates a Service. A nil logger disables logging.
func NewService(registry *Registry, db Executor, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		registry: registry,
		db:       db,
		logger:   logger,
	}
}

// FindAll runs the full list query for an entity: compile clauses from the
// entity's whitelists, count matching rows, then fetch the requested page.
// The two round-trips are sequential and not wrapped in a transaction, so
// count and data may reflect slightly different snapshots under concurrent
// writes; that relaxation is accepted. Only unknown entity names and
// database failures return errors.
func (s *Service) FindAll(ctx context.Context, name string, opts FindOptions) (*Result, error) {
	d, err := s.registry.Get(name)
	if err != nil {
		return nil, err
	}

	params := paginate.Validate(paginate.Options{
		Page:     opts.Page,
		Limit:    opts.Limit,
		MaxLimit: opts.MaxLimit,
	})
	q := clause.Build(clause.Request{
		Search:    opts.Search,
		Filters:   opts.Filters,
		SortBy:    opts.SortBy,
		SortOrder: opts.SortOrder,
	}, d.Whitelist())

	where := q.Where
	if where == "" {
		where = "TRUE"
	}

	total, err := s.countWhere(ctx, d.TableName, where, q.Params)
	if err != nil {
		return nil, fmt.Errorf("count %q: %w", name, err)
	}

	//nolint:gosec // table, projection, and clause fields come from the descriptor's whitelists, not the request
	dataSQL := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY %s %s",
		d.projection(), d.TableName, where, q.OrderBy, paginate.LimitClause(params.Limit, params.Offset))
	rows, err := s.db.Execute(ctx, dataSQL, q.Params)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", name, err)
	}
	if rows == nil {
		rows = []map[string]any{}
	}

	s.logger.Debug("entity query executed",
		zap.String("entity", name),
		zap.Int("rows", len(rows)),
		zap.Int("total", total),
		zap.Int("page", params.Page),
	)

	appliedSearch := strings.TrimSpace(opts.Search)
	if len(d.Searchable) == 0 {
		appliedSearch = ""
	}

	return &Result{
		Data:       rows,
		Count:      len(rows),
		Pagination: paginate.Generate(params.Page, params.Limit, total),
		AppliedFilters: AppliedFilters{
			Search:    appliedSearch,
			Filters:   q.Applied,
			SortBy:    q.OrderBy.Field,
			SortOrder: q.OrderBy.Order,
		},
	}, nil
}

// Count returns only the matching-row total for an entity, compiled from
// the same search and filter input as FindAll but with a single round-trip.
func (s *Service) Count(ctx context.Context, name string, opts FindOptions) (int, error) {
	d, err := s.registry.Get(name)
	if err != nil {
		return 0, err
	}

	q := clause.Build(clause.Request{
		Search:  opts.Search,
		Filters: opts.Filters,
	}, d.Whitelist())

	where := q.Where
	if where == "" {
		where = "TRUE"
	}
	total, err := s.countWhere(ctx, d.TableName, where, q.Params)
	if err != nil {
		return 0, fmt.Errorf("count %q: %w", name, err)
	}
	return total, nil
}

// countWhere runs the COUNT(*) round-trip for a compiled WHERE expression.
func (s *Service) countWhere(ctx context.Context, table, where string, params []any) (int, error) {
	rows, err := s.db.Execute(ctx, "SELECT COUNT(*) FROM "+table+" WHERE "+where, params)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("count query returned no rows")
	}
	if v, ok := rows[0]["count"]; ok {
		return toInt(v)
	}
	// Some executors name the aggregate column differently; a single-column
	// first row is still unambiguous.
	if len(rows[0]) == 1 {
		for _, v := range rows[0] {
			return toInt(v)
		}
	}
	return 0, fmt.Errorf("count query returned no count column")
}

// toInt coerces the driver-dependent COUNT(*) value to an int.
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		return int(n), nil
	case string:
		return strconv.Atoi(n)
	default:
		return 0, fmt.Errorf("unexpected count type %T", v)
	}
}
