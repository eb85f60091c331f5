// Package paginate validates page/limit input and computes result metadata
// for paginated list queries. All functions are pure: malformed input is
// clamped, never rejected, so callers can pass request values straight
// through without pre-validation.
package paginate

import (
	"fmt"
	"strconv"
)

// Defaults applied when the request leaves page or limit unset. MaxLimit
// caps the per-page row count regardless of what the request asks for.
const (
	DefaultPage     = 1
	DefaultLimit    = 50
	DefaultMaxLimit = 200
)

// Options is the raw pagination request. Nil Page or Limit means unset and
// takes the default; pointed-to values are clamped. MaxLimit of zero uses
// DefaultMaxLimit.
type Options struct {
	Page     *int
	Limit    *int
	MaxLimit int
}

// Params is validated pagination: page ≥ 1, limit in [1, maxLimit], and the
// offset computed from both after clamping.
type Params struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Metadata describes one page of results relative to the total row count.
type Metadata struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// Int returns a pointer to v, for building Options literals.
func Int(v int) *int {
	return &v
}

// FromStrings coerces string-typed page/limit (e.g. query parameters) into
// Options. Empty or non-numeric values are treated as unset.
func FromStrings(page, limit string) Options {
	var opts Options
	if n, err := strconv.Atoi(page); err == nil {
		opts.Page = &n
	}
	if n, err := strconv.Atoi(limit); err == nil {
		opts.Limit = &n
	}
	return opts
}

// Validate applies defaults and clamps out-of-range values: page snaps up
// to 1, limit snaps into [1, maxLimit]. The offset is always computed from
// the clamped values.
func Validate(opts Options) Params {
	maxLimit := opts.MaxLimit
	if maxLimit <= 0 {
		maxLimit = DefaultMaxLimit
	}

	page := DefaultPage
	if opts.Page != nil {
		page = *opts.Page
	}
	if page < 1 {
		page = 1
	}

	limit := DefaultLimit
	if opts.Limit != nil {
		limit = *opts.Limit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Generate computes page metadata from the requested page and the total row
// count. TotalPages is at least 1 even when total is 0. HasNext and HasPrev
// are computed from the requested page as-is: a page beyond the last page
// reports hasPrev true and hasNext false rather than erroring.
func Generate(page, limit, total int) Metadata {
	if limit < 1 {
		limit = 1
	}
	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	return Metadata{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// LimitClause formats the LIMIT/OFFSET fragment. Limit and offset are
// server-computed integers, never request strings, so literal interpolation
// is safe here.
func LimitClause(limit, offset int) string {
	return fmt.Sprintf("LIMIT %d OFFSET %d", limit, offset)
}

// Paginate validates the options and generates metadata for the given total
// in one call.
func Paginate(opts Options, total int) (Params, Metadata) {
	params := Validate(opts)
	return params, Generate(params.Page, params.Limit, total)
}
