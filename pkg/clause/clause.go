// Package clause compiles untrusted list-request input (search text, field
// filters, sort requests) into parameterized SQL fragments. Field names are
// only ever taken from per-entity whitelists, never from the request, so the
// emitted fragments are safe to interpolate into a statement; values always
// travel as positional parameters.
package clause

import "strings"

// Whitelist holds the per-entity field authorization lists consumed by the
// clause builders. Fields listed here are trusted to exist in the underlying
// table; the compiler never checks them against the live schema.
type Whitelist struct {
	Searchable  []string // Columns eligible for free-text search, in emission order.
	Filterable  []string // Columns eligible for exact/operator filtering.
	Sortable    []string // Columns eligible for ORDER BY.
	DefaultSort Sort     // Used when no valid sort is requested.
}

// Request is the untrusted, structured list-request input.
type Request struct {
	Search    string
	Filters   Filters
	SortBy    string
	SortOrder string
}

// Query is a compiled request: a WHERE expression with positionally aligned
// parameters, a resolved sort, and the authorized filter subset that
// actually shaped the query.
type Query struct {
	Where   string // Empty when no conditions apply.
	Params  []any
	OrderBy Sort    // Always resolved to a concrete field and direction.
	Applied Filters // Authorized filters that emitted at least one comparison.
}

// Search builds a free-text search clause: the trimmed term wrapped in %%
// wildcards, compared case-insensitively (ILIKE) against every searchable
// field, joined with OR and parenthesized. Each field consumes one
// placeholder bound to the same pattern. An empty term or empty field list
// is a no-op, not an error; the empty string is returned.
func Search(term string, searchable []string, p *Params) string {
	term = strings.TrimSpace(term)
	if term == "" || len(searchable) == 0 {
		return ""
	}

	pattern := "%" + term + "%"
	parts := make([]string, len(searchable))
	for i, field := range searchable {
		parts[i] = field + " ILIKE " + p.Next(pattern)
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

// CombineWhere joins non-empty clause fragments with AND. A single survivor
// is returned unwrapped; the empty string means no conditions survived.
func CombineWhere(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, " AND ")
}

// Build is the single entry point for compiling a full request: it runs the
// search and filter builders in fixed order on a shared parameter sequence,
// combines their clauses, and resolves the sort independently.
func Build(req Request, w Whitelist) Query {
	p := NewParams()
	search := Search(req.Search, w.Searchable, p)
	filter, applied := Filter(req.Filters, w.Filterable, p)

	return Query{
		Where:   CombineWhere(search, filter),
		Params:  p.Values(),
		OrderBy: ResolveSort(req.SortBy, req.SortOrder, w.Sortable, w.DefaultSort),
		Applied: applied,
	}
}
