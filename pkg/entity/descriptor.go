// Package entity provides the metadata-driven generic entity service: named
// entity descriptors (field whitelists, default sort, table name), a
// concurrency-safe registry, and a service that compiles and executes list
// queries for any registered entity against a database execution contract.
package entity

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/fieldlinehq/listquery/pkg/clause"
)

// Sentinel errors returned by the registry and service.
var (
	ErrNotRegistered     = errors.New("entity not registered")
	ErrDuplicate         = errors.New("entity already registered")
	ErrInvalidDescriptor = errors.New("invalid entity descriptor")
)

// Descriptor is one entity's query metadata. It is owned by configuration
// and read-only to the engine: every listed field is trusted to exist in
// the underlying table, and the engine never checks that against the live
// schema. Structural validation happens once, at registration.
type Descriptor struct {
	TableName   string      `json:"table"`
	Columns     []string    `json:"columns,omitempty"` // Optional projection; empty selects *.
	Searchable  []string    `json:"searchable"`
	Filterable  []string    `json:"filterable"`
	Sortable    []string    `json:"sortable"`
	DefaultSort clause.Sort `json:"defaultSort"`
}

// Whitelist returns the clause-compiler view of the descriptor.
func (d Descriptor) Whitelist() clause.Whitelist {
	return clause.Whitelist{
		Searchable:  d.Searchable,
		Filterable:  d.Filterable,
		Sortable:    d.Sortable,
		DefaultSort: d.DefaultSort,
	}
}

// projection returns the SELECT column list, or * when none is configured.
func (d Descriptor) projection() string {
	if len(d.Columns) == 0 {
		return "*"
	}
	return strings.Join(d.Columns, ", ")
}

// identPattern matches a plain SQL identifier. Descriptor names are
// interpolated into statements, so anything fancier is rejected up front.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks the descriptor's structure: a table name must be present,
// and every table, column, and sort field must be identifier-shaped. This
// is defense in depth ahead of the per-request whitelist checks.
func (d Descriptor) Validate() error {
	if d.TableName == "" {
		return fmt.Errorf("%w: table name is required", ErrInvalidDescriptor)
	}
	if !identPattern.MatchString(d.TableName) {
		return fmt.Errorf("%w: table name %q is not a valid identifier", ErrInvalidDescriptor, d.TableName)
	}
	for _, group := range []struct {
		kind   string
		fields []string
	}{
		{"column", d.Columns},
		{"searchable field", d.Searchable},
		{"filterable field", d.Filterable},
		{"sortable field", d.Sortable},
	} {
		for _, f := range group.fields {
			if !identPattern.MatchString(f) {
				return fmt.Errorf("%w: %s %q is not a valid identifier", ErrInvalidDescriptor, group.kind, f)
			}
		}
	}
	if f := d.DefaultSort.Field; f != "" && !identPattern.MatchString(f) {
		return fmt.Errorf("%w: default sort field %q is not a valid identifier", ErrInvalidDescriptor, f)
	}
	if o := strings.ToUpper(d.DefaultSort.Order); o != "" && o != "ASC" && o != "DESC" {
		return fmt.Errorf("%w: default sort order %q must be ASC or DESC", ErrInvalidDescriptor, d.DefaultSort.Order)
	}
	return nil
}
