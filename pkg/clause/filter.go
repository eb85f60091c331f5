package clause

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Condition is the value side of one filter entry: either an exact match
// (Eq set, the scalar form) or one or more operator comparisons. Set
// operators combine with AND. In accepts a slice or a comma-delimited
// string that is split into elements.
type Condition struct {
	Eq  any `json:"eq,omitempty"`
	Gt  any `json:"gt,omitempty"`
	Gte any `json:"gte,omitempty"`
	Lt  any `json:"lt,omitempty"`
	Lte any `json:"lte,omitempty"`
	Not any `json:"not,omitempty"`
	In  any `json:"in,omitempty"`
}

// Eq returns the scalar exact-match condition.
func Eq(v any) Condition {
	return Condition{Eq: v}
}

// In returns a membership condition over the given values.
func In(values ...any) Condition {
	return Condition{In: values}
}

// Entry pairs a field name with its condition.
type Entry struct {
	Field string
	Cond  Condition
}

// Filters is an insertion-ordered filter specification. Order matters:
// comparisons are emitted, and placeholders numbered, in entry order.
type Filters []Entry

// With appends a filter entry, preserving insertion order.
func (f Filters) With(field string, c Condition) Filters {
	return append(f, Entry{Field: field, Cond: c})
}

// Filter builds the filter clause: one comparison per recognized operator,
// all joined with AND. Fields absent from the filterable whitelist are
// silently dropped — a security boundary, not a validation failure; an
// unauthorized key must never surface in the emitted SQL or error to the
// caller. The second return is the authorized subset that emitted at least
// one comparison, echoed to callers for observability.
func Filter(filters Filters, filterable []string, p *Params) (string, Filters) {
	if len(filters) == 0 || len(filterable) == 0 {
		return "", nil
	}

	allowed := make(map[string]struct{}, len(filterable))
	for _, f := range filterable {
		allowed[f] = struct{}{}
	}

	var parts []string
	var applied Filters
	for _, e := range filters {
		if _, ok := allowed[e.Field]; !ok {
			continue
		}
		comparisons := e.Cond.compile(e.Field, p)
		if len(comparisons) == 0 {
			continue
		}
		parts = append(parts, comparisons...)
		applied = append(applied, e)
	}
	return strings.Join(parts, " AND "), applied
}

// compile emits the comparisons for one field in a fixed operator order so
// output and placeholder numbering are deterministic.
func (c Condition) compile(field string, p *Params) []string {
	var parts []string
	if c.Eq != nil {
		parts = append(parts, field+" = "+p.Next(c.Eq))
	}
	for _, op := range []struct {
		sql string
		val any
	}{
		{" > ", c.Gt},
		{" >= ", c.Gte},
		{" < ", c.Lt},
		{" <= ", c.Lte},
		{" <> ", c.Not},
	} {
		if op.val != nil {
			parts = append(parts, field+op.sql+p.Next(op.val))
		}
	}
	if c.In != nil {
		if elems := splitList(c.In); len(elems) > 0 {
			placeholders := make([]string, len(elems))
			for i, v := range elems {
				placeholders[i] = p.Next(v)
			}
			parts = append(parts, field+" IN ("+strings.Join(placeholders, ", ")+")")
		}
		// An empty element list drops the comparison entirely; IN () is
		// not valid SQL and the engine never errors on filter input.
	}
	return parts
}

// splitList normalizes an In value to a slice of elements. Delimited
// strings are split on commas with blanks discarded; a lone scalar becomes
// a one-element list.
func splitList(v any) []any {
	switch s := v.(type) {
	case string:
		var out []any
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	case []any:
		return s
	case []string:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out
	case []int:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out
	case []int64:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out
	case []float64:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out
	default:
		return []any{v}
	}
}

// MarshalJSON renders Filters as an ordered JSON object keyed by field
// name, matching the wire shape of the original filter specification.
func (f Filters) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Field)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Cond)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON renders the scalar form as its bare value and the operator
// form as an operator map.
func (c Condition) MarshalJSON() ([]byte, error) {
	if c.Eq != nil && c.Gt == nil && c.Gte == nil && c.Lt == nil && c.Lte == nil && c.Not == nil && c.In == nil {
		return json.Marshal(c.Eq)
	}
	type operators Condition // Avoid recursing into this method.
	return json.Marshal(operators(c))
}
