package clause_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/fieldlinehq/listquery/pkg/clause"
)

func TestFilterScalarEquality(t *testing.T) {
	p := clause.NewParams()
	got, applied := clause.Filter(
		clause.Filters{}.With("status", clause.Eq("active")),
		[]string{"status"}, p)

	if want := "status = $1"; got != want {
		t.Errorf("clause = %q, want %q", got, want)
	}
	if !reflect.DeepEqual(p.Values(), []any{"active"}) {
		t.Errorf("params = %v, want [active]", p.Values())
	}
	if len(applied) != 1 || applied[0].Field != "status" {
		t.Errorf("applied = %v, want the status entry", applied)
	}
}

func TestFilterOperatorRange(t *testing.T) {
	p := clause.NewParams()
	got, _ := clause.Filter(
		clause.Filters{}.With("priority", clause.Condition{Gte: "5", Lte: "10"}),
		[]string{"priority"}, p)

	if want := "priority >= $1 AND priority <= $2"; got != want {
		t.Errorf("clause = %q, want %q", got, want)
	}
	if !reflect.DeepEqual(p.Values(), []any{"5", "10"}) {
		t.Errorf("params = %v, want [5 10]", p.Values())
	}
}

func TestFilterAllOperators(t *testing.T) {
	p := clause.NewParams()
	got, _ := clause.Filter(
		clause.Filters{}.With("priority", clause.Condition{
			Gt:  1,
			Gte: 2,
			Lt:  9,
			Lte: 8,
			Not: 5,
		}),
		[]string{"priority"}, p)

	want := "priority > $1 AND priority >= $2 AND priority < $3 AND priority <= $4 AND priority <> $5"
	if got != want {
		t.Errorf("clause = %q, want %q", got, want)
	}
	if !reflect.DeepEqual(p.Values(), []any{1, 2, 9, 8, 5}) {
		t.Errorf("params = %v, want [1 2 9 8 5]", p.Values())
	}
}

func TestFilterInWithSlice(t *testing.T) {
	p := clause.NewParams()
	got, _ := clause.Filter(
		clause.Filters{}.With("status", clause.In("open", "assigned", "closed")),
		[]string{"status"}, p)

	if want := "status IN ($1, $2, $3)"; got != want {
		t.Errorf("clause = %q, want %q", got, want)
	}
	if !reflect.DeepEqual(p.Values(), []any{"open", "assigned", "closed"}) {
		t.Errorf("params = %v", p.Values())
	}
}

func TestFilterInWithDelimitedString(t *testing.T) {
	p := clause.NewParams()
	got, _ := clause.Filter(
		clause.Filters{}.With("region", clause.Condition{In: "north, south ,east"}),
		[]string{"region"}, p)

	if want := "region IN ($1, $2, $3)"; got != want {
		t.Errorf("clause = %q, want %q", got, want)
	}
	if !reflect.DeepEqual(p.Values(), []any{"north", "south", "east"}) {
		t.Errorf("params = %v, want trimmed elements", p.Values())
	}
}

// An in list that resolves to no elements drops the comparison entirely:
// IN () is not valid SQL and filter input never errors.
func TestFilterInEmptyListDropsComparison(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"empty slice", []any{}},
		{"blank delimited string", " , , "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := clause.NewParams()
			got, applied := clause.Filter(
				clause.Filters{}.With("status", clause.Condition{In: tt.in}),
				[]string{"status"}, p)

			if got != "" {
				t.Errorf("clause = %q, want empty", got)
			}
			if len(p.Values()) != 0 {
				t.Errorf("params = %v, want none", p.Values())
			}
			if len(applied) != 0 {
				t.Errorf("applied = %v, want empty", applied)
			}
		})
	}
}

func TestFilterUnauthorizedFieldsSilentlyDropped(t *testing.T) {
	p := clause.NewParams()
	got, applied := clause.Filter(
		clause.Filters{}.
			With("password_hash", clause.Eq("sneaky")).
			With("role", clause.Condition{Not: "admin"}),
		[]string{"status", "region"}, p)

	if got != "" {
		t.Errorf("clause = %q, want empty for unauthorized-only filters", got)
	}
	if len(p.Values()) != 0 {
		t.Errorf("params = %v, want none", p.Values())
	}
	if len(applied) != 0 {
		t.Errorf("applied = %v, want empty", applied)
	}
}

func TestFilterMixedAuthorization(t *testing.T) {
	p := clause.NewParams()
	got, applied := clause.Filter(
		clause.Filters{}.
			With("secret", clause.Eq("x")).
			With("status", clause.Eq("active")).
			With("internal_flag", clause.Eq(true)).
			With("region", clause.In("north", "south")),
		[]string{"status", "region"}, p)

	if want := "status = $1 AND region IN ($2, $3)"; got != want {
		t.Errorf("clause = %q, want %q", got, want)
	}
	if len(applied) != 2 {
		t.Fatalf("applied = %v, want 2 entries", applied)
	}
	if applied[0].Field != "status" || applied[1].Field != "region" {
		t.Errorf("applied order = [%s %s], want [status region]", applied[0].Field, applied[1].Field)
	}
}

func TestFilterPlaceholderContinuity(t *testing.T) {
	// A filter clause built after a search clause continues the shared
	// positional sequence: its first placeholder is the search clause's
	// final offset plus one.
	p := clause.NewParams()
	clause.Search("kim", []string{"first_name", "last_name"}, p)
	searchCount := p.Offset()

	got, _ := clause.Filter(
		clause.Filters{}.With("status", clause.Eq("active")),
		[]string{"status"}, p)

	if want := "status = $3"; got != want {
		t.Errorf("clause = %q, want %q (after %d search params)", got, want, searchCount)
	}
	if p.Offset() != 3 {
		t.Errorf("offset = %d, want 3", p.Offset())
	}
}

func TestFiltersMarshalJSON(t *testing.T) {
	f := clause.Filters{}.
		With("status", clause.Eq("active")).
		With("priority", clause.Condition{Gte: 5, Lte: 10})

	raw, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"status":"active","priority":{"gte":5,"lte":10}}`
	if string(raw) != want {
		t.Errorf("json = %s, want %s", raw, want)
	}
}
