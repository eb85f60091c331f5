package entity_test

import (
	"errors"
	"testing"

	"github.com/fieldlinehq/listquery/internal/testutil"
	"github.com/fieldlinehq/listquery/pkg/clause"
	"github.com/fieldlinehq/listquery/pkg/entity"
)

func TestDescriptorValidateAccepts(t *testing.T) {
	if err := testutil.TechnicianDescriptor().Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	if err := testutil.WorkOrderDescriptor().Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestDescriptorValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*entity.Descriptor)
	}{
		{"missing table", func(d *entity.Descriptor) { d.TableName = "" }},
		{"table with spaces", func(d *entity.Descriptor) { d.TableName = "recon devices" }},
		{"table with quote", func(d *entity.Descriptor) { d.TableName = `users"; --` }},
		{"searchable with semicolon", func(d *entity.Descriptor) { d.Searchable = []string{"email; DROP TABLE x"} }},
		{"filterable with dash", func(d *entity.Descriptor) { d.Filterable = []string{"skill-level"} }},
		{"sortable with parens", func(d *entity.Descriptor) { d.Sortable = []string{"lower(email)"} }},
		{"column leading digit", func(d *entity.Descriptor) { d.Columns = []string{"1st_name"} }},
		{"default sort field invalid", func(d *entity.Descriptor) { d.DefaultSort.Field = "created at" }},
		{"default sort order invalid", func(d *entity.Descriptor) { d.DefaultSort.Order = "RANDOM" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := testutil.TechnicianDescriptor()
			tt.mutate(&d)
			err := d.Validate()
			if !errors.Is(err, entity.ErrInvalidDescriptor) {
				t.Errorf("Validate() = %v, want ErrInvalidDescriptor", err)
			}
		})
	}
}

func TestDescriptorWhitelist(t *testing.T) {
	d := testutil.TechnicianDescriptor()
	w := d.Whitelist()

	if len(w.Searchable) != len(d.Searchable) || len(w.Filterable) != len(d.Filterable) {
		t.Errorf("whitelist = %+v, want descriptor field lists", w)
	}
	if w.DefaultSort != (clause.Sort{Field: "created_at", Order: "DESC"}) {
		t.Errorf("default sort = %+v", w.DefaultSort)
	}
}
