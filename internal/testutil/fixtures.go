package testutil

import (
	"testing"

	"github.com/google/uuid"

	"github.com/fieldlinehq/listquery/pkg/clause"
	"github.com/fieldlinehq/listquery/pkg/entity"
)

// TechnicianDescriptor is the descriptor used by most engine tests. The
// field lists mirror the platform's technicians entity configuration.
func TechnicianDescriptor() entity.Descriptor {
	return entity.Descriptor{
		TableName:  "technicians",
		Searchable: []string{"first_name", "last_name", "email"},
		Filterable: []string{"status", "region", "skill_level"},
		Sortable:   []string{"id", "last_name", "created_at"},
		DefaultSort: clause.Sort{
			Field: "created_at",
			Order: "DESC",
		},
	}
}

// WorkOrderDescriptor carries an explicit column projection, unlike the
// technician fixture, so both SELECT shapes are covered.
func WorkOrderDescriptor() entity.Descriptor {
	return entity.Descriptor{
		TableName:  "work_orders",
		Columns:    []string{"id", "title", "status", "priority", "technician_id", "created_at"},
		Searchable: []string{"title", "description"},
		Filterable: []string{"status", "priority", "technician_id"},
		Sortable:   []string{"id", "priority", "created_at"},
		DefaultSort: clause.Sort{
			Field: "created_at",
			Order: "DESC",
		},
	}
}

// NewRegistry returns a registry preloaded with the technicians and
// work_orders fixtures.
func NewRegistry(t *testing.T) *entity.Registry {
	t.Helper()

	reg := entity.NewRegistry(nil)
	if err := reg.Register("technicians", TechnicianDescriptor()); err != nil {
		t.Fatalf("register technicians: %v", err)
	}
	if err := reg.Register("work_orders", WorkOrderDescriptor()); err != nil {
		t.Fatalf("register work_orders: %v", err)
	}
	return reg
}

// TechnicianRow builds a plausible technicians row with a fresh UUID
// primary key, mirroring the platform's UUID-keyed tables.
func TechnicianRow(firstName, lastName, status string) map[string]any {
	return map[string]any{
		"id":         uuid.NewString(),
		"first_name": firstName,
		"last_name":  lastName,
		"email":      firstName + "." + lastName + "@example.com",
		"status":     status,
	}
}
