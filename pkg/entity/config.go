package entity

import (
	"fmt"
	"sort"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/fieldlinehq/listquery/pkg/clause"
)

// LoadRegistry builds a Registry from the "entities" configuration tree.
// Expected shape:
//
//	entities:
//	  technicians:
//	    table: technicians
//	    columns: [id, first_name, last_name, email, status]
//	    searchable: [first_name, last_name, email]
//	    filterable: [status, region, skill_level]
//	    sortable: [id, last_name, created_at]
//	    default_sort:
//	      field: created_at
//	      order: DESC
//
// Entities register in name order so failures are deterministic. Every
// descriptor goes through the same registration-time validation as
// programmatic registration.
func LoadRegistry(v *viper.Viper, logger *zap.Logger) (*Registry, error) {
	entities := v.Sub("entities")
	if entities == nil {
		return nil, fmt.Errorf("load entities: no %q configuration present", "entities")
	}

	names := make([]string, 0)
	for name := range entities.AllSettings() {
		names = append(names, name)
	}
	sort.Strings(names)

	reg := NewRegistry(logger)
	for _, name := range names {
		ec := entities.Sub(name)
		if ec == nil {
			return nil, fmt.Errorf("load entity %q: configuration is not a map", name)
		}
		d := Descriptor{
			TableName:  ec.GetString("table"),
			Columns:    ec.GetStringSlice("columns"),
			Searchable: ec.GetStringSlice("searchable"),
			Filterable: ec.GetStringSlice("filterable"),
			Sortable:   ec.GetStringSlice("sortable"),
			DefaultSort: clause.Sort{
				Field: ec.GetString("default_sort.field"),
				Order: ec.GetString("default_sort.order"),
			},
		}
		if err := reg.Register(name, d); err != nil {
			return nil, fmt.Errorf("load entity %q: %w", name, err)
		}
	}
	return reg, nil
}
