package clause

import "strings"

// Sort is a resolved ORDER BY target: a whitelisted column and a normalized
// direction. Because ORDER BY cannot be parameterized, keeping unauthorized
// field names out of Sort is the sole injection defense for that clause.
type Sort struct {
	Field string `json:"field"`
	Order string `json:"order"` // "ASC" or "DESC".
}

// String formats the sort as an ORDER BY fragment, e.g. "created_at DESC".
func (s Sort) String() string {
	return s.Field + " " + s.Order
}

// ResolveSort resolves the requested sort against the sortable whitelist.
// When the requested field is unauthorized the default sort takes over as a
// unit, field and direction together (then the first sortable field, then
// the literal "id", direction DESC). When only the direction is
// unrecognized it alone falls back, to the default direction and then DESC.
// The result is never empty.
func ResolveSort(sortBy, sortOrder string, sortable []string, defaultSort Sort) Sort {
	for _, f := range sortable {
		if f == sortBy {
			order := normalizeOrder(sortOrder)
			if order == "" {
				if order = normalizeOrder(defaultSort.Order); order == "" {
					order = "DESC"
				}
			}
			return Sort{Field: sortBy, Order: order}
		}
	}

	field := defaultSort.Field
	if field == "" {
		if len(sortable) > 0 {
			field = sortable[0]
		} else {
			field = "id"
		}
	}
	order := normalizeOrder(defaultSort.Order)
	if order == "" {
		order = "DESC"
	}
	return Sort{Field: field, Order: order}
}

// normalizeOrder maps any casing of asc/desc to the canonical direction and
// everything else to the empty string.
func normalizeOrder(order string) string {
	switch strings.ToUpper(strings.TrimSpace(order)) {
	case "ASC":
		return "ASC"
	case "DESC":
		return "DESC"
	default:
		return ""
	}
}
