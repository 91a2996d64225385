package core

import "strings"

// Ordering sorts a view on one field.
type Ordering struct {
	Field     string
	Ascending bool
}

func (ord Ordering) String() string {
	if ord.Ascending {
		return ord.Field
	}
	return "-" + ord.Field
}

// ParseOrdering parses a comma separated list of fields; a leading "-" means descending.
// eg. "-minutes,name"
func ParseOrdering(spec string) []Ordering {
	var orderings []Ordering
	for _, field := range strings.Split(spec, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = strings.TrimSpace(field[1:]) // drop "-"
		}
		if field == "" {
			continue
		}
		orderings = append(orderings, Ordering{Field: strings.ToLower(field), Ascending: !descending})
	}
	return orderings
}
