package wellness

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/trezcool/mindbloom/core"
)

// OrderingFields lists the fields entries can be sorted on.
var OrderingFields = []string{"name", "wellness", "metime", "minutes", "status", "date"}

var entryComparators = map[string]func(a, b Entry) int{
	"name": func(a, b Entry) int {
		return strings.Compare(strings.ToLower(a.studentName), strings.ToLower(b.studentName))
	},
	"wellness": func(a, b Entry) int {
		return strings.Compare(strings.ToLower(a.wellnessActivity), strings.ToLower(b.wellnessActivity))
	},
	"metime": func(a, b Entry) int {
		return strings.Compare(strings.ToLower(a.meTimeActivity), strings.ToLower(b.meTimeActivity))
	},
	"minutes": func(a, b Entry) int { return cmp.Compare(a.screenFreeMinutes, b.screenFreeMinutes) },
	"status":  func(a, b Entry) int { return strings.Compare(string(a.status), string(b.status)) },
	"date":    func(a, b Entry) int { return a.createdAt.Compare(b.createdAt) },
}

// CheckOrderings fails with a *core.ValidationError on fields entries cannot be sorted on.
func CheckOrderings(orderings []core.Ordering) error {
	for _, ord := range orderings {
		if _, ok := entryComparators[ord.Field]; !ok {
			msg := fmt.Sprintf("cannot order by %q (one of: %s)", ord.Field, strings.Join(OrderingFields, ", "))
			return core.NewValidationError(fmt.Errorf("invalid ordering: %s", msg), core.FieldError{
				Field: "ordering",
				Error: msg,
			})
		}
	}
	return nil
}

// SortEntries stable-sorts entries in place. Entries comparing equal keep their insertion order.
func SortEntries(entries []Entry, orderings []core.Ordering) error {
	if len(orderings) == 0 {
		return nil
	}
	if err := CheckOrderings(orderings); err != nil {
		return err
	}
	slices.SortStableFunc(entries, func(a, b Entry) int {
		for _, ord := range orderings {
			c := entryComparators[ord.Field](a, b)
			if !ord.Ascending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
	return nil
}
