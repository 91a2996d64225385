package wellness

import (
	"slices"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/trezcool/mindbloom/core"
)

// ActivityKind selects one of the suggestion lists of a Catalog.
type ActivityKind string

const (
	KindWellness ActivityKind = FieldWellnessActivity
	KindMeTime   ActivityKind = FieldMeTimeActivity
)

// minSuggestRatio is the similarity required before an activity is suggested.
const minSuggestRatio = .6

// Catalog holds the suggested activities offered by entry forms.
// Entries are not restricted to the catalog: it only feeds pickers and "did you mean" hints.
type Catalog struct {
	lists map[ActivityKind][]string
}

// NewCatalog returns a Catalog seeded with the given activities. Invalid ones are skipped.
func NewCatalog(wellnessActivities, meTimeActivities []string) *Catalog {
	c := &Catalog{lists: map[ActivityKind][]string{
		KindWellness: make([]string, 0, len(wellnessActivities)),
		KindMeTime:   make([]string, 0, len(meTimeActivities)),
	}}
	for _, a := range wellnessActivities {
		_, _ = c.add(KindWellness, a, false)
	}
	for _, a := range meTimeActivities {
		_, _ = c.add(KindMeTime, a, false)
	}
	return c
}

// Add title-cases activity and appends it to the kind's list unless it is already there.
// It returns the normalized activity.
func (c *Catalog) Add(kind ActivityKind, activity string) (string, error) {
	return c.add(kind, activity, true)
}

func (c *Catalog) add(kind ActivityKind, activity string, title bool) (string, error) {
	list, ok := c.lists[kind]
	if !ok {
		return "", ErrUnknownActivity
	}
	activity = strings.Join(strings.Fields(activity), " ")
	if activity == "" {
		return "", &EmptyFieldError{Field: string(kind)}
	}
	if !core.IsAlphaSpace(activity) {
		return "", &InvalidCharacterError{Field: string(kind), Value: activity}
	}
	if title {
		activity = cases.Title(language.English).String(activity)
	}
	if !slices.Contains(list, activity) {
		c.lists[kind] = append(list, activity)
	}
	return activity, nil
}

// List returns a copy of the kind's activities, in insertion order.
func (c *Catalog) List(kind ActivityKind) []string {
	return slices.Clone(c.lists[kind])
}

// Suggest returns the known activity closest to text, if one is similar enough.
func (c *Catalog) Suggest(kind ActivityKind, text string) (string, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return "", false
	}

	var (
		best      string
		bestRatio float64
	)
	for _, activity := range c.lists[kind] {
		lower := strings.ToLower(activity)
		if lower == text {
			return activity, true
		}
		ratio := difflib.NewMatcher(strings.Split(text, ""), strings.Split(lower, "")).Ratio()
		if ratio > bestRatio {
			best, bestRatio = activity, ratio
		}
	}
	return best, bestRatio >= minSuggestRatio
}
