package filter

import (
	"github.com/asdine/storm/v3/q"
	"github.com/mdouchement/lostfound/internal/model"
)

// Apply returns the items matching every non-empty field of the criteria,
// in their original order. The given items are not modified.
func Apply(items []model.Item, c model.Criteria) []model.Item {
	matcher := Matcher(c)

	filtered := make([]model.Item, 0, len(items))
	for i := range items {
		if ok, err := matcher.Match(&items[i]); err == nil && ok {
			filtered = append(filtered, items[i])
		}
	}
	return filtered
}

// Matcher returns the matcher equivalent to the given criteria.
// Comparisons are exact and case-sensitive.
func Matcher(c model.Criteria) q.Matcher {
	query := []q.Matcher{}

	if c.Category != "" {
		query = append(query, q.Eq("Category", c.Category))
	}

	if c.Location != "" {
		query = append(query, q.Eq("Location", c.Location))
	}

	if c.Date != "" {
		query = append(query, q.Eq("Date", c.Date))
	}

	return q.And(query...)
}
