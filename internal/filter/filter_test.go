package filter_test

import (
	"testing"

	"github.com/mdouchement/lostfound/internal/filter"
	"github.com/mdouchement/lostfound/internal/model"
	"github.com/stretchr/testify/assert"
)

var items = []model.Item{
	{Name: "Headphones", Category: "Electronics", Location: "Zone A", Date: "2024-01-01"},
	{Name: "Laptop", Category: "Electronics", Location: "Zone B", Date: "2024-01-01"},
	{Name: "Bottle", Category: "Personal", Location: "Zone A", Date: "2024-01-02"},
	{Name: "Hoodie", Category: "Clothing", Location: "Zone C", Date: "2024-01-01"},
	{Name: "Charger", Category: "Electronics", Location: "Zone A", Date: "2024-01-03"},
}

func TestApply_NoCriteria(t *testing.T) {
	assert.Equal(t, items, filter.Apply(items, model.Criteria{}))
}

func TestApply_Category(t *testing.T) {
	filtered := filter.Apply(items, model.Criteria{Category: "Electronics"})
	assert.Equal(t, []model.Item{items[0], items[1], items[4]}, filtered)
}

func TestApply_Intersection(t *testing.T) {
	filtered := filter.Apply(items[:2], model.Criteria{Category: "Electronics", Location: "Zone A"})
	assert.Equal(t, []model.Item{items[0]}, filtered)

	filtered = filter.Apply(items, model.Criteria{Category: "Electronics", Location: "Zone A", Date: "2024-01-03"})
	assert.Equal(t, []model.Item{items[4]}, filtered)

	filtered = filter.Apply(items, model.Criteria{Location: "Zone A", Date: "2024-01-02"})
	assert.Equal(t, []model.Item{items[2]}, filtered)
}

func TestApply_CaseSensitive(t *testing.T) {
	filtered := filter.Apply(items, model.Criteria{Category: "electronics"})
	assert.NotNil(t, filtered)
	assert.Empty(t, filtered)

	filtered = filter.Apply(items, model.Criteria{Location: "Zone"})
	assert.Empty(t, filtered)
}

func TestApply_NoMatch(t *testing.T) {
	filtered := filter.Apply(items, model.Criteria{Date: "1999-12-31"})
	assert.NotNil(t, filtered)
	assert.Len(t, filtered, 0)

	filtered = filter.Apply(nil, model.Criteria{Category: "Electronics"})
	assert.NotNil(t, filtered)
	assert.Len(t, filtered, 0)
}

func TestApply_DoesNotMutate(t *testing.T) {
	input := make([]model.Item, len(items))
	copy(input, items)

	filtered := filter.Apply(input, model.Criteria{Category: "Personal"})
	filtered[0].Name = "changed"

	assert.Equal(t, items, input)
}
