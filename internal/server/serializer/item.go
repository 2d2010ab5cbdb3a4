package serializer

import "github.com/mdouchement/lostfound/internal/model"

// Item serializes the render of an item.
func Item(m model.Item) map[string]any {
	return map[string]any{
		"name":        m.Name,
		"category":    m.Category,
		"location":    m.Location,
		"date":        m.Date,
		"description": m.Description,
		"image":       m.Image,
	}
}

// Items serializes the render of a list of items.
func Items(items []model.Item) map[string]any {
	r := make([]map[string]any, 0, len(items))
	for _, item := range items {
		r = append(r, Item(item))
	}

	return map[string]any{
		"items": r,
	}
}
