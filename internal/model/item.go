package model

type (
	// An Item represents a reported lost object held in reception.
	// Image is either empty (default presentation image) or a base64 data URI.
	Item struct {
		Name        string `json:"name"`
		Category    string `json:"category"`
		Location    string `json:"location"`
		Date        string `json:"date"`
		Description string `json:"description"`
		Image       string `json:"image"`
	}

	// A Criteria selects items by exact field values.
	// An empty field imposes no constraint.
	Criteria struct {
		Category string `json:"category"`
		Location string `json:"location"`
		Date     string `json:"date"`
	}
)

var (
	// Categories are the well-known item categories.
	// The set is open, any other value is accepted.
	Categories = []string{"Electronics", "Personal", "Clothing"}
	// Zones are the well-known locations where items are last seen.
	Zones = []string{"Zone A", "Zone B", "Zone C"}
)

// Empty returns true if c does not constrain anything.
func (c Criteria) Empty() bool {
	return c.Category == "" && c.Location == "" && c.Date == ""
}
