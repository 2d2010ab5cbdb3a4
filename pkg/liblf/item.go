package liblf

type (
	// An Item is a held lost item.
	Item struct {
		Name        string `json:"name"`
		Category    string `json:"category"`
		Location    string `json:"location"`
		Date        string `json:"date"`
		Description string `json:"description"`
		Image       string `json:"image"`
	}

	// A Criteria filters the listed items. Empty fields are ignored.
	Criteria struct {
		Category string
		Location string
		Date     string
	}

	// A Report is a lost item declaration.
	Report struct {
		Name        string
		Category    string
		Location    string
		Date        string
		Description string
		// ImagePath is an optional image file uploaded with the report.
		ImagePath string
	}
)
