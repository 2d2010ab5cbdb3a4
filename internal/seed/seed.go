package seed

import (
	_ "embed" // bundled dataset
	"encoding/json"
	"os"

	"github.com/mdouchement/lostfound/internal/model"
	"github.com/pkg/errors"
)

//go:embed items.json
var bundled []byte

// Items returns the bundled seed dataset.
func Items() []model.Item {
	items, err := decode(bundled)
	if err != nil {
		panic(err)
	}
	return items
}

// Load returns the seed dataset stored in the given file.
// The bundled dataset is returned when filename is empty.
func Load(filename string) ([]model.Item, error) {
	if filename == "" {
		return Items(), nil
	}

	payload, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "could not read seed file")
	}

	items, err := decode(payload)
	return items, errors.Wrapf(err, "could not parse seed file %s", filename)
}

func decode(payload []byte) ([]model.Item, error) {
	items := make([]model.Item, 0)
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("empty seed dataset")
	}
	return items, nil
}
