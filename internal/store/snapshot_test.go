package store_test

import (
	"testing"

	"github.com/mdouchement/lostfound/internal/model"
	"github.com/mdouchement/lostfound/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	var tests = []struct {
		raw     string
		outcome store.Outcome
	}{
		{``, store.Absent},
		{`[]`, store.Empty},
		{`{}`, store.NotArray},
		{`12`, store.NotArray},
		{`[1]`, store.Malformed},
		{`[{]`, store.Malformed},
		{`[{"name":"Laptop"}]`, store.Loaded},
	}

	for _, tt := range tests {
		snapshot := store.Decode([]byte(tt.raw))
		assert.Equal(t, tt.outcome, snapshot.Outcome, tt.raw)

		switch tt.outcome {
		case store.NotArray, store.Malformed:
			assert.IsType(t, &store.DecodeError{}, snapshot.Err, tt.raw)
		default:
			assert.NoError(t, snapshot.Err, tt.raw)
		}
	}
}

func TestDecode_Fields(t *testing.T) {
	snapshot := store.Decode([]byte(`[
		{"name":"Phone","category":"Electronics","location":"Zone A","date":"2024-01-01","description":"cracked","image":"data:image/png;base64,AAAA"},
		{"name":"Phone","category":"Electronics","location":"Zone A","date":"2024-01-01"}
	]`))

	assert.Equal(t, store.Loaded, snapshot.Outcome)
	assert.Equal(t, []model.Item{
		{Name: "Phone", Category: "Electronics", Location: "Zone A", Date: "2024-01-01", Description: "cracked", Image: "data:image/png;base64,AAAA"},
		{Name: "Phone", Category: "Electronics", Location: "Zone A", Date: "2024-01-01"},
	}, snapshot.Items)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "not-array", store.NotArray.String())
	assert.Equal(t, "loaded", store.Loaded.String())
	assert.Equal(t, "unknown", store.Outcome(42).String())
}
