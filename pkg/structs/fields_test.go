package structs_test

import (
	"testing"

	"github.com/mdouchement/lostfound/pkg/structs"
	"github.com/stretchr/testify/assert"
)

type record struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func TestGetField(t *testing.T) {
	r := record{Name: "Headphones", Value: 42}

	assert.Equal(t, "Headphones", structs.GetField(r, "Name"))
	assert.Equal(t, 42, structs.GetField(&r, "Value"))
	assert.Panics(t, func() {
		structs.GetField(r, "Unknown")
	})
}

func TestFieldByTag(t *testing.T) {
	field, ok := structs.FieldByTag(record{}, "json", "value")
	assert.True(t, ok)
	assert.Equal(t, "Value", field)

	_, ok = structs.FieldByTag(record{}, "json", "unknown")
	assert.False(t, ok)
}
