package store_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/mdouchement/lostfound/internal/database"
	"github.com/mdouchement/lostfound/internal/model"
	"github.com/mdouchement/lostfound/internal/seed"
	"github.com/mdouchement/lostfound/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memory struct {
	value    []byte
	written  bool
	getErr   error
	putErr   error
	putCount int
}

func (m *memory) Key() string { return "lostItems" }

func (m *memory) Get() ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if !m.written {
		return nil, database.ErrNotFound
	}
	return m.value, nil
}

func (m *memory) Put(value []byte) error {
	m.putCount++
	if m.putErr != nil {
		return m.putErr
	}
	m.value = value
	m.written = true
	return nil
}

func (m *memory) Close() error { return nil }

func stored(value string) *memory {
	return &memory{value: []byte(value), written: true}
}

var (
	headphones = model.Item{Name: "Headphones", Category: "Electronics", Location: "Zone A", Date: "2024-01-01"}
	laptop     = model.Item{Name: "Laptop", Category: "Electronics", Location: "Zone B", Date: "2024-01-01"}
	scarf      = model.Item{Name: "Scarf", Category: "Clothing", Location: "Zone C", Date: "2024-01-02", Description: "red"}
)

func TestHydrate_AbsentUsesSeed(t *testing.T) {
	log, hook := test.NewNullLogger()
	slot := &memory{}

	s := store.New(slot, seed.Items(), log)
	items := s.Hydrate()

	assert.Equal(t, seed.Items(), items)
	assert.Equal(t, 1, slot.putCount, "fallback is persisted")

	var persisted []model.Item
	require.NoError(t, json.Unmarshal(slot.value, &persisted))
	assert.Equal(t, seed.Items(), persisted)

	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Equal(t, store.Absent, hook.LastEntry().Data["outcome"])
}

func TestHydrate_EmptyUsesSeed(t *testing.T) {
	log, _ := test.NewNullLogger()

	s := store.New(stored(`[]`), seed.Items(), log)
	assert.Equal(t, seed.Items(), s.Hydrate())
}

func TestHydrate_StoredArray(t *testing.T) {
	log, _ := test.NewNullLogger()
	slot := stored(`[{"name":"Laptop","category":"Electronics","location":"Zone B","date":"2024-01-01","description":"","image":""}]`)

	s := store.New(slot, seed.Items(), log)
	assert.Equal(t, []model.Item{laptop}, s.Hydrate())
	assert.Equal(t, 0, slot.putCount, "loaded snapshot is not rewritten")
}

func TestHydrate_InvalidUsesSeed(t *testing.T) {
	for _, value := range []string{
		`{"name":"Laptop"}`,
		`"lostItems"`,
		`null`,
		`[{"name":"Laptop"`,
		`not json at all`,
		`[{"name":"Laptop"}, 42]`,
	} {
		t.Run(value, func(t *testing.T) {
			log, hook := test.NewNullLogger()
			slot := stored(value)

			s := store.New(slot, seed.Items(), log)
			assert.Equal(t, seed.Items(), s.Hydrate())
			assert.Equal(t, 1, slot.putCount)

			var warned bool
			for _, entry := range hook.AllEntries() {
				if entry.Level == logrus.WarnLevel {
					warned = true
					assert.IsType(t, &store.DecodeError{}, entry.Data[logrus.ErrorKey])
				}
			}
			assert.True(t, warned)
		})
	}
}

func TestHydrate_UnreadableUsesSeed(t *testing.T) {
	log, _ := test.NewNullLogger()
	slot := &memory{getErr: errors.New("disk on fire")}

	s := store.New(slot, seed.Items(), log)
	assert.Equal(t, seed.Items(), s.Hydrate())
}

func TestHydrate_SchemaIsNotEnforced(t *testing.T) {
	log, _ := test.NewNullLogger()
	slot := stored(`[{"title":"Umbrella","name":42,"location":"Zone C"}]`)

	s := store.New(slot, seed.Items(), log)
	items := s.Hydrate()
	assert.Equal(t, []model.Item{{Location: "Zone C"}}, items)
}

func TestAppend(t *testing.T) {
	log, _ := test.NewNullLogger()
	slot := &memory{}

	s := store.New(slot, []model.Item{headphones, laptop}, log)
	before := s.Hydrate()

	after := s.Append(scarf)
	assert.Len(t, after, len(before)+1)
	assert.Equal(t, scarf, after[len(after)-1])
	assert.Equal(t, before, after[:len(before)])
	assert.Equal(t, after, s.Items())

	// Duplicates are kept.
	after = s.Append(scarf)
	assert.Len(t, after, len(before)+2)
	assert.Equal(t, scarf, after[len(after)-2])
	assert.Equal(t, scarf, after[len(after)-1])

	// Returned slices are copies.
	after[0].Name = "changed"
	assert.Equal(t, "Headphones", s.Items()[0].Name)
	assert.Equal(t, 4, s.Len())
}

func TestAppend_Persists(t *testing.T) {
	log, _ := test.NewNullLogger()
	slot := &memory{}

	s := store.New(slot, []model.Item{headphones}, log)
	s.Hydrate()
	s.Append(laptop)

	var persisted []model.Item
	require.NoError(t, json.Unmarshal(slot.value, &persisted))
	assert.Equal(t, []model.Item{headphones, laptop}, persisted)
}

func TestPersistHydrateRoundTrip(t *testing.T) {
	log, _ := test.NewNullLogger()
	slot, err := database.Open(database.DriverStorm, t.TempDir(), "lostItems")
	require.NoError(t, err)
	defer slot.Close()

	items := []model.Item{scarf, laptop, scarf, {Name: "Photo", Image: "data:image/png;base64,iVBORw0KGgo="}}

	s := store.New(slot, seed.Items(), log)
	s.Persist(items)
	assert.NoError(t, s.LastWriteError())

	assert.Equal(t, items, store.New(slot, seed.Items(), log).Hydrate())
}

func TestPersist_WriteFailureIsNotFatal(t *testing.T) {
	log, hook := test.NewNullLogger()
	slot := &memory{putErr: errors.New("quota exceeded")}

	s := store.New(slot, []model.Item{headphones}, log)
	assert.Equal(t, []model.Item{headphones}, s.Hydrate())

	items := s.Append(laptop)
	assert.Equal(t, []model.Item{headphones, laptop}, items)
	assert.Equal(t, items, s.Items())

	err := s.LastWriteError()
	assert.IsType(t, &store.WriteError{}, err)
	assert.EqualError(t, err, "could not persist snapshot: quota exceeded")

	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "Could not persist items", hook.LastEntry().Message)

	slot.putErr = nil
	s.Append(scarf)
	assert.NoError(t, s.LastWriteError())
}

func TestPersist_AdoptsItems(t *testing.T) {
	log, _ := test.NewNullLogger()
	slot := &memory{}

	s := store.New(slot, []model.Item{headphones}, log)
	s.Hydrate()

	items := []model.Item{scarf}
	s.Persist(items)
	items[0].Name = "Mutated"
	assert.Equal(t, []model.Item{scarf}, s.Items())

	s.Append(laptop)

	var persisted []model.Item
	require.NoError(t, json.Unmarshal(slot.value, &persisted))
	assert.Equal(t, []model.Item{scarf, laptop}, persisted)
}

func TestPersist_EmptyList(t *testing.T) {
	log, _ := test.NewNullLogger()
	slot := &memory{}

	store.New(slot, seed.Items(), log).Persist(nil)
	assert.Equal(t, `[]`, string(slot.value))
}
