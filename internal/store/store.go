package store

import (
	"encoding/json"
	"sync"

	"github.com/mdouchement/lostfound/internal/database"
	"github.com/mdouchement/lostfound/internal/model"
	"github.com/sanity-io/litter"
	"github.com/sirupsen/logrus"
)

// A Store owns the list of held items and its durability.
// The list only grows by append and is persisted as a whole after every change.
type Store struct {
	mu       sync.RWMutex
	slot     database.Slot
	seed     []model.Item
	log      *logrus.Logger
	items    []model.Item
	writeErr error
}

// New returns a new Store backed by the given slot.
// seed is used when the slot holds no usable snapshot.
func New(slot database.Slot, seed []model.Item, log *logrus.Logger) *Store {
	return &Store{
		slot: slot,
		seed: clone(seed),
		log:  log,
	}
}

// Hydrate loads the items from the slot, or from the seed dataset when the slot is absent,
// empty or unreadable. In the latter case the seed dataset is persisted to normalize the slot.
// It never fails.
func (s *Store) Hydrate() []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := Read(s.slot)
	l := s.log.WithFields(logrus.Fields{
		"key":     s.slot.Key(),
		"outcome": snapshot.Outcome,
	})

	switch snapshot.Outcome {
	case Loaded:
		s.items = snapshot.Items
		l.WithField("count", len(s.items)).Info("Items hydrated from storage")
	case Absent, Empty:
		s.items = clone(s.seed)
		l.Info("No stored items, using seed dataset")
		s.persist(s.items)
	default:
		s.items = clone(s.seed)
		l.WithError(snapshot.Err).Warn("Stored items are unusable, using seed dataset")
		s.persist(s.items)
	}

	if s.log.IsLevelEnabled(logrus.DebugLevel) {
		s.log.Debug(litter.Sdump(s.items))
	}

	return clone(s.items)
}

// Append adds the given item at the end of the list and persists it.
// It returns the new list. Fields are not validated here.
func (s *Store) Append(item model.Item) []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.Item, len(s.items), len(s.items)+1)
	copy(items, s.items)
	items = append(items, item)

	s.items = items
	s.persist(items)

	return clone(items)
}

// Persist overwrites the slot with the given items, which become the held list.
// A failure is logged and kept in LastWriteError, the caller flow is never aborted.
func (s *Store) Persist(items []model.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = clone(items)
	s.persist(s.items)
}

// Items returns a copy of the current list.
func (s *Store) Items() []model.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return clone(s.items)
}

// Len returns the number of held items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

// LastWriteError returns the *WriteError of the last persist, nil if it succeeded.
func (s *Store) LastWriteError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.writeErr
}

func (s *Store) persist(items []model.Item) {
	if items == nil {
		items = []model.Item{}
	}

	payload, err := json.Marshal(items)
	if err == nil {
		err = s.slot.Put(payload)
	}

	if err != nil {
		s.writeErr = &WriteError{Err: err}
		s.log.WithError(err).WithField("key", s.slot.Key()).Warn("Could not persist items")
		return
	}
	s.writeErr = nil
}

func clone(items []model.Item) []model.Item {
	if items == nil {
		return []model.Item{}
	}

	c := make([]model.Item, len(items))
	copy(c, items)
	return c
}
