package store

import (
	"github.com/mdouchement/lostfound/internal/database"
	"github.com/mdouchement/lostfound/internal/model"
	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
)

// An Outcome describes what has been found in the slot during hydration.
type Outcome int

// Hydration outcomes. Only Loaded is used as is, others fall back to the seed dataset.
const (
	Absent Outcome = iota
	Unreadable
	Malformed
	NotArray
	Empty
	Loaded
)

func (o Outcome) String() string {
	switch o {
	case Absent:
		return "absent"
	case Unreadable:
		return "unreadable"
	case Malformed:
		return "malformed"
	case NotArray:
		return "not-array"
	case Empty:
		return "empty"
	case Loaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// A Snapshot is the decoded content of the slot.
type Snapshot struct {
	Outcome Outcome
	Items   []model.Item
	Err     error
}

// Read reads and decodes the snapshot stored in the given slot.
func Read(slot database.Slot) Snapshot {
	raw, err := slot.Get()
	if err != nil {
		if database.IsNotFound(err) {
			return Snapshot{Outcome: Absent}
		}
		return Snapshot{Outcome: Unreadable, Err: &DecodeError{Outcome: Unreadable, Err: err}}
	}
	return Decode(raw)
}

// Decode decodes a JSON snapshot.
// Elements must be objects, missing or non-string fields are read as empty strings.
func Decode(raw []byte) Snapshot {
	if len(raw) == 0 {
		return Snapshot{Outcome: Absent}
	}

	var p fastjson.Parser
	v, err := p.ParseBytes(raw)
	if err != nil {
		return malformed(errors.Wrap(err, "could not parse snapshot"))
	}

	if v.Type() != fastjson.TypeArray {
		return Snapshot{
			Outcome: NotArray,
			Err:     &DecodeError{Outcome: NotArray, Err: errors.Errorf("snapshot is a %s", v.Type())},
		}
	}

	values := v.GetArray()
	if len(values) == 0 {
		return Snapshot{Outcome: Empty}
	}

	items := make([]model.Item, 0, len(values))
	for i, value := range values {
		if value.Type() != fastjson.TypeObject {
			return malformed(errors.Errorf("element %d is a %s", i, value.Type()))
		}

		items = append(items, model.Item{
			Name:        string(value.GetStringBytes("name")),
			Category:    string(value.GetStringBytes("category")),
			Location:    string(value.GetStringBytes("location")),
			Date:        string(value.GetStringBytes("date")),
			Description: string(value.GetStringBytes("description")),
			Image:       string(value.GetStringBytes("image")),
		})
	}

	return Snapshot{Outcome: Loaded, Items: items}
}

func malformed(err error) Snapshot {
	return Snapshot{
		Outcome: Malformed,
		Err:     &DecodeError{Outcome: Malformed, Err: err},
	}
}
