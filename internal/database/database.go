package database

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
)

// Available drivers.
const (
	DriverStorm  = "storm"
	DriverSQLite = "sqlite"
	DriverFile   = "file"
)

// ErrNotFound is returned when the slot has never been written.
var ErrNotFound = errors.New("slot not found")

// A Slot is one entry of a durable key/value store.
// Its value is always overwritten as a whole.
type Slot interface {
	// Key returns the key of the slot.
	Key() string
	// Get returns the raw value stored in the slot.
	// It returns ErrNotFound if the slot has never been written.
	Get() ([]byte, error)
	// Put overwrites the value stored in the slot.
	Put(value []byte) error
	// Close the underlying store.
	Close() error
}

// IsNotFound returns true if err is a not found error.
func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrNotFound
}

// Open opens the slot identified by key with the given driver.
// path is the directory where the store lives, the current directory if empty.
func Open(driver, path, key string) (Slot, error) {
	if key == "" {
		return nil, errors.New("empty storage key")
	}

	switch driver {
	case DriverStorm, "":
		return StormOpen(filepath.Join(path, "lostfound.db"), key)
	case DriverSQLite:
		return SQLiteOpen(filepath.Join(path, "lostfound.sqlite3"), key)
	case DriverFile:
		return FileOpen(path, key)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}
