package database

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Single human-readable file per key, no locking.
// Fine for a one-desk deployment.
type file struct {
	path string
	key  string
}

// FileOpen returns the slot stored as a JSON file in the given directory.
func FileOpen(dir, key string) (Slot, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "could not create storage directory")
		}
	}

	return &file{
		path: filepath.Join(dir, key+".json"),
		key:  key,
	}, nil
}

func (c *file) Key() string {
	return c.key
}

func (c *file) Get() ([]byte, error) {
	value, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return value, errors.Wrap(err, "could not read slot")
}

func (c *file) Put(value []byte) error {
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return errors.Wrap(err, "could not write slot")
	}
	return errors.Wrap(os.Rename(tmp, c.path), "could not write slot")
}

func (c *file) Close() error {
	return nil
}
