package database

import (
	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/codec/json"
	"github.com/pkg/errors"
)

const stormBucket = "slots"

type strm struct {
	db  *storm.DB
	key string
}

// StormCodec is the format used by storm. Slot values are stored as raw bytes.
var StormCodec = storm.Codec(json.Codec)

// StormOpen returns the slot stored in the given Storm database.
func StormOpen(database, key string) (Slot, error) {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return nil, errors.Wrap(err, "could not get database connection")
	}

	return &strm{
		db:  db,
		key: key,
	}, nil
}

func (c *strm) Key() string {
	return c.key
}

func (c *strm) Get() ([]byte, error) {
	value, err := c.db.GetBytes(stormBucket, c.key)
	if err == storm.ErrNotFound {
		return nil, ErrNotFound
	}
	return value, errors.Wrap(err, "could not read slot")
}

func (c *strm) Put(value []byte) error {
	return errors.Wrap(c.db.SetBytes(stormBucket, c.key, value), "could not write slot")
}

func (c *strm) Close() error {
	return c.db.Close()
}
