package database

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3" // driver
	"github.com/pkg/errors"
)

type sqlite struct {
	db  *sql.DB
	key string
}

// SQLiteOpen returns the slot stored in the given SQLite database.
func SQLiteOpen(database, key string) (Slot, error) {
	db, err := sql.Open("sqlite3", database+"?_journal_mode=WAL")
	if err != nil {
		return nil, errors.Wrap(err, "could not get database connection")
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS slots (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "could not create slots table")
	}

	return &sqlite{
		db:  db,
		key: key,
	}, nil
}

func (c *sqlite) Key() string {
	return c.key
}

func (c *sqlite) Get() ([]byte, error) {
	var value []byte
	err := c.db.QueryRow("SELECT value FROM slots WHERE key = ?", c.key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return value, errors.Wrap(err, "could not read slot")
}

func (c *sqlite) Put(value []byte) error {
	_, err := c.db.Exec(
		"INSERT INTO slots (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		c.key, value,
	)
	return errors.Wrap(err, "could not write slot")
}

func (c *sqlite) Close() error {
	return c.db.Close()
}
