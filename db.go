package epaper

import (
	"database/sql"
	"fmt"

	"github.com/bodgit/epaper/bitmap"
	"github.com/bodgit/epaper/tone"
	_ "github.com/mattn/go-sqlite3"
)

// Cache stores converted frames in an SQLite database keyed by the SHA-1
// of the source file and the options used to convert it.
type Cache struct {
	db *sql.DB
}

// NewCache opens or creates the cache database in file.
func NewCache(file string) (*Cache, error) {
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS frame (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, options TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, frame BLOB NOT NULL, UNIQUE(sha1, options, width, height))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{
		db: db,
	}, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Find returns the cached frame or nil if there isn't one.
func (c *Cache) Find(sha string, opts tone.Options, width, height int) ([]byte, error) {
	var frame []byte
	switch err := c.db.QueryRow("SELECT frame FROM frame WHERE sha1 = ? AND options = ? AND width = ? AND height = ?", sha, opts.String(), width, height).Scan(&frame); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		if n := len(frame); n != bitmap.Size(width, height) {
			return nil, fmt.Errorf("%w: cached frame is %d bytes", ErrSizeMismatch, n)
		}
		return frame, nil
	default:
		return nil, err
	}
}

// Add stores frame, replacing any existing entry.
func (c *Cache) Add(sha string, opts tone.Options, width, height int, frame []byte) error {
	if _, err := c.db.Exec("INSERT OR REPLACE INTO frame (sha1, options, width, height, frame) VALUES (?, ?, ?, ?, ?)", sha, opts.String(), width, height, frame); err != nil {
		return err
	}
	return nil
}

// Len returns the number of cached frames.
func (c *Cache) Len() (int, error) {
	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM frame").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
