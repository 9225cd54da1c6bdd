package appstate

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);`

// KV is the durable client key/value store.
// Writes take an exclusive file lock so concurrent pdfdesk processes never interleave.
type KV struct {
	db   *sqlx.DB
	lock *flock.Flock
}

// NewKV prepares the kv table. lockPath may be empty to skip cross-process locking.
func NewKV(db *sqlx.DB, lockPath string) (*KV, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("kv schema: %w", err)
	}

	kv := &KV{db: db}
	if lockPath != "" {
		kv.lock = flock.New(lockPath)
	}
	return kv, nil
}

// Get returns the stored value and whether the key exists.
func (s *KV) Get(key string) (string, bool, error) {
	var value string
	err := s.db.Get(&value, `SELECT value FROM kv WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	} else if err != nil {
		return "", false, fmt.Errorf("kv get %q: %w", key, err)
	}
	return value, true, nil
}

func (s *KV) Set(key, value string) error {
	return s.withWriteLock(func() error {
		_, err := s.db.Exec(
			`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			key, value, time.Now().Unix(),
		)
		if err != nil {
			return fmt.Errorf("kv set %q: %w", key, err)
		}
		return nil
	})
}

func (s *KV) Delete(key string) error {
	return s.withWriteLock(func() error {
		if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
			return fmt.Errorf("kv delete %q: %w", key, err)
		}
		return nil
	})
}

func (s *KV) withWriteLock(fn func() error) error {
	if s.lock == nil {
		return fn()
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("kv lock: %w", err)
	}
	defer s.lock.Unlock()

	return fn()
}
