// Package appstate owns the durable client state: the session credential and the viewer theme.
// A Context is created once at the composition root and handed to the components that need it.
package appstate

import (
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/openmined/pdfdesk/internal/db"
)

const lockFileName = "state.lock"

type Context struct {
	Credentials *Credentials
	Theme       *Theme

	db *sqlx.DB
}

// Open opens the state database at dbPath. An empty path keeps the state in memory.
func Open(dbPath string) (*Context, error) {
	opts := []db.SqliteOption{}
	lockPath := ""
	if dbPath != "" {
		opts = append(opts, db.WithPath(dbPath))
		lockPath = filepath.Join(filepath.Dir(dbPath), lockFileName)
	}

	conn, err := db.NewSqliteDB(opts...)
	if err != nil {
		return nil, err
	}

	kv, err := NewKV(conn, lockPath)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &Context{
		Credentials: NewCredentials(kv),
		Theme:       NewTheme(kv),
		db:          conn,
	}, nil
}

func (c *Context) Close() error {
	return c.db.Close()
}
