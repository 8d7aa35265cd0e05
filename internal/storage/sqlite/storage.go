package sqlite

import (
	"context"
	"database/sql"

	// import sqlite driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/wanderlog/expenseclient/internal/storage"
)

type sqliteStorage struct {
	db *sql.DB
}

// New opens a store on the given source. ":memory:" gives the
// process-lifetime semantics the mock backend wants; a file path gives a
// store that survives restarts.
func New(source string) (storage.Store, error) {
	db, err := sql.Open("sqlite3", source)
	if err != nil {
		return nil, err
	}

	// Each pooled connection to ":memory:" would get its own database, so
	// keep the pool at a single connection.
	if source == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	ctx := context.Background()

	_, err = db.ExecContext(ctx, "PRAGMA foreign_keys = ON")
	if err != nil {
		return nil, err
	}

	_, err = db.ExecContext(ctx, "PRAGMA busy_timeout = 5000")
	if err != nil {
		return nil, err
	}

	return &sqliteStorage{db: db}, nil
}

func (s *sqliteStorage) Close() error {
	return s.db.Close()
}
