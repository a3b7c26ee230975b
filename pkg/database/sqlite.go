// Package database opens the embedded SQLite store and keeps its schema
// current. SQLite is the one shared mutable resource in the system; writers
// from the editor API and readers from the asset gateway rely on its
// transaction isolation rather than any application-level lock.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "modernc.org/sqlite"

	"github.com/clipforge/clipforge-engine/pkg/apperrors"
)

// DB wraps the sql.DB handle for the local store.
type DB struct {
	*sql.DB
}

// Config holds database open parameters.
type Config struct {
	// Path is the SQLite file path, or ":memory:" for an in-process database.
	Path string

	// BusyTimeoutMS bounds lock waits between concurrent transactions.
	BusyTimeoutMS int
}

// Open opens (creating if needed) the SQLite database at cfg.Path. It is
// idempotent: opening an existing database leaves its records untouched.
// Failure to provision or reach the file maps to ErrStorageUnavailable.
func Open(ctx context.Context, cfg *Config) (*DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("%w: database path is required", apperrors.ErrStorageUnavailable)
	}

	busyTimeout := cfg.BusyTimeoutMS
	if busyTimeout == 0 {
		busyTimeout = 5000
	}

	params := url.Values{}
	params.Add("_pragma", "journal_mode(WAL)")
	params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeout))
	params.Add("_pragma", "foreign_keys(ON)")
	params.Add("_pragma", "synchronous(NORMAL)")

	db, err := sql.Open("sqlite", cfg.Path+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite db: %v", apperrors.ErrStorageUnavailable, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping sqlite db: %v", apperrors.ErrStorageUnavailable, err)
	}

	return &DB{DB: db}, nil
}
