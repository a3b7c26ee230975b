package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/clipforge/clipforge-engine/pkg/apperrors"
	"github.com/clipforge/clipforge-engine/pkg/database"
	"github.com/clipforge/clipforge-engine/pkg/models"
)

// KVRepository defines the interface for the generic key-value collection.
// Keys are arbitrary strings, values opaque byte payloads.
type KVRepository interface {
	// Put stores a value under key with last-write-wins semantics.
	Put(ctx context.Context, key string, value []byte, mimeType string) error

	// Get retrieves the value stored under key, or apperrors.ErrKeyNotFound.
	Get(ctx context.Context, key string) (*models.StoredValue, error)

	// Delete removes the value stored under key, if any.
	Delete(ctx context.Context, key string) error
}

// kvRepository implements KVRepository on SQLite.
type kvRepository struct {
	db *database.DB
}

// NewKVRepository creates a new generic store repository.
func NewKVRepository(db *database.DB) KVRepository {
	return &kvRepository{db: db}
}

func (r *kvRepository) Put(ctx context.Context, key string, value []byte, mimeType string) error {
	query := `
		INSERT INTO generic_store (key, value, mime_type)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE
		SET value = excluded.value,
		    mime_type = excluded.mime_type`

	if _, err := r.db.ExecContext(ctx, query, key, value, mimeType); err != nil {
		return fmt.Errorf("failed to put value: %w", err)
	}

	return nil
}

func (r *kvRepository) Get(ctx context.Context, key string) (*models.StoredValue, error) {
	stored := models.StoredValue{Key: key}

	query := `SELECT value, mime_type FROM generic_store WHERE key = ?`
	err := r.db.QueryRowContext(ctx, query, key).Scan(&stored.Value, &stored.MimeType)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to get value: %w", err)
	}

	return &stored, nil
}

func (r *kvRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM generic_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete value: %w", err)
	}
	return nil
}

// Ensure kvRepository implements KVRepository at compile time.
var _ KVRepository = (*kvRepository)(nil)
