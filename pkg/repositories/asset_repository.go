package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/clipforge/clipforge-engine/pkg/apperrors"
	"github.com/clipforge/clipforge-engine/pkg/database"
	"github.com/clipforge/clipforge-engine/pkg/models"
)

// AssetRepository defines the interface for asset data access.
type AssetRepository interface {
	// Put stores the full asset record with last-write-wins semantics.
	Put(ctx context.Context, asset *models.Asset) error

	// Get retrieves an asset by id, or apperrors.ErrAssetNotFound.
	Get(ctx context.Context, id string) (*models.Asset, error)

	// Delete removes an asset by id. Projects still listing the id are left
	// alone; a dangling link renders as a missing asset on the read path.
	Delete(ctx context.Context, id string) error
}

// assetRepository implements AssetRepository on SQLite.
type assetRepository struct {
	db *database.DB
}

// NewAssetRepository creates a new asset repository.
func NewAssetRepository(db *database.DB) AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) Put(ctx context.Context, asset *models.Asset) error {
	query := `
		INSERT INTO assets (id, file_name, type, mime_type, blob, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET file_name = excluded.file_name,
		    type = excluded.type,
		    mime_type = excluded.mime_type,
		    blob = excluded.blob,
		    created_at = excluded.created_at`

	_, err := r.db.ExecContext(ctx, query,
		asset.ID,
		asset.FileName,
		string(asset.Type),
		asset.MimeType,
		asset.Blob,
		asset.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to put asset: %w", err)
	}

	return nil
}

func (r *assetRepository) Get(ctx context.Context, id string) (*models.Asset, error) {
	query := `
		SELECT id, file_name, type, mime_type, blob, created_at
		FROM assets
		WHERE id = ?`

	var asset models.Asset
	var assetType string
	var createdAt int64

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&asset.ID,
		&asset.FileName,
		&assetType,
		&asset.MimeType,
		&asset.Blob,
		&createdAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}

	asset.Type = models.AssetType(assetType)
	asset.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &asset, nil
}

func (r *assetRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM assets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted assets: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAssetNotFound
	}

	return nil
}

// Ensure assetRepository implements AssetRepository at compile time.
var _ AssetRepository = (*assetRepository)(nil)
