package repositories

import (
	"context"

	"github.com/clipforge/clipforge-engine/pkg/models"
)

// BlobStore is the combined read-only view the asset gateway resolves
// requests against: assets by id, generic-store values by key.
type BlobStore struct {
	assets AssetRepository
	kv     KVRepository
}

// NewBlobStore creates a gateway-facing view over the two collections.
func NewBlobStore(assets AssetRepository, kv KVRepository) *BlobStore {
	return &BlobStore{assets: assets, kv: kv}
}

// GetAsset retrieves an asset by id.
func (s *BlobStore) GetAsset(ctx context.Context, id string) (*models.Asset, error) {
	return s.assets.Get(ctx, id)
}

// GetValue retrieves a generic-store value by key.
func (s *BlobStore) GetValue(ctx context.Context, key string) (*models.StoredValue, error) {
	return s.kv.Get(ctx, key)
}
