package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clipforge/clipforge-engine/pkg/apperrors"
	"github.com/clipforge/clipforge-engine/pkg/models"
	"github.com/clipforge/clipforge-engine/pkg/repositories"
)

// AssetService provides operations on uploaded media assets.
type AssetService interface {
	// CreateFromUpload builds an asset from an uploaded file, persists it,
	// and links it to the project atomically. The asset id is a fresh
	// opaque identifier; the caller embeds it in the playback URL.
	CreateFromUpload(ctx context.Context, projectID, fileName, mimeType string, blob []byte) (*models.Asset, error)

	// Get returns the asset with the given id.
	Get(ctx context.Context, id string) (*models.Asset, error)

	// Delete removes the asset with the given id. No project links are
	// touched; deletion is non-cascading.
	Delete(ctx context.Context, id string) error
}

type assetService struct {
	assets   repositories.AssetRepository
	projects repositories.ProjectRepository
	logger   *zap.Logger
}

// NewAssetService creates a new AssetService.
func NewAssetService(assets repositories.AssetRepository, projects repositories.ProjectRepository, logger *zap.Logger) AssetService {
	return &assetService{
		assets:   assets,
		projects: projects,
		logger:   logger.Named("asset-service"),
	}
}

var _ AssetService = (*assetService)(nil)

func (s *assetService) CreateFromUpload(ctx context.Context, projectID, fileName, mimeType string, blob []byte) (*models.Asset, error) {
	asset := &models.Asset{
		ID:        uuid.NewString(),
		FileName:  fileName,
		Type:      models.AssetTypeFromMime(mimeType),
		MimeType:  mimeType,
		Blob:      blob,
		CreatedAt: time.Now().UTC(),
	}
	if err := asset.Validate(); err != nil {
		return nil, fmt.Errorf("validate uploaded asset: %w", err)
	}

	if err := s.projects.LinkAsset(ctx, projectID, asset); err != nil {
		return nil, fmt.Errorf("link asset to project %s: %w", projectID, err)
	}

	s.logger.Info("Stored uploaded asset",
		zap.String("asset_id", asset.ID),
		zap.String("project_id", projectID),
		zap.String("file_name", fileName),
		zap.String("type", string(asset.Type)),
		zap.Int("size_bytes", len(blob)))
	return asset, nil
}

func (s *assetService) Get(ctx context.Context, id string) (*models.Asset, error) {
	return s.assets.Get(ctx, id)
}

func (s *assetService) Delete(ctx context.Context, id string) error {
	return s.assets.Delete(ctx, id)
}

// IsNotFound reports whether err is one of the store's absence sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrProjectNotFound) ||
		errors.Is(err, apperrors.ErrAssetNotFound) ||
		errors.Is(err, apperrors.ErrKeyNotFound)
}
