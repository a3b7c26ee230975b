package handlers

import (
	"context"
	"encoding/json"

	"github.com/clipforge/clipforge-engine/pkg/apperrors"
	"github.com/clipforge/clipforge-engine/pkg/models"
)

// mockProjectService is a configurable mock for handler tests.
type mockProjectService struct {
	project  *models.Project
	projects []*models.Project
	created  bool
	err      error

	savedDraft json.RawMessage
	saved      *models.Project
}

func (m *mockProjectService) GetOrCreate(ctx context.Context, id, name string) (*models.Project, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	if m.project != nil {
		return m.project, m.created, nil
	}
	return &models.Project{ID: id, Name: name, AssetIDs: models.StringSet{}}, m.created, nil
}

func (m *mockProjectService) Save(ctx context.Context, project *models.Project) error {
	if m.err != nil {
		return m.err
	}
	m.saved = project
	return nil
}

func (m *mockProjectService) SaveDraft(ctx context.Context, id string, draft json.RawMessage) error {
	if m.err != nil {
		return m.err
	}
	m.savedDraft = draft
	return nil
}

func (m *mockProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.project == nil {
		return nil, apperrors.ErrProjectNotFound
	}
	return m.project, nil
}

func (m *mockProjectService) List(ctx context.Context) ([]*models.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.projects, nil
}

// mockAssetService is a configurable mock for handler tests.
type mockAssetService struct {
	asset *models.Asset
	err   error

	uploadedProjectID string
	uploadedFileName  string
	uploadedMimeType  string
	uploadedBlob      []byte
	deletedID         string
}

func (m *mockAssetService) CreateFromUpload(ctx context.Context, projectID, fileName, mimeType string, blob []byte) (*models.Asset, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.uploadedProjectID = projectID
	m.uploadedFileName = fileName
	m.uploadedMimeType = mimeType
	m.uploadedBlob = blob
	if m.asset != nil {
		return m.asset, nil
	}
	return &models.Asset{
		ID:       "generated-id",
		FileName: fileName,
		Type:     models.AssetTypeFromMime(mimeType),
		MimeType: mimeType,
		Blob:     blob,
	}, nil
}

func (m *mockAssetService) Get(ctx context.Context, id string) (*models.Asset, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.asset == nil {
		return nil, apperrors.ErrAssetNotFound
	}
	return m.asset, nil
}

func (m *mockAssetService) Delete(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.deletedID = id
	return nil
}

// mockBlobStore backs gateway tests with fixed lookup results.
type mockBlobStore struct {
	assets map[string]*models.Asset
	values map[string]*models.StoredValue
	err    error
}

func (m *mockBlobStore) GetAsset(ctx context.Context, id string) (*models.Asset, error) {
	if m.err != nil {
		return nil, m.err
	}
	asset, ok := m.assets[id]
	if !ok {
		return nil, apperrors.ErrAssetNotFound
	}
	return asset, nil
}

func (m *mockBlobStore) GetValue(ctx context.Context, key string) (*models.StoredValue, error) {
	if m.err != nil {
		return nil, m.err
	}
	value, ok := m.values[key]
	if !ok {
		return nil, apperrors.ErrKeyNotFound
	}
	return value, nil
}

// mockKVRepository is a configurable mock for the generic store handler.
type mockKVRepository struct {
	values map[string]*models.StoredValue
	err    error
}

func newMockKVRepository() *mockKVRepository {
	return &mockKVRepository{values: map[string]*models.StoredValue{}}
}

func (m *mockKVRepository) Put(ctx context.Context, key string, value []byte, mimeType string) error {
	if m.err != nil {
		return m.err
	}
	m.values[key] = &models.StoredValue{Key: key, Value: value, MimeType: mimeType}
	return nil
}

func (m *mockKVRepository) Get(ctx context.Context, key string) (*models.StoredValue, error) {
	if m.err != nil {
		return nil, m.err
	}
	value, ok := m.values[key]
	if !ok {
		return nil, apperrors.ErrKeyNotFound
	}
	return value, nil
}

func (m *mockKVRepository) Delete(ctx context.Context, key string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.values, key)
	return nil
}
