package services

import (
	"context"

	"github.com/clipforge/clipforge-engine/pkg/apperrors"
	"github.com/clipforge/clipforge-engine/pkg/models"
)

// mockProjectRepository is a configurable in-memory ProjectRepository.
type mockProjectRepository struct {
	projects map[string]*models.Project
	err      error

	linkedAssets []*models.Asset
}

func newMockProjectRepository() *mockProjectRepository {
	return &mockProjectRepository{projects: map[string]*models.Project{}}
}

func (m *mockProjectRepository) Put(ctx context.Context, project *models.Project) error {
	if m.err != nil {
		return m.err
	}
	clone := *project
	m.projects[project.ID] = &clone
	return nil
}

func (m *mockProjectRepository) Get(ctx context.Context, id string) (*models.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	project, ok := m.projects[id]
	if !ok {
		return nil, apperrors.ErrProjectNotFound
	}
	clone := *project
	return &clone, nil
}

func (m *mockProjectRepository) List(ctx context.Context) ([]*models.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	var projects []*models.Project
	for _, p := range m.projects {
		clone := *p
		projects = append(projects, &clone)
	}
	return projects, nil
}

func (m *mockProjectRepository) LinkAsset(ctx context.Context, projectID string, asset *models.Asset) error {
	if m.err != nil {
		return m.err
	}
	project, ok := m.projects[projectID]
	if !ok {
		return apperrors.ErrProjectNotFound
	}
	project.AssetIDs.Add(asset.ID)
	m.linkedAssets = append(m.linkedAssets, asset)
	return nil
}

// mockAssetRepository is a configurable in-memory AssetRepository.
type mockAssetRepository struct {
	assets map[string]*models.Asset
	err    error
}

func newMockAssetRepository() *mockAssetRepository {
	return &mockAssetRepository{assets: map[string]*models.Asset{}}
}

func (m *mockAssetRepository) Put(ctx context.Context, asset *models.Asset) error {
	if m.err != nil {
		return m.err
	}
	m.assets[asset.ID] = asset
	return nil
}

func (m *mockAssetRepository) Get(ctx context.Context, id string) (*models.Asset, error) {
	if m.err != nil {
		return nil, m.err
	}
	asset, ok := m.assets[id]
	if !ok {
		return nil, apperrors.ErrAssetNotFound
	}
	return asset, nil
}

func (m *mockAssetRepository) Delete(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.assets[id]; !ok {
		return apperrors.ErrAssetNotFound
	}
	delete(m.assets, id)
	return nil
}
