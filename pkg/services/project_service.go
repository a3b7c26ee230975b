package services

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/clipforge/clipforge-engine/pkg/models"
	"github.com/clipforge/clipforge-engine/pkg/repositories"
)

// DefaultTimeline is the editing document a fresh project starts from. The
// editor owns its schema; it is stored verbatim like any other draft.
//
//go:embed default_timeline.json
var DefaultTimeline []byte

// ProjectService provides operations on editing sessions.
type ProjectService interface {
	// GetOrCreate returns the project with the given id, creating and
	// seeding it with the default timeline when absent. The second return
	// reports whether a new project was created.
	GetOrCreate(ctx context.Context, id, name string) (*models.Project, bool, error)

	// Save overwrites the full project record (last write wins).
	Save(ctx context.Context, project *models.Project) error

	// SaveDraft overwrites only the project's edit draft and updatedAt,
	// leaving every field this subsystem does not own untouched.
	SaveDraft(ctx context.Context, id string, draft json.RawMessage) error

	// Get returns the project with the given id.
	Get(ctx context.Context, id string) (*models.Project, error)

	// List returns a snapshot of all projects.
	List(ctx context.Context) ([]*models.Project, error)
}

type projectService struct {
	repo   repositories.ProjectRepository
	logger *zap.Logger
}

// NewProjectService creates a new ProjectService.
func NewProjectService(repo repositories.ProjectRepository, logger *zap.Logger) ProjectService {
	return &projectService{
		repo:   repo,
		logger: logger.Named("project-service"),
	}
}

var _ ProjectService = (*projectService)(nil)

func (s *projectService) GetOrCreate(ctx context.Context, id, name string) (*models.Project, bool, error) {
	project, err := s.repo.Get(ctx, id)
	if err == nil {
		return project, false, nil
	}
	if !IsNotFound(err) {
		return nil, false, fmt.Errorf("load project %s: %w", id, err)
	}

	project = &models.Project{
		ID:        id,
		Name:      name,
		EditDraft: DefaultTimeline,
		AssetIDs:  models.StringSet{},
		UpdatedAt: time.Now().UTC(),
	}
	if err := project.Validate(); err != nil {
		return nil, false, fmt.Errorf("validate new project: %w", err)
	}
	if err := s.repo.Put(ctx, project); err != nil {
		return nil, false, fmt.Errorf("seed project %s: %w", id, err)
	}

	s.logger.Info("Seeded new project",
		zap.String("project_id", id),
		zap.String("name", name))
	return project, true, nil
}

func (s *projectService) Save(ctx context.Context, project *models.Project) error {
	if err := project.Validate(); err != nil {
		return fmt.Errorf("validate project: %w", err)
	}

	project.UpdatedAt = time.Now().UTC()
	if err := s.repo.Put(ctx, project); err != nil {
		return fmt.Errorf("save project %s: %w", project.ID, err)
	}

	return nil
}

func (s *projectService) SaveDraft(ctx context.Context, id string, draft json.RawMessage) error {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("load project %s for draft save: %w", id, err)
	}

	project.EditDraft = draft
	project.UpdatedAt = time.Now().UTC()
	if err := s.repo.Put(ctx, project); err != nil {
		return fmt.Errorf("save draft for project %s: %w", id, err)
	}

	return nil
}

func (s *projectService) Get(ctx context.Context, id string) (*models.Project, error) {
	return s.repo.Get(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]*models.Project, error) {
	return s.repo.List(ctx)
}
