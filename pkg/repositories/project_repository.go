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

// ProjectRepository defines the interface for project data access.
type ProjectRepository interface {
	// Put stores the full project record with last-write-wins semantics.
	Put(ctx context.Context, project *models.Project) error

	// Get retrieves a project by id, or apperrors.ErrProjectNotFound.
	Get(ctx context.Context, id string) (*models.Project, error)

	// List returns an unordered snapshot of all projects at call time.
	List(ctx context.Context) ([]*models.Project, error)

	// LinkAsset persists the asset and adds its id to the project's asset
	// set in a single transaction: on any failure, including an unknown
	// project id, neither write survives.
	LinkAsset(ctx context.Context, projectID string, asset *models.Asset) error
}

// projectRepository implements ProjectRepository on SQLite.
type projectRepository struct {
	db *database.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *database.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Put(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (id, name, edit_draft, asset_ids, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET name = excluded.name,
		    edit_draft = excluded.edit_draft,
		    asset_ids = excluded.asset_ids,
		    updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		project.ID,
		project.Name,
		draftBytes(project),
		project.AssetIDs,
		project.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to put project: %w", err)
	}

	return nil
}

func (r *projectRepository) Get(ctx context.Context, id string) (*models.Project, error) {
	query := `
		SELECT id, name, edit_draft, asset_ids, updated_at
		FROM projects
		WHERE id = ?`

	project, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return project, nil
}

func (r *projectRepository) List(ctx context.Context) ([]*models.Project, error) {
	query := `
		SELECT id, name, edit_draft, asset_ids, updated_at
		FROM projects`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}

	return projects, nil
}

func (r *projectRepository) LinkAsset(ctx context.Context, projectID string, asset *models.Asset) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin link transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var assetIDs models.StringSet
	row := tx.QueryRowContext(ctx, `SELECT asset_ids FROM projects WHERE id = ?`, projectID)
	if err := row.Scan(&assetIDs); err != nil {
		if err == sql.ErrNoRows {
			return apperrors.ErrProjectNotFound
		}
		return fmt.Errorf("failed to read project asset ids: %w", err)
	}

	// The asset record is written unconditionally even when an id is
	// re-linked: the stored blob is the one from this call, last write wins.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO assets (id, file_name, type, mime_type, blob, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET file_name = excluded.file_name,
		    type = excluded.type,
		    mime_type = excluded.mime_type,
		    blob = excluded.blob,
		    created_at = excluded.created_at`,
		asset.ID,
		asset.FileName,
		string(asset.Type),
		asset.MimeType,
		asset.Blob,
		asset.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to persist linked asset: %w", err)
	}

	assetIDs.Add(asset.ID)
	_, err = tx.ExecContext(ctx,
		`UPDATE projects SET asset_ids = ?, updated_at = ? WHERE id = ?`,
		assetIDs, time.Now().UnixMilli(), projectID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project asset ids: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit link transaction: %w", err)
	}

	return nil
}

// rowScanner covers both sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	var project models.Project
	var draft []byte
	var updatedAt int64

	if err := row.Scan(&project.ID, &project.Name, &draft, &project.AssetIDs, &updatedAt); err != nil {
		return nil, err
	}

	project.EditDraft = draft
	project.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return &project, nil
}

// draftBytes returns the opaque draft payload exactly as provided; a nil
// draft is stored as JSON null so round-trips stay structural.
func draftBytes(project *models.Project) []byte {
	if project.EditDraft == nil {
		return []byte("null")
	}
	return project.EditDraft
}

// Ensure projectRepository implements ProjectRepository at compile time.
var _ ProjectRepository = (*projectRepository)(nil)
