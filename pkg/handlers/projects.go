package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"github.com/clipforge/clipforge-engine/pkg/models"
	"github.com/clipforge/clipforge-engine/pkg/services"
)

// maxDraftBytes bounds a single edit-draft payload. A var so tests can
// lower it.
var maxDraftBytes int64 = 32 << 20

// ProjectsHandler handles the editing-session API.
type ProjectsHandler struct {
	svc    services.ProjectService
	logger *zap.Logger
}

// NewProjectsHandler creates a new ProjectsHandler.
func NewProjectsHandler(svc services.ProjectService, logger *zap.Logger) *ProjectsHandler {
	return &ProjectsHandler{svc: svc, logger: logger}
}

// RegisterRoutes registers the project routes on the given mux.
func (h *ProjectsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/projects", h.List)
	mux.HandleFunc("GET /api/projects/{id}", h.Get)
	mux.HandleFunc("PUT /api/projects/{id}", h.Save)
	mux.HandleFunc("POST /api/projects/{id}/open", h.Open)
	mux.HandleFunc("PUT /api/projects/{id}/draft", h.SaveDraft)
}

// OpenRequest optionally names a project being opened for the first time.
type OpenRequest struct {
	Name string `json:"name"`
}

// List handles GET /api/projects.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list projects", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "list_failed", "could not list projects")
		return
	}

	if projects == nil {
		projects = []*models.Project{}
	}
	if err := WriteJSON(w, http.StatusOK, projects); err != nil {
		h.logger.Error("Failed to encode project list", zap.Error(err))
	}
}

// Get handles GET /api/projects/{id}.
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	project, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if services.IsNotFound(err) {
			_ = ErrorResponse(w, http.StatusNotFound, "project_not_found", "no project with id "+id)
			return
		}
		h.logger.Error("Failed to get project", zap.String("project_id", id), zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "get_failed", "could not load project")
		return
	}

	if err := WriteJSON(w, http.StatusOK, project); err != nil {
		h.logger.Error("Failed to encode project", zap.Error(err))
	}
}

// Open handles POST /api/projects/{id}/open: get-or-create with the seeded
// default timeline. Returns 201 when the project was just created.
func (h *ProjectsHandler) Open(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req OpenRequest
	if r.Body != nil {
		// An empty or absent body just means "use the default name".
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.Name == "" {
		req.Name = "Untitled Project"
	}

	project, created, err := h.svc.GetOrCreate(r.Context(), id, req.Name)
	if err != nil {
		h.logger.Error("Failed to open project", zap.String("project_id", id), zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "open_failed", "could not open project")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	if err := WriteJSON(w, status, project); err != nil {
		h.logger.Error("Failed to encode project", zap.Error(err))
	}
}

// Save handles PUT /api/projects/{id}: full-record overwrite, last write
// wins. The path id is authoritative over whatever the body carries.
func (h *ProjectsHandler) Save(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var project models.Project
	if err := json.NewDecoder(io.LimitReader(r.Body, maxDraftBytes)).Decode(&project); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_project", "request body is not a valid project")
		return
	}
	project.ID = id

	if err := h.svc.Save(r.Context(), &project); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			_ = ErrorResponse(w, http.StatusBadRequest, "invalid_project", verrs.Error())
			return
		}
		h.logger.Error("Failed to save project", zap.String("project_id", id), zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "save_failed", "could not save project")
		return
	}

	if err := WriteJSON(w, http.StatusOK, &project); err != nil {
		h.logger.Error("Failed to encode project", zap.Error(err))
	}
}

// SaveDraft handles PUT /api/projects/{id}/draft. The body is the opaque
// edit draft, stored verbatim; only the draft and updatedAt change. The
// editor fires this on every present-state change and does not wait on it,
// so failures are logged here and reported, never escalated.
func (h *ProjectsHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	// Read one byte past the limit so an oversized draft is rejected as too
	// large instead of truncated into invalid JSON.
	draft, err := io.ReadAll(io.LimitReader(r.Body, maxDraftBytes+1))
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_draft", "could not read draft body")
		return
	}
	if int64(len(draft)) > maxDraftBytes {
		_ = ErrorResponse(w, http.StatusRequestEntityTooLarge, "draft_too_large", "draft exceeds the size limit")
		return
	}
	if !json.Valid(draft) {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_draft", "draft body is not valid JSON")
		return
	}

	if err := h.svc.SaveDraft(r.Context(), id, draft); err != nil {
		if services.IsNotFound(err) {
			_ = ErrorResponse(w, http.StatusNotFound, "project_not_found", "no project with id "+id)
			return
		}
		h.logger.Error("Failed to save draft", zap.String("project_id", id), zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "draft_save_failed", "changes not persisted")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
