package handlers

import (
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/clipforge/clipforge-engine/pkg/models"
	"github.com/clipforge/clipforge-engine/pkg/services"
)

// maxUploadBytes bounds a single media upload. A var so tests can lower it.
var maxUploadBytes int64 = 512 << 20

// AssetsHandler handles media upload and asset metadata endpoints.
type AssetsHandler struct {
	svc    services.AssetService
	logger *zap.Logger
}

// NewAssetsHandler creates a new AssetsHandler.
func NewAssetsHandler(svc services.AssetService, logger *zap.Logger) *AssetsHandler {
	return &AssetsHandler{svc: svc, logger: logger}
}

// RegisterRoutes registers the asset routes on the given mux.
func (h *AssetsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/projects/{id}/assets", h.Upload)
	mux.HandleFunc("GET /api/assets/{id}", h.Get)
	mux.HandleFunc("DELETE /api/assets/{id}", h.Delete)
}

// AssetResponse is asset metadata plus the virtual URL the editor should
// hand to the player. The blob itself is only served through that URL.
type AssetResponse struct {
	ID        string           `json:"id"`
	FileName  string           `json:"fileName"`
	Type      models.AssetType `json:"type"`
	MimeType  string           `json:"mimeType"`
	SizeBytes int              `json:"sizeBytes"`
	CreatedAt time.Time        `json:"createdAt"`
	URL       string           `json:"url"`
}

func newAssetResponse(asset *models.Asset) AssetResponse {
	return AssetResponse{
		ID:        asset.ID,
		FileName:  asset.FileName,
		Type:      asset.Type,
		MimeType:  asset.MimeType,
		SizeBytes: len(asset.Blob),
		CreatedAt: asset.CreatedAt,
		URL:       AssetPathPrefix + url.PathEscape(asset.ID),
	}
}

// Upload handles POST /api/projects/{id}/assets: multipart upload of one
// file, persisted and linked to the project in a single transaction.
func (h *AssetsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")

	file, header, err := r.FormFile("file")
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_upload", "multipart field 'file' is required")
		return
	}
	defer file.Close()

	// Read one byte past the limit so an oversized file is detected instead
	// of silently truncated.
	blob, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_upload", "could not read uploaded file")
		return
	}
	if int64(len(blob)) > maxUploadBytes {
		_ = ErrorResponse(w, http.StatusRequestEntityTooLarge, "upload_too_large", "uploaded file exceeds the size limit")
		return
	}

	asset, err := h.svc.CreateFromUpload(r.Context(), projectID, header.Filename, header.Header.Get("Content-Type"), blob)
	if err != nil {
		if services.IsNotFound(err) {
			_ = ErrorResponse(w, http.StatusNotFound, "project_not_found", "no project with id "+projectID)
			return
		}
		h.logger.Error("Failed to store upload",
			zap.String("project_id", projectID),
			zap.String("file_name", header.Filename),
			zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "upload_failed", "could not store upload")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, newAssetResponse(asset)); err != nil {
		h.logger.Error("Failed to encode asset response", zap.Error(err))
	}
}

// Get handles GET /api/assets/{id}: metadata only, no blob bytes.
func (h *AssetsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	asset, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if status := statusForError(err); status == http.StatusInternalServerError {
			h.logger.Error("Failed to get asset", zap.String("asset_id", id), zap.Error(err))
			_ = ErrorResponse(w, status, "get_failed", "could not load asset")
		} else {
			_ = ErrorResponse(w, status, "asset_not_found", "no asset with id "+id)
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, newAssetResponse(asset)); err != nil {
		h.logger.Error("Failed to encode asset response", zap.Error(err))
	}
}

// Delete handles DELETE /api/assets/{id}. Project links are untouched.
func (h *AssetsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if status := statusForError(err); status == http.StatusInternalServerError {
			h.logger.Error("Failed to delete asset", zap.String("asset_id", id), zap.Error(err))
			_ = ErrorResponse(w, status, "delete_failed", "could not delete asset")
		} else {
			_ = ErrorResponse(w, status, "asset_not_found", "no asset with id "+id)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
