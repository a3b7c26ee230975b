package handlers

import (
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/clipforge/clipforge-engine/pkg/repositories"
	"github.com/clipforge/clipforge-engine/pkg/services"
)

// maxValueBytes bounds a single generic-store payload. A var so tests can
// lower it.
var maxValueBytes int64 = 64 << 20

// StoreHandler exposes the generic key-value collection over HTTP. Values
// are opaque bytes; the request Content-Type is stored alongside and echoed
// back on reads.
type StoreHandler struct {
	repo   repositories.KVRepository
	logger *zap.Logger
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(repo repositories.KVRepository, logger *zap.Logger) *StoreHandler {
	return &StoreHandler{repo: repo, logger: logger}
}

// RegisterRoutes registers the generic store routes on the given mux.
func (h *StoreHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/store/{key}", h.Get)
	mux.HandleFunc("PUT /api/store/{key}", h.Put)
	mux.HandleFunc("DELETE /api/store/{key}", h.Delete)
}

// Put handles PUT /api/store/{key}: last write wins.
func (h *StoreHandler) Put(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	// Read one byte past the limit so an oversized payload is detected
	// instead of silently truncated.
	value, err := io.ReadAll(io.LimitReader(r.Body, maxValueBytes+1))
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_value", "could not read value body")
		return
	}
	if int64(len(value)) > maxValueBytes {
		_ = ErrorResponse(w, http.StatusRequestEntityTooLarge, "value_too_large", "value exceeds the size limit")
		return
	}

	if err := h.repo.Put(r.Context(), key, value, r.Header.Get("Content-Type")); err != nil {
		h.logger.Error("Failed to put value", zap.String("key", key), zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "put_failed", "could not store value")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get handles GET /api/store/{key}: the raw stored bytes with the stored
// content type.
func (h *StoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	stored, err := h.repo.Get(r.Context(), key)
	if err != nil {
		if services.IsNotFound(err) {
			_ = ErrorResponse(w, http.StatusNotFound, "key_not_found", "no value under key "+key)
			return
		}
		h.logger.Error("Failed to get value", zap.String("key", key), zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "get_failed", "could not load value")
		return
	}

	contentType := stored.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(stored.Value)
}

// Delete handles DELETE /api/store/{key}. Deleting an absent key is a no-op.
func (h *StoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	if err := h.repo.Delete(r.Context(), key); err != nil {
		h.logger.Error("Failed to delete value", zap.String("key", key), zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "delete_failed", "could not delete value")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
