package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/clipforge/clipforge-engine/pkg/models"
	"github.com/clipforge/clipforge-engine/pkg/services"
)

// Virtual path namespaces the gateway answers instead of the next handler.
const (
	AssetPathPrefix = "/idb/assets/"
	AudioPathPrefix = "/idb/audio/"
)

// audioKeyPrefix maps an audio file name onto its generic-store key.
const audioKeyPrefix = "audio:"

// BlobStore is the read-only store view a gateway request resolves against.
type BlobStore interface {
	GetAsset(ctx context.Context, id string) (*models.Asset, error)
	GetValue(ctx context.Context, key string) (*models.StoredValue, error)
}

// StoreOpener yields a store handle for a single request. The gateway holds
// no connection of its own: it opens the store lazily on every intercepted
// request and assumes nothing survives between invocations.
type StoreOpener func(ctx context.Context) (BlobStore, error)

// Gateway serves stored media blobs for requests inside the /idb/ virtual
// namespaces. It is a pure request-to-response function over the store's
// contents; every other request passes through untouched.
type Gateway struct {
	open   StoreOpener
	logger *zap.Logger
}

// NewGateway creates a new Gateway.
func NewGateway(open StoreOpener, logger *zap.Logger) *Gateway {
	return &Gateway{
		open:   open,
		logger: logger.Named("asset-gateway"),
	}
}

// Intercept wraps next, taking over any request whose path starts with a
// recognized virtual prefix. The raw (still percent-encoded) path decides
// the match so encoded slashes in keys cannot escape the namespace.
func (g *Gateway) Intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		escaped := r.URL.EscapedPath()
		switch {
		case strings.HasPrefix(escaped, AssetPathPrefix):
			g.serveAsset(w, r, strings.TrimPrefix(escaped, AssetPathPrefix))
		case strings.HasPrefix(escaped, AudioPathPrefix):
			g.serveAudio(w, r, strings.TrimPrefix(escaped, AudioPathPrefix))
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func (g *Gateway) serveAsset(w http.ResponseWriter, r *http.Request, rawID string) {
	assetID, err := url.PathUnescape(rawID)
	if err != nil {
		http.Error(w, "asset not found", http.StatusNotFound)
		return
	}

	store, err := g.open(r.Context())
	if err != nil {
		g.logger.Error("Failed to open store for asset request",
			zap.String("asset_id", assetID),
			zap.Error(err))
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}

	asset, err := store.GetAsset(r.Context(), assetID)
	if err != nil {
		g.respondLookupError(w, err, "asset", assetID)
		return
	}

	g.writeBlob(w, asset.MimeType, asset.Blob)
}

func (g *Gateway) serveAudio(w http.ResponseWriter, r *http.Request, rawName string) {
	fileName, err := url.PathUnescape(rawName)
	if err != nil {
		http.Error(w, "audio not found", http.StatusNotFound)
		return
	}

	store, err := g.open(r.Context())
	if err != nil {
		g.logger.Error("Failed to open store for audio request",
			zap.String("file_name", fileName),
			zap.Error(err))
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}

	stored, err := store.GetValue(r.Context(), audioKeyPrefix+fileName)
	if err != nil {
		g.respondLookupError(w, err, "audio", fileName)
		return
	}

	g.writeBlob(w, stored.MimeType, stored.Value)
}

// respondLookupError converts a store error into the request's terminal
// status: 404 for an absent key, 500 for anything else. Failures never
// propagate past the response; each request is independent.
func (g *Gateway) respondLookupError(w http.ResponseWriter, err error, kind, key string) {
	if services.IsNotFound(err) {
		http.Error(w, kind+" not found", http.StatusNotFound)
		return
	}

	g.logger.Error("Store lookup failed",
		zap.String("kind", kind),
		zap.String("key", key),
		zap.Error(err))
	http.Error(w, "storage error", http.StatusInternalServerError)
}

// writeBlob sends the whole blob as a single synthetic range: 206 with a
// Content-Range spanning every byte. No true range negotiation happens here;
// the player gets the full payload regardless of what it asked for.
func (g *Gateway) writeBlob(w http.ResponseWriter, mimeType string, blob []byte) {
	contentType := mimeType
	if contentType == "" {
		if len(blob) > 0 {
			contentType = http.DetectContentType(blob)
		} else {
			// DetectContentType calls an empty payload text/plain.
			contentType = "application/octet-stream"
		}
	}

	size := len(blob)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Content-Length", strconv.Itoa(size))
	w.Header().Set("Content-Range", fmt.Sprintf("bytes 0-%d/%d", size-1, size))
	w.WriteHeader(http.StatusPartialContent)
	_, _ = w.Write(blob)
}
