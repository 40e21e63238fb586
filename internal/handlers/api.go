// Package handlers contains the JSON HTTP handlers for the memory book
// service. Handlers are grouped on a single API struct and receive
// their dependencies through it.
package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"memorybook/internal/cache"
	"memorybook/internal/catalog"
	"memorybook/internal/export"
	"memorybook/internal/render"
	"memorybook/internal/storage"
	"memorybook/internal/store"
)

// API groups all HTTP handlers and their dependencies.
type API struct {
	projects      *store.ProjectStore
	contributions *store.ContributionStore
	pageStore     *store.PageStore
	catalog       *catalog.Catalog
	renderer      *render.Renderer
	exporter      *export.Exporter
	storageClient *storage.Client
	bookCache     *cache.BookCache
}

// New creates the API handler group. storageClient may be nil when S3
// is not configured; bookCache may be nil when Valkey is unavailable.
func New(projects *store.ProjectStore, contributions *store.ContributionStore, pageStore *store.PageStore, cat *catalog.Catalog, renderer *render.Renderer, exporter *export.Exporter, storageClient *storage.Client, bookCache *cache.BookCache) *API {
	return &API{
		projects:      projects,
		contributions: contributions,
		pageStore:     pageStore,
		catalog:       cat,
		renderer:      renderer,
		exporter:      exporter,
		storageClient: storageClient,
		bookCache:     bookCache,
	}
}

// Health reports service liveness.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Templates lists the full layout catalog.
func (a *API) Templates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"templates": a.catalog.List()})
}

// urlUUID parses a chi URL parameter as a UUID. Writes a 400 response
// and returns false when the parameter is malformed.
func urlUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// urlInt parses a chi URL parameter as an integer.
func urlInt(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}

// decodeJSON decodes a request body into dst. Writes a 400 response
// and returns false on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// isNotFound reports whether a store error means the row is gone.
func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// invalidate drops all cached book output for a project after a
// mutation. Safe to call with a nil cache.
func (a *API) invalidate(r *http.Request, projectID uuid.UUID) {
	if a.bookCache != nil {
		a.bookCache.Invalidate(r.Context(), projectID)
	}
}
