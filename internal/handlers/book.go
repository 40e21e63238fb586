package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"memorybook/internal/book"
	"memorybook/internal/cache"
	"memorybook/internal/catalog"
	"memorybook/internal/models"
	"memorybook/internal/preview"
)

// loadBook fetches the full project and assembles the book. Writes the
// error response itself and returns false on failure.
func (a *API) loadBook(w http.ResponseWriter, projectID uuid.UUID) (*book.Book, *models.Project, bool) {
	project, err := a.projects.LoadFull(projectID, a.contributions, a.pageStore)
	if err != nil {
		slog.Error("project load failed", "error", err, "project", projectID)
		writeError(w, http.StatusInternalServerError, "failed to load project")
		return nil, nil, false
	}
	if project == nil {
		writeError(w, http.StatusNotFound, "project not found")
		return nil, nil, false
	}

	b, err := book.Assemble(project, a.catalog)
	if err != nil {
		if errors.Is(err, catalog.ErrTemplateNotFound) {
			slog.Error("book references unknown template", "error", err, "project", projectID)
			writeError(w, http.StatusNotFound, "template not found")
			return nil, nil, false
		}
		slog.Error("book assembly failed", "error", err, "project", projectID)
		writeError(w, http.StatusInternalServerError, "failed to assemble book")
		return nil, nil, false
	}
	return b, project, true
}

// BookGet returns the assembled book as JSON: numbered pages, sheet
// grouping, and render-case tags, with excluded contributions omitted.
func (a *API) BookGet(w http.ResponseWriter, r *http.Request) {
	projectID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	b, _, ok := a.loadBook(w, projectID)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// Preview returns one flipbook page as an HTML fragment plus the
// navigation state. Index 0 is the cover; book pages follow.
func (a *API) Preview(w http.ResponseWriter, r *http.Request) {
	projectID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	index := 0
	if raw := r.URL.Query().Get("page"); raw != "" {
		var err error
		index, err = strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid page index")
			return
		}
	}

	var fragment []byte
	if a.bookCache != nil {
		if cached, hit := a.bookCache.Get(r.Context(), projectID, cache.PreviewVariant(index)); hit {
			fragment = cached
		}
	}

	b, _, ok := a.loadBook(w, projectID)
	if !ok {
		return
	}

	flip := preview.NewFlipbook(b, a.renderer, preview.DefaultBounds)
	if err := flip.GoTo(index); err != nil {
		writeError(w, http.StatusNotFound, "page index out of range")
		return
	}

	if fragment == nil {
		html, err := flip.RenderCurrent()
		if err != nil {
			slog.Error("preview render failed", "error", err, "project", projectID, "index", index)
			writeError(w, http.StatusInternalServerError, "failed to render preview")
			return
		}
		fragment = []byte(html)
		if a.bookCache != nil {
			a.bookCache.Set(r.Context(), projectID, cache.PreviewVariant(index), fragment)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"index":       index,
		"pageCount":   flip.PageCount(),
		"hasPrevious": index > 0,
		"hasNext":     index < flip.PageCount()-1,
		"html":        string(fragment),
	})
}

// Export serves the self-contained printable HTML document for the
// external PDF step.
func (a *API) Export(w http.ResponseWriter, r *http.Request) {
	projectID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	if a.bookCache != nil {
		if cached, hit := a.bookCache.Get(r.Context(), projectID, cache.ExportVariant()); hit {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(cached)
			return
		}
	}

	b, _, ok := a.loadBook(w, projectID)
	if !ok {
		return
	}

	doc, err := a.exporter.Document(b)
	if err != nil {
		slog.Error("export render failed", "error", err, "project", projectID)
		writeError(w, http.StatusInternalServerError, "failed to render export")
		return
	}

	if a.bookCache != nil {
		a.bookCache.Set(r.Context(), projectID, cache.ExportVariant(), []byte(doc))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(doc))
}
