package handlers

import (
	"log/slog"
	"net/http"

	"memorybook/internal/models"
)

// ProjectCreate creates a new memory book project.
func (a *API) ProjectCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProjectName      string `json:"projectName"`
		EventDescription string `json:"eventDescription"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateProject(req.ProjectName, req.EventDescription); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	project, err := a.projects.Create(req.ProjectName, req.EventDescription)
	if err != nil {
		slog.Error("project create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create project")
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

// ProjectGet returns a project with its contributions and pages.
func (a *API) ProjectGet(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	project, err := a.projects.LoadFull(id, a.contributions, a.pageStore)
	if err != nil {
		slog.Error("project load failed", "error", err, "project", id)
		writeError(w, http.StatusInternalServerError, "failed to load project")
		return
	}
	if project == nil {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}

	writeJSON(w, http.StatusOK, project)
}

// ProjectDelete removes a project; its contributions and pages go with
// it through the cascading foreign keys. Uploaded photos stay in
// object storage, unreferenced.
func (a *API) ProjectDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	project, err := a.projects.FindByID(id)
	if err != nil {
		slog.Error("project lookup failed", "error", err, "project", id)
		writeError(w, http.StatusInternalServerError, "failed to load project")
		return
	}
	if project == nil {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}

	if err := a.projects.Delete(id); err != nil {
		slog.Error("project delete failed", "error", err, "project", id)
		writeError(w, http.StatusInternalServerError, "failed to delete project")
		return
	}

	a.invalidate(r, id)
	w.WriteHeader(http.StatusNoContent)
}

// CoverUpdate replaces the project's cover configuration.
func (a *API) CoverUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	var cover models.CoverConfig
	if !decodeJSON(w, r, &cover) {
		return
	}
	if msg := validateCover(cover.Title, cover.Description); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	if err := a.projects.UpdateCover(id, cover); err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		slog.Error("cover update failed", "error", err, "project", id)
		writeError(w, http.StatusInternalServerError, "failed to update cover")
		return
	}

	a.invalidate(r, id)
	writeJSON(w, http.StatusOK, map[string]any{"cover": cover})
}
