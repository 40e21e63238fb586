package handlers

import (
	"log/slog"
	"net/http"

	"memorybook/internal/pages"
)

// ContributionCreate adds a contributor to a project. The contribution
// starts with one empty page using the default template, so the editor
// always has an active page to show.
func (a *API) ContributionCreate(w http.ResponseWriter, r *http.Request) {
	projectID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		ContributorName string `json:"contributorName"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateContributor(req.ContributorName); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	project, err := a.projects.FindByID(projectID)
	if err != nil {
		slog.Error("project lookup failed", "error", err, "project", projectID)
		writeError(w, http.StatusInternalServerError, "failed to load project")
		return
	}
	if project == nil {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}

	contribution, err := a.contributions.Create(projectID, req.ContributorName)
	if err != nil {
		slog.Error("contribution create failed", "error", err, "project", projectID)
		writeError(w, http.StatusInternalServerError, "failed to create contribution")
		return
	}

	coll := pages.New(contribution.ID, a.catalog.Default())
	if err := a.pageStore.SaveCollection(contribution.ID, coll.Pages(), coll.ActiveID()); err != nil {
		slog.Error("initial page save failed", "error", err, "contribution", contribution.ID)
		writeError(w, http.StatusInternalServerError, "failed to create first page")
		return
	}
	contribution.Pages = coll.Pages()
	active := coll.ActiveID()
	contribution.ActivePageID = &active

	a.invalidate(r, projectID)
	writeJSON(w, http.StatusCreated, contribution)
}

// ContributionList returns a project's contributions in order,
// including their pages.
func (a *API) ContributionList(w http.ResponseWriter, r *http.Request) {
	projectID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	project, err := a.projects.LoadFull(projectID, a.contributions, a.pageStore)
	if err != nil {
		slog.Error("contribution list failed", "error", err, "project", projectID)
		writeError(w, http.StatusInternalServerError, "failed to list contributions")
		return
	}
	if project == nil {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"contributions": project.Contributions})
}

// ContributionExclusion flags or unflags a contribution for the
// assembled book. Exclusion hides the pages from assembly but never
// deletes them, so the flag can be flipped back at any time.
func (a *API) ContributionExclusion(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		ExcludedFromBook bool `json:"excludedFromBook"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	contribution, err := a.contributions.FindByID(id)
	if err != nil {
		slog.Error("contribution lookup failed", "error", err, "contribution", id)
		writeError(w, http.StatusInternalServerError, "failed to load contribution")
		return
	}
	if contribution == nil {
		writeError(w, http.StatusNotFound, "contribution not found")
		return
	}

	if err := a.contributions.SetExcluded(id, req.ExcludedFromBook); err != nil {
		slog.Error("exclusion update failed", "error", err, "contribution", id)
		writeError(w, http.StatusInternalServerError, "failed to update exclusion")
		return
	}

	a.invalidate(r, contribution.ProjectID)
	writeJSON(w, http.StatusOK, map[string]any{
		"id":               id,
		"excludedFromBook": req.ExcludedFromBook,
	})
}
