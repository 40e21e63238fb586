package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"memorybook/internal/catalog"
	"memorybook/internal/models"
	"memorybook/internal/pages"
)

// loadCollection reconstructs a contribution's page collection from
// the database. Returns nil without writing when the contribution does
// not exist; the caller decides the 404.
func (a *API) loadCollection(w http.ResponseWriter, contributionID uuid.UUID) (*pages.Collection, *models.Contribution, bool) {
	contribution, err := a.contributions.FindByID(contributionID)
	if err != nil {
		slog.Error("contribution lookup failed", "error", err, "contribution", contributionID)
		writeError(w, http.StatusInternalServerError, "failed to load contribution")
		return nil, nil, false
	}
	if contribution == nil {
		writeError(w, http.StatusNotFound, "contribution not found")
		return nil, nil, false
	}

	persisted, err := a.pageStore.ListByContribution(contributionID)
	if err != nil {
		slog.Error("page list failed", "error", err, "contribution", contributionID)
		writeError(w, http.StatusInternalServerError, "failed to load pages")
		return nil, nil, false
	}

	coll, err := pages.Load(contributionID, persisted, contribution.ActivePageID)
	if err != nil {
		slog.Error("collection load failed", "error", err, "contribution", contributionID)
		writeError(w, http.StatusInternalServerError, "failed to load pages")
		return nil, nil, false
	}
	return coll, contribution, true
}

// collectionForPage resolves a page id to its contribution's collection.
func (a *API) collectionForPage(w http.ResponseWriter, pageID uuid.UUID) (*pages.Collection, *models.Contribution, bool) {
	page, err := a.pageStore.FindByID(pageID)
	if err != nil {
		slog.Error("page lookup failed", "error", err, "page", pageID)
		writeError(w, http.StatusInternalServerError, "failed to load page")
		return nil, nil, false
	}
	if page == nil || page.ContributionID == nil {
		writeError(w, http.StatusNotFound, "page not found")
		return nil, nil, false
	}
	return a.loadCollection(w, *page.ContributionID)
}

// save persists the collection and invalidates cached book output.
func (a *API) save(w http.ResponseWriter, r *http.Request, coll *pages.Collection, contribution *models.Contribution) bool {
	if err := a.pageStore.SaveCollection(coll.ContributionID(), coll.Pages(), coll.ActiveID()); err != nil {
		slog.Error("collection save failed", "error", err, "contribution", coll.ContributionID())
		writeError(w, http.StatusInternalServerError, "failed to save pages")
		return false
	}
	a.invalidate(r, contribution.ProjectID)
	return true
}

// writeOpError maps a collection mutation error to a status code.
// ValidationError never changes state, so 422 is safe to retry.
func writeOpError(w http.ResponseWriter, err error) {
	var ve *pages.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusUnprocessableEntity, ve.Error())
	case errors.Is(err, catalog.ErrTemplateNotFound):
		writeError(w, http.StatusNotFound, "template not found")
	default:
		slog.Error("page operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "operation failed")
	}
}

// PageAdd appends an empty page to a contribution. The new page uses
// the requested template, or the default when the body omits one, and
// becomes the active page.
func (a *API) PageAdd(w http.ResponseWriter, r *http.Request) {
	contributionID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		TemplateID string `json:"templateId"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	tpl := a.catalog.Default()
	if req.TemplateID != "" {
		var err error
		tpl, err = a.catalog.Resolve(req.TemplateID)
		if err != nil {
			writeError(w, http.StatusNotFound, "template not found")
			return
		}
	}

	coll, contribution, ok := a.loadCollection(w, contributionID)
	if !ok {
		return
	}

	page := coll.Add(tpl)
	if !a.save(w, r, coll, contribution) {
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"page":         page,
		"activePageId": coll.ActiveID(),
	})
}

// PageDelete removes a page. The last remaining page of a contribution
// cannot be deleted; the active pointer moves to the previous page.
func (a *API) PageDelete(w http.ResponseWriter, r *http.Request) {
	pageID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	coll, contribution, ok := a.collectionForPage(w, pageID)
	if !ok {
		return
	}

	if err := coll.Delete(pageID); err != nil {
		writeOpError(w, err)
		return
	}
	// The row disappears with the snapshot save; the delete, the
	// position shifts and the active pointer commit together.
	if !a.save(w, r, coll, contribution) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"pages":        coll.Pages(),
		"activePageId": coll.ActiveID(),
	})
}

// PageReorder replaces a contribution's page order. The order must be
// an exact permutation of the current page ids.
func (a *API) PageReorder(w http.ResponseWriter, r *http.Request) {
	contributionID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Order []uuid.UUID `json:"order"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	coll, contribution, ok := a.loadCollection(w, contributionID)
	if !ok {
		return
	}

	if err := coll.Reorder(req.Order); err != nil {
		writeOpError(w, err)
		return
	}
	if !a.save(w, r, coll, contribution) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"pages":        coll.Pages(),
		"activePageId": coll.ActiveID(),
	})
}

// ActivePageSelect moves the contribution's active-page pointer.
func (a *API) ActivePageSelect(w http.ResponseWriter, r *http.Request) {
	contributionID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		PageID uuid.UUID `json:"pageId"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	coll, contribution, ok := a.loadCollection(w, contributionID)
	if !ok {
		return
	}

	if err := coll.SelectActive(req.PageID); err != nil {
		writeOpError(w, err)
		return
	}
	if err := a.contributions.SetActivePage(contribution.ID, req.PageID); err != nil {
		slog.Error("active page update failed", "error", err, "contribution", contribution.ID)
		writeError(w, http.StatusInternalServerError, "failed to select page")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"activePageId": coll.ActiveID()})
}

// TemplateSwitch changes a page's template, remapping existing content
// into the new shape set. When the new template has fewer slots the
// overflow is dropped and reported as a non-fatal contentLoss warning.
func (a *API) TemplateSwitch(w http.ResponseWriter, r *http.Request) {
	pageID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		TemplateID string `json:"templateId"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	tpl, err := a.catalog.Resolve(req.TemplateID)
	if err != nil {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}

	coll, contribution, ok := a.collectionForPage(w, pageID)
	if !ok {
		return
	}

	report, err := coll.SwitchTemplate(pageID, tpl)
	if err != nil {
		writeOpError(w, err)
		return
	}
	if !a.save(w, r, coll, contribution) {
		return
	}

	page, _ := coll.Page(pageID)
	resp := map[string]any{"page": page}
	if !report.Lossless() {
		resp["contentLoss"] = map[string]any{
			"droppedPhotos": report.DroppedPhotos,
			"droppedText":   report.DroppedText,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// ComponentEdit updates one slot of a page: a text value for textual
// slots, or an image key (with optional crop) for photo slots. Binding
// an upload to a page or slot that has since vanished returns 404 and
// the uploaded key is simply never referenced.
func (a *API) ComponentEdit(w http.ResponseWriter, r *http.Request) {
	pageID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	slot, err := urlInt(r, "index")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid slot index")
		return
	}

	var req struct {
		Value    *string      `json:"value"`
		ImageKey *string      `json:"imageKey"`
		Crop     *models.Crop `json:"crop"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Value == nil && req.ImageKey == nil {
		writeError(w, http.StatusBadRequest, "value or imageKey is required")
		return
	}

	coll, contribution, ok := a.collectionForPage(w, pageID)
	if !ok {
		return
	}

	// A template switch since the upload was issued may have removed
	// the slot; the queued content is discarded, never mis-bound.
	page, found := coll.Page(pageID)
	if !found {
		writeError(w, http.StatusNotFound, "page not found")
		return
	}
	if slot < 0 || slot >= len(page.Components) {
		writeError(w, http.StatusGone, "slot no longer exists")
		return
	}

	// Rebinding a photo slot orphans the previous object; remember
	// its key so it can be removed from storage after the save.
	var replacedKey string
	if req.ImageKey != nil {
		if old := page.Components[slot].ImageKey; old != "" && old != *req.ImageKey {
			replacedKey = old
		}
	}

	if req.Value != nil {
		err = coll.SetText(pageID, slot, *req.Value)
	} else {
		err = coll.BindPhoto(pageID, slot, *req.ImageKey, req.Crop)
	}
	if err != nil {
		writeOpError(w, err)
		return
	}
	if !a.save(w, r, coll, contribution) {
		return
	}

	// Best effort: a leaked object costs storage, not correctness.
	if replacedKey != "" && a.storageClient != nil {
		if err := a.storageClient.Delete(r.Context(), replacedKey); err != nil {
			slog.Warn("replaced photo cleanup failed", "error", err, "key", replacedKey)
		}
	}

	page, _ = coll.Page(pageID)
	writeJSON(w, http.StatusOK, map[string]any{"page": page})
}
