package handlers

import (
	"log/slog"
	"net/http"

	"memorybook/internal/storage"
)

// UploadPresign issues a presigned PUT URL for a photo upload. The
// client uploads directly to object storage, then binds the returned
// key to a photo slot via the component edit endpoint.
func (a *API) UploadPresign(w http.ResponseWriter, r *http.Request) {
	if a.storageClient == nil {
		writeError(w, http.StatusServiceUnavailable, "uploads are not configured")
		return
	}

	var req struct {
		ContentType string `json:"contentType"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if !storage.AllowedType(req.ContentType) {
		writeError(w, http.StatusUnprocessableEntity, "unsupported content type")
		return
	}

	target, err := a.storageClient.PresignUpload(r.Context(), req.ContentType)
	if err != nil {
		slog.Error("presign failed", "error", err, "contentType", req.ContentType)
		writeError(w, http.StatusBadGateway, "failed to issue upload URL")
		return
	}

	writeJSON(w, http.StatusCreated, target)
}
