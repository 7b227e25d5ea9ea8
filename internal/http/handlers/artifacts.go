package handlers

import (
	"errors"
	"net/http"
	"os"
	"path"

	"github.com/go-chi/chi/v5"
)

// ArtifactDownload streams a stored artifact. Keys are hierarchical, so the
// route uses a wildcard rather than a single segment parameter.
func (a *App) ArtifactDownload(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "artifact key required")
		return
	}

	data, err := a.Blobs.Read(r.Context(), key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			a.error(w, http.StatusNotFound, "not_found", "artifact not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to read artifact")
		return
	}

	w.Header().Set("Content-Type", contentTypeForKey(key, data))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func contentTypeForKey(key string, data []byte) string {
	switch path.Ext(key) {
	case ".mp4":
		return "video/mp4"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	}
	return http.DetectContentType(data)
}
