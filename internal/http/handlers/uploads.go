package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"logomotion/pkg/dataurl"
)

type uploadRequest struct {
	Image string `json:"image"`
}

// UploadsCreate accepts a user-provided source image as a data URL and makes
// it the seed for the next animation.
func (a *App) UploadsCreate(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	mime, data, err := dataurl.Parse(req.Image)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "image must be a base64 data URL")
		return
	}
	if !strings.HasPrefix(mime, "image/") {
		a.error(w, http.StatusBadRequest, "bad_request", "only image uploads are accepted")
		return
	}
	if err := a.Orch.SetSeed(mime, data); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"mime": mime, "bytes": len(data)})
}
