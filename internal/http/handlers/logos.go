package handlers

import (
	"encoding/json"
	"net/http"
)

type logoGenerateRequest struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspect_ratio"`
}

func (a *App) LogosGenerate(w http.ResponseWriter, r *http.Request) {
	var req logoGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.AspectRatio == "" {
		req.AspectRatio = "1:1"
	}

	artifact, err := a.Orch.GenerateLogo(r.Context(), req.Prompt, req.AspectRatio)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"artifact": artifactPayload(artifact)})
}
