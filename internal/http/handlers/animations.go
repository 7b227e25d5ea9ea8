package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type animationStartRequest struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspect_ratio"`
}

func (a *App) AnimationsStart(w http.ResponseWriter, r *http.Request) {
	var req animationStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.AspectRatio == "" {
		req.AspectRatio = "16:9"
	}

	jobID, err := a.Orch.StartAnimation(r.Context(), req.Prompt, req.AspectRatio)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusAccepted, map[string]any{"job_id": jobID, "state": "polling"})
}

func (a *App) AnimationStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "job_id")
	if jobID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "job_id required")
		return
	}
	job, err := a.Orch.Job(jobID)
	if err != nil {
		a.domainError(w, err)
		return
	}

	payload := map[string]any{
		"job_id":     job.ID,
		"state":      string(job.State),
		"prompt":     job.Prompt,
		"aspect":     job.Aspect,
		"message":    job.Message,
		"started_at": job.StartedAt,
		"updated_at": job.UpdatedAt,
	}
	if job.Error != "" {
		payload["error"] = job.Error
	}
	if job.Artifact != nil {
		payload["artifact"] = artifactPayload(job.Artifact)
	}
	a.json(w, http.StatusOK, payload)
}
