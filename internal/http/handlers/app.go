package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"logomotion/internal/domain"
)

// Orchestrator is the session lifecycle surface the handlers drive.
type Orchestrator interface {
	GenerateLogo(ctx context.Context, prompt, aspectRatio string) (*domain.Artifact, error)
	SetSeed(mime string, data []byte) error
	StartAnimation(ctx context.Context, prompt, aspectRatio string) (string, error)
	Job(id string) (domain.VideoJob, error)
	Artifact() *domain.Artifact
	HasSeed() bool
}

// CredentialSelector covers credential inspection and selection.
type CredentialSelector interface {
	Selected(ctx context.Context) bool
	Select(key string) error
}

// ArtifactReader reads stored artifact bytes by key.
type ArtifactReader interface {
	Read(ctx context.Context, key string) ([]byte, error)
}

type App struct {
	Orch   Orchestrator
	Creds  CredentialSelector
	Blobs  ArtifactReader
	Logger zerolog.Logger
}

func NewApp(orch Orchestrator, creds CredentialSelector, blobs ArtifactReader, logger zerolog.Logger) *App {
	return &App{Orch: orch, Creds: creds, Blobs: blobs, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]any{"error": map[string]string{"code": errCode, "message": message}})
}

// domainError maps lifecycle errors onto the wire. The wrapped text is kept
// as the message because the lifecycle already phrases it for display.
func (a *App) domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrBusy):
		a.error(w, http.StatusConflict, "busy", "another generation is already running")
	case errors.Is(err, domain.ErrCredentialMissing), errors.Is(err, domain.ErrCredentialRequired):
		a.error(w, http.StatusUnauthorized, "credential_required", err.Error())
	case errors.Is(err, domain.ErrCredentialInvalid):
		a.error(w, http.StatusUnauthorized, "credential_invalid", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "job not found")
	case errors.Is(err, domain.ErrGenerationFailed):
		a.error(w, http.StatusBadGateway, "generation_failed", err.Error())
	case errors.Is(err, domain.ErrArtifactFetch):
		a.error(w, http.StatusBadGateway, "artifact_fetch", err.Error())
	default:
		a.error(w, http.StatusInternalServerError, "internal", "unexpected error")
	}
}

func artifactPayload(artifact *domain.Artifact) map[string]any {
	if artifact == nil {
		return nil
	}
	return map[string]any{
		"kind":        string(artifact.Kind),
		"mime":        artifact.MIME,
		"storage_key": artifact.StorageKey,
		"bytes":       artifact.Bytes,
		"url":         "/v1/artifacts/" + artifact.StorageKey,
		"created_at":  artifact.CreatedAt,
	}
}
