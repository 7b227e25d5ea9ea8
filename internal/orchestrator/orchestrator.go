// Package orchestrator drives the generation lifecycles end to end: the
// synchronous logo flow and the multi-minute video flow with its progress
// ticker, artifact fetch and failure reconciliation.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"logomotion/internal/domain"
	"logomotion/internal/gateway"
	"logomotion/internal/storage"
)

// credentialRejection is how the remote service words a rejected API key.
// There is no structured code on the poll surface, so classification falls
// back to text matching; keep it confined to isCredentialRejection.
const credentialRejection = "Requested entity was not found"

const (
	msgVideoFailed     = "Failed to generate video. Please try again."
	msgImageFailed     = "Failed to generate logo. Please try again."
	msgKeyInvalid      = "Your API key is invalid. Please select a valid key and try again."
	msgKeyRequired     = "API key is required for video generation. Please select one."
	msgArtifactMissing = "Failed to fetch the generated video."
)

// CredentialGate is the slice of the credential store the orchestrator
// consumes: re-derivable selection state plus failure feedback.
type CredentialGate interface {
	Selected(ctx context.Context) bool
	Key(ctx context.Context) string
	Downgrade()
}

// Orchestrator owns the session's generation state: the current seed
// image, the single displayable artifact and at most one video job.
// Single-flight is enforced at this surface; the gateway assumes it.
type Orchestrator struct {
	gen            gateway.Generator
	creds          CredentialGate
	store          *storage.FileStore
	fetch          *http.Client
	logger         zerolog.Logger
	statusInterval time.Duration

	mu        sync.Mutex
	token     uint64
	job       *domain.VideoJob
	imageBusy bool
	artifact  *domain.Artifact
	seed      *domain.Seed
}

// New constructs the orchestrator. statusInterval is the cadence of the
// cosmetic progress ticker; fetch is used for the authenticated artifact
// download and may be nil for a default client.
func New(gen gateway.Generator, creds CredentialGate, store *storage.FileStore, statusInterval time.Duration, fetch *http.Client, logger zerolog.Logger) *Orchestrator {
	if fetch == nil {
		fetch = &http.Client{Timeout: 2 * time.Minute}
	}
	return &Orchestrator{
		gen:            gen,
		creds:          creds,
		store:          store,
		fetch:          fetch,
		logger:         logger,
		statusInterval: statusInterval,
	}
}

// GenerateLogo runs the single request/response image flow. Starting it
// clears the current displayable artifact, video included, before any
// remote call is made.
func (o *Orchestrator) GenerateLogo(ctx context.Context, prompt, aspectRatio string) (*domain.Artifact, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" || !domain.IsImageAspect(aspectRatio) {
		return nil, domain.ErrValidation
	}

	o.mu.Lock()
	if o.imageBusy || o.videoInFlightLocked() {
		o.mu.Unlock()
		return nil, domain.ErrBusy
	}
	o.imageBusy = true
	prev := o.artifact
	o.artifact = nil
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.imageBusy = false
		o.mu.Unlock()
	}()

	o.release(ctx, prev)

	data, err := o.gen.GenerateImage(ctx, gateway.ImageRequest{Prompt: prompt, AspectRatio: aspectRatio})
	if err != nil {
		o.logger.Error().Err(err).Msg("orchestrator: logo generation failed")
		if errors.Is(err, domain.ErrCredentialMissing) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrGenerationFailed, msgImageFailed)
	}

	key, err := o.store.Write(ctx, fmt.Sprintf("session/images/logo-%s.jpg", uuid.NewString()), data)
	if err != nil {
		return nil, fmt.Errorf("publish logo: %w", err)
	}

	artifact := &domain.Artifact{
		Kind:       domain.ArtifactKindImage,
		MIME:       "image/jpeg",
		StorageKey: key,
		Bytes:      int64(len(data)),
		CreatedAt:  time.Now(),
	}

	o.mu.Lock()
	o.artifact = artifact
	o.seed = &domain.Seed{Data: data, MIME: "image/jpeg"}
	o.mu.Unlock()

	o.logger.Info().Str("storage_key", key).Int("bytes", len(data)).Msg("orchestrator: logo ready")
	return artifact, nil
}

// SetSeed records an uploaded source image for animation. The declared
// media type must begin with the image prefix.
func (o *Orchestrator) SetSeed(mime string, data []byte) error {
	if !strings.HasPrefix(mime, "image/") || len(data) == 0 {
		return domain.ErrValidation
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seed = &domain.Seed{Data: data, MIME: mime}
	return nil
}

// StartAnimation validates preconditions, re-checks credential selection
// and launches the video job. It returns the job id immediately; progress
// is observed through Job.
func (o *Orchestrator) StartAnimation(ctx context.Context, prompt, aspectRatio string) (string, error) {
	prompt = strings.TrimSpace(prompt)

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.videoInFlightLocked() || o.imageBusy {
		return "", domain.ErrBusy
	}
	if prompt == "" || !domain.IsVideoAspect(aspectRatio) || o.seed == nil {
		return "", domain.ErrValidation
	}

	// Re-derived synchronously, never from a cached flag: selection may
	// have been revoked since the last check.
	if !o.creds.Selected(ctx) {
		return "", fmt.Errorf("%w: %s", domain.ErrCredentialRequired, msgKeyRequired)
	}

	o.token++
	tok := o.token
	seed := *o.seed
	job := &domain.VideoJob{
		ID:        uuid.NewString(),
		State:     domain.JobStatePolling,
		Prompt:    prompt,
		Aspect:    aspectRatio,
		Message:   MessageAt(0),
		StartedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	o.job = job

	o.logger.Info().Str("job_id", job.ID).Str("aspect", aspectRatio).Msg("orchestrator: animation submitted")
	go o.run(tok, job.ID, prompt, aspectRatio, seed)
	return job.ID, nil
}

// Job returns a snapshot of the job with the given id.
func (o *Orchestrator) Job(id string) (domain.VideoJob, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.job == nil || o.job.ID != id {
		return domain.VideoJob{}, domain.ErrNotFound
	}
	return *o.job, nil
}

// Artifact returns the current displayable artifact, or nil.
func (o *Orchestrator) Artifact() *domain.Artifact {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.artifact == nil {
		return nil
	}
	a := *o.artifact
	return &a
}

// HasSeed reports whether a source image is available for animation.
func (o *Orchestrator) HasSeed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.seed != nil
}

// run executes one video job to its terminal state. The token invalidates
// every write from a superseded job, ticker included, so a stale loop can
// never overwrite a fresh job's state.
func (o *Orchestrator) run(tok uint64, jobID, prompt, aspectRatio string, seed domain.Seed) {
	ctx := context.Background()

	tickerDone := make(chan struct{})
	defer close(tickerDone)
	go o.tick(tok, tickerDone)

	locator, err := o.gen.GenerateVideo(ctx, gateway.VideoRequest{
		Prompt:      prompt,
		ImageBytes:  seed.Data,
		MIMEType:    seed.MIME,
		AspectRatio: aspectRatio,
	})
	if err != nil {
		o.fail(tok, jobID, err)
		return
	}

	if !o.transition(tok, domain.JobStateFetching) {
		return
	}

	data, err := o.fetchArtifact(ctx, locator)
	if err != nil {
		o.fail(tok, jobID, err)
		return
	}

	key, err := o.store.Write(ctx, fmt.Sprintf("session/videos/animation-%s.mp4", jobID), data)
	if err != nil {
		o.fail(tok, jobID, err)
		return
	}

	artifact := &domain.Artifact{
		Kind:       domain.ArtifactKindVideo,
		MIME:       "video/mp4",
		StorageKey: key,
		Bytes:      int64(len(data)),
		CreatedAt:  time.Now(),
	}
	o.complete(tok, jobID, artifact)
}

// tick advances the cosmetic progress message on a fixed cadence,
// independent of actual remote progress. Tick zero is written on job
// creation; this loop continues from entry one.
func (o *Orchestrator) tick(tok uint64, done <-chan struct{}) {
	ticker := time.NewTicker(o.statusInterval)
	defer ticker.Stop()

	for index := 1; ; index++ {
		select {
		case <-done:
			return
		case <-ticker.C:
		}
		o.mu.Lock()
		if o.token != tok || o.job == nil || o.job.State != domain.JobStatePolling {
			o.mu.Unlock()
			return
		}
		o.job.Message = MessageAt(index)
		o.job.UpdatedAt = time.Now()
		o.mu.Unlock()
	}
}

// fetchArtifact downloads the finished video from its signed locator with
// the active credential appended as a query parameter.
func (o *Orchestrator) fetchArtifact(ctx context.Context, locator string) ([]byte, error) {
	sep := "?"
	if strings.Contains(locator, "?") {
		sep = "&"
	}
	url := locator + sep + "key=" + o.creds.Key(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrArtifactFetch, err)
	}
	resp, err := o.fetch.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrArtifactFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: status %d", domain.ErrArtifactFetch, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrArtifactFetch, err)
	}
	return data, nil
}

// transition moves the current job to the given non-terminal state. The
// progress text is cleared the moment the lifecycle leaves the polling
// state, on every exit path.
func (o *Orchestrator) transition(tok uint64, state domain.JobState) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.token != tok || o.job == nil {
		return false
	}
	o.job.State = state
	o.job.Message = ""
	o.job.UpdatedAt = time.Now()
	return true
}

// complete publishes the fetched video as the displayable artifact,
// superseding and releasing the prior one.
func (o *Orchestrator) complete(tok uint64, jobID string, artifact *domain.Artifact) {
	o.mu.Lock()
	if o.token != tok || o.job == nil {
		o.mu.Unlock()
		return
	}
	prev := o.artifact
	o.artifact = artifact
	o.job.State = domain.JobStateReady
	o.job.Artifact = artifact
	o.job.Message = ""
	o.job.UpdatedAt = time.Now()
	o.mu.Unlock()

	o.release(context.Background(), prev)
	o.logger.Info().Str("job_id", jobID).Str("storage_key", artifact.StorageKey).Msg("orchestrator: animation ready")
}

// fail reconciles every failure path into the single user-facing error
// slot. A credential rejection additionally downgrades the credential
// state so the next attempt re-prompts for selection.
func (o *Orchestrator) fail(tok uint64, jobID string, cause error) {
	message := msgVideoFailed
	if isCredentialRejection(cause) {
		message = msgKeyInvalid
		o.creds.Downgrade()
	} else if errors.Is(cause, domain.ErrArtifactFetch) {
		message = msgArtifactMissing
	}

	o.mu.Lock()
	if o.token != tok || o.job == nil {
		o.mu.Unlock()
		return
	}
	o.job.State = domain.JobStateFailed
	o.job.Error = message
	o.job.Message = ""
	o.job.UpdatedAt = time.Now()
	o.mu.Unlock()

	o.logger.Error().Err(cause).Str("job_id", jobID).Msg("orchestrator: animation failed")
}

func (o *Orchestrator) videoInFlightLocked() bool {
	return o.job != nil && !o.job.State.Terminal()
}

// release reclaims a superseded artifact's storage.
func (o *Orchestrator) release(ctx context.Context, artifact *domain.Artifact) {
	if artifact == nil {
		return
	}
	if err := o.store.Remove(ctx, artifact.StorageKey); err != nil {
		o.logger.Warn().Err(err).Str("storage_key", artifact.StorageKey).Msg("orchestrator: release artifact failed")
	}
}

func isCredentialRejection(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, domain.ErrCredentialInvalid) {
		return true
	}
	return strings.Contains(err.Error(), credentialRejection)
}
