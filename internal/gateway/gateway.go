// Package gateway is the facade over the two remote generative services.
// It owns credential acquisition per call and the video job's
// submit-then-poll protocol; callers see one blocking operation per
// generation.
package gateway

import "context"

// ImageRequest describes a single still-image generation.
type ImageRequest struct {
	Prompt      string
	AspectRatio string
}

// VideoRequest describes a video generation seeded by an image. MIMEType
// must reflect the actual encoding of ImageBytes.
type VideoRequest struct {
	Prompt      string
	ImageBytes  []byte
	MIMEType    string
	AspectRatio string
}

// Generator is implemented by the remote-service facade.
type Generator interface {
	// GenerateImage returns the raw encoded bytes of exactly one image.
	GenerateImage(ctx context.Context, req ImageRequest) ([]byte, error)
	// GenerateVideo submits a video job, polls the remote operation until
	// completion and returns a locator for the finished video. It blocks
	// for the duration of generation, which spans minutes.
	GenerateVideo(ctx context.Context, req VideoRequest) (string, error)
}

// KeyProvider yields the active credential at call time. Implementations
// must re-derive the key per call so rotation takes effect immediately.
type KeyProvider interface {
	Key(ctx context.Context) string
}
