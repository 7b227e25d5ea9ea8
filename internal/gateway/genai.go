package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"logomotion/internal/domain"
)

// generativeClient is the slice of the genai SDK the gateway uses. The
// production implementation wraps *genai.Client; tests substitute a stub.
type generativeClient interface {
	GenerateImages(ctx context.Context, model, prompt string, cfg *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
	GenerateVideos(ctx context.Context, model, prompt string, image *genai.Image, cfg *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error)
	GetVideosOperation(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error)
}

type sdkClient struct {
	client *genai.Client
}

func (s sdkClient) GenerateImages(ctx context.Context, model, prompt string, cfg *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
	return s.client.Models.GenerateImages(ctx, model, prompt, cfg)
}

func (s sdkClient) GenerateVideos(ctx context.Context, model, prompt string, image *genai.Image, cfg *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	return s.client.Models.GenerateVideos(ctx, model, prompt, image, cfg)
}

func (s sdkClient) GetVideosOperation(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	return s.client.Operations.GetVideosOperation(ctx, op, nil)
}

func newSDKClient(ctx context.Context, apiKey string) (generativeClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gateway: create client: %w", err)
	}
	return sdkClient{client: client}, nil
}

// GenAI implements Generator against the Gemini API. A fresh SDK client is
// constructed for every call so a rotated credential is picked up without
// a restart.
type GenAI struct {
	keys         KeyProvider
	imageModel   string
	videoModel   string
	pollInterval time.Duration
	logger       zerolog.Logger
	newClient    func(ctx context.Context, apiKey string) (generativeClient, error)
}

// NewGenAI constructs the Gemini-backed gateway.
func NewGenAI(keys KeyProvider, imageModel, videoModel string, pollInterval time.Duration, logger zerolog.Logger) *GenAI {
	return &GenAI{
		keys:         keys,
		imageModel:   imageModel,
		videoModel:   videoModel,
		pollInterval: pollInterval,
		logger:       logger,
		newClient:    newSDKClient,
	}
}

// GenerateImage requests exactly one image and returns its raw bytes.
func (g *GenAI) GenerateImage(ctx context.Context, req ImageRequest) ([]byte, error) {
	client, err := g.connect(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := client.GenerateImages(ctx, g.imageModel, req.Prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: "image/jpeg",
		AspectRatio:    req.AspectRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("gateway: image generation: %w", err)
	}
	if resp == nil || len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return nil, domain.ErrGenerationFailed
	}

	g.logger.Debug().Str("model", g.imageModel).Str("aspect", req.AspectRatio).Msg("gateway: image generated")
	return resp.GeneratedImages[0].Image.ImageBytes, nil
}

// GenerateVideo submits the job, then re-queries the operation on a fixed
// cadence until the service reports completion. The loop has no iteration
// cap; generation runs for minutes and is bounded only by ctx.
func (g *GenAI) GenerateVideo(ctx context.Context, req VideoRequest) (string, error) {
	client, err := g.connect(ctx)
	if err != nil {
		return "", err
	}

	op, err := client.GenerateVideos(ctx, g.videoModel, req.Prompt, &genai.Image{
		ImageBytes: req.ImageBytes,
		MIMEType:   req.MIMEType,
	}, &genai.GenerateVideosConfig{
		NumberOfVideos: 1,
		Resolution:     "720p",
		AspectRatio:    req.AspectRatio,
	})
	if err != nil {
		return "", fmt.Errorf("gateway: video submission: %w", err)
	}

	for op == nil || !op.Done {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(g.pollInterval):
		}
		op, err = client.GetVideosOperation(ctx, op)
		if err != nil {
			return "", fmt.Errorf("gateway: video poll: %w", err)
		}
		g.logger.Debug().Str("model", g.videoModel).Bool("done", op != nil && op.Done).Msg("gateway: video operation polled")
	}

	if op.Error != nil {
		return "", fmt.Errorf("gateway: video operation failed: %v", op.Error["message"])
	}
	locator := extractLocator(op)
	if locator == "" {
		return "", domain.ErrNoLocator
	}
	return locator, nil
}

// connect acquires the current credential and constructs a one-shot client.
func (g *GenAI) connect(ctx context.Context) (generativeClient, error) {
	key := g.keys.Key(ctx)
	if key == "" {
		return nil, domain.ErrCredentialMissing
	}
	return g.newClient(ctx, key)
}

func extractLocator(op *genai.GenerateVideosOperation) string {
	if op == nil || op.Response == nil {
		return ""
	}
	for _, v := range op.Response.GeneratedVideos {
		if v != nil && v.Video != nil && v.Video.URI != "" {
			return v.Video.URI
		}
	}
	return ""
}
