package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"logomotion/internal/domain"
)

type staticKeys struct {
	key string
}

func (s staticKeys) Key(ctx context.Context) string { return s.key }

type stubClient struct {
	imagesResp *genai.GenerateImagesResponse
	imagesErr  error

	submitOp  *genai.GenerateVideosOperation
	submitErr error
	pollOps   []*genai.GenerateVideosOperation
	pollErr   error
	polls     int

	lastImageReq struct {
		model, prompt string
		cfg           *genai.GenerateImagesConfig
	}
	lastVideoReq struct {
		model, prompt string
		image         *genai.Image
		cfg           *genai.GenerateVideosConfig
	}
}

func (s *stubClient) GenerateImages(ctx context.Context, model, prompt string, cfg *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
	s.lastImageReq.model = model
	s.lastImageReq.prompt = prompt
	s.lastImageReq.cfg = cfg
	return s.imagesResp, s.imagesErr
}

func (s *stubClient) GenerateVideos(ctx context.Context, model, prompt string, image *genai.Image, cfg *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	s.lastVideoReq.model = model
	s.lastVideoReq.prompt = prompt
	s.lastVideoReq.image = image
	s.lastVideoReq.cfg = cfg
	return s.submitOp, s.submitErr
}

func (s *stubClient) GetVideosOperation(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	if s.pollErr != nil {
		return nil, s.pollErr
	}
	if s.polls >= len(s.pollOps) {
		return op, nil
	}
	next := s.pollOps[s.polls]
	s.polls++
	return next, nil
}

func newTestGateway(client *stubClient, key string) (*GenAI, *int) {
	g := NewGenAI(staticKeys{key: key}, "imagen-4.0-generate-001", "veo-3.1-fast-generate-preview", time.Millisecond, zerolog.Nop())
	connects := 0
	g.newClient = func(ctx context.Context, apiKey string) (generativeClient, error) {
		connects++
		return client, nil
	}
	return g, &connects
}

func doneOp(uri string) *genai.GenerateVideosOperation {
	return &genai.GenerateVideosOperation{
		Done: true,
		Response: &genai.GenerateVideosResponse{
			GeneratedVideos: []*genai.GeneratedVideo{
				{Video: &genai.Video{URI: uri}},
			},
		},
	}
}

func TestGenerateImageReturnsFirstImageBytes(t *testing.T) {
	client := &stubClient{
		imagesResp: &genai.GenerateImagesResponse{
			GeneratedImages: []*genai.GeneratedImage{
				{Image: &genai.Image{ImageBytes: []byte("first")}},
				{Image: &genai.Image{ImageBytes: []byte("second")}},
			},
		},
	}
	g, _ := newTestGateway(client, "key")

	data, err := g.GenerateImage(context.Background(), ImageRequest{Prompt: "A red circle", AspectRatio: "1:1"})
	if err != nil {
		t.Fatalf("GenerateImage error: %v", err)
	}
	if string(data) != "first" {
		t.Fatalf("expected first image bytes, got %q", data)
	}
	if client.lastImageReq.cfg.NumberOfImages != 1 {
		t.Fatalf("expected exactly one image requested, got %d", client.lastImageReq.cfg.NumberOfImages)
	}
	if client.lastImageReq.cfg.AspectRatio != "1:1" {
		t.Fatalf("expected aspect 1:1, got %q", client.lastImageReq.cfg.AspectRatio)
	}
}

func TestGenerateImageEmptyResultFails(t *testing.T) {
	client := &stubClient{imagesResp: &genai.GenerateImagesResponse{}}
	g, _ := newTestGateway(client, "key")

	if _, err := g.GenerateImage(context.Background(), ImageRequest{Prompt: "p", AspectRatio: "1:1"}); !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestGenerateImageWithoutCredential(t *testing.T) {
	g, connects := newTestGateway(&stubClient{}, "")

	if _, err := g.GenerateImage(context.Background(), ImageRequest{Prompt: "p", AspectRatio: "1:1"}); !errors.Is(err, domain.ErrCredentialMissing) {
		t.Fatalf("expected ErrCredentialMissing, got %v", err)
	}
	if *connects != 0 {
		t.Fatalf("no client must be constructed without a credential, got %d", *connects)
	}
}

func TestGenerateVideoPollsUntilDone(t *testing.T) {
	pending := &genai.GenerateVideosOperation{Done: false}
	client := &stubClient{
		submitOp: pending,
		pollOps: []*genai.GenerateVideosOperation{
			{Done: false},
			{Done: false},
			{Done: false},
			doneOp("https://video.example/v1?alt=media"),
		},
	}
	g, _ := newTestGateway(client, "key")

	locator, err := g.GenerateVideo(context.Background(), VideoRequest{
		Prompt:      "make it spin",
		ImageBytes:  []byte("png-bytes"),
		MIMEType:    "image/png",
		AspectRatio: "16:9",
	})
	if err != nil {
		t.Fatalf("GenerateVideo error: %v", err)
	}
	if locator != "https://video.example/v1?alt=media" {
		t.Fatalf("unexpected locator %q", locator)
	}
	if client.polls != 4 {
		t.Fatalf("expected 4 polls, got %d", client.polls)
	}
	if client.lastVideoReq.image.MIMEType != "image/png" {
		t.Fatalf("seed mime must pass through, got %q", client.lastVideoReq.image.MIMEType)
	}
	if client.lastVideoReq.cfg.NumberOfVideos != 1 || client.lastVideoReq.cfg.Resolution != "720p" {
		t.Fatalf("unexpected video config %+v", client.lastVideoReq.cfg)
	}
}

func TestGenerateVideoNoLocator(t *testing.T) {
	client := &stubClient{
		submitOp: &genai.GenerateVideosOperation{Done: true, Response: &genai.GenerateVideosResponse{}},
	}
	g, _ := newTestGateway(client, "key")

	if _, err := g.GenerateVideo(context.Background(), VideoRequest{Prompt: "p", ImageBytes: []byte("x"), MIMEType: "image/png", AspectRatio: "16:9"}); !errors.Is(err, domain.ErrNoLocator) {
		t.Fatalf("expected ErrNoLocator, got %v", err)
	}
}

func TestGenerateVideoCancelledDuringPoll(t *testing.T) {
	client := &stubClient{submitOp: &genai.GenerateVideosOperation{Done: false}}
	g, _ := newTestGateway(client, "key")
	g.pollInterval = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.GenerateVideo(ctx, VideoRequest{Prompt: "p", ImageBytes: []byte("x"), MIMEType: "image/png", AspectRatio: "16:9"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFreshClientPerCall(t *testing.T) {
	client := &stubClient{
		imagesResp: &genai.GenerateImagesResponse{
			GeneratedImages: []*genai.GeneratedImage{{Image: &genai.Image{ImageBytes: []byte("b")}}},
		},
	}
	g, connects := newTestGateway(client, "key")

	for i := 0; i < 3; i++ {
		if _, err := g.GenerateImage(context.Background(), ImageRequest{Prompt: "p", AspectRatio: "1:1"}); err != nil {
			t.Fatalf("GenerateImage error: %v", err)
		}
	}
	if *connects != 3 {
		t.Fatalf("expected a fresh client per call, got %d connects", *connects)
	}
}
