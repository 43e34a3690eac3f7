package service

import (
	"context"
	"errors"
	"strings"

	"pyrolysis_sim/internal/genai"
)

// ErrMediaUnavailable is returned when no API key is configured.
var ErrMediaUnavailable = errors.New("media generation is not configured")

const defaultAspectRatio = "16:9"

// MediaClient is the generative content API used by MediaService.
type MediaClient interface {
	Available() bool
	GenerateImage(ctx context.Context, prompt, aspectRatio string) (*genai.Image, error)
	GenerateVideo(ctx context.Context, prompt string) (*genai.Video, error)
}

type MediaService struct {
	client MediaClient
}

func NewMediaService(client MediaClient) *MediaService {
	return &MediaService{client: client}
}

func (s *MediaService) MediaAvailable() bool {
	return s.client != nil && s.client.Available()
}

func (s *MediaService) GenerateImage(ctx context.Context, prompt, aspectRatio string) (*genai.Image, error) {
	if !s.MediaAvailable() {
		return nil, ErrMediaUnavailable
	}
	aspectRatio = strings.TrimSpace(aspectRatio)
	if aspectRatio == "" {
		aspectRatio = defaultAspectRatio
	}
	return s.client.GenerateImage(ctx, strings.TrimSpace(prompt), aspectRatio)
}

func (s *MediaService) GenerateVideo(ctx context.Context, prompt string) (*genai.Video, error) {
	if !s.MediaAvailable() {
		return nil, ErrMediaUnavailable
	}
	return s.client.GenerateVideo(ctx, strings.TrimSpace(prompt))
}
