package service

import (
	"context"
	"errors"
	"testing"

	"pyrolysis_sim/internal/genai"
)

type stubMediaClient struct {
	available bool
	aspect    string
	prompt    string
	err       error
}

func (s *stubMediaClient) Available() bool { return s.available }

func (s *stubMediaClient) GenerateImage(_ context.Context, prompt, aspect string) (*genai.Image, error) {
	s.prompt, s.aspect = prompt, aspect
	if s.err != nil {
		return nil, s.err
	}
	return &genai.Image{MIMEType: "image/png", Data: []byte{1}}, nil
}

func (s *stubMediaClient) GenerateVideo(_ context.Context, prompt string) (*genai.Video, error) {
	s.prompt = prompt
	if s.err != nil {
		return nil, s.err
	}
	return &genai.Video{URI: "https://cdn/v.mp4"}, nil
}

func TestMediaService_Unavailable(t *testing.T) {
	for _, svc := range []*MediaService{NewMediaService(nil), NewMediaService(&stubMediaClient{})} {
		if svc.MediaAvailable() {
			t.Fatal("expected unavailable")
		}
		if _, err := svc.GenerateImage(context.Background(), "reactor", ""); !errors.Is(err, ErrMediaUnavailable) {
			t.Fatalf("expected ErrMediaUnavailable, got %v", err)
		}
		if _, err := svc.GenerateVideo(context.Background(), "reactor"); !errors.Is(err, ErrMediaUnavailable) {
			t.Fatalf("expected ErrMediaUnavailable, got %v", err)
		}
	}
}

func TestMediaService_DefaultsAspectAndTrimsPrompt(t *testing.T) {
	client := &stubMediaClient{available: true}
	svc := NewMediaService(client)

	img, err := svc.GenerateImage(context.Background(), "  pyrolysis plant at dusk ", "")
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if img.MIMEType != "image/png" {
		t.Fatalf("mime = %q", img.MIMEType)
	}
	if client.aspect != defaultAspectRatio || client.prompt != "pyrolysis plant at dusk" {
		t.Fatalf("aspect=%q prompt=%q", client.aspect, client.prompt)
	}
}

func TestMediaService_PassesClassifiedErrors(t *testing.T) {
	client := &stubMediaClient{available: true, err: &genai.Error{Kind: genai.KindRateLimited, Status: 429}}
	_, err := NewMediaService(client).GenerateVideo(context.Background(), "x")
	if genai.KindOf(err) != genai.KindRateLimited {
		t.Fatalf("kind = %v", genai.KindOf(err))
	}
}
