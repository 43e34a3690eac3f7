package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultImageModel   = "imagen-3"
	defaultVideoModel   = "veo-2"
	defaultTimeout      = 30 * time.Second
	defaultPollInterval = 10 * time.Second
	defaultMaxPolls     = 30
)

// Aspect ratios accepted by GenerateImage.
var aspectRatios = map[string]bool{"1:1": true, "16:9": true, "9:16": true, "4:3": true, "3:4": true}

// ClientConfig holds configuration for the content service client.
type ClientConfig struct {
	APIKey       string
	BaseURL      string
	ImageModel   string
	VideoModel   string
	Timeout      time.Duration // per HTTP request
	PollInterval time.Duration // between video status checks
	MaxPolls     int
}

type Client struct {
	apiKey       string
	baseURL      string
	imageModel   string
	videoModel   string
	pollInterval time.Duration
	maxPolls     int
	http         *http.Client
}

// Image is inline image data.
type Image struct {
	MIMEType string `json:"mime_type"`
	Data     []byte `json:"data"`
}

// Video is the location of a finished video.
type Video struct {
	URI       string `json:"uri"`
	Operation string `json:"operation"`
	Polls     int    `json:"polls"`
}

func NewClient(cfg ClientConfig) *Client {
	c := &Client{
		apiKey:       cfg.APIKey,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		imageModel:   cfg.ImageModel,
		videoModel:   cfg.VideoModel,
		pollInterval: cfg.PollInterval,
		maxPolls:     cfg.MaxPolls,
	}
	if c.imageModel == "" {
		c.imageModel = defaultImageModel
	}
	if c.videoModel == "" {
		c.videoModel = defaultVideoModel
	}
	if c.pollInterval <= 0 {
		c.pollInterval = defaultPollInterval
	}
	if c.maxPolls <= 0 {
		c.maxPolls = defaultMaxPolls
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c.http = &http.Client{Timeout: timeout}
	return c
}

// Available reports whether an API key is configured.
func (c *Client) Available() bool {
	return c.apiKey != ""
}

type imageRequest struct {
	Model       string `json:"model"`
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
}

type imageResponse struct {
	Images []struct {
		MIMEType string `json:"mime_type"`
		Data     string `json:"data"` // base64
	} `json:"images"`
}

type videoRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type operation struct {
	Name  string `json:"name"`
	Done  bool   `json:"done"`
	URI   string `json:"video_uri"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateImage renders one image for prompt. aspectRatio may be empty.
func (c *Client) GenerateImage(ctx context.Context, prompt, aspectRatio string) (*Image, error) {
	if err := c.validate(prompt); err != nil {
		return nil, err
	}
	if aspectRatio != "" && !aspectRatios[aspectRatio] {
		return nil, &Error{Kind: KindBadRequest, Message: fmt.Sprintf("unsupported aspect ratio %q", aspectRatio)}
	}

	var resp imageResponse
	req := imageRequest{Model: c.imageModel, Prompt: prompt, AspectRatio: aspectRatio}
	if err := c.do(ctx, http.MethodPost, "/v1/images:generate", req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Images) == 0 {
		return nil, &Error{Kind: KindServiceFailure, Message: "no image in response"}
	}
	data, err := base64.StdEncoding.DecodeString(resp.Images[0].Data)
	if err != nil {
		return nil, &Error{Kind: KindServiceFailure, Message: "malformed image data", Err: err}
	}
	return &Image{MIMEType: resp.Images[0].MIMEType, Data: data}, nil
}

// GenerateVideo starts a video operation and polls it until it finishes, the
// poll budget runs out or ctx is done.
func (c *Client) GenerateVideo(ctx context.Context, prompt string) (*Video, error) {
	if err := c.validate(prompt); err != nil {
		return nil, err
	}

	var op operation
	if err := c.do(ctx, http.MethodPost, "/v1/videos:generate", videoRequest{Model: c.videoModel, Prompt: prompt}, &op); err != nil {
		return nil, err
	}
	if op.Name == "" {
		return nil, &Error{Kind: KindServiceFailure, Message: "no operation in response"}
	}

	timer := time.NewTimer(c.pollInterval)
	defer timer.Stop()
	for poll := 1; poll <= c.maxPolls; poll++ {
		if op.Done {
			return finish(op, poll-1)
		}
		select {
		case <-ctx.Done():
			return nil, transportError(ctx, ctx.Err())
		case <-timer.C:
		}
		if err := c.do(ctx, http.MethodGet, "/v1/"+op.Name, nil, &op); err != nil {
			return nil, err
		}
		timer.Reset(c.pollInterval)
	}
	if op.Done {
		return finish(op, c.maxPolls)
	}
	return nil, &Error{Kind: KindTimeout, Message: fmt.Sprintf("video not ready after %d polls", c.maxPolls)}
}

func finish(op operation, polls int) (*Video, error) {
	if op.Error != nil {
		return nil, &Error{Kind: classifyStatus(op.Error.Code), Status: op.Error.Code, Message: op.Error.Message}
	}
	if op.URI == "" {
		return nil, &Error{Kind: KindServiceFailure, Message: "operation finished without a video"}
	}
	return &Video{URI: op.URI, Operation: op.Name, Polls: polls}, nil
}

func (c *Client) validate(prompt string) error {
	if !c.Available() {
		return &Error{Kind: KindInvalidCredentials, Message: "no API key configured"}
	}
	if strings.TrimSpace(prompt) == "" {
		return &Error{Kind: KindBadRequest, Message: "prompt is empty"}
	}
	return nil
}

// do sends one request and decodes a 200 response into out.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return transportError(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(ctx, err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(raw))
		var ae apiError
		if json.Unmarshal(raw, &ae) == nil && ae.Error.Message != "" {
			msg = ae.Error.Message
		}
		return &Error{Kind: classifyStatus(resp.StatusCode), Status: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Kind: KindServiceFailure, Status: resp.StatusCode, Message: "malformed response", Err: err}
	}
	return nil
}
