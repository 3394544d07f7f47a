// internal/services/ai_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/artstylelab/backend/internal/config"
)

// GeneratedImage is one image returned by the generation backend, hosted at
// a remote URL until it is saved into the gallery.
type GeneratedImage struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// GenerateOptions tune a single generation call. Zero values fall back to
// the configured defaults.
type GenerateOptions struct {
	Size  string
	Count int
}

// AIService talks to the Ark images API. When no API key is configured the
// service reports itself disabled and generation returns an error.
type AIService struct {
	config *config.Config
	client *http.Client
}

func NewAIService(cfg *config.Config) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
		},
	}
}

func (s *AIService) Enabled() bool {
	return s.config.AI.APIKey != ""
}

type arkImageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	Size           string `json:"size,omitempty"`
	N              int    `json:"n,omitempty"`
	ResponseFormat string `json:"response_format"`
	Watermark      bool   `json:"watermark"`
}

type arkImageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateImages asks the backend for images matching the prompt.
func (s *AIService) GenerateImages(ctx context.Context, prompt string, opts GenerateOptions) ([]GeneratedImage, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("AI service not configured")
	}

	size := opts.Size
	if size == "" {
		size = s.config.AI.DefaultSize
	}
	count := opts.Count
	if count <= 0 {
		count = 1
	}

	payload, err := json.Marshal(arkImageRequest{
		Model:          s.config.AI.Model,
		Prompt:         prompt,
		Size:           size,
		N:              count,
		ResponseFormat: "url",
		Watermark:      false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := s.config.AI.BaseURL + "/images/generations"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.AI.APIKey)

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var parsed arkImageResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || parsed.Error != nil {
		msg := string(body)
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return nil, fmt.Errorf("generation backend returned %d: %s", resp.StatusCode, msg)
	}

	images := make([]GeneratedImage, 0, len(parsed.Data))
	for i, item := range parsed.Data {
		images = append(images, GeneratedImage{
			ID:  fmt.Sprintf("gen_%d_%d", time.Now().UnixMilli(), i),
			URL: item.URL,
		})
	}

	logrus.WithFields(logrus.Fields{
		"count":    len(images),
		"duration": time.Since(start).String(),
	}).Info("Generated images")

	return images, nil
}

// DownloadImage fetches a generated image so it can be stored locally.
// Generation URLs expire, so saving must happen soon after generation.
func (s *AIService) DownloadImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
