package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/vicevalds/carelink/pkg/errors"
	"github.com/vicevalds/carelink/pkg/logger"
)

// Artifact is a rendered speech file on local disk plus the URL it is
// served under.
type Artifact struct {
	Path     string
	Filename string
	URL      string
}

// Renderer converts reminder text into a speech audio artifact.
type Renderer interface {
	Render(ctx context.Context, text string) (*Artifact, error)
}

type Config struct {
	APIKey   string
	Endpoint string
	Model    string
	Voice    string
	Speed    float64
	Timeout  time.Duration
	AudioDir string
	URLBase  string
}

// OpenAIRenderer calls the speech-synthesis HTTP endpoint and writes the
// mp3 under the audio directory. Failures propagate as typed external
// errors so the caller records the attempt as failed.
type OpenAIRenderer struct {
	cfg    Config
	client *http.Client
	logger *logger.Logger
}

func NewOpenAIRenderer(cfg Config, logger *logger.Logger) (*OpenAIRenderer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("speech synthesis API key not configured")
	}
	if err := os.MkdirAll(cfg.AudioDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audio directory: %w", err)
	}
	return &OpenAIRenderer{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}, nil
}

type speechRequest struct {
	Model          string  `json:"model"`
	Voice          string  `json:"voice"`
	Input          string  `json:"input"`
	Speed          float64 `json:"speed,omitempty"`
	ResponseFormat string  `json:"response_format"`
}

func (r *OpenAIRenderer) Render(ctx context.Context, text string) (*Artifact, error) {
	body, err := json.Marshal(speechRequest{
		Model:          r.cfg.Model,
		Voice:          r.cfg.Voice,
		Input:          text,
		Speed:          r.cfg.Speed,
		ResponseFormat: "mp3",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal speech request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build speech request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, apperrors.External("speech synthesis", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, apperrors.External("speech synthesis",
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, detail))
	}

	filename := fmt.Sprintf("reminder-%d.mp3", time.Now().UnixMilli())
	path := filepath.Join(r.cfg.AudioDir, filename)

	out, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write audio file: %w", err)
	}

	r.logger.Debug("audio artifact rendered", "filename", filename)

	return &Artifact{
		Path:     path,
		Filename: filename,
		URL:      r.cfg.URLBase + "/" + filename,
	}, nil
}
