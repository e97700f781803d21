package tts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/vicevalds/carelink/pkg/errors"
	"github.com/vicevalds/carelink/pkg/logger"
)

func testConfig(endpoint, audioDir string) Config {
	return Config{
		APIKey:   "sk-test",
		Endpoint: endpoint,
		Model:    "tts-1",
		Voice:    "nova",
		Speed:    0.95,
		Timeout:  5 * time.Second,
		AudioDir: audioDir,
		URLBase:  "/uploads/audio",
	}
}

func TestRendererWritesArtifact(t *testing.T) {
	var gotAuth string
	var gotReq speechRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_, _ = w.Write([]byte("mp3 bytes"))
	}))
	defer srv.Close()

	renderer, err := NewOpenAIRenderer(testConfig(srv.URL, t.TempDir()), logger.NewLogger(nil))
	require.NoError(t, err)

	artifact, err := renderer.Render(context.Background(), "Hola Elena, es hora de tu medicamento")
	require.NoError(t, err)

	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "tts-1", gotReq.Model)
	assert.Equal(t, "nova", gotReq.Voice)
	assert.Equal(t, "mp3", gotReq.ResponseFormat)
	assert.InDelta(t, 0.95, gotReq.Speed, 0.001)
	assert.Equal(t, "Hola Elena, es hora de tu medicamento", gotReq.Input)

	data, err := os.ReadFile(artifact.Path)
	require.NoError(t, err)
	assert.Equal(t, "mp3 bytes", string(data))
	assert.Contains(t, artifact.URL, "/uploads/audio/")
	assert.Contains(t, artifact.Filename, ".mp3")
}

func TestRendererUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	renderer, err := NewOpenAIRenderer(testConfig(srv.URL, t.TempDir()), logger.NewLogger(nil))
	require.NoError(t, err)

	_, err = renderer.Render(context.Background(), "texto")
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrExternal, appErr.Code)
}

func TestRendererRequiresAPIKey(t *testing.T) {
	cfg := testConfig("http://localhost", t.TempDir())
	cfg.APIKey = ""
	_, err := NewOpenAIRenderer(cfg, logger.NewLogger(nil))
	require.Error(t, err)
}
