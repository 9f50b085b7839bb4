package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	c := NewClient("test-key", "", zerolog.Nop())
	c.baseURL = serverURL
	return c
}

func TestSynthesize(t *testing.T) {
	var captured synthesizeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/text-to-speech/"+DefaultVoiceID, r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("xi-api-key"))
		assert.Equal(t, "audio/mpeg", r.Header.Get("Accept"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	audio, err := newTestClient(server.URL).Synthesize(context.Background(), "Welcome back. Strong call overall.")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), audio)

	assert.Equal(t, "Welcome back. Strong call overall.", captured.Text)
	assert.Equal(t, modelID, captured.ModelID)
	assert.Equal(t, 0.5, captured.VoiceSettings.Stability)
	assert.Equal(t, 0.75, captured.VoiceSettings.SimilarityBoost)
}

func TestSynthesize_CustomVoice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text-to-speech/custom-voice", r.URL.Path)
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	c := NewClient("test-key", "custom-voice", zerolog.Nop())
	c.baseURL = server.URL

	_, err := c.Synthesize(context.Background(), "hello")
	require.NoError(t, err)
}

func TestSynthesize_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":{"status":"invalid_api_key","message":"Invalid API key"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Synthesize(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api error 401")
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestSynthesize_TextTooLong(t *testing.T) {
	_, err := newTestClient("http://unused").Synthesize(context.Background(), strings.Repeat("a", MaxTextLength+1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestSynthesize_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(server.URL).Synthesize(ctx, "hello")
	require.Error(t, err)
}
