package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"salescope/internal/cache"
	"salescope/internal/config"
	"salescope/internal/models"
	"salescope/internal/speech"

	"github.com/labstack/echo/v4"
)

// Synthesizer converts text to audio. Satisfied by *speech.Client.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// VoiceCoachingHandler synthesizes a coaching summary as MP3 audio. Clips are
// cached by voice and text so replaying does not re-bill the provider.
func VoiceCoachingHandler(cfg *config.Config, synthesizer Synthesizer, audioCache *cache.AudioCache) echo.HandlerFunc {
	voiceID := cfg.ElevenLabsVoiceID
	if voiceID == "" {
		voiceID = speech.DefaultVoiceID
	}

	return func(c echo.Context) error {
		var req models.VoiceCoachingRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: fmt.Sprintf("Invalid request body: %v", err),
			})
		}

		text := strings.TrimSpace(req.CoachingSummary)
		if text == "" {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Coaching summary is required",
			})
		}
		if len(text) > speech.MaxTextLength {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: fmt.Sprintf("Coaching summary exceeds %d characters", speech.MaxTextLength),
			})
		}

		if cfg.ElevenLabsKey == "" {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: "ElevenLabs API key not configured",
			})
		}

		key := cache.Key(voiceID, text)
		if audio, ok := audioCache.Get(key); ok {
			return c.Blob(http.StatusOK, "audio/mpeg", audio)
		}

		audio, err := synthesizer.Synthesize(c.Request().Context(), text)
		if err != nil {
			return c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error: "Speech synthesis failed. Please try again.",
			})
		}
		audioCache.Set(key, audio)

		return c.Blob(http.StatusOK, "audio/mpeg", audio)
	}
}
