package main

import (
	"salescope/internal/config"
	"salescope/internal/server"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logger
	logger := cfg.SetupLogger()

	if cfg.OpenAIKey == "" {
		logger.Warn().Msg("OPENAI_API_KEY not set, analysis endpoints will fail")
	}
	if cfg.ElevenLabsKey == "" {
		logger.Warn().Msg("ELEVENLABS_API_KEY not set, voice coaching disabled")
	}
	if cfg.SendGridAPIKey == "" {
		logger.Warn().Msg("SENDGRID_API_KEY not set, follow-up email sending disabled")
	}

	// Create and initialize server
	srv := server.New(cfg, logger)
	srv.Initialize()

	// Start server
	if err := srv.Start(); err != nil {
		logger.Fatal().Err(err).Msg("Server failed to start")
	}
}
