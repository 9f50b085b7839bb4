package server

import (
	"time"

	"salescope/internal/analysis"
	"salescope/internal/assistant"
	"salescope/internal/batch"
	"salescope/internal/cache"
	"salescope/internal/config"
	"salescope/internal/email"
	"salescope/internal/handlers"
	"salescope/internal/speech"
	"salescope/internal/store"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// Server represents the application server
type Server struct {
	echo      *echo.Echo
	config    *config.Config
	logger    zerolog.Logger
	store     *store.Store
	analyzer  *analysis.Client
	assistant *assistant.Client
	speaker   *speech.Client
	mailer    *email.Service
	runner    *batch.Runner
	audio     *cache.AudioCache
}

// New creates a new server instance
func New(cfg *config.Config, logger zerolog.Logger) *Server {
	st := store.New(cfg.DataDir)
	analyzer := analysis.NewClient(cfg.OpenAIKey, cfg.OpenAIModel, logger)

	return &Server{
		config:    cfg,
		logger:    logger,
		store:     st,
		analyzer:  analyzer,
		assistant: assistant.NewClient(cfg.OpenAIKey, cfg.OpenAIModel, logger),
		speaker:   speech.NewClient(cfg.ElevenLabsKey, cfg.ElevenLabsVoiceID, logger),
		mailer:    email.NewService(cfg.SendGridAPIKey, cfg.SenderEmail),
		runner:    batch.NewRunner(analyzer, st, logger),
		audio:     cache.New(time.Duration(cfg.AudioCacheTTL) * time.Minute),
	}
}

// zerologMiddleware creates a zerolog-based logging middleware for Echo
func (s *Server) zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			res := c.Response()

			s.logger.Info().
				Str("method", req.Method).
				Str("uri", req.RequestURI).
				Str("remote_ip", c.RealIP()).
				Int("status", res.Status).
				Int64("latency_ms", time.Since(start).Milliseconds()).
				Str("user_agent", req.UserAgent()).
				Msg("HTTP request")

			return err
		}
	}
}

// Initialize sets up the Echo framework with middleware and routes
func (s *Server) Initialize() {
	s.echo = echo.New()

	// Middleware
	s.echo.Use(s.zerologMiddleware())
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORS())

	// Hide Echo banner
	s.echo.HideBanner = true

	// Setup routes
	s.setupRoutes()
}

// setupRoutes configures all the application routes
func (s *Server) setupRoutes() {
	newID := uuid.NewString

	// Health endpoint (kept at root level for monitoring)
	s.echo.GET("/healthz", handlers.HealthHandler(s.config.Version))

	api := s.echo.Group("/api")

	// Analysis
	api.POST("/analyze", handlers.AnalyzeHandler(s.config, s.analyzer))
	api.POST("/coaching-script", handlers.CoachingScriptHandler(s.config, s.analyzer))
	api.POST("/voice-coaching", handlers.VoiceCoachingHandler(s.config, s.speaker, s.audio))
	api.POST("/batch", handlers.BatchHandler(s.config, s.runner))

	// Assistant
	api.POST("/chat", handlers.ChatHandler(s.config, s.assistant, s.store))

	// History
	api.GET("/history", handlers.ListHistoryHandler(s.store))
	api.POST("/history", handlers.AddHistoryHandler(s.store), middleware.BodyLimit("200K"))
	api.DELETE("/history", handlers.DeleteHistoryHandler(s.store))

	// Deal rooms
	api.GET("/workspaces/:slug", handlers.GetWorkspaceHandler(s.store))
	api.POST("/workspaces/:slug", handlers.CreateWorkspaceHandler(s.store, newID))
	api.POST("/workspaces/:slug/tasks", handlers.AddTaskHandler(s.store, newID))
	api.PUT("/workspaces/:slug/tasks", handlers.UpdateTaskHandler(s.store))
	api.DELETE("/workspaces/:slug/tasks", handlers.DeleteTaskHandler(s.store))
	api.POST("/workspaces/:slug/notes", handlers.AddNoteHandler(s.store, newID))
	api.PUT("/workspaces/:slug/notes", handlers.UpdateNoteHandler(s.store))
	api.DELETE("/workspaces/:slug/notes", handlers.DeleteNoteHandler(s.store))
	api.POST("/workspaces/:slug/documents", handlers.UploadDocumentHandler(s.store, newID), middleware.BodyLimit("11M"))
	api.GET("/workspaces/:slug/documents/:docId", handlers.DownloadDocumentHandler(s.store))
	api.DELETE("/workspaces/:slug/documents", handlers.DeleteDocumentHandler(s.store))

	// Follow-up email
	api.POST("/send-followup", handlers.SendFollowUpHandler(s.mailer))
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info().Str("port", s.config.Port).Msg("Server starting")
	return s.echo.Start(":" + s.config.Port)
}
