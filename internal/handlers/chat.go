package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"salescope/internal/assistant"
	"salescope/internal/config"
	"salescope/internal/models"
	"salescope/internal/relevance"
	"salescope/internal/store"

	"github.com/labstack/echo/v4"
)

// Asker answers one grounded question. Satisfied by *assistant.Client.
type Asker interface {
	Ask(ctx context.Context, question, contextBlock string, history []models.ChatMessage) (string, []models.ExtractedTask, error)
}

// ChatHandler answers free-text questions about the sales history. When the
// request carries no context block, the relevance selector builds one from
// the stored history.
func ChatHandler(cfg *config.Config, asker Asker, st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.ChatRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ChatResponse{
				Error: fmt.Sprintf("Invalid request body: %v", err),
			})
		}

		question := strings.TrimSpace(req.Question)
		if question == "" {
			return c.JSON(http.StatusBadRequest, models.ChatResponse{
				Error: "Question is required",
			})
		}
		if len(question) > assistant.MaxQuestionLength {
			return c.JSON(http.StatusBadRequest, models.ChatResponse{
				Error: fmt.Sprintf("Question exceeds %d characters", assistant.MaxQuestionLength),
			})
		}

		if cfg.OpenAIKey == "" {
			return c.JSON(http.StatusInternalServerError, models.ChatResponse{
				Error: "OpenAI API key not configured",
			})
		}

		contextBlock := req.Context
		if contextBlock == "" {
			history, err := st.ReadHistory()
			if err != nil {
				return c.JSON(http.StatusInternalServerError, models.ChatResponse{
					Error: "Failed to read history",
				})
			}
			contextBlock = relevance.Filter(question, history, time.Now())
		}

		history := assistant.CapHistory(req.ConversationHistory)

		answer, tasks, err := asker.Ask(c.Request().Context(), question, contextBlock, history)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ChatResponse{
				Error: "Chat failed. Please try again.",
			})
		}

		return c.JSON(http.StatusOK, models.ChatResponse{
			Answer: answer,
			Tasks:  tasks,
		})
	}
}
