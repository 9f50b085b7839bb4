package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"salescope/internal/batch"
	"salescope/internal/config"
	"salescope/internal/models"

	"github.com/labstack/echo/v4"
)

// BatchHandler analyzes up to ten transcripts sequentially, persisting each
// success before moving to the next
func BatchHandler(cfg *config.Config, runner *batch.Runner) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.BatchRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.BatchResponse{
				Error: fmt.Sprintf("Invalid request body: %v", err),
			})
		}

		if len(req.Items) == 0 {
			return c.JSON(http.StatusBadRequest, models.BatchResponse{
				Error: "At least one item is required",
			})
		}

		if cfg.OpenAIKey == "" {
			return c.JSON(http.StatusInternalServerError, models.BatchResponse{
				Error: "OpenAI API key not configured",
			})
		}

		items, err := runner.Run(c.Request().Context(), req.Items)
		if err != nil {
			if errors.Is(err, batch.ErrTooManyItems) {
				return c.JSON(http.StatusBadRequest, models.BatchResponse{
					Error: err.Error(),
				})
			}
			return c.JSON(http.StatusInternalServerError, models.BatchResponse{
				Error: "Batch processing failed",
			})
		}

		return c.JSON(http.StatusOK, models.BatchResponse{Items: items})
	}
}
