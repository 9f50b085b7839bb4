package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"salescope/internal/analysis"
	"salescope/internal/config"
	"salescope/internal/models"

	"github.com/labstack/echo/v4"
)

// ScriptGenerator produces a spoken coaching debrief. Satisfied by
// *analysis.Client.
type ScriptGenerator interface {
	CoachingScript(ctx context.Context, req models.CoachingScriptRequest) (*models.CoachingScript, error)
}

// CoachingScriptHandler generates a coaching debrief for one conversation
func CoachingScriptHandler(cfg *config.Config, generator ScriptGenerator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.CoachingScriptRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: fmt.Sprintf("Invalid request body: %v", err),
			})
		}

		if strings.TrimSpace(req.Transcript) == "" {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Transcript is required",
			})
		}
		if strings.TrimSpace(req.CompanyName) == "" {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Company name is required",
			})
		}
		if len(req.CompanyName) > MaxCompanyNameLength {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: fmt.Sprintf("Company name exceeds %d characters", MaxCompanyNameLength),
			})
		}
		if len(req.Transcript) > MaxTranscriptLength {
			return c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
				Error: fmt.Sprintf("Transcript exceeds %d characters", MaxTranscriptLength),
			})
		}

		if cfg.OpenAIKey == "" {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: "OpenAI API key not configured",
			})
		}

		script, err := generator.CoachingScript(c.Request().Context(), req)
		if err != nil {
			var shapeErr *analysis.ShapeError
			if errors.As(err, &shapeErr) {
				return c.JSON(http.StatusBadGateway, models.ErrorResponse{
					Error: fmt.Sprintf("Coaching script was malformed (%s). Please try again.",
						strings.Join(shapeErr.Fields, ", ")),
				})
			}
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: "Coaching script generation failed. Please try again.",
			})
		}

		return c.JSON(http.StatusOK, script)
	}
}
