package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"salescope/internal/analysis"
	"salescope/internal/config"
	"salescope/internal/models"

	"github.com/labstack/echo/v4"
)

// Input ceilings for analysis requests.
const (
	MaxTranscriptLength  = 50000
	MaxCompanyNameLength = 200
)

// AnalyzeHandler handles conversation analysis requests
func AnalyzeHandler(cfg *config.Config, analyzer analysis.Analyzer) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.AnalyzeRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: fmt.Sprintf("Invalid request body: %v", err),
			})
		}

		// Event notes arrive as a structured form and become a briefing
		// transcript before analysis.
		if req.EventForm != nil && strings.TrimSpace(req.Transcript) == "" {
			req.Transcript = analysis.BriefingText(*req.EventForm)
			if req.Source == "" {
				req.Source = models.ModeEventForm
			}
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

		result, err := analyzer.Analyze(c.Request().Context(), req)
		if err != nil {
			var shapeErr *analysis.ShapeError
			if errors.As(err, &shapeErr) {
				return c.JSON(http.StatusBadGateway, models.ErrorResponse{
					Error: fmt.Sprintf("Analysis response was malformed (%s). Please try again.",
						strings.Join(shapeErr.Fields, ", ")),
				})
			}
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: "Analysis failed. Please try again.",
			})
		}

		return c.JSON(http.StatusOK, result)
	}
}
