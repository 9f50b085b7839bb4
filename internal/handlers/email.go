package handlers

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"salescope/internal/models"

	"github.com/labstack/echo/v4"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// FollowUpSender delivers a drafted follow-up email. Satisfied by
// *email.Service.
type FollowUpSender interface {
	SendFollowUp(to, subject, body string) error
}

// SendFollowUpHandler sends a drafted follow-up email to a recipient
func SendFollowUpHandler(sender FollowUpSender) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.FollowUpEmailRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.FollowUpEmailResponse{
				Error: fmt.Sprintf("Invalid request body: %v", err),
			})
		}

		if !emailRegex.MatchString(req.To) {
			return c.JSON(http.StatusBadRequest, models.FollowUpEmailResponse{
				Error: "Invalid email format. Please provide a valid email address.",
			})
		}
		if strings.TrimSpace(req.Subject) == "" {
			return c.JSON(http.StatusBadRequest, models.FollowUpEmailResponse{
				Error: "Subject is required",
			})
		}
		if strings.TrimSpace(req.Body) == "" {
			return c.JSON(http.StatusBadRequest, models.FollowUpEmailResponse{
				Error: "Body is required",
			})
		}

		if err := sender.SendFollowUp(req.To, req.Subject, req.Body); err != nil {
			return c.JSON(http.StatusInternalServerError, models.FollowUpEmailResponse{
				Error: err.Error(),
			})
		}

		message := "Follow-up email sent"
		if req.CompanyName != "" {
			message = fmt.Sprintf("Follow-up email for %s sent", req.CompanyName)
		}
		return c.JSON(http.StatusOK, models.FollowUpEmailResponse{
			Success: true,
			Message: message,
		})
	}
}
