// Package email sends drafted follow-up emails through SendGrid.
package email

import (
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Service sends follow-up drafts on behalf of a configured sender identity.
type Service struct {
	apiKey      string
	senderEmail string
	senderName  string
}

// NewService creates an email service. The service stays constructible with an
// empty key; sends then fail with a configuration error.
func NewService(apiKey, senderEmail string) *Service {
	if senderEmail == "" {
		senderEmail = "noreply@salescope.app"
	}
	return &Service{
		apiKey:      apiKey,
		senderEmail: senderEmail,
		senderName:  "SaleScope",
	}
}

// SendFollowUp delivers a drafted follow-up email to one recipient. The body
// is sent as plain text; line breaks become <br> for the HTML part.
func (s *Service) SendFollowUp(to, subject, body string) error {
	if s.apiKey == "" {
		return fmt.Errorf("SendGrid API key not configured")
	}
	if to == "" {
		return fmt.Errorf("recipient is required")
	}
	if subject == "" {
		return fmt.Errorf("subject is required")
	}
	if body == "" {
		return fmt.Errorf("body is required")
	}

	from := mail.NewEmail(s.senderName, s.senderEmail)
	recipient := mail.NewEmail("", to)
	htmlBody := strings.ReplaceAll(body, "\n", "<br>")

	message := mail.NewSingleEmail(from, subject, recipient, body, htmlBody)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("SendGrid API error: status %d, body: %s", response.StatusCode, response.Body)
	}

	return nil
}
