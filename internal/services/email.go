package services

import (
	"context"
	"fmt"
	"log"

	"clubcms/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendOtp sends the one-time passcode email using the "otp" template.
func (s *emailService) SendOtp(ctx context.Context, data *domain.OtpEmailData) error {
	if data == nil {
		return fmt.Errorf("otp email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("otp", data)
	if err != nil {
		return fmt.Errorf("failed to render otp template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send otp email: %w", err)
	}
	log.Printf("[EMAIL] Login code sent to %s", data.Email)
	return nil
}
