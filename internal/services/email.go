package services

import (
	"fmt"

	"storefront/internal/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// NewMailer picks the sendgrid mailer when an API key is configured and a
// log-only mailer otherwise, so development works without mail credentials.
func NewMailer(cfg config.MailConfig, logger *zap.Logger) Mailer {
	if cfg.SendGridAPIKey == "" {
		return &LogMailer{logger: logger}
	}
	return &SendGridMailer{
		apiKey:    cfg.SendGridAPIKey,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		logger:    logger,
	}
}

// SendGridMailer sends transactional mail through the SendGrid API
type SendGridMailer struct {
	apiKey    string
	fromEmail string
	fromName  string
	logger    *zap.Logger
}

// SendPasswordResetEmail sends the password-reset link to the user
func (m *SendGridMailer) SendPasswordResetEmail(to, resetURL string) error {
	from := mail.NewEmail(m.fromName, m.fromEmail)
	recipient := mail.NewEmail("", to)

	subject := "Password Reset"
	text := fmt.Sprintf(
		"You requested a password reset. Open the link below to choose a new password:\n\n%s\n\nThe link is valid for one hour. If you did not request this, ignore this email.",
		resetURL,
	)
	html := fmt.Sprintf(
		`<p>You requested a password reset. Click the link below to choose a new password:</p><p><a href="%s">Reset password</a></p><p>The link is valid for one hour. If you did not request this, ignore this email.</p>`,
		resetURL,
	)

	message := mail.NewSingleEmail(from, subject, recipient, text, html)

	client := sendgrid.NewSendClient(m.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d body=%s", response.StatusCode, response.Body)
	}

	m.logger.Info("password reset email sent",
		zap.String("to", to),
		zap.Int("status", response.StatusCode),
	)

	return nil
}

// LogMailer logs mail instead of sending it
type LogMailer struct {
	logger *zap.Logger
}

// SendPasswordResetEmail logs the reset link
func (m *LogMailer) SendPasswordResetEmail(to, resetURL string) error {
	m.logger.Info("password reset email (log only)",
		zap.String("to", to),
		zap.String("reset_url", resetURL),
	)
	return nil
}
