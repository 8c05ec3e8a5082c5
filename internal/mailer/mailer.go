package mailer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/LaundryServices01/laundry-admin/internal/config"
	"github.com/LaundryServices01/laundry-admin/internal/models"
)

// Provider performs the actual delivery. Implementations are best-effort;
// callers decide whether a failure is fatal for their flow.
type Provider interface {
	Send(ctx context.Context, to, subject, body string) error
}

type Service struct {
	provider Provider
	log      *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) (*Service, error) {
	var provider Provider
	switch cfg.MailProvider {
	case "sendgrid":
		if cfg.SendGridAPIKey == "" {
			return nil, fmt.Errorf("sendgrid api key is required")
		}
		provider = NewSendGridProvider(cfg.SendGridAPIKey, cfg.MailFrom, cfg.MailFromName)
	case "smtp":
		provider = NewSMTPProvider(
			cfg.SMTPHost,
			cfg.SMTPPort,
			cfg.SMTPUsername,
			cfg.SMTPPassword,
			cfg.MailFrom,
			cfg.MailFromName,
		)
	default:
		return nil, fmt.Errorf("unknown mail provider: %s", cfg.MailProvider)
	}

	return &Service{provider: provider, log: log}, nil
}

// NewWithProvider wires an explicit provider; tests use it with a mock.
func NewWithProvider(provider Provider, log *zap.Logger) *Service {
	return &Service{provider: provider, log: log}
}

func (s *Service) SendVerificationCode(ctx context.Context, user *models.User) error {
	if user.EmailVerificationToken == nil {
		return fmt.Errorf("user %d has no verification token", user.ID)
	}

	subject := "Verify Your Email Address"
	body := fmt.Sprintf(`Hello %s,

Thank you for registering! Your verification code is:

%s

Please enter this code to verify your email address.

This code will expire in 15 minutes.

If you didn't register for an account, please ignore this email.

Best regards,
Laundry Server
`, user.FullName, *user.EmailVerificationToken)

	return s.send(ctx, user.Email, subject, body)
}

func (s *Service) SendPasswordResetCode(ctx context.Context, user *models.User) error {
	if user.PasswordResetToken == nil {
		return fmt.Errorf("user %d has no reset token", user.ID)
	}

	subject := "Password Reset Code"
	body := fmt.Sprintf("Your password reset code is: %s\n\nIf you did not request this, please ignore this email.",
		*user.PasswordResetToken)

	return s.send(ctx, user.Email, subject, body)
}

func (s *Service) send(ctx context.Context, to, subject, body string) error {
	s.log.Info("sending email",
		zap.String("to", to),
		zap.String("subject", subject),
	)

	if err := s.provider.Send(ctx, to, subject, body); err != nil {
		s.log.Error("failed to send email",
			zap.String("to", to),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
