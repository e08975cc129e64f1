package mailer

import (
	"context"
	"fmt"

	"gitlab.com/codearena.net/internal/config"
	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
)

var _ secondary.Mailer = &LogMailer{}

// LogMailer writes account emails to the structured log instead of an SMTP
// relay. Deployments without a relay read the links from the logs.
type LogMailer struct {
	from   string
	logger primary.Logger
}

func NewLogMailer(cfg *config.MailConfig, logger primary.Logger) *LogMailer {
	return &LogMailer{
		from:   cfg.From,
		logger: logger,
	}
}

func (m *LogMailer) SendVerification(ctx context.Context, to, username, link string) error {
	body := fmt.Sprintf("Hi %s, welcome to CodeArena! Verify your email here: %s", username, link)
	return m.send(ctx, to, "Verify your email", body, link)
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, to, username, link string) error {
	body := fmt.Sprintf("Hi %s, we got a request to reset your password. Reset it here: %s", username, link)
	return m.send(ctx, to, "Reset Password", body, link)
}

func (m *LogMailer) send(ctx context.Context, to, subject, body, link string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if to == "" {
		return fmt.Errorf("mail %q has no recipient", subject)
	}
	m.logger.Info("mail sent",
		"from", m.from,
		"to", to,
		"subject", subject,
		"link", link,
		"body", body,
	)
	return nil
}
