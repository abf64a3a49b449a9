// Package mailer delivers account emails.
package mailer

import (
	"context"
	"log/slog"

	"github.com/blackmichael/instaapp/internal/domain"
)

// LogMailer writes outgoing mail to the structured log instead of sending it. It is
// the delivery used in development and tests.
type LogMailer struct {
	logger *slog.Logger
	from   string
}

func NewLogMailer(logger *slog.Logger, from string) *LogMailer {
	return &LogMailer{logger: logger, from: from}
}

func (m *LogMailer) SendVerificationCode(ctx context.Context, p *domain.Profile, code string) error {
	m.logger.InfoContext(ctx, "verification email",
		"from", m.from,
		"to", p.Email,
		"profile_id", p.ID,
		"subject", "Email Verification Code",
		"code", code,
	)
	return nil
}

var _ domain.Mailer = (*LogMailer)(nil)
