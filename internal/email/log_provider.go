package email

import (
	"context"
	"strings"

	"vibenet_backend/internal/logger"
)

// LogProvider writes messages to the log instead of sending them.
// Development only: the OTP code ends up in the log.
type LogProvider struct{}

func NewLogProvider() *LogProvider {
	return &LogProvider{}
}

func (p *LogProvider) Name() string { return "log" }

func (p *LogProvider) Send(ctx context.Context, email *Email) error {
	logger.CtxInfo(ctx, "Email (log provider)",
		"to", strings.Join(email.To, ","),
		"subject", email.Subject,
		"body", email.Body,
	)
	return nil
}
