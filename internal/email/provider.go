package email

import (
	"context"
	"fmt"

	"vibenet_backend/internal/config"
)

// Provider delivers email. Send must honour ctx cancellation.
type Provider interface {
	Send(ctx context.Context, email *Email) error
	Name() string
}

// NewProvider builds the provider selected by cfg.Provider.
func NewProvider(cfg config.EmailConfig) (Provider, error) {
	switch cfg.Provider {
	case "smtp":
		return NewSMTPProvider(cfg)
	case "sendgrid":
		return NewSendGridProvider(cfg)
	case "log", "":
		return NewLogProvider(), nil
	default:
		return nil, fmt.Errorf("unknown email provider: %s", cfg.Provider)
	}
}
