package events

import (
	"context"
	"log/slog"

	"finance-tracker/internal/config"
)

// Publisher delivers transaction events to interested consumers
type Publisher interface {
	PublishTransactionEvent(ctx context.Context, event *TransactionEvent) error
	Close() error
}

// NoopPublisher drops every event. It is used when no broker is configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (NoopPublisher) PublishTransactionEvent(context.Context, *TransactionEvent) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}

// NewPublisher connects to the configured broker, or returns a NoopPublisher when events are disabled
func NewPublisher(cfg *config.EventsConfig, logger *slog.Logger) (Publisher, error) {
	if !cfg.Enabled() {
		logger.Info("event publishing disabled, AMQP_URL not set")
		return NewNoopPublisher(), nil
	}

	return NewAMQPPublisher(cfg, logger)
}
