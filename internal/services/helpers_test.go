package services

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"finance-tracker/internal/events"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingPublisher keeps every event it is asked to publish
type recordingPublisher struct {
	mu     sync.Mutex
	events []*events.TransactionEvent
	err    error
}

func (p *recordingPublisher) PublishTransactionEvent(_ context.Context, event *events.TransactionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error {
	return nil
}

func (p *recordingPublisher) published() []*events.TransactionEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*events.TransactionEvent(nil), p.events...)
}
