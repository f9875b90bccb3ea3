package events

import (
	"context"
	"log/slog"
)

// LogSink records events to the structured log. Mostly useful for
// local development and as a last-resort trace when no broker is
// configured.
type LogSink struct{}

func (LogSink) Name() string { return "log" }

func (LogSink) Publish(_ context.Context, event Event) error {
	slog.Info("domain event",
		"type", event.Type,
		"order_id", event.OrderID,
		"customer_id", event.CustomerID,
	)
	return nil
}
