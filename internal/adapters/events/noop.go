package events

import (
	"context"
	"log/slog"

	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
	"github.com/SscSPs/litally_fintech_api/internal/core/ports/gateways"
	"github.com/SscSPs/litally_fintech_api/internal/platform/logging"
)

// LogPublisher only logs events. It is used when no broker is configured.
type LogPublisher struct{}

var _ gateways.EventPublisher = LogPublisher{}

func (LogPublisher) Publish(ctx context.Context, event domain.TransactionEvent) error {
	logging.FromContext(ctx).Debug("Transaction event (no broker configured)",
		slog.String("routing_key", event.RoutingKey()),
		slog.String("transaction_id", event.TransactionID),
		slog.String("status", string(event.Status)))
	return nil
}

func (LogPublisher) Close() error { return nil }
