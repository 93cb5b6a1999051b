package gateways

import (
	"context"

	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentGateway is the external payment processor. ProcessPayment blocks until the
// processor answers or ctx is done.
type PaymentGateway interface {
	ProcessPayment(ctx context.Context, amount decimal.Decimal, currency string) (domain.PaymentResult, error)
}

// EventPublisher delivers transaction lifecycle events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.TransactionEvent) error
	Close() error
}
