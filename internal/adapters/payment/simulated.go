// Package payment contains payment gateway adapters.
package payment

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
	"github.com/SscSPs/litally_fintech_api/internal/core/ports/gateways"
	"github.com/SscSPs/litally_fintech_api/internal/platform/logging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultLatency is how long the simulated processor takes to answer.
const DefaultLatency = time.Second

// OutcomePolicy decides what the processor answers for a payment.
type OutcomePolicy interface {
	Decide(amount decimal.Decimal, currency string) (domain.PaymentOutcome, string)
}

// SentinelPolicy fails or parks payments of two magic amounts and approves the rest.
type SentinelPolicy struct {
	FailureAmount decimal.Decimal
	PendingAmount decimal.Decimal
}

// DefaultSentinelPolicy fails 3.14 and leaves 2.71 pending.
func DefaultSentinelPolicy() SentinelPolicy {
	return SentinelPolicy{
		FailureAmount: decimal.RequireFromString("3.14"),
		PendingAmount: decimal.RequireFromString("2.71"),
	}
}

func (p SentinelPolicy) Decide(amount decimal.Decimal, _ string) (domain.PaymentOutcome, string) {
	switch {
	case amount.Equal(p.FailureAmount):
		return domain.OutcomeFailure, "Payment failed due to insufficient funds"
	case amount.Equal(p.PendingAmount):
		return domain.OutcomePending, "Payment is pending"
	default:
		return domain.OutcomeSuccess, "Payment processed successfully"
	}
}

// SimulatedGateway stands in for an external payment processor.
type SimulatedGateway struct {
	policy  OutcomePolicy
	latency time.Duration
}

var _ gateways.PaymentGateway = (*SimulatedGateway)(nil)

// NewSimulatedGateway creates a gateway that answers after latency. A nil
// policy means DefaultSentinelPolicy.
func NewSimulatedGateway(policy OutcomePolicy, latency time.Duration) *SimulatedGateway {
	if policy == nil {
		policy = DefaultSentinelPolicy()
	}
	if latency < 0 {
		latency = 0
	}
	return &SimulatedGateway{policy: policy, latency: latency}
}

// ProcessPayment waits for the configured latency, or returns ctx.Err() if ctx ends first.
func (g *SimulatedGateway) ProcessPayment(ctx context.Context, amount decimal.Decimal, currency string) (domain.PaymentResult, error) {
	if g.latency > 0 {
		timer := time.NewTimer(g.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return domain.PaymentResult{}, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return domain.PaymentResult{}, err
	}

	outcome, message := g.policy.Decide(amount, currency)
	result := domain.PaymentResult{
		Outcome:   outcome,
		Reference: "PG-" + uuid.NewString(),
		Message:   message,
	}
	logging.FromContext(ctx).Debug("Simulated payment processed",
		slog.String("amount", amount.String()),
		slog.String("currency", currency),
		slog.String("outcome", string(outcome)),
		slog.String("reference", result.Reference))
	return result, nil
}
