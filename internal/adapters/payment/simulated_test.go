package payment

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
	"github.com/SscSPs/litally_fintech_api/internal/platform/logging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelPolicy(t *testing.T) {
	policy := DefaultSentinelPolicy()
	tests := []struct {
		amount  string
		outcome domain.PaymentOutcome
	}{
		{"3.14", domain.OutcomeFailure},
		{"3.140", domain.OutcomeFailure},
		{"2.71", domain.OutcomePending},
		{"100", domain.OutcomeSuccess},
		{"3.15", domain.OutcomeSuccess},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			outcome, msg := policy.Decide(decimal.RequireFromString(tt.amount), "USD")
			assert.Equal(t, tt.outcome, outcome)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestSimulatedGateway_ProcessPayment(t *testing.T) {
	gw := NewSimulatedGateway(nil, time.Millisecond)

	res, err := gw.ProcessPayment(context.Background(), decimal.NewFromInt(10), "USD")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeSuccess, res.Outcome)
	assert.True(t, strings.HasPrefix(res.Reference, "PG-"))

	res, err = gw.ProcessPayment(context.Background(), decimal.RequireFromString("3.14"), "USD")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeFailure, res.Outcome)
	assert.Equal(t, "Payment failed due to insufficient funds", res.Message)
}

func TestSimulatedGateway_HonoursDeadline(t *testing.T) {
	gw := NewSimulatedGateway(nil, time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := gw.ProcessPayment(ctx, decimal.NewFromInt(10), "USD")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestSimulatedGateway_ZeroLatencyCancelled(t *testing.T) {
	gw := NewSimulatedGateway(nil, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gw.ProcessPayment(ctx, decimal.NewFromInt(10), "USD")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulatedGateway_LogsToContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := logging.WithLogger(context.Background(), logger.With("request_id", "r-42"))

	res, err := NewSimulatedGateway(nil, 0).ProcessPayment(ctx, decimal.NewFromInt(7), "USD")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "request_id=r-42")
	assert.Contains(t, out, "reference="+res.Reference)
}
