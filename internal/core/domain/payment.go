package domain

import "time"

// PaymentOutcome is the tri-state answer of the payment processor.
type PaymentOutcome string

const (
	OutcomeSuccess PaymentOutcome = "SUCCESS"
	OutcomeFailure PaymentOutcome = "FAILURE"
	OutcomePending PaymentOutcome = "PENDING"
)

// PaymentResult is what the payment gateway returns for a processed payment.
type PaymentResult struct {
	Outcome   PaymentOutcome
	Reference string
	Message   string
}

// StatusForOutcome maps every gateway outcome to a transaction status.
// Unknown outcomes are treated as FAILED.
func StatusForOutcome(outcome PaymentOutcome) TransactionStatus {
	switch outcome {
	case OutcomeSuccess:
		return StatusCompleted
	case OutcomePending:
		return StatusPending
	case OutcomeFailure:
		return StatusFailed
	default:
		return StatusFailed
	}
}

// TransactionEvent is published whenever a transaction is created or changes status.
type TransactionEvent struct {
	EventID       string            `json:"eventID"`
	TransactionID string            `json:"transactionID"`
	AccountID     string            `json:"accountID"`
	Type          TransactionType   `json:"type"`
	Amount        string            `json:"amount"`
	Currency      string            `json:"currency"`
	Status        TransactionStatus `json:"status"`
	OccurredAt    time.Time         `json:"occurredAt"`
}

// RoutingKey names the event for brokers that route by key, e.g. "transaction.completed".
func (e TransactionEvent) RoutingKey() string {
	switch e.Status {
	case StatusCompleted:
		return "transaction.completed"
	case StatusFailed:
		return "transaction.failed"
	default:
		return "transaction.pending"
	}
}
