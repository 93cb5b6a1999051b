// Package events publishes transaction lifecycle events to a message broker.
package events

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
)

const contentTypeJSON = "application/json"

// encode renders an event as the JSON body shared by every broker.
func encode(event domain.TransactionEvent) ([]byte, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transaction event %s: %w", event.EventID, err)
	}
	return body, nil
}
