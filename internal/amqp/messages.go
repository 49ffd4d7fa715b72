package amqp

import (
	"encoding/json"
	"time"

	"finanzas/internal/core"
)

// MovementMessage carries one recorded movement to the alert worker. It is a
// snapshot of the row that was appended, enough for the worker to decide on
// budget alerts without re-reading the store for the movement itself.
type MovementMessage struct {
	Kind        string    `json:"kind"`
	Category    string    `json:"category"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewMovementMessage(m core.Movement) *MovementMessage {
	return &MovementMessage{
		Kind:        string(m.Kind),
		Category:    m.Category,
		AmountCents: m.Amount.Cents,
		Currency:    string(m.Currency),
		Year:        m.Year,
		Month:       m.Month,
		Timestamp:   m.Timestamp,
	}
}

func (m *MovementMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MovementMessageFromJSON(data []byte) (*MovementMessage, error) {
	var msg MovementMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
