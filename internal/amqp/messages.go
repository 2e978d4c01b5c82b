package amqp

import (
	"encoding/json"
	"time"

	"ledger/internal/core"
	"ledger/internal/ledger"
)

// ChangeMessage announces one committed ledger mutation. Consumers re-read
// the ledger for the entity itself.
type ChangeMessage struct {
	Slot      string    `json:"slot"`
	Op        string    `json:"op"`
	ID        core.ID   `json:"id"`
	Version   uint64    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// NewChangeMessage converts a ledger change into its wire form.
func NewChangeMessage(ch ledger.Change) *ChangeMessage {
	ts := ch.At
	if ts.IsZero() {
		ts = time.Now()
	}
	return &ChangeMessage{
		Slot:      ch.Slot,
		Op:        string(ch.Op),
		ID:        ch.ID,
		Version:   ch.Version,
		Timestamp: ts.UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ChangeMessageFromJSON decodes a message body.
func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
