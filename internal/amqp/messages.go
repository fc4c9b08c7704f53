package amqp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"condo/internal/events"
)

// EventMessage is the wire body of a published event. Payload stays raw so
// consumers can decode it by Kind.
type EventMessage struct {
	ID         string          `json:"id"`
	Kind       events.Kind     `json:"kind"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// NewEventMessage wraps ev for the wire.
func NewEventMessage(ev events.Event) (*EventMessage, error) {
	msg := &EventMessage{
		ID:         ev.ID,
		Kind:       ev.Kind,
		OccurredAt: ev.OccurredAt,
	}
	if ev.Payload != nil {
		b, err := json.Marshal(ev.Payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", ev.Kind, err)
		}
		msg.Payload = b
	}
	return msg, nil
}

// ToJSON converts the message to JSON bytes
func (m *EventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// EventMessageFromJSON decodes a message body.
func EventMessageFromJSON(data []byte) (*EventMessage, error) {
	var msg EventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.ID == "" || msg.Kind == "" {
		return nil, errors.New("message without id or kind")
	}
	return &msg, nil
}
