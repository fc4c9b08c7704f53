// Package events describes the change notifications a session emits after
// every successful mutation.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Kind names what happened. It doubles as the AMQP routing key suffix.
type Kind string

const (
	UnitAdded       Kind = "unit.added"
	UnitUpdated     Kind = "unit.updated"
	UnitDeleted     Kind = "unit.deleted"
	ExpenseRecorded Kind = "expense.recorded"
	PeriodChanged   Kind = "period.changed"
)

// Event is one change notification. Payload is the affected record: a
// core.Unit, a core.Expense, a DeletedUnit or a core.Date.
type Event struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

// DeletedUnit is the payload of UnitDeleted.
type DeletedUnit struct {
	ID int64 `json:"id"`
}

// New stamps a fresh id and the current time on an event.
func New(kind Kind, payload any) Event {
	return Event{
		ID:         uuid.NewString(),
		Kind:       kind,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Publisher delivers events somewhere outside the session.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
