package realtime

import (
	"github.com/AyAchi-19/f1-store/internal/order"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"
)

// Event is one change notification for the orders table. Insert and update
// carry the new row; delete carries the old one.
type Event struct {
	Type EventType    `json:"type"`
	New  *order.Order `json:"new,omitempty"`
	Old  *order.Order `json:"old,omitempty"`
}

// Record returns the row the event is about.
func (e Event) Record() *order.Order {
	if e.New != nil {
		return e.New
	}
	return e.Old
}

// OrderID returns the identifier of the affected order.
func (e Event) OrderID() uuid.UUID {
	if rec := e.Record(); rec != nil {
		return rec.ID
	}
	return uuid.Nil
}

// Matches reports whether the event falls inside the subscription scope.
func (e Event) Matches(scope order.Scope) bool {
	rec := e.Record()
	if rec == nil {
		return false
	}
	return scope.Matches(rec.UserID)
}
