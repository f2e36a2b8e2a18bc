package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents what happened to the entity.
type EventType string

const (
	EventTypeCreated       EventType = "created"
	EventTypeUpdated       EventType = "updated"
	EventTypeDeleted       EventType = "deleted"
	EventTypeActivated     EventType = "activated"
	EventTypeDeactivated   EventType = "deactivated"
	EventTypeImported      EventType = "imported"
	EventTypeLimitExceeded EventType = "limit_exceeded"
)

// EntityType represents the type of entity the event is about.
type EntityType string

const (
	EntityTypeBudget      EntityType = "budget"
	EntityTypeCategory    EntityType = "category"
	EntityTypeTransaction EntityType = "transaction"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "transaction.created"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "transaction"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TransactionCreated creates a transaction.created event
func TransactionCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeTransaction, payload)
}

// TransactionUpdated creates a transaction.updated event
func TransactionUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeTransaction, payload)
}

// TransactionDeleted creates a transaction.deleted event
func TransactionDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeTransaction, payload)
}

// CategoryCreated creates a category.created event
func CategoryCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeCategory, payload)
}

// CategoryUpdated creates a category.updated event
func CategoryUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeCategory, payload)
}

// CategoryDeleted creates a category.deleted event
func CategoryDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeCategory, payload)
}

// CategoryActivated creates a category.activated event
func CategoryActivated(payload interface{}) Event {
	return NewEvent(EventTypeActivated, EntityTypeCategory, payload)
}

// CategoryDeactivated creates a category.deactivated event
func CategoryDeactivated(payload interface{}) Event {
	return NewEvent(EventTypeDeactivated, EntityTypeCategory, payload)
}

// BudgetImported creates a budget.imported event
func BudgetImported(payload interface{}) Event {
	return NewEvent(EventTypeImported, EntityTypeBudget, payload)
}

// BudgetLimitExceeded creates a budget.limit_exceeded event. It carries the
// trigger condition the external notification layer consumes; nothing is
// scheduled or delivered here.
func BudgetLimitExceeded(payload interface{}) Event {
	return NewEvent(EventTypeLimitExceeded, EntityTypeBudget, payload)
}
