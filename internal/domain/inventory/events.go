package inventory

import (
	"github.com/stockroom/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeItem = "Item"

// Event type constants
const (
	EventTypeItemCreated   = "ItemCreated"
	EventTypeItemRenamed   = "ItemRenamed"
	EventTypeCountAdjusted = "CountAdjusted"
	EventTypeItemDeleted   = "ItemDeleted"
	EventTypeItemRestored  = "ItemRestored"
)

// ItemCreatedEvent is raised when a new item enters the ledger
type ItemCreatedEvent struct {
	shared.BaseDomainEvent
	Name         string `json:"name"`
	InitialCount int64  `json:"initial_count"`
}

// NewItemCreatedEvent creates a new ItemCreatedEvent
func NewItemCreatedEvent(item *Item, initialCount int64) *ItemCreatedEvent {
	return &ItemCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemCreated, AggregateTypeItem, item.ID),
		Name:            item.Name,
		InitialCount:    initialCount,
	}
}

// EventType returns the event type name
func (e *ItemCreatedEvent) EventType() string {
	return EventTypeItemCreated
}

// ItemRenamedEvent is raised when an item changes name
type ItemRenamedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewItemRenamedEvent creates a new ItemRenamedEvent
func NewItemRenamedEvent(item *Item) *ItemRenamedEvent {
	return &ItemRenamedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemRenamed, AggregateTypeItem, item.ID),
		Name:            item.Name,
	}
}

// EventType returns the event type name
func (e *ItemRenamedEvent) EventType() string {
	return EventTypeItemRenamed
}

// CountAdjustedEvent is raised when an external ledger row changes an item's
// available count
type CountAdjustedEvent struct {
	shared.BaseDomainEvent
	CountChange int64 `json:"count_change"`
}

// NewCountAdjustedEvent creates a new CountAdjustedEvent
func NewCountAdjustedEvent(itemID, countChange int64) *CountAdjustedEvent {
	return &CountAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCountAdjusted, AggregateTypeItem, itemID),
		CountChange:     countChange,
	}
}

// EventType returns the event type name
func (e *CountAdjustedEvent) EventType() string {
	return EventTypeCountAdjusted
}

// ItemDeletedEvent is raised when an item is soft-deleted
type ItemDeletedEvent struct {
	shared.BaseDomainEvent
	DeletionID int64  `json:"deletion_id"`
	Comment    string `json:"comment"`
}

// NewItemDeletedEvent creates a new ItemDeletedEvent
func NewItemDeletedEvent(itemID int64, deletion *Deletion) *ItemDeletedEvent {
	return &ItemDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemDeleted, AggregateTypeItem, itemID),
		DeletionID:      deletion.ID,
		Comment:         deletion.Comment,
	}
}

// EventType returns the event type name
func (e *ItemDeletedEvent) EventType() string {
	return EventTypeItemDeleted
}

// ItemRestoredEvent is raised when a soft-deleted item is restored
type ItemRestoredEvent struct {
	shared.BaseDomainEvent
	DeletionID int64 `json:"deletion_id"`
}

// NewItemRestoredEvent creates a new ItemRestoredEvent
func NewItemRestoredEvent(itemID, deletionID int64) *ItemRestoredEvent {
	return &ItemRestoredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemRestored, AggregateTypeItem, itemID),
		DeletionID:      deletionID,
	}
}

// EventType returns the event type name
func (e *ItemRestoredEvent) EventType() string {
	return EventTypeItemRestored
}
