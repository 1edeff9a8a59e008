package shipping

import (
	"github.com/stockroom/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeShipment = "Shipment"

// Event type constants
const (
	EventTypeShipmentCreated = "ShipmentCreated"
	EventTypeShipmentUpdated = "ShipmentUpdated"
	EventTypeShipmentDeleted = "ShipmentDeleted"
)

// ShipmentCreatedEvent is raised when a shipment and its reservations commit
type ShipmentCreatedEvent struct {
	shared.BaseDomainEvent
	Name        string         `json:"name"`
	Source      string         `json:"source"`
	Destination string         `json:"destination"`
	Items       []ShipmentItem `json:"items"`
}

// NewShipmentCreatedEvent creates a new ShipmentCreatedEvent
func NewShipmentCreatedEvent(shipment *Shipment, items []ShipmentItem) *ShipmentCreatedEvent {
	return &ShipmentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShipmentCreated, AggregateTypeShipment, shipment.ID),
		Name:            shipment.Name,
		Source:          shipment.Source,
		Destination:     shipment.Destination,
		Items:           items,
	}
}

// EventType returns the event type name
func (e *ShipmentCreatedEvent) EventType() string {
	return EventTypeShipmentCreated
}

// ShipmentUpdatedEvent is raised when shipment metadata changes
type ShipmentUpdatedEvent struct {
	shared.BaseDomainEvent
	Name        string `json:"name"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// NewShipmentUpdatedEvent creates a new ShipmentUpdatedEvent
func NewShipmentUpdatedEvent(shipment *Shipment) *ShipmentUpdatedEvent {
	return &ShipmentUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShipmentUpdated, AggregateTypeShipment, shipment.ID),
		Name:            shipment.Name,
		Source:          shipment.Source,
		Destination:     shipment.Destination,
	}
}

// EventType returns the event type name
func (e *ShipmentUpdatedEvent) EventType() string {
	return EventTypeShipmentUpdated
}

// ShipmentDeletedEvent is raised when a shipment is removed and its reserved
// counts return to availability
type ShipmentDeletedEvent struct {
	shared.BaseDomainEvent
	ReleasedItems []ShipmentItem `json:"released_items"`
}

// NewShipmentDeletedEvent creates a new ShipmentDeletedEvent
func NewShipmentDeletedEvent(shipmentID int64, released []ShipmentItem) *ShipmentDeletedEvent {
	return &ShipmentDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShipmentDeleted, AggregateTypeShipment, shipmentID),
		ReleasedItems:   released,
	}
}

// EventType returns the event type name
func (e *ShipmentDeletedEvent) EventType() string {
	return EventTypeShipmentDeleted
}
