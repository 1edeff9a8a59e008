package ledger

import (
	"github.com/stockroom/backend/internal/domain/shared"
)

// Assignment is a single signed row in the item-count ledger. Positive counts
// add availability to an item, negative counts reserve it. Every row belongs
// to exactly one owner: a shipment or an external assignment. An item's
// current count is the sum of its assignment rows, never a stored column.
type Assignment struct {
	shared.BaseEntity
	ItemID               int64  `gorm:"not null;index"`
	AssignedCount        int64  `gorm:"not null"`
	ShipmentID           *int64 `gorm:"index"`
	ExternalAssignmentID *int64 `gorm:"index"`
}

// TableName returns the table name for GORM
func (Assignment) TableName() string {
	return "item_assignments"
}

// NewShipmentAssignment creates a reservation row owned by a shipment.
// Reservations carry negative counts.
func NewShipmentAssignment(itemID, shipmentID, count int64) (*Assignment, error) {
	if itemID <= 0 {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID must be positive")
	}
	if shipmentID <= 0 {
		return nil, shared.NewDomainError("INVALID_SHIPMENT", "Shipment ID must be positive")
	}
	return &Assignment{
		BaseEntity:    shared.NewBaseEntity(),
		ItemID:        itemID,
		AssignedCount: count,
		ShipmentID:    &shipmentID,
	}, nil
}

// NewExternalAssignment creates an adjustment row owned by an external
// assignment. External rows carry either sign.
func NewExternalAssignment(itemID, externalID, count int64) (*Assignment, error) {
	if itemID <= 0 {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID must be positive")
	}
	if externalID <= 0 {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ASSIGNMENT", "External assignment ID must be positive")
	}
	return &Assignment{
		BaseEntity:           shared.NewBaseEntity(),
		ItemID:               itemID,
		AssignedCount:        count,
		ExternalAssignmentID: &externalID,
	}, nil
}

// IsReservation reports whether the row reserves count for a shipment
func (a *Assignment) IsReservation() bool {
	return a.ShipmentID != nil
}

// ExternalItemAssignment anchors ledger rows that are not tied to a shipment,
// such as initial stock or manual count corrections.
type ExternalItemAssignment struct {
	shared.BaseEntity
}

// TableName returns the table name for GORM
func (ExternalItemAssignment) TableName() string {
	return "external_item_assignments"
}

// NewExternalItemAssignment creates a new external assignment anchor
func NewExternalItemAssignment() *ExternalItemAssignment {
	return &ExternalItemAssignment{BaseEntity: shared.NewBaseEntity()}
}

// ShipmentAssignmentLink joins a shipment to one of its ledger rows. The
// ownership column on Assignment is authoritative; the link table mirrors it
// for cascade cleanup and membership queries.
type ShipmentAssignmentLink struct {
	ShipmentID   int64 `gorm:"primaryKey"`
	AssignmentID int64 `gorm:"primaryKey"`
}

// TableName returns the table name for GORM
func (ShipmentAssignmentLink) TableName() string {
	return "shipments_to_assignments"
}
