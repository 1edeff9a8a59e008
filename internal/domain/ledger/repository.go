package ledger

import (
	"context"
)

// AssignmentRepository defines the interface for ledger row persistence.
// Implementations must surface the store's balance check as
// shared.ErrAssignedCountExceedsAvailable.
type AssignmentRepository interface {
	// Save inserts a new assignment row
	Save(ctx context.Context, assignment *Assignment) error

	// UpdateCountByShipmentAndItem sets the assigned count of the reservation
	// row for a shipment-item pair. Returns false when no row matched.
	UpdateCountByShipmentAndItem(ctx context.Context, shipmentID, itemID, count int64) (bool, error)

	// DeleteByShipmentAndItem removes the reservation row for a shipment-item
	// pair. Returns false when no row matched.
	DeleteByShipmentAndItem(ctx context.Context, shipmentID, itemID int64) (bool, error)

	// SumByItem returns the current count of an item, the sum of its rows
	SumByItem(ctx context.Context, itemID int64) (int64, error)

	// SaveLink inserts a shipment-to-assignment link row
	SaveLink(ctx context.Context, link *ShipmentAssignmentLink) error
}

// ExternalAssignmentRepository defines the interface for external assignment
// anchor persistence
type ExternalAssignmentRepository interface {
	// Save inserts a new external assignment anchor
	Save(ctx context.Context, assignment *ExternalItemAssignment) error

	// Delete removes an anchor and, through the store's cascade, its ledger
	// rows. Returns false when no row matched.
	Delete(ctx context.Context, id int64) (bool, error)
}
