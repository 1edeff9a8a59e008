package shipping

import (
	"context"
)

// ShipmentRepository defines the interface for shipment persistence
type ShipmentRepository interface {
	// FindByID finds a shipment by ID
	FindByID(ctx context.Context, id int64) (*Shipment, error)

	// FindAll lists all shipments
	FindAll(ctx context.Context) ([]Shipment, error)

	// FindItems lists a shipment's reserved lines as positive magnitudes
	FindItems(ctx context.Context, shipmentID int64) ([]ShipmentItem, error)

	// Save creates or updates a shipment row
	Save(ctx context.Context, shipment *Shipment) error

	// Delete removes a shipment; the store cascades to its ledger rows and
	// link rows. Returns false when no row matched.
	Delete(ctx context.Context, id int64) (bool, error)
}
