package persistence

import (
	"context"
	"errors"

	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/domain/shipping"
	"gorm.io/gorm"
)

// GormShipmentRepository implements ShipmentRepository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// FindByID finds a shipment by ID
func (r *GormShipmentRepository) FindByID(ctx context.Context, id int64) (*shipping.Shipment, error) {
	var shipment shipping.Shipment
	if err := r.db.WithContext(ctx).First(&shipment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shipment, nil
}

// FindAll lists all shipments
func (r *GormShipmentRepository) FindAll(ctx context.Context) ([]shipping.Shipment, error) {
	shipments := make([]shipping.Shipment, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&shipments).Error; err != nil {
		return nil, err
	}
	return shipments, nil
}

// FindItems lists a shipment's reserved lines. Reservations are stored as
// negative ledger rows; callers see positive magnitudes.
func (r *GormShipmentRepository) FindItems(ctx context.Context, shipmentID int64) ([]shipping.ShipmentItem, error) {
	items := make([]shipping.ShipmentItem, 0)
	err := r.db.WithContext(ctx).
		Table("item_assignments").
		Select("item_assignments.item_id, items.name, -item_assignments.assigned_count AS count").
		Joins("JOIN items ON items.id = item_assignments.item_id").
		Where("item_assignments.shipment_id = ?", shipmentID).
		Order("item_assignments.item_id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates a shipment row
func (r *GormShipmentRepository) Save(ctx context.Context, shipment *shipping.Shipment) error {
	return r.db.WithContext(ctx).Save(shipment).Error
}

// Delete removes a shipment. The FK cascade drops its ledger rows and link
// rows, which restores the reserved counts to availability.
func (r *GormShipmentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&shipping.Shipment{}, "id = ?", id)
	if result.Error != nil {
		return false, translateLedgerError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Ensure GormShipmentRepository implements ShipmentRepository
var _ shipping.ShipmentRepository = (*GormShipmentRepository)(nil)
