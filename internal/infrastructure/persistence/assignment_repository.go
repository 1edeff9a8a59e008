package persistence

import (
	"context"

	"github.com/stockroom/backend/internal/domain/ledger"
	"gorm.io/gorm"
)

// GormAssignmentRepository implements AssignmentRepository using GORM. Writes
// run under the items_balance trigger; a rejected write surfaces as
// shared.ErrAssignedCountExceedsAvailable.
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAssignmentRepository creates a new GormAssignmentRepository
func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Save inserts a new assignment row
func (r *GormAssignmentRepository) Save(ctx context.Context, assignment *ledger.Assignment) error {
	return translateLedgerError(r.db.WithContext(ctx).Create(assignment).Error)
}

// UpdateCountByShipmentAndItem sets the assigned count of the reservation row
// for a shipment-item pair. Returns false when no row matched.
func (r *GormAssignmentRepository) UpdateCountByShipmentAndItem(ctx context.Context, shipmentID, itemID, count int64) (bool, error) {
	result := r.db.WithContext(ctx).Model(&ledger.Assignment{}).
		Where("shipment_id = ? AND item_id = ?", shipmentID, itemID).
		Update("assigned_count", count)
	if result.Error != nil {
		return false, translateLedgerError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteByShipmentAndItem removes the reservation row for a shipment-item
// pair. Returns false when no row matched.
func (r *GormAssignmentRepository) DeleteByShipmentAndItem(ctx context.Context, shipmentID, itemID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("shipment_id = ? AND item_id = ?", shipmentID, itemID).
		Delete(&ledger.Assignment{})
	if result.Error != nil {
		return false, translateLedgerError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// SumByItem returns the current count of an item, the sum of its rows
func (r *GormAssignmentRepository) SumByItem(ctx context.Context, itemID int64) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&ledger.Assignment{}).
		Where("item_id = ?", itemID).
		Select("COALESCE(SUM(assigned_count), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	return sum, nil
}

// SaveLink inserts a shipment-to-assignment link row
func (r *GormAssignmentRepository) SaveLink(ctx context.Context, link *ledger.ShipmentAssignmentLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

// Ensure GormAssignmentRepository implements AssignmentRepository
var _ ledger.AssignmentRepository = (*GormAssignmentRepository)(nil)

// GormExternalAssignmentRepository implements ExternalAssignmentRepository
// using GORM
type GormExternalAssignmentRepository struct {
	db *gorm.DB
}

// NewGormExternalAssignmentRepository creates a new GormExternalAssignmentRepository
func NewGormExternalAssignmentRepository(db *gorm.DB) *GormExternalAssignmentRepository {
	return &GormExternalAssignmentRepository{db: db}
}

// Save inserts a new external assignment anchor
func (r *GormExternalAssignmentRepository) Save(ctx context.Context, assignment *ledger.ExternalItemAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

// Delete removes an anchor. The cascade drops its ledger rows, and the
// balance trigger still vets the result, so removing a positive anchor that
// is already spoken for fails rather than leaving a negative item.
func (r *GormExternalAssignmentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&ledger.ExternalItemAssignment{}, "id = ?", id)
	if result.Error != nil {
		return false, translateLedgerError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Ensure GormExternalAssignmentRepository implements ExternalAssignmentRepository
var _ ledger.ExternalAssignmentRepository = (*GormExternalAssignmentRepository)(nil)
