package persistence

import (
	"context"
	"errors"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// itemCountSelect joins items with the sum of their ledger rows. Counts are
// derived on read; there is no stored count column to drift.
const itemCountSelect = "items.id, items.name, COALESCE(SUM(item_assignments.assigned_count), 0) AS count"

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an item row by ID regardless of deletion state
func (r *GormItemRepository) FindByID(ctx context.Context, id int64) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindActiveByID finds a non-deleted item with its derived count
func (r *GormItemRepository) FindActiveByID(ctx context.Context, id int64) (*inventory.ItemWithCount, error) {
	var row inventory.ItemWithCount
	err := r.db.WithContext(ctx).Model(&inventory.Item{}).
		Select(itemCountSelect).
		Joins("LEFT JOIN item_assignments ON item_assignments.item_id = items.id").
		Where("items.id = ? AND items.deletion_id IS NULL", id).
		Group("items.id, items.name").
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// FindAllActive lists all non-deleted items with derived counts
func (r *GormItemRepository) FindAllActive(ctx context.Context) ([]inventory.ItemWithCount, error) {
	rows := make([]inventory.ItemWithCount, 0)
	err := r.db.WithContext(ctx).Model(&inventory.Item{}).
		Select(itemCountSelect).
		Joins("LEFT JOIN item_assignments ON item_assignments.item_id = items.id").
		Where("items.deletion_id IS NULL").
		Group("items.id, items.name").
		Order("items.id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindAllDeleted lists all soft-deleted items with their deletion records
func (r *GormItemRepository) FindAllDeleted(ctx context.Context) ([]inventory.DeletedItemRow, error) {
	rows := make([]inventory.DeletedItemRow, 0)
	err := r.db.WithContext(ctx).Model(&inventory.Item{}).
		Select("items.id, items.name, COALESCE(SUM(item_assignments.assigned_count), 0) AS count, items.deletion_id, deletions.comment").
		Joins("LEFT JOIN item_assignments ON item_assignments.item_id = items.id").
		Joins("JOIN deletions ON deletions.id = items.deletion_id").
		Where("items.deletion_id IS NOT NULL").
		Group("items.id, items.name, items.deletion_id, deletions.comment").
		Order("items.id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SearchActiveByName finds non-deleted items whose name contains the query,
// case-insensitive, capped at limit rows
func (r *GormItemRepository) SearchActiveByName(ctx context.Context, query string, limit int) ([]inventory.ItemWithCount, error) {
	rows := make([]inventory.ItemWithCount, 0)
	err := r.db.WithContext(ctx).Model(&inventory.Item{}).
		Select(itemCountSelect).
		Joins("LEFT JOIN item_assignments ON item_assignments.item_id = items.id").
		Where("items.deletion_id IS NULL AND LOWER(items.name) LIKE LOWER(?)", "%"+query+"%").
		Group("items.id, items.name").
		Order("items.id").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Save creates or updates an item row
func (r *GormItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Ensure GormItemRepository implements ItemRepository
var _ inventory.ItemRepository = (*GormItemRepository)(nil)
