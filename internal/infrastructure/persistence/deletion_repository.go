package persistence

import (
	"context"
	"errors"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormDeletionRepository implements DeletionRepository using GORM
type GormDeletionRepository struct {
	db *gorm.DB
}

// NewGormDeletionRepository creates a new GormDeletionRepository
func NewGormDeletionRepository(db *gorm.DB) *GormDeletionRepository {
	return &GormDeletionRepository{db: db}
}

// FindByID finds a deletion record by ID
func (r *GormDeletionRepository) FindByID(ctx context.Context, id int64) (*inventory.Deletion, error) {
	var deletion inventory.Deletion
	if err := r.db.WithContext(ctx).First(&deletion, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &deletion, nil
}

// Save creates a new deletion record
func (r *GormDeletionRepository) Save(ctx context.Context, deletion *inventory.Deletion) error {
	return r.db.WithContext(ctx).Save(deletion).Error
}

// Delete removes a deletion record. The items FK is ON DELETE SET NULL, so
// the referencing item loses its deletion mark in the same statement.
func (r *GormDeletionRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&inventory.Deletion{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Ensure GormDeletionRepository implements DeletionRepository
var _ inventory.DeletionRepository = (*GormDeletionRepository)(nil)
