package inventory

import (
	"context"
)

// ItemRepository defines the interface for item persistence
type ItemRepository interface {
	// FindByID finds an item row by ID regardless of deletion state
	FindByID(ctx context.Context, id int64) (*Item, error)

	// FindActiveByID finds a non-deleted item with its derived count
	FindActiveByID(ctx context.Context, id int64) (*ItemWithCount, error)

	// FindAllActive lists all non-deleted items with derived counts
	FindAllActive(ctx context.Context) ([]ItemWithCount, error)

	// FindAllDeleted lists all soft-deleted items with their deletion records
	FindAllDeleted(ctx context.Context) ([]DeletedItemRow, error)

	// SearchActiveByName finds non-deleted items whose name contains the
	// query, case-insensitive, capped at limit rows
	SearchActiveByName(ctx context.Context, query string, limit int) ([]ItemWithCount, error)

	// Save creates or updates an item row
	Save(ctx context.Context, item *Item) error
}

// DeletionRepository defines the interface for deletion record persistence
type DeletionRepository interface {
	// FindByID finds a deletion record by ID
	FindByID(ctx context.Context, id int64) (*Deletion, error)

	// Save creates a new deletion record
	Save(ctx context.Context, deletion *Deletion) error

	// Delete removes a deletion record. The store nulls the reference on the
	// item that pointed at it. Returns false when no row matched.
	Delete(ctx context.Context, id int64) (bool, error)
}
