package cache

import (
	"context"

	"github.com/stockroom/backend/internal/domain/inventory"
)

// SearchCache caches item typeahead lookups. Entries are short-lived and the
// whole cache is invalidated on any item or ledger mutation, so a hit is
// never older than the last write.
type SearchCache interface {
	// Get returns the cached rows for a query. The second return value is
	// false on a miss.
	Get(ctx context.Context, query string) ([]inventory.ItemWithCount, bool, error)

	// Set stores the rows for a query
	Set(ctx context.Context, query string, rows []inventory.ItemWithCount) error

	// Invalidate drops all cached queries
	Invalidate(ctx context.Context) error

	// Close releases cache resources
	Close() error
}
