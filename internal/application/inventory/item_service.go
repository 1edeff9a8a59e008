package inventory

import (
	"context"
	"errors"
	"strings"

	appledger "github.com/stockroom/backend/internal/application/ledger"
	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SearchResultLimit caps typeahead lookups
const SearchResultLimit = 10

// DeletionIDMissing and DeletionIDActive are the sentinel values of
// GetDeletionID for items that do not exist or are not deleted.
const (
	DeletionIDMissing int64 = -1
	DeletionIDActive  int64 = 0
)

// SearchCache caches typeahead search results. Implementations live in the
// infrastructure layer; a nil cache disables caching.
type SearchCache interface {
	Get(ctx context.Context, query string) ([]inventory.ItemWithCount, bool, error)
	Set(ctx context.Context, query string, rows []inventory.ItemWithCount) error
	Invalidate(ctx context.Context) error
}

// ItemService handles item lifecycle and count adjustments. Every mutation
// that touches the ledger runs inside a transaction scope so the balance
// trigger vets the whole group of writes.
type ItemService struct {
	itemRepo       inventory.ItemRepository
	txScope        appledger.TransactionScope
	searchCache    SearchCache
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo inventory.ItemRepository, txScope appledger.TransactionScope) *ItemService {
	return &ItemService{
		itemRepo: itemRepo,
		txScope:  txScope,
		logger:   zap.NewNop(),
	}
}

// SetSearchCache sets the typeahead search cache
func (s *ItemService) SetSearchCache(cache SearchCache) {
	s.searchCache = cache
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ItemService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetLogger sets the service logger
func (s *ItemService) SetLogger(logger *zap.Logger) {
	s.logger = logger
}

// List returns all non-deleted items with their derived counts
func (s *ItemService) List(ctx context.Context) ([]ItemResponse, error) {
	rows, err := s.itemRepo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	return ToItemResponses(rows), nil
}

// ListDeleted returns all soft-deleted items with their deletion records
func (s *ItemService) ListDeleted(ctx context.Context) ([]DeletedItemResponse, error) {
	rows, err := s.itemRepo.FindAllDeleted(ctx)
	if err != nil {
		return nil, err
	}
	return ToDeletedItemResponses(rows), nil
}

// Get returns a single non-deleted item with its derived count.
// A deleted or unknown ID yields shared.ErrNotFound.
func (s *ItemService) Get(ctx context.Context, id int64) (*ItemResponse, error) {
	row, err := s.itemRepo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToItemResponse(row)
	return &response, nil
}

// Search returns non-deleted items whose name contains the query,
// case-insensitive, capped at SearchResultLimit rows
func (s *ItemService) Search(ctx context.Context, query string) ([]ItemResponse, error) {
	query = strings.TrimSpace(query)

	if s.searchCache != nil {
		if rows, hit, err := s.searchCache.Get(ctx, query); err == nil && hit {
			return ToItemResponses(rows), nil
		} else if err != nil {
			s.logger.Warn("search cache read failed", zap.Error(err))
		}
	}

	rows, err := s.itemRepo.SearchActiveByName(ctx, query, SearchResultLimit)
	if err != nil {
		return nil, err
	}

	if s.searchCache != nil {
		if err := s.searchCache.Set(ctx, query, rows); err != nil {
			s.logger.Warn("search cache write failed", zap.Error(err))
		}
	}
	return ToItemResponses(rows), nil
}

// GetDeletionID reports the deletion state of an item: DeletionIDMissing
// when no such item exists, DeletionIDActive when the item is not deleted,
// and the positive deletion record ID otherwise.
func (s *ItemService) GetDeletionID(ctx context.Context, id int64) (int64, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return DeletionIDMissing, nil
		}
		return 0, err
	}
	if item.DeletionID == nil {
		return DeletionIDActive, nil
	}
	return *item.DeletionID, nil
}

// Create creates an item together with the externally anchored ledger row
// carrying its initial count. All three writes commit or roll back as one.
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	if req.Count < 0 {
		return nil, shared.NewDomainError("INVALID_COUNT", "Initial count cannot be negative")
	}

	item, err := inventory.NewItem(req.Name)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos appledger.TransactionalRepositories) error {
		if err := repos.ItemRepo().Save(ctx, item); err != nil {
			return err
		}
		_, err := appledger.CreateExternalAdjustment(ctx, repos, item.ID, req.Count)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidateSearchCache(ctx)
	s.publish(ctx, inventory.NewItemCreatedEvent(item, req.Count))

	return &ItemResponse{ID: item.ID, Name: item.Name, Count: req.Count}, nil
}

// Update applies any combination of a count change, a rename, and a deletion
// reference to an existing item. A count change is recorded as a new
// externally anchored ledger row; the stored history is never rewritten.
func (s *ItemService) Update(ctx context.Context, id int64, req UpdateItemRequest) (*ItemResponse, error) {
	if req.CountChange == nil && req.Name == nil && req.DeletionID == nil {
		return nil, shared.ErrInvalidInput
	}

	var events []shared.DomainEvent
	err := s.txScope.Execute(ctx, func(repos appledger.TransactionalRepositories) error {
		item, err := repos.ItemRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}

		if req.CountChange != nil && *req.CountChange != 0 {
			if _, err := appledger.CreateExternalAdjustment(ctx, repos, item.ID, *req.CountChange); err != nil {
				return err
			}
			events = append(events, inventory.NewCountAdjustedEvent(item.ID, *req.CountChange))
		}

		changed := false
		if req.Name != nil {
			if err := item.Rename(*req.Name); err != nil {
				return err
			}
			events = append(events, inventory.NewItemRenamedEvent(item))
			changed = true
		}
		if req.DeletionID != nil {
			// must reference an existing deletion record, the FK would
			// reject it anyway but this yields a clean domain error
			if _, err := repos.DeletionRepo().FindByID(ctx, *req.DeletionID); err != nil {
				return err
			}
			item.DeletionID = req.DeletionID
			changed = true
		}
		if changed {
			if err := repos.ItemRepo().Save(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateSearchCache(ctx)
	s.publish(ctx, events...)

	return s.fetchAnyState(ctx, id)
}

// Delete soft-deletes an item by attaching a fresh deletion record.
// Deleting an already deleted or unknown item fails the precondition.
func (s *ItemService) Delete(ctx context.Context, id int64, req DeleteItemRequest) (*DeletedItemResponse, error) {
	deletion, err := inventory.NewDeletion(req.Comment)
	if err != nil {
		return nil, err
	}
	var itemName string
	var count int64

	err = s.txScope.Execute(ctx, func(repos appledger.TransactionalRepositories) error {
		item, err := repos.ItemRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if item.IsDeleted() {
			return shared.ErrItemDeleted
		}

		if err := repos.DeletionRepo().Save(ctx, deletion); err != nil {
			return err
		}
		if err := item.MarkDeleted(deletion.ID); err != nil {
			return err
		}
		if err := repos.ItemRepo().Save(ctx, item); err != nil {
			return err
		}

		itemName = item.Name
		count, err = repos.AssignmentRepo().SumByItem(ctx, item.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidateSearchCache(ctx)
	s.publish(ctx, inventory.NewItemDeletedEvent(id, deletion))

	return &DeletedItemResponse{
		ID:         id,
		Name:       itemName,
		Count:      count,
		DeletionID: deletion.ID,
		Comment:    deletion.Comment,
	}, nil
}

// Restore brings a soft-deleted item back by removing its deletion record.
// The store nulls the item's reference through the FK. Restoring an item
// that is not deleted fails the precondition.
func (s *ItemService) Restore(ctx context.Context, id int64) (*ItemResponse, error) {
	var deletionID int64
	err := s.txScope.Execute(ctx, func(repos appledger.TransactionalRepositories) error {
		item, err := repos.ItemRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !item.IsDeleted() {
			return shared.ErrItemNotDeleted
		}

		deletionID = *item.DeletionID
		deleted, err := repos.DeletionRepo().Delete(ctx, deletionID)
		if err != nil {
			return err
		}
		if !deleted {
			return shared.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateSearchCache(ctx)
	s.publish(ctx, inventory.NewItemRestoredEvent(id, deletionID))

	return s.Get(ctx, id)
}

// fetchAnyState loads an item regardless of deletion state, with its count
func (s *ItemService) fetchAnyState(ctx context.Context, id int64) (*ItemResponse, error) {
	if row, err := s.itemRepo.FindActiveByID(ctx, id); err == nil {
		response := ToItemResponse(row)
		return &response, nil
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	// deleted items still resolve through the raw row
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ItemResponse{ID: item.ID, Name: item.Name}, nil
}

func (s *ItemService) invalidateSearchCache(ctx context.Context) {
	if s.searchCache == nil {
		return
	}
	if err := s.searchCache.Invalidate(ctx); err != nil {
		s.logger.Warn("search cache invalidation failed", zap.Error(err))
	}
}

func (s *ItemService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	// errors are logged by the event bus, not propagated
	_ = s.eventPublisher.Publish(ctx, events...)
}
