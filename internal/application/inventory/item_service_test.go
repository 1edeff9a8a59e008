package inventory

import (
	"context"
	"sync"
	"testing"

	appledger "github.com/stockroom/backend/internal/application/ledger"
	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/ledger"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockItemRepository is a mock implementation of inventory.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id int64) (*inventory.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindActiveByID(ctx context.Context, id int64) (*inventory.ItemWithCount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.ItemWithCount), args.Error(1)
}

func (m *MockItemRepository) FindAllActive(ctx context.Context) ([]inventory.ItemWithCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.ItemWithCount), args.Error(1)
}

func (m *MockItemRepository) FindAllDeleted(ctx context.Context) ([]inventory.DeletedItemRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.DeletedItemRow), args.Error(1)
}

func (m *MockItemRepository) SearchActiveByName(ctx context.Context, query string, limit int) ([]inventory.ItemWithCount, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.ItemWithCount), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// MockDeletionRepository is a mock implementation of inventory.DeletionRepository
type MockDeletionRepository struct {
	mock.Mock
}

func (m *MockDeletionRepository) FindByID(ctx context.Context, id int64) (*inventory.Deletion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Deletion), args.Error(1)
}

func (m *MockDeletionRepository) Save(ctx context.Context, deletion *inventory.Deletion) error {
	args := m.Called(ctx, deletion)
	return args.Error(0)
}

func (m *MockDeletionRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockAssignmentRepository is a mock implementation of ledger.AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) Save(ctx context.Context, assignment *ledger.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) UpdateCountByShipmentAndItem(ctx context.Context, shipmentID, itemID, count int64) (bool, error) {
	args := m.Called(ctx, shipmentID, itemID, count)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssignmentRepository) DeleteByShipmentAndItem(ctx context.Context, shipmentID, itemID int64) (bool, error) {
	args := m.Called(ctx, shipmentID, itemID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssignmentRepository) SumByItem(ctx context.Context, itemID int64) (int64, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAssignmentRepository) SaveLink(ctx context.Context, link *ledger.ShipmentAssignmentLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

// MockExternalAssignmentRepository is a mock implementation of ledger.ExternalAssignmentRepository
type MockExternalAssignmentRepository struct {
	mock.Mock
}

func (m *MockExternalAssignmentRepository) Save(ctx context.Context, assignment *ledger.ExternalItemAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockExternalAssignmentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockEventPublisher captures published domain events for assertions
type MockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *MockEventPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *MockEventPublisher) GetEvents() []shared.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]shared.DomainEvent, len(p.events))
	copy(out, p.events)
	return out
}

// fakeSearchCache is an in-memory stand-in recording cache traffic
type fakeSearchCache struct {
	entries       map[string][]inventory.ItemWithCount
	sets          int
	invalidations int
}

func newFakeSearchCache() *fakeSearchCache {
	return &fakeSearchCache{entries: make(map[string][]inventory.ItemWithCount)}
}

func (c *fakeSearchCache) Get(_ context.Context, query string) ([]inventory.ItemWithCount, bool, error) {
	rows, ok := c.entries[query]
	return rows, ok, nil
}

func (c *fakeSearchCache) Set(_ context.Context, query string, rows []inventory.ItemWithCount) error {
	c.sets++
	c.entries[query] = rows
	return nil
}

func (c *fakeSearchCache) Invalidate(_ context.Context) error {
	c.invalidations++
	c.entries = make(map[string][]inventory.ItemWithCount)
	return nil
}

type itemServiceMocks struct {
	itemRepo     *MockItemRepository
	deletionRepo *MockDeletionRepository
	assignRepo   *MockAssignmentRepository
	externalRepo *MockExternalAssignmentRepository
	publisher    *MockEventPublisher
	cache        *fakeSearchCache
}

func newItemService() (*ItemService, itemServiceMocks) {
	m := itemServiceMocks{
		itemRepo:     new(MockItemRepository),
		deletionRepo: new(MockDeletionRepository),
		assignRepo:   new(MockAssignmentRepository),
		externalRepo: new(MockExternalAssignmentRepository),
		publisher:    new(MockEventPublisher),
		cache:        newFakeSearchCache(),
	}
	txScope := appledger.NewNoOpTransactionScope(m.itemRepo, m.deletionRepo, m.assignRepo, m.externalRepo, nil)
	svc := NewItemService(m.itemRepo, txScope)
	svc.SetEventPublisher(m.publisher)
	svc.SetSearchCache(m.cache)
	return svc, m
}

func activeItem(id int64, name string) *inventory.Item {
	item := &inventory.Item{Name: name}
	item.ID = id
	return item
}

func deletedItem(id int64, name string, deletionID int64) *inventory.Item {
	item := activeItem(id, name)
	item.DeletionID = &deletionID
	return item
}

func TestItemService_Create(t *testing.T) {
	t.Run("creates item with initial count", func(t *testing.T) {
		svc, m := newItemService()

		m.itemRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.Item")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*inventory.Item).ID = 7
			}).Return(nil).Once()
		m.externalRepo.On("Save", mock.Anything, mock.AnythingOfType("*ledger.ExternalItemAssignment")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*ledger.ExternalItemAssignment).ID = 3
			}).Return(nil).Once()
		m.assignRepo.On("Save", mock.Anything, mock.MatchedBy(func(a *ledger.Assignment) bool {
			return a.ItemID == 7 && a.AssignedCount == 10 && !a.IsReservation()
		})).Return(nil).Once()

		resp, err := svc.Create(context.Background(), CreateItemRequest{Name: "Widget", Count: 10})

		require.NoError(t, err)
		assert.Equal(t, int64(7), resp.ID)
		assert.Equal(t, "Widget", resp.Name)
		assert.Equal(t, int64(10), resp.Count)

		events := m.publisher.GetEvents()
		require.Len(t, events, 1)
		assert.Equal(t, inventory.EventTypeItemCreated, events[0].EventType())
		assert.Equal(t, 1, m.cache.invalidations)

		m.itemRepo.AssertExpectations(t)
		m.externalRepo.AssertExpectations(t)
		m.assignRepo.AssertExpectations(t)
	})

	t.Run("rejects negative initial count", func(t *testing.T) {
		svc, _ := newItemService()

		_, err := svc.Create(context.Background(), CreateItemRequest{Name: "Widget", Count: -1})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_COUNT", domainErr.Code)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		svc, _ := newItemService()

		_, err := svc.Create(context.Background(), CreateItemRequest{Name: "   "})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_NAME", domainErr.Code)
	})
}

func TestItemService_Update(t *testing.T) {
	t.Run("rejects empty update", func(t *testing.T) {
		svc, _ := newItemService()

		_, err := svc.Update(context.Background(), 7, UpdateItemRequest{})

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("applies count change and rename together", func(t *testing.T) {
		svc, m := newItemService()
		change := int64(-3)
		name := "Gadget"

		m.itemRepo.On("FindByID", mock.Anything, int64(7)).Return(activeItem(7, "Widget"), nil).Once()
		m.externalRepo.On("Save", mock.Anything, mock.AnythingOfType("*ledger.ExternalItemAssignment")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*ledger.ExternalItemAssignment).ID = 3
			}).Return(nil).Once()
		m.assignRepo.On("Save", mock.Anything, mock.MatchedBy(func(a *ledger.Assignment) bool {
			return a.ItemID == 7 && a.AssignedCount == -3
		})).Return(nil).Once()
		m.itemRepo.On("Save", mock.Anything, mock.MatchedBy(func(item *inventory.Item) bool {
			return item.ID == 7 && item.Name == "Gadget"
		})).Return(nil).Once()
		m.itemRepo.On("FindActiveByID", mock.Anything, int64(7)).
			Return(&inventory.ItemWithCount{ID: 7, Name: "Gadget", Count: 7}, nil).Once()

		resp, err := svc.Update(context.Background(), 7, UpdateItemRequest{CountChange: &change, Name: &name})

		require.NoError(t, err)
		assert.Equal(t, "Gadget", resp.Name)
		assert.Equal(t, int64(7), resp.Count)

		events := m.publisher.GetEvents()
		require.Len(t, events, 2)
		assert.Equal(t, inventory.EventTypeCountAdjusted, events[0].EventType())
		assert.Equal(t, inventory.EventTypeItemRenamed, events[1].EventType())

		m.itemRepo.AssertExpectations(t)
	})

	t.Run("applies name and deletion reference together", func(t *testing.T) {
		svc, m := newItemService()
		name := "Gadget"
		deletionID := int64(5)
		deletion := &inventory.Deletion{Comment: "stale"}
		deletion.ID = deletionID

		m.itemRepo.On("FindByID", mock.Anything, int64(7)).Return(activeItem(7, "Widget"), nil).Once()
		m.deletionRepo.On("FindByID", mock.Anything, deletionID).Return(deletion, nil).Once()
		m.itemRepo.On("Save", mock.Anything, mock.MatchedBy(func(item *inventory.Item) bool {
			return item.Name == "Gadget" && item.DeletionID != nil && *item.DeletionID == deletionID
		})).Return(nil).Once()
		m.itemRepo.On("FindActiveByID", mock.Anything, int64(7)).Return(nil, shared.ErrNotFound).Once()
		m.itemRepo.On("FindByID", mock.Anything, int64(7)).Return(deletedItem(7, "Gadget", deletionID), nil).Once()

		resp, err := svc.Update(context.Background(), 7, UpdateItemRequest{Name: &name, DeletionID: &deletionID})

		require.NoError(t, err)
		assert.Equal(t, "Gadget", resp.Name)
		m.itemRepo.AssertExpectations(t)
		m.deletionRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown deletion reference", func(t *testing.T) {
		svc, m := newItemService()
		deletionID := int64(99)

		m.itemRepo.On("FindByID", mock.Anything, int64(7)).Return(activeItem(7, "Widget"), nil).Once()
		m.deletionRepo.On("FindByID", mock.Anything, deletionID).Return(nil, shared.ErrNotFound).Once()

		_, err := svc.Update(context.Background(), 7, UpdateItemRequest{DeletionID: &deletionID})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestItemService_Delete(t *testing.T) {
	t.Run("soft-deletes an active item", func(t *testing.T) {
		svc, m := newItemService()

		m.itemRepo.On("FindByID", mock.Anything, int64(7)).Return(activeItem(7, "Widget"), nil).Once()
		m.deletionRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.Deletion")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*inventory.Deletion).ID = 5
			}).Return(nil).Once()
		m.itemRepo.On("Save", mock.Anything, mock.MatchedBy(func(item *inventory.Item) bool {
			return item.DeletionID != nil && *item.DeletionID == 5
		})).Return(nil).Once()
		m.assignRepo.On("SumByItem", mock.Anything, int64(7)).Return(int64(4), nil).Once()

		resp, err := svc.Delete(context.Background(), 7, DeleteItemRequest{Comment: "obsolete"})

		require.NoError(t, err)
		assert.Equal(t, int64(7), resp.ID)
		assert.Equal(t, "Widget", resp.Name)
		assert.Equal(t, int64(4), resp.Count)
		assert.Equal(t, int64(5), resp.DeletionID)
		assert.Equal(t, "obsolete", resp.Comment)

		events := m.publisher.GetEvents()
		require.Len(t, events, 1)
		assert.Equal(t, inventory.EventTypeItemDeleted, events[0].EventType())

		m.itemRepo.AssertExpectations(t)
		m.deletionRepo.AssertExpectations(t)
	})

	t.Run("rejects deleting a deleted item", func(t *testing.T) {
		svc, m := newItemService()

		m.itemRepo.On("FindByID", mock.Anything, int64(7)).Return(deletedItem(7, "Widget", 5), nil).Once()

		_, err := svc.Delete(context.Background(), 7, DeleteItemRequest{Comment: "obsolete"})

		assert.ErrorIs(t, err, shared.ErrItemDeleted)
		assert.Empty(t, m.publisher.GetEvents())
	})

	t.Run("rejects a blank comment", func(t *testing.T) {
		svc, m := newItemService()

		_, err := svc.Delete(context.Background(), 7, DeleteItemRequest{Comment: "   "})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_COMMENT", domainErr.Code)
		m.itemRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown item", func(t *testing.T) {
		svc, m := newItemService()

		m.itemRepo.On("FindByID", mock.Anything, int64(99)).Return(nil, shared.ErrNotFound).Once()

		_, err := svc.Delete(context.Background(), 99, DeleteItemRequest{Comment: "obsolete"})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestItemService_Restore(t *testing.T) {
	t.Run("restores a deleted item", func(t *testing.T) {
		svc, m := newItemService()

		m.itemRepo.On("FindByID", mock.Anything, int64(7)).Return(deletedItem(7, "Widget", 5), nil).Once()
		m.deletionRepo.On("Delete", mock.Anything, int64(5)).Return(true, nil).Once()
		m.itemRepo.On("FindActiveByID", mock.Anything, int64(7)).
			Return(&inventory.ItemWithCount{ID: 7, Name: "Widget", Count: 10}, nil).Once()

		resp, err := svc.Restore(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, int64(10), resp.Count)

		events := m.publisher.GetEvents()
		require.Len(t, events, 1)
		assert.Equal(t, inventory.EventTypeItemRestored, events[0].EventType())
	})

	t.Run("rejects restoring an active item", func(t *testing.T) {
		svc, m := newItemService()

		m.itemRepo.On("FindByID", mock.Anything, int64(7)).Return(activeItem(7, "Widget"), nil).Once()

		_, err := svc.Restore(context.Background(), 7)

		assert.ErrorIs(t, err, shared.ErrItemNotDeleted)
	})
}

func TestItemService_GetDeletionID(t *testing.T) {
	svc, m := newItemService()

	m.itemRepo.On("FindByID", mock.Anything, int64(1)).Return(nil, shared.ErrNotFound).Once()
	m.itemRepo.On("FindByID", mock.Anything, int64(2)).Return(activeItem(2, "Widget"), nil).Once()
	m.itemRepo.On("FindByID", mock.Anything, int64(3)).Return(deletedItem(3, "Gadget", 5), nil).Once()

	id, err := svc.GetDeletionID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, DeletionIDMissing, id)

	id, err = svc.GetDeletionID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, DeletionIDActive, id)

	id, err = svc.GetDeletionID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
}

func TestItemService_Search(t *testing.T) {
	t.Run("miss queries the repository and fills the cache", func(t *testing.T) {
		svc, m := newItemService()
		rows := []inventory.ItemWithCount{{ID: 7, Name: "Widget", Count: 10}}

		m.itemRepo.On("SearchActiveByName", mock.Anything, "wid", SearchResultLimit).Return(rows, nil).Once()

		results, err := svc.Search(context.Background(), "  wid ")

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Widget", results[0].Name)
		assert.Equal(t, 1, m.cache.sets)
		m.itemRepo.AssertExpectations(t)
	})

	t.Run("hit skips the repository", func(t *testing.T) {
		svc, m := newItemService()
		m.cache.entries["wid"] = []inventory.ItemWithCount{{ID: 7, Name: "Widget", Count: 10}}

		results, err := svc.Search(context.Background(), "wid")

		require.NoError(t, err)
		require.Len(t, results, 1)
		m.itemRepo.AssertNotCalled(t, "SearchActiveByName", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestItemService_List(t *testing.T) {
	svc, m := newItemService()

	m.itemRepo.On("FindAllActive", mock.Anything).
		Return([]inventory.ItemWithCount{{ID: 1, Name: "Widget", Count: 10}, {ID: 2, Name: "Gadget", Count: 0}}, nil).Once()

	results, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int64(0), results[1].Count)
}
