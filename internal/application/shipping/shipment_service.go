package shipping

import (
	"context"

	appinv "github.com/stockroom/backend/internal/application/inventory"
	appledger "github.com/stockroom/backend/internal/application/ledger"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/domain/shipping"
	"go.uber.org/zap"
)

// ShipmentService handles shipment lifecycle. Reserved counts live in the
// ledger as negative rows owned by the shipment; this service composes the
// writes and the assignment engine owns row-level semantics.
type ShipmentService struct {
	shipmentRepo      shipping.ShipmentRepository
	txScope           appledger.TransactionScope
	assignmentService *appledger.AssignmentService
	searchCache       appinv.SearchCache
	eventPublisher    shared.EventPublisher
	logger            *zap.Logger
}

// NewShipmentService creates a new ShipmentService
func NewShipmentService(
	shipmentRepo shipping.ShipmentRepository,
	txScope appledger.TransactionScope,
	assignmentService *appledger.AssignmentService,
) *ShipmentService {
	return &ShipmentService{
		shipmentRepo:      shipmentRepo,
		txScope:           txScope,
		assignmentService: assignmentService,
		logger:            zap.NewNop(),
	}
}

// SetSearchCache sets the item search cache invalidated by ledger writes
func (s *ShipmentService) SetSearchCache(cache appinv.SearchCache) {
	s.searchCache = cache
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ShipmentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetLogger sets the service logger
func (s *ShipmentService) SetLogger(logger *zap.Logger) {
	s.logger = logger
}

// List returns all shipments with their reserved lines
func (s *ShipmentService) List(ctx context.Context) ([]ShipmentResponse, error) {
	shipments, err := s.shipmentRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]ShipmentResponse, 0, len(shipments))
	for i := range shipments {
		items, err := s.shipmentRepo.FindItems(ctx, shipments[i].ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, ToShipmentResponse(&shipments[i], items))
	}
	return responses, nil
}

// Get returns a single shipment with its reserved lines
func (s *ShipmentService) Get(ctx context.Context, id int64) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.shipmentRepo.FindItems(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToShipmentResponse(shipment, items)
	return &response, nil
}

// Create creates a shipment and one reservation per requested line in a
// single transaction. If any line would overdraw its item, the balance
// trigger rejects it and nothing is written.
func (s *ShipmentService) Create(ctx context.Context, req CreateShipmentRequest) (*ShipmentResponse, error) {
	shipment, err := shipping.NewShipment(req.Name, req.Source, req.Destination)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos appledger.TransactionalRepositories) error {
		if err := repos.ShipmentRepo().Save(ctx, shipment); err != nil {
			return err
		}
		for _, line := range req.Items {
			// reject lines pointing at deleted or unknown items before
			// the ledger write
			if _, err := repos.ItemRepo().FindActiveByID(ctx, line.ItemID); err != nil {
				return err
			}
			if _, err := appledger.CreateShipmentReservation(ctx, repos, shipment.ID, line.ItemID, line.Count); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateSearchCache(ctx)

	items, err := s.shipmentRepo.FindItems(ctx, shipment.ID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, shipping.NewShipmentCreatedEvent(shipment, items))

	response := ToShipmentResponse(shipment, items)
	return &response, nil
}

// Update changes shipment metadata only. Reserved lines are managed through
// UpdateItem and DeleteItem.
func (s *ShipmentService) Update(ctx context.Context, id int64, req UpdateShipmentRequest) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := shipment.UpdateDetails(req.Name, req.Source, req.Destination); err != nil {
		return nil, err
	}
	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}

	s.publish(ctx, shipping.NewShipmentUpdatedEvent(shipment))

	items, err := s.shipmentRepo.FindItems(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToShipmentResponse(shipment, items)
	return &response, nil
}

// Delete removes a shipment. The cascade drops its reservations, restoring
// the reserved counts to availability. Returns false without error when no
// such shipment exists.
func (s *ShipmentService) Delete(ctx context.Context, id int64) (bool, error) {
	released, err := s.shipmentRepo.FindItems(ctx, id)
	if err != nil {
		return false, err
	}

	deleted, err := s.shipmentRepo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, nil
	}

	s.invalidateSearchCache(ctx)
	s.publish(ctx, shipping.NewShipmentDeletedEvent(id, released))
	return true, nil
}

// UpdateItem replaces the reserved count of one shipment line. The count is
// a positive magnitude; the ledger stores its negation. Returns false
// without error when the line does not exist.
func (s *ShipmentService) UpdateItem(ctx context.Context, shipmentID, itemID, count int64) (bool, error) {
	if count <= 0 {
		return false, shared.NewDomainError("INVALID_COUNT", "Reserved count must be positive")
	}

	updated, err := s.assignmentService.UpdateShipmentAssignment(ctx, shipmentID, itemID, -count)
	if err != nil {
		return false, err
	}
	if updated {
		s.invalidateSearchCache(ctx)
	}
	return updated, nil
}

// DeleteItem removes one shipment line, releasing its reserved count.
// Returns false without error when the line does not exist.
func (s *ShipmentService) DeleteItem(ctx context.Context, shipmentID, itemID int64) (bool, error) {
	deleted, err := s.assignmentService.DeleteShipmentAssignment(ctx, shipmentID, itemID)
	if err != nil {
		return false, err
	}
	if deleted {
		s.invalidateSearchCache(ctx)
	}
	return deleted, nil
}

func (s *ShipmentService) invalidateSearchCache(ctx context.Context) {
	if s.searchCache == nil {
		return
	}
	if err := s.searchCache.Invalidate(ctx); err != nil {
		s.logger.Warn("search cache invalidation failed", zap.Error(err))
	}
}

func (s *ShipmentService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}
