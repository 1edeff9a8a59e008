package ledger

import (
	"context"

	"github.com/stockroom/backend/internal/domain/ledger"
	"github.com/stockroom/backend/internal/domain/shared"
)

// AssignmentService is the only writer of ledger rows. It never checks
// balances itself; the store's balance trigger does, atomically with the
// write, and the repositories surface a violation as
// shared.ErrAssignedCountExceedsAvailable.
type AssignmentService struct {
	txScope TransactionScope
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(txScope TransactionScope) *AssignmentService {
	return &AssignmentService{txScope: txScope}
}

// UpdateShipmentAssignment replaces the assigned count of the reservation
// row identified by shipment and item. Returns false without error when no
// such row exists.
func (s *AssignmentService) UpdateShipmentAssignment(ctx context.Context, shipmentID, itemID, count int64) (bool, error) {
	if shipmentID <= 0 || itemID <= 0 {
		return false, shared.ErrInvalidInput
	}

	var updated bool
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		updated, err = repos.AssignmentRepo().UpdateCountByShipmentAndItem(ctx, shipmentID, itemID, count)
		return err
	})
	if err != nil {
		return false, err
	}
	return updated, nil
}

// DeleteShipmentAssignment removes the reservation row identified by
// shipment and item, releasing the reserved count. Returns false without
// error when no such row exists.
func (s *AssignmentService) DeleteShipmentAssignment(ctx context.Context, shipmentID, itemID int64) (bool, error) {
	if shipmentID <= 0 || itemID <= 0 {
		return false, shared.ErrInvalidInput
	}

	var deleted bool
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		deleted, err = repos.AssignmentRepo().DeleteByShipmentAndItem(ctx, shipmentID, itemID)
		return err
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// CreateShipmentReservation writes the reservation row for a shipment-item
// pair plus its link row, inside the caller's transaction. The reserved
// count is stored negated.
func CreateShipmentReservation(ctx context.Context, repos TransactionalRepositories, shipmentID, itemID, count int64) (*ledger.Assignment, error) {
	if count <= 0 {
		return nil, shared.NewDomainError("INVALID_COUNT", "Reserved count must be positive")
	}

	assignment, err := ledger.NewShipmentAssignment(itemID, shipmentID, -count)
	if err != nil {
		return nil, err
	}
	if err := repos.AssignmentRepo().Save(ctx, assignment); err != nil {
		return nil, err
	}

	link := &ledger.ShipmentAssignmentLink{
		ShipmentID:   shipmentID,
		AssignmentID: assignment.ID,
	}
	if err := repos.AssignmentRepo().SaveLink(ctx, link); err != nil {
		return nil, err
	}
	return assignment, nil
}

// CreateExternalAdjustment writes an externally anchored ledger row for an
// item, inside the caller's transaction. Positive counts add availability,
// negative counts consume it.
func CreateExternalAdjustment(ctx context.Context, repos TransactionalRepositories, itemID, count int64) (*ledger.Assignment, error) {
	anchor := ledger.NewExternalItemAssignment()
	if err := repos.ExternalAssignmentRepo().Save(ctx, anchor); err != nil {
		return nil, err
	}

	assignment, err := ledger.NewExternalAssignment(itemID, anchor.ID, count)
	if err != nil {
		return nil, err
	}
	if err := repos.AssignmentRepo().Save(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}
