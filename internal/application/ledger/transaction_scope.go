package ledger

import (
	"context"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/ledger"
	"github.com/stockroom/backend/internal/domain/shipping"
)

// TransactionScope provides transactional access to the ledger repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically. The balance trigger fires inside that transaction, so a
// rejected ledger write aborts every sibling write with it.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories within a
// transaction. All repositories returned share the same underlying database
// transaction.
type TransactionalRepositories interface {
	// ItemRepo returns the item repository scoped to the current transaction
	ItemRepo() inventory.ItemRepository
	// DeletionRepo returns the deletion repository scoped to the current transaction
	DeletionRepo() inventory.DeletionRepository
	// AssignmentRepo returns the assignment repository scoped to the current transaction
	AssignmentRepo() ledger.AssignmentRepository
	// ExternalAssignmentRepo returns the external assignment repository scoped to the current transaction
	ExternalAssignmentRepo() ledger.ExternalAssignmentRepository
	// ShipmentRepo returns the shipment repository scoped to the current transaction
	ShipmentRepo() shipping.ShipmentRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests with mocked repositories.
type NoOpTransactionScope struct {
	itemRepo               inventory.ItemRepository
	deletionRepo           inventory.DeletionRepository
	assignmentRepo         ledger.AssignmentRepository
	externalAssignmentRepo ledger.ExternalAssignmentRepository
	shipmentRepo           shipping.ShipmentRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	itemRepo inventory.ItemRepository,
	deletionRepo inventory.DeletionRepository,
	assignmentRepo ledger.AssignmentRepository,
	externalAssignmentRepo ledger.ExternalAssignmentRepository,
	shipmentRepo shipping.ShipmentRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		itemRepo:               itemRepo,
		deletionRepo:           deletionRepo,
		assignmentRepo:         assignmentRepo,
		externalAssignmentRepo: externalAssignmentRepo,
		shipmentRepo:           shipmentRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ItemRepo returns the item repository.
func (s *NoOpTransactionScope) ItemRepo() inventory.ItemRepository {
	return s.itemRepo
}

// DeletionRepo returns the deletion repository.
func (s *NoOpTransactionScope) DeletionRepo() inventory.DeletionRepository {
	return s.deletionRepo
}

// AssignmentRepo returns the assignment repository.
func (s *NoOpTransactionScope) AssignmentRepo() ledger.AssignmentRepository {
	return s.assignmentRepo
}

// ExternalAssignmentRepo returns the external assignment repository.
func (s *NoOpTransactionScope) ExternalAssignmentRepo() ledger.ExternalAssignmentRepository {
	return s.externalAssignmentRepo
}

// ShipmentRepo returns the shipment repository.
func (s *NoOpTransactionScope) ShipmentRepo() shipping.ShipmentRepository {
	return s.shipmentRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
