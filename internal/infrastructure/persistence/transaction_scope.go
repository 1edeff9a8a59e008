package persistence

import (
	"context"

	appledger "github.com/stockroom/backend/internal/application/ledger"
	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/ledger"
	"github.com/stockroom/backend/internal/domain/shipping"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appledger.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// ItemRepo returns the item repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ItemRepo() inventory.ItemRepository {
	return NewGormItemRepository(r.tx)
}

// DeletionRepo returns the deletion repository scoped to the current transaction.
func (r *gormTransactionalRepositories) DeletionRepo() inventory.DeletionRepository {
	return NewGormDeletionRepository(r.tx)
}

// AssignmentRepo returns the assignment repository scoped to the current transaction.
func (r *gormTransactionalRepositories) AssignmentRepo() ledger.AssignmentRepository {
	return NewGormAssignmentRepository(r.tx)
}

// ExternalAssignmentRepo returns the external assignment repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ExternalAssignmentRepo() ledger.ExternalAssignmentRepository {
	return NewGormExternalAssignmentRepository(r.tx)
}

// ShipmentRepo returns the shipment repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ShipmentRepo() shipping.ShipmentRepository {
	return NewGormShipmentRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appledger.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appledger.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
