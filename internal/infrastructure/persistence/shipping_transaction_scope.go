package persistence

import (
	"context"

	"gorm.io/gorm"

	appshipping "github.com/shipflow/backend/internal/application/shipping"
	"github.com/shipflow/backend/internal/domain/shipping"
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
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appshipping.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// MethodRepo returns the shipping method repository scoped to the current transaction.
func (r *gormTransactionalRepositories) MethodRepo() shipping.MethodRepository {
	return NewGormShippingMethodRepository(r.tx)
}

// StoreMethodRepo returns the store method repository scoped to the current transaction.
func (r *gormTransactionalRepositories) StoreMethodRepo() shipping.StoreMethodRepository {
	return NewGormStoreShippingMethodRepository(r.tx)
}

// ZoneRepo returns the zone repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ZoneRepo() shipping.ZoneRepository {
	return NewGormShippingZoneRepository(r.tx)
}

// RateRepo returns the rate repository scoped to the current transaction.
func (r *gormTransactionalRepositories) RateRepo() shipping.RateRepository {
	return NewGormShippingRateRepository(r.tx)
}

// UpdateLogRepo returns the zone update log repository scoped to the current transaction.
func (r *gormTransactionalRepositories) UpdateLogRepo() shipping.UpdateLogRepository {
	return NewGormZoneUpdateLogRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appshipping.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appshipping.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
