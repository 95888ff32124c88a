package shipping

import (
	"context"

	"github.com/shipflow/backend/internal/domain/shipping"
)

// TransactionScope provides transactional access to the shipping
// repositories. Every provisioning and sync operation runs as exactly one
// Execute call: all nested reads and writes commit or roll back as a unit,
// and an abort leaves no partial state behind.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all shipping repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// MethodRepo returns the shipping method repository scoped to the current transaction
	MethodRepo() shipping.MethodRepository
	// StoreMethodRepo returns the store method repository scoped to the current transaction
	StoreMethodRepo() shipping.StoreMethodRepository
	// ZoneRepo returns the zone repository scoped to the current transaction
	ZoneRepo() shipping.ZoneRepository
	// RateRepo returns the rate repository scoped to the current transaction
	RateRepo() shipping.RateRepository
	// UpdateLogRepo returns the zone update log repository scoped to the current transaction
	UpdateLogRepo() shipping.UpdateLogRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support is
// not required.
type NoOpTransactionScope struct {
	methodRepo      shipping.MethodRepository
	storeMethodRepo shipping.StoreMethodRepository
	zoneRepo        shipping.ZoneRepository
	rateRepo        shipping.RateRepository
	updateLogRepo   shipping.UpdateLogRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	methodRepo shipping.MethodRepository,
	storeMethodRepo shipping.StoreMethodRepository,
	zoneRepo shipping.ZoneRepository,
	rateRepo shipping.RateRepository,
	updateLogRepo shipping.UpdateLogRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		methodRepo:      methodRepo,
		storeMethodRepo: storeMethodRepo,
		zoneRepo:        zoneRepo,
		rateRepo:        rateRepo,
		updateLogRepo:   updateLogRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// MethodRepo returns the shipping method repository.
func (s *NoOpTransactionScope) MethodRepo() shipping.MethodRepository {
	return s.methodRepo
}

// StoreMethodRepo returns the store method repository.
func (s *NoOpTransactionScope) StoreMethodRepo() shipping.StoreMethodRepository {
	return s.storeMethodRepo
}

// ZoneRepo returns the zone repository.
func (s *NoOpTransactionScope) ZoneRepo() shipping.ZoneRepository {
	return s.zoneRepo
}

// RateRepo returns the rate repository.
func (s *NoOpTransactionScope) RateRepo() shipping.RateRepository {
	return s.rateRepo
}

// UpdateLogRepo returns the zone update log repository.
func (s *NoOpTransactionScope) UpdateLogRepo() shipping.UpdateLogRepository {
	return s.updateLogRepo
}
