package billing

import (
	"context"

	"github.com/smartbill/backend/internal/domain/billing"
	"github.com/smartbill/backend/internal/domain/catalog"
)

// TransactionScope provides transactional access to the repositories a
// sale touches. Stock deduction and bill persistence must commit or roll
// back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides repositories sharing one transaction
type TransactionalRepositories interface {
	ProductRepo() catalog.ProductRepository
	BillRepo() billing.BillRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests.
type NoOpTransactionScope struct {
	productRepo catalog.ProductRepository
	billRepo    billing.BillRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(productRepo catalog.ProductRepository, billRepo billing.BillRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{productRepo: productRepo, billRepo: billRepo}
}

// Execute runs the function directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// BillRepo returns the bill repository
func (s *NoOpTransactionScope) BillRepo() billing.BillRepository {
	return s.billRepo
}
