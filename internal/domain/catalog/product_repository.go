package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartbill/backend/internal/domain/shared"
)

// ProductRepository defines the persistence contract for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Product, error)
	FindLowStock(ctx context.Context) ([]*Product, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeductStock atomically decrements a product's quantity, returning
	// shared.ErrInsufficientStock when fewer than qty units remain
	DeductStock(ctx context.Context, id uuid.UUID, qty int) error
}
