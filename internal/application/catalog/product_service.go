package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartbill/backend/internal/domain/catalog"
	"github.com/smartbill/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles catalog business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.Category, req.Price, req.Quantity)
	if err != nil {
		return nil, err
	}

	product.Brand = req.Brand
	product.Model = req.Model
	product.Description = req.Description
	if err := product.SetGSTRate(req.GSTRate); err != nil {
		return nil, err
	}
	if err := product.SetMinThreshold(req.MinThreshold); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to save product", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create product")
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name))

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID returns a single product
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List returns products matching the filter
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, error) {
	f := shared.NewFilter().WithSearch(filter.Search)
	f.OrderBy = filter.OrderBy
	f.OrderDir = filter.OrderDir
	if filter.Category != "" {
		f = f.WithFilter("category", filter.Category)
	}
	if filter.Brand != "" {
		f = f.WithFilter("brand", filter.Brand)
	}
	if filter.InStock != nil {
		f = f.WithFilter("in_stock", *filter.InStock)
	}

	products, err := s.productRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, ToProductResponse(p))
	}
	return responses, nil
}

// Update replaces a product's editable fields
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Category, req.Brand, req.Model, req.Description,
		req.Price, req.GSTRate, req.Quantity, req.MinThreshold); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to update product", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update product")
	}

	s.logger.Info("Product updated", zap.String("product_id", product.ID.String()))

	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}
	s.logger.Info("Product deleted", zap.String("product_id", productID.String()))
	return nil
}

// LowStock returns products at or below their alert threshold
func (s *ProductService) LowStock(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, ToProductResponse(p))
	}
	return responses, nil
}
