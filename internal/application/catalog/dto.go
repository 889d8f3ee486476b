package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartbill/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=200"`
	Category     string          `json:"category" binding:"required,min=1,max=100"`
	Brand        string          `json:"brand" binding:"max=100"`
	Model        string          `json:"model" binding:"max=100"`
	Price        decimal.Decimal `json:"price"`
	GSTRate      decimal.Decimal `json:"gstRate"`
	Quantity     int             `json:"quantity" binding:"min=0"`
	MinThreshold int             `json:"minThreshold" binding:"min=0"`
	Description  string          `json:"description" binding:"max=2000"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=200"`
	Category     string          `json:"category" binding:"required,min=1,max=100"`
	Brand        string          `json:"brand" binding:"max=100"`
	Model        string          `json:"model" binding:"max=100"`
	Price        decimal.Decimal `json:"price"`
	GSTRate      decimal.Decimal `json:"gstRate"`
	Quantity     int             `json:"quantity" binding:"min=0"`
	MinThreshold int             `json:"minThreshold" binding:"min=0"`
	Description  string          `json:"description" binding:"max=2000"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Brand    string `form:"brand"`
	InStock  *bool  `form:"in_stock"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Brand        string          `json:"brand"`
	Model        string          `json:"model"`
	Price        decimal.Decimal `json:"price"`
	GSTRate      decimal.Decimal `json:"gstRate"`
	Quantity     int             `json:"quantity"`
	MinThreshold int             `json:"minThreshold"`
	LowStock     bool            `json:"lowStock"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		Brand:        p.Brand,
		Model:        p.Model,
		Price:        p.Price,
		GSTRate:      p.GSTRate,
		Quantity:     p.Quantity,
		MinThreshold: p.MinThreshold,
		LowStock:     p.IsLowStock(),
		Description:  p.Description,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
