package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smartbill/backend/internal/domain/shared"
)

// DefaultMinThreshold is the low-stock threshold applied when none is configured
const DefaultMinThreshold = 5

// Product represents an item in the shop catalog
type Product struct {
	shared.BaseEntity
	Name         string          `gorm:"type:varchar(200);not null;index"`
	Category     string          `gorm:"type:varchar(100);not null;index"`
	Brand        string          `gorm:"type:varchar(100)"`
	Model        string          `gorm:"type:varchar(100)"`
	Price        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	GSTRate      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Quantity     int             `gorm:"not null;default:0"`
	MinThreshold int             `gorm:"not null;default:0"`
	Description  string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new catalog product
func NewProduct(name, category string, price decimal.Decimal, quantity int) (*Product, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		Category:   strings.TrimSpace(category),
		Price:      price,
		Quantity:   quantity,
	}, nil
}

// Update replaces the product's editable fields
func (p *Product) Update(name, category, brand, model, description string, price, gstRate decimal.Decimal, quantity, minThreshold int) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateCategory(category); err != nil {
		return err
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if gstRate.IsNegative() || gstRate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_GST_RATE", "GST rate must be between 0 and 100")
	}
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if minThreshold < 0 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Minimum threshold cannot be negative")
	}

	p.Name = strings.TrimSpace(name)
	p.Category = strings.TrimSpace(category)
	p.Brand = strings.TrimSpace(brand)
	p.Model = strings.TrimSpace(model)
	p.Description = description
	p.Price = price
	p.GSTRate = gstRate
	p.Quantity = quantity
	p.MinThreshold = minThreshold
	p.Touch()

	return nil
}

// SetGSTRate sets the GST percentage applied per sale line
func (p *Product) SetGSTRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_GST_RATE", "GST rate must be between 0 and 100")
	}
	p.GSTRate = rate
	p.Touch()
	return nil
}

// SetMinThreshold sets the low-stock alert threshold
func (p *Product) SetMinThreshold(threshold int) error {
	if threshold < 0 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Minimum threshold cannot be negative")
	}
	p.MinThreshold = threshold
	p.Touch()
	return nil
}

// DeductStock removes sold units, failing when stock is insufficient
func (p *Product) DeductStock(qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Deduction quantity must be positive")
	}
	if p.Quantity < qty {
		return shared.ErrInsufficientStock
	}
	p.Quantity -= qty
	p.Touch()
	return nil
}

// AddStock adds received units
func (p *Product) AddStock(qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Received quantity must be positive")
	}
	p.Quantity += qty
	p.Touch()
	return nil
}

// EffectiveThreshold returns MinThreshold, or the default when unset
func (p *Product) EffectiveThreshold() int {
	if p.MinThreshold <= 0 {
		return DefaultMinThreshold
	}
	return p.MinThreshold
}

// IsLowStock reports whether the quantity has fallen to or below the threshold
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.EffectiveThreshold()
}

// Matches reports whether the product matches a case-insensitive search term
// against name, category, or brand
func (p *Product) Matches(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Category), term) ||
		strings.Contains(strings.ToLower(p.Brand), term)
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validateCategory(category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot be empty")
	}
	if len(category) > 100 {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot exceed 100 characters")
	}
	return nil
}
