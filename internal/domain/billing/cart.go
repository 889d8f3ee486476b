package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartbill/backend/internal/domain/shared"
)

// CartLine is a product staged for billing
type CartLine struct {
	ProductID  uuid.UUID       `json:"productId"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	GSTRate    decimal.Decimal `json:"gstRate"`
	Quantity   int             `json:"quantity"`
	ImeiSerial string          `json:"imeiSerial,omitempty"`
}

// Cart accumulates lines before a sale is committed. Adding a product that
// is already present merges into the existing line instead of appending.
type Cart struct {
	Lines []CartLine
}

// NewCart returns an empty cart
func NewCart() *Cart {
	return &Cart{}
}

// Add merges qty units of a product into the cart
func (c *Cart) Add(line CartLine) error {
	if line.Quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == line.ProductID {
			c.Lines[i].Quantity += line.Quantity
			if line.ImeiSerial != "" {
				c.Lines[i].ImeiSerial = line.ImeiSerial
			}
			return nil
		}
	}
	c.Lines = append(c.Lines, line)
	return nil
}

// SetQuantity overwrites the quantity of an existing line
func (c *Cart) SetQuantity(productID uuid.UUID, qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = qty
			return nil
		}
	}
	return shared.ErrNotFound
}

// Remove drops the line for a product, if present
func (c *Cart) Remove(productID uuid.UUID) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Lines = nil
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Subtotal returns the pre-tax sum of all lines
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for i := range c.Lines {
		sum = sum.Add(c.Lines[i].Price.Mul(decimal.NewFromInt(int64(c.Lines[i].Quantity))))
	}
	return sum
}

// Tax returns the total GST across all lines
func (c *Cart) Tax() decimal.Decimal {
	sum := decimal.Zero
	for i := range c.Lines {
		line := c.Lines[i].Price.Mul(decimal.NewFromInt(int64(c.Lines[i].Quantity)))
		sum = sum.Add(line.Mul(c.Lines[i].GSTRate).Div(decimal.NewFromInt(100)))
	}
	return sum
}

// Total returns subtotal plus tax minus discount, floored at zero
func (c *Cart) Total(discount decimal.Decimal) decimal.Decimal {
	total := c.Subtotal().Add(c.Tax()).Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
