package billing

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartbill/backend/internal/domain/shared"
)

// PaymentMode identifies how a bill was settled
type PaymentMode string

const (
	PaymentCash PaymentMode = "CASH"
	PaymentCard PaymentMode = "CARD"
	PaymentUPI  PaymentMode = "UPI"
)

var (
	mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)
	emailPattern  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Customer carries the buyer details captured at checkout. Name and
// mobile are required, email and address are optional.
type Customer struct {
	Name    string
	Mobile  string
	Email   string
	Address string
}

// BillItem is a sold line on a bill, priced at sale time
type BillItem struct {
	shared.BaseEntity
	BillID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null"`
	Name       string          `gorm:"type:varchar(200);not null"`
	Price      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	GSTRate    decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Quantity   int             `gorm:"not null"`
	ImeiSerial string          `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (BillItem) TableName() string {
	return "bill_items"
}

// LineAmount returns price * quantity for the line
func (i *BillItem) LineAmount() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// LineTax returns the GST amount for the line
func (i *BillItem) LineTax() decimal.Decimal {
	return i.LineAmount().Mul(i.GSTRate).Div(decimal.NewFromInt(100))
}

// Bill is a completed sale
type Bill struct {
	shared.BaseEntity
	InvoiceNo       string          `gorm:"type:varchar(30);uniqueIndex;not null"`
	CustomerName    string          `gorm:"type:varchar(200);not null"`
	CustomerMobile  string          `gorm:"type:varchar(20);not null;index"`
	CustomerEmail   string          `gorm:"type:varchar(200)"`
	CustomerAddress string          `gorm:"type:varchar(500)"`
	Items           []BillItem      `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Tax             decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Discount        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Total           decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentMode     PaymentMode     `gorm:"type:varchar(10);not null"`
	TransactionID   string          `gorm:"type:varchar(100)"`
	SoldBy          string          `gorm:"type:varchar(100);not null"`
	BilledAt        time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Bill) TableName() string {
	return "bills"
}

// NewBill creates a bill from its lines, computing subtotal, tax and total.
// The total is floored at zero when the discount exceeds subtotal plus tax.
func NewBill(invoiceNo string, customer Customer, items []BillItem, discount decimal.Decimal, mode PaymentMode, transactionID, soldBy string) (*Bill, error) {
	customer.Name = strings.TrimSpace(customer.Name)
	customer.Mobile = strings.TrimSpace(customer.Mobile)
	customer.Email = strings.TrimSpace(customer.Email)
	customer.Address = strings.TrimSpace(customer.Address)

	if customer.Name == "" {
		return nil, shared.NewDomainError("CUSTOMER_NAME_REQUIRED", "Customer name is required")
	}
	if customer.Mobile == "" {
		return nil, shared.NewDomainError("CUSTOMER_MOBILE_REQUIRED", "Customer mobile is required")
	}
	if !mobilePattern.MatchString(customer.Mobile) {
		return nil, shared.NewDomainError("INVALID_MOBILE", "Customer mobile must be a 10-digit number")
	}
	if customer.Email != "" && !emailPattern.MatchString(customer.Email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Customer email is not a valid address")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_BILL", "Bill must contain at least one item")
	}
	if discount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	switch mode {
	case PaymentCash, PaymentCard, PaymentUPI:
	default:
		return nil, shared.NewDomainError("INVALID_PAYMENT_MODE", fmt.Sprintf("Unsupported payment mode: %s", mode))
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
		}
	}

	b := &Bill{
		BaseEntity:      shared.NewBaseEntity(),
		InvoiceNo:       invoiceNo,
		CustomerName:    customer.Name,
		CustomerMobile:  customer.Mobile,
		CustomerEmail:   customer.Email,
		CustomerAddress: customer.Address,
		Items:           items,
		Discount:        discount,
		PaymentMode:     mode,
		TransactionID:   strings.TrimSpace(transactionID),
		SoldBy:          soldBy,
		BilledAt:        time.Now().UTC(),
	}
	for i := range b.Items {
		b.Items[i].BillID = b.ID
	}
	b.computeTotals()

	return b, nil
}

func (b *Bill) computeTotals() {
	subtotal := decimal.Zero
	tax := decimal.Zero
	for i := range b.Items {
		subtotal = subtotal.Add(b.Items[i].LineAmount())
		tax = tax.Add(b.Items[i].LineTax())
	}
	total := subtotal.Add(tax).Sub(b.Discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	b.Subtotal = subtotal.Round(2)
	b.Tax = tax.Round(2)
	b.Total = total.Round(2)
}

// UnitsSold returns the total unit count across all lines
func (b *Bill) UnitsSold() int {
	units := 0
	for i := range b.Items {
		units += b.Items[i].Quantity
	}
	return units
}
