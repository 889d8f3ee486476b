package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartbill/backend/internal/domain/billing"
)

// BillItemRequest is a sale line in a bill creation request. Price and
// GST rate are resolved server-side from the catalog.
type BillItemRequest struct {
	ProductID  uuid.UUID `json:"productId" binding:"required"`
	Quantity   int       `json:"quantity" binding:"required,min=1"`
	ImeiSerial string    `json:"imeiSerial" binding:"max=100"`
}

// CreateBillRequest represents a request to finalize a sale
type CreateBillRequest struct {
	CustomerName    string            `json:"customerName" binding:"required,min=1,max=200"`
	CustomerMobile  string            `json:"customerMobile" binding:"required,mobile"`
	CustomerEmail   string            `json:"customerEmail" binding:"omitempty,email,max=200"`
	CustomerAddress string            `json:"customerAddress" binding:"max=500"`
	Items           []BillItemRequest `json:"items" binding:"required,min=1,dive"`
	Discount        decimal.Decimal   `json:"discount"`
	PaymentMode     string            `json:"paymentMode" binding:"required,oneof=CASH CARD UPI"`
	TransactionID   string            `json:"transactionId" binding:"max=100"`

	// SoldBy is filled from the authenticated session, never from the body
	SoldBy string `json:"-"`
}

// SalesFilter represents filter options for the sales history
type SalesFilter struct {
	Search      string     `form:"search"`
	PaymentMode string     `form:"payment_mode" binding:"omitempty,oneof=CASH CARD UPI"`
	SoldBy      string     `form:"sold_by"`
	From        *time.Time `form:"from" time_format:"2006-01-02"`
	To          *time.Time `form:"to" time_format:"2006-01-02"`
	OrderBy     string     `form:"order_by"`
	OrderDir    string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// BillItemResponse represents a sold line in API responses
type BillItemResponse struct {
	ProductID  uuid.UUID       `json:"productId"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	GSTRate    decimal.Decimal `json:"gstRate"`
	Quantity   int             `json:"quantity"`
	ImeiSerial string          `json:"imeiSerial,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
}

// BillResponse represents a bill in API responses
type BillResponse struct {
	ID              uuid.UUID          `json:"id"`
	InvoiceNo       string             `json:"invoiceNo"`
	CustomerName    string             `json:"customerName"`
	CustomerMobile  string             `json:"customerMobile"`
	CustomerEmail   string             `json:"customerEmail,omitempty"`
	CustomerAddress string             `json:"customerAddress,omitempty"`
	Items           []BillItemResponse `json:"items"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	Tax             decimal.Decimal    `json:"tax"`
	Discount        decimal.Decimal    `json:"discount"`
	Total           decimal.Decimal    `json:"total"`
	PaymentMode     string             `json:"paymentMode"`
	TransactionID   string             `json:"transactionId,omitempty"`
	SoldBy          string             `json:"soldBy"`
	BilledAt        time.Time          `json:"billedAt"`
}

// InvoicePDF carries a rendered invoice document
type InvoicePDF struct {
	InvoiceNo string
	Content   []byte
}

// ToBillResponse converts a domain Bill to BillResponse
func ToBillResponse(b *billing.Bill) BillResponse {
	items := make([]BillItemResponse, 0, len(b.Items))
	for i := range b.Items {
		item := &b.Items[i]
		items = append(items, BillItemResponse{
			ProductID:  item.ProductID,
			Name:       item.Name,
			Price:      item.Price,
			GSTRate:    item.GSTRate,
			Quantity:   item.Quantity,
			ImeiSerial: item.ImeiSerial,
			Amount:     item.LineAmount(),
		})
	}

	return BillResponse{
		ID:              b.ID,
		InvoiceNo:       b.InvoiceNo,
		CustomerName:    b.CustomerName,
		CustomerMobile:  b.CustomerMobile,
		CustomerEmail:   b.CustomerEmail,
		CustomerAddress: b.CustomerAddress,
		Items:           items,
		Subtotal:        b.Subtotal,
		Tax:             b.Tax,
		Discount:        b.Discount,
		Total:           b.Total,
		PaymentMode:     string(b.PaymentMode),
		TransactionID:   b.TransactionID,
		SoldBy:          b.SoldBy,
		BilledAt:        b.BilledAt,
	}
}
