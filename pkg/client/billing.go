package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment modes accepted by the backend.
const (
	PaymentCash = "CASH"
	PaymentCard = "CARD"
	PaymentUPI  = "UPI"
)

// Cart validation errors raised before any request is sent.
var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrCustomerDetails = errors.New("customer name and mobile are required")
)

// CartLine is a product staged for sale. Price and GST rate are kept
// for display totals only; the backend re-resolves them at checkout.
type CartLine struct {
	ProductID  uuid.UUID
	Name       string
	Price      decimal.Decimal
	GSTRate    decimal.Decimal
	Quantity   int
	ImeiSerial string
}

// CheckoutDetails collects the customer and payment fields for a sale.
// Email and address are optional.
type CheckoutDetails struct {
	CustomerName    string
	CustomerMobile  string
	CustomerEmail   string
	CustomerAddress string
	Discount        decimal.Decimal
	PaymentMode     string
	TransactionID   string
}

// BillItem is a sold line as returned by the backend.
type BillItem struct {
	ProductID  uuid.UUID       `json:"productId"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	GSTRate    decimal.Decimal `json:"gstRate"`
	Quantity   int             `json:"quantity"`
	ImeiSerial string          `json:"imeiSerial,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
}

// Bill is a finalized sale.
type Bill struct {
	ID              uuid.UUID       `json:"id"`
	InvoiceNo       string          `json:"invoiceNo"`
	CustomerName    string          `json:"customerName"`
	CustomerMobile  string          `json:"customerMobile"`
	CustomerEmail   string          `json:"customerEmail,omitempty"`
	CustomerAddress string          `json:"customerAddress,omitempty"`
	Items           []BillItem      `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	Discount        decimal.Decimal `json:"discount"`
	Total           decimal.Decimal `json:"total"`
	PaymentMode     string          `json:"paymentMode"`
	TransactionID   string          `json:"transactionId,omitempty"`
	SoldBy          string          `json:"soldBy"`
	BilledAt        time.Time       `json:"billedAt"`
}

// SalesOptions narrows a sales history listing.
type SalesOptions struct {
	Search      string
	PaymentMode string
	From        string // YYYY-MM-DD
	To          string // YYYY-MM-DD
}

func (o SalesOptions) query() url.Values {
	q := url.Values{}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.PaymentMode != "" {
		q.Set("payment_mode", o.PaymentMode)
	}
	if o.From != "" {
		q.Set("from", o.From)
	}
	if o.To != "" {
		q.Set("to", o.To)
	}
	return q
}

// BillingStore holds the transient cart and talks to the billing
// endpoints. The cart lives only in this store; the backend owns all
// final amounts.
type BillingStore struct {
	client *Client
	async  asyncState

	mu       sync.Mutex
	cart     []CartLine
	lastBill *Bill
}

// State returns the status and last error of the most recent request.
func (s *BillingStore) State() (Status, error) {
	return s.async.state()
}

// AddToCart stages a product for sale. Adding a product already in the
// cart merges into the existing line by incrementing its quantity.
func (s *BillingStore) AddToCart(p Product, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].ProductID == p.ID {
			s.cart[i].Quantity += quantity
			return
		}
	}
	s.cart = append(s.cart, CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		GSTRate:   p.GSTRate,
		Quantity:  quantity,
	})
}

// RemoveFromCart drops the whole line for the given product.
func (s *BillingStore) RemoveFromCart(productID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.cart[:0]
	for _, line := range s.cart {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	s.cart = kept
}

// ClearCart empties the cart.
func (s *BillingStore) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
}

// Cart returns a snapshot of the staged lines.
func (s *BillingStore) Cart() []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CartLine(nil), s.cart...)
}

// SetImeiSerial records an IMEI or serial number on the cart line for
// the given product.
func (s *BillingStore) SetImeiSerial(productID uuid.UUID, imeiSerial string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].ProductID == productID {
			s.cart[i].ImeiSerial = imeiSerial
			return
		}
	}
}

// CartSubtotal is the display subtotal: the sum of price times quantity
// over all lines.
func (s *BillingStore) CartSubtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	subtotal := decimal.Zero
	for _, line := range s.cart {
		subtotal = subtotal.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return subtotal
}

// CartTax is the display GST: each line's amount times its GST rate.
func (s *BillingStore) CartTax() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	hundred := decimal.NewFromInt(100)
	tax := decimal.Zero
	for _, line := range s.cart {
		amount := line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		tax = tax.Add(amount.Mul(line.GSTRate).Div(hundred))
	}
	return tax
}

// CartTotal is the display total: subtotal plus GST minus the discount,
// floored at zero. The backend recomputes the authoritative amounts at
// checkout.
func (s *BillingStore) CartTotal(discount decimal.Decimal) decimal.Decimal {
	total := s.CartSubtotal().Add(s.CartTax()).Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// createBillRequest is the wire shape of a checkout.
type createBillRequest struct {
	CustomerName    string            `json:"customerName"`
	CustomerMobile  string            `json:"customerMobile"`
	CustomerEmail   string            `json:"customerEmail,omitempty"`
	CustomerAddress string            `json:"customerAddress,omitempty"`
	Items           []billItemRequest `json:"items"`
	Discount        decimal.Decimal   `json:"discount"`
	PaymentMode     string            `json:"paymentMode"`
	TransactionID   string            `json:"transactionId,omitempty"`
}

type billItemRequest struct {
	ProductID  uuid.UUID `json:"productId"`
	Quantity   int       `json:"quantity"`
	ImeiSerial string    `json:"imeiSerial,omitempty"`
}

// CreateBill submits the cart as a sale. Customer name and mobile are
// validated locally; nothing is sent when they are missing. On success
// the cart is cleared and the created bill retained for receipt display.
func (s *BillingStore) CreateBill(ctx context.Context, details CheckoutDetails) (*Bill, error) {
	if details.CustomerName == "" || details.CustomerMobile == "" {
		return nil, ErrCustomerDetails
	}

	s.mu.Lock()
	if len(s.cart) == 0 {
		s.mu.Unlock()
		return nil, ErrEmptyCart
	}
	items := make([]billItemRequest, len(s.cart))
	for i, line := range s.cart {
		items[i] = billItemRequest{
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			ImeiSerial: line.ImeiSerial,
		}
	}
	s.mu.Unlock()

	body := createBillRequest{
		CustomerName:    details.CustomerName,
		CustomerMobile:  details.CustomerMobile,
		CustomerEmail:   details.CustomerEmail,
		CustomerAddress: details.CustomerAddress,
		Items:           items,
		Discount:        details.Discount,
		PaymentMode:     details.PaymentMode,
		TransactionID:   details.TransactionID,
	}

	var bill Bill
	err := s.async.track(func() error {
		return s.client.do(ctx, http.MethodPost, "/shop/bill", nil, body, &bill)
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cart = nil
	s.lastBill = &bill
	s.mu.Unlock()
	return &bill, nil
}

// LastBill returns the most recently created bill, for receipt display.
func (s *BillingStore) LastBill() *Bill {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastBill
}

// GetBill fetches a single bill by id.
func (s *BillingStore) GetBill(ctx context.Context, id uuid.UUID) (*Bill, error) {
	var bill Bill
	err := s.async.track(func() error {
		return s.client.do(ctx, http.MethodGet, "/shop/bill/"+id.String(), nil, nil, &bill)
	})
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// GetMySales fetches the caller's bill history.
func (s *BillingStore) GetMySales(ctx context.Context, opts SalesOptions) ([]Bill, error) {
	var bills []Bill
	err := s.async.track(func() error {
		return s.client.do(ctx, http.MethodGet, "/shop/history", opts.query(), nil, &bills)
	})
	if err != nil {
		return nil, err
	}
	return bills, nil
}

// DownloadBillPDF fetches the rendered invoice and writes it to the
// given path. A failure here never affects the bill itself.
func (s *BillingStore) DownloadBillPDF(ctx context.Context, id uuid.UUID, destPath string) error {
	return s.async.track(func() error {
		raw, err := s.client.doRaw(ctx, http.MethodGet, "/shop/bill/"+id.String()+"/pdf", nil, nil, "application/pdf")
		if err != nil {
			return err
		}
		return os.WriteFile(destPath, raw, 0o644)
	})
}
