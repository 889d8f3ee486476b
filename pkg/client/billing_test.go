package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartProduct(t *testing.T, id int, name string, price, gstRate int64) Product {
	t.Helper()
	return Product{
		ID:      mustUUID(t, fmt.Sprintf("8f14e45f-ea0a-4b6f-9f5f-%012d", id)),
		Name:    name,
		Price:   decimal.NewFromInt(price),
		GSTRate: decimal.NewFromInt(gstRate),
	}
}

func newBillingClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c, err := New(Config{BaseURL: server.URL})
	require.NoError(t, err)
	return c
}

func TestAddToCartMergesByProduct(t *testing.T) {
	c, err := New(Config{BaseURL: "http://localhost:8080"})
	require.NoError(t, err)

	p := cartProduct(t, 1, "Galaxy M14", 13999, 18)
	c.Billing.AddToCart(p, 1)
	c.Billing.AddToCart(p, 1)

	cart := c.Billing.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 2, cart[0].Quantity)
}

func TestRemoveFromCartDropsWholeLine(t *testing.T) {
	c, err := New(Config{BaseURL: "http://localhost:8080"})
	require.NoError(t, err)

	phone := cartProduct(t, 1, "Galaxy M14", 13999, 18)
	earbuds := cartProduct(t, 2, "Boat Airdopes", 999, 18)
	c.Billing.AddToCart(phone, 3)
	c.Billing.AddToCart(earbuds, 1)

	c.Billing.RemoveFromCart(phone.ID)

	cart := c.Billing.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, "Boat Airdopes", cart[0].Name)
}

func TestCartTotalsWorkedExample(t *testing.T) {
	c, err := New(Config{BaseURL: "http://localhost:8080"})
	require.NoError(t, err)

	// 1 product at 100, qty 2, GST 18%, discount 10
	c.Billing.AddToCart(cartProduct(t, 1, "Charger", 100, 18), 2)

	assert.True(t, c.Billing.CartSubtotal().Equal(decimal.NewFromInt(200)))
	assert.True(t, c.Billing.CartTax().Equal(decimal.NewFromInt(36)))
	assert.True(t, c.Billing.CartTotal(decimal.NewFromInt(10)).Equal(decimal.NewFromInt(226)))
}

func TestCartTotalFlooredAtZero(t *testing.T) {
	c, err := New(Config{BaseURL: "http://localhost:8080"})
	require.NoError(t, err)

	c.Billing.AddToCart(cartProduct(t, 1, "Cable", 100, 0), 1)

	total := c.Billing.CartTotal(decimal.NewFromInt(500))
	assert.True(t, total.IsZero())
}

func TestCreateBillRequiresCustomerDetails(t *testing.T) {
	requested := false
	c := newBillingClient(t, func(w http.ResponseWriter, r *http.Request) {
		requested = true
	})

	c.Billing.AddToCart(cartProduct(t, 1, "Galaxy M14", 13999, 18), 1)

	_, err := c.Billing.CreateBill(context.Background(), CheckoutDetails{
		CustomerMobile: "9876543210",
		PaymentMode:    PaymentCash,
	})
	assert.ErrorIs(t, err, ErrCustomerDetails)

	_, err = c.Billing.CreateBill(context.Background(), CheckoutDetails{
		CustomerName: "Priya",
		PaymentMode:  PaymentCash,
	})
	assert.ErrorIs(t, err, ErrCustomerDetails)
	assert.False(t, requested)
}

func TestCreateBillRejectsEmptyCart(t *testing.T) {
	c, err := New(Config{BaseURL: "http://localhost:8080"})
	require.NoError(t, err)

	_, err = c.Billing.CreateBill(context.Background(), CheckoutDetails{
		CustomerName:   "Priya",
		CustomerMobile: "9876543210",
		PaymentMode:    PaymentCash,
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCreateBillClearsCartAndKeepsReceipt(t *testing.T) {
	c := newBillingClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/shop/bill", r.URL.Path)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Priya", body["customerName"])
		assert.Equal(t, "priya@example.com", body["customerEmail"])
		assert.Equal(t, "3 Church Street, Bengaluru", body["customerAddress"])
		items, ok := body["items"].([]interface{})
		require.True(t, ok)
		require.Len(t, items, 1)
		// Price is never sent; the backend resolves it from the catalog
		line := items[0].(map[string]interface{})
		assert.NotContains(t, line, "price")

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{
			"id":"8f14e45f-ea0a-4b6f-9f5f-0000000000bb",
			"invoiceNo":"INV-20260831-007",
			"customerName":"Priya",
			"customerMobile":"9876543210",
			"customerEmail":"priya@example.com",
			"customerAddress":"3 Church Street, Bengaluru",
			"subtotal":"200","tax":"36","discount":"10","total":"226",
			"paymentMode":"CASH"
		}}`))
	})

	c.Billing.AddToCart(cartProduct(t, 1, "Charger", 100, 18), 2)

	bill, err := c.Billing.CreateBill(context.Background(), CheckoutDetails{
		CustomerName:    "Priya",
		CustomerMobile:  "9876543210",
		CustomerEmail:   "priya@example.com",
		CustomerAddress: "3 Church Street, Bengaluru",
		Discount:        decimal.NewFromInt(10),
		PaymentMode:     PaymentCash,
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-20260831-007", bill.InvoiceNo)
	assert.Equal(t, "priya@example.com", bill.CustomerEmail)
	assert.True(t, bill.Total.Equal(decimal.NewFromInt(226)))
	assert.Empty(t, c.Billing.Cart())

	receipt := c.Billing.LastBill()
	require.NotNil(t, receipt)
	assert.Equal(t, bill.InvoiceNo, receipt.InvoiceNo)
}

func TestCreateBillFailureKeepsCart(t *testing.T) {
	c := newBillingClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"INSUFFICIENT_STOCK","message":"Only 1 left in stock"}}`))
	})

	c.Billing.AddToCart(cartProduct(t, 1, "Galaxy M14", 13999, 18), 5)

	_, err := c.Billing.CreateBill(context.Background(), CheckoutDetails{
		CustomerName:   "Priya",
		CustomerMobile: "9876543210",
		PaymentMode:    PaymentCash,
	})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", apiErr.Code)
	assert.Len(t, c.Billing.Cart(), 1)
}

func TestGetMySalesSendsFilters(t *testing.T) {
	c := newBillingClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/shop/history", r.URL.Path)
		assert.Equal(t, "CASH", r.URL.Query().Get("payment_mode"))
		assert.Equal(t, "2026-08-01", r.URL.Query().Get("from"))
		_, _ = w.Write([]byte(`{"success":true,"data":[{"invoiceNo":"INV-20260815-001","total":"226"}]}`))
	})

	bills, err := c.Billing.GetMySales(context.Background(), SalesOptions{
		PaymentMode: PaymentCash,
		From:        "2026-08-01",
	})
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, "INV-20260815-001", bills[0].InvoiceNo)
}

func TestDownloadBillPDFWritesFile(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake invoice")
	c := newBillingClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/shop/bill/8f14e45f-ea0a-4b6f-9f5f-0000000000bb/pdf", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(pdf)
	})

	dest := filepath.Join(t.TempDir(), "invoice.pdf")
	err := c.Billing.DownloadBillPDF(context.Background(), mustUUID(t, "8f14e45f-ea0a-4b6f-9f5f-0000000000bb"), dest)
	require.NoError(t, err)

	written, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, pdf, written)
}
