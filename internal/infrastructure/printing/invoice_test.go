package printing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartbill/backend/internal/domain/billing"
	"github.com/smartbill/backend/internal/domain/shared"
	"github.com/smartbill/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInvoiceBill(t *testing.T, discount int64) *billing.Bill {
	t.Helper()

	items := []billing.BillItem{{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  uuid.New(),
		Name:       "Galaxy S24",
		Price:      decimal.NewFromInt(100),
		GSTRate:    decimal.NewFromInt(18),
		Quantity:   2,
		ImeiSerial: "IMEI-123456",
	}}

	customer := billing.Customer{
		Name:    "Asha",
		Mobile:  "9876543210",
		Email:   "asha@example.com",
		Address: "4 Brigade Road, Bengaluru",
	}
	bill, err := billing.NewBill("INV-20260831-1", customer, items,
		decimal.NewFromInt(discount), billing.PaymentUPI, "upi-tx-9", "shopuser")
	require.NoError(t, err)
	return bill
}

func TestInvoiceHTML(t *testing.T) {
	shop := config.ShopConfig{
		Name:    "Mobile Planet",
		Address: "12 MG Road, Bengaluru",
		Phone:   "080-12345678",
		GSTIN:   "29ABCDE1234F1Z5",
	}

	t.Run("includes bill and shop details", func(t *testing.T) {
		html, err := InvoiceHTML(sampleInvoiceBill(t, 10), shop)
		require.NoError(t, err)

		assert.Contains(t, html, "Mobile Planet")
		assert.Contains(t, html, "29ABCDE1234F1Z5")
		assert.Contains(t, html, "INV-20260831-1")
		assert.Contains(t, html, "Asha")
		assert.Contains(t, html, "9876543210")
		assert.Contains(t, html, "asha@example.com")
		assert.Contains(t, html, "4 Brigade Road, Bengaluru")
		assert.Contains(t, html, "Galaxy S24")
		assert.Contains(t, html, "IMEI-123456")
		assert.Contains(t, html, "UPI")
		assert.Contains(t, html, "upi-tx-9")
		assert.Contains(t, html, "200.00") // subtotal
		assert.Contains(t, html, "36.00")  // tax
		assert.Contains(t, html, "226.00") // total
	})

	t.Run("omits discount row when zero", func(t *testing.T) {
		html, err := InvoiceHTML(sampleInvoiceBill(t, 0), shop)
		require.NoError(t, err)
		assert.NotContains(t, html, "Discount")
	})

	t.Run("escapes HTML in customer input", func(t *testing.T) {
		bill := sampleInvoiceBill(t, 0)
		bill.CustomerName = "<script>alert(1)</script>"

		html, err := InvoiceHTML(bill, shop)
		require.NoError(t, err)
		assert.NotContains(t, html, "<script>alert(1)</script>")
	})

	t.Run("rejects nil bill", func(t *testing.T) {
		_, err := InvoiceHTML(nil, shop)
		assert.Error(t, err)
	})
}
