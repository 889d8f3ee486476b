package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smartbill/backend/internal/domain/shared"
)

// ErrDuplicateInvoiceNo reports that a bill with the same invoice number
// already exists. Two concurrent checkouts can derive the same per-day
// sequence; the unique index catches the loser and the sale is retried.
var ErrDuplicateInvoiceNo = shared.NewDomainError("DUPLICATE_INVOICE_NO", "Invoice number already exists")

// BillRepository defines the persistence contract for bills
type BillRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Bill, error)
	FindByInvoiceNo(ctx context.Context, invoiceNo string) (*Bill, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Bill, error)
	FindByPeriod(ctx context.Context, from, to time.Time) ([]*Bill, error)
	// NextInvoiceSequence returns the next per-day invoice counter for the
	// given day, starting at 1
	NextInvoiceSequence(ctx context.Context, day time.Time) (int, error)
	Save(ctx context.Context, bill *Bill) error
}
