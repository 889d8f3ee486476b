package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smartbill/backend/internal/domain/billing"
	"github.com/smartbill/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormBillRepository implements billing.BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// FindByID finds a bill with its items by ID
func (r *GormBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	var bill billing.Bill
	if err := r.db.WithContext(ctx).Preload("Items").First(&bill, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bill, nil
}

// FindByInvoiceNo finds a bill with its items by invoice number
func (r *GormBillRepository) FindByInvoiceNo(ctx context.Context, invoiceNo string) (*billing.Bill, error) {
	var bill billing.Bill
	if err := r.db.WithContext(ctx).Preload("Items").First(&bill, "invoice_no = ?", invoiceNo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bill, nil
}

// FindAll finds all bills matching the filter, most recent first
func (r *GormBillRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*billing.Bill, error) {
	var bills []*billing.Bill
	query := r.applyFilter(r.db.WithContext(ctx).Model(&billing.Bill{}).Preload("Items"), filter)

	if err := query.Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// FindByPeriod finds all bills billed within [from, to)
func (r *GormBillRepository) FindByPeriod(ctx context.Context, from, to time.Time) ([]*billing.Bill, error) {
	var bills []*billing.Bill
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("billed_at >= ? AND billed_at < ?", from, to).
		Order("billed_at DESC").
		Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// NextInvoiceSequence returns the next per-day invoice counter
func (r *GormBillRepository) NextInvoiceSequence(ctx context.Context, day time.Time) (int, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var count int64
	if err := r.db.WithContext(ctx).Model(&billing.Bill{}).
		Where("billed_at >= ? AND billed_at < ?", start, end).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count) + 1, nil
}

// Save persists a bill together with its items. A unique-index collision
// on invoice_no maps to ErrDuplicateInvoiceNo so callers can retry with a
// fresh sequence.
func (r *GormBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	if err := r.db.WithContext(ctx).Save(bill).Error; err != nil {
		if isDuplicateKey(err) {
			return billing.ErrDuplicateInvoiceNo
		}
		return err
	}
	return nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

func (r *GormBillRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("invoice_no LIKE ? OR customer_name LIKE ? OR customer_mobile LIKE ?",
			pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "payment_mode":
			query = query.Where("payment_mode = ?", value)
		case "sold_by":
			query = query.Where("sold_by = ?", value)
		case "from":
			query = query.Where("billed_at >= ?", value)
		case "to":
			query = query.Where("billed_at < ?", value)
		}
	}

	sortField := ValidateSortField(filter.OrderBy, BillSortFields, "billed_at")
	sortOrder := ValidateSortOrder(filter.OrderDir, "DESC")
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	return query
}
