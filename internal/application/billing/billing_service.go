package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/smartbill/backend/internal/domain/billing"
	"github.com/smartbill/backend/internal/domain/shared"
	"github.com/smartbill/backend/internal/infrastructure/cache"
	"github.com/smartbill/backend/internal/infrastructure/config"
	"github.com/smartbill/backend/internal/infrastructure/printing"
	"github.com/smartbill/backend/internal/infrastructure/storage"
	"go.uber.org/zap"
)

// maxInvoiceAttempts bounds retries when concurrent checkouts collide on
// the same per-day invoice sequence.
const maxInvoiceAttempts = 3

// BillingService finalizes sales and serves the sales history
type BillingService struct {
	scope       TransactionScope
	billRepo    billing.BillRepository
	renderer    printing.PDFRenderer
	archiver    storage.InvoiceArchiver
	reportCache cache.ReportCache
	shop        config.ShopConfig
	logger      *zap.Logger
}

// NewBillingService creates a new BillingService
func NewBillingService(
	scope TransactionScope,
	billRepo billing.BillRepository,
	renderer printing.PDFRenderer,
	archiver storage.InvoiceArchiver,
	reportCache cache.ReportCache,
	shop config.ShopConfig,
	logger *zap.Logger,
) *BillingService {
	return &BillingService{
		scope:       scope,
		billRepo:    billRepo,
		renderer:    renderer,
		archiver:    archiver,
		reportCache: reportCache,
		shop:        shop,
		logger:      logger,
	}
}

// CreateBill finalizes a sale: prices the requested lines from the
// catalog, deducts stock, and persists the bill, all in one transaction.
// Oversold lines roll the whole sale back.
func (s *BillingService) CreateBill(ctx context.Context, req CreateBillRequest) (*BillResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot bill an empty cart")
	}

	now := time.Now()
	var bill *billing.Bill

	// The per-day sequence comes from a count, so two concurrent checkouts
	// can derive the same invoice number. The losing transaction rolls back
	// on the unique index and reruns with a fresh count.
	var err error
	for attempt := 1; attempt <= maxInvoiceAttempts; attempt++ {
		err = s.createBillTx(ctx, req, now, &bill)
		if !errors.Is(err, billing.ErrDuplicateInvoiceNo) {
			break
		}
		s.logger.Warn("Invoice number collision, retrying checkout",
			zap.Int("attempt", attempt))
	}
	if err != nil {
		return nil, err
	}

	if err := s.reportCache.Invalidate(ctx, cache.DashboardKey); err != nil {
		s.logger.Warn("Failed to invalidate dashboard cache", zap.Error(err))
	}

	s.logger.Info("Bill created",
		zap.String("invoice_no", bill.InvoiceNo),
		zap.String("total", bill.Total.String()),
		zap.String("sold_by", bill.SoldBy))

	resp := ToBillResponse(bill)
	return &resp, nil
}

func (s *BillingService) createBillTx(ctx context.Context, req CreateBillRequest, now time.Time, bill **billing.Bill) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		seq, err := repos.BillRepo().NextInvoiceSequence(ctx, now)
		if err != nil {
			return err
		}
		invoiceNo := fmt.Sprintf("INV-%s-%03d", now.Format("20060102"), seq)

		// Duplicate lines for the same product merge before pricing, so
		// stock is deducted once per product.
		cart := billing.NewCart()
		for _, line := range req.Items {
			product, err := repos.ProductRepo().FindByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewDomainError("PRODUCT_NOT_FOUND",
						fmt.Sprintf("Product %s is no longer in the catalog", line.ProductID))
				}
				return err
			}

			if err := cart.Add(billing.CartLine{
				ProductID:  product.ID,
				Name:       product.Name,
				Price:      product.Price,
				GSTRate:    product.GSTRate,
				Quantity:   line.Quantity,
				ImeiSerial: line.ImeiSerial,
			}); err != nil {
				return err
			}
		}

		items := make([]billing.BillItem, 0, len(cart.Lines))
		for _, line := range cart.Lines {
			items = append(items, billing.BillItem{
				BaseEntity: shared.NewBaseEntity(),
				ProductID:  line.ProductID,
				Name:       line.Name,
				Price:      line.Price,
				GSTRate:    line.GSTRate,
				Quantity:   line.Quantity,
				ImeiSerial: line.ImeiSerial,
			})
		}

		customer := billing.Customer{
			Name:    req.CustomerName,
			Mobile:  req.CustomerMobile,
			Email:   req.CustomerEmail,
			Address: req.CustomerAddress,
		}
		b, err := billing.NewBill(invoiceNo, customer, items, req.Discount,
			billing.PaymentMode(req.PaymentMode), req.TransactionID, req.SoldBy)
		if err != nil {
			return err
		}

		for _, line := range cart.Lines {
			if err := repos.ProductRepo().DeductStock(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}

		if err := repos.BillRepo().Save(ctx, b); err != nil {
			return err
		}
		*bill = b
		return nil
	})
}

// GetBill returns a single bill with its lines
func (s *BillingService) GetBill(ctx context.Context, billID uuid.UUID) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	resp := ToBillResponse(bill)
	return &resp, nil
}

// History returns bills matching the filter, newest first by default
func (s *BillingService) History(ctx context.Context, filter SalesFilter) ([]BillResponse, error) {
	f := shared.NewFilter().WithSearch(filter.Search)
	f.OrderBy = filter.OrderBy
	f.OrderDir = filter.OrderDir
	if filter.PaymentMode != "" {
		f = f.WithFilter("payment_mode", filter.PaymentMode)
	}
	if filter.SoldBy != "" {
		f = f.WithFilter("sold_by", filter.SoldBy)
	}
	if filter.From != nil {
		f = f.WithFilter("from", *filter.From)
	}
	if filter.To != nil {
		f = f.WithFilter("to", *filter.To)
	}

	bills, err := s.billRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}

	responses := make([]BillResponse, 0, len(bills))
	for _, b := range bills {
		responses = append(responses, ToBillResponse(b))
	}
	return responses, nil
}

// RenderInvoice renders a bill as a PDF invoice and archives a copy
func (s *BillingService) RenderInvoice(ctx context.Context, billID uuid.UUID) (*InvoicePDF, error) {
	bill, err := s.billRepo.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}

	html, err := printing.InvoiceHTML(bill, s.shop)
	if err != nil {
		s.logger.Error("Failed to build invoice HTML", zap.Error(err))
		return nil, shared.NewDomainError("INVOICE_RENDER_ERROR", "Failed to render invoice")
	}

	pdf, err := s.renderer.Render(ctx, html)
	if err != nil {
		s.logger.Error("Failed to render invoice PDF",
			zap.String("invoice_no", bill.InvoiceNo), zap.Error(err))
		return nil, shared.NewDomainError("INVOICE_RENDER_ERROR", "Failed to render invoice")
	}

	// Archival is best-effort: the customer still gets their invoice if
	// the archive store is down.
	if err := s.archiver.Archive(ctx, bill.InvoiceNo, pdf); err != nil {
		s.logger.Warn("Failed to archive invoice",
			zap.String("invoice_no", bill.InvoiceNo), zap.Error(err))
	}

	return &InvoicePDF{InvoiceNo: bill.InvoiceNo, Content: pdf}, nil
}
