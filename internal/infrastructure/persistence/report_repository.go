package persistence

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smartbill/backend/internal/domain/catalog"
	"github.com/smartbill/backend/internal/domain/report"
	"gorm.io/gorm"
)

// GormReportRepository aggregates dashboard figures with SQL
type GormReportRepository struct {
	db          *gorm.DB
	topProducts int
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB, topProducts int) *GormReportRepository {
	return &GormReportRepository{db: db, topProducts: topProducts}
}

// Aggregate computes the dashboard over bills billed within [from, to)
func (r *GormReportRepository) Aggregate(ctx context.Context, from, to time.Time) (*report.Dashboard, error) {
	dashboard := &report.Dashboard{
		TotalRevenue:      decimal.Zero,
		TotalGSTCollected: decimal.Zero,
		DailySales:        []report.DailySale{},
		TopProducts:       []report.TopProduct{},
		LowStockItems:     []report.LowStockItem{},
		GeneratedAt:       time.Now().UTC(),
	}

	var totals struct {
		Bills   int64
		Revenue decimal.Decimal
		GST     decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Table("bills").
		Select("COUNT(*) AS bills, COALESCE(SUM(total), 0) AS revenue, COALESCE(SUM(tax), 0) AS gst").
		Where("billed_at >= ? AND billed_at < ?", from, to).
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	dashboard.TotalBills = int(totals.Bills)
	dashboard.TotalRevenue = totals.Revenue
	dashboard.TotalGSTCollected = totals.GST

	var units struct {
		Units int64
	}
	if err := r.db.WithContext(ctx).Table("bill_items").
		Select("COALESCE(SUM(bill_items.quantity), 0) AS units").
		Joins("JOIN bills ON bills.id = bill_items.bill_id").
		Where("bills.billed_at >= ? AND bills.billed_at < ?", from, to).
		Scan(&units).Error; err != nil {
		return nil, err
	}
	dashboard.TotalUnitsSold = int(units.Units)

	var daily []struct {
		Day     string
		Revenue decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Table("bills").
		Select("date(billed_at) AS day, COALESCE(SUM(total), 0) AS revenue").
		Where("billed_at >= ? AND billed_at < ?", from, to).
		Group("date(billed_at)").
		Order("day ASC").
		Scan(&daily).Error; err != nil {
		return nil, err
	}
	for _, row := range daily {
		dashboard.DailySales = append(dashboard.DailySales, report.DailySale{
			Date:    row.Day,
			Revenue: row.Revenue,
		})
	}

	var top []struct {
		ProductID string
		Name      string
		Units     int64
		Revenue   decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Table("bill_items").
		Select("bill_items.product_id AS product_id, bill_items.name AS name, "+
			"SUM(bill_items.quantity) AS units, SUM(bill_items.price * bill_items.quantity) AS revenue").
		Joins("JOIN bills ON bills.id = bill_items.bill_id").
		Where("bills.billed_at >= ? AND bills.billed_at < ?", from, to).
		Group("bill_items.product_id, bill_items.name").
		Order("units DESC").
		Limit(r.topProducts).
		Scan(&top).Error; err != nil {
		return nil, err
	}
	for _, row := range top {
		dashboard.TopProducts = append(dashboard.TopProducts, report.TopProduct{
			ProductID: row.ProductID,
			Name:      row.Name,
			UnitsSold: int(row.Units),
			Revenue:   row.Revenue,
		})
	}

	var low []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("(min_threshold > 0 AND quantity <= min_threshold) OR (min_threshold <= 0 AND quantity <= ?)",
			catalog.DefaultMinThreshold).
		Order("quantity ASC").
		Find(&low).Error; err != nil {
		return nil, err
	}
	for i := range low {
		dashboard.LowStockItems = append(dashboard.LowStockItems, report.LowStockItem{
			ProductID:    low[i].ID.String(),
			Name:         low[i].Name,
			Quantity:     low[i].Quantity,
			MinThreshold: low[i].EffectiveThreshold(),
		})
	}

	return dashboard, nil
}

// AggregateSeller computes one seller's figures over bills billed within
// [from, to). Only bills with sold_by = soldBy contribute.
func (r *GormReportRepository) AggregateSeller(ctx context.Context, soldBy string, from, to time.Time) (*report.SellerStats, error) {
	stats := &report.SellerStats{
		SoldBy:            soldBy,
		TotalRevenue:      decimal.Zero,
		TotalGSTCollected: decimal.Zero,
		DailySales:        []report.DailySale{},
		GeneratedAt:       time.Now().UTC(),
	}

	var totals struct {
		Bills   int64
		Revenue decimal.Decimal
		GST     decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Table("bills").
		Select("COUNT(*) AS bills, COALESCE(SUM(total), 0) AS revenue, COALESCE(SUM(tax), 0) AS gst").
		Where("sold_by = ? AND billed_at >= ? AND billed_at < ?", soldBy, from, to).
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	stats.TotalBills = int(totals.Bills)
	stats.TotalRevenue = totals.Revenue
	stats.TotalGSTCollected = totals.GST

	var units struct {
		Units int64
	}
	if err := r.db.WithContext(ctx).Table("bill_items").
		Select("COALESCE(SUM(bill_items.quantity), 0) AS units").
		Joins("JOIN bills ON bills.id = bill_items.bill_id").
		Where("bills.sold_by = ? AND bills.billed_at >= ? AND bills.billed_at < ?", soldBy, from, to).
		Scan(&units).Error; err != nil {
		return nil, err
	}
	stats.TotalUnitsSold = int(units.Units)

	var daily []struct {
		Day     string
		Revenue decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Table("bills").
		Select("date(billed_at) AS day, COALESCE(SUM(total), 0) AS revenue").
		Where("sold_by = ? AND billed_at >= ? AND billed_at < ?", soldBy, from, to).
		Group("date(billed_at)").
		Order("day ASC").
		Scan(&daily).Error; err != nil {
		return nil, err
	}
	for _, row := range daily {
		stats.DailySales = append(stats.DailySales, report.DailySale{
			Date:    row.Day,
			Revenue: row.Revenue,
		})
	}

	return stats, nil
}
