package client

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// SalesStore handles the admin-wide sales history.
type SalesStore struct {
	client *Client
	async  asyncState
}

// State returns the status and last error of the most recent request.
func (s *SalesStore) State() (Status, error) {
	return s.async.state()
}

// GetAllSales fetches the full bill list. Each fetch replaces the
// previous result; there is no pagination on this endpoint.
func (s *SalesStore) GetAllSales(ctx context.Context, opts SalesOptions) ([]Bill, error) {
	var bills []Bill
	err := s.async.track(func() error {
		return s.client.do(ctx, http.MethodGet, "/admin/sales", opts.query(), nil, &bills)
	})
	if err != nil {
		return nil, err
	}
	return bills, nil
}

// DailySale is one day's revenue on the dashboard chart.
type DailySale struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// TopProduct is a best seller over the dashboard window.
type TopProduct struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitsSold int             `json:"unitsSold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// LowStockItem is a product at or below its stock threshold.
type LowStockItem struct {
	ProductID    string `json:"productId"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	MinThreshold int    `json:"minThreshold"`
}

// Dashboard is the aggregated analytics snapshot, recomputed per fetch.
type Dashboard struct {
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalBills        int             `json:"totalBills"`
	TotalUnitsSold    int             `json:"totalUnitsSold"`
	TotalGSTCollected decimal.Decimal `json:"totalGstCollected"`
	DailySales        []DailySale     `json:"dailySales"`
	TopProducts       []TopProduct    `json:"topProducts"`
	LowStockItems     []LowStockItem  `json:"lowStockItems"`
	GeneratedAt       time.Time       `json:"generatedAt"`
}

// ShopStats is one seller's sales snapshot, scoped server-side to the
// authenticated user.
type ShopStats struct {
	SoldBy            string          `json:"soldBy"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalBills        int             `json:"totalBills"`
	TotalUnitsSold    int             `json:"totalUnitsSold"`
	TotalGSTCollected decimal.Decimal `json:"totalGstCollected"`
	DailySales        []DailySale     `json:"dailySales"`
	GeneratedAt       time.Time       `json:"generatedAt"`
}

// ReportStore handles the dashboard analytics endpoints.
type ReportStore struct {
	client *Client
	async  asyncState
}

// State returns the status and last error of the most recent request.
func (s *ReportStore) State() (Status, error) {
	return s.async.state()
}

// GetDashboardData fetches the admin analytics snapshot.
func (s *ReportStore) GetDashboardData(ctx context.Context) (*Dashboard, error) {
	var dashboard Dashboard
	err := s.async.track(func() error {
		return s.client.do(ctx, http.MethodGet, "/admin/reports/dashboard", nil, nil, &dashboard)
	})
	if err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// GetShopStats fetches the caller's own sales stats.
func (s *ReportStore) GetShopStats(ctx context.Context) (*ShopStats, error) {
	var stats ShopStats
	err := s.async.track(func() error {
		return s.client.do(ctx, http.MethodGet, "/shop/stats", nil, nil, &stats)
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
