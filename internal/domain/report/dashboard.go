package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DailySale is one day's revenue in a dashboard series
type DailySale struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// TopProduct ranks a product by units sold over the reporting window
type TopProduct struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitsSold int             `json:"unitsSold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// LowStockItem flags a product at or below its alert threshold
type LowStockItem struct {
	ProductID    string `json:"productId"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	MinThreshold int    `json:"minThreshold"`
}

// Dashboard aggregates sales figures over a reporting window
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

// SellerStats aggregates one seller's sales over a reporting window.
// It never carries shop-wide figures.
type SellerStats struct {
	SoldBy            string          `json:"soldBy"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalBills        int             `json:"totalBills"`
	TotalUnitsSold    int             `json:"totalUnitsSold"`
	TotalGSTCollected decimal.Decimal `json:"totalGstCollected"`
	DailySales        []DailySale     `json:"dailySales"`
	GeneratedAt       time.Time       `json:"generatedAt"`
}

// Repository aggregates dashboard figures from persisted sales data
type Repository interface {
	Aggregate(ctx context.Context, from, to time.Time) (*Dashboard, error)
	AggregateSeller(ctx context.Context, soldBy string, from, to time.Time) (*SellerStats, error)
}
