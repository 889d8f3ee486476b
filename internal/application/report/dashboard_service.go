package report

import (
	"context"
	"time"

	"github.com/smartbill/backend/internal/domain/report"
	"github.com/smartbill/backend/internal/domain/shared"
	"github.com/smartbill/backend/internal/infrastructure/cache"
	"github.com/smartbill/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// DashboardService serves sales analytics, cached for a short TTL
type DashboardService struct {
	reportRepo report.Repository
	cache      cache.ReportCache
	cfg        config.ReportConfig
	logger     *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(reportRepo report.Repository, reportCache cache.ReportCache,
	cfg config.ReportConfig, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		reportRepo: reportRepo,
		cache:      reportCache,
		cfg:        cfg,
		logger:     logger,
	}
}

// Dashboard returns the aggregated dashboard for the configured window,
// serving from cache when a fresh copy exists
func (s *DashboardService) Dashboard(ctx context.Context) (*report.Dashboard, error) {
	cached, err := s.cache.Get(ctx, cache.DashboardKey)
	if err != nil {
		s.logger.Warn("Dashboard cache read failed", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	to := time.Now()
	from := to.AddDate(0, 0, -s.cfg.WindowDays)

	dashboard, err := s.reportRepo.Aggregate(ctx, from, to)
	if err != nil {
		s.logger.Error("Dashboard aggregation failed", zap.Error(err))
		return nil, shared.NewDomainError("REPORT_ERROR", "Failed to build dashboard")
	}

	if err := s.cache.Set(ctx, cache.DashboardKey, dashboard, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("Dashboard cache write failed", zap.Error(err))
	}

	return dashboard, nil
}

// SellerStats returns one seller's figures for the configured window.
// The caller is responsible for passing the authenticated seller, not a
// client-supplied name. Per-seller stats are cheap enough to skip the cache.
func (s *DashboardService) SellerStats(ctx context.Context, soldBy string) (*report.SellerStats, error) {
	if soldBy == "" {
		return nil, shared.NewDomainError("SELLER_REQUIRED", "Seller is required")
	}

	to := time.Now()
	from := to.AddDate(0, 0, -s.cfg.WindowDays)

	stats, err := s.reportRepo.AggregateSeller(ctx, soldBy, from, to)
	if err != nil {
		s.logger.Error("Seller stats aggregation failed",
			zap.String("sold_by", soldBy), zap.Error(err))
		return nil, shared.NewDomainError("REPORT_ERROR", "Failed to build seller stats")
	}

	return stats, nil
}
