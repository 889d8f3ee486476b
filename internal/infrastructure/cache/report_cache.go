package cache

import (
	"context"
	"time"

	"github.com/smartbill/backend/internal/domain/report"
)

// DashboardKey is the cache key under which the current dashboard lives
const DashboardKey = "current"

// ReportCache caches computed dashboard aggregates. Dashboard queries scan
// the whole bill history, so results are held for a short TTL and
// invalidated whenever a new sale lands.
type ReportCache interface {
	Get(ctx context.Context, key string) (*report.Dashboard, error)
	Set(ctx context.Context, key string, dashboard *report.Dashboard, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}
