package cache

import (
	"github.com/smartbill/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewReportCache creates a report cache based on configuration. When Redis
// is disabled or unreachable it falls back to the in-memory cache, which is
// fine for a single-instance deployment.
func NewReportCache(cfg config.RedisConfig, logger *zap.Logger) ReportCache {
	if !cfg.Enabled {
		logger.Info("using in-memory report cache")
		return NewInMemoryReportCache()
	}

	store, err := NewRedisReportCache(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory report cache",
			zap.Error(err),
		)
		return NewInMemoryReportCache()
	}

	logger.Info("using Redis report cache", zap.String("addr", cfg.Addr()))
	return store
}
