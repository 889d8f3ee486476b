package cache

import (
	"context"
	"sync"
	"time"

	"github.com/smartbill/backend/internal/domain/report"
)

// InMemoryReportCache implements ReportCache with a process-local map.
// Suitable for single-instance deployments and testing.
type InMemoryReportCache struct {
	mu      sync.RWMutex
	entries map[string]inMemoryEntry
}

type inMemoryEntry struct {
	dashboard *report.Dashboard
	expiresAt time.Time
}

// NewInMemoryReportCache creates an in-memory report cache
func NewInMemoryReportCache() *InMemoryReportCache {
	return &InMemoryReportCache{
		entries: make(map[string]inMemoryEntry),
	}
}

// Get returns the cached dashboard, or nil on a miss or expired entry
func (c *InMemoryReportCache) Get(ctx context.Context, key string) (*report.Dashboard, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, nil
	}
	return entry.dashboard, nil
}

// Set stores the dashboard with a TTL
func (c *InMemoryReportCache) Set(ctx context.Context, key string, dashboard *report.Dashboard, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = inMemoryEntry{
		dashboard: dashboard,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Invalidate drops a cached dashboard
func (c *InMemoryReportCache) Invalidate(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}
