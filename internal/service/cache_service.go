package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
)

// Cache keys for schedule data. Everything derived from the master schedule shares the
// analysis prefix so a single pattern invalidates it.
const (
	cacheKeyAnalysis        = "timetable:analysis"
	cacheKeyAnalysisPattern = "timetable:analysis*"
	cacheKeyReference       = "timetable:reference"
)

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheService wraps the cache repository with metrics, default TTLs and a global switch.
// Cache failures are logged and never fail the caller's request.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, defaultTTL: defaultTTL, logger: logger, enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Get loads key into dest and reports whether it was a hit.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) bool {
	if !s.Enabled() {
		return false
	}
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	s.metrics.RecordCacheOperation(err == nil, time.Since(start))
	if err != nil && !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	}
	return err == nil
}

// Set stores value under key. A non-positive ttl uses the default.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if !s.Enabled() {
		return
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	start := time.Now()
	err := s.repo.Set(ctx, key, value, ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate removes cached values matching pattern.
func (s *CacheService) Invalidate(ctx context.Context, pattern string) {
	if !s.Enabled() {
		return
	}
	if err := s.repo.DeleteByPattern(ctx, pattern); err != nil {
		s.logger.Warn("cache invalidate failed", zap.String("pattern", pattern), zap.Error(err))
	}
}
