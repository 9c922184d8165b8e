package cache

import (
	"time"

	"go.uber.org/zap"

	"github.com/FACorreiaa/loci-itinerary/internal/app/models"
)

// DefaultOptimizationTTL keeps ML responses for repeated identical requests.
const DefaultOptimizationTTL = 10 * time.Minute

// CacheManager holds all application caches
type CacheManager struct {
	// Optimizations maps a hashed OptimizationRequest to the ML response.
	Optimizations *UnifiedCache[models.OptimizationResponse]
}

// NewCacheManager creates the caches. A non-positive ttl uses
// DefaultOptimizationTTL.
func NewCacheManager(ttl time.Duration, logger *zap.Logger) *CacheManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = DefaultOptimizationTTL
	}
	return &CacheManager{
		Optimizations: NewUnifiedCache[models.OptimizationResponse](ttl, "optimizations", logger),
	}
}

// GetAllMetrics returns metrics for all caches
func (cm *CacheManager) GetAllMetrics() map[string]CacheMetrics {
	return map[string]CacheMetrics{
		"optimizations": cm.Optimizations.GetMetrics(),
	}
}

// ClearAll clears all caches
func (cm *CacheManager) ClearAll() {
	cm.Optimizations.Clear()
}

// Close stops every cache's sweeper.
func (cm *CacheManager) Close() {
	cm.Optimizations.Close()
}
