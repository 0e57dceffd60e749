package curves

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/tphakala/hxdiagram/internal/logger"
	"github.com/tphakala/hxdiagram/internal/projection"
)

// CacheRecorder receives curve cache statistics.
type CacheRecorder interface {
	RecordCurveCacheHit()
	RecordCurveCacheMiss()
	UpdateCurveCacheSize(size int)
}

// Generator memoizes curve sets by bounds and visibility toggles.
//
// Cached sets are shared between callers and must be treated as read-only.
type Generator struct {
	cache   *cache.Cache
	metrics CacheRecorder
}

// NewGenerator returns a generator whose entries expire after ttl. A zero
// ttl keeps entries until Flush.
func NewGenerator(ttl time.Duration, metrics CacheRecorder) *Generator {
	expiration := cache.NoExpiration
	cleanup := time.Duration(0)
	if ttl > 0 {
		expiration = ttl
		cleanup = 2 * ttl
	}
	return &Generator{
		cache:   cache.New(expiration, cleanup),
		metrics: metrics,
	}
}

// Generate returns the curve set for the bounds, generating it on a miss.
func (g *Generator) Generate(b projection.Bounds, opts Options) Set {
	key := cacheKey(b, opts)
	if v, ok := g.cache.Get(key); ok {
		if g.metrics != nil {
			g.metrics.RecordCurveCacheHit()
		}
		return v.(Set)
	}

	start := time.Now()
	set := Generate(b, opts)
	g.cache.SetDefault(key, set)

	if g.metrics != nil {
		g.metrics.RecordCurveCacheMiss()
		g.metrics.UpdateCurveCacheSize(g.cache.ItemCount())
	}
	GetLogger().Debug("generated curve set",
		logger.String("key", key),
		logger.Int("polylines", set.Len()),
		logger.Duration("elapsed", time.Since(start)))

	return set
}

// Len returns the number of cached sets.
func (g *Generator) Len() int {
	return g.cache.ItemCount()
}

// Flush drops every cached set.
func (g *Generator) Flush() {
	g.cache.Flush()
	if g.metrics != nil {
		g.metrics.UpdateCurveCacheSize(0)
	}
}

func cacheKey(b projection.Bounds, opts Options) string {
	return fmt.Sprintf("%g|%g|%g|%g|%t%t%t",
		b.PressureKPa, b.TMin, b.TMax, b.XMax,
		opts.Isotherms, opts.RHCurves, opts.Saturation)
}
