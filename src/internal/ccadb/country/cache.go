// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package country

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// CacheMetrics tracks resolver memoization performance and usage.
type CacheMetrics struct {
	Size   int64 // Current number of memoized names
	Hits   int64 // Number of cache hits
	Misses int64 // Number of cache misses
}

// resolveCache memoizes Resolve results for the lifetime of the process.
// A CCADB dump repeats roughly a hundred distinct names across tens of
// thousands of rows, so the map stays small and is never evicted.
var resolveCache = make(map[string]string)
var resolveCacheMutex sync.RWMutex
var resolveCacheMetrics CacheMetrics

// cachedCode returns the memoized code for name, if present.
func cachedCode(name string) (string, bool) {
	resolveCacheMutex.RLock()
	code, ok := resolveCache[name]
	resolveCacheMutex.RUnlock()

	if ok {
		atomic.AddInt64(&resolveCacheMetrics.Hits, 1)
		return code, true
	}

	atomic.AddInt64(&resolveCacheMetrics.Misses, 1)
	return "", false
}

// storeCode memoizes the resolution result for name. Unresolved names are
// cached too; re-resolving a known-bad name would repeat the full variant scan.
func storeCode(name, code string) {
	resolveCacheMutex.Lock()
	resolveCache[name] = code
	resolveCacheMutex.Unlock()
}

// GetCacheMetrics returns current resolver cache metrics.
func GetCacheMetrics() CacheMetrics {
	resolveCacheMutex.RLock()
	defer resolveCacheMutex.RUnlock()

	metrics := CacheMetrics{
		Size:   int64(len(resolveCache)),
		Hits:   atomic.LoadInt64(&resolveCacheMetrics.Hits),
		Misses: atomic.LoadInt64(&resolveCacheMetrics.Misses),
	}
	return metrics
}

// ResetCache clears all memoized resolutions and metrics (useful for testing).
func ResetCache() {
	resolveCacheMutex.Lock()
	defer resolveCacheMutex.Unlock()

	resolveCache = make(map[string]string)

	atomic.StoreInt64(&resolveCacheMetrics.Hits, 0)
	atomic.StoreInt64(&resolveCacheMetrics.Misses, 0)
}

// GetCacheStats returns a formatted string with resolver cache statistics.
func GetCacheStats() string {
	metrics := GetCacheMetrics()

	hitRate := float64(0)
	totalRequests := metrics.Hits + metrics.Misses
	if totalRequests > 0 {
		hitRate = float64(metrics.Hits) / float64(totalRequests) * 100
	}

	return fmt.Sprintf("Country Resolver Cache Statistics:\n"+
		"  Size: %d entries\n"+
		"  Hit Rate: %.1f%% (%d hits, %d misses)",
		metrics.Size,
		hitRate, metrics.Hits, metrics.Misses)
}
