package worker

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter implements per-volume rate limiting of file checks. Batch runs
// often point at network-mounted asset storage; throttling per volume keeps
// one mount from being hammered while local disks run unthrottled limits.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a new rate limiter. filesPerSecond <= 0 disables
// throttling.
func NewLimiter(filesPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}

	limit := rate.Limit(filesPerSecond)
	if filesPerSecond <= 0 {
		limit = rate.Inf
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  limit,
		defaultBurst: burst,
	}
}

// Wait blocks until the volume holding path has rate capacity.
func (l *Limiter) Wait(ctx context.Context, path string) error {
	return l.getLimiter(volumeKey(path)).Wait(ctx)
}

// Allow checks if a file on path's volume may be read without waiting.
func (l *Limiter) Allow(path string) bool {
	return l.getLimiter(volumeKey(path)).Allow()
}

// SetVolumeRate sets a custom rate limit for a specific volume.
func (l *Limiter) SetVolumeRate(volume string, filesPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if burst <= 0 {
		burst = l.defaultBurst
	}

	l.limiters[volume] = rate.NewLimiter(rate.Limit(filesPerSecond), burst)
}

func (l *Limiter) getLimiter(volume string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[volume]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[volume]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[volume] = limiter

	return limiter
}

// volumeKey buckets a path by its first absolute component, which is where
// mount points live on the platforms the tool targets.
func volumeKey(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	abs = filepath.ToSlash(abs)
	parts := strings.SplitN(strings.TrimPrefix(abs, "/"), "/", 2)
	return parts[0]
}
