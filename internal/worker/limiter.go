package worker

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter rate-limits requests per upstream host so detail lookups stay
// polite even with several workers.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a per-host rate limiter.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 4
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Wait blocks until the host's limiter clears the request.
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	host, err := extractHost(rawURL)
	if err != nil {
		return err
	}
	return l.limiterFor(host).Wait(ctx)
}

// Allow reports whether a request may proceed without waiting.
func (l *Limiter) Allow(rawURL string) bool {
	host, err := extractHost(rawURL)
	if err != nil {
		return false
	}
	return l.limiterFor(host).Allow()
}

func (l *Limiter) limiterFor(host string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[host]
	l.mu.RUnlock()
	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists := l.limiters[host]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[host] = limiter
	return limiter
}

func extractHost(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return parsed.Host, nil
}
