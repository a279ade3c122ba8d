package usecase

import (
	"sync"
	"time"
)

// RateLimiter enforces a per-key cooldown so the same log is not
// re-analyzed every time someone re-posts it.
type RateLimiter struct {
	mu       sync.Mutex
	cooldown time.Duration
	seen     map[string]time.Time
	now      func() time.Time
}

func NewRateLimiter(cooldown time.Duration) *RateLimiter {
	return &RateLimiter{
		cooldown: cooldown,
		seen:     make(map[string]time.Time),
		now:      time.Now,
	}
}

// IsLimited reports whether key is still cooling down. A key that is
// not limited starts its cooldown as a side effect.
func (r *RateLimiter) IsLimited(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for k, t := range r.seen {
		if now.Sub(t) >= r.cooldown {
			delete(r.seen, k)
		}
	}

	if _, ok := r.seen[key]; ok {
		return true
	}
	r.seen[key] = now
	return false
}
