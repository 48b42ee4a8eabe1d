package ratelimit

import (
	"sync"

	config "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Config"
	"golang.org/x/time/rate"
)

// RateLimiterStore keeps one token bucket per hardware id
type RateLimiterStore struct {
	limiters     map[string]*rate.Limiter
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
}

func NewRateLimiterStore(defaultRate rate.Limit, defaultBurst int) *RateLimiterStore {
	return &RateLimiterStore{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  defaultRate,
		defaultBurst: defaultBurst,
	}
}

// FromConfig returns nil when READING_RATE_LIMIT is zero
func FromConfig(cfg config.RateLimitConfig) *RateLimiterStore {
	if cfg.ReadingsPerSecond <= 0 {
		return nil
	}
	return NewRateLimiterStore(rate.Limit(cfg.ReadingsPerSecond), cfg.Burst)
}

func (s *RateLimiterStore) GetLimiter(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(s.defaultRate, s.defaultBurst)
		s.limiters[key] = limiter
	}
	return limiter
}

// Allow consumes a token for key. A nil store allows everything.
func (s *RateLimiterStore) Allow(key string) bool {
	if s == nil {
		return true
	}
	return s.GetLimiter(key).Allow()
}
