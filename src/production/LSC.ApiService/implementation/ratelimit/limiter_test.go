package ratelimit

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	config "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Config"
)

func TestFromConfig(t *testing.T) {
	assert.Nil(t, FromConfig(config.RateLimitConfig{ReadingsPerSecond: 0, Burst: 5}))

	store := FromConfig(config.RateLimitConfig{ReadingsPerSecond: 2, Burst: 3})
	require.NotNil(t, store)
	limiter := store.GetLimiter("A1")
	assert.EqualValues(t, 2, limiter.Limit())
	assert.Equal(t, 3, limiter.Burst())
}

func TestAllow_PerKeyBuckets(t *testing.T) {
	// one token per hour, so nothing refills during the test
	store := NewRateLimiterStore(1.0/3600, 2)

	assert.True(t, store.Allow("A1"))
	assert.True(t, store.Allow("A1"))
	assert.False(t, store.Allow("A1"))

	assert.True(t, store.Allow("B2"), "other devices keep their own budget")
}

func TestAllow_NilStore(t *testing.T) {
	var store *RateLimiterStore
	for range 10 {
		assert.True(t, store.Allow("A1"))
	}
}

func TestGetLimiter_Concurrent(t *testing.T) {
	store := NewRateLimiterStore(10, 5)
	key := uuid.NewString()

	var wg sync.WaitGroup
	seen := make(chan any, 50)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- store.GetLimiter(key)
		}()
	}
	wg.Wait()
	close(seen)

	first := store.GetLimiter(key)
	for l := range seen {
		assert.Same(t, first, l)
	}
}
