package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// frozen pins the limiter clock so refill does not depend on wall time.
func frozen(l *Limiter, at time.Time) *time.Time {
	current := at
	l.now = func() time.Time { return current }
	return &current
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()
	frozen(limiter, time.Unix(1_700_000_000, 0))

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.InDelta(t, 6.0, info.RetryAfter.Seconds(), 0.001)
	assert.True(t, info.ResetTime.After(time.Unix(1_700_000_000, 0)))
}

func TestLimiter_Refill(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 60, DefaultWindow: time.Minute})
	defer limiter.Stop()
	clock := frozen(limiter, time.Unix(1_700_000_000, 0))

	for i := 0; i < 60; i++ {
		limiter.Allow("client", "/test", "GET")
	}
	allowed, _ := limiter.Allow("client", "/test", "GET")
	require.False(t, allowed)

	// One token per second
	*clock = clock.Add(time.Second)
	allowed, _ = limiter.Allow("client", "/test", "GET")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("client", "/test", "GET")
	assert.False(t, allowed)
}

func TestLimiter_DeniedRequestDoesNotConsume(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 60, DefaultWindow: time.Minute})
	defer limiter.Stop()
	clock := frozen(limiter, time.Unix(1_700_000_000, 0))

	for i := 0; i < 60; i++ {
		limiter.Allow("client", "/test", "GET")
	}
	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("client", "/test", "GET")
		require.False(t, allowed)
	}

	*clock = clock.Add(time.Second)
	allowed, _ := limiter.Allow("client", "/test", "GET")
	assert.True(t, allowed)
}

func TestLimiter_Whitelist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"10.0.0.1": true},
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow("10.0.0.1", "/test", "GET")
		assert.True(t, allowed)
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"10.0.0.2": true},
	})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("10.0.0.2", "/test", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false, DefaultLimit: 1, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("client", "/test", "GET")
		assert.True(t, allowed)
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    100,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})
	defer limiter.Stop()
	frozen(limiter, time.Unix(1_700_000_000, 0))

	// Submit allows a burst of 3
	for i := 0; i < 3; i++ {
		allowed, info := limiter.Allow("client", "/api/submit", "POST")
		require.True(t, allowed)
		assert.Equal(t, 10, info.Limit)
	}
	allowed, _ := limiter.Allow("client", "/api/submit", "POST")
	assert.False(t, allowed)

	// The streaming variant draws from the same bucket
	allowed, _ = limiter.Allow("client", "/api/submit/stream", "POST")
	assert.False(t, allowed)

	// Other endpoints have their own buckets
	allowed, info := limiter.Allow("client", "/api/catalog", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 100, info.Limit)

	// Health is unlimited
	for i := 0; i < 200; i++ {
		allowed, _ = limiter.Allow("client", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 50, DefaultWindow: time.Hour})
	defer limiter.Stop()
	frozen(limiter, time.Unix(1_700_000_000, 0))

	var allowedCount atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := limiter.Allow("client", "/test", "GET"); ok {
				allowedCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), allowedCount.Load())
}

func TestLimiter_CleanupRemovesIdleBuckets(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute, IdleTimeout: time.Minute})
	defer limiter.Stop()
	clock := frozen(limiter, time.Unix(1_700_000_000, 0))

	for i := 0; i < 3; i++ {
		limiter.Allow(fmt.Sprintf("client-%d", i), "/test", "GET")
	}
	*clock = clock.Add(30 * time.Second)
	limiter.Allow("client-0", "/test", "GET")

	*clock = clock.Add(45 * time.Second)
	limiter.cleanupBuckets()

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.Len(t, limiter.buckets, 1)
	assert.Contains(t, limiter.buckets, "client-0:/test:GET")
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, info := limiter.Allow("client", "/api/catalog", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 600, info.Limit)
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	limiter := NewLimiter(DefaultConfig())
	limiter.Stop()
	assert.NotPanics(t, limiter.Stop)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/api/submit", Method: "POST", Limit: 10},
		{Path: "/api/", Method: "GET", Limit: 50},
	}

	assert.Equal(t, 10, MatchEndpoint("/api/submit", "POST", configs).Limit)
	assert.Equal(t, 50, MatchEndpoint("/api/catalog", "GET", configs).Limit)
	assert.Equal(t, 50, MatchEndpoint("/api/submit", "GET", configs).Limit)
	assert.Nil(t, MatchEndpoint("/api/submit", "DELETE", configs))
	assert.Nil(t, MatchEndpoint("/other", "POST", configs))
	assert.Equal(t, 10, MatchEndpoint("/api/submit/stream", "POST", configs).Limit)
	assert.Nil(t, MatchEndpoint("/api/submitted", "POST", configs))
	assert.Equal(t, 0, MatchEndpoint("/metrics", "GET", configs).Limit)
}

func TestParseIPList(t *testing.T) {
	assert.Equal(t, map[string]bool{"1.1.1.1": true, "2.2.2.2": true}, ParseIPList(" 1.1.1.1, ,2.2.2.2 "))
	assert.Empty(t, ParseIPList(""))
}
