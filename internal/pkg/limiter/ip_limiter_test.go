package limiter

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestGetLimiterReturnsSameInstancePerIP(t *testing.T) {
	l := NewIPRateLimiter(1, 3)

	first := l.GetLimiter("10.0.0.1")
	second := l.GetLimiter("10.0.0.1")
	other := l.GetLimiter("10.0.0.2")

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
}

func TestLimiterDeniesAfterBurstExhausted(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(0.001), 3)
	lim := l.GetLimiter("10.0.0.1")

	for n := 0; n < 3; n++ {
		assert.True(t, lim.Allow(), "attempt %d within burst should be allowed", n+1)
	}
	assert.False(t, lim.Allow(), "attempt beyond burst should be denied")
}

func TestLimiterIsolatesIPs(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(0.001), 1)

	assert.True(t, l.GetLimiter("10.0.0.1").Allow())
	assert.False(t, l.GetLimiter("10.0.0.1").Allow())

	// A different IP still has its full budget.
	assert.True(t, l.GetLimiter("10.0.0.2").Allow())
}

func TestConcurrentGetLimiterCreatesOneLimiterPerIP(t *testing.T) {
	l := NewIPRateLimiter(1, 5)

	const goroutines = 32
	results := make([]*rate.Limiter, goroutines)

	var wg sync.WaitGroup
	for n := 0; n < goroutines; n++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx] = l.GetLimiter("10.0.0.1")
		}(n)
	}
	wg.Wait()

	for n := 1; n < goroutines; n++ {
		assert.Same(t, results[0], results[n])
	}
}
