package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLimiter(t *testing.T) {
	t.Run("Limiter starts with a full bucket", func(t *testing.T) {
		// Arrange & Act
		limiter := NewLimiter(10, 5)

		// Assert
		require.NotNil(t, limiter)
		assert.Equal(t, float64(10), limiter.rate)
		assert.Equal(t, float64(5), limiter.capacity)
		assert.Equal(t, float64(5), limiter.tokens)
		assert.NotZero(t, limiter.lastTime)
	})

	t.Run("Zero burst rejects everything", func(t *testing.T) {
		// Arrange
		limiter := NewLimiter(10, 0)

		// Act & Assert
		assert.False(t, limiter.AllowAt(limiter.lastTime))
	})
}

func TestLimiter_AllowAt(t *testing.T) {
	t.Run("Burst is consumed then refused", func(t *testing.T) {
		// Arrange
		limiter := NewLimiter(1, 3)
		now := limiter.lastTime

		// Act & Assert
		for i := 0; i < 3; i++ {
			assert.True(t, limiter.AllowAt(now), "request %d", i)
		}
		assert.False(t, limiter.AllowAt(now))
	})

	t.Run("Tokens refill with elapsed time", func(t *testing.T) {
		// Arrange
		limiter := NewLimiter(2, 1)
		start := limiter.lastTime
		require.True(t, limiter.AllowAt(start))
		require.False(t, limiter.AllowAt(start))

		// Act & Assert
		assert.False(t, limiter.AllowAt(start.Add(100*time.Millisecond)))
		assert.True(t, limiter.AllowAt(start.Add(600*time.Millisecond)))
	})

	t.Run("Refill is capped at capacity", func(t *testing.T) {
		// Arrange
		limiter := NewLimiter(100, 2)
		later := limiter.lastTime.Add(time.Hour)

		// Act
		allowed := 0
		for i := 0; i < 5; i++ {
			if limiter.AllowAt(later) {
				allowed++
			}
		}

		// Assert
		assert.Equal(t, 2, allowed)
	})

	t.Run("Out of order timestamps do not mint tokens", func(t *testing.T) {
		// Arrange
		limiter := NewLimiter(1, 1)
		now := limiter.lastTime
		require.True(t, limiter.AllowAt(now))

		// Act & Assert
		assert.False(t, limiter.AllowAt(now.Add(-time.Minute)))
	})
}

func TestLimiter_RetryAfter(t *testing.T) {
	// Arrange
	limiter := NewLimiter(4, 1)
	require.True(t, limiter.AllowAt(limiter.lastTime))

	// Act
	wait := limiter.RetryAfter()

	// Assert
	assert.Equal(t, 250*time.Millisecond, wait)
	assert.Zero(t, NewLimiter(4, 1).RetryAfter())
}

func TestLimiter_Concurrent(t *testing.T) {
	// Arrange
	limiter := NewLimiter(0, 50)
	now := limiter.lastTime
	var allowed int64
	var wg sync.WaitGroup

	// Act
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.AllowAt(now) {
				atomic.AddInt64(&allowed, 1)
			}
		}()
	}
	wg.Wait()

	// Assert
	assert.Equal(t, int64(50), allowed)
}
