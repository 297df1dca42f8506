package remote

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_AllowsBurst(t *testing.T) {
	r := NewRateLimiter(1, 3)

	assert.True(t, r.Allow())
	assert.True(t, r.Allow())
	assert.True(t, r.Allow())
	assert.False(t, r.Allow())
}

func TestRateLimiter_BackoffBlocksAllow(t *testing.T) {
	r := NewRateLimiter(100, 10)
	r.RecordRateLimitError(time.Minute)
	assert.False(t, r.Allow())
}

func TestRateLimiter_WaitRespectsContext(t *testing.T) {
	r := NewRateLimiter(100, 10)
	r.RecordRateLimitError(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, r.Wait(ctx), context.Canceled)
}

func TestRateLimiter_WaitWithoutBackoff(t *testing.T) {
	r := NewRateLimiter(100, 1)
	assert.NoError(t, r.Wait(context.Background()))
}

func TestRetryAfter(t *testing.T) {
	assert.Equal(t, 5*time.Second, retryAfter("5"))
	assert.Zero(t, retryAfter(""))
	assert.Zero(t, retryAfter("Wed, 21 Oct 2015 07:28:00 GMT"))
	assert.Zero(t, retryAfter("-3"))
}
