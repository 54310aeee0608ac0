package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// testClock drives the limiter's notion of time without sleeping.
type testClock struct {
	at time.Time
}

func (c *testClock) now() time.Time { return c.at }

func (c *testClock) advance(d time.Duration) { c.at = c.at.Add(d) }

func newTestLimiter(limit int, window time.Duration) (*Limiter, *testClock) {
	clock := &testClock{at: time.Unix(1700000000, 0)}
	l := NewLimiter(limit, window)
	l.now = clock.now

	return l, clock
}

func TestAllowWithinLimit(t *testing.T) {
	l, _ := newTestLimiter(3, time.Second)

	for i := 0; i < 3; i++ {
		d := l.Allow("client")
		assert.True(t, d.Allowed)
		assert.Equal(t, 2-i, d.Remaining)
	}

	d := l.Allow("client")
	assert.False(t, d.Allowed)
}

func TestWindowReset(t *testing.T) {
	l, clock := newTestLimiter(3, time.Second)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("client").Allowed)
	}
	assert.False(t, l.Allow("client").Allowed)

	clock.advance(time.Second)
	d := l.Allow("client")
	assert.True(t, d.Allowed)
	assert.Equal(t, 2, d.Remaining)
}

func TestKeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, time.Second)

	assert.True(t, l.Allow("a").Allowed)
	assert.False(t, l.Allow("a").Allowed)
	assert.True(t, l.Allow("b").Allowed)
}

func TestRetryAfterRoundsUpToSeconds(t *testing.T) {
	l, clock := newTestLimiter(1, 500*time.Millisecond)

	assert.True(t, l.Allow("client").Allowed)

	// 200ms into a 500ms window: 300ms remain, reported as one second.
	clock.advance(200 * time.Millisecond)
	d := l.Allow("client")
	assert.False(t, d.Allowed)
	assert.Equal(t, time.Second, d.RetryAfter)
}

func TestRetryAfterLongWindow(t *testing.T) {
	l, clock := newTestLimiter(1, time.Minute)

	assert.True(t, l.Allow("client").Allowed)

	clock.advance(10*time.Second + 500*time.Millisecond)
	d := l.Allow("client")
	assert.False(t, d.Allowed)
	// 49.5s remain, rounded up to 50s.
	assert.Equal(t, 50*time.Second, d.RetryAfter)
}
