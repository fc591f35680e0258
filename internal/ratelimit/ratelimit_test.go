package ratelimit

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestLimiter(start time.Time) (*Limiter, *time.Time) {
	current := start
	l := New()
	l.now = func() time.Time { return current }
	return l, &current
}

func TestCheckSecondCallLimited(t *testing.T) {
	l, clock := newTestLimiter(time.Unix(1000, 0))

	first := l.Check("u1", "ping", 2*time.Second)
	require.False(t, first.Limited)

	second := l.Check("u1", "ping", 2*time.Second)
	require.True(t, second.Limited)
	require.Equal(t, "2.0", second.Remaining)

	remaining, err := strconv.ParseFloat(second.Remaining, 64)
	require.NoError(t, err)
	require.Greater(t, remaining, 0.0)
	require.LessOrEqual(t, remaining, 2.0)

	*clock = clock.Add(2100 * time.Millisecond)
	third := l.Check("u1", "ping", 2*time.Second)
	require.False(t, third.Limited)
}

func TestCheckRemainingCountsDown(t *testing.T) {
	l, clock := newTestLimiter(time.Unix(1000, 0))

	l.Check("u1", "weather", 5*time.Second)
	*clock = clock.Add(1500 * time.Millisecond)

	res := l.Check("u1", "weather", 5*time.Second)
	require.True(t, res.Limited)
	require.Equal(t, "3.5", res.Remaining)
}

func TestScopedPerCommandAndUser(t *testing.T) {
	l, _ := newTestLimiter(time.Unix(1000, 0))

	require.False(t, l.Check("u1", "ping", 2*time.Second).Limited)
	require.False(t, l.Check("u1", "weather", 2*time.Second).Limited, "other command must not be throttled")
	require.False(t, l.Check("u2", "ping", 2*time.Second).Limited, "other user must not be throttled")
	require.True(t, l.Check("u1", "ping", 2*time.Second).Limited)
}

func TestZeroCooldownFallsBackToDefault(t *testing.T) {
	l, _ := newTestLimiter(time.Unix(1000, 0))

	l.Check("u1", "ping", 0)
	res := l.Check("u1", "ping", 0)
	require.True(t, res.Limited)
	require.Equal(t, "2.0", res.Remaining)
}

func TestClearUser(t *testing.T) {
	l, _ := newTestLimiter(time.Unix(1000, 0))

	l.Check("u1", "ping", 10*time.Second)
	l.ClearUser("u1", "ping")
	require.False(t, l.Check("u1", "ping", 10*time.Second).Limited)
}

func TestClearCommand(t *testing.T) {
	l, _ := newTestLimiter(time.Unix(1000, 0))

	l.Check("u1", "ping", 10*time.Second)
	l.Check("u2", "ping", 10*time.Second)
	l.Check("u1", "weather", 10*time.Second)
	l.ClearCommand("ping")

	require.False(t, l.Check("u1", "ping", 10*time.Second).Limited)
	require.False(t, l.Check("u2", "ping", 10*time.Second).Limited)
	require.True(t, l.Check("u1", "weather", 10*time.Second).Limited)
}

func TestSweepRemovesOnlyExpired(t *testing.T) {
	l, clock := newTestLimiter(time.Unix(1000, 0))

	l.Check("u1", "ping", 2*time.Second)
	l.Check("u1", "traceroute", 60*time.Second)

	*clock = clock.Add(5 * time.Second)
	require.Equal(t, 1, l.sweep())

	require.False(t, l.Check("u1", "ping", 2*time.Second).Limited)
	require.True(t, l.Check("u1", "traceroute", 60*time.Second).Limited)
}
