package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountdownExpiresAndFloorsAtZero(t *testing.T) {
	c := NewCountdown(50 * time.Millisecond)
	assert.True(t, c.Active())

	assert.False(t, c.Tick(20*time.Millisecond))
	assert.Equal(t, 30*time.Millisecond, c.Remaining())
	assert.InDelta(t, 30.0, c.Millis(), 1e-9)

	assert.True(t, c.Tick(40*time.Millisecond))
	assert.Equal(t, time.Duration(0), c.Remaining())
	assert.False(t, c.Active())

	assert.True(t, c.Tick(time.Millisecond), "an expired countdown stays expired")
}

func TestZeroCountdownIsExpired(t *testing.T) {
	var c Countdown
	assert.False(t, c.Active())
	c.Set(time.Second)
	c.Clear()
	assert.False(t, c.Active())
}
