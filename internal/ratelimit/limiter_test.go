package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimiterAllowsWithinBurst(t *testing.T) {
	l := NewLimiter(Config{RequestsPerMin: 60, Burst: 5})

	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow("10.0.0.1"), "request %d within burst", i)
	}
	assert.False(t, l.Allow("10.0.0.1"), "burst exhausted")
}

func TestLimiterIsolatesIPs(t *testing.T) {
	l := NewLimiter(Config{RequestsPerMin: 60, Burst: 1})

	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"), "other IPs have their own buckets")
}
