//go:build unit

package sessionstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLFor(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	t.Run("normal expiry gets the skew buffer", func(t *testing.T) {
		ttl := ttlFor(now.Add(15*time.Minute), now)
		assert.Equal(t, 20*time.Minute, ttl)
	})

	t.Run("imminent expiry is floored at the minimum", func(t *testing.T) {
		ttl := ttlFor(now.Add(-10*time.Minute), now)
		assert.Equal(t, time.Minute, ttl)
	})

	t.Run("expiry just past the floor keeps its computed value", func(t *testing.T) {
		ttl := ttlFor(now.Add(-4*time.Minute+time.Second), now)
		assert.Equal(t, time.Minute+time.Second, ttl)
	})
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "checkout:session:abc", sessionKey("abc"))
}
