package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToken_IsExpired(t *testing.T) {
	t.Parallel()

	now := time.Now()

	assert.False(t, (&Token{ExpiresAt: now.Add(time.Second)}).IsExpired(now))
	assert.True(t, (&Token{ExpiresAt: now}).IsExpired(now), "expiry instant is already expired")
	assert.True(t, (&Token{ExpiresAt: now.Add(-time.Second)}).IsExpired(now))
}
