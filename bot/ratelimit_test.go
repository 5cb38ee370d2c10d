package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(perSecond float64, burst int) (*UserLimiter, *time.Time) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewUserLimiter(perSecond, burst)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestUserLimiter_BurstThenRefill(t *testing.T) {
	l, now := newTestLimiter(1, 2)

	assert.True(t, l.Allow("u1"))
	assert.True(t, l.Allow("u1"))
	assert.False(t, l.Allow("u1"))

	*now = now.Add(time.Second)
	assert.True(t, l.Allow("u1"))
	assert.False(t, l.Allow("u1"))
}

func TestUserLimiter_UsersAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, 1)

	assert.True(t, l.Allow("u1"))
	assert.False(t, l.Allow("u1"))
	assert.True(t, l.Allow("u2"))
}

func TestUserLimiter_PrunesIdleUsers(t *testing.T) {
	l, now := newTestLimiter(1, 1)

	l.Allow("u1")
	*now = now.Add(2 * limiterIdleTTL)
	l.Allow("u2")

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.users, "u1")
	assert.Contains(t, l.users, "u2")
}
