package bot

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// UserLimiter is a per-user token bucket
type UserLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	users     map[string]*limiterEntry
	lastPrune time.Time
	now       func() time.Time
}

// NewUserLimiter allows each user perSecond commands on average with the given burst
func NewUserLimiter(perSecond float64, burst int) *UserLimiter {
	return &UserLimiter{
		limit: rate.Limit(perSecond),
		burst: burst,
		users: make(map[string]*limiterEntry),
		now:   time.Now,
	}
}

// Allow reports whether the user may run a command now, consuming a token if so
func (l *UserLimiter) Allow(userID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastPrune) > limiterIdleTTL {
		l.prune(now)
	}

	entry, ok := l.users[userID]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.users[userID] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

// prune drops users idle long enough for their bucket to have refilled
func (l *UserLimiter) prune(now time.Time) {
	for id, entry := range l.users {
		if now.Sub(entry.lastSeen) > limiterIdleTTL {
			delete(l.users, id)
		}
	}
	l.lastPrune = now
}
