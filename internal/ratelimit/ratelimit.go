package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter bounds booking creation per caller identifier (email or IP). Each
// identifier gets its own token bucket refilling at perHour tokens an hour.
type Limiter struct {
	mu       sync.Mutex
	perHour  int
	buckets  map[string]*rate.Limiter
	lastSeen map[string]time.Time
}

func New(perHour int) *Limiter {
	return &Limiter{
		perHour:  perHour,
		buckets:  make(map[string]*rate.Limiter),
		lastSeen: make(map[string]time.Time),
	}
}

// Allow reports whether the identifier may proceed, and when not, how long
// to wait before retrying.
func (l *Limiter) Allow(identifier string) (bool, time.Duration) {
	lim := l.bucket(identifier)

	r := lim.Reserve()
	if delay := r.Delay(); delay > 0 {
		r.Cancel()
		return false, delay
	}
	return true, 0
}

func (l *Limiter) bucket(identifier string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.buckets[identifier]
	if !ok {
		lim = rate.NewLimiter(rate.Every(time.Hour/time.Duration(l.perHour)), l.perHour)
		l.buckets[identifier] = lim
	}
	l.lastSeen[identifier] = time.Now()

	// Drop buckets idle long enough to have fully refilled.
	if len(l.buckets) > 10000 {
		cutoff := time.Now().Add(-2 * time.Hour)
		for id, seen := range l.lastSeen {
			if seen.Before(cutoff) {
				delete(l.buckets, id)
				delete(l.lastSeen, id)
			}
		}
	}

	return lim
}
