package service

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginLimiter throttles login attempts per client key (usually the remote
// IP) with a token bucket per key. It is safe for concurrent use. Keys idle
// for longer than the idle timeout are evicted by a background sweeper.
type LoginLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	limit    rate.Limit
	burst    int
	idle     time.Duration
	stop     chan struct{}
	once     sync.Once
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLoginLimiter allows burst immediate attempts per key, refilled at
// perMinute attempts per minute. A perMinute of 0 never refills.
func NewLoginLimiter(perMinute float64, burst int) *LoginLimiter {
	l := &LoginLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Limit(perMinute / 60),
		burst:    burst,
		idle:     10 * time.Minute,
		stop:     make(chan struct{}),
	}
	go l.sweep(5 * time.Minute)
	return l
}

// Allow reports whether key may attempt a login now, consuming one token if so.
func (l *LoginLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.limiters[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = e
	}
	e.lastSeen = time.Now()
	return e.limiter.Allow()
}

// Close stops the background sweeper.
func (l *LoginLimiter) Close() {
	l.once.Do(func() { close(l.stop) })
}

func (l *LoginLimiter) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.evictIdle(time.Now())
		}
	}
}

func (l *LoginLimiter) evictIdle(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := now.Add(-l.idle)
	for key, e := range l.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(l.limiters, key)
		}
	}
}
