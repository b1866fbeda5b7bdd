package middleware

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"campusmarket/internal/apperr"
)

// visitorTTL is how long an idle caller keeps its bucket before eviction.
const visitorTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginRateLimiter keeps a token bucket per caller IP to blunt credential
// stuffing. Idle buckets are swept lazily so the map stays bounded by recent
// callers. Counters are in-process only; a multi-instance deployment needs a
// shared store instead.
type LoginRateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	lastSweep time.Time
}

// NewLoginRateLimiter allows attemptsPerMinute login attempts per caller,
// refilled evenly over the minute.
func NewLoginRateLimiter(attemptsPerMinute int) *LoginRateLimiter {
	return &LoginRateLimiter{
		visitors:  make(map[string]*visitor),
		limit:     rate.Every(time.Minute / time.Duration(attemptsPerMinute)),
		burst:     attemptsPerMinute,
		lastSweep: time.Now(),
	}
}

func (l *LoginRateLimiter) allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	if now.Sub(l.lastSweep) > visitorTTL {
		for ip, v := range l.visitors {
			if now.Sub(v.lastSeen) > visitorTTL {
				delete(l.visitors, ip)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	l.mu.Unlock()

	return v.limiter.Allow()
}

// Middleware rejects callers over budget with a 429.
func (l *LoginRateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.allow(c.RealIP()) {
				return apperr.RateLimited("Too many login attempts. Try again later.")
			}
			return next(c)
		}
	}
}
