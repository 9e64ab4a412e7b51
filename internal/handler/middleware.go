package handler

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long a client may stay quiet before its bucket is
// dropped. A bucket refills completely within a minute, so a dropped client
// comes back to the same full burst.
const limiterIdleTTL = 2 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiters holds one token bucket per client key, sweeping idle ones.
type clientLimiters struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	clients   map[string]*clientLimiter
}

func newClientLimiters(perMin int, idleTTL time.Duration) *clientLimiters {
	return &clientLimiters{
		limit:   rate.Every(time.Minute / time.Duration(perMin)),
		burst:   perMin,
		idleTTL: idleTTL,
		clients: make(map[string]*clientLimiter),
	}
}

func (l *clientLimiters) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.idleTTL {
		for k, c := range l.clients {
			if now.Sub(c.lastSeen) >= l.idleTTL {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

func (l *clientLimiters) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// RateLimit returns a Gin middleware allowing perMin requests per minute per
// client IP. A non-positive perMin disables limiting.
func RateLimit(perMin int) gin.HandlerFunc {
	if perMin <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return rateLimit(newClientLimiters(perMin, limiterIdleTTL), time.Now)
}

func rateLimit(limiters *clientLimiters, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiters.allow(c.ClientIP(), now()) {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
