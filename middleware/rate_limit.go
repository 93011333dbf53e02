package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/cppla/civicreport/utils"
)

const limiterIdleTTL = 5 * time.Minute

type rateLimiter struct {
	limiter *rate.Limiter
	expires time.Time
}

// ipLimiters holds one token bucket per client IP.
type ipLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rateLimiter
	limit    rate.Limit
	burst    int
}

// RateLimitMiddleware applies a per-IP token bucket allowing perMinute requests.
func RateLimitMiddleware(perMinute int) gin.HandlerFunc {
	perMinute = max(perMinute, 1)
	l := &ipLimiters{
		limiters: map[string]*rateLimiter{},
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    max(perMinute/2, 1),
	}

	return func(ctx *gin.Context) {
		if !l.allow(ctx.ClientIP(), time.Now()) {
			utils.Error(ctx, http.StatusTooManyRequests, "Too many requests, please try again later.")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

func (l *ipLimiters) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for k, rl := range l.limiters {
		if now.After(rl.expires) {
			delete(l.limiters, k)
		}
	}

	rl, ok := l.limiters[key]
	if !ok {
		rl = &rateLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = rl
	}
	rl.expires = now.Add(limiterIdleTTL)
	return rl.limiter.AllowN(now, 1)
}
