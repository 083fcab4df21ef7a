package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yeisme/genomeinsight/pkg/configs"
)

const (
	limiterIdleTTL       = 10 * time.Minute
	limiterSweepInterval = time.Minute
)

// keyedLimiter 按键维护令牌桶，闲置超过 limiterIdleTTL 的条目在访问时顺带清理.
type keyedLimiter struct {
	rps   rate.Limit
	burst int
	now   func() time.Time

	mu        sync.Mutex
	entries   map[string]*limiterEntry
	lastSweep time.Time
}

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newKeyedLimiter(rps float64, burst int) *keyedLimiter {
	return &keyedLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
		entries: make(map[string]*limiterEntry),
	}
}

func (k *keyedLimiter) get(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	if now.Sub(k.lastSweep) > limiterSweepInterval {
		for key, e := range k.entries {
			if now.Sub(e.lastSeen) > limiterIdleTTL {
				delete(k.entries, key)
			}
		}

		k.lastSweep = now
	}

	e, ok := k.entries[key]
	if !ok {
		e = &limiterEntry{lim: rate.NewLimiter(k.rps, k.burst)}
		k.entries[key] = e
	}

	e.lastSeen = now

	return e.lim
}

// RateLimitMiddleware 返回一个基于配置的限流中间件.
// Key 可选 global、ip 或 header:<Header-Name>（缺失时退回客户端 IP）.
func RateLimitMiddleware(cfg configs.RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.RPS <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	keyMode := strings.ToLower(strings.TrimSpace(cfg.Key))
	limiters := newKeyedLimiter(cfg.RPS, cfg.Burst)
	retryAfter := strconv.Itoa(int(math.Ceil(1 / cfg.RPS)))

	return func(c *gin.Context) {
		key := "global"

		switch {
		case keyMode == "global" || keyMode == "":
		case strings.HasPrefix(keyMode, "header:"):
			key = c.GetHeader(strings.TrimPrefix(keyMode, "header:"))
			if key == "" {
				key = clientIP(c)
			}
		default:
			key = clientIP(c)
		}

		if key == "" {
			key = "unknown"
		}

		if !limiters.get(key).Allow() {
			c.Header("Retry-After", retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})

			return
		}

		c.Next()
	}
}

func clientIP(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}

	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}

	return host
}
