package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/marketpulse/internal/domain/dto"
	"github.com/guttosm/marketpulse/internal/logger"
)

// RequestLogger emits one structured "http_request" line per request.
// Server errors log at error level, client errors at warn.
//
// Example log output:
//
//	{"level":"info","request_id":"123e4567-...","method":"GET","route":"/api/v1/stocks/:symbol","path":"/api/v1/stocks/AAPL","status":200,"latency_ms":15,"message":"http_request"}
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		rid, _ := c.Get(RequestIDKey)

		ev := logger.L().Info()
		switch {
		case status >= http.StatusInternalServerError:
			ev = logger.L().Error()
		case status >= http.StatusBadRequest:
			ev = logger.L().Warn()
		}
		ev.Str("request_id", toString(rid)).
			Str("method", c.Request.Method).
			Str("route", c.FullPath()).
			Str("path", path).
			Int("status", status).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// Defaults used by RateLimiter for non-positive arguments.
const (
	DefaultRateLimit  = 60
	DefaultRateWindow = time.Minute
)

// client tracks one IP inside the current window.
type client struct {
	lastSeen time.Time
	count    int
}

// limiter holds the per-IP counters of one RateLimiter instance.
type limiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   int
	window  time.Duration
}

// allow records a request from ip and reports whether it is within the limit.
func (l *limiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	cl, ok := l.clients[ip]
	if !ok || now.Sub(cl.lastSeen) > l.window {
		cl = &client{lastSeen: now, count: 1}
		l.clients[ip] = cl
	} else {
		cl.count++
		cl.lastSeen = now
	}
	return cl.count <= l.limit
}

// RateLimiter caps requests per client IP at limit per window. Each call
// returns an independent limiter; non-positive arguments fall back to
// DefaultRateLimit and DefaultRateWindow. Upstream quotas (Alpha Vantage
// allows a handful of calls per minute) make this the first line of defense
// for cache misses.
//
// Response when limit exceeded:
//
//	HTTP/1.1 429 Too Many Requests
//	{"message": "rate limit exceeded", "timestamp": "..."}
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	if window <= 0 {
		window = DefaultRateWindow
	}
	l := &limiter{clients: make(map[string]*client), limit: limit, window: window}

	return func(c *gin.Context) {
		if !l.allow(c.ClientIP(), time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
			return
		}
		c.Next()
	}
}
