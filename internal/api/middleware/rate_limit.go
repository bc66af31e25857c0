package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/promptlab-go/internal/config"
)

// slidingWindow counts requests per client over a rolling time window.
type slidingWindow struct {
	mu      sync.Mutex
	seen    map[string][]time.Time
	max     int
	window  time.Duration
	swept   time.Time
	sweepBy time.Duration
}

func newSlidingWindow(max, windowSeconds int) *slidingWindow {
	return &slidingWindow{
		seen:    make(map[string][]time.Time),
		max:     max,
		window:  time.Duration(windowSeconds) * time.Second,
		swept:   time.Now(),
		sweepBy: 5 * time.Minute,
	}
}

// allow records one request from the client and reports whether it fits
// in the window, how many more would, and when the window resets.
func (sw *slidingWindow) allow(client string) (bool, int, time.Time) {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	now := time.Now()
	if now.Sub(sw.swept) > sw.sweepBy {
		sw.sweep(now)
	}

	cutoff := now.Add(-sw.window)
	live := sw.seen[client][:0]
	for _, at := range sw.seen[client] {
		if at.After(cutoff) {
			live = append(live, at)
		}
	}

	reset := now.Add(sw.window)
	if len(live) >= sw.max {
		sw.seen[client] = live
		return false, 0, reset
	}

	sw.seen[client] = append(live, now)
	return true, sw.max - len(live) - 1, reset
}

// sweep drops clients whose entries have all expired. Runs inline under
// the lock instead of on a background goroutine; the map stays small.
func (sw *slidingWindow) sweep(now time.Time) {
	cutoff := now.Add(-sw.window)
	for client, times := range sw.seen {
		live := times[:0]
		for _, at := range times {
			if at.After(cutoff) {
				live = append(live, at)
			}
		}
		if len(live) == 0 {
			delete(sw.seen, client)
		} else {
			sw.seen[client] = live
		}
	}
	sw.swept = now
}

// RateLimit returns a sliding-window limiter keyed by client IP.
// exemptPaths are matched by prefix and bypass the limiter entirely.
func RateLimit(cfg config.RateLimitConfig, exemptPaths ...string) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	window := newSlidingWindow(cfg.MaxRequests, cfg.WindowSeconds)

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, exempt := range exemptPaths {
			if strings.HasPrefix(path, exempt) {
				c.Next()
				return
			}
		}

		allowed, remaining, reset := window.allow(clientIP(c))

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.MaxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

		if !allowed {
			retryAfter := int64(time.Until(reset).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"detail": "Rate limit exceeded. Please try again later.",
			})
			return
		}

		c.Next()
	}
}

// clientIP extracts the client IP, respecting reverse proxy headers.
func clientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := c.GetHeader("X-Real-IP"); xri != "" {
		return xri
	}
	return c.ClientIP()
}
