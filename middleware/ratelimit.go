package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// slidingWindow 按 key 记录窗口内的请求时间
type slidingWindow struct {
	mu        sync.Mutex
	window    time.Duration
	max       int
	hits      map[string][]time.Time
	lastSweep time.Time
}

func newSlidingWindow(max int, window time.Duration) *slidingWindow {
	return &slidingWindow{window: window, max: max, hits: make(map[string][]time.Time)}
}

// allow 记录一次请求，超过上限时返回 false 且不记录。
// 距上次清理超过一个窗口时顺带清理全部过期记录。
func (s *slidingWindow) allow(key string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now.Sub(s.lastSweep) >= s.window {
		s.sweepLocked(now)
	}
	ts := prune(s.hits[key], now.Add(-s.window))
	if len(ts) >= s.max {
		s.hits[key] = ts
		return false
	}
	s.hits[key] = append(ts, now)
	return true
}

// sweep 清理过期记录
func (s *slidingWindow) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(now)
}

func (s *slidingWindow) sweepLocked(now time.Time) {
	s.lastSweep = now
	cutoff := now.Add(-s.window)
	for key, ts := range s.hits {
		if ts = prune(ts, cutoff); len(ts) == 0 {
			delete(s.hits, key)
		} else {
			s.hits[key] = ts
		}
	}
}

func prune(ts []time.Time, cutoff time.Time) []time.Time {
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// LoginRateLimit 登录限流：每 IP 在 window 内最多 maxAttempts 次，超过返回 429。
// maxAttempts <= 0 时不限流。
func LoginRateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	if maxAttempts <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	limiter := newSlidingWindow(maxAttempts, window)

	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP(), time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "Too many login attempts. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
