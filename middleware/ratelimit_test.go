package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLoginRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// 短窗口 200ms，最多 2 次
	router := gin.New()
	router.Use(LoginRateLimit(2, 200*time.Millisecond))
	router.POST("/login", func(c *gin.Context) {
		c.String(200, "ok")
	})

	doReq := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/login", nil)
		req.RemoteAddr = ip + ":12345"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, 200, doReq("192.168.1.1").Code)
	assert.Equal(t, 200, doReq("192.168.1.1").Code)
	w3 := doReq("192.168.1.1")
	assert.Equal(t, http.StatusTooManyRequests, w3.Code)
	assert.Contains(t, w3.Body.String(), "Too many login attempts")

	// 不同 IP 互不影响
	assert.Equal(t, 200, doReq("192.168.1.2").Code)

	// 窗口过后恢复
	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, 200, doReq("192.168.1.1").Code)
}

func TestLoginRateLimit_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(LoginRateLimit(0, time.Minute))
	router.POST("/login", func(c *gin.Context) { c.String(200, "ok") })

	for i := 0; i < 20; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST", "/login", nil))
		assert.Equal(t, 200, w.Code)
	}
}

func TestSlidingWindowSweep(t *testing.T) {
	s := newSlidingWindow(1, time.Second)
	now := time.Now()
	assert.True(t, s.allow("a", now))
	assert.False(t, s.allow("a", now.Add(500*time.Millisecond)))

	s.sweep(now.Add(2 * time.Second))
	assert.Empty(t, s.hits)
	assert.True(t, s.allow("a", now.Add(2*time.Second)))
}

func TestSlidingWindow_SweepsOnRequest(t *testing.T) {
	s := newSlidingWindow(1, time.Second)
	now := time.Now()
	assert.True(t, s.allow("a", now))
	assert.True(t, s.allow("b", now))
	assert.Len(t, s.hits, 2)

	// 一个窗口之后的请求会清掉其他 IP 的过期记录
	assert.True(t, s.allow("c", now.Add(2*time.Second)))
	assert.Len(t, s.hits, 1)
	assert.Contains(t, s.hits, "c")
}

func TestLoginRateLimit_NoBackgroundGoroutine(t *testing.T) {
	before := runtime.NumGoroutine()
	for i := 0; i < 50; i++ {
		LoginRateLimit(5, time.Minute)
	}
	assert.LessOrEqual(t, runtime.NumGoroutine(), before)
}
