package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"newslens-api/pkg/featureflags"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(0.001, 3, time.Minute)

	assert.True(t, rl.Allow("127.0.0.1"))
	assert.True(t, rl.Allow("127.0.0.1"))
	assert.True(t, rl.Allow("127.0.0.1"))
	assert.False(t, rl.Allow("127.0.0.1"))

	assert.True(t, rl.Allow("192.168.1.1"), "other clients have their own bucket")
	assert.Equal(t, 2, rl.Len())
}

func TestRateLimiter_Refills(t *testing.T) {
	rl := NewRateLimiter(20, 1, time.Minute)

	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))

	time.Sleep(80 * time.Millisecond)
	assert.True(t, rl.Allow("a"))
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, 1, 50*time.Millisecond)
	rl.Allow("a")

	rl.evict(time.Now().Add(time.Second))

	assert.Zero(t, rl.Len())
}

func TestRateLimiter_RunStopsWithContext(t *testing.T) {
	rl := NewRateLimiter(1, 1, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		rl.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func limitedRouter(rl *RateLimiter, flags featureflags.Manager) *gin.Engine {
	r := gin.New()
	r.Use(RateLimit(rl, flags))
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, "OK") })
	return r
}

func get(r http.Handler, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.RemoteAddr = ip + ":1234"
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_Returns429(t *testing.T) {
	flags := featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{featureflags.RateLimitEnabled: true})
	r := limitedRouter(NewRateLimiter(0.001, 2, time.Minute), flags)

	assert.Equal(t, http.StatusOK, get(r, "10.0.0.1").Code)
	rec := get(r, "10.0.0.1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Burst"))

	rec = get(r, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "rate limit exceeded")

	assert.Equal(t, http.StatusOK, get(r, "10.0.0.2").Code)
}

func TestRateLimit_DisabledByFlag(t *testing.T) {
	r := limitedRouter(NewRateLimiter(0.001, 1, time.Minute), featureflags.NewStaticManager(nil))

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, get(r, "10.0.0.1").Code)
	}
}
