package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doFrom(h http.Handler, addr string) int {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = addr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiter_PerClientBuckets(t *testing.T) {
	rl := NewRateLimiter(2, time.Hour)
	h := rl.Handler(okHandler())

	assert.Equal(t, http.StatusOK, doFrom(h, "10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, doFrom(h, "10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, doFrom(h, "10.0.0.1:1002"))

	assert.Equal(t, http.StatusOK, doFrom(h, "10.0.0.2:1000"))
}

func TestRateLimiter_SweepsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	now := time.Now()
	rl.now = func() time.Time { return now }

	rl.getLimiter("a")
	rl.getLimiter("b")
	assert.Len(t, rl.clients, 2)

	now = now.Add(2 * time.Minute)
	rl.getLimiter("b")

	assert.Len(t, rl.clients, 1)
	assert.Contains(t, rl.clients, "b")
}
