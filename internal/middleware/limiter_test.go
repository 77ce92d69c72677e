package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiter_GeneralBurst(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	handler := rl.Middleware(okHandler())

	codes := map[int]int{}
	for i := 0; i < TierGeneral.Burst+5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes[w.Code]++
	}

	assert.GreaterOrEqual(t, codes[http.StatusOK], TierGeneral.Burst)
	assert.NotZero(t, codes[http.StatusTooManyRequests])
}

func TestRateLimiter_SeparateClients(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	handler := rl.Middleware(okHandler())

	for i := 0; i < TierStrict.Burst; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/cart/user/1/checkout", nil)
		req.Header.Set(DeviceIDHeader, "device-a")
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/cart/user/1/checkout", nil)
	req.Header.Set(DeviceIDHeader, "device-b")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestResolveTier(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodPost, "/api/cart/user/1/checkout", "strict"},
		{http.MethodPost, "/api/orders/create-from-cart/1", "strict"},
		{http.MethodGet, "/api/orders/1", "general"},
		{http.MethodPost, "/api/cart", "general"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		assert.Equal(t, tt.want, resolveTier(req).Name, tt.path)
	}
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.5:5555"
	assert.Equal(t, "ip:192.168.1.5", clientKey(req))

	req.Header.Set(DeviceIDHeader, "abc")
	assert.Equal(t, "device:abc", clientKey(req))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	now := time.Now()
	rl.now = func() time.Time { return now }

	rl.get("ip:1", TierGeneral)
	rl.get("ip:2", TierGeneral)

	now = now.Add(2 * time.Minute)
	rl.get("ip:2", TierGeneral)

	assert.Equal(t, 1, rl.Cleanup())
	assert.Len(t, rl.visitors, 1)
}

func TestRateLimiter_RunStopsOnCancel(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		rl.Run(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
