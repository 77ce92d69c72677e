package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"catalog-be/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const DeviceIDHeader = "X-Device-ID"

// Tier is a token bucket policy shared by a class of requests.
type Tier struct {
	Name  string
	Limit rate.Limit
	Burst int
}

var (
	// Checkout writes several tables in one transaction.
	TierStrict = Tier{Name: "strict", Limit: rate.Limit(2), Burst: 5}

	TierGeneral = Tier{Name: "general", Limit: rate.Limit(10), Burst: 20}
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	idle     time.Duration
	now      func() time.Time
}

// NewRateLimiter forgets a client after idle without requests.
func NewRateLimiter(idle time.Duration) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		idle:     idle,
		now:      time.Now,
	}
}

func (rl *RateLimiter) get(key string, t Tier) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(t.Limit, t.Burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = rl.now()
	return v.limiter
}

// Cleanup drops visitors idle for longer than the configured window and
// returns how many were removed.
func (rl *RateLimiter) Cleanup() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	now := rl.now()
	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.idle {
			delete(rl.visitors, key)
			removed++
		}
	}
	return removed
}

// Run calls Cleanup every interval until ctx is done.
func (rl *RateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := rl.Cleanup(); n > 0 {
				logger.L().Debug("rate limiter visitors evicted", zap.Int("count", n))
			}
		}
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tier := resolveTier(r)
		key := clientKey(r) + ":" + tier.Name

		if !rl.get(key, tier).Allow() {
			logger.FromCtx(r.Context()).Warn("rate limit exceeded",
				zap.String("key", key),
				zap.String("path", r.URL.Path),
			)
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func resolveTier(r *http.Request) Tier {
	if r.Method == http.MethodPost &&
		(strings.HasSuffix(r.URL.Path, "/checkout") || strings.Contains(r.URL.Path, "/create-from-cart/")) {
		return TierStrict
	}
	return TierGeneral
}

// clientKey prefers the device id sent by the client and falls back to the
// remote IP.
func clientKey(r *http.Request) string {
	if id := r.Header.Get(DeviceIDHeader); id != "" {
		return "device:" + id
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}
