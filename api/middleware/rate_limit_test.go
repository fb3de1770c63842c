package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crystara/crystara-backend/pkg/config"
)

type countingLimiter struct {
	counts map[string]int64
}

func (c *countingLimiter) FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error) {
	if c.counts == nil {
		c.counts = map[string]int64{}
	}
	c.counts[scope]++
	return c.counts[scope] <= limit, c.counts[scope], nil
}

func TestPaymentRateLimitBlocksAfterLimit(t *testing.T) {
	cfg := config.RateLimitConfig{PaymentWindow: time.Minute, PaymentIPLimit: 2}
	limiter := &countingLimiter{}

	handler := PaymentRateLimit(cfg, limiter, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/create-order", nil)
		req.Header.Set("X-Forwarded-For", ip)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if got := send("1.2.3.4"); got != http.StatusOK {
		t.Fatalf("first request status = %d", got)
	}
	if got := send("1.2.3.4"); got != http.StatusOK {
		t.Fatalf("second request status = %d", got)
	}
	if got := send("1.2.3.4"); got != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d, want 429", got)
	}
	// A different client keeps its own window.
	if got := send("5.6.7.8"); got != http.StatusOK {
		t.Fatalf("other ip status = %d", got)
	}
}

func TestPaymentRateLimitDisabledWithoutConfig(t *testing.T) {
	handler := PaymentRateLimit(config.RateLimitConfig{}, &countingLimiter{}, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/create-order", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	}
}
