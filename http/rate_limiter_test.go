package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter_AllowsUpToCapacity(t *testing.T) {

	limiter := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !limiter.Allow("farm:1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	if limiter.Allow("farm:1") {
		t.Error("request over capacity should be rejected")
	}

	// Other farms have their own bucket.
	if !limiter.Allow("farm:2") {
		t.Error("separate farm should be allowed")
	}
}

func TestRateLimiter_RefillsOverWindow(t *testing.T) {

	limiter := NewRateLimiter(1, 10*time.Millisecond)

	if !limiter.Allow("farm:1") {
		t.Fatal("first request should be allowed")
	}
	if limiter.Allow("farm:1") {
		t.Fatal("second request should be rejected")
	}

	time.Sleep(15 * time.Millisecond)

	if !limiter.Allow("farm:1") {
		t.Error("request after the refill window should be allowed")
	}
}

func TestRateLimitMiddleware_BucketsByFarm(t *testing.T) {

	limiter := NewRateLimiter(1, time.Minute)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RateLimitMiddleware(limiter, ok)

	send := func(target string) int {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.RemoteAddr = "10.0.0.1:5555"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	// Two farms behind one host connection spend separate budgets.
	if code := send("/credit/report?farm_id=1"); code != http.StatusOK {
		t.Fatalf("farm 1 first request: expected 200, got %d", code)
	}
	if code := send("/credit/report?farm_id=2"); code != http.StatusOK {
		t.Errorf("farm 2 first request: expected 200, got %d", code)
	}
	if code := send("/credit/report?farm_id=1"); code != http.StatusTooManyRequests {
		t.Errorf("farm 1 over budget: expected 429, got %d", code)
	}

	// No farm_id falls back to the caller's address bucket.
	if code := send("/clock/advance"); code != http.StatusOK {
		t.Errorf("address bucket first request: expected 200, got %d", code)
	}
	if code := send("/clock/advance"); code != http.StatusTooManyRequests {
		t.Errorf("address bucket over budget: expected 429, got %d", code)
	}
}
