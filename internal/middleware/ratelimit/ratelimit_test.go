package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestLimiter(perMinute int) (*Limiter, *time.Time) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	rl := NewLimiter(Config{RequestsPerMinute: perMinute})
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestAllowWindow(t *testing.T) {
	rl, now := newTestLimiter(2)

	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatalf("first two requests should pass")
	}
	if rl.Allow("a") {
		t.Fatalf("third request in the window should be rejected")
	}
	if !rl.Allow("b") {
		t.Fatalf("clients are counted separately")
	}

	*now = now.Add(time.Minute)
	if !rl.Allow("a") {
		t.Fatalf("new window should reset the count")
	}
	if m := rl.GetMetrics(); m.Rejected != 1 || m.ClientCount != 2 {
		t.Fatalf("metrics = %+v", m)
	}
}

func TestCleanupStaleEntries(t *testing.T) {
	rl, now := newTestLimiter(5)
	rl.Allow("old")
	*now = now.Add(11 * time.Minute)
	rl.Allow("fresh")

	if n := rl.cleanupStaleEntries(); n != 1 {
		t.Fatalf("removed %d, want 1", n)
	}
	if m := rl.GetMetrics(); m.ClientCount != 1 {
		t.Fatalf("clients = %d", m.ClientCount)
	}
}

func TestMiddlewareLimitsWritesOnly(t *testing.T) {
	rl, _ := newTestLimiter(1)
	h := rl.Middleware(func(*http.Request) string { return "c" }, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	serve := func(method string) int {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(method, "/api/expenses", nil))
		return rr.Code
	}

	if code := serve(http.MethodPost); code != http.StatusOK {
		t.Fatalf("first write = %d", code)
	}
	if code := serve(http.MethodDelete); code != http.StatusTooManyRequests {
		t.Fatalf("second write = %d", code)
	}
	for i := 0; i < 3; i++ {
		if code := serve(http.MethodGet); code != http.StatusOK {
			t.Fatalf("reads must not be limited, got %d", code)
		}
	}
}

func TestMiddlewareOnLimit(t *testing.T) {
	rl, _ := newTestLimiter(1)
	called := false
	h := rl.Middleware(func(*http.Request) string { return "c" }, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTooManyRequests)
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPatch, "/", nil))
		if i == 1 && rr.Header().Get("Retry-After") != "60" {
			t.Errorf("missing Retry-After")
		}
	}
	if !called {
		t.Fatalf("onLimit not called")
	}
}
