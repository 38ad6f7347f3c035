package limiter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"
)

func TestMiddleware_BurstThenReject(t *testing.T) {
	l := NewIPRateLimiter("test", rate.Limit(0.001), 2)
	defer l.Stop()

	handler := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for n, status := range want {
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.RemoteAddr = "192.0.2.10:1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		if w.Code != status {
			t.Fatalf("request %d: status = %d, want %d", n+1, w.Code, status)
		}
	}

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.RemoteAddr = "192.0.2.11:1234"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("other IP: status = %d, want 200", w.Code)
	}
}

func TestGetLimiter_ReusesBucket(t *testing.T) {
	l := NewIPRateLimiter("test", rate.Limit(1), 1)
	defer l.Stop()

	if l.GetLimiter("a") != l.GetLimiter("a") {
		t.Error("GetLimiter() returned different buckets for the same IP")
	}
	if l.GetLimiter("a") == l.GetLimiter("b") {
		t.Error("GetLimiter() shared a bucket between IPs")
	}
}
