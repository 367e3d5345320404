package kit

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIPRateLimiter_LimitsPerIP(t *testing.T) {
	limiter := NewIPRateLimiter(2, 60)
	h := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	hit := func(remote, xff string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.RemoteAddr = remote
		if xff != "" {
			req.Header.Set("X-Forwarded-For", xff)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := hit("10.0.0.1:1234", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status=%d want=%d", i+1, rec.Code, http.StatusOK)
		}
	}

	rec := hit("10.0.0.1:1234", "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("over limit: status=%d want=%d", rec.Code, http.StatusTooManyRequests)
	}
	if got := rec.Header().Get("Retry-After"); got != "60" {
		t.Fatalf("Retry-After=%q want %q", got, "60")
	}

	// a different client is not affected
	if rec := hit("10.0.0.2:1234", ""); rec.Code != http.StatusOK {
		t.Fatalf("other ip: status=%d want=%d", rec.Code, http.StatusOK)
	}

	// X-Forwarded-For identifies the client ahead of the socket address
	if rec := hit("10.0.0.1:1234", "203.0.113.7"); rec.Code != http.StatusOK {
		t.Fatalf("forwarded ip: status=%d want=%d", rec.Code, http.StatusOK)
	}
}
