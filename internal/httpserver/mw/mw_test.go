package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MrSnakeDoc/linkvault/internal/logger"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func TestRateLimit(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	h := RateLimit(RateLimitConfig{
		Burst:             2,
		RefillPerIPPerMin: 60, // one token per second
		Now:               func() time.Time { return now },
	})(ok)

	req := func(addr string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
		r.RemoteAddr = addr
		return serve(h, r)
	}

	for i := 0; i < 2; i++ {
		if rec := req("10.0.0.1:1"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, rec.Code)
		}
	}

	rec := req("10.0.0.1:2")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "1" {
		t.Errorf("Retry-After = %q, want 1", got)
	}

	// other clients keep their own bucket
	if rec := req("10.0.0.2:1"); rec.Code != http.StatusOK {
		t.Errorf("other client: status = %d, want 200", rec.Code)
	}

	now = now.Add(time.Second)
	if rec := req("10.0.0.1:3"); rec.Code != http.StatusOK {
		t.Errorf("after refill: status = %d, want 200", rec.Code)
	}
}

func TestLimiterSweep(t *testing.T) {
	now := time.Now()
	l := newLimiter(RateLimitConfig{Burst: 1, IdleTTL: time.Minute, Now: func() time.Time { return now }})
	l.allow("a", now)
	l.allow("b", now)

	l.sweepMaybe(now.Add(2 * time.Minute))
	if got := l.size(); got != 0 {
		t.Errorf("size() after sweep = %d, want 0", got)
	}
}

func TestAllowOnlyCIDRS(t *testing.T) {
	log := logger.Nop()
	tests := []struct {
		name    string
		allowed []string
		remote  string
		want    int
	}{
		{"empty list passes", nil, "8.8.8.8:1", http.StatusOK},
		{"inside cidr", []string{"10.0.0.0/8"}, "10.9.9.9:1", http.StatusOK},
		{"outside cidr", []string{"10.0.0.0/8"}, "8.8.8.8:1", http.StatusForbidden},
		{"exact ip", []string{"127.0.0.1"}, "127.0.0.1:1", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/readyz", nil)
			r.RemoteAddr = tt.remote
			if rec := serve(AllowOnlyCIDRS(tt.allowed, false, log)(ok), r); rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestEnforceHost(t *testing.T) {
	log := logger.Nop()
	tests := []struct {
		name    string
		allowed []string
		host    string
		want    int
	}{
		{"empty list passes", nil, "anything", http.StatusOK},
		{"exact", []string{"links.example.com"}, "links.example.com", http.StatusOK},
		{"port ignored", []string{"localhost"}, "localhost:8080", http.StatusOK},
		{"case-insensitive", []string{"Links.Example.com"}, "links.example.COM", http.StatusOK},
		{"wildcard", []string{"*.example.com"}, "a.example.com", http.StatusOK},
		{"wildcard not bare", []string{"*.example.com"}, "example.com", http.StatusForbidden},
		{"other host", []string{"links.example.com"}, "evil.com", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/links", nil)
			r.Host = tt.host
			if rec := serve(EnforceHost(tt.allowed, log)(ok), r); rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	h := CORS([]string{"http://localhost:5173"})(ok)

	r := httptest.NewRequest(http.MethodOptions, "/api/links", nil)
	r.Header.Set("Origin", "http://localhost:5173")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := serve(h, r)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Access-Control-Allow-Origin = %q, want the client origin", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/links", nil)
	r.Header.Set("Origin", "http://evil.test")
	rec = serve(h, r)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q for unknown origin, want empty", got)
	}
}
