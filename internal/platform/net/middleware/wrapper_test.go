package middleware_test

import (
	"compress/flate"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kristech/internal/platform/net/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func TestWrappers_ReturnHandlers(t *testing.T) {
	if middleware.RequestID() == nil ||
		middleware.Timeout(time.Second) == nil ||
		middleware.NoCache() == nil ||
		middleware.StripSlashes() == nil ||
		middleware.Heartbeat("/ping") == nil {
		t.Fatal("expected non nil handlers from wrappers")
	}
}

func TestCompress_GzipWhenAccepted(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `"`+strings.Repeat("a", 4<<10)+`"`)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	middleware.Compress(flate.BestSpeed)(h).ServeHTTP(rr, req)

	if enc := rr.Result().Header.Get("Content-Encoding"); enc == "" {
		t.Fatalf("expected Content-Encoding to be set")
	}
}

func TestCORS_DefaultsAllowWebsitePreflight(t *testing.T) {
	cors := middleware.CORS(middleware.CORSOptions{AllowedOrigins: []string{"https://kristechit.com"}})
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	req := httptest.NewRequest(http.MethodOptions, "/api/contact/submit", nil)
	req.Header.Set("Origin", "https://kristechit.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rr := httptest.NewRecorder()
	cors(h).ServeHTTP(rr, req)

	if rr.Code != 200 && rr.Code != 204 {
		t.Fatalf("expected 200 or 204 got %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "https://kristechit.com" {
		t.Fatalf("origin not allowed: %v", rr.Header())
	}

	simple := httptest.NewRequest(http.MethodPost, "/api/contact/submit", nil)
	simple.Header.Set("Origin", "https://kristechit.com")
	rr = httptest.NewRecorder()
	cors(h).ServeHTTP(rr, simple)
	if !strings.Contains(rr.Header().Get("Access-Control-Expose-Headers"), "Retry-After") {
		t.Fatalf("rate limit headers should be exposed: %v", rr.Header())
	}
}

func TestRequestChain_SetsIDAndNoCache(t *testing.T) {
	var seen string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = chimw.GetReqID(r.Context())
		w.WriteHeader(200)
	})
	wrapped := chain(h,
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RequestLogContext(),
		middleware.NoCache(),
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	rr := httptest.NewRecorder()
	wrapped.ServeHTTP(rr, req)

	if seen == "" || rr.Header().Get("X-Request-ID") != seen {
		t.Fatalf("request id %q not mirrored: %v", seen, rr.Header())
	}
	if rr.Header().Get("Cache-Control") == "" {
		t.Fatal("expected Cache-Control to be set by NoCache")
	}
}
