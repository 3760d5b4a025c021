package api

import (
	"context"
	"fmt"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"kristech/internal/modkit/repokit"
	"kristech/internal/platform/config"
	phttp "kristech/internal/platform/net/http"
	"kristech/internal/platform/store"
	"kristech/internal/platform/testkit"
)

type scanRow func(dst ...any) error

func (f scanRow) Scan(dst ...any) error { return f(dst...) }

// memDB answers the two statements the happy path issues
type memDB struct {
	mu   sync.Mutex
	next int64
}

func (m *memDB) Exec(context.Context, string, ...any) (repokit.CommandTag, error) { return nil, nil }
func (m *memDB) Query(context.Context, string, ...any) (repokit.Rows, error)      { return nil, nil }
func (m *memDB) QueryRow(_ context.Context, sql string, _ ...any) repokit.Row {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	switch {
	case strings.Contains(sql, "INSERT INTO contact_submissions"):
		m.mu.Lock()
		m.next++
		id := m.next
		m.mu.Unlock()
		return scanRow(func(dst ...any) error {
			*(dst[0].(*int64)) = id
			*(dst[1].(*time.Time)) = now
			return nil
		})
	case strings.Contains(sql, "SELECT NOW()"):
		return scanRow(func(dst ...any) error {
			*(dst[0].(*time.Time)) = now
			return nil
		})
	}
	return scanRow(func(...any) error { return io.ErrUnexpectedEOF })
}
func (m *memDB) Tx(_ context.Context, fn func(repokit.Queryer) error) error { return fn(m) }

func mountAPI(t *testing.T) phttp.Router {
	t.Helper()
	t.Setenv("SMTP_HOST", "")
	t.Setenv("CONTACT_ADMIN_JWT_SECRET", "")
	t.Setenv("CONTACT_RATE_MAX", "5")
	t.Setenv("CONTACT_RATE_WINDOW", "15m")
	r := phttp.AdaptChi(chi.NewRouter())
	w, err := Mount(r, Options{Config: config.New(), Store: &store.Store{PG: &memDB{}}, EnableSwagger: true})
	if err != nil {
		t.Fatal(err)
	}
	if w.Notify == nil || w.Housekeeping == nil {
		t.Fatalf("workers = %+v", w)
	}
	return r
}

func call(r phttp.Router, method, path, body string) (int, string) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, req)
	b, _ := io.ReadAll(rec.Result().Body)
	return rec.Code, string(b)
}

func TestMount_SubmitThenHealth(t *testing.T) {
	r := mountAPI(t)

	code, body := call(r, stdhttp.MethodPost, "/api/contact/submit",
		`{"firstName":"Jo","lastName":"Doe","email":"jo@x.com","service":"web-development","message":"Need a quote please.","privacy":"true"}`)
	if code != stdhttp.StatusCreated {
		t.Fatalf("submit status %d body %s", code, body)
	}
	got := testkit.MustJSON[struct {
		Success      bool  `json:"success"`
		SubmissionID int64 `json:"submissionId"`
	}](t, []byte(body))
	if !got.Success || got.SubmissionID != 1 {
		t.Fatalf("submit = %s", body)
	}

	code, body = call(r, stdhttp.MethodGet, "/api/health", "")
	if code != stdhttp.StatusOK {
		t.Fatalf("health status %d body %s", code, body)
	}
	testkit.MustContain(t, body, `"status":"ok"`)
}

func TestMount_RotatingForwardedForStillLimited(t *testing.T) {
	r := mountAPI(t)
	body := `{"firstName":"Jo","lastName":"Doe","email":"jo@x.com","service":"web-development","message":"Need a quote please.","privacy":"true"}`

	codes := make([]int, 0, 8)
	for i := 0; i < 8; i++ {
		req := httptest.NewRequest(stdhttp.MethodPost, "/api/contact/submit", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "198.51.100.4:5555"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	for i, c := range codes {
		want := stdhttp.StatusCreated
		if i >= 5 {
			want = stdhttp.StatusTooManyRequests
		}
		if c != want {
			t.Fatalf("codes = %v", codes)
		}
	}
}

func TestMount_TrustedProxyForwardsClientAddress(t *testing.T) {
	t.Setenv("API_TRUSTED_PROXIES", "198.51.100.0/24")
	r := mountAPI(t)
	body := `{"firstName":"Jo","lastName":"Doe","email":"jo@x.com","service":"web-development","message":"Need a quote please.","privacy":"true"}`

	// each forwarded client gets its own window behind the proxy
	for i := 0; i < 8; i++ {
		req := httptest.NewRequest(stdhttp.MethodPost, "/api/contact/submit", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "198.51.100.4:5555"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, req)
		if rec.Code != stdhttp.StatusCreated {
			t.Fatalf("request %d status %d", i, rec.Code)
		}
	}
}

func TestMount_ValidationFailure(t *testing.T) {
	r := mountAPI(t)
	code, body := call(r, stdhttp.MethodPost, "/api/contact/submit", `{"firstName":"J"}`)
	if code != stdhttp.StatusBadRequest {
		t.Fatalf("status %d", code)
	}
	testkit.MustContain(t, body, `"message":"Validation failed"`)
	testkit.MustContain(t, body, `"field":"firstName"`)
}

func TestMount_Docs(t *testing.T) {
	r := mountAPI(t)
	code, body := call(r, stdhttp.MethodGet, "/api/docs/doc.json", "")
	if code != stdhttp.StatusOK {
		t.Fatalf("status %d", code)
	}
	testkit.MustContain(t, body, `"/contact/submit"`)
}

func TestMount_RequiresStore(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	if _, err := Mount(r, Options{Config: config.New()}); err == nil {
		t.Fatal("expected error without a store")
	}
}
