package routing_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/km-arc/go-eustace/framework/routing"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func newRouter(buf *bytes.Buffer) *routing.Router {
	return routing.New(slog.New(slog.NewJSONHandler(buf, nil)))
}

func do(t *testing.T, router *routing.Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRouter_Get(t *testing.T) {
	r := newRouter(&bytes.Buffer{})
	r.Get("/cars/{power}", okHandler)

	if rr := do(t, r, http.MethodGet, "/cars/sports"); rr.Code != http.StatusOK {
		t.Errorf("GET /cars/sports: got %d want 200", rr.Code)
	}
}

func TestRouter_Post(t *testing.T) {
	r := newRouter(&bytes.Buffer{})
	r.Post("/cars", okHandler)

	if rr := do(t, r, http.MethodPost, "/cars"); rr.Code != http.StatusOK {
		t.Errorf("POST /cars: got %d want 200", rr.Code)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	r := newRouter(&bytes.Buffer{})
	r.Get("/cars", okHandler)

	if rr := do(t, r, http.MethodPost, "/cars"); rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /cars: got %d want 405", rr.Code)
	}
}

func TestRouter_NotFound(t *testing.T) {
	r := newRouter(&bytes.Buffer{})
	r.Get("/cars", okHandler)

	if rr := do(t, r, http.MethodGet, "/boats"); rr.Code != http.StatusNotFound {
		t.Errorf("GET /boats: got %d want 404", rr.Code)
	}
}

func TestRouter_Prefix(t *testing.T) {
	r := newRouter(&bytes.Buffer{})
	r.Prefix("/api", func(api *routing.Router) {
		api.Get("/chassis/{serial}", func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write([]byte(chi.URLParam(req, "serial")))
		})
	})

	rr := do(t, r, http.MethodGet, "/api/chassis/abc_1")
	if rr.Code != http.StatusOK {
		t.Fatalf("GET /api/chassis/abc_1: got %d want 200", rr.Code)
	}
	if rr.Body.String() != "abc_1" {
		t.Errorf("serial: got %q want 'abc_1'", rr.Body.String())
	}
}

func TestRouter_Middleware(t *testing.T) {
	r := newRouter(&bytes.Buffer{})
	r.Middleware(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Garage", "open")
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/healthz", okHandler)

	rr := do(t, r, http.MethodGet, "/healthz")
	if got := rr.Header().Get("X-Garage"); got != "open" {
		t.Errorf("X-Garage: got %q want 'open'", got)
	}
}

func TestRouter_RecoversFromPanic(t *testing.T) {
	r := newRouter(&bytes.Buffer{})
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	if rr := do(t, r, http.MethodGet, "/boom"); rr.Code != http.StatusInternalServerError {
		t.Errorf("GET /boom: got %d want 500", rr.Code)
	}
}

func TestRouter_LogsRequests(t *testing.T) {
	var buf bytes.Buffer
	r := newRouter(&buf)
	r.Get("/healthz", okHandler)

	do(t, r, http.MethodGet, "/healthz")

	line := buf.String()
	for _, want := range []string{`"msg":"http request"`, `"path":"/healthz"`, `"status":200`, `"request_id"`} {
		if !strings.Contains(line, want) {
			t.Errorf("log line missing %s: %s", want, line)
		}
	}
}
