package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ogurasousui/codex-usuario-api/internal/platform/requestid"
)

func newJSONLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingMiddleware_LogsRequestFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := NewLoggingMiddleware(newJSONLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodGet, "/usuarios/9", nil)
	req = req.WithContext(requestid.NewContext(req.Context(), "req-42"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON log: %v\nraw: %s", err, buf.String())
	}

	if entry["method"] != "GET" || entry["path"] != "/usuarios/9" {
		t.Errorf("unexpected method/path in %v", entry)
	}
	if status, _ := entry["status"].(float64); status != 404 {
		t.Errorf("status = %v, want 404", entry["status"])
	}
	if entry["level"] != "WARN" {
		t.Errorf("level = %v, want WARN", entry["level"])
	}
	if entry["request_id"] != "req-42" {
		t.Errorf("request_id = %v, want req-42", entry["request_id"])
	}
	if _, ok := entry["duration_ms"]; !ok {
		t.Error("expected 'duration_ms' field in log entry")
	}
}

func TestLoggingMiddleware_DefaultStatusIsOK(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := NewLoggingMiddleware(newJSONLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON log: %v", err)
	}
	if status, _ := entry["status"].(float64); status != 200 {
		t.Errorf("status = %v, want 200", entry["status"])
	}
	if entry["level"] != "INFO" {
		t.Errorf("level = %v, want INFO", entry["level"])
	}
}

func TestRecoveryMiddleware_Returns500(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := NewRecoveryMiddleware(newJSONLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/usuarios/crear", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	if body["code"] != "INTERNAL_ERROR" {
		t.Errorf("code = %q, want INTERNAL_ERROR", body["code"])
	}
	if !bytes.Contains(buf.Bytes(), []byte("panic recovered")) {
		t.Errorf("expected panic to be logged, got %s", buf.String())
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Parallel()

	var seen string
	handler := NewRequestIDMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/usuarios", nil)
	req.Header.Set(requestid.HeaderKey, "from-client")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if seen != "from-client" {
		t.Errorf("context id = %q, want from-client", seen)
	}
	if got := w.Header().Get(requestid.HeaderKey); got != "from-client" {
		t.Errorf("response header = %q, want from-client", got)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/usuarios", nil))
	if seen == "" || w.Header().Get(requestid.HeaderKey) != seen {
		t.Errorf("expected generated id to be echoed, context=%q header=%q", seen, w.Header().Get(requestid.HeaderKey))
	}
}

type recordedRequest struct {
	transport, operation, status string
}

type fakeRecorder struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (f *fakeRecorder) RecordRequest(transport, operation, status string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, recordedRequest{transport, operation, status})
}

func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{}
	r := chi.NewRouter()
	r.Use(NewMetricsMiddleware(rec))
	r.Get("/usuarios/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/usuarios/15", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nada", nil))

	if len(rec.requests) != 2 {
		t.Fatalf("expected 2 recorded requests, got %d", len(rec.requests))
	}
	want := recordedRequest{"http", "GET /usuarios/{id}", "404"}
	if rec.requests[0] != want {
		t.Errorf("first request = %+v, want %+v", rec.requests[0], want)
	}
	if rec.requests[1].operation != "unmatched" {
		t.Errorf("second request operation = %q, want unmatched", rec.requests[1].operation)
	}
}
