package http

import (
	"bytes"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gnhen/sports/internal/logging"
	"github.com/gnhen/sports/internal/metrics"
)

func TestLoggingMiddlewareSetsRequestID(t *testing.T) {
	var seen string
	next := nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		seen = requestIDFromContext(r.Context())
		w.WriteHeader(nethttp.StatusNoContent)
	})

	handler := LoggingMiddleware(nil, nil)(next)
	req := httptest.NewRequest(nethttp.MethodGet, "/scoreboard", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if seen == "" {
		t.Fatalf("expected a generated request id in context")
	}
	if got := w.Header().Get("X-Request-ID"); got != seen {
		t.Fatalf("header %q does not match context id %q", got, seen)
	}
	if w.Code != nethttp.StatusNoContent {
		t.Fatalf("status not propagated, got %d", w.Code)
	}
}

func TestLoggingMiddlewarePreservesInboundRequestID(t *testing.T) {
	next := nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if got := requestIDFromContext(r.Context()); got != "abc123" {
			t.Fatalf("expected inbound id preserved, got %q", got)
		}
	})

	handler := LoggingMiddleware(nil, nil)(next)
	req := httptest.NewRequest(nethttp.MethodGet, "/scoreboard", nil)
	req.Header.Set("X-Request-ID", "abc123")
	handler.ServeHTTP(httptest.NewRecorder(), req)
}

func TestLoggingMiddlewareLogsAndRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	rec := metrics.NewRecorder()

	next := nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if logging.FromContext(r.Context(), nil) == nil {
			t.Fatalf("expected request logger in context")
		}
		w.WriteHeader(nethttp.StatusTeapot)
	})

	handler := LoggingMiddleware(logger, rec)(next)
	req := httptest.NewRequest(nethttp.MethodGet, "/scoreboard?date=20260110", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte("request complete")) {
		t.Fatalf("expected completion log, got %q", out)
	}
	if !bytes.Contains(buf.Bytes(), []byte("status_code=418")) {
		t.Fatalf("expected status in log, got %q", out)
	}
}

func TestGenerateRequestIDIsUnique(t *testing.T) {
	a := generateRequestID()
	b := generateRequestID()
	if a == "" || a == b {
		t.Fatalf("expected distinct non-empty ids, got %q and %q", a, b)
	}
}
