package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gnhen/sports/internal/logging"
	"github.com/gnhen/sports/internal/metrics"
)

// LoggingMiddleware wraps the handler with request logging, request ID
// propagation, and per-request metrics.
func LoggingMiddleware(baseLogger *slog.Logger, recorder *metrics.Recorder) func(http.Handler) http.Handler {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := r.Header.Get("X-Request-ID")
			if reqID == "" {
				reqID = generateRequestID()
			}
			w.Header().Set("X-Request-ID", reqID)

			clientIP := r.RemoteAddr
			if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
				clientIP = forwarded
			}

			logger := baseLogger.With(
				slog.String(logging.FieldRequestID, reqID),
				slog.String(logging.FieldMethod, r.Method),
				slog.String(logging.FieldPath, r.URL.Path),
				slog.String("query", r.URL.RawQuery),
				slog.String("client_ip", clientIP),
			)

			ctx := logging.WithLogger(r.Context(), logger)
			ctx = withRequestID(ctx, reqID)
			r = r.WithContext(ctx)
			ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			recorder.RecordHTTPRequest(r.Method, r.URL.Path, ww.status, elapsed)
			logger.Info("request complete",
				slog.Int(logging.FieldStatusCode, ww.status),
				slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
			)
		})
	}
}

func (w *responseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

type responseWriter struct {
	http.ResponseWriter
	status int
}
