package slogx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/climblog/pkg/idx"
)

// RequestIDHeader carries the correlation ID set by climbsdk.
const RequestIDHeader = "X-Request-ID"

// HTTPMiddleware logs each request as an http_request event and puts a
// logger tagged with the request ID into the request context. The request
// ID is echoed back in the response. Server errors log at error level and
// client errors at warn.
func HTTPMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

			reqID := idx.FromHeader(r.Header.Get(RequestIDHeader)).String()
			rw.Header().Set(RequestIDHeader, reqID)

			logger := base.With(
				"req_id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)
			r = r.WithContext(WithContext(r.Context(), logger))

			next.ServeHTTP(rw, r)

			logger.Log(r.Context(), levelFor(rw.status), "http_request",
				"status", rw.status,
				"bytes", rw.written,
				"duration_ms", time.Since(start).Milliseconds(),
				"user_agent", r.UserAgent(),
			)
		})
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

type responseWriter struct {
	http.ResponseWriter

	status  int
	written int
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += n
	return n, err
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Status is the code written so far, for other middleware.
func (rw *responseWriter) Status() int { return rw.status }

func (rw *responseWriter) Unwrap() http.ResponseWriter { return rw.ResponseWriter }
