package web

import (
	"net/http"
	"time"

	"nlquery/cli/internal/logging"
)

// A specialized `http.ResponseWriter` for logging.
type loggingResponseWriter struct {
	http.ResponseWriter
	status     int
	contentLen int
}

// Write the header for the given status code.
func (l *loggingResponseWriter) WriteHeader(status int) {
	l.status = status
	l.ResponseWriter.WriteHeader(status)
}

// Write the given content to the client.
func (l *loggingResponseWriter) Write(content []byte) (int, error) {
	l.contentLen += len(content)
	return l.ResponseWriter.Write(content)
}

// A middleware that provides logging for each HTTP request.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lw := loggingResponseWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(&lw, r)
		logging.L.Info("http request", logging.L.Args(
			"remote", r.RemoteAddr,
			"method", r.Method,
			"path", r.URL.Path,
			"status", lw.status,
			"bytes", lw.contentLen,
			"took", time.Since(start).String(),
		))
	})
}
