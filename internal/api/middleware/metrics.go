package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"apunab/pkg/metrics"
)

func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(startTime)
		metrics.RecordHttpRequest(
			r.Method,
			endpointLabel(r.URL.Path),
			strconv.Itoa(rw.statusCode),
			duration,
		)
	})
}

// endpointLabel bounds the endpoint label to the routes the mux serves.
// Record ids travel in query parameters, so every served path is a fixed
// string; anything else collapses into a single bucket.
func endpointLabel(path string) string {
	switch {
	case path == "/" || path == "/metrics":
		return path
	case path == "/health" || strings.HasPrefix(path, "/health/"):
		return path
	case strings.HasPrefix(path, "/api/"):
		return path
	default:
		return "diger"
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	return rw.ResponseWriter.Write(b)
}
