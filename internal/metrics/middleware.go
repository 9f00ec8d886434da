package metrics

import (
	"net/http"
	"regexp"
	"time"

	"github.com/go-chi/chi/v5"
)

// idSegment matches path segments that look like record identifiers:
// numbers, UUIDs and 24-char hex object ids.
var idSegment = regexp.MustCompile(`/([0-9]+|[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}|[0-9a-fA-F]{24})(/|$)`)

// statusRecorder wraps http.ResponseWriter to capture the status code
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

// WriteHeader captures the status code and writes it to the underlying ResponseWriter
func (r *statusRecorder) WriteHeader(code int) {
	if !r.written {
		r.statusCode = code
		r.written = true
		r.ResponseWriter.WriteHeader(code)
	}
}

// Write ensures WriteHeader is called before writing body
func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.written {
		r.statusCode = http.StatusOK
		r.written = true
	}
	return r.ResponseWriter.Write(b)
}

// Middleware records request count and latency for each request.
// Panics are recorded as 500 and not re-raised.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		startTime := time.Now()

		defer func() {
			duration := time.Since(startTime).Seconds()

			if err := recover(); err != nil {
				if !recorder.written {
					recorder.WriteHeader(http.StatusInternalServerError)
				}
				recorder.statusCode = http.StatusInternalServerError
			}

			statusStr := http.StatusText(recorder.statusCode)
			if statusStr == "" {
				statusStr = "UNKNOWN"
			}

			path := routePattern(r)
			RecordRequest(r.Method, path, statusStr)
			RecordRequestDuration(r.Method, path, statusStr, duration)
		}()

		next.ServeHTTP(recorder, r)
	})
}

// routePattern prefers the chi route pattern matched for r, falling back to
// the URL path with identifier segments collapsed.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return normalizePath(r.URL.Path)
}

// normalizePath replaces identifier segments with ":id".
//
//	/home/animals/42/edit -> /home/animals/:id/edit
func normalizePath(path string) string {
	for {
		next := idSegment.ReplaceAllString(path, "/:id$2")
		if next == path {
			return next
		}
		path = next
	}
}
