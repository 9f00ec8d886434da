package middleware

import "net/http"

// DefaultMaxBodySize bounds form posts to the console. Animal records and
// credentials are a few hundred bytes.
const DefaultMaxBodySize = 64 << 10

// MaxBodySize returns middleware that limits request body size.
// Reading past maxBytes fails, and the server answers 413 for the connection.
func MaxBodySize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
