package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMaxBodySize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		limit         int64
		bodySize      int
		shouldSucceed bool
	}{
		{"body under limit", 1024, 512, true},
		{"body exactly at limit", 1024, 1024, true},
		{"body over limit", 1024, 2048, false},
		{"empty body", 1024, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var readErr error
			handler := MaxBodySize(tt.limit)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, readErr = io.ReadAll(r.Body)
				if readErr != nil {
					w.WriteHeader(http.StatusRequestEntityTooLarge)
					return
				}
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("POST", "/home/animals", bytes.NewReader(make([]byte, tt.bodySize)))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if tt.shouldSucceed && readErr != nil {
				t.Errorf("expected success, got read error %v", readErr)
			}
			if !tt.shouldSucceed && rec.Code != http.StatusRequestEntityTooLarge {
				t.Errorf("expected 413, got %d", rec.Code)
			}
		})
	}
}
