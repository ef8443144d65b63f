package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoggerCapturesStatus(t *testing.T) {
	tests := []struct {
		name   string
		inner  http.HandlerFunc
		status int
	}{
		{
			"explicit status",
			func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) },
			http.StatusNotFound,
		},
		{
			"implicit 200 on write",
			func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("ok")) },
			http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Logger(tt.inner)

			req := httptest.NewRequest(http.MethodGet, "/rpc/getCategories", nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.status {
				t.Errorf("status = %d, want %d", rr.Code, tt.status)
			}
		})
	}
}

func TestLoggerRequestID(t *testing.T) {
	handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("generates an id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Header().Get(RequestIDHeader) == "" {
			t.Error("response missing generated X-Request-ID")
		}
	})

	t.Run("echoes a client-provided id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "client-id-1")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if got := rr.Header().Get(RequestIDHeader); got != "client-id-1" {
			t.Errorf("X-Request-ID = %q, want %q", got, "client-id-1")
		}
	})
}
