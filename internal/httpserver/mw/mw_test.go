package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MrSnakeDoc/marks/internal/logger"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestMatchHost(t *testing.T) {
	tests := []struct {
		host, pattern string
		want          bool
	}{
		{"marks.example.com", "marks.example.com", true},
		{"marks.example.com:3001", "marks.example.com", true},
		{"marks.example.com:3001", "marks.example.com:8080", false},
		{"Marks.Example.com", "marks.example.com", true},
		{"a.example.com", "*.example.com", true},
		{"example.com", "*.example.com", false},
		{"evil-example.com", "*.example.com", false},
		{"other.com", "marks.example.com", false},
	}
	for _, tt := range tests {
		if got := matchHost(tt.host, tt.pattern); got != tt.want {
			t.Errorf("matchHost(%q, %q) = %v, want %v", tt.host, tt.pattern, got, tt.want)
		}
	}
}

func TestGuardsPassthroughWhenEmpty(t *testing.T) {
	h := AllowOnlyCIDRS(nil, false, logger.NewNop())(EnforceHost(nil, logger.NewNop())(okHandler))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want passthrough", w.Code)
	}
}

func TestAllowOnlyCIDRSTrustProxy(t *testing.T) {
	h := AllowOnlyCIDRS([]string{"203.0.113.0/24"}, true, logger.NewNop())(okHandler)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusNoContent {
		t.Errorf("forwarded client rejected: %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusForbidden {
		t.Errorf("direct client allowed: %d", w.Code)
	}
}

func TestStatusWriterDefaultsToOK(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &statusWriter{ResponseWriter: rec}
	_, _ = w.Write([]byte("hi"))
	if w.status != http.StatusOK || w.bytes != 2 {
		t.Errorf("status = %d, bytes = %d", w.status, w.bytes)
	}
}
