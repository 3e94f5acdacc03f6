package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/logger"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.Validation("op", "bad"), http.StatusBadRequest},
		{"conflict", domain.Conflict("op", domain.MsgURLAlreadyRegistered), http.StatusBadRequest},
		{"not found", domain.NotFound("op", domain.MsgBookmarkNotFound), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("outer: %w", domain.NotFound("op", "gone")), http.StatusNotFound},
		{"untyped", errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.err); got != tt.want {
				t.Errorf("StatusFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWriteErrorHidesInternalErrors(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/bookmarks", nil)

	writeError(w, r, logger.NewNop(), errors.New("sqlite: database is locked"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if body := w.Body.String(); strings.Contains(body, "sqlite") || !strings.Contains(body, msgInternal) {
		t.Errorf("body leaked internals: %s", body)
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"empty body", "", "request body is empty"},
		{"malformed", "{", "invalid JSON body"},
		{"wrong type", `{"title": 5}`, "invalid JSON body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst struct {
				Title string `json:"title"`
			}
			err := decodeJSON(httptest.NewRecorder(), r, &dst)
			if !domain.IsKind(err, domain.KindValidation) || err.Error() != tt.wantMsg {
				t.Errorf("decodeJSON() error = %v, want validation %q", err, tt.wantMsg)
			}
		})
	}
}
