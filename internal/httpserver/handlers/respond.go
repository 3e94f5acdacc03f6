package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/logger"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

const msgInternal = "internal server error"

// statusByKind is the whole error -> HTTP mapping. Duplicate URLs answer 400
// like every other rejected input.
var statusByKind = map[domain.Kind]int{
	domain.KindValidation: http.StatusBadRequest,
	domain.KindConflict:   http.StatusBadRequest,
	domain.KindNotFound:   http.StatusNotFound,
}

type dataEnvelope struct {
	Data any `json:"data"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, dataEnvelope{Data: data})
}

// StatusFor returns the HTTP status for err: the table entry for typed
// domain errors, 500 for anything else.
func StatusFor(err error) int {
	if status, ok := statusByKind[domain.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// writeError is the single place errors become responses. Untyped errors
// are logged and hidden behind a generic message.
func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status := StatusFor(err)
	msg := err.Error()

	if status == http.StatusInternalServerError {
		log.Error("request failed",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.String("request_id", middleware.GetReqID(r.Context())),
			logger.Error(err))
		msg = msgInternal
	}

	writeJSON(w, status, errorEnvelope{Error: msg})
}

// decodeJSON reads a size-capped JSON body into dst. Any decoding problem
// is a validation error.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	const op = "http.decode_json"

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return domain.Validation(op, "request body too large")
		case errors.Is(err, io.EOF):
			return domain.Validation(op, "request body is empty")
		default:
			return domain.Validation(op, "invalid JSON body")
		}
	}
	return nil
}

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.Validation("http.path_id", "invalid id: "+raw)
	}
	return id, nil
}

// NotFound answers unknown routes with the JSON error shape.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorEnvelope{Error: "route not found"})
}

// MethodNotAllowed answers known routes hit with the wrong verb.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorEnvelope{Error: "method not allowed"})
}
