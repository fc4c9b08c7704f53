package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"condo/internal/core"
	"condo/internal/log"
	"condo/internal/session"
)

type errorBody struct {
	Error string `json:"error"`
}

var (
	errNotFound   = errors.New("not found")
	errBadRequest = errors.New("bad request")
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

var validationErrors = []error{
	core.ErrEmptyName,
	core.ErrInvalidDueDay,
	core.ErrNegativeRent,
	core.ErrZeroDate,
	core.ErrEmptyGroup,
	core.ErrInvalidAmount,
	core.ErrInvalidDate,
	core.ErrInvalidMonth,
	core.ErrTextTooLong,
}

// statusFor maps an error to its HTTP status: 422 for invalid values, 400
// for malformed requests, 404 for misses and 500 for the rest.
func statusFor(err error) int {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return http.StatusUnprocessableEntity
		}
	}
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, errNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrExportDisabled):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs server-side failures and answers with a JSON error. The
// message of a 500 is not exposed.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError && status != http.StatusNotImplemented {
		log.NewStructuredLogger(s.logger).LogError(r.Context(), "Request failed", err,
			log.ComponentHTTP, op, log.NewFields().WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery, ""))
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorBody{Error: msg})
}
