package http

import (
	"errors"
	"net/http"
	"strings"

	"ledger/internal/log"
)

// sanitizeInput removes control characters except tab, newline and
// carriage return, and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// writeRequestError maps a parse or validation error to 400 or 422.
func writeRequestError(w http.ResponseWriter, err error) {
	if errors.Is(err, errBadRequest) {
		BadRequestError(err.Error()).Write(w)
		return
	}
	UnprocessableEntityError(err.Error()).Write(w)
}

// writePersistError reports a mutation the store could not make durable.
func writePersistError(w http.ResponseWriter, r *http.Request, err error) {
	log.FromContext(r.Context()).ErrorContext(r.Context(), "Ledger mutation failed",
		log.FieldError, err,
		"method", r.Method,
		"path", r.URL.Path)
	InternalServerError("change not saved").Write(w)
}
