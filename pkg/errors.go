package pkg

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// Error kinds shared by all API handlers. Wrap them with fmt.Errorf("%w: ...")
// to add context, the kind decides the HTTP status.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func StatusFromError(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteErrorResponse writes err as {"error": "..."} with the status of its kind.
// Errors of unknown kind are logged and hidden behind a generic message.
func WriteErrorResponse(w http.ResponseWriter, err error) {
	status := StatusFromError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Errorf("internal error: %s", err)
		message = "internal error"
	}

	body, mErr := json.Marshal(ErrorResponse{Error: message})
	if mErr != nil {
		// cannot really happen for a plain string
		body = []byte(`{"error":"internal error"}`)
	}
	WriteResponseBytes(w, ContentType.JSON, body, status)
}
