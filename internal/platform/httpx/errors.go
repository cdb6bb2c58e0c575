package httpx

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the domain layer. Handlers wrap ErrValidation
// with the user-facing message; everything else maps to a fixed body so
// internal detail never leaks to the client.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("resource not found")
	ErrValidation      = errors.New("validation failed")
)

// ValidationError wraps ErrValidation with a human-readable message.
func ValidationError(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}

// ValidationMessage extracts the message carried by a ValidationError.
func ValidationMessage(err error) string {
	msg := err.Error()
	prefix := ErrValidation.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}

// RespondError maps domain errors to the API error contract.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		Error(w, http.StatusUnauthorized, "Unauthenticated")
	case errors.Is(err, ErrForbidden):
		Error(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, ErrNotFound):
		Error(w, http.StatusNotFound, "Not found")
	case errors.Is(err, ErrValidation):
		Error(w, http.StatusBadRequest, ValidationMessage(err))
	default:
		Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
