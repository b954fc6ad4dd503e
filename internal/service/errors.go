package service

import "net/http"

// statusError is a domain error that carries its HTTP status for the error handler.
type statusError struct {
	status int
	msg    string
}

func (e *statusError) Error() string   { return e.msg }
func (e *statusError) HTTPStatus() int { return e.status }

var (
	ErrNotFound           = &statusError{http.StatusNotFound, "Resource not found"}
	ErrInvalidCredentials = &statusError{http.StatusUnauthorized, "Invalid email or password"}
	ErrSlugTaken          = &statusError{http.StatusConflict, "Slug is already in use"}
	ErrInvalidFormat      = &statusError{http.StatusBadRequest, "Unsupported render format"}
	ErrInvalidDocument    = &statusError{http.StatusBadRequest, "Document must be a JSON object"}
	ErrInvalidPatch       = &statusError{http.StatusBadRequest, "Invalid merge patch"}
)
