// internal/services/errors.go
package services

import (
	"net/http"
)

// Error is a service-level failure carrying a stable machine-readable code
// and an i18n message key. Handlers translate the key for the caller's
// locale; the code stays constant across locales.
type Error struct {
	Status int
	Code   string
	Key    string
}

func (e *Error) Error() string {
	return e.Key
}

func badRequestError(key string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "BAD_REQUEST", Key: key}
}

func unauthorizedError(key string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: "UNAUTHORIZED", Key: key}
}

func forbiddenError(key string) *Error {
	return &Error{Status: http.StatusForbidden, Code: "FORBIDDEN", Key: key}
}

func notFoundError(key string) *Error {
	return &Error{Status: http.StatusNotFound, Code: "NOT_FOUND", Key: key}
}

func conflictError(key string) *Error {
	return &Error{Status: http.StatusConflict, Code: "CONFLICT", Key: key}
}
