// Package apperr carries the error taxonomy shared between the service and
// HTTP layers: every failure is an explicit status class plus a message.
package apperr

import (
	"errors"
	"net/http"
)

type Error struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Message }

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Validation: malformed input or missing required field.
func Validation(message string) *Error { return New(http.StatusBadRequest, message) }

// BadID: malformed entity reference.
func BadID(message string) *Error { return New(http.StatusBadRequest, message) }

// NotFound: referenced entity absent.
func NotFound(message string) *Error { return New(http.StatusNotFound, message) }

// Unauthorized: wrong actor for the operation.
func Unauthorized(message string) *Error { return New(http.StatusUnauthorized, message) }

// Forbidden: an authorization predicate failed.
func Forbidden(message string) *Error { return New(http.StatusForbidden, message) }

// Conflict: duplicate pending request. Surfaced as a 400, matching the rest
// of the bad-request class.
func Conflict(message string) *Error { return New(http.StatusBadRequest, message) }

// AuthFailed: login failure. Deliberately a 404 with one message for both
// "no such user" and "wrong password" so callers cannot enumerate accounts.
func AuthFailed(message string) *Error { return New(http.StatusNotFound, message) }

func Internal(message string) *Error { return New(http.StatusInternalServerError, message) }

// StatusOf returns the status class carried by err, or 500 for plain errors.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return http.StatusInternalServerError
}
