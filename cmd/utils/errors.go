package utils

import (
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	KindValidationFailed   ErrorKind = "ValidationFailed"
	KindUnauthenticated    ErrorKind = "Unauthenticated"
	KindForbidden          ErrorKind = "Forbidden"
	KindNotFound           ErrorKind = "NotFound"
	KindOperationFailed    ErrorKind = "OperationFailed"
	KindInvalidCredentials ErrorKind = "InvalidCredentials"
)

// APIError carries everything the error boundary needs to answer a request.
// Err is logged, never sent to the client.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%d): %s: %v", e.Kind, e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// ValidationFailed is used with 400 for malformed bodies and 412 for rule violations.
func ValidationFailed(status int, message string) *APIError {
	return &APIError{Kind: KindValidationFailed, Status: status, Message: message}
}

func Unauthenticated(message string) *APIError {
	return &APIError{Kind: KindUnauthenticated, Status: http.StatusUnauthorized, Message: message}
}

func Forbidden(message string) *APIError {
	return &APIError{Kind: KindForbidden, Status: http.StatusForbidden, Message: message}
}

func NotFound(message string) *APIError {
	return &APIError{Kind: KindNotFound, Status: http.StatusNotFound, Message: message}
}

func InvalidCredentials(message string) *APIError {
	return &APIError{Kind: KindInvalidCredentials, Status: http.StatusPreconditionFailed, Message: message}
}

func OperationFailed(message string, err error) *APIError {
	return &APIError{Kind: KindOperationFailed, Status: http.StatusBadRequest, Message: message, Err: err}
}
