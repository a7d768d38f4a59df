package gateway

import (
	"fmt"
	"net/http"
)

// Kind classifies a request failure.
type Kind int

const (
	KindMissingField Kind = iota + 1
	KindInvalidFormat
	KindInvalidRange
	KindSemanticViolation
	KindCollaboratorFailure
	KindRateLimited
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindMissingField:
		return "MissingField"
	case KindInvalidFormat:
		return "InvalidFormat"
	case KindInvalidRange:
		return "InvalidRange"
	case KindSemanticViolation:
		return "SemanticViolation"
	case KindCollaboratorFailure:
		return "CollaboratorFailure"
	case KindRateLimited:
		return "RateLimited"
	case KindNotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}

// Error is a request failure. Message is returned to the caller; Cause is
// only ever logged.
type Error struct {
	Kind    Kind
	Message string
	Cause   error

	status int
}

func (e *Error) Error() string {
	return e.Message
}

// Status returns the HTTP status the error is rendered with.
func (e *Error) Status() int {
	if e.status != 0 {
		return e.status
	}

	switch e.Kind {
	case KindCollaboratorFailure:
		return http.StatusInternalServerError
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func missingField(field string) *Error {
	return &Error{
		Kind:    KindMissingField,
		Message: fmt.Sprintf("missing required field: %s", field),
	}
}

func invalidFormat(format string, args ...interface{}) *Error {
	return &Error{
		Kind:    KindInvalidFormat,
		Message: fmt.Sprintf(format, args...),
	}
}

func invalidRange(format string, args ...interface{}) *Error {
	return &Error{
		Kind:    KindInvalidRange,
		Message: fmt.Sprintf(format, args...),
	}
}

func semanticViolation(format string, args ...interface{}) *Error {
	return &Error{
		Kind:    KindSemanticViolation,
		Message: fmt.Sprintf(format, args...),
	}
}

func collaboratorFailure(message string, cause error) *Error {
	return &Error{
		Kind:    KindCollaboratorFailure,
		Message: message,
		Cause:   cause,
	}
}

// faucetFailure is a collaborator failure the caller can act on (for example
// by waiting out the faucet's limit), so it is reported as a 400.
func faucetFailure(message string, cause error) *Error {
	e := collaboratorFailure(message, cause)
	e.status = http.StatusBadRequest
	return e
}

func bodyTooLarge(limit int64) *Error {
	return &Error{
		Kind:    KindInvalidRange,
		Message: fmt.Sprintf("request body exceeds %d bytes", limit),
		status:  http.StatusRequestEntityTooLarge,
	}
}
