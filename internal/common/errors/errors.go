// Package errors provides the standardized error taxonomy for the TutorLink client.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Session is missing or was rejected by the API; the caller must redirect
	// the user to sign-in.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// An expected profile or resource is absent on the server.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// Input failed client- or server-side validation. The message is shown
	// inline and the user stays on the page.
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// A request failed to reach the API or the API answered non-2xx without a
	// more specific classification.
	ErrCodeNetworkError ErrorCode = "NETWORK_ERROR"
	ErrCodeServerError  ErrorCode = "SERVER_ERROR"
)

// GenericFailureMessage is shown when the server provides no message of its own.
const GenericFailureMessage = "Something went wrong. Please try again."

// ClientError is a structured error surfaced to the UI layer. Message is the
// user-facing text; Details carries diagnostic context for logs only.
type ClientError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Status    int       `json:"status,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("ClientError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewUnauthorizedError creates an error for a missing or rejected session.
func NewUnauthorizedError(details string) *ClientError {
	return &ClientError{
		Code:      ErrCodeUnauthorized,
		Message:   "Please sign in to continue",
		Details:   details,
		Status:    http.StatusUnauthorized,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotFoundError creates an error for an absent profile or resource.
func NewNotFoundError(resource, details string) *ClientError {
	return &ClientError{
		Code:      ErrCodeNotFound,
		Message:   fmt.Sprintf("%s not found", resource),
		Details:   details,
		Status:    http.StatusNotFound,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationError creates an error carrying a user-facing validation message.
func NewValidationError(message string) *ClientError {
	return &ClientError{
		Code:      ErrCodeValidationFailed,
		Message:   message,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNetworkError creates an error for a request that never produced a response.
func NewNetworkError(err error) *ClientError {
	return &ClientError{
		Code:      ErrCodeNetworkError,
		Message:   GenericFailureMessage,
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewServerError creates an error for a non-2xx API response. The server's own
// message is passed through verbatim when present.
func NewServerError(status int, serverMessage string) *ClientError {
	msg := serverMessage
	if msg == "" {
		msg = GenericFailureMessage
	}
	return &ClientError{
		Code:      ErrCodeServerError,
		Message:   msg,
		Status:    status,
		Retryable: status >= http.StatusInternalServerError,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Status Mapping
// ==========================

// FromHTTPStatus classifies a non-2xx API response into the taxonomy.
func FromHTTPStatus(status int, serverMessage string) *ClientError {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return NewUnauthorizedError(serverMessage)
	case http.StatusNotFound:
		e := NewNotFoundError("Resource", serverMessage)
		if serverMessage != "" {
			e.Message = serverMessage
		}
		return e
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		msg := serverMessage
		if msg == "" {
			msg = GenericFailureMessage
		}
		e := NewValidationError(msg)
		e.Status = status
		return e
	default:
		return NewServerError(status, serverMessage)
	}
}

// ==========================
// 4. Utility Functions
// ==========================

// CodeOf returns the taxonomy code of err, or SERVER_ERROR for foreign errors.
func CodeOf(err error) ErrorCode {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ErrCodeServerError
}

func IsUnauthorized(err error) bool {
	return CodeOf(err) == ErrCodeUnauthorized
}

func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeValidationFailed
}

// UserMessage extracts the text safe to display; foreign errors collapse to the
// generic failure message so raw transport errors never reach the user.
func UserMessage(err error) string {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Message
	}
	return GenericFailureMessage
}
