package errorutil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ConnectivityMessage is shown when the API could not be reached at all.
const ConnectivityMessage = "Network error, check your connection."

// DomainError standardizes the dashboard's own HTTP failures.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewNotFound(resource string) error {
	return NewDomainError("NOT_FOUND", fmt.Sprintf("%s not found", resource), http.StatusNotFound, nil)
}

func NewBadRequest(message string) error {
	return NewDomainError("BAD_REQUEST", message, http.StatusBadRequest, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return &DomainError{Code: "UPSTREAM_ERROR", Message: apiErr.Message, HTTPStatus: http.StatusBadGateway, Err: err}
	}
	var connErr *ConnectivityError
	if errors.As(err, &connErr) {
		return &DomainError{Code: "UPSTREAM_UNREACHABLE", Message: ConnectivityMessage, HTTPStatus: http.StatusBadGateway, Err: err}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ValidationError carries client-side field failures, keyed by form field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// APIError is a non-2xx response from the external API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// IsNotFound reports whether err is an API 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// ConnectivityError means no response was received from the API.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("api unreachable: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// DecodeError describes a malformed credential. It is never shown to users.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode credential: %s: %v", e.Reason, e.Err)
	}
	return "decode credential: " + e.Reason
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// SchemaError means a 2xx body did not match the expected entity schema.
type SchemaError struct {
	Resource string
	Problems []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("unexpected %s payload: %s", e.Resource, strings.Join(e.Problems, "; "))
}

// UserMessage returns the banner text for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var (
		apiErr    *APIError
		connErr   *ConnectivityError
		valErr    *ValidationError
		schemaErr *SchemaError
		domainErr *DomainError
	)
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.As(err, &connErr):
		return ConnectivityMessage
	case errors.As(err, &valErr):
		return "Please correct the highlighted fields."
	case errors.As(err, &schemaErr):
		return "The server returned an unexpected response."
	case errors.Is(err, context.DeadlineExceeded):
		return "The request timed out, please retry."
	case errors.As(err, &domainErr):
		return domainErr.Message
	default:
		return "Something went wrong, please retry."
	}
}
