package errorutil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"api", &APIError{Status: 409, Message: "Email already exists"}, "Email already exists"},
		{"wrapped api", fmt.Errorf("create user: %w", &APIError{Status: 400, Message: "bad"}), "bad"},
		{"connectivity", &ConnectivityError{Err: errors.New("dial tcp: refused")}, ConnectivityMessage},
		{"validation", NewValidationError("email", "must be a valid email"), "Please correct the highlighted fields."},
		{"timeout", fmt.Errorf("list: %w", context.DeadlineExceeded), "The request timed out, please retry."},
		{"other", errors.New("boom"), "Something went wrong, please retry."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestToDomainError(t *testing.T) {
	de := ToDomainError(&ConnectivityError{Err: errors.New("x")})
	assert.Equal(t, http.StatusBadGateway, de.HTTPStatus)
	assert.Equal(t, "UPSTREAM_UNREACHABLE", de.Code)

	de = ToDomainError(NewNotFound("page"))
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
	assert.Equal(t, "page not found", de.Message)

	de = ToDomainError(errors.New("boom"))
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("wrap: %w", &APIError{Status: 404, Message: "none"})))
	assert.False(t, IsNotFound(&APIError{Status: 500}))
	assert.False(t, IsNotFound(errors.New("404")))
}

func TestValidationErrorMessageIsSorted(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"email": "invalid", "fullName": "required"}}
	assert.Equal(t, "validation failed: email: invalid; fullName: required", err.Error())
}
