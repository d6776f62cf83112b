package views

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/intern-dashboard/pkg/util/errorutil"
)

type form struct {
	Name  string
	Email string
}

func TestDialog_SuccessClosesResetsAndRefetchesOnce(t *testing.T) {
	d := NewDialog(form{})
	d.OpenCreate()

	refetches := 0
	submitted, err := d.Submit(context.Background(), form{Name: "Ada", Email: "ada@x.io"},
		nil,
		func(context.Context, form) error { return nil },
		func(context.Context) error { refetches++; return nil },
	)
	require.NoError(t, err)
	assert.True(t, submitted)
	assert.False(t, d.IsOpen())
	assert.Equal(t, form{}, d.Form)
	assert.Equal(t, 1, refetches)
}

func TestDialog_APIFailureStaysOpen(t *testing.T) {
	d := NewDialog(form{})
	d.OpenCreate()

	refetches := 0
	submitted, err := d.Submit(context.Background(), form{Name: "Ada"},
		nil,
		func(context.Context, form) error {
			return &apperrors.APIError{Status: 409, Message: "Email already exists"}
		},
		func(context.Context) error { refetches++; return nil },
	)
	require.NoError(t, err)
	assert.False(t, submitted)
	assert.True(t, d.IsOpen())
	assert.Equal(t, "Email already exists", d.Error)
	assert.Equal(t, "Ada", d.Form.Name)
	assert.Zero(t, refetches)
}

func TestDialog_ValidationFailureSkipsSend(t *testing.T) {
	d := NewDialog(form{})
	d.OpenEdit("7", form{Name: "Ada"})

	sent := false
	submitted, err := d.Submit(context.Background(), form{},
		func(f form) error { return apperrors.NewValidationError("name", "is required") },
		func(context.Context, form) error { sent = true; return nil },
		nil,
	)
	require.NoError(t, err)
	assert.False(t, submitted)
	assert.False(t, sent)
	assert.True(t, d.Editing())
	assert.Equal(t, "7", d.ID)
	assert.Equal(t, "is required", d.Fields["name"])
}

func TestDialog_ReopenClearsPreviousError(t *testing.T) {
	d := NewDialog(form{})
	d.OpenCreate()
	d.Fail(errors.New("boom"))
	require.NotEmpty(t, d.Error)

	d.OpenCreate()
	assert.Empty(t, d.Error)
	assert.Nil(t, d.Fields)
}

func TestDialog_SubmitClosed(t *testing.T) {
	d := NewDialog(form{})
	_, err := d.Submit(context.Background(), form{}, nil, func(context.Context, form) error { return nil }, nil)
	assert.ErrorIs(t, err, ErrDialogClosed)
}
