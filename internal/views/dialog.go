package views

import (
	"context"
	"errors"

	apperrors "github.com/spec-kit/intern-dashboard/pkg/util/errorutil"
)

// DialogMode is the open state of a create/edit dialog.
type DialogMode int

const (
	DialogClosed DialogMode = iota
	DialogCreate
	DialogEdit
)

// ErrDialogClosed is returned when submitting a dialog that was never opened.
var ErrDialogClosed = errors.New("dialog is not open")

// Dialog is the state of one create/edit form.
type Dialog[T any] struct {
	Mode DialogMode
	// ID is the entity being edited.
	ID     string
	Form   T
	Error  string
	Fields map[string]string

	blank T
}

// NewDialog returns a closed dialog whose reset state is blank.
func NewDialog[T any](blank T) *Dialog[T] {
	return &Dialog[T]{Form: blank, blank: blank}
}

func (d *Dialog[T]) IsOpen() bool {
	return d.Mode != DialogClosed
}

func (d *Dialog[T]) Editing() bool {
	return d.Mode == DialogEdit
}

// OpenCreate opens the dialog with blank fields.
func (d *Dialog[T]) OpenCreate() {
	d.Mode = DialogCreate
	d.ID = ""
	d.Form = d.blank
	d.clearErrors()
}

// OpenEdit opens the dialog populated with an existing entity.
func (d *Dialog[T]) OpenEdit(id string, form T) {
	d.Mode = DialogEdit
	d.ID = id
	d.Form = form
	d.clearErrors()
}

// Close closes the dialog and resets its fields.
func (d *Dialog[T]) Close() {
	d.Mode = DialogClosed
	d.ID = ""
	d.Form = d.blank
	d.clearErrors()
}

// Fail records err inline; the dialog stays open.
func (d *Dialog[T]) Fail(err error) {
	d.Error = apperrors.UserMessage(err)
	var valErr *apperrors.ValidationError
	if errors.As(err, &valErr) {
		d.Fields = valErr.Fields
	}
}

// Submit validates form, sends it and, on success, closes the dialog and
// refetches exactly once. On failure the dialog keeps form and shows the error.
// submitted reports whether send succeeded; err is the refetch failure, if any.
func (d *Dialog[T]) Submit(
	ctx context.Context,
	form T,
	validate func(T) error,
	send func(context.Context, T) error,
	refetch func(context.Context) error,
) (submitted bool, err error) {
	if !d.IsOpen() {
		return false, ErrDialogClosed
	}
	d.Form = form
	d.clearErrors()

	if validate != nil {
		if err := validate(form); err != nil {
			d.Fail(err)
			return false, nil
		}
	}
	if err := send(ctx, form); err != nil {
		d.Fail(err)
		return false, nil
	}

	d.Close()
	if refetch == nil {
		return true, nil
	}
	return true, refetch(ctx)
}

func (d *Dialog[T]) clearErrors() {
	d.Error = ""
	d.Fields = nil
}
