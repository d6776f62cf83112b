// Package views holds the page controllers of the dashboard.
//
// A controller is built per request from the shared AppContext and the
// signed-in Viewer. It fetches what its page needs under the request context,
// owns the page's table and dialog state, and returns a model for rendering.
// Fetch failures become a banner on the model; they never escape the page.
package views

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/intern-dashboard/internal/api/dto"
	"github.com/spec-kit/intern-dashboard/internal/apiclient"
	"github.com/spec-kit/intern-dashboard/internal/domain"
	"github.com/spec-kit/intern-dashboard/internal/navigation"
	apperrors "github.com/spec-kit/intern-dashboard/pkg/util/errorutil"
)

// AppContext carries the dependencies shared by every controller.
type AppContext struct {
	API       *apiclient.Client
	Navigator *navigation.Navigator
	Decoder   navigation.ClaimsDecoder
	Validator *dto.Validator
	Logger    *zap.Logger
	Now       func() time.Time
}

func (a *AppContext) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

// Viewer is the signed-in user as seen by one request.
type Viewer struct {
	Claims domain.Claims
	API    *apiclient.Resources
}

// Lifetime ties fetch results to the view that asked for them.
type Lifetime struct {
	ctx context.Context
}

func NewLifetime(ctx context.Context) Lifetime {
	return Lifetime{ctx: ctx}
}

func (l Lifetime) Context() context.Context {
	return l.ctx
}

// Err is non-nil once the view is gone.
func (l Lifetime) Err() error {
	return l.ctx.Err()
}

// Keep runs fetch under the view's context and discards its result if the
// view is gone by the time it returns.
func Keep[T any](l Lifetime, fetch func(context.Context) (T, error)) (T, error) {
	v, err := fetch(l.ctx)
	if gone := l.Err(); gone != nil {
		var zero T
		return zero, gone
	}
	return v, err
}

// settle turns a fetch failure into banner text. gone is set when the view
// ended before the fetch did.
func settle(l Lifetime, err error) (banner string, gone error) {
	if e := l.Err(); e != nil {
		return "", e
	}
	return apperrors.UserMessage(err), nil
}

func notFound(resource string) string {
	return apperrors.UserMessage(apperrors.NewNotFound(resource))
}

func validateWith[T any](v *dto.Validator) func(T) error {
	return func(form T) error {
		if v == nil {
			return nil
		}
		return v.Struct(form)
	}
}
