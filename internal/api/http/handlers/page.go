package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/intern-dashboard/internal/auth"
	"github.com/spec-kit/intern-dashboard/internal/domain"
	"github.com/spec-kit/intern-dashboard/internal/navigation"
	"github.com/spec-kit/intern-dashboard/internal/views"
	apperrors "github.com/spec-kit/intern-dashboard/pkg/util/errorutil"
)

// MainLayout frames every signed-in page with the role navigation.
const MainLayout = "layouts/main"

// BareLayout frames the public pages.
const BareLayout = "layouts/bare"

// PageData is what every template receives.
type PageData struct {
	Title  string
	Path   string
	Claims domain.Claims
	Nav    []navigation.Entry
	Flash  string
	Model  any
}

// pages renders signed-in pages for one AppContext.
type pages struct {
	app *views.AppContext
}

// viewer builds the request's Viewer. The API resources read the credential
// from the session store at call time.
func (p pages) viewer(c *fiber.Ctx) (views.Viewer, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || !principal.State.Authenticated() {
		return views.Viewer{}, fiber.NewError(fiber.StatusUnauthorized, "not signed in")
	}
	return views.Viewer{
		Claims: principal.Claims(),
		API:    p.app.API.For(principal.Store),
	}, nil
}

func (p pages) render(c *fiber.Ctx, template, title string, model any) error {
	data := PageData{Title: title, Path: c.Path(), Model: model, Flash: c.Query("flash")}
	if principal, ok := auth.PrincipalFromContext(c); ok {
		data.Claims = principal.Claims()
		data.Nav = p.app.Navigator.Visible(principal.State)
	}
	return c.Render(template, data, MainLayout)
}

func tableQuery(c *fiber.Ctx) (views.TableQuery, error) {
	var q views.TableQuery
	if err := c.QueryParser(&q); err != nil {
		return q, apperrors.NewBadRequest("invalid query")
	}
	if q.PageSize > views.MaxPageSize {
		q.PageSize = views.MaxPageSize
	}
	return q, nil
}

func parseForm[T any](c *fiber.Ctx) (T, error) {
	var form T
	if err := c.BodyParser(&form); err != nil {
		return form, apperrors.NewBadRequest("invalid form")
	}
	return form, nil
}

// dialogStatus is 422 while a dialog stays open with an error, 200 otherwise.
func dialogStatus[T any](d *views.Dialog[T]) int {
	if d != nil && d.IsOpen() && d.Error != "" {
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusOK
}
