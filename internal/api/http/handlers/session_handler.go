package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/intern-dashboard/internal/api/dto"
	"github.com/spec-kit/intern-dashboard/internal/auth"
	"github.com/spec-kit/intern-dashboard/internal/navigation"
	"github.com/spec-kit/intern-dashboard/internal/service"
	"github.com/spec-kit/intern-dashboard/internal/views"
	apperrors "github.com/spec-kit/intern-dashboard/pkg/util/errorutil"
)

// FormModel is a public form re-rendered with its errors.
type FormModel[T any] struct {
	Form   T
	Banner string
	Fields map[string]string
}

func failedForm[T any](form T, err error) FormModel[T] {
	model := FormModel[T]{Form: form, Banner: apperrors.UserMessage(err)}
	var valErr *apperrors.ValidationError
	if errors.As(err, &valErr) {
		model.Fields = valErr.Fields
	}
	return model
}

// SessionHandler signs visitors in and out and serves the pages every role shares.
type SessionHandler struct {
	pages
	auth     *service.AuthService
	sessions *auth.SessionMiddleware
	logger   *zap.Logger
}

// NewSessionHandler constructs handler. sessions issues the fresh session id
// a sign-in moves to.
func NewSessionHandler(app *views.AppContext, authService *service.AuthService, sessions *auth.SessionMiddleware, logger *zap.Logger) *SessionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionHandler{pages: pages{app: app}, auth: authService, sessions: sessions, logger: logger}
}

// LoginPage handles GET /login.
func (h *SessionHandler) LoginPage(c *fiber.Ctx) error {
	return h.public(c, "login", "Sign in", FormModel[dto.LoginForm]{})
}

// Login handles POST /login.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); !ok {
		return apperrors.NewInternalError(errors.New("session middleware not installed"))
	}
	form, err := parseForm[dto.LoginForm](c)
	if err != nil {
		return err
	}
	principal := h.sessions.Rotate(c)
	claims, err := h.auth.Login(c.UserContext(), principal.Store, form)
	if err != nil {
		form.Password = ""
		c.Status(fiber.StatusUnprocessableEntity)
		return h.public(c, "login", "Sign in", failedForm(form, err))
	}
	return c.Redirect(h.app.Navigator.HomeFor(claims.Role), fiber.StatusSeeOther)
}

// RegisterPage handles GET /register.
func (h *SessionHandler) RegisterPage(c *fiber.Ctx) error {
	return h.public(c, "register", "Create your company", FormModel[dto.RegisterCompanyForm]{})
}

// Register handles POST /register.
func (h *SessionHandler) Register(c *fiber.Ctx) error {
	form, err := parseForm[dto.RegisterCompanyForm](c)
	if err != nil {
		return err
	}
	if err := h.auth.RegisterCompany(c.UserContext(), form); err != nil {
		form.Password, form.ConfirmPassword = "", ""
		c.Status(fiber.StatusUnprocessableEntity)
		return h.public(c, "register", "Create your company", failedForm(form, err))
	}
	return c.Redirect(navigation.SignInPath+"?flash=registered", fiber.StatusSeeOther)
}

// Logout handles POST /logout.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		h.auth.Logout(c.UserContext(), principal.Store)
	}
	return c.Redirect(navigation.SignInPath, fiber.StatusSeeOther)
}

// Home handles GET /. The guard redirects every resolved visitor, so this
// only runs if "/" is ever made public.
func (h *SessionHandler) Home(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || !principal.State.Authenticated() {
		return c.Redirect(navigation.SignInPath, fiber.StatusSeeOther)
	}
	return c.Redirect(h.app.Navigator.HomeFor(principal.State.Role()), fiber.StatusSeeOther)
}

// Loading renders the placeholder shown while a session is hydrating. It
// refreshes itself until the session resolves.
func (h *SessionHandler) Loading(c *fiber.Ctx) error {
	c.Status(fiber.StatusAccepted)
	return c.Render("loading", PageData{Title: "Loading", Path: c.OriginalURL()}, BareLayout)
}

// Profile handles GET /profile for every role.
func (h *SessionHandler) Profile(c *fiber.Ctx) error {
	viewer, err := h.viewer(c)
	if err != nil {
		return err
	}
	model, err := views.NewProfile(h.app, viewer).Load(c.UserContext())
	if err != nil {
		return err
	}
	return h.render(c, "profile", "Profile", model)
}

func (h *SessionHandler) public(c *fiber.Ctx, template, title string, model any) error {
	return c.Render(template, PageData{Title: title, Path: c.Path(), Flash: c.Query("flash"), Model: model}, BareLayout)
}
