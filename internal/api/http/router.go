package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/intern-dashboard/internal/api/http/handlers"
	"github.com/spec-kit/intern-dashboard/internal/auth"
	"github.com/spec-kit/intern-dashboard/internal/domain"
	"github.com/spec-kit/intern-dashboard/internal/navigation"
	"github.com/spec-kit/intern-dashboard/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Session    *handlers.SessionHandler
	Admin      *handlers.AdminHandler
	Supervisor *handlers.SupervisorHandler
	Intern     *handlers.InternHandler
	Navigator  *navigation.Navigator
	Middleware *auth.SessionMiddleware
	Metrics    *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	web := app.Group("", cfg.Middleware.Handle)

	// Public pages are registered before the guard, which then only sees the
	// routes below it.
	signedOut := auth.RedirectAuthenticated(cfg.Navigator)
	web.Get("/login", signedOut, cfg.Session.LoginPage)
	web.Post("/login", signedOut, cfg.Session.Login)
	web.Get("/register", signedOut, cfg.Session.RegisterPage)
	web.Post("/register", signedOut, cfg.Session.Register)
	web.Post("/logout", cfg.Session.Logout)

	guarded := web.Group("", auth.Guard(cfg.Navigator, cfg.Session.Loading))
	guarded.Get("/", cfg.Session.Home)
	guarded.Get("/profile", cfg.Session.Profile)

	admin := guarded.Group("/admin", auth.RequireRole(cfg.Navigator, domain.RoleAdmin))
	admin.Get("", cfg.Admin.Overview)
	admin.Get("/users", cfg.Admin.Users)
	admin.Post("/users", cfg.Admin.CreateUser)
	admin.Post("/users/:id", cfg.Admin.UpdateUser)
	admin.Post("/users/:id/delete", cfg.Admin.DeleteUser)
	admin.Get("/domains", cfg.Admin.Domains)
	admin.Get("/company", cfg.Admin.Company)
	admin.Post("/company", cfg.Admin.UpdateCompany)

	supervisor := guarded.Group("/supervisor", auth.RequireRole(cfg.Navigator, domain.RoleSupervisor))
	supervisor.Get("", cfg.Supervisor.Interns)
	supervisor.Get("/tasks", cfg.Supervisor.Tasks)
	supervisor.Post("/tasks", cfg.Supervisor.CreateTask)
	supervisor.Post("/tasks/:id", cfg.Supervisor.UpdateTask)
	supervisor.Post("/tasks/:id/delete", cfg.Supervisor.DeleteTask)
	supervisor.Get("/evaluations", cfg.Supervisor.Evaluations)
	supervisor.Post("/evaluations", cfg.Supervisor.SubmitEvaluation)

	intern := guarded.Group("/intern", auth.RequireRole(cfg.Navigator, domain.RoleIntern))
	intern.Get("", cfg.Intern.Board)
	intern.Post("/tasks/:id/status", cfg.Intern.ChangeStatus)
	intern.Get("/evaluation", cfg.Intern.Evaluation)
}
