package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/intern-dashboard/internal/api/dto"
	"github.com/spec-kit/intern-dashboard/internal/views"
)

// AdminHandler serves the admin section.
type AdminHandler struct {
	pages
}

// NewAdminHandler constructs handler.
func NewAdminHandler(app *views.AppContext) *AdminHandler {
	return &AdminHandler{pages{app: app}}
}

// Overview handles GET /admin.
func (h *AdminHandler) Overview(c *fiber.Ctx) error {
	viewer, err := h.viewer(c)
	if err != nil {
		return err
	}
	model, err := views.NewAdminOverview(h.app, viewer).Load(c.UserContext())
	if err != nil {
		return err
	}
	return h.render(c, "admin_overview", "Overview", model)
}

// Users handles GET /admin/users. ?dialog=create opens the create dialog and
// ?edit=<id> the edit dialog of that user.
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	viewer, err := h.viewer(c)
	if err != nil {
		return err
	}
	q, err := tableQuery(c)
	if err != nil {
		return err
	}
	ctrl := views.NewAdminUsers(h.app, viewer)
	var model *views.UsersModel
	switch {
	case c.Query("edit") != "":
		model, err = ctrl.OpenEdit(c.UserContext(), q, c.Query("edit"))
	case c.Query("dialog") == "create":
		model, err = ctrl.OpenCreate(c.UserContext(), q)
	default:
		model, err = ctrl.Load(c.UserContext(), q)
	}
	if err != nil {
		return err
	}
	return h.render(c, "admin_users", "Users", model)
}

// CreateUser handles POST /admin/users.
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	return h.submitUser(c, func(ctrl *views.AdminUsers, q views.TableQuery, form dto.UserForm) (*views.UsersModel, error) {
		return ctrl.Create(c.UserContext(), q, form)
	})
}

// UpdateUser handles POST /admin/users/:id.
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	return h.submitUser(c, func(ctrl *views.AdminUsers, q views.TableQuery, form dto.UserForm) (*views.UsersModel, error) {
		return ctrl.Update(c.UserContext(), q, c.Params("id"), form)
	})
}

func (h *AdminHandler) submitUser(c *fiber.Ctx, submit func(*views.AdminUsers, views.TableQuery, dto.UserForm) (*views.UsersModel, error)) error {
	viewer, err := h.viewer(c)
	if err != nil {
		return err
	}
	q, err := tableQuery(c)
	if err != nil {
		return err
	}
	form, err := parseForm[dto.UserForm](c)
	if err != nil {
		return err
	}
	model, err := submit(views.NewAdminUsers(h.app, viewer), q, form)
	if err != nil {
		return err
	}
	c.Status(dialogStatus(model.Dialog))
	return h.render(c, "admin_users", "Users", model)
}

// DeleteUser handles POST /admin/users/:id/delete.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	viewer, err := h.viewer(c)
	if err != nil {
		return err
	}
	q, err := tableQuery(c)
	if err != nil {
		return err
	}
	model, err := views.NewAdminUsers(h.app, viewer).Delete(c.UserContext(), q, c.Params("id"))
	if err != nil {
		return err
	}
	return h.render(c, "admin_users", "Users", model)
}

// Domains handles GET /admin/domains.
func (h *AdminHandler) Domains(c *fiber.Ctx) error {
	viewer, err := h.viewer(c)
	if err != nil {
		return err
	}
	q, err := tableQuery(c)
	if err != nil {
		return err
	}
	model, err := views.NewAdminDomains(h.app, viewer).Load(c.UserContext(), q)
	if err != nil {
		return err
	}
	return h.render(c, "admin_domains", "Domains", model)
}

// Company handles GET /admin/company.
func (h *AdminHandler) Company(c *fiber.Ctx) error {
	viewer, err := h.viewer(c)
	if err != nil {
		return err
	}
	model, err := views.NewAdminCompany(h.app, viewer).Load(c.UserContext())
	if err != nil {
		return err
	}
	return h.render(c, "admin_company", "Company", model)
}

// UpdateCompany handles POST /admin/company.
func (h *AdminHandler) UpdateCompany(c *fiber.Ctx) error {
	viewer, err := h.viewer(c)
	if err != nil {
		return err
	}
	form, err := parseForm[dto.CompanyForm](c)
	if err != nil {
		return err
	}
	model, err := views.NewAdminCompany(h.app, viewer).Update(c.UserContext(), form)
	if err != nil {
		return err
	}
	c.Status(dialogStatus(model.Dialog))
	return h.render(c, "admin_company", "Company", model)
}
