package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/intern-dashboard/internal/api/dto"
	"github.com/spec-kit/intern-dashboard/internal/views"
)

// InternHandler serves the intern section.
type InternHandler struct {
	pages
}

// NewInternHandler constructs handler.
func NewInternHandler(app *views.AppContext) *InternHandler {
	return &InternHandler{pages{app: app}}
}

// Board handles GET /intern.
func (h *InternHandler) Board(c *fiber.Ctx) error {
	viewer, err := h.viewer(c)
	if err != nil {
		return err
	}
	model, err := views.NewInternTasks(h.app, viewer).Load(c.UserContext())
	if err != nil {
		return err
	}
	return h.render(c, "intern_tasks", "My tasks", model)
}

// ChangeStatus handles POST /intern/tasks/:id/status.
func (h *InternHandler) ChangeStatus(c *fiber.Ctx) error {
	viewer, err := h.viewer(c)
	if err != nil {
		return err
	}
	form, err := parseForm[dto.TaskStatusForm](c)
	if err != nil {
		return err
	}
	model, err := views.NewInternTasks(h.app, viewer).ChangeStatus(c.UserContext(), c.Params("id"), form)
	if err != nil {
		return err
	}
	if model.Banner != "" {
		c.Status(fiber.StatusUnprocessableEntity)
	}
	return h.render(c, "intern_tasks", "My tasks", model)
}

// Evaluation handles GET /intern/evaluation.
func (h *InternHandler) Evaluation(c *fiber.Ctx) error {
	viewer, err := h.viewer(c)
	if err != nil {
		return err
	}
	model, err := views.NewInternEvaluation(h.app, viewer).Load(c.UserContext())
	if err != nil {
		return err
	}
	return h.render(c, "intern_evaluation", "My evaluation", model)
}
