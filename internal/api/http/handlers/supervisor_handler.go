package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/intern-dashboard/internal/api/dto"
	"github.com/spec-kit/intern-dashboard/internal/views"
)

// SupervisorHandler serves the supervisor section.
type SupervisorHandler struct {
	pages
}

// NewSupervisorHandler constructs handler.
func NewSupervisorHandler(app *views.AppContext) *SupervisorHandler {
	return &SupervisorHandler{pages{app: app}}
}

// Interns handles GET /supervisor.
func (h *SupervisorHandler) Interns(c *fiber.Ctx) error {
	viewer, err := h.viewer(c)
	if err != nil {
		return err
	}
	model, err := views.NewSupervisorInterns(h.app, viewer).Load(c.UserContext())
	if err != nil {
		return err
	}
	return h.render(c, "supervisor_interns", "My interns", model)
}

// Tasks handles GET /supervisor/tasks with the same dialog query as the users page.
func (h *SupervisorHandler) Tasks(c *fiber.Ctx) error {
	viewer, err := h.viewer(c)
	if err != nil {
		return err
	}
	q, err := tableQuery(c)
	if err != nil {
		return err
	}
	ctrl := views.NewSupervisorTasks(h.app, viewer)
	var model *views.SupervisorTasksModel
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
	return h.render(c, "supervisor_tasks", "Tasks", model)
}

// CreateTask handles POST /supervisor/tasks.
func (h *SupervisorHandler) CreateTask(c *fiber.Ctx) error {
	return h.submitTask(c, func(ctrl *views.SupervisorTasks, q views.TableQuery, form dto.TaskForm) (*views.SupervisorTasksModel, error) {
		return ctrl.Create(c.UserContext(), q, form)
	})
}

// UpdateTask handles POST /supervisor/tasks/:id.
func (h *SupervisorHandler) UpdateTask(c *fiber.Ctx) error {
	return h.submitTask(c, func(ctrl *views.SupervisorTasks, q views.TableQuery, form dto.TaskForm) (*views.SupervisorTasksModel, error) {
		return ctrl.Update(c.UserContext(), q, c.Params("id"), form)
	})
}

func (h *SupervisorHandler) submitTask(c *fiber.Ctx, submit func(*views.SupervisorTasks, views.TableQuery, dto.TaskForm) (*views.SupervisorTasksModel, error)) error {
	viewer, err := h.viewer(c)
	if err != nil {
		return err
	}
	q, err := tableQuery(c)
	if err != nil {
		return err
	}
	form, err := parseForm[dto.TaskForm](c)
	if err != nil {
		return err
	}
	model, err := submit(views.NewSupervisorTasks(h.app, viewer), q, form)
	if err != nil {
		return err
	}
	c.Status(dialogStatus(model.Dialog))
	return h.render(c, "supervisor_tasks", "Tasks", model)
}

// DeleteTask handles POST /supervisor/tasks/:id/delete.
func (h *SupervisorHandler) DeleteTask(c *fiber.Ctx) error {
	viewer, err := h.viewer(c)
	if err != nil {
		return err
	}
	q, err := tableQuery(c)
	if err != nil {
		return err
	}
	model, err := views.NewSupervisorTasks(h.app, viewer).Delete(c.UserContext(), q, c.Params("id"))
	if err != nil {
		return err
	}
	return h.render(c, "supervisor_tasks", "Tasks", model)
}

// Evaluations handles GET /supervisor/evaluations. ?intern=<id> opens the
// dialog preselected on that intern.
func (h *SupervisorHandler) Evaluations(c *fiber.Ctx) error {
	viewer, err := h.viewer(c)
	if err != nil {
		return err
	}
	ctrl := views.NewSupervisorEvaluations(h.app, viewer)
	var model *views.SupervisorEvaluationsModel
	if c.Query("dialog") == "create" || c.Query("intern") != "" {
		model, err = ctrl.OpenCreate(c.UserContext(), c.Query("intern"))
	} else {
		model, err = ctrl.Load(c.UserContext())
	}
	if err != nil {
		return err
	}
	return h.render(c, "supervisor_evaluations", "Evaluations", model)
}

// SubmitEvaluation handles POST /supervisor/evaluations.
func (h *SupervisorHandler) SubmitEvaluation(c *fiber.Ctx) error {
	viewer, err := h.viewer(c)
	if err != nil {
		return err
	}
	form, err := parseForm[dto.EvaluationForm](c)
	if err != nil {
		return err
	}
	model, err := views.NewSupervisorEvaluations(h.app, viewer).Submit(c.UserContext(), form)
	if err != nil {
		return err
	}
	c.Status(dialogStatus(model.Dialog))
	return h.render(c, "supervisor_evaluations", "Evaluations", model)
}
