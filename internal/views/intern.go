package views

import (
	"context"
	"errors"

	"github.com/spec-kit/intern-dashboard/internal/api/dto"
	"github.com/spec-kit/intern-dashboard/internal/domain"
	apperrors "github.com/spec-kit/intern-dashboard/pkg/util/errorutil"
)

// Column is one status lane of the task board.
type Column struct {
	Status domain.TaskStatus
	Tasks  []domain.Task
}

// BoardModel is the intern's task board.
type BoardModel struct {
	Columns  []Column
	Total    int
	Statuses []domain.TaskStatus
	// Fields holds inline errors of the last status change.
	Fields map[string]string
	Banner string
}

// InternTasks shows the viewer's tasks grouped by status.
type InternTasks struct {
	app    *AppContext
	viewer Viewer
}

func NewInternTasks(app *AppContext, viewer Viewer) *InternTasks {
	return &InternTasks{app: app, viewer: viewer}
}

func (c *InternTasks) Load(ctx context.Context) (*BoardModel, error) {
	model := &BoardModel{Statuses: domain.TaskStatuses}
	_, err := c.refresh(ctx, model)
	return model, err
}

// ChangeStatus moves one of the viewer's tasks to another column. Any status
// may follow any other.
func (c *InternTasks) ChangeStatus(ctx context.Context, id string, form dto.TaskStatusForm) (*BoardModel, error) {
	model := &BoardModel{Statuses: domain.TaskStatuses}
	if err := validateWith[dto.TaskStatusForm](c.app.Validator)(form); err != nil {
		return c.failed(ctx, model, err)
	}

	mine, err := c.refresh(ctx, model)
	if err != nil || model.Banner != "" {
		return model, err
	}
	if !ownsTask(mine, id) {
		model.Banner = notFound("Task")
		return model, nil
	}

	if err := c.viewer.API.Tasks.Update(ctx, id, domain.TaskPayload{Status: domain.TaskStatus(form.Status)}); err != nil {
		return c.failed(ctx, model, err)
	}
	if _, err := c.refresh(ctx, model); err != nil {
		return nil, err
	}
	return model, nil
}

func (c *InternTasks) failed(ctx context.Context, model *BoardModel, cause error) (*BoardModel, error) {
	banner, gone := settle(NewLifetime(ctx), cause)
	if gone != nil {
		return nil, gone
	}
	if len(model.Columns) == 0 {
		if _, err := c.refresh(ctx, model); err != nil {
			return nil, err
		}
	}
	var valErr *apperrors.ValidationError
	if errors.As(cause, &valErr) {
		model.Fields = valErr.Fields
	}
	model.Banner = banner
	return model, nil
}

func (c *InternTasks) refresh(ctx context.Context, model *BoardModel) ([]domain.Task, error) {
	life := NewLifetime(ctx)
	tasks, err := Keep(life, c.viewer.API.Tasks.List)
	banner, gone := settle(life, err)
	if gone != nil {
		return nil, gone
	}
	if err != nil {
		model.Banner = banner
		return nil, nil
	}

	mine := domain.TasksFor(tasks, c.viewer.Claims.SubjectID)
	model.Total = len(mine)
	model.Columns = make([]Column, 0, len(domain.TaskStatuses))
	for _, s := range domain.TaskStatuses {
		col := Column{Status: s}
		for _, t := range mine {
			if t.Status == s {
				col.Tasks = append(col.Tasks, t)
			}
		}
		model.Columns = append(model.Columns, col)
	}
	return mine, nil
}

// NoEvaluationMessage is shown to an intern who has not been evaluated.
const NoEvaluationMessage = "No evaluation yet."

// EvaluationModel is the intern's own evaluation.
type EvaluationModel struct {
	Evaluation *domain.Evaluation
	Overall    string
	// Missing means the API reported no evaluation for the viewer.
	Missing bool
	Banner  string
}

// InternEvaluation shows the viewer's evaluation.
type InternEvaluation struct {
	app    *AppContext
	viewer Viewer
}

func NewInternEvaluation(app *AppContext, viewer Viewer) *InternEvaluation {
	return &InternEvaluation{app: app, viewer: viewer}
}

func (c *InternEvaluation) Load(ctx context.Context) (*EvaluationModel, error) {
	life := NewLifetime(ctx)
	evaluation, err := Keep(life, c.viewer.API.Evaluations.Mine)
	if gone := life.Err(); gone != nil {
		return nil, gone
	}
	switch {
	case apperrors.IsNotFound(err):
		return &EvaluationModel{Missing: true}, nil
	case err != nil:
		return &EvaluationModel{Banner: apperrors.UserMessage(err)}, nil
	}
	return &EvaluationModel{
		Evaluation: evaluation,
		Overall:    domain.FormatScore(evaluation.OverallScore()),
	}, nil
}
