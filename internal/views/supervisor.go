package views

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/intern-dashboard/internal/api/dto"
	"github.com/spec-kit/intern-dashboard/internal/domain"
	apperrors "github.com/spec-kit/intern-dashboard/pkg/util/errorutil"
)

// InternRow is one supervised intern with task progress.
type InternRow struct {
	Intern    domain.User
	Tasks     int
	Completed int
}

// InternsModel is the supervisor landing page.
type InternsModel struct {
	Rows   []InternRow
	Banner string
}

// SupervisorInterns lists the interns supervised by the viewer.
type SupervisorInterns struct {
	app    *AppContext
	viewer Viewer
}

func NewSupervisorInterns(app *AppContext, viewer Viewer) *SupervisorInterns {
	return &SupervisorInterns{app: app, viewer: viewer}
}

func (c *SupervisorInterns) Load(ctx context.Context) (*InternsModel, error) {
	life := NewLifetime(ctx)
	interns, tasks, err := loadTeam(ctx, c.viewer)
	banner, gone := settle(life, err)
	if gone != nil {
		return nil, gone
	}
	model := &InternsModel{Banner: banner}
	for _, in := range interns {
		row := InternRow{Intern: in}
		for _, t := range domain.TasksFor(tasks, in.ID.String()) {
			row.Tasks++
			if t.Status == domain.TaskStatusCompleted || t.Status == domain.TaskStatusApproved {
				row.Completed++
			}
		}
		model.Rows = append(model.Rows, row)
	}
	return model, nil
}

// loadTeam fetches the viewer's interns and the tasks assigned to them.
func loadTeam(ctx context.Context, viewer Viewer) ([]domain.User, []domain.Task, error) {
	var (
		users []domain.User
		tasks []domain.Task
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = viewer.API.Users.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		tasks, err = viewer.API.Tasks.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	interns := domain.SupervisedBy(users, viewer.Claims.SubjectID)
	own := make(map[domain.ID]bool, len(interns))
	for _, in := range interns {
		own[in.ID] = true
	}
	mine := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if own[t.InternID] {
			mine = append(mine, t)
		}
	}
	return interns, mine, nil
}

func ownsTask(tasks []domain.Task, id string) bool {
	for _, t := range tasks {
		if t.ID.String() == id {
			return true
		}
	}
	return false
}

func ownsIntern(interns []domain.User, id string) bool {
	for _, in := range interns {
		if in.ID.String() == id {
			return true
		}
	}
	return false
}

// SupervisorTasksModel is the supervisor's task assignment page.
type SupervisorTasksModel struct {
	Query   TableQuery
	Interns []domain.User
	// InternNames maps intern id to display name for the table.
	InternNames map[domain.ID]string
	Table       Page[domain.Task]
	Dialog      *Dialog[dto.TaskForm]
	Banner      string
}

// SupervisorTasks assigns, edits and deletes tasks of the viewer's interns.
type SupervisorTasks struct {
	app    *AppContext
	viewer Viewer
}

func NewSupervisorTasks(app *AppContext, viewer Viewer) *SupervisorTasks {
	return &SupervisorTasks{app: app, viewer: viewer}
}

func (c *SupervisorTasks) newModel(q TableQuery) *SupervisorTasksModel {
	return &SupervisorTasksModel{
		Query:  q,
		Dialog: NewDialog(dto.TaskForm{Status: string(domain.TaskStatusTodo), Priority: string(domain.TaskPriorityMedium)}),
	}
}

func (c *SupervisorTasks) Load(ctx context.Context, q TableQuery) (*SupervisorTasksModel, error) {
	model := c.newModel(q)
	return model, c.refresh(ctx, model)
}

func (c *SupervisorTasks) OpenCreate(ctx context.Context, q TableQuery) (*SupervisorTasksModel, error) {
	model := c.newModel(q)
	model.Dialog.OpenCreate()
	return model, c.refresh(ctx, model)
}

func (c *SupervisorTasks) OpenEdit(ctx context.Context, q TableQuery, id string) (*SupervisorTasksModel, error) {
	model := c.newModel(q)
	tasks, err := c.refreshWith(ctx, model)
	if err != nil || model.Banner != "" {
		return model, err
	}
	for _, t := range tasks {
		if t.ID.String() == id {
			model.Dialog.OpenEdit(id, dto.TaskFormFrom(t))
			return model, nil
		}
	}
	model.Banner = notFound("Task")
	return model, nil
}

func (c *SupervisorTasks) Create(ctx context.Context, q TableQuery, form dto.TaskForm) (*SupervisorTasksModel, error) {
	model := c.newModel(q)
	model.Dialog.OpenCreate()
	return c.submit(ctx, model, "", form, func(ctx context.Context, f dto.TaskForm) error {
		return c.viewer.API.Tasks.Create(ctx, f.Payload())
	})
}

func (c *SupervisorTasks) Update(ctx context.Context, q TableQuery, id string, form dto.TaskForm) (*SupervisorTasksModel, error) {
	model := c.newModel(q)
	model.Dialog.OpenEdit(id, form)
	return c.submit(ctx, model, id, form, func(ctx context.Context, f dto.TaskForm) error {
		return c.viewer.API.Tasks.Update(ctx, id, f.Payload())
	})
}

func (c *SupervisorTasks) Delete(ctx context.Context, q TableQuery, id string) (*SupervisorTasksModel, error) {
	model := c.newModel(q)
	removeErr := c.removeOwn(ctx, id)
	banner, gone := settle(NewLifetime(ctx), removeErr)
	if gone != nil {
		return nil, gone
	}
	if err := c.refresh(ctx, model); err != nil {
		return nil, err
	}
	if banner != "" {
		model.Banner = banner
	}
	return model, nil
}

// removeOwn deletes task id if it belongs to one of the viewer's interns.
func (c *SupervisorTasks) removeOwn(ctx context.Context, id string) error {
	_, tasks, err := loadTeam(ctx, c.viewer)
	if err != nil {
		return err
	}
	if !ownsTask(tasks, id) {
		return apperrors.NewNotFound("Task")
	}
	return c.viewer.API.Tasks.Remove(ctx, id)
}

// submit sends the dialog. taskID is empty for a create; an edit must target
// a task of one of the viewer's interns.
func (c *SupervisorTasks) submit(ctx context.Context, model *SupervisorTasksModel, taskID string, form dto.TaskForm, send func(context.Context, dto.TaskForm) error) (*SupervisorTasksModel, error) {
	// The intern select only offers own interns; a forged id is a field error.
	validate := func(f dto.TaskForm) error {
		if err := validateWith[dto.TaskForm](c.app.Validator)(f); err != nil {
			return err
		}
		interns, tasks, err := loadTeam(ctx, c.viewer)
		if err != nil {
			return err
		}
		if taskID != "" && !ownsTask(tasks, taskID) {
			return apperrors.NewNotFound("Task")
		}
		if !ownsIntern(interns, f.InternID) {
			return apperrors.NewValidationError("internId", "is not one of your interns")
		}
		return nil
	}
	submitted, err := model.Dialog.Submit(ctx, form, validate, send,
		func(ctx context.Context) error { return c.refresh(ctx, model) })
	if err != nil {
		return nil, err
	}
	if !submitted {
		return model, c.refresh(ctx, model)
	}
	return model, nil
}

func (c *SupervisorTasks) refresh(ctx context.Context, model *SupervisorTasksModel) error {
	_, err := c.refreshWith(ctx, model)
	return err
}

func (c *SupervisorTasks) refreshWith(ctx context.Context, model *SupervisorTasksModel) ([]domain.Task, error) {
	life := NewLifetime(ctx)
	interns, tasks, err := loadTeam(ctx, c.viewer)
	banner, gone := settle(life, err)
	if gone != nil {
		return nil, gone
	}
	if err != nil {
		model.Banner = banner
		model.Table = Paginate[domain.Task](nil, 1, model.Query.PageSize)
		return nil, nil
	}
	model.Interns = interns
	model.InternNames = make(map[domain.ID]string, len(interns))
	for _, in := range interns {
		model.InternNames[in.ID] = in.FullName
	}
	model.Table = Paginate(FilterTasks(tasks, model.Query), model.Query.Page, model.Query.PageSize)
	return tasks, nil
}

// EvaluationRow is a submitted evaluation with its intern.
type EvaluationRow struct {
	Evaluation domain.Evaluation
	InternName string
	Overall    string
}

// SupervisorEvaluationsModel is the supervisor's evaluation page.
type SupervisorEvaluationsModel struct {
	Interns []domain.User
	Rows    []EvaluationRow
	Dialog  *Dialog[dto.EvaluationForm]
	// Preview is the overall score of the form in the dialog.
	Preview string
	Banner  string
}

// SupervisorEvaluations submits evaluations for the viewer's interns.
type SupervisorEvaluations struct {
	app    *AppContext
	viewer Viewer
}

func NewSupervisorEvaluations(app *AppContext, viewer Viewer) *SupervisorEvaluations {
	return &SupervisorEvaluations{app: app, viewer: viewer}
}

func (c *SupervisorEvaluations) newModel() *SupervisorEvaluationsModel {
	return &SupervisorEvaluationsModel{Dialog: NewDialog(dto.EvaluationForm{})}
}

func (c *SupervisorEvaluations) Load(ctx context.Context) (*SupervisorEvaluationsModel, error) {
	model := c.newModel()
	return model, c.refresh(ctx, model)
}

// OpenCreate opens the dialog preselected on intern internID, if given.
func (c *SupervisorEvaluations) OpenCreate(ctx context.Context, internID string) (*SupervisorEvaluationsModel, error) {
	model := c.newModel()
	model.Dialog.OpenCreate()
	model.Dialog.Form.InternID = internID
	return model, c.refresh(ctx, model)
}

func (c *SupervisorEvaluations) Submit(ctx context.Context, form dto.EvaluationForm) (*SupervisorEvaluationsModel, error) {
	model := c.newModel()
	model.Dialog.OpenCreate()
	validate := func(f dto.EvaluationForm) error {
		if err := validateWith[dto.EvaluationForm](c.app.Validator)(f); err != nil {
			return err
		}
		users, err := c.viewer.API.Users.List(ctx)
		if err != nil {
			return err
		}
		if !ownsIntern(domain.SupervisedBy(users, c.viewer.Claims.SubjectID), f.InternID) {
			return apperrors.NewValidationError("internId", "is not one of your interns")
		}
		return nil
	}
	submitted, err := model.Dialog.Submit(ctx, form, validate,
		func(ctx context.Context, f dto.EvaluationForm) error {
			return c.viewer.API.Evaluations.Submit(ctx, f.Payload())
		},
		func(ctx context.Context) error { return c.refresh(ctx, model) })
	if err != nil {
		return nil, err
	}
	if !submitted {
		model.Preview = domain.FormatScore(form.Overall())
		return model, c.refresh(ctx, model)
	}
	return model, nil
}

func (c *SupervisorEvaluations) refresh(ctx context.Context, model *SupervisorEvaluationsModel) error {
	life := NewLifetime(ctx)
	var (
		users       []domain.User
		evaluations []domain.Evaluation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = c.viewer.API.Users.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		evaluations, err = c.viewer.API.Evaluations.List(gctx)
		return err
	})
	err := g.Wait()
	banner, gone := settle(life, err)
	if gone != nil {
		return gone
	}
	if err != nil {
		model.Banner = banner
		return nil
	}

	model.Interns = domain.SupervisedBy(users, c.viewer.Claims.SubjectID)
	names := make(map[domain.ID]string, len(model.Interns))
	for _, in := range model.Interns {
		names[in.ID] = in.FullName
	}
	model.Rows = model.Rows[:0]
	for _, e := range evaluations {
		name, own := names[e.InternID]
		if !own {
			continue
		}
		model.Rows = append(model.Rows, EvaluationRow{
			Evaluation: e,
			InternName: name,
			Overall:    domain.FormatScore(e.OverallScore()),
		})
	}
	return nil
}
