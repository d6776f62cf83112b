package views

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/intern-dashboard/internal/api/dto"
	"github.com/spec-kit/intern-dashboard/internal/domain"
)

// StatusCount is one bar of the task status chart.
type StatusCount struct {
	Status  domain.TaskStatus
	Count   int
	Percent int
}

// OverviewModel is the admin landing page.
type OverviewModel struct {
	Interns     int
	Supervisors int
	Admins      int
	TotalUsers  int
	TotalTasks  int
	Statuses    []StatusCount
	Company     domain.Company
	Banner      string
}

// AdminOverview shows tenant-wide counters.
type AdminOverview struct {
	app    *AppContext
	viewer Viewer
}

func NewAdminOverview(app *AppContext, viewer Viewer) *AdminOverview {
	return &AdminOverview{app: app, viewer: viewer}
}

func (c *AdminOverview) Load(ctx context.Context) (*OverviewModel, error) {
	life := NewLifetime(ctx)
	var (
		users   []domain.User
		tasks   []domain.Task
		company domain.Company
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = c.viewer.API.Users.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		tasks, err = c.viewer.API.Tasks.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		company, err = c.viewer.API.Company.Get(gctx)
		return err
	})
	err := g.Wait()

	model := &OverviewModel{}
	banner, gone := settle(life, err)
	if gone != nil {
		return nil, gone
	}
	if err != nil {
		c.app.logger().Warn("admin overview fetch failed", zap.Error(err))
		model.Banner = banner
		return model, nil
	}

	counts := domain.RoleCounts(users)
	model.Interns = counts[domain.RoleIntern]
	model.Supervisors = counts[domain.RoleSupervisor]
	model.Admins = counts[domain.RoleAdmin]
	model.TotalUsers = len(users)
	model.TotalTasks = len(tasks)
	model.Statuses = statusDistribution(tasks)
	model.Company = company
	return model, nil
}

func statusDistribution(tasks []domain.Task) []StatusCount {
	counts := domain.StatusCounts(tasks)
	out := make([]StatusCount, 0, len(domain.TaskStatuses))
	for _, s := range domain.TaskStatuses {
		sc := StatusCount{Status: s, Count: counts[s]}
		if len(tasks) > 0 {
			sc.Percent = counts[s] * 100 / len(tasks)
		}
		out = append(out, sc)
	}
	return out
}

// UsersModel is the admin user management page.
type UsersModel struct {
	Query       TableQuery
	Table       Page[domain.User]
	Interns     int
	Supervisors int
	Admins      int
	// SupervisorOptions feeds the supervisor select of the dialog.
	SupervisorOptions []domain.User
	Dialog            *Dialog[dto.UserForm]
	Banner            string
}

// AdminUsers lists, creates, edits and deletes tenant users.
type AdminUsers struct {
	app    *AppContext
	viewer Viewer
}

func NewAdminUsers(app *AppContext, viewer Viewer) *AdminUsers {
	return &AdminUsers{app: app, viewer: viewer}
}

func (c *AdminUsers) newModel(q TableQuery) *UsersModel {
	return &UsersModel{Query: q, Dialog: NewDialog(dto.UserForm{})}
}

// Load renders the table with every dialog closed.
func (c *AdminUsers) Load(ctx context.Context, q TableQuery) (*UsersModel, error) {
	model := c.newModel(q)
	return model, c.refresh(ctx, model)
}

// OpenCreate renders the table with a blank create dialog.
func (c *AdminUsers) OpenCreate(ctx context.Context, q TableQuery) (*UsersModel, error) {
	model := c.newModel(q)
	model.Dialog.OpenCreate()
	return model, c.refresh(ctx, model)
}

// OpenEdit renders the table with the edit dialog filled from user id.
func (c *AdminUsers) OpenEdit(ctx context.Context, q TableQuery, id string) (*UsersModel, error) {
	model := c.newModel(q)
	users, err := c.refreshWith(ctx, model)
	if err != nil || model.Banner != "" {
		return model, err
	}
	for _, u := range users {
		if u.ID.String() == id {
			model.Dialog.OpenEdit(id, dto.UserFormFrom(u))
			return model, nil
		}
	}
	model.Banner = notFound("User")
	return model, nil
}

// Create submits the create dialog.
func (c *AdminUsers) Create(ctx context.Context, q TableQuery, form dto.UserForm) (*UsersModel, error) {
	model := c.newModel(q)
	model.Dialog.OpenCreate()
	return c.submit(ctx, model, form, func(ctx context.Context, f dto.UserForm) error {
		return c.viewer.API.Users.Create(ctx, f.Payload())
	})
}

// Update submits the edit dialog of user id.
func (c *AdminUsers) Update(ctx context.Context, q TableQuery, id string, form dto.UserForm) (*UsersModel, error) {
	model := c.newModel(q)
	model.Dialog.OpenEdit(id, form)
	return c.submit(ctx, model, form, func(ctx context.Context, f dto.UserForm) error {
		return c.viewer.API.Users.Update(ctx, id, f.Payload())
	})
}

// Delete removes user id and refetches.
func (c *AdminUsers) Delete(ctx context.Context, q TableQuery, id string) (*UsersModel, error) {
	model := c.newModel(q)
	if err := c.viewer.API.Users.Remove(ctx, id); err != nil {
		banner, gone := settle(NewLifetime(ctx), err)
		if gone != nil {
			return nil, gone
		}
		if rerr := c.refresh(ctx, model); rerr != nil {
			return nil, rerr
		}
		model.Banner = banner
		return model, nil
	}
	return model, c.refresh(ctx, model)
}

func (c *AdminUsers) submit(ctx context.Context, model *UsersModel, form dto.UserForm, send func(context.Context, dto.UserForm) error) (*UsersModel, error) {
	submitted, err := model.Dialog.Submit(ctx, form, validateWith[dto.UserForm](c.app.Validator), send,
		func(ctx context.Context) error { return c.refresh(ctx, model) })
	if err != nil {
		return nil, err
	}
	if !submitted {
		// The table behind the open dialog still needs rows.
		return model, c.refresh(ctx, model)
	}
	return model, nil
}

func (c *AdminUsers) refresh(ctx context.Context, model *UsersModel) error {
	_, err := c.refreshWith(ctx, model)
	return err
}

func (c *AdminUsers) refreshWith(ctx context.Context, model *UsersModel) ([]domain.User, error) {
	life := NewLifetime(ctx)
	users, err := Keep(life, c.viewer.API.Users.List)
	banner, gone := settle(life, err)
	if gone != nil {
		return nil, gone
	}
	if err != nil {
		model.Banner = banner
		model.Table = Paginate[domain.User](nil, 1, model.Query.PageSize)
		return nil, nil
	}

	counts := domain.RoleCounts(users)
	model.Interns = counts[domain.RoleIntern]
	model.Supervisors = counts[domain.RoleSupervisor]
	model.Admins = counts[domain.RoleAdmin]
	model.SupervisorOptions = domain.FilterByRole(users, domain.RoleSupervisor)
	model.Table = Paginate(FilterUsers(users, model.Query), model.Query.Page, model.Query.PageSize)
	return users, nil
}

// DomainsModel is the read-only domains page.
type DomainsModel struct {
	Domains       []domain.InternshipDomain
	ActiveDomains int
	ActiveInterns int
	TotalInterns  int
	Banner        string
}

// AdminDomains lists internship domains with their intern totals.
type AdminDomains struct {
	app    *AppContext
	viewer Viewer
}

func NewAdminDomains(app *AppContext, viewer Viewer) *AdminDomains {
	return &AdminDomains{app: app, viewer: viewer}
}

func (c *AdminDomains) Load(ctx context.Context, q TableQuery) (*DomainsModel, error) {
	life := NewLifetime(ctx)
	domains, err := Keep(life, c.viewer.API.Domains.List)
	banner, gone := settle(life, err)
	if gone != nil {
		return nil, gone
	}
	model := &DomainsModel{Banner: banner}
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	for _, d := range domains {
		if q.Status != "" && string(d.Status) != q.Status {
			continue
		}
		if needle != "" && !containsAny(needle, d.DomainName, d.Description) {
			continue
		}
		model.Domains = append(model.Domains, d)
		if d.Status == domain.DomainStatusActive {
			model.ActiveDomains++
		}
		model.ActiveInterns += d.ActiveInterns
		model.TotalInterns += d.TotalInterns
	}
	return model, nil
}

// CompanyModel is the company settings page.
type CompanyModel struct {
	Company domain.Company
	Dialog  *Dialog[dto.CompanyForm]
	Saved   bool
	Banner  string
}

// AdminCompany edits the tenant's company profile.
type AdminCompany struct {
	app    *AppContext
	viewer Viewer
}

func NewAdminCompany(app *AppContext, viewer Viewer) *AdminCompany {
	return &AdminCompany{app: app, viewer: viewer}
}

// Load shows the profile with the settings dialog filled from it.
func (c *AdminCompany) Load(ctx context.Context) (*CompanyModel, error) {
	model := &CompanyModel{Dialog: NewDialog(dto.CompanyForm{})}
	if err := c.refresh(ctx, model); err != nil {
		return nil, err
	}
	if model.Banner == "" {
		model.Dialog.OpenEdit(model.Company.ID.String(), dto.CompanyFormFrom(model.Company))
	}
	return model, nil
}

// Update saves the settings dialog.
func (c *AdminCompany) Update(ctx context.Context, form dto.CompanyForm) (*CompanyModel, error) {
	model := &CompanyModel{Dialog: NewDialog(dto.CompanyForm{})}
	model.Dialog.OpenEdit("", form)
	submitted, err := model.Dialog.Submit(ctx, form, validateWith[dto.CompanyForm](c.app.Validator),
		func(ctx context.Context, f dto.CompanyForm) error {
			return c.viewer.API.Company.Update(ctx, f.Payload())
		},
		func(ctx context.Context) error { return c.refresh(ctx, model) })
	if err != nil {
		return nil, err
	}
	if !submitted {
		return model, c.refresh(ctx, model)
	}
	model.Saved = true
	if model.Banner == "" {
		model.Dialog.OpenEdit(model.Company.ID.String(), dto.CompanyFormFrom(model.Company))
	}
	return model, nil
}

func (c *AdminCompany) refresh(ctx context.Context, model *CompanyModel) error {
	life := NewLifetime(ctx)
	company, err := Keep(life, c.viewer.API.Company.Get)
	banner, gone := settle(life, err)
	if gone != nil {
		return gone
	}
	model.Banner = banner
	model.Company = company
	return nil
}
