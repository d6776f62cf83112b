package views

import (
	"context"
	"testing"

	"github.com/spec-kit/intern-dashboard/internal/api/dto"
	"github.com/spec-kit/intern-dashboard/internal/apiclient"
	"github.com/spec-kit/intern-dashboard/internal/apiclient/apitest"
	"github.com/spec-kit/intern-dashboard/internal/domain"
	"github.com/spec-kit/intern-dashboard/internal/navigation"
	"github.com/spec-kit/intern-dashboard/internal/schemas"
)

func newApp(t *testing.T) (*AppContext, *apitest.Server) {
	t.Helper()
	api := apitest.New()
	t.Cleanup(api.Close)
	return &AppContext{
		API:       apiclient.New(apiclient.Options{BaseURL: api.URL, Schemas: schemas.MustLoad()}),
		Navigator: navigation.New(navigation.DefaultEntries()),
		Validator: dto.NewValidator(),
	}, api
}

func viewer(app *AppContext, subject string, role domain.Role) Viewer {
	return Viewer{
		Claims: domain.Claims{SubjectID: subject, Role: role, DisplayName: "Test " + string(role)},
		API:    app.API.For(apiclient.StaticCredential("test-token")),
	}
}

func seedTeam(api *apitest.Server) {
	api.Users = []domain.User{
		{ID: "1", FullName: "Alice Admin", Email: "alice@acme.io", Role: domain.RoleAdmin},
		{ID: "2", FullName: "Sam Supervisor", Email: "sam@acme.io", Role: domain.RoleSupervisor},
		{ID: "3", FullName: "Sue Supervisor", Email: "sue@acme.io", Role: domain.RoleSupervisor},
		{ID: "10", FullName: "Ian Intern", Email: "ian@acme.io", Role: domain.RoleIntern, SupervisorID: "2", Domain: "Backend"},
		{ID: "11", FullName: "Ivy Intern", Email: "ivy@acme.io", Role: domain.RoleIntern, SupervisorID: "2"},
		{ID: "12", FullName: "Ike Intern", Email: "ike@acme.io", Role: domain.RoleIntern, SupervisorID: "3"},
	}
	api.Tasks = []domain.Task{
		{ID: "100", Title: "Set up laptop", InternID: "10", Status: domain.TaskStatusCompleted, Priority: domain.TaskPriorityLow},
		{ID: "101", Title: "Read handbook", InternID: "10", Status: domain.TaskStatusInProgress, Priority: domain.TaskPriorityMedium},
		{ID: "102", Title: "First PR", InternID: "11", Status: domain.TaskStatusTodo, Priority: domain.TaskPriorityHigh},
		{ID: "103", Title: "Dashboards", InternID: "12", Status: domain.TaskStatusReview, Priority: domain.TaskPriorityMedium},
	}
}

func cancelled() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}
