package views

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/intern-dashboard/internal/api/dto"
	"github.com/spec-kit/intern-dashboard/internal/apiclient/apitest"
	"github.com/spec-kit/intern-dashboard/internal/domain"
)

func TestAdminUsers_CreateConflictKeepsDialogOpen(t *testing.T) {
	app, api := newApp(t)
	seedTeam(api)
	api.FailNext("POST /api/users", apitest.Failure{Status: 409, Body: `{"error":"Email already exists"}`})

	form := dto.UserForm{FullName: "Ada", Email: "ian@acme.io", Role: "INTERN"}
	model, err := NewAdminUsers(app, viewer(app, "1", domain.RoleAdmin)).Create(context.Background(), TableQuery{}, form)
	require.NoError(t, err)

	assert.True(t, model.Dialog.IsOpen())
	assert.Equal(t, "Email already exists", model.Dialog.Error)
	assert.Equal(t, form, model.Dialog.Form)
	assert.Len(t, model.Table.Rows, 6)
}

func TestAdminUsers_CreateSuccessClosesAndRefetchesOnce(t *testing.T) {
	app, api := newApp(t)
	seedTeam(api)

	form := dto.UserForm{FullName: "Nia New", Email: "nia@acme.io", Role: "INTERN", SupervisorID: "2"}
	model, err := NewAdminUsers(app, viewer(app, "1", domain.RoleAdmin)).Create(context.Background(), TableQuery{}, form)
	require.NoError(t, err)

	assert.False(t, model.Dialog.IsOpen())
	assert.Equal(t, dto.UserForm{}, model.Dialog.Form)
	assert.Empty(t, model.Dialog.Error)
	assert.Equal(t, 1, api.Calls("GET /api/users"))
	assert.Equal(t, 1, api.Calls("POST /api/users"))
	assert.Equal(t, 4, model.Interns)
}

func TestAdminUsers_ValidationNeverReachesAPI(t *testing.T) {
	app, api := newApp(t)
	seedTeam(api)

	model, err := NewAdminUsers(app, viewer(app, "1", domain.RoleAdmin)).
		Create(context.Background(), TableQuery{}, dto.UserForm{Email: "nope", Role: "INTERN"})
	require.NoError(t, err)

	assert.True(t, model.Dialog.IsOpen())
	assert.Equal(t, "is required", model.Dialog.Fields["fullName"])
	assert.Equal(t, "must be a valid email", model.Dialog.Fields["email"])
	assert.Zero(t, api.Calls("POST /api/users"))
}

func TestAdminUsers_Counters(t *testing.T) {
	app, api := newApp(t)
	seedTeam(api)

	model, err := NewAdminUsers(app, viewer(app, "1", domain.RoleAdmin)).Load(context.Background(), TableQuery{})
	require.NoError(t, err)
	assert.Equal(t, 3, model.Interns)
	assert.Equal(t, 2, model.Supervisors)
	assert.Equal(t, 1, model.Admins)
	assert.Len(t, model.SupervisorOptions, 2)

	overview, err := NewAdminOverview(app, viewer(app, "1", domain.RoleAdmin)).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, overview.Interns)
	assert.Equal(t, 2, overview.Supervisors)
	assert.Equal(t, 4, overview.TotalTasks)
	assert.Equal(t, "Acme", overview.Company.Name)
	require.Len(t, overview.Statuses, len(domain.TaskStatuses))
	assert.Equal(t, StatusCount{Status: domain.TaskStatusCompleted, Count: 1, Percent: 25}, overview.Statuses[4])
}

func TestAdminUsers_EditDomainRoundTrip(t *testing.T) {
	app, api := newApp(t)
	seedTeam(api)
	ctrl := NewAdminUsers(app, viewer(app, "1", domain.RoleAdmin))

	opened, err := ctrl.OpenEdit(context.Background(), TableQuery{}, "11")
	require.NoError(t, err)
	require.True(t, opened.Dialog.Editing())

	form := opened.Dialog.Form
	form.Domain = "Data Science"
	model, err := ctrl.Update(context.Background(), TableQuery{}, "11", form)
	require.NoError(t, err)
	require.False(t, model.Dialog.IsOpen())

	var cell string
	for _, u := range model.Table.Rows {
		if u.ID == "11" {
			cell = u.Domain
		}
	}
	assert.Equal(t, "Data Science", cell)
}

func TestAdminUsers_EditClearsOptionalFields(t *testing.T) {
	app, api := newApp(t)
	seedTeam(api)
	ctrl := NewAdminUsers(app, viewer(app, "1", domain.RoleAdmin))

	opened, err := ctrl.OpenEdit(context.Background(), TableQuery{}, "10")
	require.NoError(t, err)
	form := opened.Dialog.Form
	require.Equal(t, "Backend", form.Domain)

	form.Domain = ""
	form.SupervisorID = ""
	model, err := ctrl.Update(context.Background(), TableQuery{}, "10", form)
	require.NoError(t, err)
	require.False(t, model.Dialog.IsOpen())

	var ian domain.User
	for _, u := range api.Users {
		if u.ID == "10" {
			ian = u
		}
	}
	assert.Empty(t, ian.Domain)
	assert.Empty(t, ian.SupervisorID)
	assert.Equal(t, "Ian Intern", ian.FullName)
}

func TestAdminUsers_EditMissingUser(t *testing.T) {
	app, api := newApp(t)
	seedTeam(api)

	model, err := NewAdminUsers(app, viewer(app, "1", domain.RoleAdmin)).OpenEdit(context.Background(), TableQuery{}, "99")
	require.NoError(t, err)
	assert.False(t, model.Dialog.IsOpen())
	assert.Equal(t, "User not found", model.Banner)
}

func TestAdminUsers_SearchFilterAndPaging(t *testing.T) {
	app, api := newApp(t)
	seedTeam(api)
	ctrl := NewAdminUsers(app, viewer(app, "1", domain.RoleAdmin))

	model, err := ctrl.Load(context.Background(), TableQuery{Role: "INTERN", Search: "iv"})
	require.NoError(t, err)
	require.Len(t, model.Table.Rows, 1)
	assert.Equal(t, "Ivy Intern", model.Table.Rows[0].FullName)

	model, err = ctrl.Load(context.Background(), TableQuery{Page: 2, PageSize: 4})
	require.NoError(t, err)
	assert.Len(t, model.Table.Rows, 2)
	assert.Equal(t, 2, model.Table.Pages)
}

func TestAdminUsers_Delete(t *testing.T) {
	app, api := newApp(t)
	seedTeam(api)
	ctrl := NewAdminUsers(app, viewer(app, "1", domain.RoleAdmin))

	model, err := ctrl.Delete(context.Background(), TableQuery{}, "12")
	require.NoError(t, err)
	assert.Equal(t, 2, model.Interns)

	model, err = ctrl.Delete(context.Background(), TableQuery{}, "999")
	require.NoError(t, err)
	assert.Equal(t, "User not found", model.Banner)
}

func TestAdminUsers_ListFailureIsBanner(t *testing.T) {
	app, api := newApp(t)
	api.FailNext("GET /api/users", apitest.Failure{Status: 500, Body: `oops`})

	model, err := NewAdminUsers(app, viewer(app, "1", domain.RoleAdmin)).Load(context.Background(), TableQuery{})
	require.NoError(t, err)
	assert.Equal(t, "request failed with status 500", model.Banner)
	assert.Empty(t, model.Table.Rows)
}

func TestAdminUsers_GoneViewDiscardsResult(t *testing.T) {
	app, api := newApp(t)
	seedTeam(api)

	model, err := NewAdminUsers(app, viewer(app, "1", domain.RoleAdmin)).Load(cancelled(), TableQuery{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, model.Table.Rows)
}

func TestAdminDomains_Totals(t *testing.T) {
	app, api := newApp(t)
	api.Domains = []domain.InternshipDomain{
		{ID: "1", DomainName: "Data Science", ActiveInterns: 3, TotalInterns: 5, Status: domain.DomainStatusActive,
			Supervisors: []domain.SupervisorRef{{ID: "2", FullName: "Sam Supervisor"}}},
		{ID: "2", DomainName: "Mobile", ActiveInterns: 0, TotalInterns: 2, Status: domain.DomainStatusInactive},
	}

	model, err := NewAdminDomains(app, viewer(app, "1", domain.RoleAdmin)).Load(context.Background(), TableQuery{})
	require.NoError(t, err)
	assert.Len(t, model.Domains, 2)
	assert.Equal(t, 1, model.ActiveDomains)
	assert.Equal(t, 3, model.ActiveInterns)
	assert.Equal(t, 7, model.TotalInterns)

	model, err = NewAdminDomains(app, viewer(app, "1", domain.RoleAdmin)).Load(context.Background(), TableQuery{Search: "data"})
	require.NoError(t, err)
	require.Len(t, model.Domains, 1)
	assert.Equal(t, "Sam Supervisor", model.Domains[0].Supervisors[0].FullName)
}

func TestAdminCompany_Update(t *testing.T) {
	app, api := newApp(t)
	ctrl := NewAdminCompany(app, viewer(app, "1", domain.RoleAdmin))

	model, err := ctrl.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Acme", model.Dialog.Form.Name)

	model, err = ctrl.Update(context.Background(), dto.CompanyForm{Name: "Initech", LogoURL: "https://cdn.example.com/logo.png"})
	require.NoError(t, err)
	assert.True(t, model.Saved)
	assert.Equal(t, "Initech", model.Company.Name)
	assert.Equal(t, "Initech", api.Company.Name)

	model, err = ctrl.Update(context.Background(), dto.CompanyForm{})
	require.NoError(t, err)
	assert.False(t, model.Saved)
	assert.Equal(t, "is required", model.Dialog.Fields["name"])
}
