package views

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/intern-dashboard/internal/api/dto"
	"github.com/spec-kit/intern-dashboard/internal/apiclient/apitest"
	"github.com/spec-kit/intern-dashboard/internal/domain"
	apperrors "github.com/spec-kit/intern-dashboard/pkg/util/errorutil"
)

func column(m *BoardModel, s domain.TaskStatus) []domain.Task {
	for _, c := range m.Columns {
		if c.Status == s {
			return c.Tasks
		}
	}
	return nil
}

func TestInternTasks_BoardShowsOwnTasks(t *testing.T) {
	app, api := newApp(t)
	seedTeam(api)

	model, err := NewInternTasks(app, viewer(app, "10", domain.RoleIntern)).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, model.Total)
	assert.Len(t, model.Columns, len(domain.TaskStatuses))
	assert.Len(t, column(model, domain.TaskStatusCompleted), 1)
	assert.Len(t, column(model, domain.TaskStatusInProgress), 1)
	assert.Empty(t, column(model, domain.TaskStatusTodo))
}

func TestInternTasks_ChangeStatusAnyToAny(t *testing.T) {
	app, api := newApp(t)
	seedTeam(api)
	ctrl := NewInternTasks(app, viewer(app, "10", domain.RoleIntern))

	model, err := ctrl.ChangeStatus(context.Background(), "100", dto.TaskStatusForm{Status: "TODO"})
	require.NoError(t, err)
	assert.Empty(t, model.Banner)
	assert.Len(t, column(model, domain.TaskStatusTodo), 1)
	assert.Empty(t, column(model, domain.TaskStatusCompleted))
}

func TestInternTasks_ChangeStatusOfForeignTask(t *testing.T) {
	app, api := newApp(t)
	seedTeam(api)

	model, err := NewInternTasks(app, viewer(app, "10", domain.RoleIntern)).
		ChangeStatus(context.Background(), "102", dto.TaskStatusForm{Status: "COMPLETED"})
	require.NoError(t, err)
	assert.Equal(t, "Task not found", model.Banner)
	assert.Zero(t, api.Calls("PUT /api/tasks/102"))
}

func TestInternTasks_InvalidStatus(t *testing.T) {
	app, api := newApp(t)
	seedTeam(api)

	model, err := NewInternTasks(app, viewer(app, "10", domain.RoleIntern)).
		ChangeStatus(context.Background(), "100", dto.TaskStatusForm{Status: "DONE"})
	require.NoError(t, err)
	assert.Contains(t, model.Fields, "status")
	assert.Equal(t, 2, model.Total)
}

func TestInternEvaluation(t *testing.T) {
	app, api := newApp(t)
	ctrl := NewInternEvaluation(app, viewer(app, "10", domain.RoleIntern))

	model, err := ctrl.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, model.Missing)
	assert.Empty(t, model.Banner)

	api.Mine = &domain.Evaluation{ID: "5", InternID: "10", TechnicalScore: 8, CommunicationScore: 6, TeamworkScore: 7}
	model, err = ctrl.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, model.Missing)
	assert.Equal(t, "7.0", model.Overall)

	api.FailNext("GET /api/evaluations/me", apitest.Failure{Status: 500, Body: `{"message":"database down"}`})
	model, err = ctrl.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "database down", model.Banner)
}

func TestProfile(t *testing.T) {
	app, api := newApp(t)
	seedTeam(api)

	model, err := NewProfile(app, viewer(app, "10", domain.RoleIntern)).Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, model.User)
	assert.Equal(t, "ian@acme.io", model.User.Email)

	roleOnly := viewer(app, "", domain.RoleAdmin)
	model, err = NewProfile(app, roleOnly).Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, model.User)
	assert.Zero(t, api.Calls("GET /api/users/"))

	model, err = NewProfile(app, viewer(app, "404", domain.RoleIntern)).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "User not found", model.Banner)
}

func TestLoadAfterViewGone(t *testing.T) {
	app, api := newApp(t)
	seedTeam(api)

	_, err := NewInternEvaluation(app, viewer(app, "10", domain.RoleIntern)).Load(cancelled())
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotEqual(t, apperrors.ConnectivityMessage, apperrors.UserMessage(err))
}
