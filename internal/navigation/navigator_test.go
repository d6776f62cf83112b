package navigation_test

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/intern-dashboard/internal/auth"
	"github.com/spec-kit/intern-dashboard/internal/domain"
	"github.com/spec-kit/intern-dashboard/internal/events"
	"github.com/spec-kit/intern-dashboard/internal/navigation"
	"github.com/spec-kit/intern-dashboard/internal/session"
)

func credential(payload string) string {
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(`{"alg":"none"}`)) + "." + enc.EncodeToString([]byte(payload)) + ".x"
}

func keys(entries []navigation.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Key)
	}
	return out
}

func resolve(t *testing.T, payload string) navigation.State {
	t.Helper()
	snap := session.Snapshot{Ready: true, Credential: credential(payload)}
	return navigation.Resolve(snap, auth.NewDecoder(nil, nil))
}

func TestVisible_AdminVersusIntern(t *testing.T) {
	nav := navigation.New(navigation.DefaultEntries())

	admin := keys(nav.Visible(resolve(t, `{"role":"ADMIN"}`)))
	assert.Contains(t, admin, "admin-users")
	assert.Contains(t, admin, "admin-company")
	assert.NotContains(t, admin, "intern-tasks")
	assert.NotContains(t, admin, "intern-evaluation")

	intern := keys(nav.Visible(resolve(t, `{"role":"INTERN"}`)))
	assert.Contains(t, intern, "intern-tasks")
	assert.Contains(t, intern, "intern-evaluation")
	assert.NotContains(t, intern, "admin-users")
	assert.NotContains(t, intern, "admin-company")

	assert.Equal(t, []string{"admin-overview", "admin-users", "admin-domains", "admin-company", "profile"}, admin)
}

func TestVisible_NothingWhenNotAuthenticated(t *testing.T) {
	nav := navigation.New(navigation.DefaultEntries())
	assert.Empty(t, nav.Visible(navigation.State{Phase: navigation.PhaseHydrating}))
	assert.Empty(t, nav.Visible(navigation.State{Phase: navigation.PhaseUnauthenticated}))
	assert.Empty(t, nav.Visible(resolve(t, `{"role":"GUEST"}`)))
}

func TestResolve_Phases(t *testing.T) {
	dec := auth.NewDecoder(nil, nil)

	assert.Equal(t, navigation.PhaseHydrating, navigation.Resolve(session.Snapshot{Credential: credential(`{"role":"ADMIN"}`)}, dec).Phase)
	assert.Equal(t, navigation.PhaseUnauthenticated, navigation.Resolve(session.Snapshot{Ready: true}, dec).Phase)
	assert.Equal(t, navigation.PhaseUnauthenticated, navigation.Resolve(session.Snapshot{Ready: true, Credential: "garbage"}, dec).Phase)

	st := navigation.Resolve(session.Snapshot{Ready: true, Credential: credential(`{"role":"SUPERVISOR","sub":"9"}`)}, dec)
	assert.Equal(t, navigation.PhaseAuthenticated, st.Phase)
	assert.Equal(t, domain.RoleSupervisor, st.Role())
	assert.Equal(t, "9", st.Claims.SubjectID)
}

func TestStateMachineThroughStore(t *testing.T) {
	dec := auth.NewDecoder(nil, nil)
	store := session.NewStore(session.StoreOptions{SessionID: "s", StorageKey: "k"})

	assert.Equal(t, navigation.PhaseHydrating, navigation.Resolve(store.Snapshot(), dec).Phase)

	store.Hydrate(context.Background())
	assert.Equal(t, navigation.PhaseUnauthenticated, navigation.Resolve(store.Snapshot(), dec).Phase)

	store.SetCredential(context.Background(), credential(`{"role":"INTERN"}`), events.LoggedInPayload{})
	st := navigation.Resolve(store.Snapshot(), dec)
	require.Equal(t, navigation.PhaseAuthenticated, st.Phase)
	assert.Equal(t, domain.RoleIntern, st.Role())

	store.Logout(context.Background())
	assert.Equal(t, navigation.PhaseUnauthenticated, navigation.Resolve(store.Snapshot(), dec).Phase)
}

func TestDecide(t *testing.T) {
	nav := navigation.New(navigation.DefaultEntries())
	admin := resolve(t, `{"role":"ADMIN"}`)
	intern := resolve(t, `{"role":"INTERN"}`)

	tests := []struct {
		name  string
		path  string
		state navigation.State
		want  navigation.Decision
	}{
		{"public while hydrating", "/login", navigation.State{Phase: navigation.PhaseHydrating}, navigation.Decision{Outcome: navigation.Allow}},
		{"health while signed out", "/health/live", navigation.State{Phase: navigation.PhaseUnauthenticated}, navigation.Decision{Outcome: navigation.Allow}},
		{"protected while hydrating", "/admin/users", navigation.State{Phase: navigation.PhaseHydrating}, navigation.Decision{Outcome: navigation.Wait}},
		{"protected while signed out", "/admin/users", navigation.State{Phase: navigation.PhaseUnauthenticated}, navigation.Decision{Outcome: navigation.RedirectSignIn, Location: "/login"}},
		{"root goes home", "/", intern, navigation.Decision{Outcome: navigation.RedirectHome, Location: "/intern"}},
		{"admin page for admin", "/admin/users/17", admin, navigation.Decision{Outcome: navigation.Allow}},
		{"admin page for intern", "/admin/users", intern, navigation.Decision{Outcome: navigation.RedirectHome, Location: "/intern"}},
		{"intern page for admin", "/intern/evaluation", admin, navigation.Decision{Outcome: navigation.RedirectHome, Location: "/admin"}},
		{"shared page", "/profile", intern, navigation.Decision{Outcome: navigation.Allow}},
		{"unknown protected path", "/nowhere", admin, navigation.Decision{Outcome: navigation.Allow}},
		{"prefix is not a segment", "/administrator", intern, navigation.Decision{Outcome: navigation.Allow}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nav.Decide(tt.path, tt.state))
		})
	}
}

func TestHomeFor(t *testing.T) {
	nav := navigation.New(navigation.DefaultEntries())
	assert.Equal(t, "/admin", nav.HomeFor(domain.RoleAdmin))
	assert.Equal(t, "/supervisor", nav.HomeFor(domain.RoleSupervisor))
	assert.Equal(t, "/intern", nav.HomeFor(domain.RoleIntern))
	assert.Equal(t, navigation.SignInPath, nav.HomeFor("GUEST"))
}

func TestMatchPrefersLongestPath(t *testing.T) {
	nav := navigation.New(navigation.DefaultEntries())
	e, ok := nav.Match("/supervisor/tasks/4")
	require.True(t, ok)
	assert.Equal(t, "supervisor-tasks", e.Key)

	e, ok = nav.Match("/intern/tasks/4/status")
	require.True(t, ok)
	assert.Equal(t, "intern-tasks", e.Key)
}
