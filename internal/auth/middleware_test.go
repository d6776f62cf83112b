package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/intern-dashboard/internal/events"
	"github.com/spec-kit/intern-dashboard/internal/navigation"
	"github.com/spec-kit/intern-dashboard/internal/session"
)

const cookieName = "sid"

// gatedPersister blocks Load until gate is closed.
type gatedPersister struct {
	gate chan struct{}
}

func (p *gatedPersister) Load(ctx context.Context, _ string) (string, bool, error) {
	select {
	case <-p.gate:
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
	return "", false, nil
}
func (p *gatedPersister) Save(context.Context, string, string) error { return nil }
func (p *gatedPersister) Delete(context.Context, string) error       { return nil }

func newApp(manager *session.Manager, hydrateWait time.Duration) (*fiber.App, *SessionMiddleware) {
	nav := navigation.New(navigation.DefaultEntries())
	mw := NewSessionMiddleware(manager, NewDecoder(nil, nil), CookieConfig{Name: cookieName}, hydrateWait, nil)

	app := fiber.New()
	app.Use(mw.Handle)
	loading := func(c *fiber.Ctx) error { return c.Status(http.StatusAccepted).SendString("loading") }
	app.Get("/login", func(c *fiber.Ctx) error { return c.SendString("login") })
	protected := app.Group("", Guard(nav, loading))
	protected.Get("/", func(c *fiber.Ctx) error { return c.SendString("root") })
	protected.Get("/admin", RequireRole(nav, "ADMIN"), func(c *fiber.Ctx) error {
		p, _ := PrincipalFromContext(c)
		return c.SendString("admin:" + string(p.Claims().Role))
	})
	protected.Get("/intern", func(c *fiber.Ctx) error { return c.SendString("intern") })
	return app, mw
}

func get(t *testing.T, app *fiber.App, path, sid string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: sid})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func readyStore(t *testing.T, manager *session.Manager, sid string) *session.Store {
	t.Helper()
	store := manager.Acquire(sid)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.True(t, store.WaitReady(ctx))
	return store
}

func TestSession_NewVisitorGetsCookieAndSignIn(t *testing.T) {
	manager := session.NewManager(session.ManagerConfig{StorageKey: "k"}, nil, nil, nil, nil, nil)
	app, _ := newApp(manager, time.Second)

	resp := get(t, app, "/admin", "")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	var sid string
	for _, c := range resp.Cookies() {
		if c.Name == cookieName {
			sid = c.Value
			assert.True(t, c.HttpOnly)
		}
	}
	assert.NotEmpty(t, sid)
	assert.Equal(t, 1, manager.Len())
}

func TestSession_RoleRouting(t *testing.T) {
	manager := session.NewManager(session.ManagerConfig{StorageKey: "k"}, nil, nil, nil, nil, nil)
	app, _ := newApp(manager, time.Second)

	adminSID := "5f0c6c8e-7a4e-4d4f-9a51-9b7f0d1f2a01"
	readyStore(t, manager, adminSID).SetCredential(context.Background(), credential(`{"role":"ADMIN","sub":"1"}`), events.LoggedInPayload{})
	internSID := "5f0c6c8e-7a4e-4d4f-9a51-9b7f0d1f2a02"
	readyStore(t, manager, internSID).SetCredential(context.Background(), credential(`{"role":"INTERN","sub":"2"}`), events.LoggedInPayload{})

	resp := get(t, app, "/admin", adminSID)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, app, "/admin", internSID)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/intern", resp.Header.Get("Location"))

	resp = get(t, app, "/", internSID)
	assert.Equal(t, "/intern", resp.Header.Get("Location"))
}

func TestSession_ExpiredCredentialSignsOut(t *testing.T) {
	manager := session.NewManager(session.ManagerConfig{StorageKey: "k"}, nil, nil, nil, nil, nil)
	app, _ := newApp(manager, time.Second)

	sid := "5f0c6c8e-7a4e-4d4f-9a51-9b7f0d1f2a03"
	exp := time.Now().Add(-time.Minute).Unix()
	store := readyStore(t, manager, sid)
	store.SetCredential(context.Background(), credential(`{"role":"ADMIN","exp":`+strconv.FormatInt(exp, 10)+`}`), events.LoggedInPayload{})

	resp := get(t, app, "/admin", sid)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.Empty(t, store.Credential())
}

func TestSession_HydratingShowsLoading(t *testing.T) {
	persister := &gatedPersister{gate: make(chan struct{})}
	defer close(persister.gate)
	manager := session.NewManager(session.ManagerConfig{StorageKey: "k"}, persister, nil, nil, nil, nil)
	app, _ := newApp(manager, 10*time.Millisecond)

	resp := get(t, app, "/admin", "5f0c6c8e-7a4e-4d4f-9a51-9b7f0d1f2a04")
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp = get(t, app, "/login", "5f0c6c8e-7a4e-4d4f-9a51-9b7f0d1f2a04")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRedirectAuthenticated(t *testing.T) {
	manager := session.NewManager(session.ManagerConfig{StorageKey: "k"}, nil, nil, nil, nil, nil)
	nav := navigation.New(navigation.DefaultEntries())
	mw := NewSessionMiddleware(manager, NewDecoder(nil, nil), CookieConfig{Name: cookieName}, time.Second, nil)
	app := fiber.New()
	app.Use(mw.Handle)
	app.Get("/login", RedirectAuthenticated(nav), func(c *fiber.Ctx) error { return c.SendString("form") })

	sid := "5f0c6c8e-7a4e-4d4f-9a51-9b7f0d1f2a05"
	resp := get(t, app, "/login", sid)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	readyStore(t, manager, sid).SetCredential(context.Background(), credential(`{"role":"SUPERVISOR"}`), events.LoggedInPayload{})
	resp = get(t, app, "/login", sid)
	assert.Equal(t, "/supervisor", resp.Header.Get("Location"))
}

func TestSession_RotateMovesToFreshStore(t *testing.T) {
	manager := session.NewManager(session.ManagerConfig{StorageKey: "k"}, nil, nil, nil, nil, nil)
	mw := NewSessionMiddleware(manager, NewDecoder(nil, nil), CookieConfig{Name: cookieName}, time.Second, nil)
	app := fiber.New()
	app.Use(mw.Handle)
	app.Post("/login", func(c *fiber.Ctx) error {
		before, _ := PrincipalFromContext(c)
		after := mw.Rotate(c)
		after.Store.SetCredential(c.UserContext(), credential(`{"role":"ADMIN"}`), events.LoggedInPayload{})
		current, _ := PrincipalFromContext(c)
		if current != after || after.SessionID == before.SessionID {
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.SendString(after.SessionID)
	})

	planted := "5f0c6c8e-7a4e-4d4f-9a51-9b7f0d1f2a06"
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: planted})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var issued string
	for _, c := range resp.Cookies() {
		if c.Name == cookieName {
			issued = c.Value
		}
	}
	require.NotEmpty(t, issued)
	assert.NotEqual(t, planted, issued)
	assert.Equal(t, 1, manager.Len())
	assert.NotEmpty(t, manager.Acquire(issued).Credential())
}
