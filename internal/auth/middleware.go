package auth

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/intern-dashboard/internal/domain"
	"github.com/spec-kit/intern-dashboard/internal/navigation"
	"github.com/spec-kit/intern-dashboard/internal/session"
)

const principalKey = "auth_principal"

// Principal is the browser session behind a request.
type Principal struct {
	SessionID string
	Store     *session.Store
	State     navigation.State
}

// Claims returns the decoded claims, zero when not authenticated.
func (p *Principal) Claims() domain.Claims {
	if !p.State.Authenticated() {
		return domain.Claims{}
	}
	return p.State.Claims
}

// CookieConfig names the browser-session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// SessionMiddleware attaches the session store and its resolved state to every request.
type SessionMiddleware struct {
	manager     *session.Manager
	decoder     *Decoder
	cookie      CookieConfig
	hydrateWait time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(manager *session.Manager, decoder *Decoder, cookie CookieConfig, hydrateWait time.Duration, logger *zap.Logger) *SessionMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionMiddleware{
		manager:     manager,
		decoder:     decoder,
		cookie:      cookie,
		hydrateWait: hydrateWait,
		logger:      logger,
		now:         time.Now,
	}
}

// Handle resolves the session of the request. A store still hydrating after
// hydrateWait is left in the HYDRATING state for the guard to handle.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	sid := c.Cookies(m.cookie.Name)
	if _, err := uuid.Parse(sid); err != nil {
		sid = m.issue(c)
	}

	store := m.manager.Acquire(sid)
	if !store.Ready() && m.hydrateWait > 0 {
		ctx, cancel := context.WithTimeout(c.UserContext(), m.hydrateWait)
		store.WaitReady(ctx)
		cancel()
	}

	state := navigation.Resolve(store.Snapshot(), m.decoder)
	if state.Authenticated() && state.Claims.Expired(m.now()) {
		m.logger.Info("credential expired, signing out", zap.String("session_id", sid))
		store.Logout(c.UserContext())
		state = navigation.Resolve(store.Snapshot(), m.decoder)
	}

	c.Locals(principalKey, &Principal{SessionID: sid, Store: store, State: state})
	return c.Next()
}

// Rotate moves the request to a fresh session id and store and drops the
// previous one. Sign-in calls it so an id chosen before authentication never
// becomes an authenticated session.
func (m *SessionMiddleware) Rotate(c *fiber.Ctx) *Principal {
	old, _ := PrincipalFromContext(c)
	sid := m.issue(c)
	store := m.manager.Acquire(sid)
	if old != nil && old.SessionID != sid {
		m.manager.Release(old.SessionID)
	}
	principal := &Principal{SessionID: sid, Store: store, State: navigation.Resolve(store.Snapshot(), m.decoder)}
	c.Locals(principalKey, principal)
	return principal
}

func (m *SessionMiddleware) issue(c *fiber.Ctx) string {
	sid := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     m.cookie.Name,
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		Secure:   m.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return sid
}

// PrincipalFromContext retrieves the session principal.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
