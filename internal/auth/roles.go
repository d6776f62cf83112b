package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/intern-dashboard/internal/domain"
	"github.com/spec-kit/intern-dashboard/internal/navigation"
)

// Guard applies the navigator's decision to a protected route. loading renders
// the placeholder shown while the session is still hydrating.
func Guard(nav *navigation.Navigator, loading fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return c.Redirect(navigation.SignInPath, fiber.StatusSeeOther)
		}
		decision := nav.Decide(c.Path(), principal.State)
		switch decision.Outcome {
		case navigation.Allow:
			return c.Next()
		case navigation.Wait:
			return loading(c)
		default:
			return c.Redirect(decision.Location, fiber.StatusSeeOther)
		}
	}
}

// RequireRole lets through only the allowed roles and sends everyone else home.
func RequireRole(nav *navigation.Navigator, allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || !principal.State.Authenticated() {
			return c.Redirect(navigation.SignInPath, fiber.StatusSeeOther)
		}
		if _, exists := allowedSet[principal.State.Role()]; !exists {
			return c.Redirect(nav.HomeFor(principal.State.Role()), fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

// RedirectAuthenticated sends a signed-in visitor of a public page, such as
// the sign-in form, to their home page.
func RedirectAuthenticated(nav *navigation.Navigator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if ok && principal.State.Authenticated() {
			return c.Redirect(nav.HomeFor(principal.State.Role()), fiber.StatusSeeOther)
		}
		return c.Next()
	}
}
