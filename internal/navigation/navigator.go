package navigation

import (
	"strings"

	"github.com/spec-kit/intern-dashboard/internal/domain"
)

// SignInPath is where unauthenticated visitors are sent.
const SignInPath = "/login"

// Entry is one navigation link and the roles allowed to follow it.
type Entry struct {
	Key   string
	Label string
	Path  string
	Roles []domain.Role
	// Home marks the landing page of each allowed role.
	Home bool
}

// Allows reports whether role may see the entry.
func (e Entry) Allows(role domain.Role) bool {
	for _, r := range e.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// DefaultEntries is the dashboard's navigation catalogue in display order.
func DefaultEntries() []Entry {
	admin := []domain.Role{domain.RoleAdmin}
	supervisor := []domain.Role{domain.RoleSupervisor}
	intern := []domain.Role{domain.RoleIntern}
	return []Entry{
		{Key: "admin-overview", Label: "Overview", Path: "/admin", Roles: admin, Home: true},
		{Key: "admin-users", Label: "Users", Path: "/admin/users", Roles: admin},
		{Key: "admin-domains", Label: "Domains", Path: "/admin/domains", Roles: admin},
		{Key: "admin-company", Label: "Company", Path: "/admin/company", Roles: admin},
		{Key: "supervisor-interns", Label: "My Interns", Path: "/supervisor", Roles: supervisor, Home: true},
		{Key: "supervisor-tasks", Label: "Tasks", Path: "/supervisor/tasks", Roles: supervisor},
		{Key: "supervisor-evaluations", Label: "Evaluations", Path: "/supervisor/evaluations", Roles: supervisor},
		{Key: "intern-tasks", Label: "My Tasks", Path: "/intern", Roles: intern, Home: true},
		{Key: "intern-evaluation", Label: "My Evaluation", Path: "/intern/evaluation", Roles: intern},
		{Key: "profile", Label: "Profile", Path: "/profile", Roles: domain.Roles},
	}
}

var defaultPublicPrefixes = []string{"/login", "/register", "/health", "/metrics", "/static"}

// Outcome is the result of a route decision.
type Outcome int

const (
	Allow Outcome = iota
	// Wait: the session is still hydrating; render a loading placeholder.
	Wait
	RedirectSignIn
	// RedirectHome: authenticated, but the role may not open this page.
	RedirectHome
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case Wait:
		return "wait"
	case RedirectSignIn:
		return "redirect_sign_in"
	case RedirectHome:
		return "redirect_home"
	default:
		return "unknown"
	}
}

// Decision is an outcome plus the redirect target, if any.
type Decision struct {
	Outcome  Outcome
	Location string
}

// Navigator computes visible entries and guards routes.
type Navigator struct {
	entries []Entry
	public  []string
}

// New builds a navigator over entries.
func New(entries []Entry) *Navigator {
	return &Navigator{entries: append([]Entry(nil), entries...), public: defaultPublicPrefixes}
}

// Entries returns the full catalogue.
func (n *Navigator) Entries() []Entry {
	return append([]Entry(nil), n.entries...)
}

// Visible returns, in catalogue order, the entries the state's role may see.
func (n *Navigator) Visible(state State) []Entry {
	if !state.Authenticated() {
		return nil
	}
	return n.ForRole(state.Role())
}

// ForRole returns the entries allowed for role.
func (n *Navigator) ForRole(role domain.Role) []Entry {
	out := make([]Entry, 0, len(n.entries))
	for _, e := range n.entries {
		if e.Allows(role) {
			out = append(out, e)
		}
	}
	return out
}

// HomeFor returns the landing path for role.
func (n *Navigator) HomeFor(role domain.Role) string {
	allowed := n.ForRole(role)
	for _, e := range allowed {
		if e.Home {
			return e.Path
		}
	}
	if len(allowed) > 0 {
		return allowed[0].Path
	}
	return SignInPath
}

// IsPublic reports whether path is reachable without a session.
func (n *Navigator) IsPublic(path string) bool {
	for _, prefix := range n.public {
		if underPath(path, prefix) {
			return true
		}
	}
	return false
}

// Match returns the most specific entry covering path.
func (n *Navigator) Match(path string) (Entry, bool) {
	var (
		best  Entry
		found bool
	)
	for _, e := range n.entries {
		if underPath(path, e.Path) && (!found || len(e.Path) > len(best.Path)) {
			best, found = e, true
		}
	}
	return best, found
}

// Decide guards path for state.
func (n *Navigator) Decide(path string, state State) Decision {
	if n.IsPublic(path) {
		return Decision{Outcome: Allow}
	}
	switch state.Phase {
	case PhaseHydrating:
		return Decision{Outcome: Wait}
	case PhaseUnauthenticated:
		return Decision{Outcome: RedirectSignIn, Location: SignInPath}
	}

	role := state.Role()
	if path == "/" || path == "" {
		return Decision{Outcome: RedirectHome, Location: n.HomeFor(role)}
	}
	entry, ok := n.Match(path)
	if !ok || entry.Allows(role) {
		return Decision{Outcome: Allow}
	}
	return Decision{Outcome: RedirectHome, Location: n.HomeFor(role)}
}

func underPath(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, strings.TrimRight(prefix, "/")+"/")
}
