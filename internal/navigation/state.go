package navigation

import (
	"github.com/spec-kit/intern-dashboard/internal/domain"
	"github.com/spec-kit/intern-dashboard/internal/session"
)

// Phase is the coarse session state pages are rendered against.
type Phase int

const (
	// PhaseHydrating: the persisted credential has not been read yet.
	PhaseHydrating Phase = iota
	PhaseUnauthenticated
	PhaseAuthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseHydrating:
		return "HYDRATING"
	case PhaseUnauthenticated:
		return "UNAUTHENTICATED"
	case PhaseAuthenticated:
		return "AUTHENTICATED"
	default:
		return "UNKNOWN"
	}
}

// ClaimsDecoder turns a credential into claims.
type ClaimsDecoder interface {
	Decode(token string) (domain.Claims, bool)
}

// State is the phase plus, when authenticated, the decoded claims.
type State struct {
	Phase  Phase
	Claims domain.Claims
}

// Role returns the authenticated role, empty otherwise.
func (s State) Role() domain.Role {
	if s.Phase != PhaseAuthenticated {
		return ""
	}
	return s.Claims.Role
}

// Authenticated reports PhaseAuthenticated.
func (s State) Authenticated() bool {
	return s.Phase == PhaseAuthenticated
}

// Resolve derives the state of a store snapshot. An undecodable credential is
// treated like no credential.
func Resolve(snap session.Snapshot, decoder ClaimsDecoder) State {
	if !snap.Ready {
		return State{Phase: PhaseHydrating}
	}
	if snap.Credential == "" {
		return State{Phase: PhaseUnauthenticated}
	}
	claims, ok := decoder.Decode(snap.Credential)
	if !ok {
		return State{Phase: PhaseUnauthenticated}
	}
	return State{Phase: PhaseAuthenticated, Claims: claims}
}
