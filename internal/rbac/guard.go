package rbac

// State is the outcome of evaluating a navigation or render against
// the current session and permission inputs.
type State int

const (
	// StateUnknown means the session status has not resolved yet.
	// Render nothing: neither content nor a redirect.
	StateUnknown State = iota
	// StateDeniedNoSession means the destination requires
	// authentication and no session is present.
	StateDeniedNoSession
	// StatePendingPermissions means a session is present but the
	// permission set for a guarded destination is still in flight.
	// Render nothing until it resolves.
	StatePendingPermissions
	// StateDeniedForbidden means the resolved permission set does not
	// cover the destination's requirement.
	StateDeniedForbidden
	// StateAllowed means the render or request may proceed.
	StateAllowed
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "UNKNOWN"
	case StateDeniedNoSession:
		return "DENIED_NO_SESSION"
	case StatePendingPermissions:
		return "PENDING_PERMISSIONS"
	case StateDeniedForbidden:
		return "DENIED_FORBIDDEN"
	case StateAllowed:
		return "ALLOWED"
	default:
		return "INVALID"
	}
}

// Navigation targets used by guard redirects.
const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Input carries everything a guard decision depends on. There is no
// persisted state machine; every render recomputes the decision from
// these inputs alone.
type Input struct {
	// SessionPending is true while the session lookup is in flight.
	SessionPending bool
	// UserID is the authenticated identity, or "" when anonymous.
	UserID string
	// Public marks the destination as reachable without a session.
	Public bool
	// Required is the destination's declared permission requirement.
	Required []string
	// PermissionsPending is true while the permission fetch is in
	// flight for a guarded destination.
	PermissionsPending bool
	// Permissions is the resolved permission set, meaningful only
	// once PermissionsPending is false.
	Permissions []string
}

// Decision is the guard verdict. Redirect is empty when the navigation
// stays in place; RendersContent reports whether protected content may
// be shown.
type Decision struct {
	State    State
	Redirect string
}

// RendersContent is true only for a settled ALLOWED decision with no
// pending redirect. UNKNOWN and PENDING_PERMISSIONS deliberately render
// nothing so protected content never flashes before checks resolve.
func (d Decision) RendersContent() bool {
	return d.State == StateAllowed && d.Redirect == ""
}

// Evaluate computes the guard decision. It is a pure function of its
// input: idempotent, re-entrant, and shared by the page guard and the
// endpoint middleware so both contexts decide identically.
func Evaluate(in Input) Decision {
	if in.SessionPending {
		return Decision{State: StateUnknown}
	}

	if in.Public {
		// An authenticated identity has no business on the login
		// screen; bounce to the landing destination.
		if in.UserID != "" {
			return Decision{State: StateAllowed, Redirect: HomePath}
		}
		return Decision{State: StateAllowed}
	}

	if in.UserID == "" {
		return Decision{State: StateDeniedNoSession, Redirect: LoginPath}
	}

	if len(in.Required) > 0 {
		if in.PermissionsPending {
			return Decision{State: StatePendingPermissions}
		}
		if !HasAllPermissions(in.Permissions, in.Required) {
			return Decision{State: StateDeniedForbidden, Redirect: HomePath}
		}
	}

	return Decision{State: StateAllowed}
}
