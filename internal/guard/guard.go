package guard

import "github.com/medchain/portal/internal/domain"

// Portal routes the guard redirects to.
const (
	LoginRoute      = "/login"
	LandingRoute    = "/dashboard"
	OnboardingRoute = "/complete-profile"
)

// Action is the guard's verdict for a navigation.
type Action int

const (
	// ActionAllow renders the route inside the authenticated shell.
	ActionAllow Action = iota
	// ActionLoading renders a placeholder while verification is in flight.
	ActionLoading
	// ActionRedirect sends the client to Decision.Target.
	ActionRedirect
)

// Decision pairs an action with its redirect target.
type Decision struct {
	Action Action
	Target string
}

// Decide is a pure function of the session and the route's requirement. It is
// re-evaluated on every navigation and holds no state.
//
// An under-privileged but authenticated user lands on the default dashboard,
// never back on login. While the session is Loading the user identity may be
// stale or nil, so no role check is attempted.
func Decide(sess domain.Session, req domain.RouteRequirement) Decision {
	if sess.Status == domain.StatusLoading {
		return Decision{Action: ActionLoading}
	}
	if sess.User == nil {
		return Decision{Action: ActionRedirect, Target: LoginRoute}
	}
	if req.RequiredRole != "" && sess.User.Role != req.RequiredRole {
		return Decision{Action: ActionRedirect, Target: LandingRoute}
	}
	return Decision{Action: ActionAllow}
}
