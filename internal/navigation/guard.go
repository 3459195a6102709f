package navigation

import "carrental/internal/model"

// Session is the per-request authentication state: current user plus bearer
// token. Built by the auth middleware from a verified token; zero value means
// unauthenticated.
type Session struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Route describes a navigable path for authorization purposes. Public routes
// are the login/register surface; everything else sits behind the
// authenticated shell.
type Route struct {
	Path   string
	Public bool
}

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed    bool   `json:"allowed"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

// LoginPath is where unauthenticated clients are sent.
const LoginPath = "/auth/login"

// LandingPath is the post-login home for a user: the dashboard for
// super-admins, the car list for everyone else.
func LandingPath(user *model.User) string {
	if EffectiveRole(user) == model.RoleSuperAdmin {
		return "/dashboard/sales"
	}
	return "/cars/list-cars"
}

// Authorize decides whether the session may visit the route, and where to
// redirect otherwise. Protected routes require a token; public routes require
// its absence. Re-evaluated on every call, never cached: session state can
// change between navigations.
func Authorize(route Route, session Session) Decision {
	if route.Public {
		if session.Authenticated() {
			return Decision{RedirectTo: LandingPath(session.User)}
		}
		return Decision{Allowed: true}
	}
	if !session.Authenticated() {
		return Decision{RedirectTo: LoginPath}
	}
	return Decision{Allowed: true}
}

// GuardState tracks a route guard's lifecycle.
type GuardState int

const (
	// GuardPending means the session has not been determined yet, e.g.
	// persisted-state rehydration is still in flight.
	GuardPending GuardState = iota
	// GuardChecked means an authorization decision has been computed and applied.
	GuardChecked
)

// Guard is a per-route authorization checkpoint. It starts Pending, moves to
// Checked when resolved, and begins a new Pending cycle whenever the session
// it was resolved against changes.
type Guard struct {
	route    Route
	state    GuardState
	session  Session
	decision Decision
}

// NewGuard returns a Pending guard for the route.
func NewGuard(route Route) *Guard {
	return &Guard{route: route, state: GuardPending}
}

// State returns the guard's current lifecycle state.
func (g *Guard) State() GuardState {
	return g.state
}

// Resolve computes and applies the authorization decision for the session,
// moving the guard to Checked.
func (g *Guard) Resolve(session Session) Decision {
	g.session = session
	g.decision = Authorize(g.route, session)
	g.state = GuardChecked
	return g.decision
}

// SessionChanged resets a Checked guard back to Pending when the session
// reference differs from the one it was resolved against.
func (g *Guard) SessionChanged(session Session) {
	if g.state == GuardChecked && (session.Token != g.session.Token || session.User != g.session.User) {
		g.state = GuardPending
	}
}

// Decision returns the last computed decision. Valid only once Checked.
func (g *Guard) Decision() Decision {
	return g.decision
}
