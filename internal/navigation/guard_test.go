package navigation

import (
	"testing"

	"carrental/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestAuthorizeProtectedRoute(t *testing.T) {
	route := Route{Path: "/cars/list-cars"}

	denied := Authorize(route, Session{})
	assert.False(t, denied.Allowed)
	assert.Equal(t, LoginPath, denied.RedirectTo)

	allowed := Authorize(route, Session{Token: "x"})
	assert.True(t, allowed.Allowed)
	assert.Empty(t, allowed.RedirectTo)
}

func TestAuthorizePublicRoute(t *testing.T) {
	route := Route{Path: "/auth/login", Public: true}

	allowed := Authorize(route, Session{})
	assert.True(t, allowed.Allowed)

	// An authenticated super-admin bounces to the dashboard.
	admin := Session{Token: "x", User: &model.User{Role: model.RoleSuperAdmin}}
	assert.Equal(t, "/dashboard/sales", Authorize(route, admin).RedirectTo)

	// Everyone else lands on the car list.
	clerk := Session{Token: "x", User: &model.User{Role: "staff"}}
	assert.Equal(t, "/cars/list-cars", Authorize(route, clerk).RedirectTo)

	// A token with no loaded user still redirects somewhere sensible.
	bare := Session{Token: "x"}
	assert.Equal(t, "/cars/list-cars", Authorize(route, bare).RedirectTo)
}

// Direct navigation must be blocked at the authorize layer even though the
// menu already hides the entry.
func TestAuthorizeDeniesDirectNavigationWhenUnauthenticated(t *testing.T) {
	decision := Authorize(Route{Path: "/users/add-user"}, Session{})
	assert.False(t, decision.Allowed)
	assert.Equal(t, LoginPath, decision.RedirectTo)
}

func TestGuardLifecycle(t *testing.T) {
	g := NewGuard(Route{Path: "/cars/list-cars"})
	assert.Equal(t, GuardPending, g.State())

	session := Session{Token: "x", User: &model.User{Role: "staff"}}
	decision := g.Resolve(session)
	assert.Equal(t, GuardChecked, g.State())
	assert.True(t, decision.Allowed)
	assert.Equal(t, decision, g.Decision())

	// Same session: stays checked.
	g.SessionChanged(session)
	assert.Equal(t, GuardChecked, g.State())

	// Session change (logout in another tab) starts a new cycle.
	g.SessionChanged(Session{})
	assert.Equal(t, GuardPending, g.State())

	decision = g.Resolve(Session{})
	assert.Equal(t, GuardChecked, g.State())
	assert.False(t, decision.Allowed)
	assert.Equal(t, LoginPath, decision.RedirectTo)
}
