package navigation

import (
	"testing"

	"carrental/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func superAdmin() *model.User {
	return &model.User{Name: "Root", Role: model.RoleSuperAdmin}
}

func staff() *model.User {
	return &model.User{Name: "Clerk", Role: "staff"}
}

func groupIDs(items []MenuNode) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

// collectItemURLs walks the tree and gathers every item URL.
func collectItemURLs(items []MenuNode) []string {
	var urls []string
	for _, item := range items {
		if item.Type == "item" {
			urls = append(urls, item.URL)
		}
		urls = append(urls, collectItemURLs(item.Children)...)
	}
	return urls
}

func TestDeriveMenuSuperAdmin(t *testing.T) {
	items := DeriveMenu(superAdmin(), GuestMenuLogin)

	// Dashboard, Cars, Users, Logout, in that fixed order.
	assert.Equal(t, []string{"navigation", "car", "users", "logout"}, groupIDs(items))

	urls := collectItemURLs(items)
	assert.Equal(t, []string{
		"/dashboard/sales",
		"/cars/add-cars",
		"/cars/list-cars",
		"/users/add-user",
		"/users/list-users",
		"/auth/logout",
	}, urls)
}

func TestDeriveMenuStandardRole(t *testing.T) {
	items := DeriveMenu(staff(), GuestMenuLogin)

	assert.Equal(t, []string{"car", "logout"}, groupIDs(items))

	urls := collectItemURLs(items)
	assert.Contains(t, urls, "/cars/list-cars")
	assert.NotContains(t, urls, "/cars/add-cars")
	assert.NotContains(t, urls, "/users/add-user")
	assert.NotContains(t, urls, "/users/list-users")
	assert.NotContains(t, urls, "/dashboard/sales")
}

func TestDeriveMenuGuest(t *testing.T) {
	login := DeriveMenu(nil, GuestMenuLogin)
	require.Len(t, login, 1)
	assert.Equal(t, "auth", login[0].ID)
	assert.Equal(t, []string{"/auth/login"}, collectItemURLs(login))

	empty := DeriveMenu(nil, GuestMenuEmpty)
	assert.Empty(t, empty)
}

func TestDeriveMenuUnknownRoleGetsReadOnlyTree(t *testing.T) {
	items := DeriveMenu(&model.User{Role: "viewer"}, GuestMenuLogin)
	assert.Equal(t, []string{"car", "logout"}, groupIDs(items))
}

// Every node must be well-formed: items carry a URL and no children,
// groups/collapses carry children and no URL.
func TestMenuNodeInvariants(t *testing.T) {
	var check func(t *testing.T, nodes []MenuNode)
	check = func(t *testing.T, nodes []MenuNode) {
		seen := map[string]bool{}
		for _, n := range nodes {
			assert.False(t, seen[n.ID], "duplicate sibling id %q", n.ID)
			seen[n.ID] = true
			switch n.Type {
			case "item":
				assert.NotEmpty(t, n.URL, "item %q must carry a url", n.ID)
				assert.Empty(t, n.Children, "item %q must not have children", n.ID)
			case "group", "collapse":
				assert.Empty(t, n.URL, "%s %q must not carry a url", n.Type, n.ID)
				assert.NotEmpty(t, n.Children, "%s %q must have children", n.Type, n.ID)
			default:
				t.Errorf("unexpected node type %q", n.Type)
			}
			check(t, n.Children)
		}
	}

	for _, user := range []*model.User{nil, staff(), superAdmin()} {
		check(t, DeriveMenu(user, GuestMenuLogin))
	}
}

func TestMenuMemoizedByRole(t *testing.T) {
	a := Menu(superAdmin(), GuestMenuLogin)
	// A different user object with the same role hits the cache.
	b := Menu(&model.User{Name: "Other", Role: model.RoleSuperAdmin}, GuestMenuLogin)
	assert.Equal(t, a, b)

	// A role change yields a different tree.
	c := Menu(staff(), GuestMenuLogin)
	assert.NotEqual(t, groupIDs(a), groupIDs(c))
}

// Mutating a returned tree must never leak into what later callers get.
func TestMenuReturnsIsolatedCopies(t *testing.T) {
	a := Menu(superAdmin(), GuestMenuLogin)
	a[0].Title = "Mutated"
	a[0].Children[0].URL = "/nowhere"

	b := Menu(superAdmin(), GuestMenuLogin)
	assert.Equal(t, []string{"navigation", "car", "users", "logout"}, groupIDs(b))
	assert.Equal(t, "Navigation", b[0].Title)
	assert.Equal(t, "/dashboard/sales", b[0].Children[0].URL)
}

func TestEffectiveRole(t *testing.T) {
	assert.Equal(t, "", EffectiveRole(nil))
	assert.Equal(t, "staff", EffectiveRole(&model.User{Role: "staff"}))

	// Scalar role wins over the roles list.
	u := &model.User{Role: "staff", Roles: []model.Role{{Name: model.RoleSuperAdmin}}}
	assert.Equal(t, "staff", EffectiveRole(u))

	// Without a scalar role, the first roles entry is used and the rest ignored.
	u = &model.User{Roles: []model.Role{{Name: model.RoleSuperAdmin}, {Name: "staff"}}}
	assert.Equal(t, model.RoleSuperAdmin, EffectiveRole(u))

	assert.Equal(t, "", EffectiveRole(&model.User{}))
}

func TestDeriveMenuUsesRolesListFallback(t *testing.T) {
	u := &model.User{Roles: []model.Role{{Name: model.RoleSuperAdmin}}}
	items := DeriveMenu(u, GuestMenuLogin)
	assert.Equal(t, []string{"navigation", "car", "users", "logout"}, groupIDs(items))
}
