// Package navigation derives role-gated navigation trees and route
// authorization decisions from the current session.
package navigation

import (
	"sync"

	"carrental/internal/model"
)

// MenuNode is one entry in the navigation tree.
// "item" nodes carry a URL and no children; "group"/"collapse" nodes carry
// children and no URL.
type MenuNode struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Type     string     `json:"type"` // "group" | "collapse" | "item"
	Icon     string     `json:"icon,omitempty"`
	IconName string     `json:"iconname,omitempty"`
	URL      string     `json:"url,omitempty"`
	Children []MenuNode `json:"children,omitempty"`
}

// GuestMenuMode selects what an unauthenticated client sees.
type GuestMenuMode string

const (
	// GuestMenuLogin shows a single Login entry.
	GuestMenuLogin GuestMenuMode = "login"
	// GuestMenuEmpty shows nothing at all.
	GuestMenuEmpty GuestMenuMode = "empty"
)

// DeriveMenu builds the navigation tree for a user. Pure function of the
// effective role; never includes car/user management entries for guests.
func DeriveMenu(user *model.User, mode GuestMenuMode) []MenuNode {
	if user == nil {
		return guestMenu(mode)
	}
	if EffectiveRole(user) == model.RoleSuperAdmin {
		return superAdminMenu()
	}
	return standardMenu()
}

func guestMenu(mode GuestMenuMode) []MenuNode {
	if mode == GuestMenuEmpty {
		return []MenuNode{}
	}
	return []MenuNode{
		{
			ID: "auth", Title: "Login", Type: "group", Icon: "material-icons-two-tone", IconName: "login",
			Children: []MenuNode{
				{ID: "login-item", Title: "Login", Type: "item", Icon: "material-icons-two-tone", IconName: "login", URL: "/auth/login"},
			},
		},
	}
}

// standardMenu is the tree for any authenticated role other than super-admin:
// a read-oriented Cars entry plus Logout.
func standardMenu() []MenuNode {
	return []MenuNode{
		{
			ID: "car", Title: "Cars", Type: "group", Icon: "icon-navigation",
			Children: []MenuNode{
				{ID: "cars", Title: "Cars", Type: "item", Icon: "material-icons-two-tone", IconName: "directions_car", URL: "/cars/list-cars"},
			},
		},
		logoutGroup(),
	}
}

// superAdminMenu is the full tree: Dashboard, Cars (Add+List), Users
// (Add+List), Logout. Order is fixed and significant.
func superAdminMenu() []MenuNode {
	return []MenuNode{
		{
			ID: "navigation", Title: "Navigation", Type: "group", Icon: "icon-navigation",
			Children: []MenuNode{
				{ID: "dashboard", Title: "Dashboard", Type: "item", Icon: "material-icons-two-tone", IconName: "home", URL: "/dashboard/sales"},
			},
		},
		{
			ID: "car", Title: "Cars", Type: "group", Icon: "icon-navigation",
			Children: []MenuNode{
				{
					ID: "cars", Title: "Cars", Type: "collapse", Icon: "material-icons-two-tone", IconName: "directions_car",
					Children: []MenuNode{
						{ID: "add-car", Title: "Add Car", Type: "item", URL: "/cars/add-cars"},
						{ID: "list-cars", Title: "List Cars", Type: "item", URL: "/cars/list-cars"},
					},
				},
			},
		},
		{
			ID: "users", Title: "Users", Type: "group", Icon: "icon-navigation",
			Children: []MenuNode{
				{
					ID: "users", Title: "Users", Type: "collapse", Icon: "material-icons-two-tone", IconName: "people",
					Children: []MenuNode{
						{ID: "add-user", Title: "Add User", Type: "item", URL: "/users/add-user"},
						{ID: "list-users", Title: "List Users", Type: "item", URL: "/users/list-users"},
					},
				},
			},
		},
		logoutGroup(),
	}
}

func logoutGroup() MenuNode {
	return MenuNode{
		ID: "logout", Title: "Logout", Type: "group", Icon: "material-icons-two-tone", IconName: "exit_to_app",
		Children: []MenuNode{
			{ID: "logout-item", Title: "Logout", Type: "item", Icon: "material-icons-two-tone", IconName: "exit_to_app", URL: "/auth/logout"},
		},
	}
}

type menuCacheKey struct {
	role string
	mode GuestMenuMode
}

// menuCache memoizes derived trees keyed on role identity, so unrelated
// session changes (token refresh) never trigger a rebuild.
var menuCache sync.Map // menuCacheKey -> []MenuNode

// Menu returns the memoized navigation tree for the user's effective role.
// Callers always get their own copy; mutating it cannot reach the cache.
func Menu(user *model.User, mode GuestMenuMode) []MenuNode {
	key := menuCacheKey{mode: mode}
	if user != nil {
		key.role = "user:" + EffectiveRole(user)
	}
	if cached, ok := menuCache.Load(key); ok {
		return cloneMenu(cached.([]MenuNode))
	}
	items := DeriveMenu(user, mode)
	menuCache.Store(key, items)
	return cloneMenu(items)
}

func cloneMenu(items []MenuNode) []MenuNode {
	if items == nil {
		return nil
	}
	out := make([]MenuNode, len(items))
	for i, n := range items {
		out[i] = n
		out[i].Children = cloneMenu(n.Children)
	}
	return out
}
