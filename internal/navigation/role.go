package navigation

import "carrental/internal/model"

// EffectiveRole is the single normalization point for the two role shapes a
// user record can carry: the scalar role field wins; otherwise the first
// entry of the roles list is used and any additional roles are ignored for
// navigation purposes.
func EffectiveRole(user *model.User) string {
	if user == nil {
		return ""
	}
	if user.Role != "" {
		return user.Role
	}
	if len(user.Roles) > 0 {
		return user.Roles[0].Name
	}
	return ""
}
