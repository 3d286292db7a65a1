package domain

// PermissionLevel derives the effective dashboard capability tier for a
// principal. Superusers and school owners are always admin; staff accounts
// carry their own tier; anything else has no access.
func PermissionLevel(u *UserProfile) AccessLevel {
	if u == nil {
		return AccessNone
	}
	if u.IsSuperuser {
		return AccessAdmin
	}
	switch u.Type {
	case RoleSchool:
		return AccessAdmin
	case RoleSchoolStaff:
		if u.Staff == nil {
			return AccessNone
		}
		switch u.Staff.PermissionLevel {
		case AccessRead, AccessEdit, AccessAdmin:
			return u.Staff.PermissionLevel
		}
		return AccessNone
	default:
		return AccessNone
	}
}

// HasDashboardAccess reports whether the principal may see the dashboard at
// all. Staff accounts qualify regardless of their permission level; the level
// only gates what they can do once inside.
func HasDashboardAccess(u *UserProfile) bool {
	if u == nil {
		return false
	}
	if u.IsSuperuser {
		return true
	}
	switch u.Type {
	case RoleSchool, RoleSchoolStaff:
		return true
	default:
		return false
	}
}

// CanEditDashboard reports whether the principal may mutate dashboard data.
// Invariant: true exactly when PermissionLevel is edit or admin.
func CanEditDashboard(u *UserProfile) bool {
	switch PermissionLevel(u) {
	case AccessEdit, AccessAdmin:
		return true
	default:
		return false
	}
}
