// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
//
// The set is closed. Roles are serialized to their string form only at the
// token and JSON boundaries; everywhere else the typed constant is used.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "Admin"

	// Can curate areas of interest and review volunteer applications
	RoleModerator UserRole = "Moderator"

	// Default role for standard registered users
	RoleUser UserRole = "User"

	// Unauthenticated or restricted access
	RoleGuest UserRole = "Guest"
)

// ParseRole maps a string to a [UserRole], falling back to [RoleGuest]
// for anything outside the closed set.
func ParseRole(s string) UserRole {
	switch UserRole(s) {
	case RoleAdmin, RoleModerator, RoleUser, RoleGuest:
		return UserRole(s)
	default:
		return RoleGuest
	}
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-40) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 40
	case RoleModerator:
		return 30
	case RoleUser:
		return 20
	case RoleGuest:
		return 10
	default:
		return 0
	}
}
