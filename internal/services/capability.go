package services

import "github.com/clockwise-dev/clockwise/internal/types"

// Capability checks for privileged operations. Every mutating assignment
// operation and the stats/user-list reads go through RequireAdmin; reads
// that return a user's own data go through RequireSelfOrAdmin.

func RequireAdmin(caller types.AuthenticatedUser) error {
	if !caller.IsAdmin {
		return &PermissionDeniedError{Message: "Admin privileges are required for this operation"}
	}

	return nil
}

func RequireSelfOrAdmin(caller types.AuthenticatedUser, targetUserID uint) error {
	if caller.IsAdmin || caller.ID == targetUserID {
		return nil
	}

	return &PermissionDeniedError{Message: "You can only access your own data"}
}
