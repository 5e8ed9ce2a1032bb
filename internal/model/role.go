package model

import "fmt"

type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	// RoleNone means the user has no access to the workspace.
	RoleNone Role = ""
)

// ParseRole validates a role string read from storage or a request.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleAdmin, RoleMember:
		return Role(s), nil
	default:
		return RoleNone, fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) HasAccess() bool {
	return r != RoleNone
}

func (r Role) CanManageMembers() bool {
	return r == RoleOwner || r == RoleAdmin
}

func (r Role) CanEditWorkspace() bool {
	return r == RoleOwner || r == RoleAdmin
}

func (r Role) CanViewHistory() bool {
	return r == RoleOwner || r == RoleAdmin
}
