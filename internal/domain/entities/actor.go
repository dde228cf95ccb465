package entities

import "strings"

// Role is an actor privilege level. Roles form the strict total order
// VIEWER < MEMBER < ADMIN < OWNER.
type Role string

const (
	RoleViewer Role = "VIEWER"
	RoleMember Role = "MEMBER"
	RoleAdmin  Role = "ADMIN"
	RoleOwner  Role = "OWNER"
)

var roleRank = map[Role]int{
	RoleViewer: 1,
	RoleMember: 2,
	RoleAdmin:  3,
	RoleOwner:  4,
}

func (r Role) String() string { return string(r) }

// Rank returns the position of r in the hierarchy; unknown roles rank 0.
func (r Role) Rank() int { return roleRank[r] }

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool { return r.Rank() > 0 }

// AtLeast reports whether r meets min in the hierarchy.
func (r Role) AtLeast(min Role) bool { return r.Valid() && r.Rank() >= min.Rank() }

// ParseRole normalizes a role name.
func ParseRole(s string) Role { return Role(strings.ToUpper(strings.TrimSpace(s))) }

// Permission is a capability granted independently of role.
type Permission string

const (
	PermissionTeamEdit     Permission = "TEAM_EDIT"
	PermissionServicesEdit Permission = "SERVICES_EDIT"
	PermissionBillingEdit  Permission = "BILLING_EDIT"
)

// Actor is the identity context of a command, supplied by the caller.
type Actor struct {
	ID          string
	BusinessID  string
	Role        Role
	Permissions []Permission
}

// Has reports whether the actor holds p.
func (a Actor) Has(p Permission) bool {
	for _, held := range a.Permissions {
		if held == p {
			return true
		}
	}
	return false
}

// SystemActor returns an OWNER actor used by scheduled jobs and operator tooling.
func SystemActor(businessID string) Actor {
	return Actor{ID: "system", BusinessID: businessID, Role: RoleOwner}
}
