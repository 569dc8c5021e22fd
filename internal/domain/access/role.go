package access

// Role is the closed set of caller roles, resolved once per request
// from the admin and technician flags on the caller's profile.
type Role int

const (
	RoleAnonymous Role = iota
	RoleCustomer
	RoleTechnician
	RoleAdministrator
	RoleAdminTechnician
)

// String returns the role's wire name
func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer"
	case RoleTechnician:
		return "technician"
	case RoleAdministrator:
		return "administrator"
	case RoleAdminTechnician:
		return "administrator-technician"
	default:
		return "anonymous"
	}
}

// ResolveRole computes the caller's role from the two stored flags.
// Holding both flags is the admin-technician role; it is derived here,
// never stored.
func ResolveRole(authenticated, isAdmin, isTechnician bool) Role {
	switch {
	case !authenticated:
		return RoleAnonymous
	case isAdmin && isTechnician:
		return RoleAdminTechnician
	case isAdmin:
		return RoleAdministrator
	case isTechnician:
		return RoleTechnician
	default:
		return RoleCustomer
	}
}

// IsAuthenticated reports whether the role belongs to a resolved identity
func (r Role) IsAuthenticated() bool {
	return r != RoleAnonymous
}

// IsAdmin reports whether the role carries the administrator flag
func (r Role) IsAdmin() bool {
	return r == RoleAdministrator || r == RoleAdminTechnician
}

// IsTechnician reports whether the role carries the technician flag
func (r Role) IsTechnician() bool {
	return r == RoleTechnician || r == RoleAdminTechnician
}

// CanActOnBehalfOfCustomers reports whether the role may submit work
// on another customer's behalf. Only admin-technicians may.
func (r Role) CanActOnBehalfOfCustomers() bool {
	return r == RoleAdminTechnician
}
