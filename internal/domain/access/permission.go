package access

// PermissionRequirement expresses what an operation demands of the
// caller. It is a value object, never persisted.
type PermissionRequirement struct {
	RequireAuthenticated   bool
	RequireAdmin           bool
	RequireTechnician      bool
	RequireAdminTechnician bool
}

// Common requirements
var (
	// Public places no demands on the caller
	Public = PermissionRequirement{}

	// Authenticated requires any resolved identity
	Authenticated = PermissionRequirement{RequireAuthenticated: true}

	// AdminOnly requires the administrator flag
	AdminOnly = PermissionRequirement{RequireAuthenticated: true, RequireAdmin: true}

	// TechnicianOnly requires the technician flag
	TechnicianOnly = PermissionRequirement{RequireAuthenticated: true, RequireTechnician: true}

	// AdminTechnicianOnly requires both flags
	AdminTechnicianOnly = PermissionRequirement{RequireAuthenticated: true, RequireAdminTechnician: true}
)

// Decision is the structured outcome of a permission check. Denials
// carry a reason; they are returned, never raised, so callers can map
// them to a transport rejection.
type Decision struct {
	Allowed bool
	Reason  string
	Role    Role
}

// Check evaluates a requirement against a resolved role
func Check(req PermissionRequirement, role Role) Decision {
	demandsNothing := !req.RequireAuthenticated && !req.RequireAdmin &&
		!req.RequireTechnician && !req.RequireAdminTechnician
	if demandsNothing {
		return Decision{Allowed: true, Role: role}
	}

	if !role.IsAuthenticated() {
		return Decision{Allowed: false, Reason: "authentication required", Role: role}
	}

	if req.RequireAdminTechnician && role != RoleAdminTechnician {
		return Decision{Allowed: false, Reason: "admin-technician role required", Role: role}
	}

	if req.RequireAdmin && !role.IsAdmin() {
		return Decision{Allowed: false, Reason: "admin role required", Role: role}
	}

	if req.RequireTechnician && !role.IsTechnician() {
		return Decision{Allowed: false, Reason: "technician role required", Role: role}
	}

	return Decision{Allowed: true, Role: role}
}
