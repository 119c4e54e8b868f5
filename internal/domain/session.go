package domain

// Session is the authenticated caller's context, built from a verified
// bearer token at the HTTP boundary. It is created per request and
// never stored: invalidation happens by token expiry or logout on the
// session collaborator's side.
type Session struct {
	StaffID     int64
	Name        string
	Role        StaffRole
	Permissions []string

	// Token is the raw bearer token, forwarded to downstream
	// collaborators (StaffService) on the caller's behalf.
	Token string
}

// CanViewStaff reports whether the caller may read another staff
// member's calendar and appointments
func (s *Session) CanViewStaff(staffID int64) bool {
	switch s.Role {
	case RoleAdmin:
		return true
	case RoleFrontdesk:
		return s.hasPermission(PermViewAppointments) || s.hasPermission(PermManageAppointments)
	case RoleProvider:
		return s.StaffID == staffID
	default:
		return false
	}
}

// CanManageStaff reports whether the caller may create, update or
// delete appointments for the given staff member
func (s *Session) CanManageStaff(staffID int64) bool {
	switch s.Role {
	case RoleAdmin:
		return true
	case RoleFrontdesk:
		return s.hasPermission(PermManageAppointments)
	case RoleProvider:
		return s.StaffID == staffID
	default:
		return false
	}
}

func (s *Session) hasPermission(perm string) bool {
	for _, p := range s.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}
