package domain

// StaffRole represents the role of a staff member
type StaffRole string

const (
	RoleProvider  StaffRole = "provider"
	RoleFrontdesk StaffRole = "frontdesk"
	RoleAdmin     StaffRole = "admin"
)

// Frontdesk permissions. Permissions are only meaningful for the
// frontdesk role; providers and admins ignore them.
const (
	PermManageAppointments = "manage_appointments"
	PermViewAppointments   = "view_appointments"
)

// StaffMember represents a salon staff member as served by StaffService
type StaffMember struct {
	ID           int64
	Name         string
	Role         StaffRole
	WorkingHours WeekSchedule
	ServiceIDs   []int64
	Permissions  []string
}

// ProvidesService returns true if the staff member performs the given service
func (s *StaffMember) ProvidesService(serviceID int64) bool {
	for _, id := range s.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// HasPermission returns true if a frontdesk member carries the permission.
// Admins always pass; providers never rely on permissions.
func (s *StaffMember) HasPermission(perm string) bool {
	if s.Role == RoleAdmin {
		return true
	}
	for _, p := range s.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// SalonService represents a bookable service with its expected duration
type SalonService struct {
	ID              int64
	Name            string
	DurationMinutes int
	Charges         float64
}
