package staffservice

import "github.com/m04kA/SFD-SchedulingService/internal/domain"

// StaffMember модель сотрудника из StaffService
type StaffMember struct {
	ID           int64               `json:"id"`
	Name         string              `json:"name"`
	Role         string              `json:"role"` // provider | frontdesk | admin
	WorkingHours domain.WeekSchedule `json:"workingHours"`
	ServiceIDs   []int64             `json:"services"`
	Permissions  []string            `json:"permissions"`
}

// ToDomain конвертирует модель клиента в domain модель
func (s *StaffMember) ToDomain() *domain.StaffMember {
	return &domain.StaffMember{
		ID:           s.ID,
		Name:         s.Name,
		Role:         domain.StaffRole(s.Role),
		WorkingHours: s.WorkingHours,
		ServiceIDs:   s.ServiceIDs,
		Permissions:  s.Permissions,
	}
}

// Schedule модель расписания из StaffService
// Диапазоны всегда в проводном формате "h:mm A - h:mm A"
type Schedule struct {
	StaffID      int64               `json:"staffId"`
	WorkingHours domain.WeekSchedule `json:"workingHours"`
}

// Service модель услуги из StaffService
type Service struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Charges         float64 `json:"charges"`
}

// ToDomain конвертирует модель клиента в domain модель
func (s *Service) ToDomain() *domain.SalonService {
	return &domain.SalonService{
		ID:              s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Charges:         s.Charges,
	}
}

// ErrorResponse модель ошибки от StaffService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
