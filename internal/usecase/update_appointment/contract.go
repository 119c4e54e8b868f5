package update_appointment

import (
	"context"

	"github.com/m04kA/SFD-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByStaffWithFilter(ctx context.Context, filter domain.StaffAppointmentsFilter) ([]*domain.Appointment, error)
	Update(ctx context.Context, id int64, appt *domain.Appointment) (*domain.Appointment, error)
}

// StaffServiceClient интерфейс клиента для StaffService
type StaffServiceClient interface {
	GetStaff(ctx context.Context, token string, staffID int64) (*domain.StaffMember, error)
	GetSchedule(ctx context.Context, token string, staffID int64) (domain.WeekSchedule, error)
	GetService(ctx context.Context, token string, serviceID int64) (*domain.SalonService, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MutationGuard защита от одновременных операций над одной записью
type MutationGuard interface {
	Acquire(key int64) bool
	Release(key int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
