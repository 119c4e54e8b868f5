package appointments

import (
	"context"
	"time"

	"github.com/m04kA/SFD-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByStaffWithFilter(ctx context.Context, filter domain.StaffAppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
	Delete(ctx context.Context, id int64) error
}

// TimeProvider отдаёт текущее время. Нужен для вычисления
// производного статуса "ongoing" и для тестов.
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider использует системные часы
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// MutationGuard защита от одновременных мутаций одной записи.
// Ключ - ID записи, как в use cases изменения записи.
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
