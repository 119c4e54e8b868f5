package delete_appointment

import (
	"context"

	"github.com/m04kA/SFD-SchedulingService/internal/domain"
)

type AppointmentsService interface {
	Delete(ctx context.Context, id int64, session *domain.Session) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
