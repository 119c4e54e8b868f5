package get_staff_appointments

import (
	"context"

	"github.com/m04kA/SFD-SchedulingService/internal/domain"
	"github.com/m04kA/SFD-SchedulingService/internal/service/appointments/models"
)

type AppointmentsService interface {
	ListByStaff(ctx context.Context, req *models.ListStaffAppointmentsRequest, session *domain.Session) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
