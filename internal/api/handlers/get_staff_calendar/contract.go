package get_staff_calendar

import (
	"context"

	getStaffCalendar "github.com/m04kA/SFD-SchedulingService/internal/usecase/get_staff_calendar"
)

type GetStaffCalendarUseCase interface {
	Execute(ctx context.Context, req *getStaffCalendar.Request) (*getStaffCalendar.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
