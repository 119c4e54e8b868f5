package get_staff_calendar

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SFD-SchedulingService/internal/domain"
	staffClient "github.com/m04kA/SFD-SchedulingService/internal/integrations/staffservice"
	"github.com/m04kA/SFD-SchedulingService/internal/schedule"
	"github.com/m04kA/SFD-SchedulingService/pkg/ptr"
	"github.com/m04kA/SFD-SchedulingService/pkg/types"
)

// UseCase use case построения недельного календаря сотрудника:
// записи клиентов и нерабочие блоки в одном списке событий
type UseCase struct {
	apptRepo     AppointmentRepository
	staffClient  StaffServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	staffClient StaffServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		staffClient:  staffClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case построения календаря
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.Session == nil {
		return nil, fmt.Errorf("%w: session is required", ErrInvalidInput)
	}
	if req.StaffID <= 0 {
		return nil, fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	// 2. Проверяем права на просмотр
	if !req.Session.CanViewStaff(req.StaffID) {
		uc.logger.Warn("GetStaffCalendar: access denied for staff=%d to staff=%d",
			req.Session.StaffID, req.StaffID)
		return nil, ErrAccessDenied
	}

	// 3. Определяем отображаемую неделю
	anchor := uc.timeProvider.Now()
	if req.WeekStart != nil {
		anchor = *req.WeekStart
	}
	weekStart := schedule.WeekStartFor(anchor)
	weekEnd := weekStart.AddDate(0, 0, 6)

	uc.logger.Info("GetStaffCalendar: staff=%d, week=%s", req.StaffID, weekStart.Format(domain.DateFormat))

	// 4. Получаем и разбираем рабочие часы
	weekSchedule, err := uc.staffClient.GetSchedule(ctx, req.Session.Token, req.StaffID)
	if err != nil {
		return nil, uc.mapStaffClientError(req.StaffID, err)
	}

	week, parseErr := schedule.ParseWeek(weekSchedule, weekStart)

	var warning *string
	if parseErr != nil {
		// Нечитаемый день показывается как нерабочий, остальные дни
		// календаря строятся как обычно
		uc.logger.Warn("GetStaffCalendar: unreadable schedule for staff=%d: %v", req.StaffID, parseErr)
		warning = ptr.Ptr(parseErr.Error())
	}

	// 5. Записи недели
	filter := domain.StaffAppointmentsFilter{
		StaffID:   req.StaffID,
		StartDate: &weekStart,
		EndDate:   &weekEnd,
	}

	appts, err := uc.apptRepo.GetByStaffWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetStaffCalendar: repository error for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 6. Нерабочие блоки с едиными границами дня по всей неделе
	dayMin, dayMax := schedule.WeekBounds(week)
	now := uc.timeProvider.Now()

	days := make([]DayView, 7)
	for d := 0; d < 7; d++ {
		weekday := time.Weekday(d)
		dayDate := week.DayDate(weekday)
		working := week.Days[weekday]

		events := make([]Event, 0, 8)

		for _, block := range schedule.NonWorkingBlocks(dayDate, working, dayMin, dayMax) {
			events = append(events, Event{
				Type:      EventUnavailable,
				TimeRange: intervalRange(block),
				StartAt:   block.Start,
				EndAt:     block.End,
			})
		}

		for _, appt := range appts {
			if !sameDay(appt.StartAt, dayDate) {
				continue
			}
			events = append(events, Event{
				Type:          EventAppointment,
				TimeRange:     intervalRange(appt.Interval()),
				StartAt:       appt.StartAt,
				EndAt:         appt.EndAt,
				AppointmentID: appt.ID,
				ClientName:    appt.ClientName,
				ServiceType:   appt.ServiceType,
				Status:        string(appt.DisplayStatus(now)),
			})
		}

		sort.Slice(events, func(i, j int) bool {
			return events[i].StartAt.Before(events[j].StartAt)
		})

		workingRanges := make([]string, len(working))
		for i, interval := range working {
			workingRanges[i] = intervalRange(interval)
		}

		days[d] = DayView{
			Date:         dayDate.Format(domain.DateFormat),
			Weekday:      domain.WeekdayName(weekday),
			IsWorkingDay: len(working) > 0,
			WorkingHours: workingRanges,
			Events:       events,
		}
	}

	uc.logger.Info("GetStaffCalendar: built calendar for staff=%d with %d appointments", req.StaffID, len(appts))

	return &Response{
		StaffID:         req.StaffID,
		WeekStart:       weekStart.Format(domain.DateFormat),
		DayStart:        dayMin.String(),
		DayEnd:          dayMax.String(),
		Days:            days,
		ScheduleWarning: warning,
	}, nil
}

// mapStaffClientError конвертирует ошибки StaffService в ошибки usecase
func (uc *UseCase) mapStaffClientError(staffID int64, err error) error {
	switch {
	case errors.Is(err, staffClient.ErrStaffNotFound):
		uc.logger.Warn("GetStaffCalendar: staff id=%d not found", staffID)
		return ErrStaffNotFound

	case errors.Is(err, staffClient.ErrSessionExpired):
		uc.logger.Warn("GetStaffCalendar: session expired")
		return ErrSessionExpired

	case errors.Is(err, staffClient.ErrForbidden):
		uc.logger.Warn("GetStaffCalendar: forbidden by staff service")
		return ErrAccessDenied

	case errors.Is(err, staffClient.ErrServiceUnavailable):
		uc.logger.Error("GetStaffCalendar: staff service unavailable: %v", err)
		return fmt.Errorf("%w: %v", ErrStaffServiceUnavailable, err)

	default:
		uc.logger.Error("GetStaffCalendar: failed to get schedule for staff=%d: %v", staffID, err)
		return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}
}

func intervalRange(interval domain.TimeInterval) string {
	r := types.Range{
		Start: types.NewClockTime(interval.Start),
		End:   types.NewClockTime(interval.End),
	}
	return r.String()
}

func sameDay(t, day time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
