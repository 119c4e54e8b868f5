package check_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SFD-SchedulingService/internal/domain"
	staffClient "github.com/m04kA/SFD-SchedulingService/internal/integrations/staffservice"
	"github.com/m04kA/SFD-SchedulingService/internal/schedule"
)

// UseCase use case предварительной проверки доступности слота.
// Используется формой выбора времени до отправки записи; окончательная
// проверка всё равно выполняется при создании в сериализуемой транзакции.
type UseCase struct {
	apptRepo    AppointmentRepository
	staffClient StaffServiceClient
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	staffClient StaffServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:    apptRepo,
		staffClient: staffClient,
		logger:      logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckSlot: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CheckSlot: staff=%d, date=%s, slot=%s - %s",
		req.StaffID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 2. Проверяем права на просмотр календаря сотрудника
	if !req.Session.CanViewStaff(req.StaffID) {
		uc.logger.Warn("CheckSlot: access denied for staff=%d to staff=%d",
			req.Session.StaffID, req.StaffID)
		return nil, ErrAccessDenied
	}

	// 3. Получаем и разбираем рабочие часы
	weekSchedule, err := uc.staffClient.GetSchedule(ctx, req.Session.Token, req.StaffID)
	if err != nil {
		return nil, uc.mapStaffClientError(req.StaffID, err)
	}

	week, err := schedule.ParseWeek(weekSchedule, req.Date)
	if err != nil {
		uc.logger.Warn("CheckSlot: unreadable schedule for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: %v", ErrScheduleUnreadable, err)
	}

	// 4. Активные записи на дату
	filter := domain.StaffAppointmentsFilter{
		StaffID:   req.StaffID,
		StartDate: &req.Date,
		EndDate:   &req.Date,
	}

	appts, err := uc.apptRepo.GetByStaffWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("CheckSlot: repository error for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 5. Проверяем доступность
	candidate := req.Interval()
	workingIntervals := week.Days[req.Date.Weekday()]

	var check schedule.Result
	if req.ExcludeAppointmentID > 0 {
		check = schedule.CheckSlotExcluding(candidate, workingIntervals, appts, req.ExcludeAppointmentID)
	} else {
		check = schedule.CheckSlot(candidate, workingIntervals, appts)
	}

	if !check.OK {
		uc.logger.Info("CheckSlot: slot unavailable for staff=%d, reason=%s", req.StaffID, check.Reason)
	}

	return &Response{
		Available:  check.OK,
		Reason:     string(check.Reason),
		ConflictID: check.ConflictID,
	}, nil
}

func validateRequest(req *Request) error {
	if req.Session == nil {
		return fmt.Errorf("%w: session is required", ErrInvalidInput)
	}
	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}
	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}
	return nil
}

// mapStaffClientError конвертирует ошибки StaffService в ошибки usecase
func (uc *UseCase) mapStaffClientError(staffID int64, err error) error {
	switch {
	case errors.Is(err, staffClient.ErrStaffNotFound):
		uc.logger.Warn("CheckSlot: staff id=%d not found", staffID)
		return ErrStaffNotFound

	case errors.Is(err, staffClient.ErrSessionExpired):
		uc.logger.Warn("CheckSlot: session expired")
		return ErrSessionExpired

	case errors.Is(err, staffClient.ErrForbidden):
		uc.logger.Warn("CheckSlot: forbidden by staff service")
		return ErrAccessDenied

	case errors.Is(err, staffClient.ErrServiceUnavailable):
		uc.logger.Error("CheckSlot: staff service unavailable: %v", err)
		return fmt.Errorf("%w: %v", ErrStaffServiceUnavailable, err)

	default:
		uc.logger.Error("CheckSlot: failed to get schedule for staff=%d: %v", staffID, err)
		return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}
}
