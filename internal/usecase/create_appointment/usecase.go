package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SFD-SchedulingService/internal/domain"
	staffClient "github.com/m04kA/SFD-SchedulingService/internal/integrations/staffservice"
	"github.com/m04kA/SFD-SchedulingService/internal/schedule"
)

// UseCase use case для создания записи клиента
type UseCase struct {
	apptRepo    AppointmentRepository
	staffClient StaffServiceClient
	txManager   TransactionManager
	guard       MutationGuard
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	staffClient StaffServiceClient,
	txManager TransactionManager,
	guard MutationGuard,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:    apptRepo,
		staffClient: staffClient,
		txManager:   txManager,
		guard:       guard,
		logger:      logger,
	}
}

// Execute выполняет use case создания записи
// Проверка доступности и вставка выполняются в сериализуемой транзакции,
// повторная отправка той же формы отсекается guard-ом по сотруднику
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateAppointment: staff=%d, client=%d, service=%d, date=%s, slot=%s - %s",
		req.StaffID, req.ClientID, req.ServiceID,
		req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 2. Проверяем права вызывающего
	if !req.Session.CanManageStaff(req.StaffID) {
		uc.logger.Warn("CreateAppointment: access denied for staff=%d to staff=%d",
			req.Session.StaffID, req.StaffID)
		return nil, ErrAccessDenied
	}

	// 3. Защита от одновременных операций по этому сотруднику
	// (двойной клик по кнопке создания)
	if !uc.guard.Acquire(req.StaffID) {
		uc.logger.Warn("CreateAppointment: concurrent operation in progress for staff=%d", req.StaffID)
		return nil, ErrBusy
	}
	defer uc.guard.Release(req.StaffID)

	// 4. Получаем сотрудника
	staff, err := uc.staffClient.GetStaff(ctx, req.Session.Token, req.StaffID)
	if err != nil {
		return nil, uc.mapStaffClientError("GetStaff", req.StaffID, err)
	}

	// 5. Получаем услугу и проверяем, что сотрудник её оказывает
	service, err := uc.staffClient.GetService(ctx, req.Session.Token, req.ServiceID)
	if err != nil {
		return nil, uc.mapStaffClientError("GetService", req.ServiceID, err)
	}

	if !staff.ProvidesService(req.ServiceID) {
		uc.logger.Warn("CreateAppointment: staff=%d does not provide service=%d", req.StaffID, req.ServiceID)
		return nil, ErrServiceNotProvided
	}

	// 6. Сверяем длительность слота с длительностью услуги
	slotMinutes := req.EndTime.Minutes() - req.StartTime.Minutes()
	if service.DurationMinutes > 0 && slotMinutes != service.DurationMinutes && !req.ConfirmDurationMismatch {
		uc.logger.Warn("CreateAppointment: slot duration %dm does not match service duration %dm",
			slotMinutes, service.DurationMinutes)
		return nil, ErrDurationMismatch
	}

	// 7. Разбираем рабочие часы сотрудника на неделю записи
	weekSchedule, err := uc.staffClient.GetSchedule(ctx, req.Session.Token, req.StaffID)
	if err != nil {
		return nil, uc.mapStaffClientError("GetSchedule", req.StaffID, err)
	}

	week, err := schedule.ParseWeek(weekSchedule, req.Date)
	if err != nil {
		uc.logger.Warn("CreateAppointment: unreadable schedule for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: %v", ErrScheduleUnreadable, err)
	}

	candidate := req.Interval()
	workingIntervals := week.Days[req.Date.Weekday()]

	var result *domain.Appointment

	// 8. Проверка доступности и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Активные записи на дату с блокировкой (FOR UPDATE)
		filter := domain.StaffAppointmentsFilter{
			StaffID:   req.StaffID,
			StartDate: &req.Date,
			EndDate:   &req.Date,
		}

		appts, err := uc.apptRepo.GetByStaffWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 8.2. Проверяем доступность слота
		check := schedule.CheckSlot(candidate, workingIntervals, appts)
		if !check.OK {
			switch check.Reason {
			case schedule.ReasonOutsideHours:
				uc.logger.Warn("CreateAppointment: slot outside working hours for staff=%d", req.StaffID)
				return ErrOutsideWorkingHours
			case schedule.ReasonOverlap:
				uc.logger.Warn("CreateAppointment: slot conflicts with appointment id=%d", check.ConflictID)
				return fmt.Errorf("%w: appointment id=%d", ErrSlotConflict, check.ConflictID)
			}
		}

		// 8.3. Создаем запись с денормализацией данных услуги
		appt := &domain.Appointment{
			StaffID:        req.StaffID,
			ClientID:       req.ClientID,
			ClientName:     req.ClientName,
			ServiceID:      req.ServiceID,
			ServiceType:    service.Name,
			ServiceCharges: service.Charges,
			StartAt:        candidate.Start,
			EndAt:          candidate.End,
			Description:    req.Description,
			Status:         domain.StatusBooked,
		}

		created, err := uc.apptRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)
	return fromDomain(result), nil
}

// mapStaffClientError конвертирует ошибки StaffService в ошибки usecase
func (uc *UseCase) mapStaffClientError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, staffClient.ErrStaffNotFound):
		uc.logger.Warn("CreateAppointment: %s - staff id=%d not found", op, id)
		return ErrStaffNotFound

	case errors.Is(err, staffClient.ErrServiceNotFound):
		uc.logger.Warn("CreateAppointment: %s - service id=%d not found", op, id)
		return ErrServiceNotFound

	case errors.Is(err, staffClient.ErrSessionExpired):
		uc.logger.Warn("CreateAppointment: %s - session expired", op)
		return ErrSessionExpired

	case errors.Is(err, staffClient.ErrForbidden):
		uc.logger.Warn("CreateAppointment: %s - forbidden by staff service", op)
		return ErrAccessDenied

	case errors.Is(err, staffClient.ErrServiceUnavailable):
		uc.logger.Error("CreateAppointment: %s - staff service unavailable: %v", op, err)
		return fmt.Errorf("%w: %v", ErrStaffServiceUnavailable, err)

	default:
		uc.logger.Error("CreateAppointment: %s failed for id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
	}
}
