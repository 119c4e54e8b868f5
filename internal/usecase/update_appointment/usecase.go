package update_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SFD-SchedulingService/internal/domain"
	apptRepo "github.com/m04kA/SFD-SchedulingService/internal/infra/storage/appointment"
	staffClient "github.com/m04kA/SFD-SchedulingService/internal/integrations/staffservice"
	"github.com/m04kA/SFD-SchedulingService/internal/schedule"
)

// UseCase use case для переноса и редактирования записи
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

// Execute выполняет use case изменения записи
// Новый слот проверяется без учёта самой записи: запись не должна
// конфликтовать сама с собой при переносе внутри дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: id=%d, client=%d, service=%d, date=%s, slot=%s - %s",
		req.AppointmentID, req.ClientID, req.ServiceID,
		req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 2. Защита от одновременных операций над этой записью
	if !uc.guard.Acquire(req.AppointmentID) {
		uc.logger.Warn("UpdateAppointment: concurrent operation in progress for id=%d", req.AppointmentID)
		return nil, ErrBusy
	}
	defer uc.guard.Release(req.AppointmentID)

	// 3. Получаем текущее состояние записи
	existing, err := uc.apptRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("UpdateAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("UpdateAppointment: repository error for id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// 4. Проверяем права и возможность изменения
	if !req.Session.CanManageStaff(existing.StaffID) {
		uc.logger.Warn("UpdateAppointment: access denied for staff=%d to appointment id=%d",
			req.Session.StaffID, req.AppointmentID)
		return nil, ErrAccessDenied
	}

	if !existing.CanBeUpdated() {
		uc.logger.Warn("UpdateAppointment: appointment id=%d is not updatable, status=%s",
			req.AppointmentID, existing.Status)
		return nil, ErrNotUpdatable
	}

	// 5. Получаем сотрудника и услугу
	staff, err := uc.staffClient.GetStaff(ctx, req.Session.Token, existing.StaffID)
	if err != nil {
		return nil, uc.mapStaffClientError("GetStaff", existing.StaffID, err)
	}

	service, err := uc.staffClient.GetService(ctx, req.Session.Token, req.ServiceID)
	if err != nil {
		return nil, uc.mapStaffClientError("GetService", req.ServiceID, err)
	}

	if !staff.ProvidesService(req.ServiceID) {
		uc.logger.Warn("UpdateAppointment: staff=%d does not provide service=%d",
			existing.StaffID, req.ServiceID)
		return nil, ErrServiceNotProvided
	}

	// 6. Сверяем длительность слота с длительностью услуги
	slotMinutes := req.EndTime.Minutes() - req.StartTime.Minutes()
	if service.DurationMinutes > 0 && slotMinutes != service.DurationMinutes && !req.ConfirmDurationMismatch {
		uc.logger.Warn("UpdateAppointment: slot duration %dm does not match service duration %dm",
			slotMinutes, service.DurationMinutes)
		return nil, ErrDurationMismatch
	}

	// 7. Разбираем рабочие часы на неделю нового слота
	weekSchedule, err := uc.staffClient.GetSchedule(ctx, req.Session.Token, existing.StaffID)
	if err != nil {
		return nil, uc.mapStaffClientError("GetSchedule", existing.StaffID, err)
	}

	week, err := schedule.ParseWeek(weekSchedule, req.Date)
	if err != nil {
		uc.logger.Warn("UpdateAppointment: unreadable schedule for staff=%d: %v", existing.StaffID, err)
		return nil, fmt.Errorf("%w: %v", ErrScheduleUnreadable, err)
	}

	candidate := req.Interval()
	workingIntervals := week.Days[req.Date.Weekday()]

	var result *domain.Appointment

	// 8. Проверка доступности и обновление в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Активные записи на дату с блокировкой (FOR UPDATE)
		filter := domain.StaffAppointmentsFilter{
			StaffID:   existing.StaffID,
			StartDate: &req.Date,
			EndDate:   &req.Date,
		}

		appts, err := uc.apptRepo.GetByStaffWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("UpdateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 8.2. Проверяем доступность слота, исключая саму запись
		check := schedule.CheckSlotExcluding(candidate, workingIntervals, appts, req.AppointmentID)
		if !check.OK {
			switch check.Reason {
			case schedule.ReasonOutsideHours:
				uc.logger.Warn("UpdateAppointment: slot outside working hours for staff=%d", existing.StaffID)
				return ErrOutsideWorkingHours
			case schedule.ReasonOverlap:
				uc.logger.Warn("UpdateAppointment: slot conflicts with appointment id=%d", check.ConflictID)
				return fmt.Errorf("%w: appointment id=%d", ErrSlotConflict, check.ConflictID)
			}
		}

		// 8.3. Обновляем запись целиком
		updated := &domain.Appointment{
			StaffID:        existing.StaffID,
			ClientID:       req.ClientID,
			ClientName:     req.ClientName,
			ServiceID:      req.ServiceID,
			ServiceType:    service.Name,
			ServiceCharges: service.Charges,
			StartAt:        candidate.Start,
			EndAt:          candidate.End,
			Description:    req.Description,
			Status:         existing.Status,
		}

		saved, err := uc.apptRepo.Update(txCtx, req.AppointmentID, updated)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to update appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		result = saved
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: successfully updated appointment id=%d", result.ID)
	return fromDomain(result), nil
}

// mapStaffClientError конвертирует ошибки StaffService в ошибки usecase
func (uc *UseCase) mapStaffClientError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, staffClient.ErrStaffNotFound):
		uc.logger.Warn("UpdateAppointment: %s - staff id=%d not found", op, id)
		return ErrStaffNotFound

	case errors.Is(err, staffClient.ErrServiceNotFound):
		uc.logger.Warn("UpdateAppointment: %s - service id=%d not found", op, id)
		return ErrServiceNotFound

	case errors.Is(err, staffClient.ErrSessionExpired):
		uc.logger.Warn("UpdateAppointment: %s - session expired", op)
		return ErrSessionExpired

	case errors.Is(err, staffClient.ErrForbidden):
		uc.logger.Warn("UpdateAppointment: %s - forbidden by staff service", op)
		return ErrAccessDenied

	case errors.Is(err, staffClient.ErrServiceUnavailable):
		uc.logger.Error("UpdateAppointment: %s - staff service unavailable: %v", op, err)
		return fmt.Errorf("%w: %v", ErrStaffServiceUnavailable, err)

	default:
		uc.logger.Error("UpdateAppointment: %s failed for id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
	}
}
