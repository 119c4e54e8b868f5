package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SFD-SchedulingService/internal/domain"
	apptRepo "github.com/m04kA/SFD-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SFD-SchedulingService/internal/service/appointments/models"
)

// Service сервис для работы с записями клиентов
type Service struct {
	apptRepo AppointmentRepository
	clock    TimeProvider
	guard    MutationGuard
	logger   Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	apptRepo AppointmentRepository,
	clock TimeProvider,
	guard MutationGuard,
	logger Logger,
) *Service {
	return &Service{
		apptRepo: apptRepo,
		clock:    clock,
		guard:    guard,
		logger:   logger,
	}
}

// GetByID получает запись по ID
// Мастер видит только свои записи, администратор - любые,
// ресепшен - при наличии права на просмотр
func (s *Service) GetByID(ctx context.Context, id int64, session *domain.Session) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for staff=%d", id, session.StaffID)

	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !session.CanViewStaff(appt.StaffID) {
		s.logger.Warn("GetByID: access denied for staff=%d to appointment id=%d", session.StaffID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appt, s.clock.Now()), nil
}

// ListByStaff получает записи сотрудника с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению неактивных записей
//
// Примеры использования:
// - Все активные записи: ListByStaff(ctx, &ListStaffAppointmentsRequest{StaffID: 7}, session)
// - Записи за период: указать StartDate и EndDate
// - Только завершённые: указать Status = "completed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) ListByStaff(ctx context.Context, req *models.ListStaffAppointmentsRequest, session *domain.Session) (*models.AppointmentListResponse, error) {
	logMsg := fmt.Sprintf("ListByStaff: fetching appointments for staff=%d, caller=%d", req.StaffID, session.StaffID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s",
			req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if !session.CanViewStaff(req.StaffID) {
		s.logger.Warn("ListByStaff: access denied for staff=%d to staff=%d appointments", session.StaffID, req.StaffID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByStaff: invalid filter for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appts, err := s.apptRepo.GetByStaffWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListByStaff: repository error for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: ListByStaff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByStaff: successfully fetched %d appointments for staff=%d", len(appts), req.StaffID)
	return models.FromDomainAppointmentList(appts, s.clock.Now()), nil
}

// UpdateStatus переводит запись в указанный статус
// Статус "cancelled" дополнительно сохраняет причину отмены
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest, session *domain.Session) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by staff=%d",
		id, req.Status, session.StaffID)

	// Защита от одновременных мутаций этой записи
	if !s.guard.Acquire(id) {
		s.logger.Warn("UpdateStatus: concurrent operation in progress for appointment id=%d", id)
		return ErrBusy
	}
	defer s.guard.Release(id)

	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if !session.CanManageStaff(appt.StaffID) {
		s.logger.Warn("UpdateStatus: access denied for staff=%d to appointment id=%d", session.StaffID, id)
		return ErrAccessDenied
	}

	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, id)
		return fmt.Errorf("%w: invalid status", ErrInvalidStatus)
	}

	// Отмена идёт через отдельный путь: нужна причина и отметка времени
	if newStatus == domain.StatusCancelled {
		if !appt.CanBeCancelled() {
			s.logger.Warn("UpdateStatus: appointment id=%d cannot be cancelled, status=%s", id, appt.Status)
			return ErrCannotCancel
		}

		var reason string
		if req.CancellationReason != nil {
			reason = *req.CancellationReason
		}
		if err := s.apptRepo.Cancel(ctx, id, reason); err != nil {
			s.logger.Error("UpdateStatus: cancel error for appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - cancel error: %v", ErrInternal, err)
		}

		s.logger.Info("UpdateStatus: successfully cancelled appointment id=%d", id)
		return nil
	}

	if err := s.apptRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found during update", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", id, newStatus)
	return nil
}

// Delete безвозвратно удаляет запись
// Подтверждение операции остаётся на этой стороне: handler отвечает
// только после успешного удаления из базы
func (s *Service) Delete(ctx context.Context, id int64, session *domain.Session) error {
	s.logger.Info("Delete: deleting appointment id=%d by staff=%d", id, session.StaffID)

	// Защита от одновременных мутаций этой записи
	if !s.guard.Acquire(id) {
		s.logger.Warn("Delete: concurrent operation in progress for appointment id=%d", id)
		return ErrBusy
	}
	defer s.guard.Release(id)

	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if !session.CanManageStaff(appt.StaffID) {
		s.logger.Warn("Delete: access denied for staff=%d to appointment id=%d", session.StaffID, id)
		return ErrAccessDenied
	}

	if err := s.apptRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%d not found during deletion", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted appointment id=%d", id)
	return nil
}
