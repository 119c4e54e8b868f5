package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SFD-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SFD-SchedulingService/internal/api/middleware"
	createAppointment "github.com/m04kA/SFD-SchedulingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateOrSlot    = "некорректная дата или диапазон времени, ожидается YYYY-MM-DD и \"h:mm AM - h:mm PM\""
	msgStaffNotFound        = "сотрудник не найден"
	msgServiceNotFound      = "услуга не найдена"
	msgServiceNotProvided   = "сотрудник не оказывает эту услугу"
	msgAccessDenied         = "недостаточно прав для создания записи"
	msgSessionExpired       = "сессия истекла, войдите заново"
	msgScheduleUnreadable   = "расписание сотрудника содержит нечитаемую строку"
	msgOutsideWorkingHours  = "слот выходит за рамки рабочих часов"
	msgSlotConflict         = "слот пересекается с существующей записью"
	msgDurationMismatch     = "длительность слота не совпадает с длительностью услуги"
	msgBusy                 = "по этому сотруднику уже выполняется другая операция"
	msgStaffServiceDown     = "сервис сотрудников временно недоступен"
	msgInvalidInput         = "некорректные данные записи"

	codeOutsideHours     = "OUTSIDE_HOURS"
	codeOverlap          = "OVERLAP"
	codeDurationMismatch = "DURATION_MISMATCH"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /staff/appointments/add
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff/appointments/add - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и слота)
	useCaseReq, err := req.ToUseCaseRequest(session)
	if err != nil {
		h.logger.Warn("POST /staff/appointments/add - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrSlot)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createAppointment.ErrStaffNotFound):
			h.logger.Warn("POST /staff/appointments/add - Staff not found: staff_id=%d", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /staff/appointments/add - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotProvided):
			h.logger.Warn("POST /staff/appointments/add - Service not provided: staff_id=%d, service_id=%d",
				req.StaffID, req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceNotProvided)

		case errors.Is(err, createAppointment.ErrSessionExpired):
			h.logger.Warn("POST /staff/appointments/add - Session expired: staff_id=%d", session.StaffID)
			handlers.RespondUnauthorized(w, msgSessionExpired)

		case errors.Is(err, createAppointment.ErrAccessDenied):
			h.logger.Warn("POST /staff/appointments/add - Access denied: staff_id=%d", session.StaffID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, createAppointment.ErrScheduleUnreadable):
			h.logger.Warn("POST /staff/appointments/add - Unreadable schedule: staff_id=%d", req.StaffID)
			handlers.RespondUnprocessable(w, msgScheduleUnreadable)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /staff/appointments/add - Outside working hours: staff_id=%d", req.StaffID)
			handlers.RespondErrorCode(w, http.StatusUnprocessableEntity, codeOutsideHours, msgOutsideWorkingHours)

		case errors.Is(err, createAppointment.ErrSlotConflict):
			h.logger.Warn("POST /staff/appointments/add - Slot conflict: staff_id=%d", req.StaffID)
			handlers.RespondErrorCode(w, http.StatusConflict, codeOverlap, msgSlotConflict)

		case errors.Is(err, createAppointment.ErrDurationMismatch):
			h.logger.Warn("POST /staff/appointments/add - Duration mismatch: staff_id=%d, service_id=%d",
				req.StaffID, req.ServiceID)
			handlers.RespondErrorCode(w, http.StatusConflict, codeDurationMismatch, msgDurationMismatch)

		case errors.Is(err, createAppointment.ErrBusy):
			h.logger.Warn("POST /staff/appointments/add - Concurrent operation: staff_id=%d", req.StaffID)
			handlers.RespondConflict(w, msgBusy)

		case errors.Is(err, createAppointment.ErrStaffServiceUnavailable):
			h.logger.Error("POST /staff/appointments/add - Staff service unavailable: %v", err)
			handlers.RespondBadGateway(w, msgStaffServiceDown)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /staff/appointments/add - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /staff/appointments/add - Failed to create appointment: staff_id=%d, error=%v",
				req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /staff/appointments/add - Appointment created successfully: appointment_id=%d, staff_id=%d",
		result.ID, req.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
