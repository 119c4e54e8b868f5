package update_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SFD-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SFD-SchedulingService/internal/api/middleware"
	updateAppointment "github.com/m04kA/SFD-SchedulingService/internal/usecase/update_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный идентификатор записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateOrSlot    = "некорректная дата или диапазон времени, ожидается YYYY-MM-DD и \"h:mm AM - h:mm PM\""
	msgAppointmentNotFound  = "запись не найдена"
	msgStaffNotFound        = "сотрудник не найден"
	msgServiceNotFound      = "услуга не найдена"
	msgServiceNotProvided   = "сотрудник не оказывает эту услугу"
	msgAccessDenied         = "недостаточно прав для изменения записи"
	msgSessionExpired       = "сессия истекла, войдите заново"
	msgNotUpdatable         = "отменённую или завершённую запись изменить нельзя"
	msgScheduleUnreadable   = "расписание сотрудника содержит нечитаемую строку"
	msgOutsideWorkingHours  = "слот выходит за рамки рабочих часов"
	msgSlotConflict         = "слот пересекается с существующей записью"
	msgDurationMismatch     = "длительность слота не совпадает с длительностью услуги"
	msgBusy                 = "по этой записи уже выполняется другая операция"
	msgStaffServiceDown     = "сервис сотрудников временно недоступен"
	msgInvalidInput         = "некорректные данные записи"

	codeOutsideHours     = "OUTSIDE_HOURS"
	codeOverlap          = "OVERLAP"
	codeDurationMismatch = "DURATION_MISMATCH"
)

type Handler struct {
	useCase UpdateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /staff/appointments/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())

	appointmentID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || appointmentID <= 0 {
		h.logger.Warn("PUT /staff/appointments/{id} - Invalid appointment id: %v", mux.Vars(r)["id"])
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /staff/appointments/%d - Invalid request body: %v", appointmentID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(session, appointmentID)
	if err != nil {
		h.logger.Warn("PUT /staff/appointments/%d - Failed to parse request: %v", appointmentID, err)
		handlers.RespondBadRequest(w, msgInvalidDateOrSlot)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PUT /staff/appointments/%d - Appointment not found", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, updateAppointment.ErrStaffNotFound):
			h.logger.Warn("PUT /staff/appointments/%d - Staff not found", appointmentID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, updateAppointment.ErrServiceNotFound):
			h.logger.Warn("PUT /staff/appointments/%d - Service not found: service_id=%d", appointmentID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, updateAppointment.ErrServiceNotProvided):
			h.logger.Warn("PUT /staff/appointments/%d - Service not provided: service_id=%d", appointmentID, req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceNotProvided)

		case errors.Is(err, updateAppointment.ErrSessionExpired):
			h.logger.Warn("PUT /staff/appointments/%d - Session expired: staff_id=%d", appointmentID, session.StaffID)
			handlers.RespondUnauthorized(w, msgSessionExpired)

		case errors.Is(err, updateAppointment.ErrAccessDenied):
			h.logger.Warn("PUT /staff/appointments/%d - Access denied: staff_id=%d", appointmentID, session.StaffID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, updateAppointment.ErrNotUpdatable):
			h.logger.Warn("PUT /staff/appointments/%d - Not updatable", appointmentID)
			handlers.RespondConflict(w, msgNotUpdatable)

		case errors.Is(err, updateAppointment.ErrScheduleUnreadable):
			h.logger.Warn("PUT /staff/appointments/%d - Unreadable schedule", appointmentID)
			handlers.RespondUnprocessable(w, msgScheduleUnreadable)

		case errors.Is(err, updateAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("PUT /staff/appointments/%d - Outside working hours", appointmentID)
			handlers.RespondErrorCode(w, http.StatusUnprocessableEntity, codeOutsideHours, msgOutsideWorkingHours)

		case errors.Is(err, updateAppointment.ErrSlotConflict):
			h.logger.Warn("PUT /staff/appointments/%d - Slot conflict", appointmentID)
			handlers.RespondErrorCode(w, http.StatusConflict, codeOverlap, msgSlotConflict)

		case errors.Is(err, updateAppointment.ErrDurationMismatch):
			h.logger.Warn("PUT /staff/appointments/%d - Duration mismatch: service_id=%d", appointmentID, req.ServiceID)
			handlers.RespondErrorCode(w, http.StatusConflict, codeDurationMismatch, msgDurationMismatch)

		case errors.Is(err, updateAppointment.ErrBusy):
			h.logger.Warn("PUT /staff/appointments/%d - Concurrent operation", appointmentID)
			handlers.RespondConflict(w, msgBusy)

		case errors.Is(err, updateAppointment.ErrStaffServiceUnavailable):
			h.logger.Error("PUT /staff/appointments/%d - Staff service unavailable: %v", appointmentID, err)
			handlers.RespondBadGateway(w, msgStaffServiceDown)

		case errors.Is(err, updateAppointment.ErrInvalidInput):
			h.logger.Warn("PUT /staff/appointments/%d - Invalid input: %v", appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /staff/appointments/%d - Failed to update appointment: %v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /staff/appointments/%d - Appointment updated successfully", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
