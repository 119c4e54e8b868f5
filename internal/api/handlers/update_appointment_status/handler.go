package update_appointment_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SFD-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SFD-SchedulingService/internal/api/middleware"
	appointmentsService "github.com/m04kA/SFD-SchedulingService/internal/service/appointments"
	"github.com/m04kA/SFD-SchedulingService/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "некорректный идентификатор записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgAppointmentNotFound  = "запись не найдена"
	msgAccessDenied         = "недостаточно прав для изменения статуса"
	msgInvalidStatus        = "недопустимый статус записи"
	msgCannotCancel         = "запись нельзя отменить в текущем статусе"
	msgBusy                 = "по этой записи уже выполняется другая операция"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /staff/appointments/{id}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())

	appointmentID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || appointmentID <= 0 {
		h.logger.Warn("PATCH /staff/appointments/{id}/status - Invalid appointment id: %v", mux.Vars(r)["id"])
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /staff/appointments/%d/status - Invalid request body: %v", appointmentID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), appointmentID, &req, session); err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /staff/appointments/%d/status - Appointment not found", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointmentsService.ErrAccessDenied):
			h.logger.Warn("PATCH /staff/appointments/%d/status - Access denied: staff_id=%d",
				appointmentID, session.StaffID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, appointmentsService.ErrInvalidStatus):
			h.logger.Warn("PATCH /staff/appointments/%d/status - Invalid status: %s", appointmentID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, appointmentsService.ErrCannotCancel):
			h.logger.Warn("PATCH /staff/appointments/%d/status - Cannot cancel", appointmentID)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, appointmentsService.ErrBusy):
			h.logger.Warn("PATCH /staff/appointments/%d/status - Concurrent operation", appointmentID)
			handlers.RespondConflict(w, msgBusy)

		default:
			h.logger.Error("PATCH /staff/appointments/%d/status - Failed to update status: %v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /staff/appointments/%d/status - Status updated to %s", appointmentID, req.Status)
	w.WriteHeader(http.StatusNoContent)
}
