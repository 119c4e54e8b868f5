package delete_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SFD-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SFD-SchedulingService/internal/api/middleware"
	appointmentsService "github.com/m04kA/SFD-SchedulingService/internal/service/appointments"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidAppointment  = "некорректный идентификатор записи"
	msgAppointmentNotFound = "запись не найдена"
	msgAccessDenied        = "недостаточно прав для удаления записи"
	msgBusy                = "по этой записи уже выполняется другая операция"
)

// DeleteAppointmentRequest идентификатор удаляемой записи передаётся
// в теле запроса
type DeleteAppointmentRequest struct {
	ID int64 `json:"id"`
}

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

// Handle DELETE /staff/appointments/delete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())

	var req DeleteAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("DELETE /staff/appointments/delete - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.ID <= 0 {
		h.logger.Warn("DELETE /staff/appointments/delete - Invalid appointment id: %d", req.ID)
		handlers.RespondBadRequest(w, msgInvalidAppointment)
		return
	}

	if err := h.service.Delete(r.Context(), req.ID, session); err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrAppointmentNotFound):
			h.logger.Warn("DELETE /staff/appointments/delete - Appointment not found: id=%d", req.ID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointmentsService.ErrAccessDenied):
			h.logger.Warn("DELETE /staff/appointments/delete - Access denied: id=%d, staff_id=%d",
				req.ID, session.StaffID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, appointmentsService.ErrBusy):
			h.logger.Warn("DELETE /staff/appointments/delete - Concurrent operation: id=%d", req.ID)
			handlers.RespondConflict(w, msgBusy)

		default:
			h.logger.Error("DELETE /staff/appointments/delete - Failed to delete appointment id=%d: %v", req.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Ответ подтверждает, что запись удалена из базы
	h.logger.Info("DELETE /staff/appointments/delete - Appointment deleted: id=%d", req.ID)
	handlers.RespondJSON(w, http.StatusOK, map[string]int64{"id": req.ID})
}
