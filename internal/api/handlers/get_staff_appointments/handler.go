package get_staff_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SFD-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SFD-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SFD-SchedulingService/internal/domain"
	appointmentsService "github.com/m04kA/SFD-SchedulingService/internal/service/appointments"
	"github.com/m04kA/SFD-SchedulingService/internal/service/appointments/models"
)

const (
	msgInvalidStaffID = "некорректный идентификатор сотрудника"
	msgInvalidPeriod  = "некорректный период, ожидается from и to в формате YYYY-MM-DD"
	msgInvalidStatus  = "некорректный статус записи"
	msgAccessDenied   = "недостаточно прав для просмотра записей"
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

// Handle GET /staff/appointments/{staffId}
// Query параметры: from, to (YYYY-MM-DD), status, includeInactive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())

	staffID, err := strconv.ParseInt(mux.Vars(r)["staffId"], 10, 64)
	if err != nil || staffID <= 0 {
		h.logger.Warn("GET /staff/appointments/{staffId} - Invalid staff id: %v", mux.Vars(r)["staffId"])
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	req := &models.ListStaffAppointmentsRequest{StaffID: staffID}

	query := r.URL.Query()

	if from := query.Get("from"); from != "" {
		date, err := time.Parse(domain.DateFormat, from)
		if err != nil {
			h.logger.Warn("GET /staff/appointments/%d - Invalid from date: %v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		req.StartDate = &date
	}

	if to := query.Get("to"); to != "" {
		date, err := time.Parse(domain.DateFormat, to)
		if err != nil {
			h.logger.Warn("GET /staff/appointments/%d - Invalid to date: %v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		req.EndDate = &date
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if query.Get("includeInactive") == "true" {
		req.IncludeInactive = true
	}

	result, err := h.service.ListByStaff(r.Context(), req, session)
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrAccessDenied):
			h.logger.Warn("GET /staff/appointments/%d - Access denied: staff_id=%d", staffID, session.StaffID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, appointmentsService.ErrInvalidInput):
			h.logger.Warn("GET /staff/appointments/%d - Invalid status filter: %v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /staff/appointments/%d - Failed to list appointments: %v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/appointments/%d - Returned %d appointments", staffID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
