package get_staff_calendar

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SFD-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SFD-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SFD-SchedulingService/internal/domain"
	getStaffCalendar "github.com/m04kA/SFD-SchedulingService/internal/usecase/get_staff_calendar"
)

const (
	msgInvalidStaffID   = "некорректный идентификатор сотрудника"
	msgInvalidWeekStart = "некорректный параметр weekStart, ожидается YYYY-MM-DD"
	msgStaffNotFound    = "сотрудник не найден"
	msgAccessDenied     = "недостаточно прав для просмотра календаря"
	msgSessionExpired   = "сессия истекла, войдите заново"
	msgStaffServiceDown = "сервис сотрудников временно недоступен"
)

type Handler struct {
	useCase GetStaffCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetStaffCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /staff/calendar/{staffId}?weekStart=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())

	staffID, err := strconv.ParseInt(mux.Vars(r)["staffId"], 10, 64)
	if err != nil || staffID <= 0 {
		h.logger.Warn("GET /staff/calendar/{staffId} - Invalid staff id: %v", mux.Vars(r)["staffId"])
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	req := &getStaffCalendar.Request{
		Session: session,
		StaffID: staffID,
	}

	if weekStart := r.URL.Query().Get("weekStart"); weekStart != "" {
		date, err := time.Parse(domain.DateFormat, weekStart)
		if err != nil {
			h.logger.Warn("GET /staff/calendar/%d - Invalid weekStart: %v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidWeekStart)
			return
		}
		req.WeekStart = &date
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getStaffCalendar.ErrStaffNotFound):
			h.logger.Warn("GET /staff/calendar/%d - Staff not found", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getStaffCalendar.ErrSessionExpired):
			h.logger.Warn("GET /staff/calendar/%d - Session expired: staff_id=%d", staffID, session.StaffID)
			handlers.RespondUnauthorized(w, msgSessionExpired)

		case errors.Is(err, getStaffCalendar.ErrAccessDenied):
			h.logger.Warn("GET /staff/calendar/%d - Access denied: staff_id=%d", staffID, session.StaffID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, getStaffCalendar.ErrStaffServiceUnavailable):
			h.logger.Error("GET /staff/calendar/%d - Staff service unavailable: %v", staffID, err)
			handlers.RespondBadGateway(w, msgStaffServiceDown)

		default:
			h.logger.Error("GET /staff/calendar/%d - Failed to build calendar: %v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/calendar/%d - Calendar built for week %s", staffID, result.WeekStart)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
