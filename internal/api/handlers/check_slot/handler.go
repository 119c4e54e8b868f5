package check_slot

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SFD-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SFD-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SFD-SchedulingService/internal/domain"
	checkSlot "github.com/m04kA/SFD-SchedulingService/internal/usecase/check_slot"
	"github.com/m04kA/SFD-SchedulingService/pkg/types"
)

const (
	msgInvalidStaffID     = "некорректный идентификатор сотрудника"
	msgInvalidQuery       = "требуются параметры date (YYYY-MM-DD), start и end (h:mm AM/PM)"
	msgStaffNotFound      = "сотрудник не найден"
	msgAccessDenied       = "недостаточно прав для проверки слота"
	msgSessionExpired     = "сессия истекла, войдите заново"
	msgScheduleUnreadable = "расписание сотрудника содержит нечитаемую строку"
	msgStaffServiceDown   = "сервис сотрудников временно недоступен"
)

// CheckSlotResponse HTTP response model
type CheckSlotResponse struct {
	Available  bool   `json:"available"`
	Reason     string `json:"reason,omitempty"`     // OUTSIDE_HOURS | OVERLAP
	ConflictID int64  `json:"conflictId,omitempty"` // Для reason=OVERLAP
}

type Handler struct {
	useCase CheckSlotUseCase
	logger  Logger
}

func NewHandler(useCase CheckSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /staff/availability/{staffId}?date=YYYY-MM-DD&start=2:00 PM&end=3:00 PM
// Опционально excludeId - запись, игнорируемая при проверке (перенос)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())

	staffID, err := strconv.ParseInt(mux.Vars(r)["staffId"], 10, 64)
	if err != nil || staffID <= 0 {
		h.logger.Warn("GET /staff/availability/{staffId} - Invalid staff id: %v", mux.Vars(r)["staffId"])
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	query := r.URL.Query()

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /staff/availability/%d - Invalid date: %v", staffID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	start, err := types.ParseClockTime(query.Get("start"))
	if err != nil {
		h.logger.Warn("GET /staff/availability/%d - Invalid start time: %v", staffID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	end, err := types.ParseClockTime(query.Get("end"))
	if err != nil {
		h.logger.Warn("GET /staff/availability/%d - Invalid end time: %v", staffID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	req := &checkSlot.Request{
		Session:   session,
		StaffID:   staffID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}

	if excludeID := query.Get("excludeId"); excludeID != "" {
		id, err := strconv.ParseInt(excludeID, 10, 64)
		if err != nil || id <= 0 {
			h.logger.Warn("GET /staff/availability/%d - Invalid excludeId: %v", staffID, excludeID)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		req.ExcludeAppointmentID = id
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, checkSlot.ErrStaffNotFound):
			h.logger.Warn("GET /staff/availability/%d - Staff not found", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, checkSlot.ErrSessionExpired):
			h.logger.Warn("GET /staff/availability/%d - Session expired: staff_id=%d", staffID, session.StaffID)
			handlers.RespondUnauthorized(w, msgSessionExpired)

		case errors.Is(err, checkSlot.ErrAccessDenied):
			h.logger.Warn("GET /staff/availability/%d - Access denied: staff_id=%d", staffID, session.StaffID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, checkSlot.ErrScheduleUnreadable):
			h.logger.Warn("GET /staff/availability/%d - Unreadable schedule", staffID)
			handlers.RespondUnprocessable(w, msgScheduleUnreadable)

		case errors.Is(err, checkSlot.ErrStaffServiceUnavailable):
			h.logger.Error("GET /staff/availability/%d - Staff service unavailable: %v", staffID, err)
			handlers.RespondBadGateway(w, msgStaffServiceDown)

		case errors.Is(err, checkSlot.ErrInvalidInput):
			h.logger.Warn("GET /staff/availability/%d - Invalid input: %v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /staff/availability/%d - Failed to check slot: %v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/availability/%d - Slot check: available=%v reason=%s",
		staffID, result.Available, result.Reason)
	handlers.RespondJSON(w, http.StatusOK, &CheckSlotResponse{
		Available:  result.Available,
		Reason:     result.Reason,
		ConflictID: result.ConflictID,
	})
}
