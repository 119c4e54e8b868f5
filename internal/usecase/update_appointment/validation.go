package update_appointment

import (
	"fmt"
	"strings"

	"github.com/m04kA/SFD-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Session == nil {
		return fmt.Errorf("%w: session is required", ErrInvalidInput)
	}

	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	duration := req.EndTime.Minutes() - req.StartTime.Minutes()
	if duration > domain.MaxAppointmentMinutes {
		return fmt.Errorf("%w: appointment cannot be longer than %d minutes",
			ErrInvalidInput, domain.MaxAppointmentMinutes)
	}

	if strings.TrimSpace(req.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	}

	if len(req.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description cannot be longer than %d characters",
			ErrInvalidInput, domain.MaxDescriptionLength)
	}

	return nil
}
