package domain

import "time"

// AppointmentStatus represents the stored status of an appointment.
// "ongoing" is never stored: it is derived from a booked appointment
// whose interval contains the current time.
type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "booked"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"

	// StatusOngoing is a derived, presentation-only status
	StatusOngoing AppointmentStatus = "ongoing"
)

// Appointment represents a booked service slot for a staff member
type Appointment struct {
	ID         int64
	StaffID    int64
	ClientID   int64
	ClientName string

	ServiceID      int64
	ServiceType    string
	ServiceCharges float64

	StartAt time.Time
	EndAt   time.Time

	Description string
	Status      AppointmentStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the appointment's occupied time interval
func (a *Appointment) Interval() TimeInterval {
	return TimeInterval{Start: a.StartAt, End: a.EndAt}
}

// IsActive returns true if the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status == StatusBooked
}

// IsOngoing returns true if the appointment is booked and now falls
// within [StartAt, EndAt)
func (a *Appointment) IsOngoing(now time.Time) bool {
	return a.Status == StatusBooked && !now.Before(a.StartAt) && now.Before(a.EndAt)
}

// DisplayStatus returns the status as presented to the caller,
// substituting the derived "ongoing" state where applicable
func (a *Appointment) DisplayStatus(now time.Time) AppointmentStatus {
	if a.IsOngoing(now) {
		return StatusOngoing
	}
	return a.Status
}

// CanBeUpdated returns true if the appointment can still be rescheduled or edited
func (a *Appointment) CanBeUpdated() bool {
	return a.Status == StatusBooked
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusBooked
}

// IsTerminal returns true if the appointment reached a soft-terminal state
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCancelled || a.Status == StatusCompleted
}

// StaffAppointmentsFilter фильтр для выборки записей сотрудника
type StaffAppointmentsFilter struct {
	StaffID         int64      // Обязательный параметр
	StartDate       *time.Time // Начало периода (опционально)
	EndDate         *time.Time // Конец периода (опционально, включительно)
	Status          *AppointmentStatus
	IncludeInactive bool // Включать ли отменённые и завершённые записи
}
