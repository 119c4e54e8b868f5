package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxDescriptionLength        = 500
	MaxCancellationReasonLength = 500
	MaxAppointmentMinutes       = 480 // 8 hours
)

// Default calendar bounds used when a staff member has no working
// intervals at all in the displayed week. Minutes since midnight.
const (
	DefaultDayStartMinutes = 9 * 60  // 9:00 AM
	DefaultDayEndMinutes   = 17 * 60 // 5:00 PM
)

// InactiveStatuses список статусов, не занимающих слот
// Используется при фильтрации для проверки пересечений
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusCompleted,
}

// StorableStatuses список статусов, которые могут быть сохранены
// ("ongoing" вычисляется на лету и в список не входит)
var StorableStatuses = []AppointmentStatus{
	StatusBooked,
	StatusCancelled,
	StatusCompleted,
}
