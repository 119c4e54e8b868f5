package get_staff_calendar

import (
	"time"

	"github.com/m04kA/SFD-SchedulingService/internal/domain"
)

// EventType тип события в календаре
type EventType string

const (
	// EventAppointment запись клиента
	EventAppointment EventType = "appointment"

	// EventUnavailable нерабочий блок (до начала дня, перерыв, после конца дня)
	EventUnavailable EventType = "unavailable"
)

// Request модель запроса недельного календаря
type Request struct {
	Session *domain.Session // Сессия вызывающего сотрудника

	StaffID int64 // ID сотрудника, чей календарь запрашивается

	// WeekStart любая дата внутри интересующей недели.
	// Если не указана, берётся текущая неделя.
	WeekStart *time.Time
}

// Event событие календаря: запись клиента или нерабочий блок
type Event struct {
	Type      EventType
	TimeRange string // "2:00 PM - 3:00 PM"
	StartAt   time.Time
	EndAt     time.Time

	// Поля записи (только для EventAppointment)
	AppointmentID int64
	ClientName    string
	ServiceType   string
	Status        string // Включая производный "ongoing"
}

// DayView один день недельного календаря
type DayView struct {
	Date         string // "2025-10-15"
	Weekday      string // "Sunday" .. "Saturday"
	IsWorkingDay bool
	WorkingHours []string // Рабочие интервалы в проводном формате
	Events       []Event  // Отсортированы по времени начала
}

// Response недельный календарь сотрудника
type Response struct {
	StaffID   int64
	WeekStart string // Дата воскресенья недели

	// DayStart/DayEnd единые границы отображаемого дня для всей недели
	DayStart string // "9:00 AM"
	DayEnd   string // "5:00 PM"

	Days []DayView // Всегда 7 дней, начиная с воскресенья

	// ScheduleWarning описание первой нечитаемой строки расписания.
	// Затронутый день показывается как нерабочий, календарь строится дальше.
	ScheduleWarning *string
}
