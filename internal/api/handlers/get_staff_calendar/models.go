package get_staff_calendar

import (
	"time"

	getStaffCalendar "github.com/m04kA/SFD-SchedulingService/internal/usecase/get_staff_calendar"
)

// CalendarResponse HTTP response model недельного календаря
type CalendarResponse struct {
	StaffID   int64  `json:"staffId"`
	WeekStart string `json:"weekStart"`
	DayStart  string `json:"dayStart"`
	DayEnd    string `json:"dayEnd"`

	Days []DayView `json:"days"`

	ScheduleWarning *string `json:"scheduleWarning,omitempty"`
}

// DayView один день календаря
type DayView struct {
	Date         string   `json:"date"`
	Weekday      string   `json:"weekday"`
	IsWorkingDay bool     `json:"isWorkingDay"`
	WorkingHours []string `json:"workingHours"`
	Events       []Event  `json:"events"`
}

// Event событие календаря
type Event struct {
	Type      string    `json:"type"` // "appointment" | "unavailable"
	TimeRange string    `json:"timeRange"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`

	AppointmentID int64  `json:"appointmentId,omitempty"`
	ClientName    string `json:"clientName,omitempty"`
	ServiceType   string `json:"serviceType,omitempty"`
	Status        string `json:"status,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getStaffCalendar.Response) *CalendarResponse {
	days := make([]DayView, len(resp.Days))
	for i, day := range resp.Days {
		events := make([]Event, len(day.Events))
		for j, event := range day.Events {
			events[j] = Event{
				Type:          string(event.Type),
				TimeRange:     event.TimeRange,
				StartAt:       event.StartAt,
				EndAt:         event.EndAt,
				AppointmentID: event.AppointmentID,
				ClientName:    event.ClientName,
				ServiceType:   event.ServiceType,
				Status:        event.Status,
			}
		}

		days[i] = DayView{
			Date:         day.Date,
			Weekday:      day.Weekday,
			IsWorkingDay: day.IsWorkingDay,
			WorkingHours: day.WorkingHours,
			Events:       events,
		}
	}

	return &CalendarResponse{
		StaffID:         resp.StaffID,
		WeekStart:       resp.WeekStart,
		DayStart:        resp.DayStart,
		DayEnd:          resp.DayEnd,
		Days:            days,
		ScheduleWarning: resp.ScheduleWarning,
	}
}
