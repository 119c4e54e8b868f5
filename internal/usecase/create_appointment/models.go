package create_appointment

import (
	"time"

	"github.com/m04kA/SFD-SchedulingService/internal/domain"
	"github.com/m04kA/SFD-SchedulingService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	Session *domain.Session // Сессия вызывающего сотрудника

	StaffID    int64     // ID сотрудника, к которому создаётся запись
	ClientID   int64     // ID клиента
	ClientName string    // Имя клиента
	ServiceID  int64     // ID услуги
	Date       time.Time // Дата записи (без времени)

	StartTime types.ClockTime // Время начала слота (например, "2:00 PM")
	EndTime   types.ClockTime // Время конца слота

	Description string // Описание/заметка к записи

	// ConfirmDurationMismatch подтверждает создание слота, длительность
	// которого отличается от длительности услуги
	ConfirmDurationMismatch bool
}

// Interval возвращает запрошенный слот как интервал на дате записи
func (r *Request) Interval() domain.TimeInterval {
	return domain.TimeInterval{
		Start: r.StartTime.OnDate(r.Date),
		End:   r.EndTime.OnDate(r.Date),
	}
}

// Response модель ответа с созданной записью
type Response struct {
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
	Status      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func fromDomain(a *domain.Appointment) *Response {
	return &Response{
		ID:             a.ID,
		StaffID:        a.StaffID,
		ClientID:       a.ClientID,
		ClientName:     a.ClientName,
		ServiceID:      a.ServiceID,
		ServiceType:    a.ServiceType,
		ServiceCharges: a.ServiceCharges,
		StartAt:        a.StartAt,
		EndAt:          a.EndAt,
		Description:    a.Description,
		Status:         string(a.Status),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
