package update_appointment

import (
	"time"

	"github.com/m04kA/SFD-SchedulingService/internal/domain"
	"github.com/m04kA/SFD-SchedulingService/pkg/types"
)

// Request модель запроса на изменение записи
// Форма редактирования отправляет все поля целиком, а не diff
type Request struct {
	Session *domain.Session // Сессия вызывающего сотрудника

	AppointmentID int64 // ID изменяемой записи

	ClientID   int64     // ID клиента
	ClientName string    // Имя клиента
	ServiceID  int64     // ID услуги
	Date       time.Time // Новая дата записи

	StartTime types.ClockTime // Новое время начала
	EndTime   types.ClockTime // Новое время конца

	Description string

	// ConfirmDurationMismatch подтверждает слот, длительность которого
	// отличается от длительности услуги
	ConfirmDurationMismatch bool
}

// Interval возвращает запрошенный слот как интервал на дате записи
func (r *Request) Interval() domain.TimeInterval {
	return domain.TimeInterval{
		Start: r.StartTime.OnDate(r.Date),
		End:   r.EndTime.OnDate(r.Date),
	}
}

// Response модель ответа с изменённой записью
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
