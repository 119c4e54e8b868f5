package check_slot

import (
	"time"

	"github.com/m04kA/SFD-SchedulingService/internal/domain"
	"github.com/m04kA/SFD-SchedulingService/pkg/types"
)

// Request модель запроса проверки доступности слота
type Request struct {
	Session *domain.Session // Сессия вызывающего сотрудника

	StaffID int64     // ID сотрудника
	Date    time.Time // Дата слота (без времени)

	StartTime types.ClockTime // Время начала слота
	EndTime   types.ClockTime // Время конца слота

	// ExcludeAppointmentID запись, которую нужно игнорировать при
	// проверке (проверка перед переносом). 0 - ничего не исключать.
	ExcludeAppointmentID int64
}

// Interval возвращает проверяемый слот как интервал на дате
func (r *Request) Interval() domain.TimeInterval {
	return domain.TimeInterval{
		Start: r.StartTime.OnDate(r.Date),
		End:   r.EndTime.OnDate(r.Date),
	}
}

// Response результат проверки доступности
type Response struct {
	Available bool

	// Reason причина отказа: OUTSIDE_HOURS или OVERLAP (если Available=false)
	Reason string

	// ConflictID ID пересекающейся записи (для Reason=OVERLAP)
	ConflictID int64
}
