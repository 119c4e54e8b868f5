package schedule

import "github.com/m04kA/SFD-SchedulingService/internal/domain"

// Reason причина отказа в доступности слота
type Reason string

const (
	// ReasonOutsideHours слот не помещается целиком ни в один рабочий интервал
	ReasonOutsideHours Reason = "OUTSIDE_HOURS"

	// ReasonOverlap слот пересекается с существующей записью
	ReasonOverlap Reason = "OVERLAP"
)

// Result результат проверки доступности слота
type Result struct {
	OK     bool
	Reason Reason

	// ConflictID ID записи, с которой пересекается кандидат (для ReasonOverlap)
	ConflictID int64
}

// CheckSlot проверяет, что кандидат находится внутри рабочих часов
// и не пересекается с активными записями.
//
// Кандидат должен целиком помещаться в ОДИН рабочий интервал:
// слот, перекрывающий обеденный перерыв между двумя соседними
// интервалами, отклоняется.
//
// Пересечение с записями - строгое: граничащие интервалы
// (конец одного равен началу другого) пересечением не считаются.
// Отменённые и завершённые записи слот не занимают.
func CheckSlot(
	candidate domain.TimeInterval,
	workingIntervals []domain.TimeInterval,
	appointments []*domain.Appointment,
) Result {
	insideWorkingHours := false
	for _, w := range workingIntervals {
		if w.Contains(candidate) {
			insideWorkingHours = true
			break
		}
	}

	if !insideWorkingHours {
		return Result{OK: false, Reason: ReasonOutsideHours}
	}

	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		if candidate.Overlaps(appt.Interval()) {
			return Result{OK: false, Reason: ReasonOverlap, ConflictID: appt.ID}
		}
	}

	return Result{OK: true}
}

// CheckSlotExcluding как CheckSlot, но игнорирует запись с указанным ID.
// Используется при переносе: запись не должна конфликтовать сама с собой.
func CheckSlotExcluding(
	candidate domain.TimeInterval,
	workingIntervals []domain.TimeInterval,
	appointments []*domain.Appointment,
	excludeID int64,
) Result {
	filtered := make([]*domain.Appointment, 0, len(appointments))
	for _, appt := range appointments {
		if appt.ID == excludeID {
			continue
		}
		filtered = append(filtered, appt)
	}
	return CheckSlot(candidate, workingIntervals, filtered)
}
