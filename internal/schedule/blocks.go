package schedule

import (
	"time"

	"github.com/m04kA/SFD-SchedulingService/internal/domain"
	"github.com/m04kA/SFD-SchedulingService/pkg/types"
)

// WeekBounds вычисляет единые границы календарного дня для всей недели:
// минимальное время начала и максимальное время конца по всем рабочим
// интервалам недели. Считается один раз и применяется к каждому дню,
// чтобы календарь отображался с одинаковыми границами.
//
// Если рабочих интервалов в неделе нет вообще, возвращаются дефолтные
// границы 9:00 AM - 5:00 PM.
func WeekBounds(week WeekIntervals) (dayMin, dayMax types.ClockTime) {
	first := true

	for _, intervals := range week.Days {
		for _, interval := range intervals {
			start := types.NewClockTime(interval.Start)
			end := types.NewClockTime(interval.End)

			if first {
				dayMin, dayMax = start, end
				first = false
				continue
			}
			if start.IsBefore(dayMin) {
				dayMin = start
			}
			if end.IsAfter(dayMax) {
				dayMax = end
			}
		}
	}

	if first {
		dayMin, _ = types.NewClockTimeFromMinutes(domain.DefaultDayStartMinutes)
		dayMax, _ = types.NewClockTimeFromMinutes(domain.DefaultDayEndMinutes)
	}

	return dayMin, dayMax
}

// NonWorkingBlocks строит дополнение рабочих интервалов дня внутри
// границ [dayMin, dayMax]: блок до первого интервала, блоки в
// промежутках между интервалами и блок после последнего.
// Пустые блоки не эмитятся. Для полностью нерабочего дня возвращается
// один блок на весь диапазон границ.
//
// workingIntervals должны быть отсортированы по возрастанию начала
// (это гарантирует ParseWeek).
func NonWorkingBlocks(
	day time.Time,
	workingIntervals []domain.TimeInterval,
	dayMin, dayMax types.ClockTime,
) []domain.TimeInterval {
	boundsStart := dayMin.OnDate(day)
	boundsEnd := dayMax.OnDate(day)

	blocks := make([]domain.TimeInterval, 0, len(workingIntervals)+1)

	previousEnd := boundsStart
	for _, interval := range workingIntervals {
		if previousEnd.Before(interval.Start) {
			blocks = append(blocks, domain.TimeInterval{Start: previousEnd, End: interval.Start})
		}
		if interval.End.After(previousEnd) {
			previousEnd = interval.End
		}
	}

	if previousEnd.Before(boundsEnd) {
		blocks = append(blocks, domain.TimeInterval{Start: previousEnd, End: boundsEnd})
	}

	return blocks
}

// NonWorkingBlocksForWeek строит блокирующие интервалы для всех семи
// дней недели с едиными границами. Пересчитывается при смене
// отображаемой недели или изменении расписания сотрудника.
func NonWorkingBlocksForWeek(week WeekIntervals) []domain.TimeInterval {
	dayMin, dayMax := WeekBounds(week)

	blocks := make([]domain.TimeInterval, 0, 16)
	for d := 0; d < 7; d++ {
		weekday := time.Weekday(d)
		dayDate := week.DayDate(weekday)
		blocks = append(blocks, NonWorkingBlocks(dayDate, week.Days[weekday], dayMin, dayMax)...)
	}

	return blocks
}
