package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SFD-SchedulingService/internal/domain"
	"github.com/m04kA/SFD-SchedulingService/pkg/types"
)

// ParseError ошибка разбора строки расписания
// Содержит день и исходную строку, вызвавшую ошибку
type ParseError struct {
	Day   string
	Range string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("schedule: day %s: malformed range %q: %v", e.Day, e.Range, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// WeekIntervals результат разбора недельного расписания:
// рабочие интервалы по дням, привязанные к конкретным датам недели
type WeekIntervals struct {
	// WeekStart дата воскресенья недели, к которой привязаны интервалы
	WeekStart time.Time

	// Days интервалы по дням недели, отсортированы по времени начала.
	// День без записи - нерабочий (или все его строки оказались некорректными).
	Days map[time.Weekday][]domain.TimeInterval
}

// DayDate возвращает дату конкретного дня внутри недели
func (w WeekIntervals) DayDate(d time.Weekday) time.Time {
	return w.WeekStart.AddDate(0, 0, int(d))
}

// WeekStartFor возвращает воскресенье недели, содержащей указанную дату
// (неделя начинается с воскресенья)
func WeekStartFor(anchor time.Time) time.Time {
	day := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// ParseWeek разбирает недельное расписание в рабочие интервалы,
// привязанные к датам недели, содержащей anchorDate.
//
// Некорректная строка диапазона не прерывает разбор целиком:
// интервалы этого дня остаются пустыми, а первая ошибка возвращается
// вызывающему как *ParseError. Остальные дни разбираются как обычно.
// Интервалы внутри дня сортируются по возрастанию времени начала.
func ParseWeek(weekSchedule domain.WeekSchedule, anchorDate time.Time) (WeekIntervals, error) {
	weekStart := WeekStartFor(anchorDate)

	result := WeekIntervals{
		WeekStart: weekStart,
		Days:      make(map[time.Weekday][]domain.TimeInterval),
	}

	var firstErr error

	for dayIdx, dayName := range domain.WeekdayNames {
		ranges, ok := weekSchedule[dayName]
		if !ok || len(ranges) == 0 {
			// Нерабочий день
			continue
		}

		weekday := time.Weekday(dayIdx)
		dayDate := result.DayDate(weekday)

		intervals := make([]domain.TimeInterval, 0, len(ranges))
		dayFailed := false

		for _, rangeStr := range ranges {
			parsed, err := types.ParseRange(rangeStr)
			if err != nil {
				if firstErr == nil {
					firstErr = &ParseError{Day: dayName, Range: rangeStr, Err: err}
				}
				dayFailed = true
				break
			}

			intervals = append(intervals, domain.TimeInterval{
				Start: parsed.Start.OnDate(dayDate),
				End:   parsed.End.OnDate(dayDate),
			})
		}

		// При ошибке разбора интервалы дня остаются пустыми
		if dayFailed {
			continue
		}

		sort.Slice(intervals, func(i, j int) bool {
			return intervals[i].Start.Before(intervals[j].Start)
		})

		result.Days[weekday] = intervals
	}

	return result, firstErr
}

// FormatWeek конвертирует разобранные интервалы обратно в недельное
// расписание в проводном формате "h:mm A - h:mm A".
// Для корректного входа FormatWeek(ParseWeek(s)) воспроизводит s дословно.
func FormatWeek(week WeekIntervals) domain.WeekSchedule {
	result := make(domain.WeekSchedule, len(week.Days))

	for weekday, intervals := range week.Days {
		ranges := make([]string, len(intervals))
		for i, interval := range intervals {
			r := types.Range{
				Start: types.NewClockTime(interval.Start),
				End:   types.NewClockTime(interval.End),
			}
			ranges[i] = r.String()
		}
		result[domain.WeekdayName(weekday)] = ranges
	}

	return result
}
