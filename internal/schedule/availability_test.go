package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SFD-SchedulingService/internal/domain"
)

func interval(t *testing.T, day time.Time, startHour, startMin, endHour, endMin int) domain.TimeInterval {
	t.Helper()
	return domain.TimeInterval{
		Start: time.Date(day.Year(), day.Month(), day.Day(), startHour, startMin, 0, 0, time.UTC),
		End:   time.Date(day.Year(), day.Month(), day.Day(), endHour, endMin, 0, 0, time.UTC),
	}
}

func bookedAppointment(t *testing.T, id int64, day time.Time, startHour, startMin, endHour, endMin int) *domain.Appointment {
	t.Helper()
	iv := interval(t, day, startHour, startMin, endHour, endMin)
	return &domain.Appointment{ID: id, StartAt: iv.Start, EndAt: iv.End, Status: domain.StatusBooked}
}

var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

func TestCheckSlot_InsideSingleIntervalNoAppointments(t *testing.T) {
	working := []domain.TimeInterval{
		interval(t, monday, 9, 0, 12, 0),
		interval(t, monday, 13, 0, 17, 0),
	}

	res := CheckSlot(interval(t, monday, 10, 0, 11, 0), working, nil)
	assert.True(t, res.OK)

	// Граничные случаи: слот, совпадающий с рабочим интервалом целиком
	res = CheckSlot(interval(t, monday, 9, 0, 12, 0), working, nil)
	assert.True(t, res.OK)
}

func TestCheckSlot_SpanningLunchGapRejected(t *testing.T) {
	// Понедельник: "9:00 AM - 12:00 PM", "1:00 PM - 5:00 PM";
	// кандидат 12:15-12:45 попадает в перерыв
	working := []domain.TimeInterval{
		interval(t, monday, 9, 0, 12, 0),
		interval(t, monday, 13, 0, 17, 0),
	}

	res := CheckSlot(interval(t, monday, 12, 15, 12, 45), working, nil)
	require.False(t, res.OK)
	assert.Equal(t, ReasonOutsideHours, res.Reason)

	// Кандидат, начинающийся в первом интервале и кончающийся во втором,
	// тоже отклоняется: нужен ОДИН содержащий интервал
	res = CheckSlot(interval(t, monday, 11, 30, 13, 30), working, nil)
	require.False(t, res.OK)
	assert.Equal(t, ReasonOutsideHours, res.Reason)
}

func TestCheckSlot_Overlap(t *testing.T) {
	tuesday := monday.AddDate(0, 0, 1)
	working := []domain.TimeInterval{interval(t, tuesday, 9, 0, 17, 0)}

	// Существующая запись 2:30-3:30 PM, кандидат 2:00-3:00 PM
	existing := []*domain.Appointment{bookedAppointment(t, 42, tuesday, 14, 30, 15, 30)}

	res := CheckSlot(interval(t, tuesday, 14, 0, 15, 0), working, existing)
	require.False(t, res.OK)
	assert.Equal(t, ReasonOverlap, res.Reason)
	assert.Equal(t, int64(42), res.ConflictID)
}

func TestCheckSlot_TouchingEndpointsAllowed(t *testing.T) {
	working := []domain.TimeInterval{interval(t, monday, 9, 0, 17, 0)}
	existing := []*domain.Appointment{bookedAppointment(t, 1, monday, 10, 0, 11, 0)}

	// Кандидат заканчивается ровно в начале существующей записи
	res := CheckSlot(interval(t, monday, 9, 0, 10, 0), working, existing)
	assert.True(t, res.OK)

	// Кандидат начинается ровно в конце существующей записи
	res = CheckSlot(interval(t, monday, 11, 0, 12, 0), working, existing)
	assert.True(t, res.OK)
}

func TestCheckSlot_StrictIntersectionAlwaysOverlap(t *testing.T) {
	working := []domain.TimeInterval{interval(t, monday, 9, 0, 17, 0)}
	appt := bookedAppointment(t, 7, monday, 12, 0, 13, 0)

	// Все варианты строгого пересечения c.start < a.end && c.end > a.start
	candidates := []domain.TimeInterval{
		interval(t, monday, 11, 30, 12, 30), // пересекает начало
		interval(t, monday, 12, 30, 13, 30), // пересекает конец
		interval(t, monday, 12, 15, 12, 45), // внутри
		interval(t, monday, 11, 0, 14, 0),   // поглощает
	}

	for i, c := range candidates {
		res := CheckSlot(c, working, []*domain.Appointment{appt})
		require.False(t, res.OK, "candidate %d", i)
		assert.Equal(t, ReasonOverlap, res.Reason, "candidate %d", i)
	}
}

func TestCheckSlot_InactiveAppointmentsIgnored(t *testing.T) {
	working := []domain.TimeInterval{interval(t, monday, 9, 0, 17, 0)}

	cancelled := bookedAppointment(t, 1, monday, 10, 0, 11, 0)
	cancelled.Status = domain.StatusCancelled
	completed := bookedAppointment(t, 2, monday, 10, 0, 11, 0)
	completed.Status = domain.StatusCompleted

	res := CheckSlot(interval(t, monday, 10, 0, 11, 0), working, []*domain.Appointment{cancelled, completed})
	assert.True(t, res.OK, "cancelled and completed appointments must not occupy the slot")
}

func TestCheckSlotExcluding(t *testing.T) {
	working := []domain.TimeInterval{interval(t, monday, 9, 0, 17, 0)}
	existing := []*domain.Appointment{
		bookedAppointment(t, 5, monday, 10, 0, 11, 0),
		bookedAppointment(t, 6, monday, 14, 0, 15, 0),
	}

	// Перенос записи 5 внутри её собственного слота - конфликта с собой нет
	res := CheckSlotExcluding(interval(t, monday, 10, 30, 11, 30), working, existing, 5)
	assert.True(t, res.OK)

	// Но конфликт с другой записью по-прежнему ловится
	res = CheckSlotExcluding(interval(t, monday, 14, 30, 15, 30), working, existing, 5)
	require.False(t, res.OK)
	assert.Equal(t, ReasonOverlap, res.Reason)
	assert.Equal(t, int64(6), res.ConflictID)
}
