package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SFD-SchedulingService/internal/domain"
)

// Среда 15 октября 2025 - якорная дата внутри тестовой недели
var anchorDate = time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

func TestWeekStartFor(t *testing.T) {
	// Неделя начинается с воскресенья
	sunday := time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC)

	for d := 0; d < 7; d++ {
		day := sunday.AddDate(0, 0, d)
		assert.Equal(t, sunday, WeekStartFor(day), "day offset %d", d)
	}
}

func TestParseWeek_SortedAndAnchored(t *testing.T) {
	weekSchedule := domain.WeekSchedule{
		// Интервалы заданы в обратном порядке - разбор обязан отсортировать
		"Monday":  []string{"1:00 PM - 5:00 PM", "9:00 AM - 12:00 PM"},
		"Tuesday": []string{"10:00 AM - 6:00 PM"},
	}

	week, err := ParseWeek(weekSchedule, anchorDate)
	require.NoError(t, err)

	monday := week.Days[time.Monday]
	require.Len(t, monday, 2)
	assert.True(t, monday[0].Start.Before(monday[1].Start), "intervals must be sorted ascending")

	// Понедельник недели, содержащей 15 октября 2025 - это 13 октября
	expectedStart := time.Date(2025, 10, 13, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, expectedStart, monday[0].Start)
	assert.Equal(t, time.Date(2025, 10, 13, 12, 0, 0, 0, time.UTC), monday[0].End)

	// Дни без записей - нерабочие
	_, ok := week.Days[time.Sunday]
	assert.False(t, ok)

	// Непересекающийся вход остается непересекающимся
	assert.False(t, monday[0].Overlaps(monday[1]))
}

func TestParseWeek_NilDayIsNonWorking(t *testing.T) {
	weekSchedule := domain.WeekSchedule{
		"Sunday": nil,
		"Monday": []string{"9:00 AM - 5:00 PM"},
	}

	week, err := ParseWeek(weekSchedule, anchorDate)
	require.NoError(t, err)

	_, ok := week.Days[time.Sunday]
	assert.False(t, ok)
	assert.Len(t, week.Days[time.Monday], 1)
}

func TestParseWeek_MalformedRange(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "missing separator", value: "9:00 AM to 5:00 PM"},
		{name: "unparseable start", value: "nine - 5:00 PM"},
		{name: "24h clock", value: "09:00 - 17:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weekSchedule := domain.WeekSchedule{
				"Monday":  []string{tt.value},
				"Tuesday": []string{"10:00 AM - 6:00 PM"},
			}

			week, err := ParseWeek(weekSchedule, anchorDate)

			// Ошибка именует некорректную строку, день остается пустым,
			// остальные дни разбираются
			require.Error(t, err)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, "Monday", parseErr.Day)
			assert.Equal(t, tt.value, parseErr.Range)
			assert.Contains(t, err.Error(), tt.value)

			_, ok := week.Days[time.Monday]
			assert.False(t, ok, "failed day must have no intervals")
			assert.Len(t, week.Days[time.Tuesday], 1, "other days must still parse")
		})
	}
}

func TestFormatWeek_RoundTrip(t *testing.T) {
	weekSchedule := domain.WeekSchedule{
		"Monday":   []string{"9:00 AM - 12:00 PM", "1:00 PM - 5:00 PM"},
		"Tuesday":  []string{"10:30 AM - 7:15 PM"},
		"Saturday": []string{"11:00 AM - 3:00 PM"},
	}

	week, err := ParseWeek(weekSchedule, anchorDate)
	require.NoError(t, err)

	formatted := FormatWeek(week)

	// Для всех дней с непустыми записями строки воспроизводятся дословно
	assert.Equal(t, weekSchedule["Monday"], formatted["Monday"])
	assert.Equal(t, weekSchedule["Tuesday"], formatted["Tuesday"])
	assert.Equal(t, weekSchedule["Saturday"], formatted["Saturday"])
	assert.NotContains(t, formatted, "Sunday")
}
