package get_staff_calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SFD-SchedulingService/internal/domain"
	"github.com/m04kA/SFD-SchedulingService/pkg/ptr"
)

// Среда недели, начинающейся в воскресенье 2025-10-12
var anchorDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

type fakeRepo struct {
	appts []*domain.Appointment
}

func (r *fakeRepo) GetByStaffWithFilter(_ context.Context, filter domain.StaffAppointmentsFilter) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range r.appts {
		if a.StaffID == filter.StaffID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeStaffClient struct {
	schedule domain.WeekSchedule
}

func (c *fakeStaffClient) GetSchedule(_ context.Context, _ string, _ int64) (domain.WeekSchedule, error) {
	return c.schedule, nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newUseCase(repo *fakeRepo, client *fakeStaffClient, now time.Time) *UseCase {
	uc := NewUseCase(repo, client, nopLogger{})
	uc.timeProvider = fixedClock{now: now}
	return uc
}

func adminRequest() *Request {
	return &Request{
		Session:   &domain.Session{StaffID: 1, Role: domain.RoleAdmin, Token: "token"},
		StaffID:   7,
		WeekStart: ptr.Ptr(anchorDate),
	}
}

func TestExecute_MergedWeekView(t *testing.T) {
	// Рабочая среда с обеденным перерывом и одной записью
	client := &fakeStaffClient{
		schedule: domain.WeekSchedule{
			"Wednesday": {"9:00 AM - 12:00 PM", "1:00 PM - 5:00 PM"},
		},
	}
	repo := &fakeRepo{
		appts: []*domain.Appointment{
			{
				ID:          42,
				StaffID:     7,
				ClientName:  "Dana Reeve",
				ServiceType: "Haircut",
				StartAt:     time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC),
				EndAt:       time.Date(2025, 10, 15, 15, 0, 0, 0, time.UTC),
				Status:      domain.StatusBooked,
			},
		},
	}
	uc := newUseCase(repo, client, anchorDate)

	resp, err := uc.Execute(context.Background(), adminRequest())
	require.NoError(t, err)

	assert.Equal(t, "2025-10-12", resp.WeekStart)
	assert.Equal(t, "9:00 AM", resp.DayStart)
	assert.Equal(t, "5:00 PM", resp.DayEnd)
	assert.Nil(t, resp.ScheduleWarning)
	require.Len(t, resp.Days, 7)

	// Среда: обеденный блок + запись, отсортированы по началу
	wednesday := resp.Days[3]
	assert.Equal(t, "2025-10-15", wednesday.Date)
	assert.Equal(t, "Wednesday", wednesday.Weekday)
	assert.True(t, wednesday.IsWorkingDay)
	assert.Equal(t, []string{"9:00 AM - 12:00 PM", "1:00 PM - 5:00 PM"}, wednesday.WorkingHours)

	require.Len(t, wednesday.Events, 2)
	assert.Equal(t, EventUnavailable, wednesday.Events[0].Type)
	assert.Equal(t, "12:00 PM - 1:00 PM", wednesday.Events[0].TimeRange)
	assert.Equal(t, EventAppointment, wednesday.Events[1].Type)
	assert.Equal(t, "2:00 PM - 3:00 PM", wednesday.Events[1].TimeRange)
	assert.Equal(t, int64(42), wednesday.Events[1].AppointmentID)
	assert.Equal(t, "booked", wednesday.Events[1].Status)

	// Выходной день: один блок на весь диапазон границ
	sunday := resp.Days[0]
	assert.False(t, sunday.IsWorkingDay)
	require.Len(t, sunday.Events, 1)
	assert.Equal(t, EventUnavailable, sunday.Events[0].Type)
	assert.Equal(t, "9:00 AM - 5:00 PM", sunday.Events[0].TimeRange)
}

func TestExecute_OngoingStatusDerived(t *testing.T) {
	client := &fakeStaffClient{
		schedule: domain.WeekSchedule{"Wednesday": {"9:00 AM - 5:00 PM"}},
	}
	repo := &fakeRepo{
		appts: []*domain.Appointment{
			{
				ID:      42,
				StaffID: 7,
				StartAt: time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC),
				EndAt:   time.Date(2025, 10, 15, 15, 0, 0, 0, time.UTC),
				Status:  domain.StatusBooked,
			},
		},
	}
	// Часы указывают на середину записи
	uc := newUseCase(repo, client, time.Date(2025, 10, 15, 14, 30, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), adminRequest())
	require.NoError(t, err)

	wednesday := resp.Days[3]
	var apptEvent *Event
	for i := range wednesday.Events {
		if wednesday.Events[i].Type == EventAppointment {
			apptEvent = &wednesday.Events[i]
		}
	}
	require.NotNil(t, apptEvent)
	assert.Equal(t, "ongoing", apptEvent.Status)
}

func TestExecute_MalformedDayBecomesWarning(t *testing.T) {
	client := &fakeStaffClient{
		schedule: domain.WeekSchedule{
			"Monday":    {"9:00 AM to 5:00 PM"}, // нечитаемая строка
			"Wednesday": {"9:00 AM - 5:00 PM"},
		},
	}
	uc := newUseCase(&fakeRepo{}, client, anchorDate)

	resp, err := uc.Execute(context.Background(), adminRequest())
	require.NoError(t, err)

	require.NotNil(t, resp.ScheduleWarning)
	assert.Contains(t, *resp.ScheduleWarning, "9:00 AM to 5:00 PM")

	// Понедельник показан как нерабочий, среда разобрана как обычно
	assert.False(t, resp.Days[1].IsWorkingDay)
	assert.True(t, resp.Days[3].IsWorkingDay)
}

func TestExecute_EmptyScheduleUsesDefaultBounds(t *testing.T) {
	uc := newUseCase(&fakeRepo{}, &fakeStaffClient{schedule: domain.WeekSchedule{}}, anchorDate)

	resp, err := uc.Execute(context.Background(), adminRequest())
	require.NoError(t, err)

	assert.Equal(t, "9:00 AM", resp.DayStart)
	assert.Equal(t, "5:00 PM", resp.DayEnd)
}

func TestExecute_DefaultsToCurrentWeek(t *testing.T) {
	client := &fakeStaffClient{schedule: domain.WeekSchedule{}}
	uc := newUseCase(&fakeRepo{}, client, anchorDate)

	req := adminRequest()
	req.WeekStart = nil

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-12", resp.WeekStart)
}

func TestExecute_AccessDenied(t *testing.T) {
	uc := newUseCase(&fakeRepo{}, &fakeStaffClient{schedule: domain.WeekSchedule{}}, anchorDate)

	req := adminRequest()
	req.Session = &domain.Session{StaffID: 9, Role: domain.RoleProvider, Token: "token"}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
