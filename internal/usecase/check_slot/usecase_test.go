package check_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SFD-SchedulingService/internal/domain"
	"github.com/m04kA/SFD-SchedulingService/pkg/types"
)

var testDate = time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)

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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func request(t *testing.T, start, end string) *Request {
	t.Helper()
	startTime, err := types.ParseClockTime(start)
	require.NoError(t, err)
	endTime, err := types.ParseClockTime(end)
	require.NoError(t, err)

	return &Request{
		Session:   &domain.Session{StaffID: 1, Role: domain.RoleAdmin, Token: "token"},
		StaffID:   7,
		Date:      testDate,
		StartTime: startTime,
		EndTime:   endTime,
	}
}

func newUseCase(appts ...*domain.Appointment) *UseCase {
	client := &fakeStaffClient{
		schedule: domain.WeekSchedule{
			"Tuesday": {"9:00 AM - 12:00 PM", "1:00 PM - 5:00 PM"},
		},
	}
	return NewUseCase(&fakeRepo{appts: appts}, client, nopLogger{})
}

func TestExecute_Available(t *testing.T) {
	uc := newUseCase()

	resp, err := uc.Execute(context.Background(), request(t, "2:00 PM", "3:00 PM"))
	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Empty(t, resp.Reason)
}

func TestExecute_OutsideHours(t *testing.T) {
	uc := newUseCase()

	// Слот перекрывает обеденный перерыв
	resp, err := uc.Execute(context.Background(), request(t, "11:30 AM", "1:30 PM"))
	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, "OUTSIDE_HOURS", resp.Reason)
}

func TestExecute_Overlap(t *testing.T) {
	existing := &domain.Appointment{
		ID:      42,
		StaffID: 7,
		StartAt: time.Date(2025, 10, 14, 14, 30, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 10, 14, 15, 30, 0, 0, time.UTC),
		Status:  domain.StatusBooked,
	}
	uc := newUseCase(existing)

	resp, err := uc.Execute(context.Background(), request(t, "2:00 PM", "3:00 PM"))
	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, "OVERLAP", resp.Reason)
	assert.Equal(t, int64(42), resp.ConflictID)
}

func TestExecute_ExcludeSelf(t *testing.T) {
	existing := &domain.Appointment{
		ID:      42,
		StaffID: 7,
		StartAt: time.Date(2025, 10, 14, 14, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 10, 14, 15, 0, 0, 0, time.UTC),
		Status:  domain.StatusBooked,
	}
	uc := newUseCase(existing)

	req := request(t, "2:00 PM", "3:00 PM")
	req.ExcludeAppointmentID = 42

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Available)
}

func TestExecute_TouchingEndpointsAllowed(t *testing.T) {
	existing := &domain.Appointment{
		ID:      42,
		StaffID: 7,
		StartAt: time.Date(2025, 10, 14, 13, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 10, 14, 14, 0, 0, 0, time.UTC),
		Status:  domain.StatusBooked,
	}
	uc := newUseCase(existing)

	resp, err := uc.Execute(context.Background(), request(t, "2:00 PM", "3:00 PM"))
	require.NoError(t, err)
	assert.True(t, resp.Available)
}
