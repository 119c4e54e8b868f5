package update_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SFD-SchedulingService/internal/domain"
	apptRepo "github.com/m04kA/SFD-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SFD-SchedulingService/pkg/inflight"
	"github.com/m04kA/SFD-SchedulingService/pkg/types"
)

var testDate = time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)

type fakeRepo struct {
	appts map[int64]*domain.Appointment
}

func newFakeRepo(appts ...*domain.Appointment) *fakeRepo {
	r := &fakeRepo{appts: map[int64]*domain.Appointment{}}
	for _, a := range appts {
		r.appts[a.ID] = a
	}
	return r
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := r.appts[id]
	if !ok {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	return appt, nil
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

func (r *fakeRepo) Update(_ context.Context, id int64, appt *domain.Appointment) (*domain.Appointment, error) {
	existing, ok := r.appts[id]
	if !ok {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	updated := *appt
	updated.ID = id
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	r.appts[id] = &updated
	return &updated, nil
}

type fakeStaffClient struct {
	staff    *domain.StaffMember
	service  *domain.SalonService
	schedule domain.WeekSchedule
}

func (c *fakeStaffClient) GetStaff(_ context.Context, _ string, _ int64) (*domain.StaffMember, error) {
	return c.staff, nil
}

func (c *fakeStaffClient) GetService(_ context.Context, _ string, _ int64) (*domain.SalonService, error) {
	return c.service, nil
}

func (c *fakeStaffClient) GetSchedule(_ context.Context, _ string, _ int64) (domain.WeekSchedule, error) {
	return c.schedule, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func defaultStaffClient() *fakeStaffClient {
	return &fakeStaffClient{
		staff: &domain.StaffMember{
			ID:         7,
			Role:       domain.RoleProvider,
			ServiceIDs: []int64{3},
		},
		service: &domain.SalonService{
			ID:              3,
			Name:            "Haircut",
			DurationMinutes: 60,
			Charges:         45,
		},
		schedule: domain.WeekSchedule{
			"Tuesday": {"9:00 AM - 5:00 PM"},
		},
	}
}

func existingAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:          10,
		StaffID:     7,
		ClientID:    500,
		ClientName:  "Dana Reeve",
		ServiceID:   3,
		ServiceType: "Haircut",
		StartAt:     time.Date(2025, 10, 14, 10, 0, 0, 0, time.UTC),
		EndAt:       time.Date(2025, 10, 14, 11, 0, 0, 0, time.UTC),
		Status:      domain.StatusBooked,
	}
}

func validRequest(t *testing.T) *Request {
	t.Helper()
	start, err := types.ParseClockTime("2:00 PM")
	require.NoError(t, err)
	end, err := types.ParseClockTime("3:00 PM")
	require.NoError(t, err)

	return &Request{
		Session:       &domain.Session{StaffID: 1, Role: domain.RoleAdmin, Token: "token"},
		AppointmentID: 10,
		ClientID:      500,
		ClientName:    "Dana Reeve",
		ServiceID:     3,
		Date:          testDate,
		StartTime:     start,
		EndTime:       end,
		Description:   "Hair coloring, returning client",
	}
}

func newUseCase(repo *fakeRepo, client *fakeStaffClient) *UseCase {
	return NewUseCase(repo, client, fakeTxManager{}, inflight.NewGuard(), nopLogger{})
}

func TestExecute_Reschedule(t *testing.T) {
	repo := newFakeRepo(existingAppointment())
	uc := newUseCase(repo, defaultStaffClient())

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 10, 14, 14, 0, 0, 0, time.UTC), resp.StartAt)
	assert.Equal(t, time.Date(2025, 10, 14, 15, 0, 0, 0, time.UTC), resp.EndAt)
	assert.Equal(t, "booked", resp.Status)
}

func TestExecute_DoesNotConflictWithItself(t *testing.T) {
	// Перенос внутри собственного интервала: 10:00-11:00 -> 10:30-11:30
	repo := newFakeRepo(existingAppointment())
	uc := newUseCase(repo, defaultStaffClient())

	req := validRequest(t)
	req.StartTime, _ = types.ParseClockTime("10:30 AM")
	req.EndTime, _ = types.ParseClockTime("11:30 AM")

	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_ConflictWithOtherAppointment(t *testing.T) {
	other := &domain.Appointment{
		ID:      11,
		StaffID: 7,
		StartAt: time.Date(2025, 10, 14, 14, 30, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 10, 14, 15, 30, 0, 0, time.UTC),
		Status:  domain.StatusBooked,
	}
	repo := newFakeRepo(existingAppointment(), other)
	uc := newUseCase(repo, defaultStaffClient())

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	repo := newFakeRepo(existingAppointment())
	uc := newUseCase(repo, defaultStaffClient())

	req := validRequest(t)
	req.StartTime, _ = types.ParseClockTime("5:00 PM")
	req.EndTime, _ = types.ParseClockTime("6:00 PM")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_CancelledNotUpdatable(t *testing.T) {
	appt := existingAppointment()
	appt.Status = domain.StatusCancelled
	repo := newFakeRepo(appt)
	uc := newUseCase(repo, defaultStaffClient())

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrNotUpdatable)
}

func TestExecute_NotFound(t *testing.T) {
	uc := newUseCase(newFakeRepo(), defaultStaffClient())

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_AccessDenied(t *testing.T) {
	repo := newFakeRepo(existingAppointment())
	uc := newUseCase(repo, defaultStaffClient())

	req := validRequest(t)
	req.Session = &domain.Session{StaffID: 8, Role: domain.RoleProvider, Token: "token"}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_ConcurrentMutationRejected(t *testing.T) {
	guard := inflight.NewGuard()
	repo := newFakeRepo(existingAppointment())
	uc := NewUseCase(repo, defaultStaffClient(), fakeTxManager{}, guard, nopLogger{})

	require.True(t, guard.Acquire(10))
	defer guard.Release(10)

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrBusy)
}
