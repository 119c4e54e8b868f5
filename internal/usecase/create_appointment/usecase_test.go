package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SFD-SchedulingService/internal/domain"
	staffClient "github.com/m04kA/SFD-SchedulingService/internal/integrations/staffservice"
	"github.com/m04kA/SFD-SchedulingService/pkg/inflight"
	"github.com/m04kA/SFD-SchedulingService/pkg/types"
)

// Вторник отображаемой недели
var testDate = time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)

type fakeRepo struct {
	appts   []*domain.Appointment
	created *domain.Appointment
	nextID  int64
}

func (r *fakeRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	created := *appt
	if r.nextID == 0 {
		r.nextID = 100
	}
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.created = &created
	return &created, nil
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
	staff    *domain.StaffMember
	service  *domain.SalonService
	schedule domain.WeekSchedule

	staffErr    error
	serviceErr  error
	scheduleErr error
}

func (c *fakeStaffClient) GetStaff(_ context.Context, _ string, _ int64) (*domain.StaffMember, error) {
	if c.staffErr != nil {
		return nil, c.staffErr
	}
	return c.staff, nil
}

func (c *fakeStaffClient) GetService(_ context.Context, _ string, _ int64) (*domain.SalonService, error) {
	if c.serviceErr != nil {
		return nil, c.serviceErr
	}
	return c.service, nil
}

func (c *fakeStaffClient) GetSchedule(_ context.Context, _ string, _ int64) (domain.WeekSchedule, error) {
	if c.scheduleErr != nil {
		return nil, c.scheduleErr
	}
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
			Name:       "Alex Moreau",
			Role:       domain.RoleProvider,
			ServiceIDs: []int64{3},
		},
		service: &domain.SalonService{
			ID:              3,
			Name:            "Haircut",
			DurationMinutes: 60,
			Charges:         45.50,
		},
		schedule: domain.WeekSchedule{
			"Tuesday": {"9:00 AM - 12:00 PM", "1:00 PM - 5:00 PM"},
		},
	}
}

func validRequest(t *testing.T) *Request {
	t.Helper()
	start, err := types.ParseClockTime("2:00 PM")
	require.NoError(t, err)
	end, err := types.ParseClockTime("3:00 PM")
	require.NoError(t, err)

	return &Request{
		Session:     &domain.Session{StaffID: 1, Role: domain.RoleAdmin, Token: "token"},
		StaffID:     7,
		ClientID:    500,
		ClientName:  "Dana Reeve",
		ServiceID:   3,
		Date:        testDate,
		StartTime:   start,
		EndTime:     end,
		Description: "Hair coloring, returning client",
	}
}

func newUseCase(repo *fakeRepo, client *fakeStaffClient) *UseCase {
	return NewUseCase(repo, client, fakeTxManager{}, inflight.NewGuard(), nopLogger{})
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeRepo{}
	uc := newUseCase(repo, defaultStaffClient())

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, "booked", resp.Status)
	assert.Equal(t, "Haircut", resp.ServiceType)
	assert.Equal(t, 45.50, resp.ServiceCharges)
	assert.Equal(t, time.Date(2025, 10, 14, 14, 0, 0, 0, time.UTC), resp.StartAt)
	assert.Equal(t, time.Date(2025, 10, 14, 15, 0, 0, 0, time.UTC), resp.EndAt)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	uc := newUseCase(&fakeRepo{}, defaultStaffClient())

	req := validRequest(t)
	// Слот перекрывает обеденный перерыв 12:00 - 1:00
	req.StartTime, _ = types.ParseClockTime("11:30 AM")
	req.EndTime, _ = types.ParseClockTime("12:30 PM")
	req.ConfirmDurationMismatch = true

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_SlotConflict(t *testing.T) {
	existing := &domain.Appointment{
		ID:      42,
		StaffID: 7,
		StartAt: time.Date(2025, 10, 14, 14, 30, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 10, 14, 15, 30, 0, 0, time.UTC),
		Status:  domain.StatusBooked,
	}
	uc := newUseCase(&fakeRepo{appts: []*domain.Appointment{existing}}, defaultStaffClient())

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_CancelledAppointmentDoesNotBlock(t *testing.T) {
	cancelled := &domain.Appointment{
		ID:      42,
		StaffID: 7,
		StartAt: time.Date(2025, 10, 14, 14, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 10, 14, 15, 0, 0, 0, time.UTC),
		Status:  domain.StatusCancelled,
	}
	uc := newUseCase(&fakeRepo{appts: []*domain.Appointment{cancelled}}, defaultStaffClient())

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.NoError(t, err)
}

func TestExecute_DurationMismatch(t *testing.T) {
	uc := newUseCase(&fakeRepo{}, defaultStaffClient())

	req := validRequest(t)
	req.EndTime, _ = types.ParseClockTime("2:30 PM") // услуга длится 60 минут

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDurationMismatch)

	// Подтверждённое расхождение проходит
	req.ConfirmDurationMismatch = true
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 14, 14, 30, 0, 0, time.UTC), resp.EndAt)
}

func TestExecute_ServiceNotProvided(t *testing.T) {
	client := defaultStaffClient()
	client.staff.ServiceIDs = []int64{99}
	uc := newUseCase(&fakeRepo{}, client)

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrServiceNotProvided)
}

func TestExecute_AccessDenied(t *testing.T) {
	uc := newUseCase(&fakeRepo{}, defaultStaffClient())

	req := validRequest(t)
	// Мастер пытается создать запись другому мастеру
	req.Session = &domain.Session{StaffID: 8, Role: domain.RoleProvider, Token: "token"}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_ScheduleUnreadable(t *testing.T) {
	client := defaultStaffClient()
	client.schedule = domain.WeekSchedule{
		"Tuesday": {"9:00 AM to 5:00 PM"},
	}
	uc := newUseCase(&fakeRepo{}, client)

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrScheduleUnreadable)
}

func TestExecute_StaffClientErrors(t *testing.T) {
	tests := []struct {
		name      string
		clientErr error
		wantErr   error
	}{
		{"staff not found", staffClient.ErrStaffNotFound, ErrStaffNotFound},
		{"session expired", staffClient.ErrSessionExpired, ErrSessionExpired},
		{"forbidden", staffClient.ErrForbidden, ErrAccessDenied},
		{"unavailable", staffClient.ErrServiceUnavailable, ErrStaffServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := defaultStaffClient()
			client.staffErr = tt.clientErr
			uc := newUseCase(&fakeRepo{}, client)

			_, err := uc.Execute(context.Background(), validRequest(t))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_ConcurrentSubmitRejected(t *testing.T) {
	guard := inflight.NewGuard()
	uc := NewUseCase(&fakeRepo{}, defaultStaffClient(), fakeTxManager{}, guard, nopLogger{})

	// Эмулируем незавершённую операцию по этому сотруднику
	require.True(t, guard.Acquire(7))
	defer guard.Release(7)

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrBusy)
}

func TestExecute_Validation(t *testing.T) {
	uc := newUseCase(&fakeRepo{}, defaultStaffClient())

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"empty client name", func(r *Request) { r.ClientName = "  " }},
		{"empty description", func(r *Request) { r.Description = " " }},
		{"zero client id", func(r *Request) { r.ClientID = 0 }},
		{"zero service id", func(r *Request) { r.ServiceID = 0 }},
		{"start not before end", func(r *Request) { r.EndTime = r.StartTime }},
		{"missing date", func(r *Request) { r.Date = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(t)
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
